package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL drives. *App satisfies it.
type execIface interface {
	Show(ctx context.Context) error
	SetProvince(ctx context.Context, code string) error
	SetStatus(ctx context.Context, status string) error
	AddCertificate(ctx context.Context) error
	CertificatesFetched(ctx context.Context) error
	ShowCertificate(ctx context.Context, id string) error
	Warn(ctx context.Context) error
	Reset(ctx context.Context) error
}

const helpText = `Available commands:
  show               show the stored profile
  province <code>    set the home province (e.g. RM, MI)
  status <status>    set the health status (neutral, risk, positive)
  addcert            store a green certificate
  fetched            record a certificate retrieval that found nothing
  cert <id>          show one certificate
  warn               trigger the "service not active" warning
  reset              delete the stored profile
  exit | quit        leave the program`

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF, on "exit"/"quit", or when ctx is cancelled. Errors
// returned by commands are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn("gk " + statusFn() + "> ")

		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "show":
			cmdErr = a.Show(ctx)

		case "province":
			if len(args) != 1 {
				printlnFn("Usage: province <code>")
				printlnFn("Valid codes:", provinceList())
				continue
			}
			cmdErr = a.SetProvince(ctx, strings.ToUpper(args[0]))

		case "status":
			if len(args) != 1 {
				printlnFn("Usage: status <neutral|risk|positive>")
				continue
			}
			cmdErr = a.SetStatus(ctx, strings.ToLower(args[0]))

		case "addcert":
			cmdErr = a.AddCertificate(ctx)

		case "fetched":
			cmdErr = a.CertificatesFetched(ctx)

		case "cert":
			if len(args) != 1 {
				printlnFn("Usage: cert <id>")
				continue
			}
			cmdErr = a.ShowCertificate(ctx, args[0])

		case "warn":
			cmdErr = a.Warn(ctx)

		case "reset":
			cmdErr = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("error:", cmdErr)
		}
	}
}
