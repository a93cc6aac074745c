package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/greenkeeper/internal/client/config"
	"github.com/dmitrijs2005/greenkeeper/internal/client/services"
	"github.com/dmitrijs2005/greenkeeper/internal/client/storage"
	"github.com/dmitrijs2005/greenkeeper/internal/client/store"
	"github.com/dmitrijs2005/greenkeeper/internal/common"
	"github.com/dmitrijs2005/greenkeeper/internal/logging"
)

type App struct {
	config   *config.Config
	profiles services.ProfileService
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	now      func() time.Time
	closeFn  func() error
}

// NewApp opens the configured backend and builds the profile flows on top of
// it. With encryption enabled the passphrase is read from the terminal.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel)

	var passphrase []byte
	if c.Encrypt {
		pw, err := GetPassword(os.Stdout, "Profile passphrase")
		if err != nil {
			return nil, fmt.Errorf("read passphrase: %w", err)
		}
		passphrase = pw
		defer common.WipeByteArray(passphrase)
	}

	backend, closeFn, err := storage.Open(ctx, c, passphrase)
	if err != nil {
		log.Error(ctx, "error opening storage", "backend", c.Backend, "error", err)
		return nil, err
	}
	log.Info(ctx, "storage opened", "backend", c.Backend, "encrypted", c.Encrypt)

	st := store.New(backend, log)
	ps := services.NewProfileService(st, c.ServiceNotActiveCooldown, log)

	return newApp(c, ps, log, bufio.NewReader(os.Stdin), os.Stdout, closeFn), nil
}

func newApp(c *config.Config, ps services.ProfileService, log logging.Logger, r *bufio.Reader, w io.Writer, closeFn func() error) *App {
	return &App{
		config:   c,
		profiles: ps,
		log:      log,
		reader:   r,
		out:      w,
		now:      time.Now,
		closeFn:  closeFn,
	}
}

// Run starts the REPL and blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.closeFn == nil {
			return
		}
		if err := a.closeFn(); err != nil {
			a.log.Error(ctx, "error closing storage", "error", err)
		}
	}()

	printlnFn("Welcome to GreenKeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}

func (a *App) getStatus(ctx context.Context) string {
	p, err := a.profiles.Profile(ctx)
	if err != nil {
		return "(?)"
	}
	province := string(p.Province)
	if province == "" {
		province = "-"
	}
	return fmt.Sprintf("(%s %s)", province, p.HealthStatus)
}
