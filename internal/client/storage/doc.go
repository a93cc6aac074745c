// Package storage provides the persistence backends behind store.Store.
//
// Every backend stores one opaque blob and replaces it atomically:
//
//   - SQLiteBackend: a row in the local metadata table, written in a transaction
//   - FileBackend: a file replaced by write-to-temp and rename
//   - S3Backend: one object in an S3-compatible bucket
//   - MemoryBackend: process memory, for tests and throwaway sessions
//   - EncryptedBackend: AES-GCM envelope around any of the above
//
// ReadBytes returns (nil, nil) when nothing has been persisted yet.
package storage
