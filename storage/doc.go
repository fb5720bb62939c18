// Package storage provides the object-store abstraction the search core reads from.
//
// The search core only ever lists keys under a prefix and fetches the bytes of
// one key. Both operations are expressed as the ObjectReader interface and are
// injected into consumers explicitly; there is no process-wide client.
//
// # Backends
//
//   - storage/s3: AWS S3 or any S3-compatible service (MinIO, R2, ...)
//   - storage/badger: an embedded BadgerDB store, for local corpora and tests
//
// # Thread Safety
//
// All implementations must be safe for concurrent use. The searcher fetches
// documents from a worker pool.
//
// # Context Support
//
// All methods accept context.Context for cancellation. Pass
// context.Background() for operations without specific timeout requirements.
package storage
