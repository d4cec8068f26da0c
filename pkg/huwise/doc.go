// Package huwise provides types, interfaces, and helpers for working with
// the Huwise automation API.
//
// # Overview
//
// The huwise package defines the domain types (Metadata, Dataset,
// DatasetIdentifier, UpdateSpec) and the DatasetsClient interface for the
// dataset resource. A concrete implementation is provided by the
// huwiseclient package, which wires configuration and transport. Most
// consumers should import huwiseclient to construct a client and then work
// through the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/huwise-io/huwise-client/pkg/huwise"
//	  "github.com/huwise-io/huwise-client/pkg/huwiseclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := huwiseclient.New(&huwise.Config{APIKey: "...", Domain: "data.example.org"})
//	  if err != nil { log.Fatal(err) }
//
//	  metadata, err := cli.Datasets().GetMetadata(ctx, "da_abc123")
//	  if err != nil { log.Fatal(err) }
//	  _ = metadata
//	}
//
// # Bulk operations
//
// BulkExecutor fans one per-dataset operation out across many datasets
// concurrently, under a bounded concurrency ceiling. Every input identifier
// produces exactly one entry in the result map, keyed by the identifier
// value the caller supplied; a failure for one dataset becomes that
// dataset's error entry and never disturbs the others.
//
//	bulk := huwise.NewBulkExecutor(cli, 8)
//	results, err := bulk.BulkGetMetadata(ctx, []huwise.DatasetIdentifier{
//	  {DatasetID: "100123"},
//	  {DatasetUID: "da_abc123"},
//	})
//
// # Retry
//
// Transient transport failures (connection errors, timeouts, HTTP 5xx) are
// retried with exponential backoff inside the transport. The same policy is
// available as a standalone combinator, Retry, for wrapping any fallible
// operation with a retryable-error predicate, an attempt budget, and a
// backoff multiplier.
package huwise
