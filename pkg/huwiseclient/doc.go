// Package huwiseclient constructs ready-to-use Huwise automation API
// clients. It wires configuration, the retrying HTTP transport, and the
// dataset resource client behind the interfaces defined in pkg/huwise.
//
//	cli, err := huwiseclient.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	bulk := huwise.NewBulkExecutor(cli, 0)
//	ids, err := bulk.BulkGetDatasetIDs(ctx, nil)
package huwiseclient
