package huwise

import "context"

// DatasetsClient provides access to dataset resources of the automation API.
type DatasetsClient interface {
	// Get fetches a single dataset, including its metadata document.
	Get(ctx context.Context, uid string) (*Dataset, error)

	// List fetches one page of the dataset listing.
	List(ctx context.Context, params *ListDatasetsParams) (*DatasetList, error)

	// LookupUID resolves a numeric dataset ID to the dataset's stable UID.
	LookupUID(ctx context.Context, datasetID string) (string, error)

	// GetMetadata fetches the full metadata document of a dataset.
	GetMetadata(ctx context.Context, uid string) (Metadata, error)

	// SetMetadata replaces the metadata document of a dataset.
	SetMetadata(ctx context.Context, uid string, metadata Metadata) error

	// Publish makes staged metadata changes visible.
	Publish(ctx context.Context, uid string) error

	// Unpublish withdraws the dataset from publication.
	Unpublish(ctx context.Context, uid string) error

	// Refresh triggers a reprocessing of the dataset's data.
	Refresh(ctx context.Context, uid string) error

	// Status returns the dataset's current processing status.
	Status(ctx context.Context, uid string) (string, error)
}

// UIDResolver maps a numeric dataset ID to the dataset's stable UID.
// DatasetsClient satisfies it; bulk operations and identifier validation
// depend only on this narrow capability.
type UIDResolver interface {
	LookupUID(ctx context.Context, datasetID string) (string, error)
}

// Client is the entry point to the automation API. Construct one with
// the huwiseclient package.
type Client interface {
	// Datasets returns the dataset resource client.
	Datasets() DatasetsClient

	// Config returns the configuration the client was built with.
	Config() *Config
}
