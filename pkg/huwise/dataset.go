package huwise

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/huwise-io/huwise-client/internal/constants"
)

// DatasetHandle is a fluent wrapper around one dataset, addressed by its
// stable UID. Mutating methods return the handle so calls can be chained;
// every call hits the remote service fresh.
type DatasetHandle struct {
	uid    string
	client Client
}

// NewDataset creates a handle for the dataset with the given UID.
func NewDataset(client Client, uid string) *DatasetHandle {
	return &DatasetHandle{uid: uid, client: client}
}

// DatasetFromID creates a handle by resolving a numeric dataset ID to the
// dataset's UID.
func DatasetFromID(ctx context.Context, client Client, datasetID string) (*DatasetHandle, error) {
	uid, err := client.Datasets().LookupUID(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("resolving dataset ID %q: %w", datasetID, err)
	}

	log.Info().Str("dataset_id", datasetID).Str("uid", uid).Msg("Resolved dataset ID to UID")

	return NewDataset(client, uid), nil
}

// UID returns the dataset's stable UID.
func (d *DatasetHandle) UID() string {
	return d.uid
}

// GetMetadata fetches the dataset's full metadata document.
func (d *DatasetHandle) GetMetadata(ctx context.Context) (Metadata, error) {
	dataset, err := d.client.Datasets().Get(ctx, d.uid)
	if err != nil {
		return nil, err
	}

	return dataset.Metadata, nil
}

// GetMetadataValue fetches the value of one metadata field. The second
// return value reports whether the field is set.
func (d *DatasetHandle) GetMetadataValue(ctx context.Context, template, field string) (any, bool, error) {
	metadata, err := d.GetMetadata(ctx)
	if err != nil {
		return nil, false, err
	}

	value, ok := metadata.Value(template, field)

	return value, ok, nil
}

// SetMetadataValue writes one metadata field, waiting for the dataset to
// be idle before the write. The current document is read, modified and
// written back so descriptor keys this client does not know about survive.
func (d *DatasetHandle) SetMetadataValue(ctx context.Context, template, field string, value any, publish bool) (*DatasetHandle, error) {
	datasets := d.client.Datasets()

	metadata, err := datasets.GetMetadata(ctx, d.uid)
	if err != nil {
		return d, err
	}

	if metadata == nil {
		metadata = Metadata{}
	}

	metadata.SetValue(template, field, value)

	err = d.WaitForIdle(ctx)
	if err != nil {
		return d, err
	}

	err = datasets.SetMetadata(ctx, d.uid, metadata)
	if err != nil {
		return d, err
	}

	log.Info().
		Str("uid", d.uid).
		Str("template", template).
		Str("field", field).
		Msg("Updated metadata field")

	if publish {
		return d.Publish(ctx)
	}

	return d, nil
}

// WaitForIdle polls the dataset's processing status until it reports idle.
// The retry combinator drives the polling with a constant delay; the poll
// gives up once the attempt budget is spent.
func (d *DatasetHandle) WaitForIdle(ctx context.Context) error {
	cfg := RetryConfig{
		Tries:   constants.IdlePollTries,
		Delay:   constants.IdlePollDelay,
		Backoff: 1,
	}

	busy := func(err error) bool { return errors.Is(err, ErrDatasetBusy) }

	return Retry(ctx, cfg, busy, func() error {
		status, err := d.client.Datasets().Status(ctx, d.uid)
		if err != nil {
			return err
		}

		if status != DatasetStatusIdle {
			return fmt.Errorf("%w: status %q", ErrDatasetBusy, status)
		}

		return nil
	})
}

// GetTitle fetches the dataset title, or nil if not set.
func (d *DatasetHandle) GetTitle(ctx context.Context) (any, error) {
	value, _, err := d.GetMetadataValue(ctx, DefaultTemplate, "title")

	return value, err
}

// GetDescription fetches the dataset description, or nil if not set.
func (d *DatasetHandle) GetDescription(ctx context.Context) (any, error) {
	value, _, err := d.GetMetadataValue(ctx, DefaultTemplate, "description")

	return value, err
}

// GetKeywords fetches the dataset keywords, or nil if not set.
func (d *DatasetHandle) GetKeywords(ctx context.Context) (any, error) {
	value, _, err := d.GetMetadataValue(ctx, DefaultTemplate, "keyword")

	return value, err
}

// GetLanguage fetches the dataset language code, or nil if not set.
func (d *DatasetHandle) GetLanguage(ctx context.Context) (any, error) {
	value, _, err := d.GetMetadataValue(ctx, DefaultTemplate, "language")

	return value, err
}

// GetPublisher fetches the dataset publisher, or nil if not set.
func (d *DatasetHandle) GetPublisher(ctx context.Context) (any, error) {
	value, _, err := d.GetMetadataValue(ctx, DefaultTemplate, "publisher")

	return value, err
}

// GetTheme fetches the dataset theme ID, or nil if not set.
func (d *DatasetHandle) GetTheme(ctx context.Context) (any, error) {
	value, _, err := d.GetMetadataValue(ctx, DefaultTemplate, "theme_id")

	return value, err
}

// GetLicense fetches the dataset license ID, or nil if not set.
func (d *DatasetHandle) GetLicense(ctx context.Context) (any, error) {
	value, _, err := d.GetMetadataValue(ctx, DefaultTemplate, "license_id")

	return value, err
}

// SetTitle sets the dataset title.
func (d *DatasetHandle) SetTitle(ctx context.Context, title string, publish bool) (*DatasetHandle, error) {
	return d.SetMetadataValue(ctx, DefaultTemplate, "title", title, publish)
}

// SetDescription sets the dataset description.
func (d *DatasetHandle) SetDescription(ctx context.Context, description string, publish bool) (*DatasetHandle, error) {
	return d.SetMetadataValue(ctx, DefaultTemplate, "description", description, publish)
}

// SetKeywords sets the dataset keywords.
func (d *DatasetHandle) SetKeywords(ctx context.Context, keywords []string, publish bool) (*DatasetHandle, error) {
	return d.SetMetadataValue(ctx, DefaultTemplate, "keyword", keywords, publish)
}

// SetLanguage sets the dataset language code.
func (d *DatasetHandle) SetLanguage(ctx context.Context, language string, publish bool) (*DatasetHandle, error) {
	return d.SetMetadataValue(ctx, DefaultTemplate, "language", language, publish)
}

// SetPublisher sets the dataset publisher.
func (d *DatasetHandle) SetPublisher(ctx context.Context, publisher string, publish bool) (*DatasetHandle, error) {
	return d.SetMetadataValue(ctx, DefaultTemplate, "publisher", publisher, publish)
}

// SetTheme sets the dataset theme ID.
func (d *DatasetHandle) SetTheme(ctx context.Context, themeID string, publish bool) (*DatasetHandle, error) {
	return d.SetMetadataValue(ctx, DefaultTemplate, "theme_id", themeID, publish)
}

// SetLicense sets the dataset license ID.
func (d *DatasetHandle) SetLicense(ctx context.Context, licenseID string, publish bool) (*DatasetHandle, error) {
	return d.SetMetadataValue(ctx, DefaultTemplate, "license_id", licenseID, publish)
}

// Publish makes staged metadata changes visible.
func (d *DatasetHandle) Publish(ctx context.Context) (*DatasetHandle, error) {
	err := d.client.Datasets().Publish(ctx, d.uid)
	if err != nil {
		return d, err
	}

	log.Info().Str("uid", d.uid).Msg("Published dataset")

	return d, nil
}

// Unpublish withdraws the dataset from publication.
func (d *DatasetHandle) Unpublish(ctx context.Context) (*DatasetHandle, error) {
	err := d.client.Datasets().Unpublish(ctx, d.uid)
	if err != nil {
		return d, err
	}

	log.Info().Str("uid", d.uid).Msg("Unpublished dataset")

	return d, nil
}

// Refresh triggers a reprocessing of the dataset's data.
func (d *DatasetHandle) Refresh(ctx context.Context) (*DatasetHandle, error) {
	err := d.client.Datasets().Refresh(ctx, d.uid)
	if err != nil {
		return d, err
	}

	log.Info().Str("uid", d.uid).Msg("Refreshed dataset")

	return d, nil
}
