package huwise

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/huwise-io/huwise-client/internal/constants"
)

// Prometheus metrics for bulk operations.
var bulkDatasetsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "huwise_bulk_datasets_total",
	Help: "Total number of datasets processed by bulk operations, by operation and status",
}, []string{"operation", "status"})

// DefaultTemplate is the metadata template written to when an update spec
// does not name one.
const DefaultTemplate = "default"

// BulkUpdateOptions configures a bulk metadata update.
type BulkUpdateOptions struct {
	// Publish controls whether each successful write is immediately
	// followed by a publish call on the same dataset. When false the
	// writes stay staged and the caller publishes separately.
	Publish bool
}

// DefaultBulkUpdateOptions returns the default update options: publish
// after every successful write.
func DefaultBulkUpdateOptions() *BulkUpdateOptions {
	return &BulkUpdateOptions{Publish: true}
}

// DatasetIDsOptions configures dataset ID enumeration.
type DatasetIDsOptions struct {
	// IncludeRestricted keeps restricted datasets in the result.
	IncludeRestricted bool

	// MaxDatasets caps the number of IDs returned. Zero means unlimited.
	// Datasets filtered out by IncludeRestricted do not count toward it.
	MaxDatasets int
}

// DefaultDatasetIDsOptions returns the default enumeration options.
func DefaultDatasetIDsOptions() *DatasetIDsOptions {
	return &DatasetIDsOptions{IncludeRestricted: true}
}

// BulkExecutor fans a single per-dataset operation out across many datasets
// with bounded concurrency. Each dataset's unit of work is isolated: its
// failure becomes that dataset's error entry and never affects the others.
type BulkExecutor struct {
	client      Client
	concurrency int
}

// NewBulkExecutor creates a bulk executor. A non-positive concurrency
// selects the default bound.
func NewBulkExecutor(client Client, concurrency int) *BulkExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultBulkConcurrency
	}

	return &BulkExecutor{
		client:      client,
		concurrency: concurrency,
	}
}

// BulkGetMetadata fetches the metadata documents of many datasets
// concurrently. The result map holds exactly one entry per input
// identifier, keyed by the identifier value the caller supplied.
func (b *BulkExecutor) BulkGetMetadata(ctx context.Context, idents []DatasetIdentifier) (map[string]MetadataResult, error) {
	for index, ident := range idents {
		if ident.Key() == "" {
			return nil, fmt.Errorf("identifier %d: %w", index, ErrIdentifierRequired)
		}
	}

	log.Info().Int("dataset_count", len(idents)).Msg("Starting bulk metadata fetch")

	entries := make([]MetadataResult, len(idents))

	b.forEach(len(idents), func(index int) {
		entries[index] = b.getOne(ctx, idents[index])
		bulkDatasetsTotal.WithLabelValues("get_metadata", string(entries[index].Status)).Inc()
	})

	results := make(map[string]MetadataResult, len(idents))
	for index, ident := range idents {
		results[ident.Key()] = entries[index]
	}

	successful, failed := countMetadataResults(results)
	log.Info().
		Int("successful", successful).
		Int("failed", failed).
		Msg("Completed bulk metadata fetch")

	return results, nil
}

// BulkUpdateMetadata writes metadata fields to many datasets concurrently.
// The result map holds exactly one entry per update spec, keyed by the
// identifier value the caller supplied. A spec without any identifier
// cannot be keyed and fails the whole call before any work starts.
func (b *BulkExecutor) BulkUpdateMetadata(ctx context.Context, specs []UpdateSpec, opts *BulkUpdateOptions) (map[string]UpdateResult, error) {
	if opts == nil {
		opts = DefaultBulkUpdateOptions()
	}

	for index, spec := range specs {
		if spec.Key() == "" {
			return nil, fmt.Errorf("update spec %d: %w", index, ErrIdentifierRequired)
		}
	}

	log.Info().Int("update_count", len(specs)).Bool("publish", opts.Publish).Msg("Starting bulk metadata update")

	entries := make([]UpdateResult, len(specs))

	b.forEach(len(specs), func(index int) {
		entries[index] = b.updateOne(ctx, specs[index], opts.Publish)
		bulkDatasetsTotal.WithLabelValues("update_metadata", string(entries[index].Status)).Inc()
	})

	results := make(map[string]UpdateResult, len(specs))
	for index, spec := range specs {
		results[spec.Key()] = entries[index]
	}

	successful, failed := countUpdateResults(results)
	log.Info().
		Int("successful", successful).
		Int("failed", failed).
		Msg("Completed bulk metadata update")

	return results, nil
}

// BulkGetDatasetIDs enumerates dataset IDs by following the paginated
// listing. Pagination is one logical cursor and runs sequentially; the
// service's listing order is preserved. A listing call failure is a hard
// failure of the whole enumeration.
func (b *BulkExecutor) BulkGetDatasetIDs(ctx context.Context, opts *DatasetIDsOptions) ([]string, error) {
	if opts == nil {
		opts = DefaultDatasetIDsOptions()
	}

	datasets := b.client.Datasets()
	ids := make([]string, 0)
	offset := 0

	for {
		page, err := datasets.List(ctx, &ListDatasetsParams{
			Limit:  constants.ListPageSize,
			Offset: offset,
		})
		if err != nil {
			return nil, fmt.Errorf("listing datasets: %w", err)
		}

		if len(page.Results) == 0 {
			break
		}

		for _, dataset := range page.Results {
			if !opts.IncludeRestricted && dataset.IsRestricted {
				continue
			}

			ids = append(ids, dataset.DatasetID)

			if opts.MaxDatasets > 0 && len(ids) >= opts.MaxDatasets {
				log.Info().Int("count", len(ids)).Msg("Retrieved dataset IDs")

				return ids, nil
			}
		}

		if page.Next == "" {
			break
		}

		offset += constants.ListPageSize
	}

	log.Info().Int("count", len(ids)).Msg("Retrieved dataset IDs")

	return ids, nil
}

// forEach runs one unit per index with bounded concurrency. Units write to
// disjoint slots of pre-sized slices, so no locking is needed.
func (b *BulkExecutor) forEach(count int, unit func(index int)) {
	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, b.concurrency)

	for index := 0; index < count; index++ {
		waitGroup.Add(1)

		go func(index int) {
			defer waitGroup.Done()

			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			unit(index)
		}(index)
	}

	waitGroup.Wait()
}

// getOne performs one dataset's metadata fetch, capturing any error as the
// entry rather than letting it escape.
func (b *BulkExecutor) getOne(ctx context.Context, ident DatasetIdentifier) MetadataResult {
	uid, err := ValidateDatasetIdentifier(ctx, b.client.Datasets(), ident)
	if err != nil {
		log.Warn().Str("dataset", ident.Key()).Err(err).Msg("Failed to fetch metadata")

		return MetadataResult{Status: StatusError, Error: err.Error()}
	}

	dataset, err := b.client.Datasets().Get(ctx, uid)
	if err != nil {
		log.Warn().Str("dataset", ident.Key()).Err(err).Msg("Failed to fetch metadata")

		return MetadataResult{Status: StatusError, Error: err.Error()}
	}

	return MetadataResult{Status: StatusSuccess, Metadata: dataset.Metadata}
}

// updateOne performs one dataset's metadata update: resolve, read the
// current document, write the requested fields one call at a time, then
// optionally publish. A failure partway through reports the fields already
// confirmed written; the remote service is not transactional across fields.
func (b *BulkExecutor) updateOne(ctx context.Context, spec UpdateSpec, publish bool) UpdateResult {
	uid, err := ValidateDatasetIdentifier(ctx, b.client.Datasets(), spec.DatasetIdentifier)
	if err != nil {
		return UpdateResult{Status: StatusError, Error: err.Error()}
	}

	if len(spec.Fields) == 0 {
		return UpdateResult{Status: StatusError, Error: ErrNoFieldsToUpdate.Error()}
	}

	template := spec.Template
	if template == "" {
		template = DefaultTemplate
	}

	datasets := b.client.Datasets()

	metadata, err := datasets.GetMetadata(ctx, uid)
	if err != nil {
		return UpdateResult{Status: StatusError, Error: err.Error()}
	}

	if metadata == nil {
		metadata = Metadata{}
	}

	names := make([]string, 0, len(spec.Fields))
	for name := range spec.Fields {
		names = append(names, name)
	}

	sort.Strings(names)

	fieldsUpdated := make([]string, 0, len(names))

	for _, name := range names {
		metadata.SetValue(template, name, spec.Fields[name])

		err = datasets.SetMetadata(ctx, uid, metadata)
		if err != nil {
			log.Warn().Str("dataset", spec.Key()).Str("field", name).Err(err).Msg("Failed to update dataset")

			return UpdateResult{
				Status:        StatusError,
				FieldsUpdated: fieldsUpdated,
				Error:         fmt.Sprintf("writing field %q: %v", name, err),
			}
		}

		fieldsUpdated = append(fieldsUpdated, name)
	}

	if publish {
		err = datasets.Publish(ctx, uid)
		if err != nil {
			log.Warn().Str("dataset", spec.Key()).Err(err).Msg("Failed to publish dataset")

			return UpdateResult{
				Status:        StatusError,
				FieldsUpdated: fieldsUpdated,
				Error:         fmt.Sprintf("publishing: %v", err),
			}
		}
	}

	log.Debug().Str("dataset", spec.Key()).Strs("fields", fieldsUpdated).Msg("Updated dataset")

	return UpdateResult{Status: StatusSuccess, FieldsUpdated: fieldsUpdated}
}

func countMetadataResults(results map[string]MetadataResult) (successful, failed int) {
	for _, entry := range results {
		if entry.Status == StatusSuccess {
			successful++
		} else {
			failed++
		}
	}

	return successful, failed
}

func countUpdateResults(results map[string]UpdateResult) (successful, failed int) {
	for _, entry := range results {
		if entry.Status == StatusSuccess {
			successful++
		} else {
			failed++
		}
	}

	return successful, failed
}
