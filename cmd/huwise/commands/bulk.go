package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/huwise-io/huwise-client/pkg/huwise"
)

// NewBulkCommand creates the bulk command group
func NewBulkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Run bulk operations across many datasets",
	}

	cmd.AddCommand(newBulkMetadataCommand())
	cmd.AddCommand(newBulkUpdateCommand())
	cmd.AddCommand(newBulkIDsCommand())

	return cmd
}

func newBulkMetadataCommand() *cobra.Command {
	var (
		datasetIDs  []string
		datasetUIDs []string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Fetch metadata for many datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient()
			if err != nil {
				return err
			}

			identifiers := make([]huwise.DatasetIdentifier, 0, len(datasetIDs)+len(datasetUIDs))
			for _, id := range datasetIDs {
				identifiers = append(identifiers, huwise.DatasetIdentifier{DatasetID: id})
			}

			for _, uid := range datasetUIDs {
				identifiers = append(identifiers, huwise.DatasetIdentifier{DatasetUID: uid})
			}

			if len(identifiers) == 0 {
				return huwise.ErrIdentifierRequired
			}

			bulk := huwise.NewBulkExecutor(cli, concurrency)

			results, err := bulk.BulkGetMetadata(cmd.Context(), identifiers)
			if err != nil {
				return err
			}

			return renderOutput(results, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Dataset", "Status", "Error")

				for _, ident := range identifiers {
					entry := results[ident.Key()]
					_ = table.Append(ident.Key(), string(entry.Status), entry.Error)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&datasetIDs, "id", nil, "numeric dataset ID to fetch (repeatable)")
	cmd.Flags().StringArrayVar(&datasetUIDs, "uid", nil, "dataset UID to fetch (repeatable)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "maximum in-flight requests (0 for default)")

	return cmd
}

// updateSpecFile is the on-disk shape of a bulk update specification.
type updateSpecFile struct {
	Datasets []struct {
		DatasetID  string         `yaml:"dataset_id"`
		DatasetUID string         `yaml:"dataset_uid"`
		Template   string         `yaml:"template"`
		Fields     map[string]any `yaml:"fields"`
	} `yaml:"datasets"`
}

func newBulkUpdateCommand() *cobra.Command {
	var (
		specPath    string
		concurrency int
		noPublish   bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update metadata on many datasets from a spec file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(specPath)
			if err != nil {
				return fmt.Errorf("reading spec file: %w", err)
			}

			var file updateSpecFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("parsing spec file: %w", err)
			}

			specs := make([]huwise.UpdateSpec, 0, len(file.Datasets))
			for _, entry := range file.Datasets {
				specs = append(specs, huwise.UpdateSpec{
					DatasetIdentifier: huwise.DatasetIdentifier{
						DatasetID:  entry.DatasetID,
						DatasetUID: entry.DatasetUID,
					},
					Template: entry.Template,
					Fields:   entry.Fields,
				})
			}

			bulk := huwise.NewBulkExecutor(cli, concurrency)

			results, err := bulk.BulkUpdateMetadata(cmd.Context(), specs,
				&huwise.BulkUpdateOptions{Publish: !noPublish})
			if err != nil {
				return err
			}

			return renderOutput(results, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Dataset", "Status", "Fields Updated", "Error")

				for _, spec := range specs {
					entry := results[spec.Key()]
					_ = table.Append(spec.Key(), string(entry.Status),
						fmt.Sprintf("%v", entry.FieldsUpdated), entry.Error)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&specPath, "file", "f", "", "YAML file describing the updates")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "maximum in-flight requests (0 for default)")
	cmd.Flags().BoolVar(&noPublish, "no-publish", false, "stage the writes without publishing")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newBulkIDsCommand() *cobra.Command {
	var (
		maxDatasets       int
		excludeRestricted bool
	)

	cmd := &cobra.Command{
		Use:   "ids",
		Short: "Collect dataset IDs from the portal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient()
			if err != nil {
				return err
			}

			bulk := huwise.NewBulkExecutor(cli, 0)

			ids, err := bulk.BulkGetDatasetIDs(cmd.Context(), &huwise.DatasetIDsOptions{
				IncludeRestricted: !excludeRestricted,
				MaxDatasets:       maxDatasets,
			})
			if err != nil {
				return err
			}

			return renderOutput(ids, func() error {
				for _, id := range ids {
					fmt.Fprintln(os.Stdout, id)
				}

				return nil
			})
		},
	}

	cmd.Flags().IntVar(&maxDatasets, "max", 0, "stop after collecting this many IDs (0 for all)")
	cmd.Flags().BoolVar(&excludeRestricted, "exclude-restricted", false, "skip restricted datasets")

	return cmd
}
