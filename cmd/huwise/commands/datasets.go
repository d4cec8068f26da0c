package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/huwise-io/huwise-client/pkg/huwise"
)

// NewDatasetsCommand creates the datasets command group
func NewDatasetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Manage datasets",
	}

	cmd.AddCommand(newDatasetsListCommand())
	cmd.AddCommand(newDatasetsGetCommand())
	cmd.AddCommand(newDatasetsSetCommand())
	cmd.AddCommand(newDatasetsPublishCommand())

	return cmd
}

func newDatasetsListCommand() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient()
			if err != nil {
				return err
			}

			result, err := cli.Datasets().List(cmd.Context(), &huwise.ListDatasetsParams{
				Limit:  limit,
				Offset: offset,
			})
			if err != nil {
				return err
			}

			return renderOutput(result, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("UID", "Dataset ID", "Restricted")

				for _, dataset := range result.Results {
					_ = table.Append(dataset.UID, dataset.DatasetID, strconv.FormatBool(dataset.IsRestricted))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				fmt.Fprintf(os.Stdout, "Showing %d of %d datasets\n", len(result.Results), result.TotalCount)

				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of datasets per page")
	cmd.Flags().IntVar(&offset, "offset", 0, "listing offset")

	return cmd
}

func newDatasetsGetCommand() *cobra.Command {
	var datasetID string

	cmd := &cobra.Command{
		Use:   "get [UID]",
		Short: "Fetch a dataset's metadata",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient()
			if err != nil {
				return err
			}

			ident := huwise.DatasetIdentifier{DatasetID: datasetID}
			if len(args) > 0 {
				ident.DatasetUID = args[0]
			}

			uid, err := huwise.ValidateDatasetIdentifier(cmd.Context(), cli.Datasets(), ident)
			if err != nil {
				return err
			}

			metadata, err := cli.Datasets().GetMetadata(cmd.Context(), uid)
			if err != nil {
				return err
			}

			return renderOutput(metadata, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Template", "Field", "Value")

				for template, fields := range metadata {
					for field, descriptor := range fields {
						_ = table.Append(template, field, fmt.Sprintf("%v", descriptor.Value()))
					}
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&datasetID, "id", "", "numeric dataset ID (alternative to UID)")

	return cmd
}

func newDatasetsSetCommand() *cobra.Command {
	var (
		datasetID string
		template  string
		fieldArgs []string
		noPublish bool
	)

	cmd := &cobra.Command{
		Use:   "set [UID]",
		Short: "Write metadata fields on a dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient()
			if err != nil {
				return err
			}

			fields, err := parseFieldArgs(fieldArgs)
			if err != nil {
				return err
			}

			spec := huwise.UpdateSpec{
				DatasetIdentifier: huwise.DatasetIdentifier{DatasetID: datasetID},
				Template:          template,
				Fields:            fields,
			}
			if len(args) > 0 {
				spec.DatasetUID = args[0]
			}

			bulk := huwise.NewBulkExecutor(cli, 1)

			results, err := bulk.BulkUpdateMetadata(cmd.Context(), []huwise.UpdateSpec{spec},
				&huwise.BulkUpdateOptions{Publish: !noPublish})
			if err != nil {
				return err
			}

			entry := results[spec.Key()]
			if entry.Status != huwise.StatusSuccess {
				return fmt.Errorf("updating dataset %s: %s", spec.Key(), entry.Error)
			}

			fmt.Fprintf(os.Stdout, "Updated fields %v on dataset %s\n", entry.FieldsUpdated, spec.Key())

			return nil
		},
	}

	cmd.Flags().StringVar(&datasetID, "id", "", "numeric dataset ID (alternative to UID)")
	cmd.Flags().StringVar(&template, "template", "", "metadata template to write to (default \"default\")")
	cmd.Flags().StringArrayVar(&fieldArgs, "field", nil, "field to write as name=value (repeatable)")
	cmd.Flags().BoolVar(&noPublish, "no-publish", false, "stage the write without publishing")

	return cmd
}

func newDatasetsPublishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "publish UID",
		Short: "Publish staged metadata changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := newClient()
			if err != nil {
				return err
			}

			err = cli.Datasets().Publish(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, "Published dataset", args[0])

			return nil
		},
	}
}
