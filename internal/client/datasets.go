package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/huwise-io/huwise-client/internal/http"
	"github.com/huwise-io/huwise-client/pkg/huwise"
)

// DatasetsClient implements huwise.DatasetsClient.
type DatasetsClient struct {
	httpClient *http.Client
}

// NewDatasetsClient creates a new datasets client.
func NewDatasetsClient(httpClient *http.Client) *DatasetsClient {
	return &DatasetsClient{httpClient: httpClient}
}

// Get implements huwise.DatasetsClient.Get.
func (c *DatasetsClient) Get(ctx context.Context, uid string) (*huwise.Dataset, error) {
	path := fmt.Sprintf("/datasets/%s", uid)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting dataset: %w", err)
	}

	var dataset huwise.Dataset

	err = json.Unmarshal(resp.Body, &dataset)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset response: %w", err)
	}

	return &dataset, nil
}

// List implements huwise.DatasetsClient.List.
func (c *DatasetsClient) List(ctx context.Context, params *huwise.ListDatasetsParams) (*huwise.DatasetList, error) {
	var query url.Values
	if params != nil {
		query = listParamsToValues(params)
	}

	resp, err := c.httpClient.Get(ctx, "/datasets/", query)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}

	var result huwise.DatasetList

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset list response: %w", err)
	}

	return &result, nil
}

// LookupUID implements huwise.DatasetsClient.LookupUID. It resolves a
// numeric dataset ID through the listing endpoint's dataset_id filter.
func (c *DatasetsClient) LookupUID(ctx context.Context, datasetID string) (string, error) {
	result, err := c.List(ctx, &huwise.ListDatasetsParams{DatasetID: datasetID})
	if err != nil {
		return "", err
	}

	if len(result.Results) == 0 {
		return "", fmt.Errorf("%w: dataset_id %q", huwise.ErrDatasetNotFound, datasetID)
	}

	return result.Results[0].UID, nil
}

// GetMetadata implements huwise.DatasetsClient.GetMetadata.
func (c *DatasetsClient) GetMetadata(ctx context.Context, uid string) (huwise.Metadata, error) {
	path := fmt.Sprintf("/datasets/%s/metadata/", uid)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting dataset metadata: %w", err)
	}

	var metadata huwise.Metadata

	err = json.Unmarshal(resp.Body, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing metadata response: %w", err)
	}

	return metadata, nil
}

// SetMetadata implements huwise.DatasetsClient.SetMetadata.
func (c *DatasetsClient) SetMetadata(ctx context.Context, uid string, metadata huwise.Metadata) error {
	path := fmt.Sprintf("/datasets/%s/metadata/", uid)

	_, err := c.httpClient.Put(ctx, path, metadata)
	if err != nil {
		return fmt.Errorf("setting dataset metadata: %w", err)
	}

	return nil
}

// Publish implements huwise.DatasetsClient.Publish.
func (c *DatasetsClient) Publish(ctx context.Context, uid string) error {
	path := fmt.Sprintf("/datasets/%s/publish/", uid)

	_, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("publishing dataset: %w", err)
	}

	return nil
}

// Unpublish implements huwise.DatasetsClient.Unpublish.
func (c *DatasetsClient) Unpublish(ctx context.Context, uid string) error {
	path := fmt.Sprintf("/datasets/%s/unpublish/", uid)

	_, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("unpublishing dataset: %w", err)
	}

	return nil
}

// Refresh implements huwise.DatasetsClient.Refresh.
func (c *DatasetsClient) Refresh(ctx context.Context, uid string) error {
	path := fmt.Sprintf("/datasets/%s/", uid)

	_, err := c.httpClient.Put(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("refreshing dataset: %w", err)
	}

	return nil
}

// Status implements huwise.DatasetsClient.Status.
func (c *DatasetsClient) Status(ctx context.Context, uid string) (string, error) {
	path := fmt.Sprintf("/datasets/%s/status", uid)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return "", fmt.Errorf("getting dataset status: %w", err)
	}

	var result struct {
		Status string `json:"status"`
	}

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return "", fmt.Errorf("parsing status response: %w", err)
	}

	return result.Status, nil
}

func listParamsToValues(params *huwise.ListDatasetsParams) url.Values {
	values := url.Values{}

	if params.Limit > 0 {
		values.Set("limit", strconv.Itoa(params.Limit))
	}

	if params.Offset > 0 {
		values.Set("offset", strconv.Itoa(params.Offset))
	}

	if params.DatasetID != "" {
		values.Set("dataset_id", params.DatasetID)
	}

	return values
}
