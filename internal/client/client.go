// Package client contains the concrete implementation of the huwise.Client
// interface over the HTTP transport.
package client

import (
	"github.com/huwise-io/huwise-client/internal/http"
	"github.com/huwise-io/huwise-client/pkg/huwise"
)

// Client implements the huwise.Client interface.
type Client struct {
	httpClient *http.Client
	config     *huwise.Config
	datasets   huwise.DatasetsClient
}

// New creates a client for the portal described by config.
func New(config *huwise.Config, opts ...http.Option) (*Client, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(config, opts...)

	client := &Client{
		httpClient: httpClient,
		config:     config,
	}

	client.datasets = NewDatasetsClient(httpClient)

	return client, nil
}

// Datasets implements huwise.Client.Datasets.
func (c *Client) Datasets() huwise.DatasetsClient {
	return c.datasets
}

// Config implements huwise.Client.Config.
func (c *Client) Config() *huwise.Config {
	return c.config
}
