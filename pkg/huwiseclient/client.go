// Package huwiseclient provides the main entry point for creating Huwise
// automation API clients.
package huwiseclient

import (
	"fmt"

	"github.com/huwise-io/huwise-client/internal/client"
	"github.com/huwise-io/huwise-client/pkg/huwise"
)

// New creates a client from an explicit configuration.
func New(config *huwise.Config) (huwise.Client, error) {
	if config == nil {
		return nil, huwise.ErrConfigRequired
	}

	cli, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return cli, nil
}

// NewFromEnv creates a client configured from HUWISE_* environment
// variables. Missing required settings fail here, not on first use.
func NewFromEnv() (huwise.Client, error) {
	config, err := huwise.NewConfigFromEnv()
	if err != nil {
		return nil, err
	}

	return New(config)
}
