package huwiseclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huwise-io/huwise-client/pkg/huwise"
	"github.com/huwise-io/huwise-client/pkg/huwiseclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	client, err := huwiseclient.New(&huwise.Config{
		APIKey: "test-key",
		Domain: "data.example.org",
	})
	require.NoError(t, err)
	require.NotNil(t, client)

	assert.NotNil(t, client.Datasets())
	assert.Equal(t, "data.example.org", client.Config().Domain)
	assert.Equal(t, huwise.DefaultAPIType, client.Config().APIType)
}

func TestNew_NilConfig(t *testing.T) {
	t.Parallel()

	_, err := huwiseclient.New(nil)
	assert.ErrorIs(t, err, huwise.ErrConfigRequired)
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := huwiseclient.New(&huwise.Config{Domain: "data.example.org"})
	assert.ErrorIs(t, err, huwise.ErrAPIKeyRequired)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("HUWISE_API_KEY", "test-key")
	t.Setenv("HUWISE_DOMAIN", "data.example.org")

	client, err := huwiseclient.NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "test-key", client.Config().APIKey)
}

func TestNewFromEnv_Missing(t *testing.T) {
	t.Setenv("HUWISE_API_KEY", "")
	t.Setenv("HUWISE_DOMAIN", "")

	_, err := huwiseclient.NewFromEnv()
	require.Error(t, err)
	assert.ErrorIs(t, err, huwise.ErrAPIKeyRequired)
}
