package huwise_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huwise-io/huwise-client/pkg/huwise"
)

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("HUWISE_API_KEY", "secret-key")
	t.Setenv("HUWISE_DOMAIN", "data.example.org")

	config, err := huwise.NewConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "secret-key", config.APIKey)
	assert.Equal(t, "data.example.org", config.Domain)
	assert.Equal(t, huwise.DefaultAPIType, config.APIType)
}

func TestNewConfigFromEnv_APITypeOverride(t *testing.T) {
	t.Setenv("HUWISE_API_KEY", "secret-key")
	t.Setenv("HUWISE_DOMAIN", "data.example.org")
	t.Setenv("HUWISE_API_TYPE", "automation/v2.0")

	config, err := huwise.NewConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "automation/v2.0", config.APIType)
}

func TestNewConfigFromEnv_MissingKey(t *testing.T) {
	t.Setenv("HUWISE_API_KEY", "")
	t.Setenv("HUWISE_DOMAIN", "data.example.org")

	_, err := huwise.NewConfigFromEnv()
	require.Error(t, err)
	assert.ErrorIs(t, err, huwise.ErrAPIKeyRequired)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("missing API key", func(t *testing.T) {
		t.Parallel()

		config := &huwise.Config{Domain: "data.example.org"}
		assert.ErrorIs(t, config.Validate(), huwise.ErrAPIKeyRequired)
	})

	t.Run("missing domain", func(t *testing.T) {
		t.Parallel()

		config := &huwise.Config{APIKey: "secret-key"}
		assert.ErrorIs(t, config.Validate(), huwise.ErrDomainRequired)
	})

	t.Run("defaults API type", func(t *testing.T) {
		t.Parallel()

		config := &huwise.Config{APIKey: "secret-key", Domain: "data.example.org"}
		require.NoError(t, config.Validate())
		assert.Equal(t, huwise.DefaultAPIType, config.APIType)
	})
}

func TestConfig_BaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config huwise.Config
		want   string
	}{
		{
			name:   "plain domain",
			config: huwise.Config{Domain: "data.example.org", APIType: "automation/v1.0"},
			want:   "https://data.example.org/api/automation/v1.0",
		},
		{
			name:   "domain with scheme and trailing slash",
			config: huwise.Config{Domain: "https://data.example.org/", APIType: "automation/v1.0"},
			want:   "https://data.example.org/api/automation/v1.0",
		},
		{
			name:   "api type with surrounding slashes",
			config: huwise.Config{Domain: "data.example.org", APIType: "/automation/v1.0/"},
			want:   "https://data.example.org/api/automation/v1.0",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.want, test.config.BaseURL())
		})
	}
}

func TestConfig_AuthorizationHeader(t *testing.T) {
	t.Parallel()

	config := &huwise.Config{APIKey: "secret-key"}
	assert.Equal(t, "apikey secret-key", config.AuthorizationHeader())
}

func TestConfig_StringMasksAPIKey(t *testing.T) {
	t.Parallel()

	config := &huwise.Config{APIKey: "secret-key", Domain: "data.example.org", APIType: "automation/v1.0"}
	rendered := config.String()
	assert.NotContains(t, rendered, "secret-key")
	assert.Contains(t, rendered, "data.example.org")
}
