package huwise

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/huwise-io/huwise-client/internal/constants"
)

// DefaultAPIType is the API version path segment used when none is
// configured.
const DefaultAPIType = "automation/v1.0"

// Config holds the settings needed to reach one Huwise portal. It is
// constructed once per credential set and never mutated afterwards.
type Config struct {
	// APIKey authenticates requests via the Authorization header.
	APIKey string

	// Domain is the portal hostname (e.g. "data.example.org").
	Domain string

	// APIType is the API version path segment. Defaults to DefaultAPIType.
	APIType string
}

// NewConfigFromEnv loads configuration from HUWISE_API_KEY, HUWISE_DOMAIN
// and HUWISE_API_TYPE environment variables. Missing required settings fail
// immediately rather than producing a client that cannot authenticate.
func NewConfigFromEnv() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HUWISE")
	v.AutomaticEnv()
	v.SetDefault("api_type", DefaultAPIType)

	config := &Config{
		APIKey:  v.GetString("api_key"),
		Domain:  v.GetString("domain"),
		APIType: v.GetString("api_type"),
	}

	err := config.Validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks required settings and fills in defaults.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w (set HUWISE_API_KEY)", ErrAPIKeyRequired)
	}

	if c.Domain == "" {
		return fmt.Errorf("%w (set HUWISE_DOMAIN)", ErrDomainRequired)
	}

	if c.APIType == "" {
		c.APIType = DefaultAPIType
	}

	return nil
}

// BaseURL returns the full base URL for API requests, without trailing slash.
func (c *Config) BaseURL() string {
	domain := strings.TrimSuffix(strings.TrimPrefix(c.Domain, "https://"), "/")
	apiType := strings.Trim(c.APIType, "/")

	return fmt.Sprintf("https://%s/api/%s", domain, apiType)
}

// AuthorizationHeader returns the value for the Authorization header.
func (c *Config) AuthorizationHeader() string {
	return "apikey " + c.APIKey
}

// String returns a representation with the API key masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config(domain=%s, api_type=%s, api_key=%s)",
		c.Domain, c.APIType, constants.MaskedSecret)
}
