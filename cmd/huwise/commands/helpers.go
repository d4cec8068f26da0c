package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/huwise-io/huwise-client/pkg/huwise"
	"github.com/huwise-io/huwise-client/pkg/huwiseclient"
)

// newClient builds a client from the effective configuration (flags, env,
// config file).
func newClient() (huwise.Client, error) {
	config := &huwise.Config{
		APIKey:  viper.GetString("api_key"),
		Domain:  viper.GetString("domain"),
		APIType: viper.GetString("api_type"),
	}

	return huwiseclient.New(config)
}

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

// outputYAML writes v to stdout as YAML.
func outputYAML(v any) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer func() { _ = encoder.Close() }()

	return encoder.Encode(v)
}

// renderOutput dispatches on the --output flag, falling back to the
// supplied table renderer.
func renderOutput(v any, table func() error) error {
	switch viper.GetString("output") {
	case "json":
		return outputJSON(v)
	case "yaml":
		return outputYAML(v)
	default:
		return table()
	}
}

// parseFieldArgs parses repeated key=value flags into a field map.
func parseFieldArgs(args []string) (map[string]any, error) {
	fields := make(map[string]any, len(args))

	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid field %q, expected name=value", arg)
		}

		fields[key] = value
	}

	return fields, nil
}
