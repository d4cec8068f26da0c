package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/huwise-io/huwise-client/pkg/huwise"
)

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetKeyCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration with the API key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := &huwise.Config{
				APIKey:  viper.GetString("api_key"),
				Domain:  viper.GetString("domain"),
				APIType: viper.GetString("api_type"),
			}
			if config.APIType == "" {
				config.APIType = huwise.DefaultAPIType
			}

			fmt.Fprintln(os.Stdout, config.String())

			return nil
		},
	}
}

func newConfigSetKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key",
		Short: "Prompt for the API key and store it in the config file",
		Long: `Prompt for the API key without echoing it to the terminal and store
it in $HOME/.huwise/config.yml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(os.Stderr, "API key: ")

			key, err := term.ReadPassword(int(syscall.Stdin))

			fmt.Fprintln(os.Stderr)

			if err != nil {
				return fmt.Errorf("reading API key: %w", err)
			}

			if len(key) == 0 {
				return huwise.ErrAPIKeyRequired
			}

			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("finding home directory: %w", err)
			}

			configDir := filepath.Join(home, ".huwise")

			err = os.MkdirAll(configDir, 0o750)
			if err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}

			viper.Set("api_key", string(key))

			configFile := filepath.Join(configDir, "config.yml")

			err = viper.WriteConfigAs(configFile)
			if err != nil {
				return fmt.Errorf("writing config file: %w", err)
			}

			fmt.Fprintln(os.Stdout, "API key stored in", configFile)

			return nil
		},
	}
}
