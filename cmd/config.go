package cmd

import (
	"io"
	"maps"

	"github.com/spf13/cobra"

	"github.com/eveoh/mytimetable-api-client/config"
)

var showSecrets bool

// configCmd groups the configuration commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration as properties",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeProperties(cmd.OutOrStdout(), cfg.ToProperties(), showSecrets)
	},
}

func init() {
	configShowCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print the API key instead of masking it")
	configCmd.AddCommand(configShowCmd)
}

// writeProperties prints props sorted by key in properties syntax, masking the API key
// unless secrets is set
func writeProperties(w io.Writer, props map[string]string, secrets bool) error {
	if v := props[config.KeyAPIKey]; v != "" && !secrets {
		masked := maps.Clone(props)
		masked[config.KeyAPIKey] = "********"
		props = masked
	}
	return config.WriteProperties(w, props)
}
