package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/propsignal/market-cli/internal/config"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config.yaml with all defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		const path = "config.yaml"
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return eris.Errorf("%s already exists (use --force to overwrite)", path)
		}

		out, err := yaml.Marshal(nestDefaults(config.Defaults()))
		if err != nil {
			return eris.Wrap(err, "config init: marshal defaults")
		}

		header := "# market-cli configuration. Environment variables with the MARKET_\n" +
			"# prefix override any key, e.g. MARKET_PROVIDER_API_KEY.\n"
		if err := os.WriteFile(path, append([]byte(header), out...), 0o644); err != nil {
			return eris.Wrap(err, "config init: write file")
		}

		fmt.Printf("wrote %s\n", path)
		return nil
	},
}

// nestDefaults expands dotted viper keys into nested maps for YAML output.
func nestDefaults(flat map[string]any) map[string]any {
	root := make(map[string]any)
	for key, val := range flat {
		parts := strings.Split(key, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = val
	}
	return root
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config.yaml")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
