package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gatehouse/pkg/config"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration with the source of each value
(default, file or environment).

Example:
  gatehousectl configuration show
  gatehousectl configuration show --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		switch output {
		case "json":
			data, err := json.MarshalIndent(cfg.Attributes(), "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to encode configuration: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
		default:
			fmt.Print(cfg.FormatText())
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "output format (text, json)")
}
