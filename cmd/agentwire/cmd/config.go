package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentwire/agentwire/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialize configuration",
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .agentwire.yaml in the current directory",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as JSON",
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false,
		"overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cobraCmd *cobra.Command, _ []string) error {
	const path = ".agentwire.yaml"

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.WriteFileAtomic(path, []byte(config.DefaultConfigYAML)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cobraCmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigShow(cobraCmd *cobra.Command, _ []string) error {
	cfg, _, err := initRuntime()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cobraCmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}
