package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vaultsweep/internal/settings"
)

var (
	cfgAutoKeep        bool
	cfgAutoDelete      bool
	cfgKeepThreshold   int
	cfgDeleteThreshold int
	cfgNotify          bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the persisted auto-decision configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := OpenVault()
		if err != nil {
			return err
		}
		cfg, err := settings.Load(v.StateFile(settings.FileName))
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update and persist auto-decision settings",
	Long: `Updates the configuration record in the vault root. Only flags given
explicitly change; everything else keeps its current value. Thresholds are
validated before anything is written: auto-keep lives in 7-10, auto-delete
in 0-3, and they can never overlap.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := OpenVault()
		if err != nil {
			return err
		}
		path := v.StateFile(settings.FileName)
		cfg, err := settings.Load(path)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("auto-keep") {
			cfg.AutoKeepEnabled = cfgAutoKeep
		}
		if cmd.Flags().Changed("auto-delete") {
			cfg.AutoDeleteEnabled = cfgAutoDelete
		}
		if cmd.Flags().Changed("keep-threshold") {
			cfg.AutoKeepThreshold = cfgKeepThreshold
		}
		if cmd.Flags().Changed("delete-threshold") {
			cfg.AutoDeleteThreshold = cfgDeleteThreshold
		}
		if cmd.Flags().Changed("notify") {
			cfg.Notify = cfgNotify
		}

		if err := settings.Save(path, cfg); err != nil {
			return err
		}
		fmt.Printf("Configuration saved to %s\n", path)
		return nil
	},
}

func init() {
	configSetCmd.Flags().BoolVar(&cfgAutoKeep, "auto-keep", true, "Enable auto-keep")
	configSetCmd.Flags().BoolVar(&cfgAutoDelete, "auto-delete", false, "Enable auto-delete")
	configSetCmd.Flags().IntVar(&cfgKeepThreshold, "keep-threshold", 8, "Auto-keep threshold (7-10)")
	configSetCmd.Flags().IntVar(&cfgDeleteThreshold, "delete-threshold", 2, "Auto-delete threshold (0-3)")
	configSetCmd.Flags().BoolVar(&cfgNotify, "notify", true, "Announce auto-decisions during review")
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
