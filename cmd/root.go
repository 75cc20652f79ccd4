package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"vaultsweep/internal/vault"
)

var vaultPath string

var rootCmd = &cobra.Command{
	Use:   "vaultsweep",
	Short: "AI-assisted review and cleanup of a notes vault",
	Long: `vaultsweep walks a directory of markdown notes, scores each one for
relevance through an AI oracle, and drives an interactive keep/delete/enhance
workflow with resumable progress.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// .env is optional; it typically carries OPENAI_API_KEY.
	_ = godotenv.Load()
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", "", "Path to the notes vault (default: $VAULTSWEEP_VAULT or the current directory)")
}

// DiscoverVault finds the vault root using priority: flag > env > CWD.
func DiscoverVault() (string, error) {
	if vaultPath != "" {
		return vaultPath, nil
	}
	if envPath := os.Getenv("VAULTSWEEP_VAULT"); envPath != "" {
		return envPath, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return cwd, nil
}

// OpenVault discovers and opens the vault.
func OpenVault() (*vault.Vault, error) {
	root, err := DiscoverVault()
	if err != nil {
		return nil, err
	}
	return vault.Open(root)
}
