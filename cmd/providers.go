package cmd

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "list the enabled lookup providers",
	Run:   execProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func execProviders(cmd *cobra.Command, args []string) {
	registry, err := buildRegistry(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build the provider registry")
	}

	if err := writeJSON(os.Stdout, listProviders(registry)); err != nil {
		log.Fatal().Err(err).Msg("failed to list providers")
	}
}
