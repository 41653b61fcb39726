package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cloud66-oss/geolookup/utils"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [ip]",
	Short: "look up an address, or this host's public address, and print the result",
	Args:  cobra.MaximumNArgs(1),
	Run:   execLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func execLookup(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	engine, executor, err := buildEngine(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build the lookup engine")
	}

	req := utils.LookupRequest{}
	if len(args) == 1 {
		req.IP = args[0]
	}

	code := runLookup(ctx, engine, req, os.Stdout)

	executor.Release()
	os.Exit(code)
}

// runLookup prints the result, or the error body, as indented JSON and
// returns the process exit code.
func runLookup(ctx context.Context, engine lookupEngine, req utils.LookupRequest, out io.Writer) int {
	result, err := engine.Lookup(ctx, req)
	if err != nil {
		status, body := errorResponse(err)
		log.Debug().Int("status", status).Err(err).Msg("lookup failed")

		if err := writeJSON(out, body); err != nil {
			log.Error().Err(err).Msg("failed to write the error")
		}

		return 1
	}

	if err := writeJSON(out, result); err != nil {
		log.Error().Err(err).Msg("failed to write the result")
		return 1
	}

	return 0
}

func writeJSON(out io.Writer, value interface{}) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode the output: %w", err)
	}

	_, err = fmt.Fprintln(out, string(data))

	return err
}
