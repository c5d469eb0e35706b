package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"xwordcodec/internal/keysearch"
	"xwordcodec/internal/logging"
	"xwordcodec/internal/obfuscation"
)

type recoverOutput struct {
	Key    obfuscation.Key `json:"key"`
	Bytes  int             `json:"plaintext_bytes"`
	Stats  keysearch.Stats `json:"stats"`
	Stored bool            `json:"stored"`
}

func newRecoverKeyCommand(ctx *commandContext) *cobra.Command {
	var page bool
	var noSeed bool
	var remember bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "recover-key [FILE|-]",
		Short: "Search for the key of an obfuscated payload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			base, closer, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			defer closer.Close()
			logger := logging.WithContext(cmd.Context(), base)

			payload, inputName, err := readPayload(cmd, args, page)
			if err != nil {
				return err
			}

			engine := newSearchEngine(cfg, base)
			if noSeed {
				engine = keysearch.New(keysearch.Options{
					Seeder:        keysearch.NoSeed{},
					MaxExpansions: cfg.Decode.MaxExpansions,
					Logger:        base,
				})
			}

			runCtx := cmd.Context()
			deadline := timeout
			if deadline == 0 {
				deadline = cfg.SearchTimeout()
			}
			if deadline > 0 {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(runCtx, deadline)
				defer cancel()
			}

			result, err := engine.Recover(runCtx, payload)
			if err != nil {
				if errors.Is(err, keysearch.ErrKeyNotFound) {
					logger.Warn("key search exhausted",
						logging.String("input", inputName),
						logging.Int("expanded", result.Stats.Expanded),
					)
				}
				return fmt.Errorf("recover key for %s: %w", inputName, err)
			}

			out := recoverOutput{
				Key:   result.Key,
				Bytes: len(result.Plaintext),
				Stats: result.Stats,
			}
			if remember {
				store, err := ctx.openStore()
				if err != nil {
					return err
				}
				if store != nil {
					err = store.Remember(cmd.Context(), result.Key, "search")
					store.Close()
					if err != nil {
						return err
					}
					out.Stored = true
				}
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, out)
			}
			w := cmd.OutOrStdout()
			rows := [][]string{
				{"Key", result.Key.String()},
				{"Plaintext", strconv.Itoa(out.Bytes) + " bytes"},
				{"Search", searchStatsLine(result.Stats)},
				{"Stored", yesNo(out.Stored)},
			}
			fmt.Fprintln(w, renderTable(w, []string{"Field", "Value"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&page, "page", false, "Treat the input as a saved solver page")
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Search the whole key space without a seeded prefix")
	cmd.Flags().BoolVar(&remember, "remember", false, "Store the recovered key for later decodes")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Search deadline (default from config)")
	return cmd
}
