package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"xwordcodec/internal/config"
	"xwordcodec/internal/crossword"
	"xwordcodec/internal/fileutil"
	"xwordcodec/internal/keystore"
	"xwordcodec/internal/logging"
	"xwordcodec/internal/rawc"
	"xwordcodec/internal/textutil"
)

type decodeOptions struct {
	page     bool
	script   string
	noSearch bool
	timeout  time.Duration
	out      string
	save     bool
}

type decodeSummary struct {
	Input     string            `json:"input"`
	Title     string            `json:"title"`
	Author    string            `json:"author"`
	Size      string            `json:"size"`
	Clues     int               `json:"clues"`
	Circled   bool              `json:"circled"`
	Rebus     bool              `json:"rebus"`
	Unsolved  bool              `json:"unsolved"`
	Output    string            `json:"output,omitempty"`
	Report    *rawc.Report      `json:"report"`
	Puzzle    *crossword.Puzzle `json:"puzzle,omitempty"`
	HistoryID int64             `json:"history_id,omitempty"`
}

func newDecodeCommand(ctx *commandContext) *cobra.Command {
	var opts decodeOptions

	cmd := &cobra.Command{
		Use:   "decode [FILE|-]",
		Short: "Decode a puzzle payload into the canonical document",
		Long: "Decode an obfuscated puzzle payload read from FILE or stdin.\n\n" +
			"With --page the input is a saved solver page and the payload is located\n" +
			"inside it. Strategies run in order: direct, legacy, script, known keys,\n" +
			"then key search.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, ctx, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.page, "page", false, "Treat the input as a saved solver page")
	cmd.Flags().StringVar(&opts.script, "script", "", "Companion solver script used to find the key")
	cmd.Flags().BoolVar(&opts.noSearch, "no-search", false, "Skip the brute-force key search")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Decode deadline (default from config)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the canonical document as JSON to this file")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Write the document into the configured output directory")
	return cmd
}

func runDecode(cmd *cobra.Command, ctx *commandContext, args []string, opts decodeOptions) error {
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
	logDecodeSettings(logger, cfg)

	payload, inputName, err := readPayload(cmd, args, opts.page)
	if err != nil {
		return err
	}
	script, err := readOptionalFile(opts.script)
	if err != nil {
		return err
	}

	store, err := ctx.openStore()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	decodeOpts := rawc.Options{
		KnownLimit: cfg.Decode.KnownKeys,
		Logger:     base,
	}
	if store != nil {
		decodeOpts.KnownKeys = store
	}
	if cfg.Decode.BruteForce && !opts.noSearch {
		decodeOpts.Search = newSearchEngine(cfg, base)
	}

	runCtx := cmd.Context()
	timeout := opts.timeout
	if timeout == 0 {
		timeout = cfg.SearchTimeout()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, timeout)
		defer cancel()
	}

	doc, report, err := rawc.New(decodeOpts).Decode(runCtx, rawc.Input{Payload: payload, Script: script})
	if err != nil {
		logger.Error("decode failed",
			logging.String("input", inputName),
			logging.Error(err),
		)
		return fmt.Errorf("decode %s: %w", inputName, err)
	}

	puzzle, err := crossword.Build(doc, crossword.Options{
		CleanText:    cfg.Output.CleanText,
		PreserveHTML: cfg.Output.PreserveHTML,
	})
	if err != nil {
		return fmt.Errorf("build puzzle: %w", err)
	}

	target, err := outputTarget(cfg, opts, puzzle)
	if err != nil {
		return err
	}
	if target != "" {
		if err := writePuzzle(target, puzzle); err != nil {
			return err
		}
		logger.Info("wrote puzzle document", logging.String("path", target))
	}

	summary := decodeSummary{
		Input:    inputName,
		Title:    puzzle.DisplayTitle(),
		Author:   puzzle.Author,
		Size:     fmt.Sprintf("%dx%d", puzzle.Width, puzzle.Height),
		Clues:    len(puzzle.Clues),
		Circled:  puzzle.HasMarkup(),
		Rebus:    puzzle.HasRebus(),
		Unsolved: puzzle.Unsolved,
		Output:   target,
		Report:   report,
	}
	if target == "" {
		summary.Puzzle = puzzle
	}

	if store != nil {
		id, err := recordDecode(cmd.Context(), store, payload, puzzle, report)
		if err != nil {
			// History is best effort once the document is decoded.
			logger.Warn("record decode history failed", logging.Error(err))
		}
		summary.HistoryID = id
	}

	if ctx.jsonOutput() {
		return writeJSON(cmd, summary)
	}
	printDecodeSummary(cmd, summary)
	return nil
}

func outputTarget(cfg *config.Config, opts decodeOptions, puzzle *crossword.Puzzle) (string, error) {
	if out := strings.TrimSpace(opts.out); out != "" {
		expanded, err := config.ExpandPath(out)
		if err != nil {
			return "", fmt.Errorf("resolve output path: %w", err)
		}
		return expanded, nil
	}
	if !opts.save {
		return "", nil
	}
	name := textutil.SanitizeFileName(puzzle.Title) + ".json"
	return filepath.Join(cfg.Output.Dir, name), nil
}

func writePuzzle(path string, puzzle *crossword.Puzzle) error {
	data, err := json.MarshalIndent(puzzle, "", "  ")
	if err != nil {
		return fmt.Errorf("encode puzzle: %w", err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteNew(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// recordDecode remembers the key that worked and appends a history row.
func recordDecode(ctx context.Context, store *keystore.Store, payload string, puzzle *crossword.Puzzle, report *rawc.Report) (int64, error) {
	if len(report.Key) > 0 {
		source := report.KeySource
		if report.Strategy == rawc.StrategyKnown {
			source = ""
		}
		if err := store.Remember(ctx, report.Key, source); err != nil {
			return 0, err
		}
	}
	runID, _ := logging.RunIDFromContext(ctx)
	return store.RecordDecode(ctx, keystore.Record{
		RunID:         runID,
		PayloadSHA256: fileutil.SHA256Hex([]byte(payload)),
		Title:         puzzle.Title,
		Strategy:      string(report.Strategy),
		Key:           report.Key.String(),
		Width:         puzzle.Width,
		Height:        puzzle.Height,
		Unsolved:      puzzle.Unsolved,
		Duration:      report.Duration,
	})
}

func printDecodeSummary(cmd *cobra.Command, s decodeSummary) {
	out := cmd.OutOrStdout()
	key := "-"
	if len(s.Report.Key) > 0 {
		key = s.Report.Key.String()
		if s.Report.KeySource != "" {
			key += " (" + s.Report.KeySource + ")"
		}
	}
	rows := [][]string{
		{"Title", s.Title},
		{"Author", s.Author},
		{"Size", s.Size},
		{"Clues", strconv.Itoa(s.Clues)},
		{"Circled", yesNo(s.Circled)},
		{"Rebus", yesNo(s.Rebus)},
		{"Strategy", string(s.Report.Strategy)},
		{"Key", key},
		{"Elapsed", s.Report.Duration.Round(time.Millisecond).String()},
	}
	if s.Report.Search != nil {
		rows = append(rows, []string{"Search", searchStatsLine(*s.Report.Search)})
	}
	if s.Output != "" {
		rows = append(rows, []string{"Output", s.Output})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Field", "Value"}, rows, nil))
}

func logDecodeSettings(logger *slog.Logger, cfg *config.Config) {
	logger.Debug("decode settings",
		logging.Bool("brute_force", cfg.Decode.BruteForce),
		logging.Int("known_keys", cfg.Decode.KnownKeys),
		logging.Int("max_expansions", cfg.Decode.MaxExpansions),
		logging.Bool("key_store", cfg.KeyStore.Enabled),
	)
}
