package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"xwordcodec/internal/logging"
	"xwordcodec/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var opts logs.TailOptions

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent lines from the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.Paths.LogDir, logging.LogFileName)
			entries, err := logs.Tail(path, opts)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSONList(cmd, entries)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No log lines in %s\n", path)
				return nil
			}
			for _, e := range entries {
				fmt.Fprintln(out, formatLogEntry(e))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "lines", "n", 50, "Number of lines to show (0 shows all)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "Only show lines from this run id")
	cmd.Flags().StringVar(&opts.Level, "level", "", "Minimum level (debug, info, warn, error)")
	return cmd
}

func formatLogEntry(e logs.Entry) string {
	if e.Message == "" && e.Level == "" {
		return e.Raw
	}
	var b strings.Builder
	b.WriteString(formatTime(e.Time))
	b.WriteString(" ")
	b.WriteString(strings.ToUpper(e.Level))
	b.WriteString(" ")
	b.WriteString(e.Message)
	if e.RunID != "" {
		b.WriteString(" run_id=")
		b.WriteString(e.RunID)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Fields[k])
	}
	return b.String()
}
