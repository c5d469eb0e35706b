package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"xwordcodec/internal/keystore"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent decodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *keystore.Store) error {
				records, err := store.History(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSONList(cmd, records)
				}
				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, "No decodes recorded")
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, r := range records {
					key := r.Key
					if key == "" {
						key = "-"
					}
					title := r.Title
					if r.Unsolved {
						title += " (unsolved)"
					}
					rows = append(rows, []string{
						strconv.FormatInt(r.ID, 10),
						formatTime(r.DecodedAt),
						title,
						fmt.Sprintf("%dx%d", r.Width, r.Height),
						r.Strategy,
						key,
						r.Duration.Round(time.Millisecond).String(),
					})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"ID", "Decoded", "Title", "Size", "Strategy", "Key", "Elapsed"},
					rows,
					[]columnAlignment{alignRight},
				))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of decodes to show (0 shows all)")
	return cmd
}
