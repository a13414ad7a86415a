// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/officekit/internal/journal"
	"github.com/pdiddy/officekit/pkg/types"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit  int
		action string
		status string
		export string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently processed files",
		Long: `History lists the files officekit has converted, compressed or deleted,
newest first, from the journal database. Use --export to dump the records
as YAML or JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := journal.QueryOptions{Action: action, Status: types.Status(status), Limit: limit}
			if action != "" {
				act, err := types.ParseActionName(action)
				if err != nil {
					return err
				}
				opts.Action = act.String()
			}
			switch types.Status(status) {
			case "", types.StatusDone, types.StatusSkipped, types.StatusFailed:
			default:
				return fmt.Errorf("%w: unknown status %q", types.ErrInvalidChoice, status)
			}

			store, err := openJournal(a.cfg.Journal)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if export != "" {
				return store.Export(cmd.Context(), out, journal.Format(export), opts)
			}

			records, err := store.List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printRecords(out, records)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", journal.DefaultLimit, "maximum records to show")
	cmd.Flags().StringVar(&action, "action", "", "filter by action: pdf2docx, docx2pdf, compress or delete")
	cmd.Flags().StringVar(&status, "status", "", "filter by status: done, skipped or failed")
	cmd.Flags().StringVar(&export, "export", "", "export format: yaml or json")
	return cmd
}

func printRecords(w io.Writer, records []types.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No history recorded.")
		return
	}
	for _, r := range records {
		line := fmt.Sprintf("%s  %-8s  %-7s  %s", r.Time.Local().Format("2006-01-02 15:04:05"), r.Action, r.Status, r.Input)
		if r.Output != "" {
			line += " -> " + r.Output
		}
		if r.Error != "" {
			line += "  (" + r.Error + ")"
		}
		fmt.Fprintln(w, line)
	}
}
