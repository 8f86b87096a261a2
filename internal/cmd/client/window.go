package client

import (
	"fmt"
	"time"

	"github.com/rzbill/tape/internal/archive"
	"github.com/rzbill/tape/pkg/id"
	"github.com/rzbill/tape/pkg/log"
	"github.com/spf13/cobra"
)

// NewWindowCommand constructs the `window` command group and subcommands.
func NewWindowCommand(logger log.Logger) *cobra.Command {
	windowCmd := &cobra.Command{Use: "window", Short: "Archived window operations"}

	windowCmd.AddCommand(
		newWindowListCommand(logger),
		newWindowShowCommand(logger),
		newWindowPurgeCommand(logger),
	)

	return windowCmd
}

// newWindowListCommand constructs the `window list` subcommand.
func newWindowListCommand(logger log.Logger) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List archived windows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			reverse, _ := cmd.Flags().GetBool("reverse")

			rt, err := openRuntime(cmd, logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			metas, err := rt.Archive().List(archive.ListOptions{Limit: limit, Reverse: reverse})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range metas {
				fmt.Fprintf(out, "%s  opened=%s  closed=%s  entries=%d\n",
					m.ID.String(),
					m.OpenedAt.UTC().Format(time.RFC3339),
					m.ClosedAt.UTC().Format(time.RFC3339),
					m.Entries)
			}
			return nil
		},
	}
	addCommonFlags(listCmd)
	listCmd.Flags().Int("limit", 0, "Maximum windows to list (0 = all)")
	listCmd.Flags().Bool("reverse", false, "Newest first")
	return listCmd
}

// newWindowShowCommand constructs the `window show` subcommand.
func newWindowShowCommand(logger log.Logger) *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print a window's entries, one per line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			idHex, _ := cmd.Flags().GetString("id")
			filterExpr, _ := cmd.Flags().GetString("filter")
			limit, _ := cmd.Flags().GetInt("limit")

			windowID, err := id.Parse(idHex)
			if err != nil {
				return fmt.Errorf("invalid --id: %w", err)
			}
			filter, err := archive.NewFilter(filterExpr)
			if err != nil {
				return fmt.Errorf("invalid --filter: %w", err)
			}

			rt, err := openRuntime(cmd, logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			w, err := rt.Archive().Read(windowID, archive.ReadOptions{Limit: limit, Filter: filter})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range w.Entries {
				fmt.Fprintln(out, e.Text)
			}
			return nil
		},
	}
	addCommonFlags(showCmd)
	showCmd.Flags().String("id", "", "Window ID (hex, from `tape window list`)")
	showCmd.Flags().String("filter", "", "CEL filter over seq/ts_ms/size/text/json/now_ms")
	showCmd.Flags().Int("limit", 0, "Maximum entries to print (0 = all)")
	_ = showCmd.MarkFlagRequired("id")
	return showCmd
}

// newWindowPurgeCommand constructs the `window purge` subcommand.
func newWindowPurgeCommand(logger log.Logger) *cobra.Command {
	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete archived windows older than a cutoff",
		RunE: func(cmd *cobra.Command, _ []string) error {
			olderThan, _ := cmd.Flags().GetDuration("older-than")
			confirm, _ := cmd.Flags().GetBool("confirm")

			rt, err := openRuntime(cmd, logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			if olderThan <= 0 {
				if h := rt.Config().Archive.MaxWindowAgeHours; h > 0 {
					olderThan = time.Duration(h) * time.Hour
				} else {
					return fmt.Errorf("--older-than is required (no retention configured)")
				}
			}
			if !confirm {
				return fmt.Errorf("refusing to purge without --confirm")
			}

			cutoff := time.Now().Add(-olderThan)
			n, err := rt.Archive().PurgeOlderThan(cmd.Context(), cutoff, 256, 0)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d windows\n", n)
			return nil
		},
	}
	addCommonFlags(purgeCmd)
	purgeCmd.Flags().Duration("older-than", 0, "Cutoff age, e.g. 48h (default: archive.maxWindowAgeHours from config)")
	purgeCmd.Flags().Bool("confirm", false, "Actually delete")
	return purgeCmd
}
