package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lucasfauno/printdesk/internal/cli"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the sales history",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyDeleteCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all recorded transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			b, err := newBackend(ctx)
			if err != nil {
				return err
			}

			rows, err := b.ListHistory(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderHistoryTable(rows))
			return nil
		},
	}
}

func historyDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete one history entry by its listed index",
		Long: `Deletes the entry shown at the given index by "history list".
The deletion removes the row from the shared spreadsheet permanently.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil || index < 0 {
				return fmt.Errorf("index must be a non-negative number, got %q", args[0])
			}

			if !yes {
				return fmt.Errorf("deleting is permanent; re-run with --yes to confirm")
			}

			ctx := cmd.Context()
			b, err := newBackend(ctx)
			if err != nil {
				return err
			}

			if err := b.DeleteHistoryEntry(ctx, index); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("entry %d deleted", index)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the permanent deletion")

	return cmd
}
