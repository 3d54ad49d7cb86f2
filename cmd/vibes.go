package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scentlab/scent-cli/internal/vibe"
)

var vibesCmd = &cobra.Command{
	Use:   "vibes [id]",
	Short: "Browse the catalog by curated vibe",
	Long: `Without arguments, lists the available vibes. With a vibe id, prints the
catalog items matching that vibe.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			for _, v := range vibe.All() {
				fmt.Printf("%-10s %-18s %s\n", v.ID, v.Title, v.Description)
			}
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		v, err := vibe.Find(args[0])
		if err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		catalog, err := st.ListItems(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %s\n\n", v.Title, v.Description)
		printItemTable(v.Filter(catalog))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vibesCmd)
}
