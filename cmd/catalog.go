package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scentlab/scent-cli/internal/model"
	"github.com/scentlab/scent-cli/internal/store"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and load the perfume catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all catalog items",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		items, err := st.ListItems(ctx)
		if err != nil {
			return err
		}
		printItemTable(items)
		return nil
	},
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog by brand or name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		items, err := st.SearchItems(ctx, args[0], limit)
		if err != nil {
			return err
		}
		printItemTable(items)
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single catalog item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		item, err := st.FindItem(ctx, args[0])
		if err != nil {
			return err
		}
		if item == nil {
			return eris.Errorf("catalog: no item with id %q", args[0])
		}
		printItemDetail(item)
		return nil
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import catalog items from JSON or YAML seed files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogImport,
}

func init() {
	catalogSearchCmd.Flags().Int("limit", 0, "maximum number of results (0=default)")
	catalogImportCmd.Flags().Bool("if-empty", false, "import only when the catalog holds no items yet")

	catalogCmd.AddCommand(catalogListCmd, catalogSearchCmd, catalogShowCmd, catalogImportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ifEmpty, _ := cmd.Flags().GetBool("if-empty")

	// Parse all seed files concurrently before touching the store.
	parsed := make([][]model.Item, len(args))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range args {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items, err := store.LoadSeedFile(path)
			if err != nil {
				return err
			}
			parsed[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var items []model.Item
	for _, batch := range parsed {
		items = append(items, batch...)
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	var n int
	if ifEmpty {
		n, err = store.SeedIfEmpty(ctx, st, items)
	} else {
		n, err = st.UpsertItems(ctx, items)
	}
	if err != nil {
		return err
	}

	if ifEmpty && n == 0 {
		fmt.Println("Catalog already populated, nothing imported.")
		return nil
	}

	zap.L().Info("catalog import complete",
		zap.Int("files", len(args)),
		zap.Int("items", n),
	)
	fmt.Printf("Imported %d items from %d file(s).\n", n, len(args))
	return nil
}

func printItemTable(items []model.Item) {
	if len(items) == 0 {
		fmt.Println("No items.")
		return
	}
	fmt.Printf("%-12s %-20s %-30s %-8s\n", "ID", "Brand", "Name", "Intensity")
	fmt.Println(strings.Repeat("-", 74))
	for _, it := range items {
		fmt.Printf("%-12s %-20s %-30s %-8s\n", it.ID, it.Brand, it.Name, it.Intensity)
	}
}

func printItemDetail(it *model.Item) {
	fmt.Printf("ID:            %s\n", it.ID)
	fmt.Printf("Brand:         %s\n", it.Brand)
	fmt.Printf("Name:          %s\n", it.Name)
	if it.Concentration != "" {
		fmt.Printf("Concentration: %s\n", it.Concentration)
	}
	if it.Gender != "" {
		fmt.Printf("Gender:        %s\n", it.Gender)
	}
	if it.Year != 0 {
		fmt.Printf("Year:          %d\n", it.Year)
	}
	fmt.Printf("Intensity:     %s\n", it.Intensity)
	if it.Longevity != 0 {
		fmt.Printf("Longevity:     %d h\n", it.Longevity)
	}
	if len(it.Notes) > 0 {
		fmt.Printf("Notes:         %s\n", strings.Join(it.Notes, ", "))
	}
	if len(it.Season) > 0 {
		fmt.Printf("Seasons:       %s\n", joinSeasons(it.Season))
	}
	if len(it.Occasion) > 0 {
		fmt.Printf("Occasions:     %s\n", joinOccasions(it.Occasion))
	}
}

func joinSeasons(seasons []model.Season) string {
	parts := make([]string, len(seasons))
	for i, s := range seasons {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func joinOccasions(occasions []model.Occasion) string {
	parts := make([]string, len(occasions))
	for i, o := range occasions {
		parts[i] = string(o)
	}
	return strings.Join(parts, ", ")
}
