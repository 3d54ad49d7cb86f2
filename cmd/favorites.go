package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/scentlab/scent-cli/internal/store"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorite perfumes",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		refs, err := st.ListFavorites(ctx)
		if err != nil {
			return err
		}
		if len(refs) == 0 {
			fmt.Println("No favorites yet.")
			return nil
		}
		for _, r := range refs {
			fmt.Printf("%-12s %s %s\n", r.ID, r.Brand, r.Name)
		}
		return nil
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add a catalog item to favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		ref, err := favoriteRef(ctx, st, args[0])
		if err != nil {
			return err
		}
		if err := st.AddFavorite(ctx, *ref); err != nil {
			return err
		}
		fmt.Printf("Added %s %s to favorites.\n", ref.Brand, ref.Name)
		return nil
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an item from favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.RemoveFavorite(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed %s from favorites.\n", args[0])
		return nil
	},
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Add the item to favorites, or remove it when already present",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		ref, err := favoriteRef(ctx, st, args[0])
		if err != nil {
			return err
		}
		added, err := st.ToggleFavorite(ctx, *ref)
		if err != nil {
			return err
		}
		if added {
			fmt.Printf("Added %s %s to favorites.\n", ref.Brand, ref.Name)
		} else {
			fmt.Printf("Removed %s %s from favorites.\n", ref.Brand, ref.Name)
		}
		return nil
	},
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all favorites",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.ClearFavorites(ctx); err != nil {
			return err
		}
		fmt.Println("Favorites cleared.")
		return nil
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd, favoritesAddCmd, favoritesRemoveCmd, favoritesToggleCmd, favoritesClearCmd)
	rootCmd.AddCommand(favoritesCmd)
}

// favoriteRef resolves an item id to a favorite reference, failing when
// the id is not in the catalog.
func favoriteRef(ctx context.Context, st store.Store, id string) (*store.FavoriteRef, error) {
	item, err := st.FindItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, eris.Errorf("favorites: no catalog item with id %q", id)
	}
	return &store.FavoriteRef{ID: item.ID, Brand: item.Brand, Name: item.Name}, nil
}
