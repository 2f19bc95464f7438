package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blocks/pkg/bookmark"
)

// bookmarksCommand creates the bookmarks management command.
func (c *CLI) bookmarksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"bm"},
		Short:   "Manage bookmarked generator ids",
		Long: `Manage bookmarked generator ids.

Bookmarks live in the backend configured in the settings file
([bookmarks] backend = "file" | "sqlite" | "redis").`,
	}

	cmd.AddCommand(c.bookmarksListCommand())
	cmd.AddCommand(c.bookmarksMutateCommand("add", "Bookmark an id", func(ctx context.Context, s bookmark.Store, id string) error {
		if err := s.Add(ctx, id); err != nil {
			return err
		}
		printSuccess("Bookmarked %s", id)
		return nil
	}))
	cmd.AddCommand(c.bookmarksMutateCommand("remove", "Remove a bookmark", func(ctx context.Context, s bookmark.Store, id string) error {
		if err := s.Remove(ctx, id); err != nil {
			return err
		}
		printSuccess("Removed %s", id)
		return nil
	}))
	cmd.AddCommand(c.bookmarksMutateCommand("toggle", "Add the id if missing, remove it otherwise", func(ctx context.Context, s bookmark.Store, id string) error {
		added, err := bookmark.Toggle(ctx, s, id)
		if err != nil {
			return err
		}
		if added {
			printSuccess("Bookmarked %s", id)
		} else {
			printSuccess("Removed %s", id)
		}
		return nil
	}))

	return cmd
}

// bookmarksListCommand creates the "bookmarks list" subcommand.
func (c *CLI) bookmarksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bookmarks in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withBookmarks(cmd.Context(), func(ctx context.Context, s bookmark.Store) error {
				ids, err := s.List(ctx)
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					printInfo("No bookmarks")
					return nil
				}
				for _, id := range ids {
					fmt.Fprintln(c.stdout(), id)
				}
				return nil
			})
		},
	}
}

// bookmarksMutateCommand creates a subcommand taking a single id.
func (c *CLI) bookmarksMutateCommand(use, short string, fn func(context.Context, bookmark.Store, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withBookmarks(cmd.Context(), func(ctx context.Context, s bookmark.Store) error {
				return fn(ctx, s, args[0])
			})
		},
	}
}

// withBookmarks opens the configured bookmark store for the duration of fn.
func (c *CLI) withBookmarks(ctx context.Context, fn func(context.Context, bookmark.Store) error) error {
	s, err := c.settings()
	if err != nil {
		return err
	}
	store, err := s.Bookmarks.Open(ctx)
	if err != nil {
		return fmt.Errorf("open bookmarks: %w", err)
	}
	defer store.Close()
	c.Logger.Debug("bookmark store", "backend", s.Bookmarks.Backend)
	return fn(ctx, store)
}
