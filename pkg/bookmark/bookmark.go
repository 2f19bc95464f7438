// Package bookmark stores the list of bookmarked pattern ids.
//
// The only durable user state in blocks is an ordered set of string ids.
// Three backends share the [Store] interface:
//   - [FileStore]: one JSON array in a file, for the CLI
//   - [SQLiteStore]: an embedded database, for a long-running server
//   - [RedisStore]: a Redis list, shared across server instances
//
// Every backend keeps ids in insertion order and never stores duplicates.
//
//	store, err := bookmark.NewFileStore("")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//	added, err := bookmark.Toggle(ctx, store, "dots-grid")
package bookmark

import (
	"context"
	"strings"

	"github.com/matzehuels/blocks/pkg/errors"
)

// Key is the name the bookmark list is stored under: the file name of the
// file store and the default Redis key.
const Key = "blocks-bookmarks"

// MaxIDLength bounds a single bookmark id.
const MaxIDLength = 128

// Store is an ordered, duplicate-free set of bookmark ids.
type Store interface {
	// List returns every id in insertion order. An empty store returns an
	// empty, non-nil slice.
	List(ctx context.Context) ([]string, error)
	// Add appends id unless it is already present.
	Add(ctx context.Context, id string) error
	// Remove deletes id. Removing a missing id is not an error.
	Remove(ctx context.Context, id string) error
	// Has reports whether id is bookmarked.
	Has(ctx context.Context, id string) (bool, error)
	Close() error
}

// Toggle adds id when missing and removes it when present. It reports
// whether id is bookmarked afterwards.
func Toggle(ctx context.Context, s Store, id string) (bool, error) {
	has, err := s.Has(ctx, id)
	if err != nil {
		return false, err
	}
	if has {
		return false, s.Remove(ctx, id)
	}
	return true, s.Add(ctx, id)
}

// ValidateID rejects empty, oversized or whitespace-padded ids.
func ValidateID(id string) error {
	switch {
	case id == "":
		return errors.New(errors.ErrCodeInvalidInput, "bookmark id is empty")
	case len(id) > MaxIDLength:
		return errors.New(errors.ErrCodeInvalidInput, "bookmark id longer than %d bytes", MaxIDLength)
	case strings.TrimSpace(id) != id:
		return errors.New(errors.ErrCodeInvalidInput, "bookmark id %q has surrounding whitespace", id)
	}
	return nil
}
