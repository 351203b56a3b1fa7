package filtering

import (
	"context"
	"fmt"

	"github.com/galalqassas/tender-matcher/internal/tender"
)

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that removes users contained in an
// exclude file.
func NewExcludeFile(path string) Filter {
	return &excludeFileFilter{path: path}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Validate() error { return nil }

func (f *excludeFileFilter) Apply(_ context.Context, u *tender.Users) (*tender.Users, Step, error) {
	initial := u.Len()
	if f.path == "" {
		return u, Step{Initial: initial, Dropped: 0, Left: u.Len()}, nil
	}

	excluded, err := tender.GetExcludedUsersFromFile(f.path)
	if err != nil {
		return u, Step{}, fmt.Errorf("getting excluded users from file: %w", err)
	}

	removed := u.ExcludeIDs(excluded.IDs())

	return u, Step{Initial: initial, Dropped: len(removed), Left: u.Len()}, nil
}
