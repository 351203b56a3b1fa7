package filtering

import (
	"context"
	"fmt"

	"github.com/galalqassas/tender-matcher/internal/tender"
)

type dislikedFilter struct {
	current *tender.User
}

// NewDisliked creates a filter that removes users the current user has
// marked as disliked.
func NewDisliked(current *tender.User) Filter {
	return &dislikedFilter{current: current}
}

func (f *dislikedFilter) Name() string { return "disliked" }

func (f *dislikedFilter) Disable(string) {}

func (f *dislikedFilter) IsEnabled() bool { return true }

func (f *dislikedFilter) Validate() error {
	if f.current == nil {
		return fmt.Errorf("current user is required")
	}
	return nil
}

func (f *dislikedFilter) Apply(_ context.Context, u *tender.Users) (*tender.Users, Step, error) {
	initial := u.Len()
	if len(f.current.DislikedUserIDs) == 0 {
		return u, Step{Initial: initial, Dropped: 0, Left: u.Len()}, nil
	}

	excluded := u.ExcludeIDs(f.current.DislikedUserIDs)

	return u, Step{Initial: initial, Dropped: len(excluded), Left: u.Len()}, nil
}
