package filtering

import (
	"context"
	"fmt"

	"github.com/galalqassas/tender-matcher/internal/tender"
)

type complementaryRoleFilter struct {
	current *tender.User
}

// NewComplementaryRole creates a filter that keeps only users of the role
// opposite to the current user. The current user is never of the
// complementary role, so this also removes the user itself.
func NewComplementaryRole(current *tender.User) Filter {
	return &complementaryRoleFilter{current: current}
}

func (f *complementaryRoleFilter) Name() string { return "complementary_role" }

func (f *complementaryRoleFilter) Disable(string) {}

func (f *complementaryRoleFilter) IsEnabled() bool { return true }

func (f *complementaryRoleFilter) Validate() error {
	if f.current == nil {
		return fmt.Errorf("current user is required")
	}
	if _, err := f.current.UserType.Complement(); err != nil {
		return err
	}
	return nil
}

func (f *complementaryRoleFilter) Apply(_ context.Context, u *tender.Users) (*tender.Users, Step, error) {
	initial := u.Len()

	complement, err := f.current.UserType.Complement()
	if err != nil {
		return u, Step{}, err
	}

	excluded := u.KeepRole(complement)

	return u, Step{Initial: initial, Dropped: len(excluded), Left: u.Len()}, nil
}
