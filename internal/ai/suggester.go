package ai

import (
	"context"

	"github.com/galalqassas/tender-matcher/internal/tender"
)

// Suggestions holds preference tags synthesized from a user's liked cards.
type Suggestions struct {
	Tags []string
	Raw  string
}

type Suggester interface {
	Suggest(ctx context.Context, profile *tender.User, liked []*tender.Activity) (*Suggestions, error)
}
