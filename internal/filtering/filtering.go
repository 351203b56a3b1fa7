package filtering

import (
	"context"
	"fmt"

	"github.com/galalqassas/tender-matcher/internal/tender"
	"go.uber.org/zap"
)

// Filter represents a single filtering step applied to the candidate set.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate() error
	Apply(ctx context.Context, u *tender.Users) (*tender.Users, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Filtering runs an ordered list of filters over a candidate set.
type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Filtering {
	return &Filtering{steps: steps, logger: logger}
}

// RunFilters executes the filters sequentially. Filters preserve the
// original candidate order, which the ranking tie-break relies on.
func (f *Filtering) RunFilters(ctx context.Context, users *tender.Users) (*tender.Users, error) {
	for _, step := range f.steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range f.steps {
		if !step.IsEnabled() {
			if f.logger != nil {
				f.logger.Info("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, users)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if f.logger != nil {
			f.logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		users = next
	}

	return users, nil
}
