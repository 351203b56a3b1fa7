package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/galalqassas/tender-matcher/internal/filtering"
	"github.com/galalqassas/tender-matcher/internal/tender"
	"go.uber.org/zap"
)

// ErrUserNotFound is returned when the requested user id is not present
// in the loaded collection.
var ErrUserNotFound = errors.New("user not found")

// Compatibility weights per shared attribute.
const (
	interestWeight    = 10
	languageWeight    = 30
	travelStyleWeight = 25
	activityWeight    = 10
	countryWeight     = 20
)

// Match is a ranked candidate for the current user.
type Match struct {
	UserID  int    `json:"userId"`
	Name    string `json:"name"`
	Persona string `json:"persona,omitempty"`
	Score   int    `json:"score"`
}

// Matches is an ordered result list, best score first.
type Matches struct {
	Items []*Match
}

func (m *Matches) Len() int {
	return len(m.Items)
}

// Top returns at most n best matches.
func (m *Matches) Top(n int) []*Match {
	if n <= 0 || n > len(m.Items) {
		return m.Items
	}
	return m.Items[:n]
}

func (m *Matches) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByPersona groups the ranked matches by candidate persona.
func (m *Matches) ReportByPersona() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, match := range m.Items {
		key := match.Persona
		if key == "" {
			key = tender.DefaultPersona
		}
		report[key] = append(report[key], map[string]string{
			"name":  match.Name,
			"id":    strconv.Itoa(match.UserID),
			"score": strconv.Itoa(match.Score),
		})
	}
	return report
}

// ToExcluded converts the matches into exclude-file records.
func (m *Matches) ToExcluded() *tender.ExcludedUsers {
	excluded := &tender.ExcludedUsers{}
	for _, match := range m.Items {
		excluded.Items = append(excluded.Items, &tender.ExcludedUser{
			ID:         match.UserID,
			Name:       match.Name,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}

// FindByID returns the match for the given user id, or nil.
func (m *Matches) FindByID(id int) *Match {
	for _, match := range m.Items {
		if match.UserID == id {
			return match
		}
	}
	return nil
}

// Options tunes the candidate filtering before scoring.
type Options struct {
	// ExcludeFile optionally removes users listed in the file.
	ExcludeFile string
	Logger      *zap.Logger
}

// Score computes the compatibility score between two users as a weighted
// sum of shared profile attributes. It is commutative and non-negative;
// empty attribute sets contribute zero. Duplicate elements within one
// profile count once.
func Score(a, b *tender.User) int {
	score := 0
	score += interestWeight * intersectionSize(a.Interests, b.Interests)
	score += languageWeight * intersectionSize(a.Languages, b.Languages)
	if a.TravelStyle != "" && a.TravelStyle == b.TravelStyle {
		score += travelStyleWeight
	}
	score += activityWeight * intersectionSize(a.PreferredActivities, b.PreferredActivities)
	score += countryWeight * intersectionSize(a.PreferredCountries, b.PreferredCountries)
	return score
}

// FindMatches locates the current user, filters the collection down to
// eligible complementary-role candidates, scores them and returns the
// ranked result. Candidates with equal scores keep their original order.
func FindMatches(ctx context.Context, users *tender.Users, userID int, opts Options) (*Matches, error) {
	current := users.FindByID(userID)
	if current == nil {
		return nil, fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
	}

	steps := []filtering.Filter{
		filtering.NewComplementaryRole(current),
		filtering.NewDisliked(current),
		filtering.NewExcludeFile(opts.ExcludeFile),
	}

	candidates, err := filtering.New(steps, opts.Logger).RunFilters(ctx, users.Clone())
	if err != nil {
		return nil, fmt.Errorf("filtering candidates: %w", err)
	}

	return Rank(current, candidates), nil
}

// Rank scores every candidate against the current user and sorts the
// result by descending score. The sort is stable.
func Rank(current *tender.User, candidates *tender.Users) *Matches {
	matches := &Matches{Items: make([]*Match, 0, candidates.Len())}
	for _, candidate := range candidates.Items {
		matches.Items = append(matches.Items, &Match{
			UserID:  candidate.UserID,
			Name:    candidate.UserName,
			Persona: candidate.Persona,
			Score:   Score(current, candidate),
		})
	}

	sort.SliceStable(matches.Items, func(i, j int) bool {
		return matches.Items[i].Score > matches.Items[j].Score
	})

	return matches
}

func intersectionSize(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, item := range a {
		set[item] = struct{}{}
	}

	count := 0
	for _, item := range b {
		if _, ok := set[item]; ok {
			count++
			delete(set, item)
		}
	}
	return count
}
