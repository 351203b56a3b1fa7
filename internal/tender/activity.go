package tender

import (
	"fmt"
	"math/rand"
	"strings"
)

type Activities struct {
	Items []*Activity
}

// Activity is a swipeable destination card.
type Activity struct {
	City       string   `csv:"city" json:"city"`
	Country    string   `csv:"country" json:"country"`
	Activities []string `csv:"activities" json:"activities"`

	// ImageURL is resolved lazily and never comes from the source data.
	ImageURL string `csv:"-" json:"image_url,omitempty"`
}

// Key identifies a card within a swipe session.
func (a *Activity) Key() string {
	return fmt.Sprintf("%s-%s", a.City, a.Country)
}

func (a *Activities) Len() int {
	return len(a.Items)
}

// Deck deals activity cards for a swipe session, preferring cards that
// match the profile's interests.
type Deck struct {
	activities *Activities
	seen       map[string]struct{}
	shuffle    func([]*Activity)
}

func NewDeck(activities *Activities) *Deck {
	return &Deck{
		activities: activities,
		seen:       make(map[string]struct{}),
		shuffle: func(items []*Activity) {
			rand.Shuffle(len(items), func(i, j int) {
				items[i], items[j] = items[j], items[i]
			})
		},
	}
}

// Next returns an unseen card, preferring one whose activities mention any
// of the profile's interests. It returns nil when the deck is exhausted.
// The returned card is marked as seen.
func (d *Deck) Next(profile *User) *Activity {
	items := make([]*Activity, len(d.activities.Items))
	copy(items, d.activities.Items)
	d.shuffle(items)

	if profile != nil && len(profile.Interests) > 0 {
		for _, interest := range profile.Interests {
			for _, card := range items {
				if _, ok := d.seen[card.Key()]; ok {
					continue
				}
				if matchesInterest(card, interest) {
					d.seen[card.Key()] = struct{}{}
					return card
				}
			}
		}
	}

	for _, card := range items {
		if _, ok := d.seen[card.Key()]; !ok {
			d.seen[card.Key()] = struct{}{}
			return card
		}
	}
	return nil
}

func (d *Deck) Seen() int {
	return len(d.seen)
}

func matchesInterest(card *Activity, interest string) bool {
	needle := strings.ToLower(interest)
	for _, activity := range card.Activities {
		if strings.Contains(strings.ToLower(activity), needle) {
			return true
		}
	}
	return false
}
