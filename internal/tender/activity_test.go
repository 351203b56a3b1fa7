package tender

import "testing"

func testDeck() *Deck {
	deck := NewDeck(&Activities{Items: []*Activity{
		{City: "Cairo", Country: "Egypt", Activities: []string{"Pyramids Tour", "Market Walk"}},
		{City: "Bali", Country: "Indonesia", Activities: []string{"Beach Day", "Temple Visit"}},
		{City: "Zermatt", Country: "Switzerland", Activities: []string{"Mountain Hike"}},
	}})
	// deterministic order for tests
	deck.shuffle = func([]*Activity) {}
	return deck
}

func TestDeckPrefersInterestMatch(t *testing.T) {
	deck := testDeck()
	profile := &User{Interests: []string{"Beach"}}

	card := deck.Next(profile)
	if card == nil || card.City != "Bali" {
		t.Fatalf("expected Bali first, got %+v", card)
	}
}

func TestDeckSkipsSeenAndExhausts(t *testing.T) {
	deck := testDeck()
	profile := &User{Interests: []string{"Hike"}}

	first := deck.Next(profile)
	if first == nil || first.City != "Zermatt" {
		t.Fatalf("expected Zermatt first, got %+v", first)
	}

	// no interest match left, fall back to unseen cards in order
	second := deck.Next(profile)
	if second == nil || second.City != "Cairo" {
		t.Fatalf("expected Cairo second, got %+v", second)
	}

	third := deck.Next(profile)
	if third == nil || third.City != "Bali" {
		t.Fatalf("expected Bali third, got %+v", third)
	}

	if card := deck.Next(profile); card != nil {
		t.Fatalf("expected exhausted deck, got %+v", card)
	}

	if deck.Seen() != 3 {
		t.Fatalf("expected 3 seen cards, got %d", deck.Seen())
	}
}

func TestDeckWithoutInterests(t *testing.T) {
	deck := testDeck()

	card := deck.Next(&User{})
	if card == nil || card.City != "Cairo" {
		t.Fatalf("expected first unseen card, got %+v", card)
	}
}

func TestActivityKey(t *testing.T) {
	card := &Activity{City: "Cairo", Country: "Egypt"}
	if card.Key() != "Cairo-Egypt" {
		t.Fatalf("unexpected key: %q", card.Key())
	}
}

func TestMatchesInterestCaseInsensitive(t *testing.T) {
	card := &Activity{Activities: []string{"Sunset Beach Walk"}}

	if !matchesInterest(card, "beach") {
		t.Fatalf("expected case-insensitive substring match")
	}
	if matchesInterest(card, "museum") {
		t.Fatalf("did not expect a match")
	}
}
