package tender

import "testing"

func TestCalculatePersona(t *testing.T) {
	cases := []struct {
		name      string
		interests []string
		want      string
	}{
		{name: "no interests", interests: nil, want: DefaultPersona},
		{name: "no keyword hits", interests: []string{"Karaoke", "Chess"}, want: EclecticPersona},
		{name: "adventure", interests: []string{"Hike", "Mountain", "Museum"}, want: "The Adventure Seeker"},
		{name: "cultured", interests: []string{"Museum", "Palace", "Hike"}, want: "The Cultured Explorer"},
		{name: "nature", interests: []string{"Beach", "Island", "Lake"}, want: "The Nature Lover"},
		{name: "tie resolves to first persona", interests: []string{"Hike", "Museum"}, want: "The Adventure Seeker"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculatePersona(tc.interests); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTravelKeywordsUnique(t *testing.T) {
	keywords := TravelKeywords()
	if len(keywords) == 0 {
		t.Fatalf("expected keywords")
	}

	seen := make(map[string]struct{})
	for _, kw := range keywords {
		if _, dup := seen[kw]; dup {
			t.Fatalf("duplicate keyword %q", kw)
		}
		seen[kw] = struct{}{}
	}
}

func TestAddInterests(t *testing.T) {
	user := &User{Interests: []string{"Hike"}}

	added := user.AddInterests([]string{"Hike", "Museum", "Museum", "Park"})

	if added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}
	if len(user.Interests) != 3 {
		t.Fatalf("unexpected interests: %v", user.Interests)
	}
}

func TestRecalculatePersona(t *testing.T) {
	user := &User{Interests: []string{"Beach"}}
	user.RecalculatePersona()

	if user.Persona != "The Nature Lover" {
		t.Fatalf("unexpected persona: %q", user.Persona)
	}

	user.AddInterests([]string{"Hike", "Mountain"})
	user.RecalculatePersona()

	if user.Persona != "The Adventure Seeker" {
		t.Fatalf("unexpected persona after update: %q", user.Persona)
	}
}
