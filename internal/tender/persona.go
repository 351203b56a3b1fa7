package tender

const (
	// DefaultPersona is assigned to users with no interests.
	DefaultPersona = "Wanderer"
	// EclecticPersona is assigned when interests match no keyword set.
	EclecticPersona = "Eclectic Traveler"
)

type personaDefinition struct {
	Name     string
	Keywords []string
}

// personaDefinitions order matters: ties resolve to the first entry.
var personaDefinitions = []personaDefinition{
	{Name: "The Adventure Seeker", Keywords: []string{"Hike", "Mountain", "Safari", "Canyon", "River"}},
	{Name: "The Cultured Explorer", Keywords: []string{"Museum", "Art", "Gallery", "Historic", "Palace", "Temple", "Castle", "Church", "Mosque"}},
	{Name: "The Urban Wanderer", Keywords: []string{"Market", "Shopping", "Food", "Tour"}},
	{Name: "The Nature Lover", Keywords: []string{"Park", "Beach", "Island", "Lake", "Zoo", "Aquarium"}},
}

// TravelKeywords returns every keyword known to the persona definitions.
// The AI suggester only accepts tags from this list.
func TravelKeywords() []string {
	seen := make(map[string]struct{})
	var keywords []string
	for _, def := range personaDefinitions {
		for _, kw := range def.Keywords {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// CalculatePersona derives a travel persona from the interests list by
// counting keyword hits per persona definition.
func CalculatePersona(interests []string) string {
	if len(interests) == 0 {
		return DefaultPersona
	}

	scores := make(map[string]int, len(personaDefinitions))
	for _, interest := range interests {
		for _, def := range personaDefinitions {
			for _, kw := range def.Keywords {
				if interest == kw {
					scores[def.Name]++
				}
			}
		}
	}

	best := ""
	bestScore := 0
	for _, def := range personaDefinitions {
		if scores[def.Name] > bestScore {
			best = def.Name
			bestScore = scores[def.Name]
		}
	}

	if bestScore == 0 {
		return EclecticPersona
	}

	return best
}

// RecalculatePersona updates the user's persona in place.
func (u *User) RecalculatePersona() {
	u.Persona = CalculatePersona(u.Interests)
}

// AddInterests appends tags not already present in the user's interests
// and returns the number of tags added.
func (u *User) AddInterests(tags []string) int {
	existing := make(map[string]struct{}, len(u.Interests))
	for _, interest := range u.Interests {
		existing[interest] = struct{}{}
	}

	added := 0
	for _, tag := range tags {
		if _, ok := existing[tag]; ok {
			continue
		}
		existing[tag] = struct{}{}
		u.Interests = append(u.Interests, tag)
		added++
	}
	return added
}
