package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/galalqassas/tender-matcher/internal/ai"
	"github.com/galalqassas/tender-matcher/internal/tender"
	"github.com/galalqassas/tender-matcher/internal/utils"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Suggester synthesizes preference tags from liked activity cards.
type Suggester struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	// maxActivitiesPerCard caps how many activities of a card go into the prompt.
	maxActivitiesPerCard = 5
)

func NewSuggester(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Suggester {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Suggester{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (s *Suggester) Suggest(ctx context.Context, profile *tender.User, liked []*tender.Activity) (*ai.Suggestions, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if len(liked) == 0 {
		return nil, fmt.Errorf("at least one liked card is required")
	}

	likedPayload := make([]map[string]any, 0, len(liked))
	for _, card := range liked {
		activities := card.Activities
		if len(activities) > maxActivitiesPerCard {
			activities = activities[:maxActivitiesPerCard]
		}
		likedPayload = append(likedPayload, map[string]any{
			"city":       card.City,
			"country":    card.Country,
			"activities": activities,
		})
	}

	likedJSON, err := json.MarshalIndent(likedPayload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal liked cards payload: %w", err)
	}

	allowed := tender.TravelKeywords()
	allowedJSON, err := json.Marshal(allowed)
	if err != nil {
		return nil, fmt.Errorf("marshal allowed tags: %w", err)
	}

	interestsJSON, err := json.Marshal(profile.Interests)
	if err != nil {
		return nil, fmt.Errorf("marshal current interests: %w", err)
	}

	prompt := buildPrompt(string(likedJSON), string(allowedJSON), string(interestsJSON))

	s.logger.Debug("gemini suggestion request",
		zap.Int("user_id", profile.UserID),
		zap.Int("liked_cards", len(liked)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini suggestion response",
		zap.Int("user_id", profile.UserID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	tags, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	kept, dropped := restrictToAllowed(tags, allowed)
	if len(dropped) > 0 {
		s.logger.Warn("dropping suggestions outside the allowed tag list",
			zap.Strings("dropped", dropped),
		)
	}

	return &ai.Suggestions{Tags: kept, Raw: raw}, nil
}

func buildPrompt(likedJSON, allowedTags, currentInterests string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Liked:\n{{LIKED_JSON}}\n\nAllowed tags:\n{{ALLOWED_TAGS}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{LIKED_JSON}}", likedJSON)
	prompt = strings.ReplaceAll(prompt, "{{ALLOWED_TAGS}}", allowedTags)
	prompt = strings.ReplaceAll(prompt, "{{CURRENT_INTERESTS}}", currentInterests)
	return prompt
}

func parseResponse(raw string) ([]string, error) {
	cleaned := extractJSON(raw)

	var data struct {
		Suggestions []any `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	tags := make([]string, 0, len(data.Suggestions))
	for _, item := range data.Suggestions {
		tag := coerceString(item)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

func restrictToAllowed(tags, allowed []string) (kept, dropped []string) {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, tag := range allowed {
		allowedSet[tag] = struct{}{}
	}

	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, ok := allowedSet[tag]; !ok {
			dropped = append(dropped, tag)
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		kept = append(kept, tag)
	}
	return kept, dropped
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
