package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/galalqassas/tender-matcher/internal/ai"
	"github.com/galalqassas/tender-matcher/internal/ai/gemini"
	"github.com/galalqassas/tender-matcher/internal/logger"
	"github.com/galalqassas/tender-matcher/internal/pexels"
	"github.com/galalqassas/tender-matcher/internal/secrets"
	"github.com/galalqassas/tender-matcher/internal/swipes"
	"github.com/galalqassas/tender-matcher/internal/tender"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptLike = "Like"
	PromptPass = "Pass"
	PromptQuit = "Quit"
	PromptYes  = "Yes"
	PromptNo   = "No"

	defaultMaxSwipes    = 20
	defaultSuggestEvery = 10
)

var swipeActionPrompt = promptui.Select{
	Label: "Swipe",
	Items: []string{PromptLike, PromptPass, PromptQuit},
}

var swipeCmd = &cobra.Command{
	Use:   "swipe",
	Short: "Swipe on destination cards and refine the user's travel preferences",
	Run: func(cmd *cobra.Command, _ []string) {
		runSwipe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(swipeCmd)

	swipeCmd.Flags().IntP("user", "u", 0, "id of the user running the session")
	swipeCmd.Flags().Int("max-swipes", 0, "session length (overrides swipe.max-swipes)")
}

// runSwipe drives an interactive swipe session for one user.
func runSwipe(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting the tender-matcher swipe session", zap.String("version", version))

	if config == nil {
		zlog.Fatal("config is required")
	}

	if config.UsersFile == "" || config.ActivitiesFile == "" {
		zlog.Fatal("both users-file and activities-file are required for a swipe session")
	}

	userID, err := cmd.Flags().GetInt("user")
	if err != nil || userID == 0 {
		zlog.Fatal("a user id is required", zap.String("hint", "pass it with --user"))
	}

	client := tender.New(ctx, zlog)
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	users, err := client.LoadUsers(config.UsersFile)
	if err != nil {
		zlog.Fatal("loading users", zap.Error(err))
	}

	current := users.FindByID(userID)
	if current == nil {
		zlog.Fatal("user with given id not found",
			zap.Int("user_id", userID),
			zap.Strings("existing user names", users.Names()),
		)
	}

	activities, err := client.LoadActivities(config.ActivitiesFile)
	if err != nil {
		zlog.Fatal("loading activities", zap.Error(err))
	}

	zlog.Info("session ready",
		zap.String("user_name", current.UserName),
		zap.String("persona", current.Persona),
		zap.Int("cards", activities.Len()),
	)

	suggester, err := prepareSuggester(ctx, config.AI, zlog)
	if err != nil {
		zlog.Warn("preference synthesis disabled", zap.Error(err))
	}

	images := preparePexels(config.Pexels, zlog)

	maxSwipes := defaultMaxSwipes
	if config.Swipe != nil && config.Swipe.MaxSwipes > 0 {
		maxSwipes = config.Swipe.MaxSwipes
	}
	if flagMax, _ := cmd.Flags().GetInt("max-swipes"); flagMax > 0 {
		maxSwipes = flagMax
	}

	suggestEvery := defaultSuggestEvery
	if config.Swipe != nil && config.Swipe.SuggestEvery > 0 {
		suggestEvery = config.Swipe.SuggestEvery
	}

	deck := tender.NewDeck(activities)
	swipeLog := swipes.NewLog()

	for swipeLog.Len() < maxSwipes {
		card := deck.Next(current)
		if card == nil {
			zlog.Info("deck exhausted", zap.Int("seen", deck.Seen()))
			break
		}

		card.ImageURL = images.ImageURL(ctx, fmt.Sprintf("%s, %s", card.City, card.Country))

		zlog.Info("destination card",
			zap.String("city", card.City),
			zap.String("country", card.Country),
			zap.Strings("activities", card.Activities),
			zap.String("image", card.ImageURL),
		)

		_, action, err := swipeActionPrompt.Run()
		if err != nil {
			zlog.Fatal("exiting", zap.Error(err))
		}

		if action == PromptQuit {
			zlog.Info("exiting", zap.String("reason", "got quit from prompt"))
			break
		}

		swipeLog.Record(current.UserID, card, action == PromptLike)

		if suggester != nil && swipeLog.Len()%suggestEvery == 0 {
			suggestPreferences(ctx, zlog, suggester, current, swipeLog)
		}
	}

	zlog.Info("session finished",
		zap.Int("swipes", swipeLog.Len()),
		zap.Int("likes", swipeLog.Likes(current.UserID)),
		zap.Strings("interests", current.Interests),
		zap.String("persona", current.Persona),
	)
}

// suggestPreferences asks the AI provider to synthesize preference tags from
// the recent likes and applies the ones the user confirms. Failures only log:
// the session continues without suggestions.
func suggestPreferences(ctx context.Context, zlog *zap.Logger, suggester ai.Suggester, current *tender.User, swipeLog *swipes.Log) {
	liked := swipeLog.RecentLikes(current.UserID, defaultSuggestEvery)
	if len(liked) == 0 {
		return
	}

	suggestions, err := suggester.Suggest(ctx, current, liked)
	if err != nil {
		zlog.Warn("preference synthesis failed", zap.Error(err))
		return
	}

	if len(suggestions.Tags) == 0 {
		zlog.Info("no preference suggestions this round")
		return
	}

	confirmed := confirmTags(zlog, suggestions.Tags)
	if len(confirmed) == 0 {
		return
	}

	added := current.AddInterests(confirmed)
	if added == 0 {
		return
	}

	current.RecalculatePersona()
	zlog.Info("profile updated",
		zap.Int("added_tags", added),
		zap.Strings("interests", current.Interests),
		zap.String("persona", current.Persona),
	)
}

func confirmTags(zlog *zap.Logger, tags []string) []string {
	confirmed := make([]string, 0, len(tags))
	for _, tag := range tags {
		tagPrompt := promptui.Select{
			Label: fmt.Sprintf("Add %q to your interests?", tag),
			Items: []string{PromptYes, PromptNo},
		}

		_, answer, err := tagPrompt.Run()
		if err != nil {
			zlog.Warn("skipping remaining suggestions", zap.Error(err))
			break
		}

		if answer == PromptYes {
			confirmed = append(confirmed, tag)
		}
	}
	return confirmed
}

func prepareSuggester(ctx context.Context, cfg *AIConfig, zlog *zap.Logger) (ai.Suggester, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("ai is not enabled in the configuration")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY_FILE",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.WithFields(zlog, logger.CommonFields("gemini", cfg.Gemini.Model)...)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewSuggester(generator, cfg.Gemini.MaxLogLength, genLogger), nil
}

// preparePexels always returns a usable client; without an api key it only
// serves the fallback image.
func preparePexels(cfg *PexelsConfig, zlog *zap.Logger) *pexels.Client {
	file := ""
	if cfg != nil {
		file = cfg.APIKeyFile
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "pexels api key",
		File: file,
		Env:  "PEXELS_API_KEY_FILE",
	})
	if err != nil {
		zlog.Debug("pexels api key not configured, using fallback images", zap.Error(err))
		return pexels.New(zlog, "")
	}

	return pexels.New(zlog, apiKey)
}
