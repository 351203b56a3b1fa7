package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/galalqassas/tender-matcher/internal/logger"
	"github.com/galalqassas/tender-matcher/internal/matching"
	"github.com/galalqassas/tender-matcher/internal/tender"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptExit                = "Exit"
	PromptBack                = "back"
	PromptReportByPersona     = "Report matches by persona"
	PromptShowProfile         = "Show a match profile"
	PromptAppendToExcludeFile = "Append all matches to exclude file"
	PromptMatchesToFile       = "Dump matches to file"

	defaultTopN = 10
)

var errExit = errors.New("exit requested")

var matchPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptExit, PromptReportByPersona, PromptShowProfile, PromptMatchesToFile},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank compatible travel buddies for a user",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().IntP("user", "u", 0, "id of the user to find matches for")
	matchCmd.Flags().IntP("top", "t", 0, "how many matches to print (overrides match.top-n)")
	matchCmd.Flags().BoolP("plain", "p", false, "print the ranked list and exit without the action menu")
	matchCmd.Flags().StringP("exclude-file", "e", "", "special file with users to exclude. Default is unset.")

	viper.BindPFlag("exclude-file", matchCmd.Flags().Lookup("exclude-file"))
}

// runMatch is the match command for the cli.
func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the tender-matcher", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.UsersFile == "" {
		logger.Fatal("users file is required under users-file to load profiles")
	}

	userID, err := cmd.Flags().GetInt("user")
	if err != nil || userID == 0 {
		logger.Fatal("a target user id is required", zap.String("hint", "pass it with --user"))
	}

	client := tender.New(ctx, logger)
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	users, err := client.LoadUsers(config.UsersFile)
	if err != nil {
		logger.Fatal("loading users", zap.Error(err))
	}

	logger.Info("loading users", zap.Int("count", users.Len()))

	current := users.FindByID(userID)
	if current == nil {
		logger.Fatal("user with given id not found",
			zap.Int("user_id", userID),
			zap.Strings("existing user names", users.Names()),
		)
	}

	logger.Info("finding matches",
		zap.String("user_name", current.UserName),
		zap.String("user_type", string(current.UserType)),
		zap.String("persona", current.Persona),
	)

	matches, err := matching.FindMatches(ctx, users, userID, matching.Options{
		ExcludeFile: viper.GetString("exclude-file"),
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("finding matches", zap.Error(err))
	}

	if matches.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no eligible candidates left after filters"))
		return
	}

	topN := config.topN()
	if flagTop, _ := cmd.Flags().GetInt("top"); flagTop > 0 {
		topN = flagTop
	}

	printMatches(logger, matches, topN)

	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		return
	}

	for {
		_, action, err := matchPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleMatchAction(action, logger, matches, users); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func (c *Config) topN() int {
	if c.Match != nil && c.Match.TopN > 0 {
		return c.Match.TopN
	}
	return defaultTopN
}

func printMatches(logger *zap.Logger, matches *matching.Matches, topN int) {
	logger.Info("ranked matches", zap.Int("total", matches.Len()), zap.Int("showing", len(matches.Top(topN))))

	for i, match := range matches.Top(topN) {
		logger.Info("match",
			zap.Int("rank", i+1),
			zap.Int("user_id", match.UserID),
			zap.String("name", match.Name),
			zap.String("persona", match.Persona),
			zap.Int("score", match.Score),
		)
	}
}

func handleMatchAction(action string, logger *zap.Logger, matches *matching.Matches, users *tender.Users) error {
	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptReportByPersona:
		pretty, _ := json.MarshalIndent(matches.ReportByPersona(), "", "  ")
		logger.Info(string(pretty), zap.Int("matches count", matches.Len()))
		return nil
	case PromptShowProfile:
		return showProfile(logger, matches, users)
	case PromptMatchesToFile:
		filename, err := matches.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendMatchesToExcludeFile(logger, matches)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showProfile(logger *zap.Logger, matches *matching.Matches, users *tender.Users) error {
	for {
		items := make([]string, 0, matches.Len())
		for _, match := range matches.Items {
			items = append(items, fmt.Sprintf("%d %s / %s / score %d",
				match.UserID, match.Name, match.Persona, match.Score,
			))
		}

		excludeFile := viper.GetString("exclude-file")
		if excludeFile != "" && matches.Len() != 0 {
			items = append(items, PromptAppendToExcludeFile)
		}

		profilePrompt := promptui.Select{
			Label: "Choose a match and press ENTER",
			Items: append(items, PromptBack),
		}

		_, selected, err := profilePrompt.Run()
		if err != nil {
			return err
		}

		switch selected {
		case PromptBack:
			return nil
		case PromptAppendToExcludeFile:
			if err := appendMatchesToExcludeFile(logger, matches); err != nil {
				return err
			}
		default:
			id, err := strconv.Atoi(strings.Split(selected, " ")[0])
			if err != nil {
				return fmt.Errorf("parsing selected match id: %w", err)
			}

			user := users.FindByID(id)
			if user == nil {
				return fmt.Errorf("there is no such user id %d", id)
			}

			pretty, _ := json.MarshalIndent(user, "", "  ")
			logger.Info(string(pretty),
				zap.Int("user_id", user.UserID),
				zap.Int("score", matches.FindByID(id).Score),
			)
		}
	}
}

func appendMatchesToExcludeFile(logger *zap.Logger, matches *matching.Matches) error {
	excludeFile := viper.GetString("exclude-file")
	if excludeFile == "" {
		return errors.New("exclude file is not configured")
	}

	excluded, err := tender.GetExcludedUsersFromFile(excludeFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		excluded = &tender.ExcludedUsers{}
	}

	excluded.Append(matches.ToExcluded())

	if err := excluded.ToFile(excludeFile); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", excludeFile))
	return nil
}
