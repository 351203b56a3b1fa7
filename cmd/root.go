package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "tender-matcher"
)

type Config struct {
	UsersFile      string        `mapstructure:"users-file"`
	ActivitiesFile string        `mapstructure:"activities-file"`
	UserAgent      string        `mapstructure:"user-agent"`
	ExcludeFile    string        `mapstructure:"exclude-file"`
	Match          *MatchConfig  `mapstructure:"match"`
	Swipe          *SwipeConfig  `mapstructure:"swipe"`
	AI             *AIConfig     `mapstructure:"ai"`
	Pexels         *PexelsConfig `mapstructure:"pexels"`
}

type MatchConfig struct {
	TopN int `mapstructure:"top-n"`
}

type SwipeConfig struct {
	MaxSwipes    int `mapstructure:"max-swipes"`
	SuggestEvery int `mapstructure:"suggest-every"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type PexelsConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "tender-matcher is a simple cli for finding compatible travel buddies and swiping on destinations",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("users-file", "TENDER_USERS_FILE"); err != nil {
		log.Fatalf("binding TENDER_USERS_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is tender-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for commands that load data. Version does not need it.
	if matchCmd.CalledAs() == "" && swipeCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
