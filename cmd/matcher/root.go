package main

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/logger"
)

const appName = "matcher"

var (
	// Used for flags.
	cfgFile string

	v = config.NewViper()

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "matcher scores résumés against job descriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().Bool("log-json", false, "json format for logging")
	rootCmd.PersistentFlags().String("similarity", "", "similarity backend: lexical or gemini")
	rootCmd.PersistentFlags().String("gazetteer", "", "YAML gazetteer replacing the built-in one")

	v.BindPFlag("LOG_DEBUG", rootCmd.PersistentFlags().Lookup("debug"))
	v.BindPFlag("LOG_JSON", rootCmd.PersistentFlags().Lookup("log-json"))
	v.BindPFlag("SIMILARITY_BACKEND", rootCmd.PersistentFlags().Lookup("similarity"))
	v.BindPFlag("GAZETTEER_PATH", rootCmd.PersistentFlags().Lookup("gazetteer"))
}

// initConfig reads the config file. Without --config a missing matcher.yaml is
// not an error; the environment and flags are enough.
func initConfig() {
	// Variables from .env behave like the environment.
	_ = godotenv.Load()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			cobra.CheckErr(fmt.Errorf("reading config: %w", err))
		}
	}
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg := config.FromViper(v)

	log, err := logger.NewStderr(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}
	return cfg, log, nil
}
