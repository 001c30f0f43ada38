package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/autobrr/qbtc/pkg/config"
	"github.com/autobrr/qbtc/pkg/logger"
	"github.com/autobrr/qbtc/pkg/runtime"
	"github.com/autobrr/qbtc/pkg/stringutils"
)

var (
	// Global flags
	flagLogLevel     = 0
	flagConfigFile   = "config.yaml"
	flagConfigFolder = defaultConfigFolder()
	flagLogFile      = ""

	// Global vars
	initialized bool
	log         *logrus.Entry
)

var rootCmd = &cobra.Command{
	Use:   "qbtc",
	Short: "qBittorrent Web API client",
	Long: `A command line client for inspecting qBittorrent instances over the Web API v2.
`,
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Parse persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfigFolder, "config-dir", flagConfigFolder, "Config folder")
	rootCmd.PersistentFlags().StringVarP(&flagConfigFile, "config", "c", flagConfigFile, "Config file")
	rootCmd.PersistentFlags().StringVarP(&flagLogFile, "log", "l", flagLogFile, "Log file")
	rootCmd.PersistentFlags().CountVarP(&flagLogLevel, "verbose", "v", "Verbose level")
}

func defaultConfigFolder() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	return filepath.Join(dir, "qbtc")
}

func initCore() {
	if initialized {
		return
	}

	// config path
	configPath := flagConfigFile
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(flagConfigFolder, configPath)
	}

	// logger
	if err := logger.Init(flagLogFile, flagLogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed initializing logger: %v\n", err)
		os.Exit(1)
	}
	log = logger.GetLogger("app")

	log.Infof("Using %s = %s", stringutils.LeftJust("VERSION", " ", 10), runtime.Version)
	if flagLogFile != "" {
		log.Infof("Using %s = %q", stringutils.LeftJust("LOG", " ", 10), flagLogFile)
	}

	// config
	if err := config.Init(configPath); err != nil {
		log.WithError(err).Fatal("Failed initializing config")
	}
	config.ShowUsing()

	initialized = true
}
