package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"keyword-radar/internal/config"
	"keyword-radar/internal/service"
	"keyword-radar/pkg/logger"
)

var (
	configPath string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "keyword-radar",
	Short: "keyword-radar finds low-competition search keywords",
	Long: "Normalizes candidate phrases, looks up monthly search volume and blog document counts,\n" +
		"and ranks the keywords whose search demand is least saturated by existing content.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("KEYWORD_RADAR_CONFIG"), "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig reads the configuration and installs the configured logger.
// Console commands log to stderr so stdout stays reserved for results.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewManager().Load(configPath)
	if err != nil {
		return nil, err
	}

	settings := cfg.LoggerSettings()
	if settings.Output == "" || settings.Output == "stdout" {
		settings.Output = "stderr"
	}
	if debugMode {
		settings.Level = "debug"
	}
	logger.SetGlobalLogger(logger.New(settings))
	return cfg, nil
}

func buildRuntime() (*config.Config, *service.Runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	rt, err := service.Build(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init: %w", err)
	}
	return cfg, rt, nil
}
