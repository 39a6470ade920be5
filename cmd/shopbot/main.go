// Command shopbot runs the shop onboarding bot.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	corecmd "github.com/m3rciful/shopbot/core/cmd"
	"github.com/m3rciful/shopbot/internal/app"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("shopbot: %v", err)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("shopbot", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "path to config.yaml (overrides CONFIG_PATH)")
	envFile := flags.String("env-file", ".env", "dotenv file loaded before the config")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", *envFile, err)
	}

	return corecmd.Run(corecmd.Options{
		ConfigPath:        *configPath,
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return app.LoadConfig(path)
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			appCfg, ok := cfg.(*app.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", cfg)
			}
			return app.Bootstrap(appCfg)
		},
	})
}
