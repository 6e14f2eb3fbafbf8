package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hexatransit/logocheck/internal/config"
	"github.com/hexatransit/logocheck/internal/console"
	"github.com/hexatransit/logocheck/internal/findings"
	"github.com/hexatransit/logocheck/internal/logging"
	"github.com/hexatransit/logocheck/internal/problem"
)

const (
	envPrefix         = "LOGOCHECK"
	defaultConfigHint = "./" + config.FileName
)

// dotenvFiles are loaded in order; a variable already set is never
// overwritten, so the first file wins.
var dotenvFiles = []string{".env.local", ".env"}

// app is the resolved runtime state shared by every subcommand.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	out      *console.Printer
	errOut   *console.Printer
	findings string
	strict   bool
}

// loadApp resolves settings with precedence flag > environment > config
// file > built-in default.
func loadApp(cmd *cobra.Command) (*app, error) {
	for _, name := range dotenvFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", name, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	cfg, err := loadConfig(v.GetString("config"))
	if err != nil {
		return nil, err
	}
	v.SetDefault("logo-dir", cfg.LogoDir)
	v.SetDefault("timeout", cfg.Timeout)
	v.SetDefault("max-listed", cfg.MaxListed)
	v.SetDefault("strip-prefix", cfg.StripPrefix)
	v.SetDefault("base-dir", cfg.BaseDir)

	cfg.LogoDir = v.GetString("logo-dir")
	cfg.Timeout = v.GetInt("timeout")
	cfg.MaxListed = v.GetInt("max-listed")
	cfg.StripPrefix = v.GetString("strip-prefix")
	cfg.BaseDir = v.GetString("base-dir")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	noColor := v.GetBool("no-color")
	logger, err := logging.New(logging.Config{
		Level:   v.GetString("log-level"),
		Format:  v.GetString("log-format"),
		NoColor: noColor,
	}, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger.With().Str("command", cmd.CommandPath()).Logger(),
		out:      console.New(cmd.OutOrStdout(), noColor),
		errOut:   console.New(cmd.ErrOrStderr(), noColor),
		findings: v.GetString("findings"),
		strict:   v.GetBool("strict"),
	}, nil
}

// loadConfig reads path, or the default file when path is empty and the
// file exists, or falls back to built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(config.FileName); err != nil {
			return config.Default(), nil
		}
		path = config.FileName
	}
	return config.Load(path)
}

func (a *app) timeout() time.Duration {
	return time.Duration(a.cfg.Timeout) * time.Second
}

// record appends problems to the findings log when one is configured.
// Failing to write it is logged, never fatal.
func (a *app) record(check string, problems *problem.List) {
	if a.findings == "" || problems.Empty() {
		return
	}
	entries := findings.FromProblems(check, time.Now(), problems.Items())
	if err := findings.Append(a.findings, entries); err != nil {
		a.logger.Error().Err(err).Str("file", a.findings).Msg("writing findings")
		return
	}
	a.logger.Debug().Int("entries", len(entries)).Str("file", a.findings).Msg("findings recorded")
}
