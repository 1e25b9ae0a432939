package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/craftplan/craftplan/cmd/craftplan/admin"
	"github.com/craftplan/craftplan/cmd/craftplan/serve"
	"github.com/craftplan/craftplan/pkg/config"
	logr "github.com/craftplan/craftplan/pkg/log"
	"github.com/craftplan/craftplan/pkg/version"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var rootCmd = &cobra.Command{
	Use:          "craftplan",
	Short:        "A multi-tenant construction project management server",
	Long:         "CraftPlan tracks construction and renovation projects through design, build, and certification phases.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(
		serve.Command,
		admin.Command,
		manCmd,
	)
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	if len(version.CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + version.CommitSHA[0:7] + ")\n")
	}
	if version.Version == "" {
		version.Version = "unknown (built from source)"
	}
	rootCmd.Version = version.Version
}

func main() {
	ctx := context.Background()

	cfg := config.DefaultConfig()
	if cfg.Exist() {
		if err := cfg.Parse(); err != nil {
			log.Fatal(err)
		}
	} else if err := cfg.ParseEnv(); err != nil {
		log.Fatal(err)
	}

	ctx = config.WithContext(ctx, cfg)

	logger, f, err := logr.NewLogger(cfg)
	if err != nil {
		log.Errorf("error creating logger: %v", err)
	}
	if f != nil {
		defer f.Close() // nolint: errcheck
	}

	log.SetDefault(logger)
	ctx = log.WithContext(ctx, logger)

	// Set the max number of processes to the number of CPUs
	// This is useful when running in a container
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.Warn("couldn't set automaxprocs", "error", err)
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
