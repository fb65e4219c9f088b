// Package main provides the coursesearch CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/course-aggregator/internal/config"
	"github.com/honeycarbs/course-aggregator/internal/domain/course"
	"github.com/honeycarbs/course-aggregator/internal/domain/course/providers"
	"github.com/honeycarbs/course-aggregator/pkg/logging"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd(newService).Execute(); err != nil {
		os.Exit(1)
	}
}

// serviceFactory builds the aggregator from loaded configuration
type serviceFactory func(cfg config.Config, log *logging.Logger) (course.Service, error)

func newService(cfg config.Config, log *logging.Logger) (course.Service, error) {
	ps, err := providers.Build(cfg)
	if err != nil {
		return nil, err
	}
	price, err := course.ParsePriceStrategy(cfg.PriceParsing)
	if err != nil {
		return nil, err
	}
	return course.NewService(
		course.WithProviders(ps...),
		course.WithTimeout(cfg.ProviderTimeout),
		course.WithPriceParser(price),
		course.WithLogger(log),
	)
}

// newRootCmd creates the root command for the coursesearch CLI.
func newRootCmd(factory serviceFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "coursesearch",
		Short:         "Search online courses across Coursera, Udemy and edX",
		Long:          "coursesearch queries every configured course provider in parallel and prints per-provider results.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.SetVersionTemplate("coursesearch version {{.Version}}\n")
	rootCmd.AddCommand(newSearchCmd(factory))

	return rootCmd
}
