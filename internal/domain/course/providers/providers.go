// Package providers assembles the configured course providers.
package providers

import (
	"fmt"

	"github.com/honeycarbs/course-aggregator/internal/config"
	"github.com/honeycarbs/course-aggregator/internal/domain/course"
	courseraProvider "github.com/honeycarbs/course-aggregator/internal/domain/course/providers/coursera"
	edxProvider "github.com/honeycarbs/course-aggregator/internal/domain/course/providers/edx"
	udemyProvider "github.com/honeycarbs/course-aggregator/internal/domain/course/providers/udemy"
	"github.com/honeycarbs/course-aggregator/pkg/coursera"
	"github.com/honeycarbs/course-aggregator/pkg/edx"
	"github.com/honeycarbs/course-aggregator/pkg/udemy"
)

// Build creates one provider per entry of cfg.Providers, keeping that order
func Build(cfg config.Config) ([]course.Provider, error) {
	if len(cfg.Providers) == 0 {
		return nil, fmt.Errorf("no course providers configured")
	}

	out := make([]course.Provider, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		p, err := build(name, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func build(name string, cfg config.Config) (course.Provider, error) {
	pc, ok := cfg.Provider(name)
	if !ok {
		return nil, fmt.Errorf("unknown provider")
	}

	switch name {
	case config.ProviderCoursera:
		client, err := coursera.NewClient(coursera.Config{APIKey: pc.APIKey, BaseURL: pc.BaseURL})
		if err != nil {
			return nil, err
		}
		return courseraProvider.NewProvider(client)
	case config.ProviderUdemy:
		client, err := udemy.NewClient(udemy.Config{APIKey: pc.APIKey, BaseURL: pc.BaseURL})
		if err != nil {
			return nil, err
		}
		return udemyProvider.NewProvider(client)
	case config.ProviderEdX:
		client, err := edx.NewClient(edx.Config{APIKey: pc.APIKey, BaseURL: pc.BaseURL})
		if err != nil {
			return nil, err
		}
		return edxProvider.NewProvider(client)
	}
	return nil, fmt.Errorf("unknown provider")
}
