package sources

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avoronkov/newsbrief/app/database"
)

// SeedSource is one entry in the sources YAML file. The file seeds the
// source registry at startup; the registry itself lives in the database.
type SeedSource struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Endpoint string `yaml:"endpoint"`
	Active   *bool  `yaml:"active"`
}

type seedFile struct {
	Sources []SeedSource `yaml:"sources"`
}

func LoadSeedFile(path string) ([]SeedSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	for i, source := range file.Sources {
		if err := validateSeedSource(source); err != nil {
			return nil, fmt.Errorf("invalid source at index %d: %w", i, err)
		}
	}

	return file.Sources, nil
}

// Register upserts the seed sources into the registry. Individual failures
// are logged and skipped so one bad entry does not block the rest.
func Register(ctx context.Context, repo database.SourceRepository, seeds []SeedSource) int {
	registered := 0
	for _, seed := range seeds {
		active := true
		if seed.Active != nil {
			active = *seed.Active
		}

		err := repo.UpsertSource(ctx, seed.Name, database.SourceType(seed.Type), seed.Endpoint, active)
		if err != nil {
			slog.Warn("Failed to register source", "source", seed.Name, "error", err)
			continue
		}

		slog.Debug("Registered source", "source", seed.Name, "type", seed.Type, "active", active)
		registered++
	}

	return registered
}

func validateSeedSource(source SeedSource) error {
	if source.Name == "" {
		return fmt.Errorf("source name is required")
	}

	switch database.SourceType(source.Type) {
	case database.SourceTypeRSS, database.SourceTypeAPI, database.SourceTypeCustom:
	default:
		return fmt.Errorf("unknown source type: %q", source.Type)
	}

	return nil
}
