package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/shift-planner/pkg/db"
)

var validate = validator.New()

// RosterFile is the YAML document accepted by ImportRoster
//
//	people:
//	  - name: Ana
//	    role: Agent
//	    shift: M
type RosterFile struct {
	People []NewPerson `yaml:"people" validate:"required,dive"`
}

// ImportResult reports what ImportRoster did
type ImportResult struct {
	Added   []db.Person
	Skipped []string
}

// ImportRoster bulk-loads people from a YAML file. Entries whose name is already
// on the roster (or earlier in the file) are skipped, not duplicated.
// Either every new person is inserted or none are.
func ImportRoster(ctx context.Context, store db.PeopleStore, logger *zap.Logger, path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var file RosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid roster file: %w", err)
	}

	existing, err := store.GetPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}
	names := make(map[string]bool, len(existing))
	for _, p := range existing {
		names[strings.ToLower(p.Name)] = true
	}

	// Every entry is parsed before anything is written
	result := &ImportResult{}
	for _, input := range file.People {
		key := strings.ToLower(strings.TrimSpace(input.Name))
		if names[key] {
			logger.Debug("Skipping existing person", zap.String("name", input.Name))
			result.Skipped = append(result.Skipped, input.Name)
			continue
		}

		person, err := newPerson(input)
		if err != nil {
			return nil, fmt.Errorf("invalid person %q: %w", input.Name, err)
		}
		names[key] = true
		result.Added = append(result.Added, db.FromModelPerson(person))
	}

	if len(result.Added) > 0 {
		if err := store.InsertPeople(ctx, result.Added); err != nil {
			return nil, fmt.Errorf("failed to insert people: %w", err)
		}
	}

	logger.Info("Imported roster",
		zap.String("path", path),
		zap.Int("added", len(result.Added)),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}
