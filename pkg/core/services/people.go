package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-planner/pkg/core/model"
	"github.com/jakechorley/shift-planner/pkg/core/overrides"
	"github.com/jakechorley/shift-planner/pkg/core/rules"
	"github.com/jakechorley/shift-planner/pkg/db"
)

// ErrDuplicateName is returned when a person with the same name is already on the roster
var ErrDuplicateName = errors.New("a person with this name already exists")

// NewPerson is a person as entered by the user
type NewPerson struct {
	Name  string `yaml:"name" validate:"required"`
	Role  string `yaml:"role" validate:"required"`
	Shift string `yaml:"shift" validate:"required"`
}

// AddPerson validates and appends a person to the roster with a fresh id
func AddPerson(ctx context.Context, store db.PeopleStore, logger *zap.Logger, input NewPerson) (*model.Person, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid person: %w", err)
	}

	existing, err := store.GetPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}
	for _, p := range existing {
		if strings.EqualFold(p.Name, strings.TrimSpace(input.Name)) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, p.Name)
		}
	}

	person, err := newPerson(input)
	if err != nil {
		return nil, err
	}

	record := db.FromModelPerson(person)
	if err := store.InsertPerson(ctx, &record); err != nil {
		return nil, fmt.Errorf("failed to insert person: %w", err)
	}

	logger.Info("Added person",
		zap.String("person_id", person.ID),
		zap.String("name", person.Name),
		zap.String("role", person.Role),
		zap.String("shift", string(person.DefaultShift)))

	return &person, nil
}

func newPerson(input NewPerson) (model.Person, error) {
	shift, err := model.ParseShift(input.Shift)
	if err != nil {
		return model.Person{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Person{}, fmt.Errorf("failed to generate id: %w", err)
	}

	return model.Person{
		ID:           id.String(),
		Name:         strings.TrimSpace(input.Name),
		Role:         strings.TrimSpace(input.Role),
		DefaultShift: shift,
	}, nil
}

// RosterStore reads the full state and edits the roster
type RosterStore interface {
	db.SnapshotStore
	db.PeopleStore
}

// RemovePerson deletes a person together with all of their overrides.
// An unknown id fails before anything is written.
func RemovePerson(ctx context.Context, store RosterStore, logger *zap.Logger, personID string) (*overrides.Removal, error) {
	state, err := loadState(ctx, store, logger)
	if err != nil {
		return nil, err
	}

	removal, err := overrides.NewEditor(state, rules.Default()).Remove(personID)
	if err != nil {
		return nil, err
	}

	if err := store.DeletePerson(ctx, personID); err != nil {
		return nil, fmt.Errorf("failed to remove person %s: %w", personID, err)
	}

	logger.Info("Removed person",
		zap.String("person_id", personID),
		zap.String("name", removal.Person.Name),
		zap.Int("overrides", removal.Overrides))
	return removal, nil
}

// ListPeople returns the roster in roster order
func ListPeople(ctx context.Context, store db.PeopleStore, logger *zap.Logger) ([]model.Person, error) {
	records, err := store.GetPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}

	people := make([]model.Person, 0, len(records))
	for _, record := range records {
		p, err := db.ToModelPerson(record)
		if err != nil {
			return nil, fmt.Errorf("failed to read person %s: %w", record.ID, err)
		}
		people = append(people, p)
	}

	logger.Debug("Listed people", zap.Int("count", len(people)))
	return people, nil
}
