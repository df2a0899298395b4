package model

import (
	"fmt"
	"slices"
	"strings"
)

// Roster is the table of people keyed by their immutable id, in insertion order
type Roster struct {
	people []Person
}

// NewRoster builds a roster, rejecting duplicate or empty ids
func NewRoster(people []Person) (*Roster, error) {
	r := &Roster{people: make([]Person, 0, len(people))}
	for _, p := range people {
		if err := r.Add(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// People returns a copy of the roster in insertion order
func (r *Roster) People() []Person {
	return slices.Clone(r.people)
}

// Len returns the number of people
func (r *Roster) Len() int {
	return len(r.people)
}

// Get returns the person with the given id
func (r *Roster) Get(id string) (Person, bool) {
	i := r.index(id)
	if i < 0 {
		return Person{}, false
	}
	return r.people[i], true
}

// Add appends a person to the roster
func (r *Roster) Add(p Person) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("person id must not be empty")
	}
	if r.index(p.ID) >= 0 {
		return fmt.Errorf("duplicate person id %q", p.ID)
	}
	r.people = append(r.people, p)
	return nil
}

// Remove filters the person out of the roster
func (r *Roster) Remove(id string) error {
	before := len(r.people)
	r.people = slices.DeleteFunc(r.people, func(p Person) bool { return p.ID == id })
	if len(r.people) == before {
		return fmt.Errorf("%w: %s", ErrPersonNotFound, id)
	}
	return nil
}

// SetDefaultShift changes a person's default shift
func (r *Roster) SetDefaultShift(id string, shift Shift) error {
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPersonNotFound, id)
	}
	r.people[i].DefaultShift = shift
	return nil
}

func (r *Roster) index(id string) int {
	return slices.IndexFunc(r.people, func(p Person) bool { return p.ID == id })
}
