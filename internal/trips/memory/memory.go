// Package memory provides the in-memory trips.Store used in
// production: trips are short-lived coordination state and are not
// persisted.
package memory

import (
	"context"
	"crypto/rand"
	"fmt"
	"sort"
	"strings"
	"sync"

	"collie/internal/core"
	"collie/internal/trips"
)

const idLength = 8

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var defaultOptions = trips.Options{
	Destination: []string{"Lisbon", "Porto", "Barcelona", "Valencia", "Amsterdam"},
	Dates:       []string{"Feb 7 - Feb 9", "Feb 14 - Feb 16", "Mar 1 - Mar 3", "Mar 8 - Mar 10"},
}

type trip struct {
	title       string
	members     map[string]string            // member id -> name
	votes       map[trips.VoteKind]map[string]int
	memberVotes map[string]map[trips.VoteKind]string
	expenses    []core.Expense
	options     trips.Options
}

// Store is a mutex-guarded in-memory trip ledger.
type Store struct {
	mu    sync.Mutex
	trips map[string]*trip
}

var _ trips.Store = (*Store)(nil)

func New() *Store {
	return &Store{trips: make(map[string]*trip)}
}

// ensure returns the trip for id, creating it with defaults on first
// touch. Callers must hold s.mu.
func (s *Store) ensure(id string) *trip {
	t, ok := s.trips[id]
	if !ok {
		t = &trip{
			title:       trips.DefaultTitle,
			members:     make(map[string]string),
			votes: map[trips.VoteKind]map[string]int{
				trips.VoteDestination: {},
				trips.VoteDates:       {},
			},
			memberVotes: make(map[string]map[trips.VoteKind]string),
			options: trips.Options{
				Destination: append([]string(nil), defaultOptions.Destination...),
				Dates:       append([]string(nil), defaultOptions.Dates...),
			},
		}
		s.trips[id] = t
	}
	return t
}

func (s *Store) Create(_ context.Context, title string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := newID()
	if err != nil {
		return "", fmt.Errorf("generate trip id: %w", err)
	}

	t := s.ensure(id)
	if title = strings.TrimSpace(title); title != "" {
		t.title = title
	}
	return id, nil
}

func (s *Store) Summary(_ context.Context, tripID string) (trips.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.ensure(tripID)
	return trips.Summary{
		ID:          tripID,
		Title:       t.title,
		MemberCount: len(t.members),
		TotalSpent:  core.TotalSpent(t.expenses),
		Winner:      t.results().Winner,
	}, nil
}

func (s *Store) Rename(_ context.Context, tripID, title string) error {
	if title = strings.TrimSpace(title); title == "" {
		return trips.ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(tripID).title = title
	return nil
}

func (s *Store) Members(_ context.Context, tripID string) ([]trips.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.ensure(tripID)
	members := make([]trips.Member, 0, len(t.members))
	for id, name := range t.members {
		members = append(members, trips.Member{ID: id, Name: name})
	}
	sort.Slice(members, func(i, j int) bool {
		return strings.ToLower(members[i].Name) < strings.ToLower(members[j].Name)
	})
	return members, nil
}

func (s *Store) Join(_ context.Context, tripID, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := newID()
	if err != nil {
		return "", fmt.Errorf("generate member id: %w", err)
	}

	if name = strings.TrimSpace(name); name == "" {
		name = "Anonymous"
	}
	s.ensure(tripID).members[id] = name
	return id, nil
}

func (s *Store) Options(_ context.Context, tripID string) (string, trips.Options, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.ensure(tripID)
	// Keep lists clean in case of repeated adds.
	t.options.Destination = trips.DedupeLabels(t.options.Destination)
	t.options.Dates = trips.DedupeLabels(t.options.Dates)
	return t.title, t.options.Clone(), nil
}

func (s *Store) AddOption(_ context.Context, tripID string, kind trips.VoteKind, label string) (trips.Options, error) {
	if !kind.IsValid() {
		return trips.Options{}, trips.ErrInvalidKind
	}
	if label = strings.TrimSpace(label); label == "" {
		return trips.Options{}, trips.ErrEmptyLabel
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.ensure(tripID)
	current := t.options.For(kind)

	exists := false
	for _, existing := range current {
		if strings.EqualFold(existing, label) {
			exists = true
			break
		}
	}
	if !exists {
		// New options go first so they are visible without scrolling.
		current = append([]string{label}, current...)
	}

	t.options.Set(kind, trips.DedupeLabels(current))
	return t.options.Clone(), nil
}

func (s *Store) Vote(_ context.Context, tripID, memberID string, kind trips.VoteKind, option string) error {
	if !kind.IsValid() {
		return trips.ErrInvalidKind
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.ensure(tripID)
	if t.memberVotes[memberID] == nil {
		t.memberVotes[memberID] = make(map[trips.VoteKind]string)
	}

	// A member has one vote per kind: voting again moves it.
	if prev, ok := t.memberVotes[memberID][kind]; ok {
		t.votes[kind][prev]--
		if t.votes[kind][prev] <= 0 {
			delete(t.votes[kind], prev)
		}
	}

	t.memberVotes[memberID][kind] = option
	t.votes[kind][option]++
	return nil
}

func (s *Store) Results(_ context.Context, tripID string) (trips.Results, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensure(tripID).results(), nil
}

func (s *Store) AddExpense(_ context.Context, tripID string, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.ensure(tripID)
	t.expenses = append(t.expenses, e)
	return nil
}

func (s *Store) Expenses(_ context.Context, tripID string) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.ensure(tripID)
	return append([]core.Expense(nil), t.expenses...), nil
}

func (t *trip) results() trips.Results {
	tally := func(kind trips.VoteKind) []trips.TallyEntry {
		options := make([]string, 0, len(t.votes[kind]))
		for option := range t.votes[kind] {
			options = append(options, option)
		}
		// Deterministic base order before the vote sort.
		sort.Strings(options)

		entries := make([]trips.TallyEntry, 0, len(options))
		for _, option := range options {
			entries = append(entries, trips.TallyEntry{Option: option, Votes: t.votes[kind][option]})
		}
		trips.SortTally(entries)
		return entries
	}

	results := trips.Results{
		Destinations: tally(trips.VoteDestination),
		Dates:        tally(trips.VoteDates),
	}
	if len(results.Destinations) > 0 {
		results.Winner.Destination = results.Destinations[0].Option
	}
	if len(results.Dates) > 0 {
		results.Winner.Dates = results.Dates[0].Option
	}
	return results
}

func newID() (string, error) {
	buf := make([]byte, idLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf), nil
}
