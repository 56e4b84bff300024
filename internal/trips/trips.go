// Package trips defines the trip ledger port and its domain shapes.
// Implementations live in subpackages; the HTTP layer depends only on
// the Store interface.
package trips

import (
	"context"
	"errors"
	"sort"
	"strings"

	"collie/internal/core"
)

const (
	VoteDestination VoteKind = "destination"
	VoteDates       VoteKind = "dates"

	// DefaultTitle is used when a trip is created or renamed blank.
	DefaultTitle = "Weekend Trip"
)

type (
	// VoteKind is what a member votes on.
	VoteKind string

	Member struct {
		ID   string `json:"member_id"`
		Name string `json:"name"`
	}

	// Options are the candidate labels open for voting.
	Options struct {
		Destination []string `json:"destination"`
		Dates       []string `json:"dates"`
	}

	// TallyEntry is one option with its current vote count.
	TallyEntry struct {
		Option string `json:"option"`
		Votes  int    `json:"votes"`
	}

	// Winner holds the leading option per kind; empty when no votes.
	Winner struct {
		Destination string `json:"destination"`
		Dates       string `json:"dates"`
	}

	// Results is the full tally: entries sorted by votes descending.
	Results struct {
		Destinations []TallyEntry `json:"destinations"`
		Dates        []TallyEntry `json:"dates"`
		Winner       Winner       `json:"winner"`
	}

	// Summary is the trip overview returned by GET /trip/{id}.
	Summary struct {
		ID          string  `json:"trip_id"`
		Title       string  `json:"title"`
		MemberCount int     `json:"member_count"`
		TotalSpent  float64 `json:"total_spent"`
		Winner      Winner  `json:"winner"`
	}
)

var (
	ErrEmptyTitle  = errors.New("title cannot be empty")
	ErrEmptyLabel  = errors.New("label cannot be empty")
	ErrInvalidKind = errors.New("invalid vote kind")
)

// Store is the trip ledger. Trips are created implicitly on first
// touch, matching the share-a-link flow: any id a client presents is a
// valid trip.
type Store interface {
	// Create makes a new trip and returns its id.
	Create(ctx context.Context, title string) (string, error)

	// Summary returns the trip overview.
	Summary(ctx context.Context, tripID string) (Summary, error)

	// Rename sets the trip title.
	Rename(ctx context.Context, tripID, title string) error

	// Members lists members sorted by name.
	Members(ctx context.Context, tripID string) ([]Member, error)

	// Join adds a member and returns the member id.
	Join(ctx context.Context, tripID, name string) (string, error)

	// Options returns the candidate option lists.
	Options(ctx context.Context, tripID string) (string, Options, error)

	// AddOption inserts a new candidate label; case-insensitive
	// duplicates are ignored.
	AddOption(ctx context.Context, tripID string, kind VoteKind, label string) (Options, error)

	// Vote records a member's vote, replacing any previous vote of the
	// same kind.
	Vote(ctx context.Context, tripID, memberID string, kind VoteKind, option string) error

	// Results returns the current tally.
	Results(ctx context.Context, tripID string) (Results, error)

	// AddExpense appends to the expense ledger.
	AddExpense(ctx context.Context, tripID string, e core.Expense) error

	// Expenses returns the ledger in insertion order.
	Expenses(ctx context.Context, tripID string) ([]core.Expense, error)
}

// Clone returns a deep copy safe to hand to callers.
func (o Options) Clone() Options {
	return Options{
		Destination: append([]string(nil), o.Destination...),
		Dates:       append([]string(nil), o.Dates...),
	}
}

// For returns the option list for kind.
func (o Options) For(kind VoteKind) []string {
	if kind == VoteDates {
		return o.Dates
	}
	return o.Destination
}

// Set replaces the option list for kind.
func (o *Options) Set(kind VoteKind, labels []string) {
	if kind == VoteDates {
		o.Dates = labels
		return
	}
	o.Destination = labels
}

// IsValid reports whether k is a known vote kind.
func (k VoteKind) IsValid() bool {
	return k == VoteDestination || k == VoteDates
}

// SortTally orders entries by votes descending; ties keep input order.
func SortTally(entries []TallyEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Votes > entries[j].Votes
	})
}

// DedupeLabels trims labels and drops blanks and case-insensitive
// duplicates, preserving first-occurrence order.
func DedupeLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		low := strings.ToLower(label)
		if _, ok := seen[low]; ok {
			continue
		}
		seen[low] = struct{}{}
		out = append(out, label)
	}
	return out
}
