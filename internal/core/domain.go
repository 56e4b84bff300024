package core

import (
	"errors"
	"strings"
)

const (
	CategoryCafe       Category = "cafe"
	CategoryRestaurant Category = "restaurant"
	CategoryMuseum     Category = "museum"
	CategoryPark       Category = "park"
	CategoryAttraction Category = "attraction"
	CategoryOther      Category = "other"
)

type (
	// Category is the fixed point-of-interest taxonomy.
	Category string

	// Expense is a shared group expense. Amounts are in the group's
	// currency unit; splitting is equal across SplitBetween, with
	// duplicates counted once per occurrence.
	Expense struct {
		Amount       float64  `json:"amount"`
		PaidBy       string   `json:"paid_by"`
		SplitBetween []string `json:"split_between"`
		Description  string   `json:"description"`
	}

	// Transfer is a single point-to-point payment produced by settlement.
	Transfer struct {
		FromPerson string  `json:"from_person"`
		ToPerson   string  `json:"to_person"`
		Amount     float64 `json:"amount"`
	}

	// Place is a candidate point of interest. Identity fields come from
	// the geodata source; DistanceFromCenter and CrowdScore are filled in
	// by the scoring step.
	Place struct {
		Name                string   `json:"name"`
		Lat                 float64  `json:"lat"`
		Lon                 float64  `json:"lon"`
		Category            Category `json:"category"`
		OSMType             string   `json:"osm_type,omitempty"`
		IsChain             bool     `json:"is_chain"`
		IsTouristAttraction bool     `json:"is_tourist_attraction"`
		DistanceFromCenter  float64  `json:"distance_from_center"`
		CrowdScore          float64  `json:"crowd_score"`
	}

	// Suggestion is a named pick with a human-readable reason.
	Suggestion struct {
		Destination string `json:"destination"`
		Reason      string `json:"reason"`
	}
)

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrEmptyPayer    = errors.New("paid_by is required")
	ErrEmptySplit    = errors.New("split_between must contain at least one name")
)

// AllCategories lists the categories requested from the geodata source,
// in query-building order.
func AllCategories() []Category {
	return []Category{CategoryCafe, CategoryRestaurant, CategoryMuseum, CategoryPark, CategoryAttraction}
}

// IsValid reports whether c is one of the fixed categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryCafe, CategoryRestaurant, CategoryMuseum, CategoryPark, CategoryAttraction, CategoryOther:
		return true
	default:
		return false
	}
}

// Normalize trims the payer and split names and drops blank entries.
// Duplicates are kept: each occurrence counts as one share.
func (e Expense) Normalize() Expense {
	e.PaidBy = strings.TrimSpace(e.PaidBy)
	split := make([]string, 0, len(e.SplitBetween))
	for _, name := range e.SplitBetween {
		if name = strings.TrimSpace(name); name != "" {
			split = append(split, name)
		}
	}
	e.SplitBetween = split
	e.Description = strings.TrimSpace(e.Description)
	if e.Description == "" {
		e.Description = "Expense"
	}
	return e
}

// Validate checks the caller-side invariants the settlement engine
// assumes. The engine itself never validates.
func (e Expense) Validate() error {
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.PaidBy) == "" {
		return ErrEmptyPayer
	}
	if len(e.SplitBetween) == 0 {
		return ErrEmptySplit
	}
	return nil
}

// TotalSpent sums expense amounts.
func TotalSpent(expenses []Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}
