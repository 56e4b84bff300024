package trips

import (
	"reflect"
	"testing"
)

func TestDedupeLabels(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty", nil, []string{}},
		{"trims and drops blanks", []string{" Lisbon ", "", "  "}, []string{"Lisbon"}},
		{"case-insensitive dedupe keeps first", []string{"Porto", "porto", "PORTO", "Rome"}, []string{"Porto", "Rome"}},
		{"preserves order", []string{"b", "a", "c"}, []string{"b", "a", "c"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DedupeLabels(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("DedupeLabels(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSortTally(t *testing.T) {
	entries := []TallyEntry{
		{Option: "Lisbon", Votes: 1},
		{Option: "Porto", Votes: 3},
		{Option: "Rome", Votes: 1},
	}
	SortTally(entries)

	if entries[0].Option != "Porto" {
		t.Fatalf("expected Porto first, got %v", entries)
	}
	// Stable: Lisbon before Rome on equal votes.
	if entries[1].Option != "Lisbon" || entries[2].Option != "Rome" {
		t.Fatalf("tie order not stable: %v", entries)
	}
}

func TestVoteKindIsValid(t *testing.T) {
	if !VoteDestination.IsValid() || !VoteDates.IsValid() {
		t.Fatal("known kinds should be valid")
	}
	if VoteKind("food").IsValid() {
		t.Fatal("unknown kind should be invalid")
	}
}

func TestOptionsCloneIndependent(t *testing.T) {
	o := Options{Destination: []string{"Lisbon"}, Dates: []string{"Feb 7 - Feb 9"}}
	clone := o.Clone()
	clone.Destination[0] = "changed"

	if o.Destination[0] != "Lisbon" {
		t.Fatal("Clone should not share backing arrays")
	}
}
