package core

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestBalancesConservation(t *testing.T) {
	cases := map[string][]Expense{
		"single payer": {
			{Amount: 100, PaidBy: "A", SplitBetween: []string{"A", "B", "C"}},
		},
		"multiple expenses": {
			{Amount: 90, PaidBy: "A", SplitBetween: []string{"A", "B", "C"}},
			{Amount: 60, PaidBy: "B", SplitBetween: []string{"B", "C"}},
			{Amount: 42.50, PaidBy: "C", SplitBetween: []string{"A", "B", "C", "D"}},
		},
		"payer not in split": {
			{Amount: 30, PaidBy: "A", SplitBetween: []string{"B", "C"}},
		},
		"duplicate names in split": {
			{Amount: 40, PaidBy: "A", SplitBetween: []string{"A", "B", "B", "C"}},
		},
	}

	for name, expenses := range cases {
		t.Run(name, func(t *testing.T) {
			var sum float64
			for _, balance := range Balances(expenses) {
				sum += balance
			}
			if math.Abs(sum) > 1e-6 {
				t.Fatalf("balances do not sum to zero: %v", sum)
			}
		})
	}
}

func TestSettleEmpty(t *testing.T) {
	transfers := Settle(nil)
	if len(transfers) != 0 {
		t.Fatalf("expected no transfers for empty input, got %d", len(transfers))
	}
}

func TestSettlePerfectlyCancelled(t *testing.T) {
	// Two people each paying half of an evenly shared bill owe nothing.
	expenses := []Expense{
		{Amount: 50, PaidBy: "A", SplitBetween: []string{"A", "B"}},
		{Amount: 50, PaidBy: "B", SplitBetween: []string{"A", "B"}},
	}
	transfers := Settle(expenses)
	if len(transfers) != 0 {
		t.Fatalf("expected no transfers, got %v", transfers)
	}
}

func TestSettleEndToEnd(t *testing.T) {
	expenses := []Expense{
		{Amount: 100, PaidBy: "A", SplitBetween: []string{"A", "B", "C"}},
	}

	balances := Balances(expenses)
	if got := balances["A"]; math.Abs(got-66.6666) > 0.001 {
		t.Errorf("A balance = %v, want ~66.67", got)
	}
	if got := balances["B"]; math.Abs(got+33.3333) > 0.001 {
		t.Errorf("B balance = %v, want ~-33.33", got)
	}

	transfers := Settle(expenses)
	if len(transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %v", transfers)
	}
	for _, tr := range transfers {
		if tr.ToPerson != "A" {
			t.Errorf("transfer should go to A, got %+v", tr)
		}
		if tr.FromPerson != "B" && tr.FromPerson != "C" {
			t.Errorf("unexpected debtor in %+v", tr)
		}
		if math.Abs(tr.Amount-33.3333) > 0.001 {
			t.Errorf("transfer amount = %v, want ~33.33", tr.Amount)
		}
	}
}

func TestSettleCorrectness(t *testing.T) {
	// Summing transfers per person must reproduce each net balance.
	expenses := []Expense{
		{Amount: 120, PaidBy: "ana", SplitBetween: []string{"ana", "ben", "cat", "dan"}},
		{Amount: 80, PaidBy: "ben", SplitBetween: []string{"ana", "ben"}},
		{Amount: 33.30, PaidBy: "cat", SplitBetween: []string{"ben", "cat", "dan"}},
		{Amount: 15, PaidBy: "dan", SplitBetween: []string{"ana"}},
	}

	balances := Balances(expenses)
	net := make(map[string]float64)
	for _, tr := range Settle(expenses) {
		net[tr.FromPerson] -= tr.Amount
		net[tr.ToPerson] += tr.Amount
	}

	for person, balance := range balances {
		// Transfers move money debtor->creditor, so net receipts must
		// equal the person's balance within epsilon.
		if math.Abs(net[person]-balance) > SettleEpsilon {
			t.Errorf("person %s: transfers net %v, balance %v", person, net[person], balance)
		}
	}
}

func TestSettleMinimalityBound(t *testing.T) {
	expenses := []Expense{
		{Amount: 100, PaidBy: "A", SplitBetween: []string{"A", "B", "C", "D", "E"}},
		{Amount: 75, PaidBy: "B", SplitBetween: []string{"B", "C", "D"}},
		{Amount: 20, PaidBy: "E", SplitBetween: []string{"A", "E"}},
	}

	var creditors, debtors int
	for _, balance := range Balances(expenses) {
		switch {
		case balance > SettleEpsilon:
			creditors++
		case balance < -SettleEpsilon:
			debtors++
		}
	}

	transfers := Settle(expenses)
	if bound := creditors + debtors - 1; len(transfers) > bound {
		t.Fatalf("got %d transfers, bound is %d", len(transfers), bound)
	}
}

func TestSettleDeterministic(t *testing.T) {
	// Equal balances tie-break by name, so repeated runs are identical
	// even though map iteration order is randomized.
	expenses := []Expense{
		{Amount: 30, PaidBy: "zoe", SplitBetween: []string{"amy", "bob", "zoe"}},
		{Amount: 30, PaidBy: "amy", SplitBetween: []string{"amy", "bob", "zoe"}},
	}

	first := Settle(expenses)
	for i := 0; i < 20; i++ {
		if again := Settle(expenses); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, again, first)
		}
	}
}

func TestFormatSummary(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got := FormatSummary(nil)
		if got != "All settled! No transfers needed." {
			t.Fatalf("unexpected sentinel: %q", got)
		}
	})

	t.Run("with transfers", func(t *testing.T) {
		got := FormatSummary([]Transfer{{FromPerson: "B", ToPerson: "A", Amount: 33.3333}})
		if !strings.Contains(got, "B -> A: 33.33") {
			t.Fatalf("summary missing transfer line: %q", got)
		}
	})
}
