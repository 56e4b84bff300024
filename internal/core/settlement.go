// Package core holds the trip domain model and the two algorithmic
// pieces of the service: debt settlement and crowd-avoidance scoring.
// Everything here is pure computation; callers validate input and own
// all I/O.
package core

import (
	"fmt"
	"sort"
	"strings"
)

// SettleEpsilon is the currency tolerance below which a balance is
// considered settled. It absorbs float rounding from equal splits.
const SettleEpsilon = 0.01

type party struct {
	name   string
	amount float64
}

// Balances computes the net balance per person across all expenses:
// what they paid minus their share of every split they appear in.
// Balances sum to ~0 across all people.
func Balances(expenses []Expense) map[string]float64 {
	balances := make(map[string]float64)
	for _, e := range expenses {
		if len(e.SplitBetween) == 0 {
			continue
		}
		share := e.Amount / float64(len(e.SplitBetween))
		balances[e.PaidBy] += e.Amount
		for _, person := range e.SplitBetween {
			balances[person] -= share
		}
	}
	return balances
}

// Settle reduces a list of shared expenses to a near-minimal list of
// point-to-point transfers. It greedily matches the largest creditor
// against the largest debtor until both sides are exhausted, so the
// output never exceeds creditors+debtors-1 transfers.
//
// Ties between equal balances break by person name ascending, which
// makes the output deterministic for a given expense list. Input is
// assumed well-formed (amount > 0, non-empty split); an empty expense
// list yields an empty transfer list.
func Settle(expenses []Expense) []Transfer {
	balances := Balances(expenses)

	var creditors, debtors []party
	for person, balance := range balances {
		switch {
		case balance > SettleEpsilon:
			creditors = append(creditors, party{person, balance})
		case balance < -SettleEpsilon:
			debtors = append(debtors, party{person, -balance})
		}
	}

	sortByAmountDesc(creditors)
	sortByAmountDesc(debtors)

	transfers := []Transfer{}
	for len(creditors) > 0 && len(debtors) > 0 {
		creditor := &creditors[0]
		debtor := &debtors[0]

		amount := min(creditor.amount, debtor.amount)
		transfers = append(transfers, Transfer{
			FromPerson: debtor.name,
			ToPerson:   creditor.name,
			Amount:     amount,
		})

		creditor.amount -= amount
		debtor.amount -= amount

		if creditor.amount < SettleEpsilon {
			creditors = creditors[1:]
		}
		if debtor.amount < SettleEpsilon {
			debtors = debtors[1:]
		}
	}

	return transfers
}

func sortByAmountDesc(parties []party) {
	sort.SliceStable(parties, func(i, j int) bool {
		if parties[i].amount != parties[j].amount {
			return parties[i].amount > parties[j].amount
		}
		return parties[i].name < parties[j].name
	})
}

// FormatSummary renders transfers as a human-readable settlement
// listing. An empty list yields the fixed all-settled sentinel.
func FormatSummary(transfers []Transfer) string {
	if len(transfers) == 0 {
		return "All settled! No transfers needed."
	}

	lines := []string{"Settlement summary:", ""}
	for _, t := range transfers {
		lines = append(lines, fmt.Sprintf("  %s -> %s: %.2f", t.FromPerson, t.ToPerson, t.Amount))
	}
	return strings.Join(lines, "\n")
}
