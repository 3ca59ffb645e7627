// Package engine computes per-person money splits for a bill.
//
// All arithmetic runs in integer cents so that per-person amounts always
// reconstruct the source amount exactly. The rounding convention is fixed:
// for every distribution (item splits and bill-level tax/tip/discount), each
// person except the last receives a rounded or floored share and the last
// person in roster order absorbs the exact remainder. Which person gets the
// extra cent is therefore deterministic and stable across calls.
//
// Every function here is pure: no state, no I/O, no errors. Malformed money
// strings parse to 0, and missing custom-split entries count as a zero
// weight/percent/amount for that person.
package engine

import (
	"math"

	"github.com/splittab/splittab-backend/internal/domain/bill"
	"github.com/splittab/splittab-backend/internal/domain/expr"
)

// ItemSplits computes one item's per-person amounts in dollars. People not in
// the item's SplitWith list are excluded; selection order follows the roster,
// not SplitWith. An empty selection yields an empty map.
//
// For the exact method the per-person CustomSplits dollar amounts are passed
// through verbatim with no reconciliation against the item price; validating
// that they sum to the price is the caller's concern.
func ItemSplits(item bill.Item, people []bill.Person) map[string]float64 {
	if item.Method == bill.SplitExact {
		splits := make(map[string]float64)
		for _, p := range selectPeople(item, people) {
			splits[p.ID] = item.CustomSplits[p.ID]
		}
		return splits
	}

	splits := make(map[string]float64)
	for id, cents := range itemSplitCents(item, people) {
		splits[id] = dollars(cents)
	}
	return splits
}

// PersonTotals computes every person's subtotal, tax, tip, discount, and
// total for the bill, in roster order. Calling it twice on the same bill
// yields identical results.
func PersonTotals(b bill.Bill) []bill.PersonTotal {
	totals := make([]bill.PersonTotal, 0, len(b.People))
	for _, acc := range personTotalCents(b) {
		totals = append(totals, bill.PersonTotal{
			PersonID: acc.personID,
			Subtotal: dollars(acc.subtotal),
			Tax:      dollars(acc.tax),
			Tip:      dollars(acc.tip),
			Discount: dollars(acc.discount),
			Total:    dollars(acc.subtotal + acc.tax + acc.tip - acc.discount),
		})
	}
	return totals
}

// Summary aggregates PersonTotals into bill-level figures. Sums stay in cents
// until the end, so the bill total is exactly the sum of the person totals.
func Summary(b bill.Bill) bill.Summary {
	accs := personTotalCents(b)

	var subtotal, tax, tip, discount int64
	for _, acc := range accs {
		subtotal += acc.subtotal
		tax += acc.tax
		tip += acc.tip
		discount += acc.discount
	}

	totals := make([]bill.PersonTotal, 0, len(accs))
	for _, acc := range accs {
		totals = append(totals, bill.PersonTotal{
			PersonID: acc.personID,
			Subtotal: dollars(acc.subtotal),
			Tax:      dollars(acc.tax),
			Tip:      dollars(acc.tip),
			Discount: dollars(acc.discount),
			Total:    dollars(acc.subtotal + acc.tax + acc.tip - acc.discount),
		})
	}

	return bill.Summary{
		Subtotal:     dollars(subtotal),
		Tax:          dollars(tax),
		Tip:          dollars(tip),
		Discount:     dollars(discount),
		Total:        dollars(subtotal + tax + tip - discount),
		PersonTotals: totals,
	}
}

// ItemBreakdowns maps every item to its per-person splits, preserving item
// order.
func ItemBreakdowns(b bill.Bill) []bill.ItemBreakdown {
	breakdowns := make([]bill.ItemBreakdown, 0, len(b.Items))
	for _, item := range b.Items {
		breakdowns = append(breakdowns, bill.ItemBreakdown{
			ItemID:    item.ID,
			ItemName:  item.Name,
			ItemPrice: expr.ParseNumber(item.Price),
			Splits:    ItemSplits(item, b.People),
		})
	}
	return breakdowns
}

type personCents struct {
	personID string
	subtotal int64
	tax      int64
	tip      int64
	discount int64
}

// personTotalCents is the cent-domain core of PersonTotals and Summary.
func personTotalCents(b bill.Bill) []personCents {
	accs := make([]personCents, len(b.People))
	index := make(map[string]int, len(b.People))
	for i, p := range b.People {
		accs[i] = personCents{personID: p.ID}
		index[p.ID] = i
	}

	for _, item := range b.Items {
		for id, cents := range itemSplitCents(item, b.People) {
			// Unknown IDs should not occur (person removal cascades into
			// items) but are skipped rather than trusted.
			if i, ok := index[id]; ok {
				accs[i].subtotal += cents
			}
		}
	}

	var billSubtotal int64
	for _, acc := range accs {
		billSubtotal += acc.subtotal
	}

	taxCents := toCents(expr.ParseNumber(b.Tax))
	tipCents := toCents(expr.ParseNumber(b.Tip))
	discountCents := toCents(expr.ParseNumber(b.Discount))

	// A zero bill subtotal leaves every charge at zero in both modes.
	switch {
	case len(accs) == 0 || billSubtotal == 0:
	case b.TaxTipAllocation == bill.AllocationEven:
		allocateEven(accs, taxCents, func(a *personCents) *int64 { return &a.tax })
		allocateEven(accs, tipCents, func(a *personCents) *int64 { return &a.tip })
		allocateEven(accs, discountCents, func(a *personCents) *int64 { return &a.discount })
	default:
		allocateProportional(accs, billSubtotal, taxCents, func(a *personCents) *int64 { return &a.tax })
		allocateProportional(accs, billSubtotal, tipCents, func(a *personCents) *int64 { return &a.tip })
		allocateProportional(accs, billSubtotal, discountCents, func(a *personCents) *int64 { return &a.discount })
	}

	return accs
}

// allocateProportional distributes amount across accs in proportion to each
// person's subtotal. Non-last people get a rounded share; the last person
// absorbs the exact remainder so the shares always sum to amount.
func allocateProportional(accs []personCents, billSubtotal, amount int64, field func(*personCents) *int64) {
	var assigned int64
	last := len(accs) - 1
	for i := range accs {
		if i == last {
			*field(&accs[i]) = amount - assigned
			return
		}
		share := int64(math.Round(float64(amount) * float64(accs[i].subtotal) / float64(billSubtotal)))
		*field(&accs[i]) = share
		assigned += share
	}
}

// allocateEven gives every non-last person floor(amount/n); the last person
// gets the remainder. Floor, not round: an even $3.01 across two people is
// $1.50 and $1.51, with the extra cent landing on the last person.
func allocateEven(accs []personCents, amount int64, field func(*personCents) *int64) {
	n := int64(len(accs))
	base := floorDiv(amount, n)
	var assigned int64
	last := len(accs) - 1
	for i := range accs {
		if i == last {
			*field(&accs[i]) = amount - assigned
			return
		}
		*field(&accs[i]) = base
		assigned += base
	}
}

// itemSplitCents computes one item's splits in integer cents. The exact
// method rounds each custom amount to the cent; the other methods distribute
// the item price with last-person remainder absorption.
func itemSplitCents(item bill.Item, people []bill.Person) map[string]int64 {
	selected := selectPeople(item, people)
	if len(selected) == 0 {
		return map[string]int64{}
	}

	if item.Method == bill.SplitExact {
		splits := make(map[string]int64, len(selected))
		for _, p := range selected {
			splits[p.ID] = toCents(item.CustomSplits[p.ID])
		}
		return splits
	}

	priceCents := toCents(expr.ParseNumber(item.Price))
	splits := make(map[string]int64, len(selected))
	last := len(selected) - 1
	var assigned int64

	switch item.Method {
	case bill.SplitShares:
		var totalShares float64
		for _, p := range selected {
			totalShares += item.CustomSplits[p.ID]
		}
		if totalShares == 0 {
			// Quirk kept from the original: zero total weight silently
			// produces no splits instead of falling back to even.
			return map[string]int64{}
		}
		for i, p := range selected {
			if i == last {
				splits[p.ID] = priceCents - assigned
				break
			}
			share := int64(math.Round(float64(priceCents) * item.CustomSplits[p.ID] / totalShares))
			splits[p.ID] = share
			assigned += share
		}

	case bill.SplitPercent:
		for i, p := range selected {
			if i == last {
				// The last person absorbs the remainder even when the
				// percentages do not sum to 100; exact reconstruction wins
				// over percentage fidelity.
				splits[p.ID] = priceCents - assigned
				break
			}
			share := int64(math.Round(float64(priceCents) * item.CustomSplits[p.ID] / 100))
			splits[p.ID] = share
			assigned += share
		}

	default: // bill.SplitEven and anything unrecognized
		base := floorDiv(priceCents, int64(len(selected)))
		for i, p := range selected {
			if i == last {
				splits[p.ID] = priceCents - assigned
				break
			}
			splits[p.ID] = base
			assigned += base
		}
	}

	return splits
}

// selectPeople filters the roster to the item's participants, preserving
// roster order. Roster order decides who is "last" for remainder absorption.
func selectPeople(item bill.Item, people []bill.Person) []bill.Person {
	if len(item.SplitWith) == 0 {
		return nil
	}
	members := make(map[string]bool, len(item.SplitWith))
	for _, id := range item.SplitWith {
		members[id] = true
	}
	var selected []bill.Person
	for _, p := range people {
		if members[p.ID] {
			selected = append(selected, p)
		}
	}
	return selected
}

// toCents converts a dollar amount to integer cents, rounding half away from
// zero.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// dollars converts integer cents back to a dollar amount at the output
// boundary.
func dollars(cents int64) float64 {
	return float64(cents) / 100
}

// floorDiv is integer division rounding toward negative infinity, matching
// floor semantics for the even-split base amount.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
