package engine

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splittab/splittab-backend/internal/domain/bill"
)

func roster(ids ...string) []bill.Person {
	people := make([]bill.Person, len(ids))
	for i, id := range ids {
		people[i] = bill.Person{ID: id, Name: id}
	}
	return people
}

func TestItemSplits_EvenExactReconstruction(t *testing.T) {
	people := roster("alice", "bob", "carol")
	item := bill.Item{
		ID:        "i1",
		Price:     "10.01",
		Quantity:  1,
		SplitWith: []string{"alice", "bob", "carol"},
		Method:    bill.SplitEven,
	}

	splits := ItemSplits(item, people)
	require.Len(t, splits, 3)

	// Floor division gives 3.33 each; the last person in roster order
	// absorbs the two leftover cents.
	assert.Equal(t, 3.33, splits["alice"])
	assert.Equal(t, 3.33, splits["bob"])
	assert.Equal(t, 3.35, splits["carol"])
	assert.Equal(t, 10.01, splits["alice"]+splits["bob"]+splits["carol"])
}

func TestItemSplits_EvenManyDivisors(t *testing.T) {
	// Exact reconstruction must hold for any price and any person count.
	prices := []string{"0.01", "0.10", "1.00", "9.99", "10.01", "33.33", "100.00", "123.45"}
	for n := 1; n <= 7; n++ {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}
		people := roster(ids...)
		for _, price := range prices {
			item := bill.Item{Price: price, Quantity: 1, SplitWith: ids, Method: bill.SplitEven}
			splits := ItemSplits(item, people)

			var sum int64
			for _, amount := range splits {
				sum += int64(math.Round(amount * 100))
			}
			parsed, err := strconv.ParseFloat(price, 64)
			require.NoError(t, err)
			want := int64(math.Round(parsed * 100))
			assert.Equal(t, want, sum, "price %s across %d people", price, n)
		}
	}
}

func TestItemSplits_RemainderFollowsRosterOrder(t *testing.T) {
	// SplitWith order is irrelevant; roster order decides who is last.
	people := roster("alice", "bob", "carol")
	item := bill.Item{
		Price:     "10.00",
		Quantity:  1,
		SplitWith: []string{"carol", "alice", "bob"},
		Method:    bill.SplitEven,
	}

	splits := ItemSplits(item, people)

	assert.Equal(t, 3.33, splits["alice"])
	assert.Equal(t, 3.33, splits["bob"])
	assert.Equal(t, 3.34, splits["carol"])
}

func TestItemSplits_EmptySelection(t *testing.T) {
	people := roster("alice", "bob")

	splits := ItemSplits(bill.Item{Price: "10.00", Method: bill.SplitEven}, people)
	assert.Empty(t, splits)

	// Participants not on the roster are filtered out.
	splits = ItemSplits(bill.Item{
		Price:     "10.00",
		SplitWith: []string{"ghost"},
		Method:    bill.SplitEven,
	}, people)
	assert.Empty(t, splits)
}

func TestItemSplits_Shares(t *testing.T) {
	people := roster("alice", "bob")
	item := bill.Item{
		Price:        "12.00",
		Quantity:     1,
		SplitWith:    []string{"alice", "bob"},
		Method:       bill.SplitShares,
		CustomSplits: map[string]float64{"alice": 1, "bob": 2},
	}

	splits := ItemSplits(item, people)

	assert.Equal(t, 4.00, splits["alice"])
	assert.Equal(t, 8.00, splits["bob"])
}

func TestItemSplits_SharesZeroTotalProducesNothing(t *testing.T) {
	people := roster("alice", "bob")
	item := bill.Item{
		Price:        "12.00",
		SplitWith:    []string{"alice", "bob"},
		Method:       bill.SplitShares,
		CustomSplits: map[string]float64{"alice": 0, "bob": 0},
	}

	assert.Empty(t, ItemSplits(item, people))
}

func TestItemSplits_SharesMissingEntryCountsAsZero(t *testing.T) {
	people := roster("alice", "bob")
	item := bill.Item{
		Price:        "9.00",
		SplitWith:    []string{"alice", "bob"},
		Method:       bill.SplitShares,
		CustomSplits: map[string]float64{"alice": 3},
	}

	splits := ItemSplits(item, people)

	// Alice carries all the weight; Bob still absorbs the (zero) remainder.
	assert.Equal(t, 9.00, splits["alice"])
	assert.Equal(t, 0.00, splits["bob"])
}

func TestItemSplits_Percent(t *testing.T) {
	people := roster("alice", "bob")
	item := bill.Item{
		Price:        "100.00",
		SplitWith:    []string{"alice", "bob"},
		Method:       bill.SplitPercent,
		CustomSplits: map[string]float64{"alice": 30, "bob": 70},
	}

	splits := ItemSplits(item, people)

	assert.Equal(t, 30.00, splits["alice"])
	assert.Equal(t, 70.00, splits["bob"])
}

func TestItemSplits_PercentNotSummingTo100StillReconstructs(t *testing.T) {
	people := roster("alice", "bob")
	item := bill.Item{
		Price:        "10.00",
		SplitWith:    []string{"alice", "bob"},
		Method:       bill.SplitPercent,
		CustomSplits: map[string]float64{"alice": 30, "bob": 30},
	}

	splits := ItemSplits(item, people)

	// Alice gets her stated 30%; Bob absorbs whatever is left so the item
	// still reconstructs exactly.
	assert.Equal(t, 3.00, splits["alice"])
	assert.Equal(t, 7.00, splits["bob"])
}

func TestItemSplits_ExactPassthrough(t *testing.T) {
	people := roster("alice", "bob")
	item := bill.Item{
		Price:        "10.00",
		SplitWith:    []string{"alice", "bob"},
		Method:       bill.SplitExact,
		CustomSplits: map[string]float64{"alice": 3.00, "bob": 5.00},
	}

	splits := ItemSplits(item, people)

	// Amounts pass through unchanged even though they do not sum to the
	// item price; validating that is the caller's job.
	assert.Equal(t, 3.00, splits["alice"])
	assert.Equal(t, 5.00, splits["bob"])
}

func TestItemSplits_MalformedPriceParsesToZero(t *testing.T) {
	people := roster("alice", "bob")
	item := bill.Item{
		Price:     "not a price",
		SplitWith: []string{"alice", "bob"},
		Method:    bill.SplitEven,
	}

	splits := ItemSplits(item, people)

	assert.Equal(t, 0.00, splits["alice"])
	assert.Equal(t, 0.00, splits["bob"])
}

func twoPersonBill() bill.Bill {
	return bill.Bill{
		ID:               "b1",
		Status:           bill.StatusActive,
		Tax:              "2.00",
		Tip:              "3.00",
		Discount:         "1.00",
		TaxTipAllocation: bill.AllocationProportional,
		People:           roster("alice", "bob"),
		Items: []bill.Item{
			{ID: "i1", Name: "Pasta", Price: "10.00", Quantity: 1, SplitWith: []string{"alice"}, Method: bill.SplitEven},
			{ID: "i2", Name: "Pizza", Price: "10.00", Quantity: 1, SplitWith: []string{"bob"}, Method: bill.SplitEven},
		},
	}
}

func TestPersonTotals_ProportionalCharges(t *testing.T) {
	totals := PersonTotals(twoPersonBill())
	require.Len(t, totals, 2)

	for _, pt := range totals {
		assert.Equal(t, 10.00, pt.Subtotal, pt.PersonID)
		assert.Equal(t, 1.00, pt.Tax, pt.PersonID)
		assert.Equal(t, 1.50, pt.Tip, pt.PersonID)
		assert.Equal(t, 0.50, pt.Discount, pt.PersonID)
		assert.Equal(t, 12.00, pt.Total, pt.PersonID)
	}
}

func TestPersonTotals_EvenChargesIgnoreSubtotals(t *testing.T) {
	b := bill.Bill{
		Tax:              "3.60",
		Tip:              "7.20",
		Discount:         "0",
		TaxTipAllocation: bill.AllocationEven,
		People:           roster("alice", "bob", "carol"),
		Items: []bill.Item{
			{ID: "i1", Price: "30.00", SplitWith: []string{"alice"}, Method: bill.SplitEven},
			{ID: "i2", Price: "3.00", SplitWith: []string{"bob"}, Method: bill.SplitEven},
			{ID: "i3", Price: "3.00", SplitWith: []string{"carol"}, Method: bill.SplitEven},
		},
	}

	totals := PersonTotals(b)
	require.Len(t, totals, 3)

	for _, pt := range totals {
		assert.Equal(t, 1.20, pt.Tax, pt.PersonID)
		assert.Equal(t, 2.40, pt.Tip, pt.PersonID)
	}
}

func TestPersonTotals_EvenChargesUseFloor(t *testing.T) {
	b := bill.Bill{
		Tax:              "1.00",
		TaxTipAllocation: bill.AllocationEven,
		People:           roster("alice", "bob", "carol"),
		Items: []bill.Item{
			{ID: "i1", Price: "9.00", SplitWith: []string{"alice", "bob", "carol"}, Method: bill.SplitEven},
		},
	}

	totals := PersonTotals(b)
	require.Len(t, totals, 3)

	// floor(100/3) = 33 cents for the first two; the last person gets the
	// remaining 34.
	assert.Equal(t, 0.33, totals[0].Tax)
	assert.Equal(t, 0.33, totals[1].Tax)
	assert.Equal(t, 0.34, totals[2].Tax)
}

func TestPersonTotals_ZeroSubtotalIsSafe(t *testing.T) {
	b := bill.Bill{
		Tax:              "5.00",
		Tip:              "2.00",
		TaxTipAllocation: bill.AllocationProportional,
		People:           roster("alice", "bob"),
	}

	totals := PersonTotals(b)
	require.Len(t, totals, 2)

	for _, pt := range totals {
		assert.Zero(t, pt.Subtotal)
		assert.Zero(t, pt.Tax)
		assert.Zero(t, pt.Tip)
		assert.Zero(t, pt.Discount)
		assert.Zero(t, pt.Total)
	}
}

func TestPersonTotals_MalformedChargesParseToZero(t *testing.T) {
	b := twoPersonBill()
	b.Tax = "abc"
	b.Tip = ""
	b.Discount = "12."

	totals := PersonTotals(b)
	require.Len(t, totals, 2)

	assert.Zero(t, totals[0].Tax)
	assert.Zero(t, totals[0].Tip)
	// "12." still parses; each person carries half of the discount.
	assert.Equal(t, 6.00, totals[0].Discount)
	assert.Equal(t, 6.00, totals[1].Discount)
}

func TestPersonTotals_Idempotent(t *testing.T) {
	b := twoPersonBill()

	first := PersonTotals(b)
	second := PersonTotals(b)

	assert.Equal(t, first, second)
}

func TestPersonTotals_ProportionalRemainderToLastPerson(t *testing.T) {
	b := bill.Bill{
		Tax:              "1.00",
		TaxTipAllocation: bill.AllocationProportional,
		People:           roster("alice", "bob", "carol"),
		Items: []bill.Item{
			{ID: "i1", Price: "10.00", SplitWith: []string{"alice", "bob", "carol"}, Method: bill.SplitEven},
		},
	}

	totals := PersonTotals(b)
	require.Len(t, totals, 3)

	var taxSum float64
	for _, pt := range totals {
		taxSum += pt.Tax
	}
	assert.InDelta(t, 1.00, taxSum, 1e-9)
	// Carol had the larger subtotal (3.34) but the remainder convention is
	// positional, not magnitude-based.
	assert.Equal(t, 0.33, totals[0].Tax)
	assert.Equal(t, 0.33, totals[1].Tax)
	assert.Equal(t, 0.34, totals[2].Tax)
}

func TestSummary_AggregatesPersonTotals(t *testing.T) {
	s := Summary(twoPersonBill())

	assert.Equal(t, 20.00, s.Subtotal)
	assert.Equal(t, 2.00, s.Tax)
	assert.Equal(t, 3.00, s.Tip)
	assert.Equal(t, 1.00, s.Discount)
	assert.Equal(t, 24.00, s.Total)
	require.Len(t, s.PersonTotals, 2)

	var personSum float64
	for _, pt := range s.PersonTotals {
		personSum += pt.Total
	}
	assert.InDelta(t, s.Total, personSum, 1e-9)
}

func TestSummary_EmptyBill(t *testing.T) {
	s := Summary(bill.Bill{TaxTipAllocation: bill.AllocationProportional})

	assert.Zero(t, s.Subtotal)
	assert.Zero(t, s.Total)
	assert.Empty(t, s.PersonTotals)
}

func TestItemBreakdowns(t *testing.T) {
	b := twoPersonBill()

	breakdowns := ItemBreakdowns(b)
	require.Len(t, breakdowns, 2)

	assert.Equal(t, "i1", breakdowns[0].ItemID)
	assert.Equal(t, "Pasta", breakdowns[0].ItemName)
	assert.Equal(t, 10.00, breakdowns[0].ItemPrice)
	assert.Equal(t, map[string]float64{"alice": 10.00}, breakdowns[0].Splits)

	assert.Equal(t, "i2", breakdowns[1].ItemID)
	assert.Equal(t, map[string]float64{"bob": 10.00}, breakdowns[1].Splits)
}
