// Package bill defines the core domain model for bill splitting.
//
// Money fields (item prices, bill tax/tip/discount) are stored as decimal
// strings rather than floats. They are parsed only at computation time, which
// keeps partially-typed input ("12.") harmless and avoids binary float
// artifacts in stored data. All derived amounts are computed by the engine
// package in integer cents.
package bill

// SplitMethod selects how one item's price is divided among its participants.
type SplitMethod string

const (
	// SplitEven divides the price equally among selected people.
	SplitEven SplitMethod = "even"
	// SplitShares divides proportionally to per-person share weights.
	SplitShares SplitMethod = "shares"
	// SplitPercent divides by per-person percentages (expected to sum to 100,
	// not enforced).
	SplitPercent SplitMethod = "percent"
	// SplitExact uses per-person dollar amounts verbatim.
	SplitExact SplitMethod = "exact"
)

// AllocationMode selects how bill-level tax/tip/discount are distributed.
type AllocationMode string

const (
	// AllocationProportional distributes in proportion to each person's item
	// subtotal.
	AllocationProportional AllocationMode = "proportional"
	// AllocationEven distributes equally regardless of subtotal.
	AllocationEven AllocationMode = "even"
)

// Status is the lifecycle state of a bill.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Person is a participant on a bill. Identity is ID, which is opaque and
// stable for the bill's lifetime.
type Person struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Item is a single line item on a bill.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`

	// SplitWith lists the person IDs sharing this item. Entries are unique
	// and order-irrelevant; every entry must refer to a person on the bill.
	SplitWith []string `json:"split_with"`

	Method SplitMethod `json:"method"`

	// CustomSplits carries per-person weights (shares), percentages
	// (percent), or dollar amounts (exact). Meaningful only when Method is
	// not SplitEven. A selected person with no entry counts as zero.
	CustomSplits map[string]float64 `json:"custom_splits,omitempty"`
}

// Bill is one bill with its people and items. A bill exclusively owns its
// people and items; they are never shared across bills.
type Bill struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Status           Status         `json:"status"`
	Tax              string         `json:"tax"`
	Tip              string         `json:"tip"`
	Discount         string         `json:"discount"`
	TaxTipAllocation AllocationMode `json:"tax_tip_allocation"`
	People           []Person       `json:"people"`
	Items            []Item         `json:"items"`
}

// PersonTotal is one person's computed share of a bill. It is derived, never
// stored.
type PersonTotal struct {
	PersonID string  `json:"person_id"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Tip      float64 `json:"tip"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// ItemBreakdown is one item's computed per-person split. Derived, never
// stored.
type ItemBreakdown struct {
	ItemID    string             `json:"item_id"`
	ItemName  string             `json:"item_name"`
	ItemPrice float64            `json:"item_price"`
	Splits    map[string]float64 `json:"splits"`
}

// Summary aggregates a bill's computed totals.
type Summary struct {
	Subtotal     float64       `json:"subtotal"`
	Tax          float64       `json:"tax"`
	Tip          float64       `json:"tip"`
	Discount     float64       `json:"discount"`
	Total        float64       `json:"total"`
	PersonTotals []PersonTotal `json:"person_totals"`
}

// ValidMethod reports whether m is a known split method.
func ValidMethod(m SplitMethod) bool {
	switch m {
	case SplitEven, SplitShares, SplitPercent, SplitExact:
		return true
	}
	return false
}

// ValidAllocation reports whether m is a known allocation mode.
func ValidAllocation(m AllocationMode) bool {
	return m == AllocationProportional || m == AllocationEven
}

// ValidStatus reports whether s is a known bill status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusActive, StatusClosed:
		return true
	}
	return false
}
