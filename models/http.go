package models

// Default and upper bound of a list page, matching the public API contract.
const (
	DefaultPageLimit = 100
	MaxPageLimit     = 100
)

// Page selects a window of an owner's list: Skip rows are skipped and at
// most Limit rows are returned.
type Page struct {
	Skip  uint64 `validate:"gte=0"`
	Limit uint64 `validate:"gte=1,lte=100"`
}

// DefaultPage is the page used when the client sends no pagination params.
func DefaultPage() Page {
	return Page{Skip: 0, Limit: DefaultPageLimit}
}

// Clamp bounds Limit to [1, maxLimit]. A zero maxLimit means [MaxPageLimit].
func (p Page) Clamp(maxLimit uint64) Page {
	if maxLimit == 0 {
		maxLimit = MaxPageLimit
	}
	if p.Limit == 0 {
		p.Limit = 1
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}
