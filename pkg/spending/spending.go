package spending

import (
	"errors"
	"time"
)

var (
	ErrRecordNotFound = errors.New("spending record not found")
	ErrRecordInvalid  = errors.New("spending record invalid")
	// ErrPermissionDenied signals that the caller is no longer authorized to
	// read the record list. Consumers should clear local state instead of
	// retrying.
	ErrPermissionDenied = errors.New("permission denied")
)

// Category is the closed set of spending categories. Values outside the set
// are preserved in storage but degrade to CategoryOther for display.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTravel        Category = "Travel"
	CategoryHome          Category = "Home"
	CategorySubscriptions Category = "Subscriptions"
	CategoryEntertainment Category = "Entertainment"
	CategoryOther         Category = "Other"
)

// categories holds the fixed enumeration order used everywhere a stable
// category ordering is required (legends, distribution slices).
var categories = []Category{
	CategoryFood,
	CategoryTravel,
	CategoryHome,
	CategorySubscriptions,
	CategoryEntertainment,
	CategoryOther,
}

// Categories returns the closed category set in its fixed enumeration order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory maps a stored category value onto the closed set. Unknown or
// empty values degrade to CategoryOther without touching the stored record.
func ParseCategory(s string) Category {
	for _, c := range categories {
		if s == string(c) {
			return c
		}
	}
	return CategoryOther
}

// Style is the display mapping of a category. The mapping is total: every
// category of the closed set always resolves to the same color and icon,
// whether or not any record currently uses it.
type Style struct {
	Color string
	Icon  string
}

var categoryStyles = map[Category]Style{
	CategoryFood:          {Color: "#3b82f6", Icon: "hamburger"},
	CategoryTravel:        {Color: "#22c55e", Icon: "airplane"},
	CategoryHome:          {Color: "#ef4444", Icon: "house"},
	CategorySubscriptions: {Color: "#eab308", Icon: "credit-card"},
	CategoryEntertainment: {Color: "#a855f7", Icon: "youtube-logo"},
	CategoryOther:         {Color: "#14b8a6", Icon: "shopping-cart"},
}

// StyleOf returns the display style for a category. Values outside the closed
// set get the CategoryOther style.
func StyleOf(c Category) Style {
	if style, ok := categoryStyles[c]; ok {
		return style
	}
	return categoryStyles[CategoryOther]
}

// Record is a single immutable spending entry. CreatedAt is the normalized
// in-memory timestamp; the zero value is the Invalid sentinel for records
// whose stored timestamp could not be parsed. Such records fail every
// date-bound comparison but are never dropped from the snapshot.
type Record struct {
	ID        string
	Name      string
	Amount    float64
	Category  string
	CreatedAt time.Time
}

// DisplayCategory maps the stored category onto the closed set for display
// and aggregation purposes.
func (r Record) DisplayCategory() Category {
	return ParseCategory(r.Category)
}

// HasValidTimestamp reports whether the record carries a usable timestamp.
func (r Record) HasValidTimestamp() bool {
	return !r.CreatedAt.IsZero()
}
