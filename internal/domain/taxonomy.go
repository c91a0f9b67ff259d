package domain

import "time"

// Category is a top-level bucket of contacts. Simple categories hold
// contacts directly; fixed/org/interest categories refine membership through
// subcategories.
type Category struct {
	ID        string
	Name      string
	Type      CategoryType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subcategory belongs to exactly one category. Its name is unique within
// that category (case-insensitive), enforced at creation by the taxonomy
// service rather than the store.
type Subcategory struct {
	ID         string
	CategoryID string
	Name       string
	SortOrder  *int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ContactCategory is one edge of the contact<->category relation. The
// (ContactID, CategoryID) pair is the logical uniqueness key; the synthetic
// ID exists only because every store row needs a primary key.
type ContactCategory struct {
	ID         string
	ContactID  string
	CategoryID string
	CreatedAt  time.Time
}

// ContactSubcategory mirrors ContactCategory for subcategories.
type ContactSubcategory struct {
	ID            string
	ContactID     string
	SubcategoryID string
	CreatedAt     time.Time
}

// CategoryStats is an exact membership count for one category.
type CategoryStats struct {
	CategoryID    string
	ContactsCount int
}

// SubcategoryStats is an exact membership count for one subcategory plus its
// share of the parent category's membership.
type SubcategoryStats struct {
	SubcategoryID     string
	ContactsCount     int
	PercentInCategory int
}
