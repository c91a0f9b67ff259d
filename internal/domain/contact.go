package domain

import (
	"strings"
	"time"
)

// Contact is the central entity: one person with profile fields and
// lifecycle timestamps. IDs are opaque strings supplied at creation time
// (device-imported contacts keep their device ID, manually created ones get
// a fresh UUID) and are never reused.
//
// There is no uniqueness constraint on name or phone; duplicate people are
// possible and deduplication is out of scope.
type Contact struct {
	ID                string
	FirstName         string
	LastName          string
	MiddleName        *string
	Phones            []string
	Emails            []string
	Organization      *string
	Position          *string
	Birthday          *string // ISO date; may lack a year, kept verbatim
	PhotoURI          *string
	Notes             *string
	Tags              []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	LastInteractionAt *time.Time
}

// FullName returns "first last" with surplus whitespace removed.
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// SocialProfile is one external profile page linked to a contact, with the
// last-scraped public fields cached as raw JSON. A contact may have any
// number of profiles; the store does not deduplicate by URL.
type SocialProfile struct {
	ID            string
	ContactID     string
	Source        ProfileSource
	URL           string
	FieldsJSON    string
	AddedAt       time.Time
	LastCheckedAt *time.Time
}
