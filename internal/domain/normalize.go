package domain

import (
	"strings"
	"time"
)

// DeviceContact is the flat record shape delivered by an external
// device-contact source. It is normalized into a Contact at the boundary;
// the core never stores or passes around this raw shape.
type DeviceContact struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Organization string `json:"organization,omitempty"`
}

// NormalizeDeviceContact converts a flat device record into a Contact.
// The display name is split on whitespace: the first token becomes the
// first name, the remainder the last name. Empty phone/organization fields
// collapse to absent values.
func NormalizeDeviceContact(dc DeviceContact, now time.Time) Contact {
	first, last := SplitName(dc.Name)

	var phones []string
	if p := strings.TrimSpace(dc.Phone); p != "" {
		phones = []string{p}
	}

	var org *string
	if o := strings.TrimSpace(dc.Organization); o != "" {
		org = &o
	}

	return Contact{
		ID:           dc.ID,
		FirstName:    first,
		LastName:     last,
		Phones:       phones,
		Emails:       []string{},
		Organization: org,
		Tags:         []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// SplitName splits a free-form display name into first and last name parts.
// The first whitespace-separated token is the first name; everything after
// it joins into the last name.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
