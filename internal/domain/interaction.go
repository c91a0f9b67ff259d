package domain

import "time"

// Interaction is one logged touchpoint with a contact. Append-mostly:
// updates are allowed but rare. Retrieval is ordered by
// (contact, occurred-at) newest first.
type Interaction struct {
	ID              string
	ContactID       string
	OccurredAt      time.Time
	Channel         Channel
	ChannelNote     *string // clarification when Channel is "other"
	DurationMinutes *int
	Summary         *string
	Usefulness      *int // 1..5
	KeepInTouch     bool
	AllyPotential   bool
	NextStep        *string
	NextStepDue     *time.Time
	NextStepDone    bool
}

// Reminder is a dated to-do, optionally tied to a contact. It is created
// alongside an interaction but has an independent lifecycle: no foreign key
// is enforced. Delivery/alerting is outside the core; only the record lives
// here.
type Reminder struct {
	ID        string
	ContactID *string
	Title     string
	Type      ReminderType
	DueAt     time.Time
	Done      bool
}
