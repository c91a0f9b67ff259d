package domain

// Score holds the derived and user-set ratings for one contact. Keyed by
// contact ID, so at most one row per contact exists.
//
//   - Completeness is recomputed deterministically from the contact's fields
//     on every relevant mutation.
//   - Warmth is stateful: it only changes when an interaction is applied
//     (decay is evaluated lazily at that moment, never in the background), so
//     a read may return a value that has not decayed yet.
//   - ValueScore is a manual 1..5 rating, never derived.
type Score struct {
	ContactID    string
	Completeness int // 0..100
	Warmth       int // 0..100
	ValueScore   int // 1..5
}

// DefaultValueScore is assigned when a score record is first created.
const DefaultValueScore = 3
