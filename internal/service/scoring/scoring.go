// Package scoring holds the pure score calculations: profile completeness
// and interaction warmth. No storage access, no clock reads, no panics;
// every function is deterministic in its inputs.
package scoring

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/socialcapital-app/backend/internal/domain"
)

// DefaultTauDays is the warmth decay time constant: warmth halves roughly
// every tau*ln2 ≈ 42 days without new interactions.
const DefaultTauDays = 60

// Weight model: full name=2 (1 when only first or only last), phone=2,
// organization=3, birthday=3, email=1, notes=1.
const completenessMax = 2 + 2 + 3 + 3 + 1 + 1

// The \b around the Cyrillic abbreviation never matches (ASCII word
// boundaries only); kept so behavior stays identical across ports.
var birthdayPattern = regexp.MustCompile(`(?i)(birthday|день рождения|\bдр\b)`)

// InteractionEvent carries the interaction fields that influence warmth.
type InteractionEvent struct {
	Channel      domain.Channel
	OccurredAt   string // ISO-8601
	Summary      string
	NextStepDone bool
}

// Completeness rates how filled-in a contact's profile is, 0..100.
// Whitespace-only names and notes do not count.
func Completeness(c domain.Contact) int {
	earned := 0

	fio := 0
	if strings.TrimSpace(c.FirstName) != "" {
		fio++
	}
	if strings.TrimSpace(c.LastName) != "" {
		fio++
	}
	switch fio {
	case 2:
		earned += 2
	case 1:
		earned++
	}

	if len(c.Phones) > 0 {
		earned += 2
	}
	if c.Organization != nil && *c.Organization != "" {
		earned += 3
	}
	if c.Birthday != nil && *c.Birthday != "" {
		earned += 3
	}
	if len(c.Emails) > 0 {
		earned++
	}
	if c.Notes != nil && strings.TrimSpace(*c.Notes) != "" {
		earned++
	}

	return clamp(math.Round(float64(earned) / completenessMax * 100))
}

// Decay returns prev * e^(-Δdays/τ) where Δdays is the non-negative day
// span between the two timestamps. A timestamp that does not parse means
// the span is unknown, so prev comes back unchanged rather than decayed
// by a garbage interval.
func Decay(prev float64, lastAtISO, nowISO string, tauDays float64) float64 {
	last, err := parseISO(lastAtISO)
	if err != nil {
		return prev
	}
	now, err := parseISO(nowISO)
	if err != nil {
		return prev
	}

	dtDays := math.Max(0, float64(now.Sub(last).Milliseconds())/86400000)
	return prev * math.Exp(-dtDays/tauDays)
}

// ApplyInteraction folds one interaction into a warmth value: decay from
// the interaction moment to now, then add the event boost, clamp to 0..100.
// Boosts: meeting +25; call, chat +15; email, other +8; completed next
// step +10; birthday congratulation in the summary +10.
func ApplyInteraction(prev float64, ev InteractionEvent, nowISO string) int {
	return ApplyInteractionTau(prev, ev, nowISO, DefaultTauDays)
}

// ApplyInteractionTau is ApplyInteraction with an explicit decay constant.
func ApplyInteractionTau(prev float64, ev InteractionEvent, nowISO string, tauDays float64) int {
	add := 0.0
	switch ev.Channel {
	case domain.ChannelMeeting:
		add = 25
	case domain.ChannelCall, domain.ChannelChat:
		add = 15
	case domain.ChannelEmail, domain.ChannelOther:
		add = 8
	}
	if ev.NextStepDone {
		add += 10
	}
	if birthdayPattern.MatchString(ev.Summary) {
		add += 10
	}

	decayed := Decay(prev, ev.OccurredAt, nowISO, tauDays)
	return clamp(math.Round(decayed + add))
}

func parseISO(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func clamp(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}
