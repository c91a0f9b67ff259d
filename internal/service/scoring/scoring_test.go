package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/socialcapital-app/backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestCompleteness(t *testing.T) {
	tests := []struct {
		name    string
		contact domain.Contact
		want    int
	}{
		{
			name:    "empty contact",
			contact: domain.Contact{},
			want:    0,
		},
		{
			name:    "first name only",
			contact: domain.Contact{FirstName: "Анна"},
			want:    8, // round(100 * 1/12)
		},
		{
			name:    "last name only",
			contact: domain.Contact{LastName: "Петрова"},
			want:    8,
		},
		{
			name:    "full name",
			contact: domain.Contact{FirstName: "Анна", LastName: "Петрова"},
			want:    17, // round(100 * 2/12)
		},
		{
			name:    "whitespace names do not count",
			contact: domain.Contact{FirstName: "   ", LastName: "\t"},
			want:    0,
		},
		{
			name: "everything filled",
			contact: domain.Contact{
				FirstName:    "Анна",
				LastName:     "Петрова",
				Phones:       []string{"+7 900 000-00-00"},
				Emails:       []string{"anna@example.com"},
				Organization: strPtr("Acme"),
				Birthday:     strPtr("1990-04-12"),
				Notes:        strPtr("met at conference"),
			},
			want: 100,
		},
		{
			name: "whitespace notes do not count",
			contact: domain.Contact{
				FirstName: "Анна",
				LastName:  "Петрова",
				Notes:     strPtr("   "),
			},
			want: 17,
		},
		{
			name: "phone and organization",
			contact: domain.Contact{
				Phones:       []string{"+7 900 000-00-00"},
				Organization: strPtr("Acme"),
			},
			want: 42, // round(100 * 5/12)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Completeness(tt.contact))
		})
	}
}

func TestDecay(t *testing.T) {
	t.Run("sixty days at tau sixty is one e-fold", func(t *testing.T) {
		got := Decay(80, "2024-01-01T00:00:00.000Z", "2024-03-01T00:00:00.000Z", 60)
		// 80 * e^-1
		assert.InDelta(t, 29.43, got, 0.01)
	})

	t.Run("zero elapsed time keeps the value", func(t *testing.T) {
		got := Decay(50, "2024-01-01T00:00:00.000Z", "2024-01-01T00:00:00.000Z", 60)
		assert.InDelta(t, 50, got, 1e-9)
	})

	t.Run("clock skew never inflates warmth", func(t *testing.T) {
		// last is after now; the span clamps to zero.
		got := Decay(50, "2024-06-01T00:00:00.000Z", "2024-01-01T00:00:00.000Z", 60)
		assert.InDelta(t, 50, got, 1e-9)
	})

	t.Run("unparseable last timestamp returns prev unchanged", func(t *testing.T) {
		got := Decay(42.5, "not-a-date", "2024-01-01T00:00:00.000Z", 60)
		assert.Equal(t, 42.5, got)
	})

	t.Run("unparseable now timestamp returns prev unchanged", func(t *testing.T) {
		got := Decay(42.5, "2024-01-01T00:00:00.000Z", "", 60)
		assert.Equal(t, 42.5, got)
	})

	t.Run("long gap decays towards zero", func(t *testing.T) {
		got := Decay(100, "2020-01-01T00:00:00.000Z", "2024-01-01T00:00:00.000Z", 60)
		assert.Less(t, got, 0.01)
	})
}

func TestApplyInteraction(t *testing.T) {
	now := "2024-01-01T12:00:00.000Z"

	tests := []struct {
		name string
		prev float64
		ev   InteractionEvent
		want int
	}{
		{
			name: "meeting from zero",
			prev: 0,
			ev:   InteractionEvent{Channel: domain.ChannelMeeting, OccurredAt: now},
			want: 25,
		},
		{
			name: "call",
			prev: 0,
			ev:   InteractionEvent{Channel: domain.ChannelCall, OccurredAt: now},
			want: 15,
		},
		{
			name: "chat",
			prev: 0,
			ev:   InteractionEvent{Channel: domain.ChannelChat, OccurredAt: now},
			want: 15,
		},
		{
			name: "email",
			prev: 0,
			ev:   InteractionEvent{Channel: domain.ChannelEmail, OccurredAt: now},
			want: 8,
		},
		{
			name: "other",
			prev: 0,
			ev:   InteractionEvent{Channel: domain.ChannelOther, OccurredAt: now},
			want: 8,
		},
		{
			name: "next step done adds ten",
			prev: 0,
			ev: InteractionEvent{
				Channel: domain.ChannelEmail, OccurredAt: now, NextStepDone: true,
			},
			want: 18,
		},
		{
			name: "birthday congratulation in english",
			prev: 0,
			ev: InteractionEvent{
				Channel: domain.ChannelChat, OccurredAt: now,
				Summary: "Wished her a happy BIRTHDAY",
			},
			want: 25,
		},
		{
			name: "birthday congratulation in russian",
			prev: 0,
			ev: InteractionEvent{
				Channel: domain.ChannelCall, OccurredAt: now,
				Summary: "Поздравил с днём... день рождения!",
			},
			want: 25,
		},
		{
			name: "clamped at one hundred",
			prev: 95,
			ev:   InteractionEvent{Channel: domain.ChannelMeeting, OccurredAt: now},
			want: 100,
		},
		{
			name: "unparseable occurred-at skips decay",
			prev: 40,
			ev:   InteractionEvent{Channel: domain.ChannelEmail, OccurredAt: "garbage"},
			want: 48,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyInteraction(tt.prev, tt.ev, now))
		})
	}

	t.Run("decays before boosting", func(t *testing.T) {
		// 60 days at tau 60: 80 decays to ~29.43, then +25 for the meeting.
		got := ApplyInteraction(80, InteractionEvent{
			Channel:    domain.ChannelMeeting,
			OccurredAt: "2024-01-01T00:00:00.000Z",
		}, "2024-03-01T00:00:00.000Z")
		assert.Equal(t, int(math.Round(80*math.Exp(-1)+25)), got)
	})
}
