package domain

// Channel represents how an interaction took place.
type Channel string

const (
	ChannelMeeting Channel = "meeting"
	ChannelCall    Channel = "call"
	ChannelChat    Channel = "chat"
	ChannelEmail   Channel = "email"
	ChannelOther   Channel = "other"
)

func (c Channel) String() string { return string(c) }

func (c Channel) IsValid() bool {
	switch c {
	case ChannelMeeting, ChannelCall, ChannelChat, ChannelEmail, ChannelOther:
		return true
	}
	return false
}

// ProfileSource identifies where a social profile lives.
type ProfileSource string

const (
	ProfileSourceLinkedIn ProfileSource = "linkedin"
	ProfileSourceFacebook ProfileSource = "facebook"
	ProfileSourceTelegram ProfileSource = "telegram"
	ProfileSourceGitHub   ProfileSource = "github"
	ProfileSourceWebsite  ProfileSource = "website"
	ProfileSourceOther    ProfileSource = "other"
)

func (s ProfileSource) String() string { return string(s) }

func (s ProfileSource) IsValid() bool {
	switch s {
	case ProfileSourceLinkedIn, ProfileSourceFacebook, ProfileSourceTelegram,
		ProfileSourceGitHub, ProfileSourceWebsite, ProfileSourceOther:
		return true
	}
	return false
}

// ReminderType classifies what a reminder is about.
type ReminderType string

const (
	ReminderTypeBirthday ReminderType = "birthday"
	ReminderTypeFollowup ReminderType = "followup"
	ReminderTypeNextStep ReminderType = "nextStep"
)

func (t ReminderType) String() string { return string(t) }

func (t ReminderType) IsValid() bool {
	switch t {
	case ReminderTypeBirthday, ReminderTypeFollowup, ReminderTypeNextStep:
		return true
	}
	return false
}

// CategoryType controls whether a category holds contacts directly or
// through subcategories.
type CategoryType string

const (
	// CategoryTypeSimple holds contacts directly, no subcategories.
	CategoryTypeSimple CategoryType = "simple"
	// CategoryTypeFixed has a predefined set of subcategories.
	CategoryTypeFixed CategoryType = "fixed"
	// CategoryTypeOrg groups contacts by organization-like subcategories.
	CategoryTypeOrg CategoryType = "org"
	// CategoryTypeInterest groups contacts by shared-interest subcategories.
	CategoryTypeInterest CategoryType = "interest"
)

func (t CategoryType) String() string { return string(t) }

func (t CategoryType) IsValid() bool {
	switch t {
	case CategoryTypeSimple, CategoryTypeFixed, CategoryTypeOrg, CategoryTypeInterest:
		return true
	}
	return false
}

// HasSubcategories reports whether subcategories are meaningful for the type.
func (t CategoryType) HasSubcategories() bool {
	return t == CategoryTypeFixed || t == CategoryTypeOrg || t == CategoryTypeInterest
}
