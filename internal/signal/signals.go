// Package signal defines the canonical account signal set and the normalizer
// that turns raw caller input into it. Every optional field is either a
// concrete value from its domain or an explicit unknown marker; a missing
// number is never conflated with zero.
package signal

// TriState represents an optional yes/no signal.
type TriState string

const (
	TriYes     TriState = "yes"
	TriNo      TriState = "no"
	TriUnknown TriState = "unknown"
)

// Known reports whether the signal was supplied at all.
func (t TriState) Known() bool { return t != TriUnknown }

// Visibility is the account's profile visibility.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
	VisibilityUnknown Visibility = "unknown"
)

func (v Visibility) Known() bool { return v != VisibilityUnknown }

// ProfilePic describes the caller's judgement of the profile picture.
type ProfilePic string

const (
	ProfilePicYes        ProfilePic = "yes"
	ProfilePicNo         ProfilePic = "no"
	ProfilePicSuspicious ProfilePic = "suspicious"
	ProfilePicUnknown    ProfilePic = "unknown"
)

func (p ProfilePic) Known() bool { return p != ProfilePicUnknown }

// BioLinks describes external links found in the account bio.
type BioLinks string

const (
	BioLinksNone       BioLinks = "none"
	BioLinksYes        BioLinks = "yes"
	BioLinksSuspicious BioLinks = "suspicious"
	BioLinksMultiple   BioLinks = "multiple"
	BioLinksUnknown    BioLinks = "unknown"
)

func (b BioLinks) Known() bool { return b != BioLinksUnknown }

// DMActivity describes the account's direct-message behavior as reported by
// the caller.
type DMActivity string

const (
	DMNormal      DMActivity = "normal"
	DMUnsolicited DMActivity = "unsolicited"
	DMSuspicious  DMActivity = "suspicious"
	DMUnknown     DMActivity = "unknown"
)

func (d DMActivity) Known() bool { return d != DMUnknown }

// Count is an optional non-negative integer signal. Known distinguishes "the
// caller told us zero" from "the caller did not say".
type Count struct {
	Known bool
	Value int
}

// KnownCount builds a known Count.
func KnownCount(v int) Count { return Count{Known: true, Value: v} }

// Bio is the optional bio text. A known empty bio is itself a signal.
type Bio struct {
	Known bool
	Text  string
}

// AccountSignals is the canonical, normalized signal set for one account.
// Immutable once produced by Normalize.
type AccountSignals struct {
	Username       string
	Followers      Count
	Following      Count
	Posts          Count
	AccountAgeDays Count
	Verified       TriState
	Visibility     Visibility
	ProfilePic     ProfilePic
	BioLinks       BioLinks
	DMActivity     DMActivity
	Bio            Bio
}
