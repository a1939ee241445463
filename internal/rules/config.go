package rules

// Config is the tunable weight table for the rule set. The deltas and
// thresholds here are design parameters, kept apart from the evaluation logic
// so they can be recalibrated without touching control flow.
//
// Calibration invariants the defaults satisfy:
//   - VerifiedDelta outweighs the sum of all maximum positive deltas minus 64,
//     so a verified account can never reach High Risk.
//   - Risk-indicating values only ever add non-negative deltas, keeping the
//     score monotone in suspicious signals.
type Config struct {
	// Account age thresholds (days) and deltas.
	AgeYoungDays       int
	AgeEstablishedDays int
	AgeYoungDelta      int
	AgeEstablishedDelta int

	// Follower/following ratio.
	RatioMultiplier    int
	RatioMinFollowing  int
	RatioDelta         int

	// Verification.
	VerifiedDelta int

	// Visibility.
	PrivateDelta int

	// Profile picture.
	PicSuspiciousDelta int
	PicMissingDelta    int

	// Bio links.
	LinksSuspiciousDelta int
	LinksMultipleDelta   int
	LinksSingleDelta     int

	// Bio text heuristics.
	BioMarkerDelta    int
	BioMarkerCap      int
	BioEmptyDelta     int
	BioEmptyFollowers int
	BioEmptyPosts     int

	// DM activity.
	DMSuspiciousDelta  int
	DMUnsolicitedDelta int

	// Post burst.
	BurstMaxAgeDays int
	BurstMinPosts   int
	BurstDelta      int

	// Informativeness weights per rule, used for confidence coverage.
	WeightAccountAge  int
	WeightFollowRatio int
	WeightVerified    int
	WeightVisibility  int
	WeightProfilePic  int
	WeightBioLinks    int
	WeightBioText     int
	WeightDMActivity  int
	WeightPostBurst   int
}

// DefaultConfig returns the calibrated production weight table.
func DefaultConfig() Config {
	return Config{
		AgeYoungDays:        30,
		AgeEstablishedDays:  730,
		AgeYoungDelta:       20,
		AgeEstablishedDelta: -10,

		RatioMultiplier:   5,
		RatioMinFollowing: 50,
		RatioDelta:        15,

		VerifiedDelta: -70,

		PrivateDelta: 5,

		PicSuspiciousDelta: 20,
		PicMissingDelta:    12,

		LinksSuspiciousDelta: 15,
		LinksMultipleDelta:   12,
		LinksSingleDelta:     5,

		BioMarkerDelta:    6,
		BioMarkerCap:      18,
		BioEmptyDelta:     4,
		BioEmptyFollowers: 100,
		BioEmptyPosts:     10,

		DMSuspiciousDelta:  20,
		DMUnsolicitedDelta: 10,

		BurstMaxAgeDays: 30,
		BurstMinPosts:   100,
		BurstDelta:      15,

		WeightAccountAge:  15,
		WeightFollowRatio: 15,
		WeightVerified:    20,
		WeightVisibility:  5,
		WeightProfilePic:  10,
		WeightBioLinks:    8,
		WeightBioText:     7,
		WeightDMActivity:  15,
		WeightPostBurst:   5,
	}
}
