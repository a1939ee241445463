// Package rules holds the scoring rule set. Each rule is a pure function of
// the normalized signals: it either fires with a signed score contribution
// and a human-readable reason, or stays silent. Rules never see each other's
// output; the aggregator owns combination.
package rules

import (
	"fmt"
	"strings"

	"riskscope/internal/signal"
	pstrings "riskscope/pkg/platform/strings"
)

// Category tags the rule that produced a contribution. Categories key the
// recommendation lookup and identify reasons in audit events.
type Category string

const (
	CategoryAccountAge  Category = "account_age"
	CategoryFollowRatio Category = "follow_ratio"
	CategoryVerified    Category = "verified"
	CategoryVisibility  Category = "visibility"
	CategoryProfilePic  Category = "profile_pic"
	CategoryBioLinks    Category = "bio_links"
	CategoryBioText     Category = "bio_text"
	CategoryDMActivity  Category = "dm_activity"
	CategoryPostBurst   Category = "post_burst"
)

// Contribution is one rule's output for one evaluation.
type Contribution struct {
	Category   Category
	ScoreDelta int
	Reason     string
}

// Rule is a single evaluation unit. Known reports whether the rule's
// governing signals were supplied, independent of whether the rule fires;
// confidence is computed from it. Evaluate returns nil when the rule does not
// fire.
type Rule struct {
	Category Category
	Weight   int
	Known    func(s signal.AccountSignals) bool
	Evaluate func(s signal.AccountSignals) *Contribution
}

// scamMarkers are lexical patterns associated with scam bios: urgency
// language, crypto/investment solicitation, and giveaway bait. Matching is
// case-insensitive substring; each marker counts at most once.
var scamMarkers = []string{
	"act now",
	"limited time",
	"hurry",
	"dm me",
	"crypto",
	"bitcoin",
	"forex",
	"investment",
	"double your",
	"guaranteed profit",
	"giveaway",
	"free money",
	"winner",
	"claim your prize",
	"cash app",
	"telegram",
}

// NewRegistry builds the ordered rule set from a weight table. Declaration
// order here is the deterministic tie-break for reason ordering, so appending
// is safe but reordering changes observable output.
func NewRegistry(cfg Config) []Rule {
	markers := pstrings.DedupeAndTrimLower(scamMarkers)
	return []Rule{
		{
			Category: CategoryAccountAge,
			Weight:   cfg.WeightAccountAge,
			Known:    func(s signal.AccountSignals) bool { return s.AccountAgeDays.Known },
			Evaluate: func(s signal.AccountSignals) *Contribution {
				if !s.AccountAgeDays.Known {
					return nil
				}
				age := s.AccountAgeDays.Value
				if age < cfg.AgeYoungDays {
					return &Contribution{
						Category:   CategoryAccountAge,
						ScoreDelta: cfg.AgeYoungDelta,
						Reason:     fmt.Sprintf("Account is only %d days old", age),
					}
				}
				if age > cfg.AgeEstablishedDays {
					return &Contribution{
						Category:   CategoryAccountAge,
						ScoreDelta: cfg.AgeEstablishedDelta,
						Reason:     fmt.Sprintf("Account has a long history (%d days)", age),
					}
				}
				return nil
			},
		},
		{
			Category: CategoryFollowRatio,
			Weight:   cfg.WeightFollowRatio,
			Known:    func(s signal.AccountSignals) bool { return s.Followers.Known && s.Following.Known },
			Evaluate: func(s signal.AccountSignals) *Contribution {
				if !s.Followers.Known || !s.Following.Known {
					return nil
				}
				following, followers := s.Following.Value, s.Followers.Value
				if following >= cfg.RatioMinFollowing && following > cfg.RatioMultiplier*followers {
					return &Contribution{
						Category:   CategoryFollowRatio,
						ScoreDelta: cfg.RatioDelta,
						Reason:     fmt.Sprintf("Account follows far more accounts than follow it back (%d following vs %d followers)", following, followers),
					}
				}
				return nil
			},
		},
		{
			Category: CategoryVerified,
			Weight:   cfg.WeightVerified,
			Known:    func(s signal.AccountSignals) bool { return s.Verified.Known() },
			Evaluate: func(s signal.AccountSignals) *Contribution {
				if s.Verified != signal.TriYes {
					return nil
				}
				return &Contribution{
					Category:   CategoryVerified,
					ScoreDelta: cfg.VerifiedDelta,
					Reason:     "Account is verified by the platform",
				}
			},
		},
		{
			Category: CategoryVisibility,
			Weight:   cfg.WeightVisibility,
			Known:    func(s signal.AccountSignals) bool { return s.Visibility.Known() },
			Evaluate: func(s signal.AccountSignals) *Contribution {
				if s.Visibility != signal.VisibilityPrivate {
					return nil
				}
				return &Contribution{
					Category:   CategoryVisibility,
					ScoreDelta: cfg.PrivateDelta,
					Reason:     "Account profile is private",
				}
			},
		},
		{
			Category: CategoryProfilePic,
			Weight:   cfg.WeightProfilePic,
			Known:    func(s signal.AccountSignals) bool { return s.ProfilePic.Known() },
			Evaluate: func(s signal.AccountSignals) *Contribution {
				switch s.ProfilePic {
				case signal.ProfilePicSuspicious:
					return &Contribution{
						Category:   CategoryProfilePic,
						ScoreDelta: cfg.PicSuspiciousDelta,
						Reason:     "Profile picture appears stolen or generic",
					}
				case signal.ProfilePicNo:
					return &Contribution{
						Category:   CategoryProfilePic,
						ScoreDelta: cfg.PicMissingDelta,
						Reason:     "Account has no profile picture",
					}
				default:
					return nil
				}
			},
		},
		{
			Category: CategoryBioLinks,
			Weight:   cfg.WeightBioLinks,
			Known:    func(s signal.AccountSignals) bool { return s.BioLinks.Known() },
			Evaluate: func(s signal.AccountSignals) *Contribution {
				switch s.BioLinks {
				case signal.BioLinksSuspicious:
					return &Contribution{
						Category:   CategoryBioLinks,
						ScoreDelta: cfg.LinksSuspiciousDelta,
						Reason:     "Bio contains a suspicious external link",
					}
				case signal.BioLinksMultiple:
					return &Contribution{
						Category:   CategoryBioLinks,
						ScoreDelta: cfg.LinksMultipleDelta,
						Reason:     "Bio contains multiple external links",
					}
				case signal.BioLinksYes:
					return &Contribution{
						Category:   CategoryBioLinks,
						ScoreDelta: cfg.LinksSingleDelta,
						Reason:     "Bio contains an external link",
					}
				default:
					return nil
				}
			},
		},
		{
			Category: CategoryBioText,
			Weight:   cfg.WeightBioText,
			Known:    func(s signal.AccountSignals) bool { return s.Bio.Known },
			Evaluate: func(s signal.AccountSignals) *Contribution {
				if !s.Bio.Known {
					return nil
				}
				text := strings.ToLower(s.Bio.Text)
				if strings.TrimSpace(text) == "" {
					if lowSignalAccount(s, cfg) {
						return &Contribution{
							Category:   CategoryBioText,
							ScoreDelta: cfg.BioEmptyDelta,
							Reason:     "Bio is empty on an account with little other activity",
						}
					}
					return nil
				}
				count := 0
				for _, marker := range markers {
					if strings.Contains(text, marker) {
						count++
					}
				}
				if count == 0 {
					return nil
				}
				delta := count * cfg.BioMarkerDelta
				if delta > cfg.BioMarkerCap {
					delta = cfg.BioMarkerCap
				}
				noun := "phrases"
				if count == 1 {
					noun = "phrase"
				}
				return &Contribution{
					Category:   CategoryBioText,
					ScoreDelta: delta,
					Reason:     fmt.Sprintf("Bio contains %d scam-associated %s", count, noun),
				}
			},
		},
		{
			Category: CategoryDMActivity,
			Weight:   cfg.WeightDMActivity,
			Known:    func(s signal.AccountSignals) bool { return s.DMActivity.Known() },
			Evaluate: func(s signal.AccountSignals) *Contribution {
				switch s.DMActivity {
				case signal.DMSuspicious:
					return &Contribution{
						Category:   CategoryDMActivity,
						ScoreDelta: cfg.DMSuspiciousDelta,
						Reason:     "Reported direct messages match known scam patterns",
					}
				case signal.DMUnsolicited:
					return &Contribution{
						Category:   CategoryDMActivity,
						ScoreDelta: cfg.DMUnsolicitedDelta,
						Reason:     "Account sends unsolicited direct messages",
					}
				default:
					return nil
				}
			},
		},
		{
			Category: CategoryPostBurst,
			Weight:   cfg.WeightPostBurst,
			Known:    func(s signal.AccountSignals) bool { return s.Posts.Known && s.AccountAgeDays.Known },
			Evaluate: func(s signal.AccountSignals) *Contribution {
				if !s.Posts.Known || !s.AccountAgeDays.Known {
					return nil
				}
				if s.AccountAgeDays.Value <= cfg.BurstMaxAgeDays && s.Posts.Value > cfg.BurstMinPosts {
					return &Contribution{
						Category:   CategoryPostBurst,
						ScoreDelta: cfg.BurstDelta,
						Reason:     fmt.Sprintf("Unusually high posting volume (%d posts) for a %d-day-old account", s.Posts.Value, s.AccountAgeDays.Value),
					}
				}
				return nil
			},
		},
	}
}

// lowSignalAccount is the predicate behind the empty-bio rule: small or
// unreported audience and little posted content. Defined purely on signals
// so the rule stays independent of other rules' outcomes.
func lowSignalAccount(s signal.AccountSignals, cfg Config) bool {
	if s.Followers.Known && s.Followers.Value >= cfg.BioEmptyFollowers {
		return false
	}
	if s.Posts.Known && s.Posts.Value >= cfg.BioEmptyPosts {
		return false
	}
	return true
}

// TotalWeight sums every rule's informativeness weight; the confidence
// denominator.
func TotalWeight(registry []Rule) int {
	total := 0
	for _, r := range registry {
		total += r.Weight
	}
	return total
}
