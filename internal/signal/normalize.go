package signal

import (
	"math"
	"strconv"
	"strings"
)

// Normalize validates and coerces a raw field mapping, as decoded from a JSON
// request body, into AccountSignals. Absent optional fields map to their
// unknown marker; present-but-invalid values fail with a ValidationError
// naming the field, never a silent clamp or default. Unrecognized keys are
// ignored.
func Normalize(raw map[string]any) (AccountSignals, error) {
	username, err := normalizeUsername(raw["username"])
	if err != nil {
		return AccountSignals{}, err
	}

	signals := AccountSignals{
		Username:   username,
		Verified:   TriUnknown,
		Visibility: VisibilityUnknown,
		ProfilePic: ProfilePicUnknown,
		BioLinks:   BioLinksUnknown,
		DMActivity: DMUnknown,
	}

	counts := []struct {
		field string
		dst   *Count
	}{
		{"followers", &signals.Followers},
		{"following", &signals.Following},
		{"posts", &signals.Posts},
		{"account_age_days", &signals.AccountAgeDays},
	}
	for _, c := range counts {
		count, err := normalizeCount(c.field, raw[c.field])
		if err != nil {
			return AccountSignals{}, err
		}
		*c.dst = count
	}

	if signals.Verified, err = normalizeVerified(raw["verified"]); err != nil {
		return AccountSignals{}, err
	}

	visibility, err := normalizeEnum("visibility", raw["visibility"],
		string(VisibilityPublic), string(VisibilityPrivate))
	if err != nil {
		return AccountSignals{}, err
	}
	signals.Visibility = Visibility(visibility)

	profilePic, err := normalizeEnum("has_profile_pic", raw["has_profile_pic"],
		string(ProfilePicYes), string(ProfilePicNo), string(ProfilePicSuspicious))
	if err != nil {
		return AccountSignals{}, err
	}
	signals.ProfilePic = ProfilePic(profilePic)

	bioLinks, err := normalizeEnum("bio_links", raw["bio_links"],
		string(BioLinksNone), string(BioLinksYes), string(BioLinksSuspicious), string(BioLinksMultiple))
	if err != nil {
		return AccountSignals{}, err
	}
	signals.BioLinks = BioLinks(bioLinks)

	dmActivity, err := normalizeEnum("dm_activity", raw["dm_activity"],
		string(DMNormal), string(DMUnsolicited), string(DMSuspicious))
	if err != nil {
		return AccountSignals{}, err
	}
	signals.DMActivity = DMActivity(dmActivity)

	if signals.Bio, err = normalizeBio(raw["bio_text"]); err != nil {
		return AccountSignals{}, err
	}

	return signals, nil
}

// normalizeUsername trims whitespace and strips one leading @. Anything that
// leaves no characters behind fails as missing.
func normalizeUsername(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", missingRequired("username")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "@")
	s = strings.TrimSpace(s)
	if s == "" {
		return "", missingRequired("username")
	}
	return s, nil
}

// normalizeCount accepts a JSON number or a numeric string. Fractional values
// don't parse as counts; negatives are rejected rather than clamped.
func normalizeCount(field string, value any) (Count, error) {
	switch v := value.(type) {
	case nil:
		return Count{}, nil
	case float64:
		if v != math.Trunc(v) {
			return Count{}, unparseableNumber(field, v)
		}
		if v < 0 {
			return Count{}, outOfRange(field, "value must be non-negative")
		}
		return KnownCount(int(v)), nil
	case int:
		if v < 0 {
			return Count{}, outOfRange(field, "value must be non-negative")
		}
		return KnownCount(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return Count{}, nil
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return Count{}, unparseableNumber(field, v)
		}
		if n < 0 {
			return Count{}, outOfRange(field, "value must be non-negative")
		}
		return KnownCount(n), nil
	default:
		return Count{}, unparseableNumber(field, value)
	}
}

// normalizeVerified accepts a JSON bool or a yes/no/unknown string. Absence
// is unknown, never "no".
func normalizeVerified(value any) (TriState, error) {
	switch v := value.(type) {
	case nil:
		return TriUnknown, nil
	case bool:
		if v {
			return TriYes, nil
		}
		return TriNo, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "":
			return TriUnknown, nil
		case "yes", "true":
			return TriYes, nil
		case "no", "false":
			return TriNo, nil
		case string(TriUnknown):
			return TriUnknown, nil
		default:
			return TriUnknown, invalidEnum("verified", v)
		}
	default:
		return TriUnknown, invalidEnum("verified", value)
	}
}

// normalizeEnum maps absence and empty strings to "unknown" and rejects any
// value outside the declared domain.
func normalizeEnum(field string, value any, domain ...string) (string, error) {
	if value == nil {
		return "unknown", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", invalidEnum(field, value)
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "unknown" {
		return "unknown", nil
	}
	for _, allowed := range domain {
		if s == allowed {
			return s, nil
		}
	}
	return "", invalidEnum(field, value)
}

func normalizeBio(value any) (Bio, error) {
	switch v := value.(type) {
	case nil:
		return Bio{}, nil
	case string:
		return Bio{Known: true, Text: v}, nil
	default:
		return Bio{}, invalidEnum("bio_text", value)
	}
}
