package signal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected string
		wantTag  Reason
	}{
		{name: "plain username", raw: "scam_hunter", expected: "scam_hunter"},
		{name: "strips leading at", raw: "@scam_hunter", expected: "scam_hunter"},
		{name: "trims whitespace", raw: "  @new_account_99  ", expected: "new_account_99"},
		{name: "empty string fails", raw: "", wantTag: ReasonMissingRequired},
		{name: "whitespace only fails", raw: "  @  ", wantTag: ReasonMissingRequired},
		{name: "missing fails", raw: nil, wantTag: ReasonMissingRequired},
		{name: "numeric value fails", raw: float64(42), wantTag: ReasonMissingRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{}
			if tt.raw != nil {
				raw["username"] = tt.raw
			}
			signals, err := Normalize(raw)
			if tt.wantTag != "" {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "username", vErr.Field())
				assert.Equal(t, string(tt.wantTag), vErr.Reason())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, signals.Username)
		})
	}
}

func TestNormalizeCounts(t *testing.T) {
	t.Run("absent count is unknown, not zero", func(t *testing.T) {
		signals, err := Normalize(map[string]any{"username": "u"})
		require.NoError(t, err)
		assert.False(t, signals.Followers.Known)
		assert.False(t, signals.AccountAgeDays.Known)
	})

	t.Run("zero is a known value", func(t *testing.T) {
		signals, err := Normalize(map[string]any{"username": "u", "followers": float64(0)})
		require.NoError(t, err)
		assert.True(t, signals.Followers.Known)
		assert.Equal(t, 0, signals.Followers.Value)
	})

	t.Run("numeric string parses", func(t *testing.T) {
		signals, err := Normalize(map[string]any{"username": "u", "posts": "120"})
		require.NoError(t, err)
		assert.Equal(t, KnownCount(120), signals.Posts)
	})

	t.Run("non-numeric string fails with field name", func(t *testing.T) {
		_, err := Normalize(map[string]any{"username": "u", "followers": "abc"})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "followers", vErr.Field())
		assert.Equal(t, string(ReasonUnparseableNumber), vErr.Reason())
	})

	t.Run("negative fails rather than clamping", func(t *testing.T) {
		_, err := Normalize(map[string]any{"username": "u", "following": float64(-3)})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "following", vErr.Field())
		assert.Equal(t, string(ReasonOutOfRange), vErr.Reason())
	})

	t.Run("fractional fails", func(t *testing.T) {
		_, err := Normalize(map[string]any{"username": "u", "account_age_days": 3.5})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "account_age_days", vErr.Field())
		assert.Equal(t, string(ReasonUnparseableNumber), vErr.Reason())
	})
}

func TestNormalizeEnums(t *testing.T) {
	t.Run("absent enum maps to unknown, not negative member", func(t *testing.T) {
		signals, err := Normalize(map[string]any{"username": "u"})
		require.NoError(t, err)
		assert.Equal(t, TriUnknown, signals.Verified)
		assert.Equal(t, VisibilityUnknown, signals.Visibility)
		assert.Equal(t, ProfilePicUnknown, signals.ProfilePic)
		assert.Equal(t, BioLinksUnknown, signals.BioLinks)
		assert.Equal(t, DMUnknown, signals.DMActivity)
	})

	t.Run("out of domain value fails", func(t *testing.T) {
		_, err := Normalize(map[string]any{"username": "u", "visibility": "hidden"})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "visibility", vErr.Field())
		assert.Equal(t, string(ReasonInvalidEnumValue), vErr.Reason())
	})

	t.Run("case insensitive", func(t *testing.T) {
		signals, err := Normalize(map[string]any{
			"username":    "u",
			"visibility":  "Private",
			"dm_activity": "SUSPICIOUS",
		})
		require.NoError(t, err)
		assert.Equal(t, VisibilityPrivate, signals.Visibility)
		assert.Equal(t, DMSuspicious, signals.DMActivity)
	})

	t.Run("verified accepts bool", func(t *testing.T) {
		signals, err := Normalize(map[string]any{"username": "u", "verified": true})
		require.NoError(t, err)
		assert.Equal(t, TriYes, signals.Verified)

		signals, err = Normalize(map[string]any{"username": "u", "verified": false})
		require.NoError(t, err)
		assert.Equal(t, TriNo, signals.Verified)
	})
}

func TestNormalizeBio(t *testing.T) {
	t.Run("absent bio is unknown", func(t *testing.T) {
		signals, err := Normalize(map[string]any{"username": "u"})
		require.NoError(t, err)
		assert.False(t, signals.Bio.Known)
	})

	t.Run("empty bio is known and empty", func(t *testing.T) {
		signals, err := Normalize(map[string]any{"username": "u", "bio_text": ""})
		require.NoError(t, err)
		assert.True(t, signals.Bio.Known)
		assert.Equal(t, "", signals.Bio.Text)
	})
}

func TestValidationErrorIsError(t *testing.T) {
	_, err := Normalize(map[string]any{"username": ""})
	require.Error(t, err)
	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
}
