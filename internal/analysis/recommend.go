package analysis

import (
	"riskscope/internal/rules"
	pstrings "riskscope/pkg/platform/strings"
)

// recommendationByCategory maps each rule category to the action a user
// should take when that rule fires. Negative contributions map to reassurance
// rather than warnings.
var recommendationByCategory = map[rules.Category]string{
	rules.CategoryAccountAge:  "Be cautious with recently created accounts; scammers rotate through fresh profiles.",
	rules.CategoryFollowRatio: "Check whether the account's audience looks organic before trusting it.",
	rules.CategoryVerified:    "Platform verification is a strong trust signal, but confirm it on the profile itself.",
	rules.CategoryVisibility:  "A private profile hides most signals; ask for more context before engaging.",
	rules.CategoryProfilePic:  "Reverse-image search the profile picture to check whether it was taken from elsewhere.",
	rules.CategoryBioLinks:    "Do not follow links in the bio until you have confirmed where they lead.",
	rules.CategoryBioText:     "Treat financial promises or urgency in a bio as a strong scam indicator.",
	rules.CategoryDMActivity:  "Never share personal or financial information over direct messages.",
	rules.CategoryPostBurst:   "A sudden flood of posts on a new account often indicates automation.",
}

const baselineRecommendation = "Verify this account through other channels before engaging."

// recommendations maps the ordered reasons to user-facing actions. Order
// follows the reasons, duplicates collapse to their first occurrence, and the
// baseline advice always closes the list.
func recommendations(reasons []Reason) []string {
	out := make([]string, 0, len(reasons)+1)
	for _, r := range reasons {
		if rec, ok := recommendationByCategory[rules.Category(r.Category)]; ok {
			out = append(out, rec)
		}
	}
	return append(pstrings.DedupeAndTrim(out), baselineRecommendation)
}
