// Package rule implements the ordered, first-match-wins tileability
// filter: given a window's class and title, should the controller manage
// it at all.
package rule

import "strings"

// Rule is one entry of a rules.toml/user-rules.toml array.
type Rule struct {
	MatchClass *string `toml:"match_class,omitempty"`
	MatchTitle *string `toml:"match_title,omitempty"`
	Manage     bool    `toml:"manage"`
}

// Matches reports whether r applies to a window with the given class and
// title. A class match is case-insensitive equality; a title match is
// case-insensitive substring. A rule with both fields unset matches
// everything.
func (r Rule) Matches(class, title string) bool {
	if r.MatchClass == nil && r.MatchTitle == nil {
		return true
	}
	if r.MatchClass != nil && !strings.EqualFold(*r.MatchClass, class) {
		return false
	}
	if r.MatchTitle != nil && !strings.Contains(strings.ToLower(title), strings.ToLower(*r.MatchTitle)) {
		return false
	}
	return true
}

// ShouldManage evaluates rules in order and returns the Manage value of
// the first match, defaulting to true when none match.
func ShouldManage(class, title string, rules []Rule) bool {
	for _, r := range rules {
		if r.Matches(class, title) {
			return r.Manage
		}
	}
	return true
}

// Merge combines user rules ahead of community rules, so user rules are
// always evaluated first (first-match-wins gives them priority).
func Merge(userRules, communityRules []Rule) []Rule {
	out := make([]Rule, 0, len(userRules)+len(communityRules))
	out = append(out, userRules...)
	out = append(out, communityRules...)
	return out
}
