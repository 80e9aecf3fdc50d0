package retention

import (
	"fmt"
	"regexp"

	zerr "github.com/project-tagsweep/tagsweep/errors"
)

// WildcardBucket is the catch-all bucket name used when no tag rules
// are configured.
const WildcardBucket = ".*"

// Rule pairs a raw regex pattern with its compiled matcher. The raw
// pattern doubles as the name of the bucket the rule feeds.
type Rule struct {
	Pattern string

	regex *regexp.Regexp
}

func (r Rule) Matches(name string) bool {
	return r.regex.MatchString(name)
}

// CompileRules compiles every pattern up front so that a bad rule is
// rejected before any registry call is made. The first invalid pattern
// fails the whole set.
func CompileRules(patterns []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(patterns))

	for _, pattern := range patterns {
		regex, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", zerr.ErrInvalidPattern, pattern, err)
		}

		rules = append(rules, Rule{Pattern: pattern, regex: regex})
	}

	return rules, nil
}

// MatchesAny reports whether any rule accepts name. An empty rule set
// accepts everything.
func MatchesAny(name string, rules []Rule) bool {
	if len(rules) == 0 {
		return true
	}

	for _, rule := range rules {
		if rule.Matches(name) {
			return true
		}
	}

	return false
}
