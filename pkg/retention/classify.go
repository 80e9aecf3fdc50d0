package retention

// GroupTags partitions tags into buckets keyed by the raw pattern of
// the rule that matched them. With no rules everything lands in a
// single wildcard bucket in input order. A tag matching several rules
// is appended to every matching bucket and is evaluated independently
// under each of them; a tag matching none is dropped and never becomes
// a deletion candidate.
func GroupTags(tags []string, rules []Rule) map[string][]string {
	buckets := make(map[string][]string)

	if len(rules) == 0 {
		buckets[WildcardBucket] = append([]string{}, tags...)

		return buckets
	}

	for _, tag := range tags {
		for _, rule := range rules {
			if rule.Matches(tag) {
				buckets[rule.Pattern] = append(buckets[rule.Pattern], tag)
			}
		}
	}

	return buckets
}
