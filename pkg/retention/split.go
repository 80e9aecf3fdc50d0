package retention

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SplitTags orders a bucket's tags in descending order and splits them
// into the tags to keep and the tags eligible for removal. With
// bySemver set, tags are stripped of one optional leading "v" and
// parsed as strict semantic versions; tags that fail to parse are
// excluded from both halves and stay untouched on the registry. There
// is deliberately no lexicographic fallback for them.
func SplitTags(tags []string, maxKeep int, bySemver bool) ([]string, []string) {
	var sorted []string

	if bySemver {
		type taggedVersion struct {
			version *semver.Version
			tag     string
		}

		versions := make([]taggedVersion, 0, len(tags))

		for _, tag := range tags {
			version, err := semver.StrictNewVersion(strings.TrimPrefix(tag, "v"))
			if err != nil {
				continue
			}

			versions = append(versions, taggedVersion{version: version, tag: tag})
		}

		sort.SliceStable(versions, func(i, j int) bool {
			return versions[j].version.LessThan(versions[i].version)
		})

		sorted = make([]string, 0, len(versions))
		for _, entry := range versions {
			sorted = append(sorted, entry.tag)
		}
	} else {
		sorted = make([]string, len(tags))
		copy(sorted, tags)

		sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	}

	keep := min(maxKeep, len(sorted))

	return sorted[:keep], sorted[keep:]
}
