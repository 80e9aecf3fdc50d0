package retention_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/project-tagsweep/tagsweep/pkg/retention"
)

func TestSplitTagsLexicographic(t *testing.T) {
	Convey("SplitTags in lexicographic mode", t, func() {
		Convey("keeps the highest maxKeep tags in descending order", func() {
			keep, remove := retention.SplitTags([]string{"c", "a", "b"}, 2, false)

			So(keep, ShouldResemble, []string{"c", "b"})
			So(remove, ShouldResemble, []string{"a"})
		})

		Convey("never drops a tag", func() {
			tags := []string{"beta", "alpha", "latest", "1.0"}

			keep, remove := retention.SplitTags(tags, 1, false)

			So(len(keep)+len(remove), ShouldEqual, len(tags))
		})

		Convey("keeps everything when maxKeep covers the whole bucket", func() {
			keep, remove := retention.SplitTags([]string{"a", "b"}, 5, false)

			So(keep, ShouldResemble, []string{"b", "a"})
			So(remove, ShouldBeEmpty)
		})

		Convey("an empty bucket splits into two empty halves", func() {
			keep, remove := retention.SplitTags(nil, 3, false)

			So(keep, ShouldBeEmpty)
			So(remove, ShouldBeEmpty)
		})
	})
}

func TestSplitTagsSemver(t *testing.T) {
	Convey("SplitTags in semver mode", t, func() {
		Convey("orders by version, not by string", func() {
			keep, remove := retention.SplitTags(
				[]string{"v1.2.0", "v1.1.0", "v2.0.0", "latest"}, 1, true)

			So(keep, ShouldResemble, []string{"v2.0.0"})
			So(remove, ShouldResemble, []string{"v1.2.0", "v1.1.0"})
		})

		Convey("tags that fail to parse are excluded from both halves", func() {
			keep, remove := retention.SplitTags(
				[]string{"latest", "stable", "v0.1.0"}, 1, true)

			So(keep, ShouldResemble, []string{"v0.1.0"})
			So(remove, ShouldBeEmpty)
		})

		Convey("only one leading v is stripped", func() {
			keep, remove := retention.SplitTags([]string{"vv1.0.0"}, 1, true)

			So(keep, ShouldBeEmpty)
			So(remove, ShouldBeEmpty)
		})

		Convey("partial versions do not parse", func() {
			keep, remove := retention.SplitTags([]string{"1.2", "v1"}, 1, true)

			So(keep, ShouldBeEmpty)
			So(remove, ShouldBeEmpty)
		})

		Convey("a release outranks its own pre-releases", func() {
			keep, remove := retention.SplitTags(
				[]string{"1.0.0-rc.1", "1.0.0", "1.0.0-alpha"}, 1, true)

			So(keep, ShouldResemble, []string{"1.0.0"})
			So(remove, ShouldResemble, []string{"1.0.0-rc.1", "1.0.0-alpha"})
		})

		Convey("numeric ordering beats string ordering", func() {
			keep, remove := retention.SplitTags(
				[]string{"v9.0.0", "v10.0.0"}, 1, true)

			So(keep, ShouldResemble, []string{"v10.0.0"})
			So(remove, ShouldResemble, []string{"v9.0.0"})
		})

		Convey("maxKeep larger than the parseable subset does not panic", func() {
			keep, remove := retention.SplitTags(
				[]string{"v1.0.0", "latest", "edge"}, 3, true)

			So(keep, ShouldResemble, []string{"v1.0.0"})
			So(remove, ShouldBeEmpty)
		})
	})
}

func TestSplitTagsPartition(t *testing.T) {
	Convey("keep and remove always partition the sorted input exactly", t, func() {
		tags := []string{"v3.0.0", "v1.0.0", "v2.0.0", "v0.1.0", "garbage"}

		for maxKeep := 1; maxKeep <= len(tags)+1; maxKeep++ {
			keep, remove := retention.SplitTags(tags, maxKeep, true)

			So(len(keep), ShouldEqual, min(maxKeep, 4))
			So(len(keep)+len(remove), ShouldEqual, 4)

			for _, tag := range remove {
				So(keep, ShouldNotContain, tag)
			}
		}
	})
}
