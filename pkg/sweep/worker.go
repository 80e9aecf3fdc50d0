package sweep

import (
	"context"
	"errors"
	"fmt"

	zerr "github.com/project-tagsweep/tagsweep/errors"
	"github.com/project-tagsweep/tagsweep/pkg/common"
	"github.com/project-tagsweep/tagsweep/pkg/retention"
)

// repoReport is one repository's buffered decision log plus the number
// of tags marked for deletion. Lines are accumulated here and printed
// by the orchestrator in one block, so concurrent repositories never
// interleave their output.
type repoReport struct {
	repo  string
	lines []string
	count int
}

func (r *repoReport) logf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf("[%s] ", r.repo)+fmt.Sprintf(format, args...))
}

// sweepRepository runs the fetch, classify, rank, resolve, delete
// pipeline for a single repository. Digest resolution and deletion are
// sequential within the repository, concurrency exists only across
// repositories. Any transport failure aborts the whole repository;
// deletions already issued stand.
func (s *Sweeper) sweepRepository(ctx context.Context, repo string, tagRules []retention.Rule,
) (repoReport, error) {
	tags, err := s.client.ListTags(ctx, repo)
	if err != nil {
		return repoReport{}, fmt.Errorf("fetching tag list: %w", err)
	}

	buckets := retention.GroupTags(tags, tagRules)

	report := repoReport{repo: repo}

	if len(buckets) == 0 {
		report.logf("No tags eligible for deletion found.")

		return report, nil
	}

	for pattern, bucket := range buckets {
		_, remove := retention.SplitTags(bucket, s.config.MaxPerTag, s.config.SortBySemver)
		if len(remove) == 0 {
			continue
		}

		report.logf("Found %d tags eligible for deletion for pattern /%s/", len(remove), pattern)

		for _, tag := range remove {
			if common.IsContextDone(ctx) {
				return repoReport{}, ctx.Err()
			}

			digest, err := s.client.ResolveDigest(ctx, repo, tag)
			if err != nil {
				if errors.Is(err, zerr.ErrManifestNotFound) || errors.Is(err, zerr.ErrDigestHeaderMissing) {
					report.logf("WARNING: Couldn't find tag digest for %s", tag)

					continue
				}

				return repoReport{}, fmt.Errorf("resolving digest for tag %s: %w", tag, err)
			}

			report.logf("tag to be deleted %s", tag)
			report.count++

			if s.config.Delete {
				if err := s.client.DeleteManifest(ctx, repo, digest); err != nil {
					return repoReport{}, fmt.Errorf("deleting manifest %s for tag %s: %w", digest, tag, err)
				}

				report.logf("Deleted %s", tag)
			}
		}
	}

	if report.count == 0 {
		report.logf("No tags eligible for deletion found.")
	}

	return report, nil
}
