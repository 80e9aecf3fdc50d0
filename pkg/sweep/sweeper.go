package sweep

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/project-tagsweep/tagsweep/pkg/log"
	"github.com/project-tagsweep/tagsweep/pkg/registry"
	"github.com/project-tagsweep/tagsweep/pkg/retention"
)

// Sweeper coordinates one retention run: it filters the catalog,
// fans out one worker goroutine per admitted repository, drains all
// of them and renders the summary. Workers share only the registry
// client and the read-only config.
type Sweeper struct {
	client registry.Client
	config Config
	writer io.Writer
	log    log.Logger
}

// outcome is what a worker goroutine hands back to the orchestrator.
// A failed repository carries an error and no report.
type outcome struct {
	repo   string
	report repoReport
	err    error
}

func New(client registry.Client, config Config, writer io.Writer, logger log.Logger) *Sweeper {
	return &Sweeper{
		client: client,
		config: config,
		writer: writer,
		log:    logger,
	}
}

// Run executes the sweep. Rule compilation and the catalog fetch are
// fatal when they fail; everything scoped to a single repository is
// collected and reported at the end without stopping its siblings.
func (s *Sweeper) Run(ctx context.Context) error {
	tagRules, err := retention.CompileRules(s.config.TagPatterns)
	if err != nil {
		return fmt.Errorf("tag patterns: %w", err)
	}

	repoRules, err := retention.CompileRules(s.config.RepoPatterns)
	if err != nil {
		return fmt.Errorf("repository patterns: %w", err)
	}

	repos, err := s.client.ListRepositories(ctx)
	if err != nil {
		return fmt.Errorf("fetching repository catalog: %w", err)
	}

	outcomes := make(chan outcome)

	var wtgrp sync.WaitGroup

	for _, repo := range repos {
		if !retention.MatchesAny(repo, repoRules) {
			s.log.Info().Str("repository", repo).
				Msg("skipping repository, it doesn't match any repository pattern")

			continue
		}

		wtgrp.Add(1)

		go func(repo string) {
			defer wtgrp.Done()

			report, err := s.sweepRepository(ctx, repo, tagRules)
			outcomes <- outcome{repo: repo, report: report, err: err}
		}(repo)
	}

	go func() {
		wtgrp.Wait()
		close(outcomes)
	}()

	totalMarked := 0

	var failures []string

	for result := range outcomes {
		if result.err != nil {
			s.log.Error().Err(result.err).Str("repository", result.repo).
				Msg("repository sweep failed")

			failures = append(failures, fmt.Sprintf("[%s] %v", result.repo, result.err))

			continue
		}

		fmt.Fprintln(s.writer, strings.Join(result.report.lines, "\n"))

		totalMarked += result.report.count
	}

	if len(failures) > 0 {
		fmt.Fprintf(s.writer, "The following errors occurred during processing:\n\t%s\n\n",
			strings.Join(failures, "\n\t"))
	}

	if s.config.Delete {
		fmt.Fprintf(s.writer, "\n\tDeleted a total of %d tag(s)\n", totalMarked)
		fmt.Fprintf(s.writer,
			"\n\tRemember to run garbage collection on your registry to ensure that files get removed on disk.\n")
	} else {
		fmt.Fprintf(s.writer, "\n\tFound a total of %d tag(s) to delete\n", totalMarked)
		fmt.Fprintf(s.writer,
			"\n\tDelete flag (-d/--delete) not specified, none of the above have actually been deleted.\n")
	}

	return nil
}
