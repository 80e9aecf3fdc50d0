package sweep

// Config is the read-only sweep configuration. It is shared across all
// repository workers and never mutated after startup.
type Config struct {
	// MaxPerTag is how many tags to keep per bucket, must be positive.
	MaxPerTag int
	// TagPatterns classify tags into retention buckets, one bucket per
	// pattern. Empty means a single catch-all bucket.
	TagPatterns []string
	// RepoPatterns select which repositories are swept. Empty means all.
	RepoPatterns []string
	// SortBySemver switches bucket ordering from lexicographic to
	// semantic-version descending.
	SortBySemver bool
	// Delete enables actual manifest deletion. Off means dry-run.
	Delete bool
}
