package cli

const (
	URLFlag       = "url"
	UserFlag      = "user"
	PasswordFlag  = "password"
	MaxPerTagFlag = "max-per-tag"
	TagFlag       = "tag"
	RepoFlag      = "repo"
	SemverFlag    = "semver"
	DeleteFlag    = "delete"
	LogLevelFlag  = "log-level"
)

// environment prefix for credential passing, ex: TAGSWEEP_PASSWORD.
const envPrefix = "TAGSWEEP"
