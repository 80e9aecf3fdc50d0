package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	zerr "github.com/project-tagsweep/tagsweep/errors"
	"github.com/project-tagsweep/tagsweep/pkg/common"
	"github.com/project-tagsweep/tagsweep/pkg/log"
	"github.com/project-tagsweep/tagsweep/pkg/registry"
	"github.com/project-tagsweep/tagsweep/pkg/sweep"
)

// overridden at build time via -ldflags.
//
//nolint:gochecknoglobals
var releaseTag = "v0.0.0-dev"

// NewRootCmd builds the "tagsweep" command. The sweep itself is the
// root command's action, there are no subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tagsweep",
		Short: "`tagsweep` marks old image tags for deletion on a container registry",
		Long: "`tagsweep` lists a registry's catalog, groups every repository's tags by the " +
			"configured patterns, keeps the newest max-per-tag tags of each group and marks " +
			"the rest for deletion. Disk space is only reclaimed by the registry's own " +
			"garbage collection, which stays your job to run.",
		Version: releaseTag,
		RunE: func(cmd *cobra.Command, args []string) error {
			viperInstance := viper.New()
			viperInstance.SetEnvPrefix(envPrefix)
			viperInstance.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			viperInstance.AutomaticEnv()

			if err := viperInstance.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			maxPerTag := viperInstance.GetInt(MaxPerTagFlag)
			if maxPerTag < 1 {
				return fmt.Errorf("%w: %s must be a positive integer",
					zerr.ErrFlagValueUnsupported, MaxPerTagFlag)
			}

			logLevel := viperInstance.GetString(LogLevelFlag)
			if !common.Contains([]string{"trace", "debug", "info", "warn", "error"}, logLevel) {
				return fmt.Errorf("%w: %s must be one of trace/debug/info/warn/error",
					zerr.ErrFlagValueUnsupported, LogLevelFlag)
			}

			logger := log.NewLogger(logLevel, "")

			client, err := registry.New(registry.Options{
				BaseURL:  viperInstance.GetString(URLFlag),
				Username: viperInstance.GetString(UserFlag),
				Password: viperInstance.GetString(PasswordFlag),
			}, logger)
			if err != nil {
				return err
			}

			// read straight from pflag, viper would re-parse patterns
			// containing commas as CSV
			tagPatterns, err := cmd.Flags().GetStringArray(TagFlag)
			if err != nil {
				return err
			}

			repoPatterns, err := cmd.Flags().GetStringArray(RepoFlag)
			if err != nil {
				return err
			}

			config := sweep.Config{
				MaxPerTag:    maxPerTag,
				TagPatterns:  tagPatterns,
				RepoPatterns: repoPatterns,
				SortBySemver: viperInstance.GetBool(SemverFlag),
				Delete:       viperInstance.GetBool(DeleteFlag),
			}

			return sweep.New(client, config, cmd.OutOrStdout(), logger).Run(cmd.Context())
		},
	}

	rootCmd.SilenceUsage = true

	setupFlags(rootCmd)

	return rootCmd
}

func setupFlags(rootCmd *cobra.Command) {
	rootCmd.Flags().StringP(URLFlag, "r", "",
		"Base URL of the container registry (ex: https://registry.example.com)")
	rootCmd.Flags().StringP(UserFlag, "u", "",
		"Username for registry basic auth, can also be set via "+envPrefix+"_USER")
	rootCmd.Flags().String(PasswordFlag, "",
		"Password for registry basic auth, can also be set via "+envPrefix+"_PASSWORD")
	rootCmd.Flags().IntP(MaxPerTagFlag, "m", 0,
		"Number of tags to keep per tag pattern, applied separately to every pattern")
	rootCmd.Flags().StringArrayP(TagFlag, "t", nil,
		"Regex grouping tags for retention, repeatable; tags matching none are left alone")
	rootCmd.Flags().StringArrayP(RepoFlag, "i", nil,
		"Regex selecting repositories to sweep, repeatable; none means every repository")
	rootCmd.Flags().BoolP(SemverFlag, "s", false,
		"Order tags by semantic version instead of lexicographically")
	rootCmd.Flags().BoolP(DeleteFlag, "d", false,
		"Actually delete manifests, default is a dry run")
	rootCmd.Flags().String(LogLevelFlag, "info",
		"Log level [trace/debug/info/warn/error]")

	_ = rootCmd.MarkFlagRequired(URLFlag)
	_ = rootCmd.MarkFlagRequired(MaxPerTagFlag)
}
