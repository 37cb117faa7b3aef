// Package cli wires the ccpack commands.
package cli

import (
	"github.com/glorpus-work/ccpack/internal/logger"
	"github.com/spf13/cobra"
)

// Options holds the values of the global flags.
type Options struct {
	ProjectDir string
	OutputDir  string
	ConfigPath string
	LayoutPath string
	Formats    []string
	ModTime    int64
	NoVerify   bool
	Verbose    bool
	LogFormat  string
}

// NewRootCmd creates the ccpack command. Running it without a subcommand
// builds the distribution archives.
func NewRootCmd() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "ccpack",
		Short: "Build the mod loader distribution archives",
		Long: `ccpack packs a built mod loader project into its distribution archives:
- a package archive holding the loader files at the archive root
- a quick-install archive that unpacks over a game installation
Both are written as tar.gz and zip.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			initLogging(opts)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ProjectDir, "project-dir", "C", ".", "project directory to pack")
	flags.StringVarP(&opts.OutputDir, "output-dir", "o", ".", "directory the archives are written to")
	flags.StringVar(&opts.ConfigPath, "config", "", "tool config file (default: <project-dir>/tool.config.json)")
	flags.StringVar(&opts.LayoutPath, "layout", "", "layout file (default: built-in layout)")
	flags.StringSliceVarP(&opts.Formats, "format", "f", []string{"tar.gz", "zip"}, "archive formats to write")
	flags.Int64Var(&opts.ModTime, "mtime", 0, "entry timestamp in unix seconds (default: $SOURCE_DATE_EPOCH or now)")
	flags.BoolVar(&opts.NoVerify, "no-verify", false, "skip reading back the written archives")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.LogFormat, "log-format", string(logger.FormatText), "log format (text, json)")

	cmd.AddCommand(
		NewVersionCmd(),
		newLayoutCmd(opts),
		newVerifyCmd(opts),
	)

	return cmd
}

func initLogging(opts *Options) {
	level := "info"
	if opts.Verbose {
		level = "debug"
	}
	logger.InitLogger(level, logger.ParseFormat(opts.LogFormat))
}
