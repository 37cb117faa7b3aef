package cli

import (
	"fmt"

	"github.com/glorpus-work/ccpack/internal/logger"
	"github.com/glorpus-work/ccpack/pkg/dist"
	"github.com/spf13/cobra"
)

func newVerifyCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify ARCHIVE...",
		Short: "Verify distribution archives",
		Long: `Verify written archives against the tool config and layout.
Package archives must carry the configured tool config, quick-install archives
a launcher manifest pointing at the loader directory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := loadRelease(opts)
			if err != nil {
				return err
			}

			verifier := dist.NewVerifier(cfg, l)
			for _, path := range args {
				kind, err := verifier.Verify(cmd.Context(), path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				logger.Success("archive verified", logger.Fields{"path": path, "kind": string(kind)})
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s)\n", path, kind)
			}
			return nil
		},
	}
}
