package cli

import (
	"github.com/spf13/cobra"
)

func newLayoutCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the effective layout",
		Long:  "Print the packaging layout as YAML: the built-in one, or the file given with --layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := loadLayout(opts)
			if err != nil {
				return err
			}
			return l.Encode(cmd.OutOrStdout())
		},
	}
}
