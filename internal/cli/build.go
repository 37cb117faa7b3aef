package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/glorpus-work/ccpack/internal/logger"
	"github.com/glorpus-work/ccpack/pkg/dist"
	"github.com/spf13/cobra"
)

func runBuild(cmd *cobra.Command, opts *Options) error {
	formats, err := parseFormats(opts.Formats)
	if err != nil {
		return err
	}

	stamp, err := resolveModTime(cmd.Flags().Changed("mtime"), opts.ModTime, os.Getenv)
	if err != nil {
		return err
	}
	if stamp.IsZero() {
		stamp = time.Now()
	}

	cfg, l, err := loadRelease(opts)
	if err != nil {
		return err
	}

	logger.Info("packing release", logger.Fields{
		"name":    cfg.Name,
		"version": cfg.Version,
		"project": opts.ProjectDir,
	})

	packer := dist.NewPacker(cfg, l, opts.ProjectDir, opts.OutputDir)
	packer.Formats = formats
	packer.Now = func() time.Time { return stamp }
	packer.Verify = !opts.NoVerify

	artifacts, err := packer.Pack(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to pack %s %s: %w", cfg.Name, cfg.Version, err)
	}

	for _, artifact := range artifacts {
		fmt.Fprintln(cmd.OutOrStdout(), artifact.Path)
	}
	return nil
}
