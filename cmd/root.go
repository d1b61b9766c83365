// Package cmd implements the ifs command-line tool: cobra subcommands
// over the capability.FileSystem backends in internal/fwfs, internal/hyfs
// and internal/hostfs.
package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool

	imagePath string
	hostRoot  string
)

var rootCmd = &cobra.Command{
	Use:   "ifs",
	Short: "Installable File System explorer and archiver",
	Long: `ifs mounts an FWFS image (optionally overlaid with a writable
host directory) and lets you inspect, extract, and rebuild it.

Commands:
  mount-info  Show volume metadata
  ls          List a directory
  cat         Print a file's content
  xattr       Read a file's extended attributes
  extents     Show a file's on-media layout
  check       Verify content against recorded hashes
  archive     Stream the mounted tree out as a new FWFS image`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&imagePath, "image", "", "path to the FWFS image (required)")
	rootCmd.PersistentFlags().StringVar(&hostRoot, "host-root", "", "writable host directory overlaid on the image (enables HYFS)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (accepted; no subcommand reads it)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet output (accepted; no subcommand reads it)")
	rootCmd.MarkPersistentFlagRequired("image")
}

// isTerminal reports whether stdout is an interactive terminal. No
// subcommand calls it: output is the same whether or not stdout is a
// terminal.
func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
