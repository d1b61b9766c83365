package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sillyhouse/ifs/internal/archive"
	"github.com/sillyhouse/ifs/internal/compress"
)

var (
	archiveCompress bool
	archivePath     string
)

var archiveCmd = &cobra.Command{
	Use:   "archive <dest>",
	Short: "Stream the mounted tree out as a new FWFS image",
	Long: `Walk the mounted filesystem, starting at --path, and write it back
out as a brand new FWFS image (spec.md ArchiveStream writer). On any
error the destination is truncated to zero length rather than left
holding a partial image.

Example:
  ifs --image disk.fwfs archive out.fwfs --compress`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, err := openFS()
		if err != nil {
			return err
		}

		dst, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer dst.Close()

		opts := archive.Options{}
		if archiveCompress {
			opts.Encoder = compress.NewEncoder(0)
		}

		if err := archive.Write(dst, fs, archivePath, opts); err != nil {
			return fmt.Errorf("archive: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.Flags().StringVar(&archivePath, "path", "/", "subtree to archive")
	archiveCmd.Flags().BoolVar(&archiveCompress, "compress", false, "zstd-compress every file's content")
}
