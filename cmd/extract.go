package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sillyhouse/ifs/internal/ifstype"
)

var catOut string

var catCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Print a file's content",
	Long: `Stream a file's content to stdout, or to --out if given.

Examples:
  ifs --image disk.fwfs cat /README.txt
  ifs --image disk.fwfs cat /data.bin --out ./data.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, err := openFS()
		if err != nil {
			return err
		}
		h, err := fs.Open(args[0], ifstype.Read)
		if err != nil {
			return err
		}
		defer fs.Close(h)

		dst := io.Writer(os.Stdout)
		if catOut != "" {
			f, err := os.Create(catOut)
			if err != nil {
				return err
			}
			defer f.Close()
			dst = f
		}

		buf := make([]byte, 32*1024)
		for {
			n, err := fs.Read(h, buf)
			if n > 0 {
				if _, werr := dst.Write(buf[:n]); werr != nil {
					return werr
				}
			}
			if n == 0 {
				eof, eerr := fs.Eof(h)
				if eerr != nil {
					return eerr
				}
				if eof {
					return nil
				}
			}
			if err != nil {
				return err
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
	catCmd.Flags().StringVar(&catOut, "out", "", "write to this file instead of stdout")
}
