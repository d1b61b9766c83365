package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sillyhouse/ifs/internal/ifstype"
)

var xattrCmd = &cobra.Command{
	Use:   "xattr <path> [tag]",
	Short: "Read a file's extended attributes",
	Long: `With one argument, enumerate every attribute on path. With a
second numeric argument, print only that AttributeTag's raw value.

Examples:
  ifs --image disk.fwfs xattr /README.txt
  ifs --image disk.fwfs xattr /README.txt 7   # Md5Hash`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, err := openFS()
		if err != nil {
			return err
		}

		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("tag must be numeric: %w", err)
			}
			value, err := fs.GetXAttr(args[0], ifstype.AttributeTag(n))
			if err != nil {
				return err
			}
			fmt.Printf("%x\n", value)
			return nil
		}

		h, err := fs.Open(args[0], ifstype.Read)
		if err != nil {
			return err
		}
		defer fs.Close(h)

		attrs, err := fs.FEnumXAttr(h)
		if err != nil {
			return err
		}
		for _, a := range attrs {
			fmt.Printf("%-16s %x\n", a.Tag, a.Value)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(xattrCmd)
}
