package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sillyhouse/ifs/internal/ifstype"
)

var extentsCmd = &cobra.Command{
	Use:   "extents <path>",
	Short: "Show a file's on-media layout",
	Long: `Print the extent list describing where a file's content lives on
the underlying partition, folding repeated constant-stride runs into a
single {offset,length,skip,repeat} entry (spec.md extent-merge rules).

Example:
  ifs --image disk.fwfs extents /data.bin`,
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

		extents, err := fs.FGetExtents(h)
		if err != nil {
			return err
		}
		if len(extents) == 0 {
			fmt.Println("(empty file)")
			return nil
		}
		for _, e := range extents {
			fmt.Printf("offset=%d length=%d skip=%d repeat=%d decoded=%d\n",
				e.Offset, e.Length, e.Skip, e.Repeat, e.DecodedSize())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extentsCmd)
}
