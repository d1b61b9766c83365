package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
)

var lsRecursive bool

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List a directory in the mounted image",
	Long: `List the entries of a directory.

Examples:
  ifs --image disk.fwfs ls /
  ifs --image disk.fwfs ls /Documents --recursive`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/"
		if len(args) == 1 {
			path = args[0]
		}
		fs, err := openFS()
		if err != nil {
			return err
		}
		return lsPath(fs, path, 0)
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().BoolVarP(&lsRecursive, "recursive", "r", false, "list subdirectories recursively")
}

func lsPath(fs capability.FileSystem, path string, depth int) error {
	h, err := fs.OpenDir(path)
	if err != nil {
		return fmt.Errorf("opendir %s: %w", path, err)
	}
	defer fs.CloseDir(h)

	indent := ""
	for i := 0; i < depth; i++ {
		indent += "    "
	}

	for {
		entry, err := fs.ReadDir(h)
		if err == ifserrors.NoMoreFiles {
			break
		}
		if err != nil {
			return err
		}
		stat := entry.Stat
		marker := ""
		if stat.IsDirectory() {
			marker = "/"
		}
		fmt.Printf("%s%s%s\t%d\n", indent, stat.Name, marker, stat.Size)

		if lsRecursive && stat.IsDirectory() && !stat.IsMountPoint() {
			child := path
			if child == "/" {
				child += stat.Name
			} else {
				child += "/" + stat.Name
			}
			if err := lsPath(fs, child, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
