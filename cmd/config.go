package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify file content against recorded MD5 hashes",
	Long: `Walk the mounted tree recomputing each file's MD5 and comparing it
against its recorded Md5Hash attribute, reporting a recoverable-object
count (spec.md "Check", no repair is attempted — this backend is
read-only).

Example:
  ifs --image disk.fwfs check`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, err := openFS()
		if err != nil {
			return err
		}
		mismatches, err := fs.Check()
		if err != nil {
			return err
		}
		if mismatches == 0 {
			fmt.Println("check: no mismatches found")
			return nil
		}
		fmt.Printf("check: %d mismatched object(s) found\n", mismatches)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
