package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mountInfoCmd = &cobra.Command{
	Use:   "mount-info",
	Short: "Show volume metadata for the mounted image",
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, err := openFS()
		if err != nil {
			return err
		}
		info, err := fs.GetInfo()
		if err != nil {
			return err
		}
		fmt.Printf("Name:          %s\n", info.Name)
		fmt.Printf("Type:          %d\n", info.Type)
		fmt.Printf("Volume ID:     0x%08x\n", info.VolumeID)
		fmt.Printf("Volume size:   %d bytes\n", info.VolumeSize)
		fmt.Printf("Max name len:  %d\n", info.MaxNameLength)
		fmt.Printf("Max path len:  %d\n", info.MaxPathLength)
		fmt.Printf("Created:       %s\n", info.CreationTime)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mountInfoCmd)
}
