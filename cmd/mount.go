package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/sillyhouse/ifs/internal/blockdev"
	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/fwfs"
	"github.com/sillyhouse/ifs/internal/hostfs"
	"github.com/sillyhouse/ifs/internal/hyfs"
)

// openFS mounts the image named by the --image flag, overlaying it with
// a writable host directory when --host-root is set (spec.md §4.4).
func openFS() (capability.FileSystem, error) {
	info, err := os.Stat(imagePath)
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}

	dev, err := blockdev.OpenFileDevice(imagePath, info.Size(), 4096, false)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}

	lower := fwfs.New(dev)
	if err := lower.Mount(); err != nil {
		return nil, fmt.Errorf("mount image: %w", err)
	}
	if hostRoot == "" {
		return lower, nil
	}

	upper := hostfs.New(afero.NewBasePathFs(afero.NewOsFs(), hostRoot))
	store := &hostfs.XattrTombstoneStore{FS: upper}
	overlay := hyfs.New(lower, upper, store)
	if err := overlay.Mount(); err != nil {
		return nil, fmt.Errorf("mount overlay: %w", err)
	}
	return overlay, nil
}
