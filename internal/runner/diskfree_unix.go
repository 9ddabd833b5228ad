//go:build !windows

package runner

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func freeDiskSpace(path string) (uint64, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !stat.IsDir() {
		return 0, fmt.Errorf("%s is not a directory", path)
	}

	var fs unix.Statfs_t
	if err := unix.Statfs(path, &fs); err != nil {
		return 0, fmt.Errorf("statfs %s: %w", path, err)
	}

	return uint64(fs.Bavail) * uint64(fs.Bsize), nil
}
