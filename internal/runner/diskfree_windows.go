//go:build windows

package runner

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

func freeDiskSpace(path string) (uint64, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !stat.IsDir() {
		return 0, fmt.Errorf("%s is not a directory", path)
	}

	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}

	var freeBytes, totalBytes, totalFreeBytes uint64
	if err := windows.GetDiskFreeSpaceEx(ptr, &freeBytes, &totalBytes, &totalFreeBytes); err != nil {
		return 0, fmt.Errorf("disk free space %s: %w", path, err)
	}

	return freeBytes, nil
}
