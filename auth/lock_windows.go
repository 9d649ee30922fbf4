//go:build windows

package auth

import (
	"os"

	"golang.org/x/sys/windows"
)

// lock takes an exclusive lock on <path>.lock, blocking until it is available.
func lock(path string) (func(), error) {
	f, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}

	handle := windows.Handle(f.Fd())
	overlapped := windows.Overlapped{}

	if err := windows.LockFileEx(handle, windows.LOCKFILE_EXCLUSIVE_LOCK, 0, 1, 0, &overlapped); err != nil {
		f.Close()
		return nil, err
	}

	return func() {
		windows.UnlockFileEx(handle, 0, 1, 0, &overlapped)
		f.Close()
	}, nil
}
