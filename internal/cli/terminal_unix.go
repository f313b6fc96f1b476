//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// disableEcho turns off terminal echo on file and returns a func restoring
// the previous mode. It fails for pipes and regular files.
func disableEcho(file *os.File) (func(), error) {
	if file == nil {
		return nil, errors.New("stdin unavailable")
	}

	fd := int(file.Fd())
	saved, err := unix.IoctlGetTermios(fd, getTermiosRequest)
	if err != nil {
		return nil, err
	}
	silent := *saved
	silent.Lflag &^= unix.ECHO
	if err := unix.IoctlSetTermios(fd, setTermiosRequest, &silent); err != nil {
		return nil, err
	}
	return func() {
		_ = unix.IoctlSetTermios(fd, setTermiosRequest, saved)
	}, nil
}
