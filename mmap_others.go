//go:build !windows
// +build !windows

package mdm

import (
	"syscall"
)

func newMmap(fd int, offset int64, length int) (data []byte, err error) {
	return syscall.Mmap(fd, offset, length, syscall.PROT_READ, syscall.MAP_PRIVATE)
}

func releaseMmap(data []byte) error {
	return syscall.Munmap(data)
}
