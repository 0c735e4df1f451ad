//go:build linux

package x11

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// sysvSegment is a SysV shared memory segment attached to this process.
type sysvSegment struct {
	id   int
	data []byte
}

func createSegment(size int) (*sysvSegment, error) {
	id, err := unix.SysvShmGet(unix.IPC_PRIVATE, size, unix.IPC_CREAT|0o600)
	if err != nil {
		return nil, fmt.Errorf("shmget %d bytes: %w", size, err)
	}
	data, err := unix.SysvShmAttach(id, 0, 0)
	if err != nil {
		_, _ = unix.SysvShmCtl(id, unix.IPC_RMID, nil)
		return nil, fmt.Errorf("shmat: %w", err)
	}
	return &sysvSegment{id: id, data: data}, nil
}

// markRemoved schedules the segment for removal once every attachment,
// including the server's, is gone.
func (s *sysvSegment) markRemoved() error {
	_, err := unix.SysvShmCtl(s.id, unix.IPC_RMID, nil)
	return err
}

func (s *sysvSegment) detach() error {
	return unix.SysvShmDetach(s.data)
}
