//go:build !linux

package x11

import "errors"

type sysvSegment struct {
	id   int
	data []byte
}

func createSegment(int) (*sysvSegment, error) {
	return nil, errors.New("SysV shared memory is only wired on linux")
}

func (s *sysvSegment) markRemoved() error { return nil }

func (s *sysvSegment) detach() error { return nil }
