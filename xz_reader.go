//go:build !cgo
// +build !cgo

package mdm

import (
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// XZReader decompresses .xz catalog dumps
type XZReader struct {
	*xz.Reader
}

func NewXZReader(r io.Reader) (*XZReader, error) {
	dec, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("can't read from xz %w", err)
	}
	return &XZReader{dec}, nil
}

func (xr *XZReader) Close() error {
	return nil
}
