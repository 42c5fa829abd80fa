//go:build cgo
// +build cgo

package mdm

import (
	"fmt"
	"io"

	xz "github.com/remyoudompheng/go-liblzma"
)

// XZReader decompresses .xz catalog dumps using liblzma
type XZReader struct {
	*xz.Decompressor
}

func NewXZReader(r io.Reader) (*XZReader, error) {
	dec, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("can't read from xz %w", err)
	}
	return &XZReader{dec}, nil
}

func (xr *XZReader) Close() error {
	return xr.Decompressor.Close()
}
