package mdm

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// ZstdReader decompresses .zst catalog dumps
type ZstdReader struct {
	*zstd.Decoder
}

func NewZstdReader(r io.Reader) (*ZstdReader, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("can't read from zstd %w", err)
	}
	return &ZstdReader{dec}, nil
}

func (zr *ZstdReader) Close() error {
	zr.Decoder.Close()

	return nil
}
