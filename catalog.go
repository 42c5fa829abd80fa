package mdm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CatalogEntry is one item of a catalog dump
type CatalogEntry struct {
	ID   string
	Path string
}

// CatalogReader keep tracks of everything related to catalog dump reading.
// A dump holds one item per line, "path" or "id<TAB>path", blank lines and
// lines starting with # are skipped. .xz and .zst dumps are decompressed on the fly.
type CatalogReader struct {
	path  string
	f     *os.File
	mmap  []byte
	count int
}

// NewCatalogReader opens a catalog dump, mmap is only used for uncompressed dumps
func NewCatalogReader(path string, mmap bool) (*CatalogReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	c := CatalogReader{path: path, f: f, count: -1}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	if mmap && compression(path) == "" && fi.Size() > 0 {
		m, err := newMmap(int(f.Fd()), 0, int(fi.Size()))
		if err != nil {
			f.Close()
			return nil, err
		}
		c.mmap = m
	}

	return &c, nil
}

func compression(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xz", ".zst":
		return ext
	}
	return ""
}

// open returns a fresh reader over the decompressed content
func (c *CatalogReader) open() (io.ReadCloser, error) {
	if len(c.mmap) > 0 {
		return io.NopCloser(bytes.NewReader(c.mmap)), nil
	}

	if _, err := c.f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	r := bufio.NewReader(c.f)

	switch compression(c.path) {
	case ".xz":
		xr, err := NewXZReader(r)
		if err != nil {
			return nil, err
		}
		return xr, nil
	case ".zst":
		zr, err := NewZstdReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	}
	return io.NopCloser(r), nil
}

// ListEntriesIterator calls cb for every entry of the catalog in file order
func (c *CatalogReader) ListEntriesIterator(cb func(CatalogEntry)) error {
	r, err := c.open()
	if err != nil {
		return err
	}
	defer r.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	var line, count int
	for scanner.Scan() {
		line++
		e, ok := parseCatalogLine(scanner.Text(), line)
		if !ok {
			continue
		}
		cb(e)
		count++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("can't read catalog %s at line %d: %w", c.path, line, err)
	}
	c.count = count
	return nil
}

// ListEntries list all entries contained in a catalog.
// Note that read errors stop the listing silently, use ListEntriesIterator to get them
func (c *CatalogReader) ListEntries() <-chan CatalogEntry {
	ch := make(chan CatalogEntry, 10)

	go func() {
		c.ListEntriesIterator(func(e CatalogEntry) {
			ch <- e
		})
		close(ch)
	}()
	return ch
}

// Count returns the number of entries, reading the whole catalog the first time
func (c *CatalogReader) Count() (int, error) {
	if c.count >= 0 {
		return c.count, nil
	}
	if err := c.ListEntriesIterator(func(CatalogEntry) {}); err != nil {
		return 0, err
	}
	return c.count, nil
}

func parseCatalogLine(s string, line int) (CatalogEntry, bool) {
	s = strings.TrimRight(s, "\r")
	if strings.TrimSpace(s) == "" || strings.HasPrefix(s, "#") {
		return CatalogEntry{}, false
	}
	if i := strings.IndexByte(s, '\t'); i >= 0 {
		return CatalogEntry{ID: s[:i], Path: s[i+1:]}, true
	}
	return CatalogEntry{ID: strconv.Itoa(line), Path: s}, true
}

// Close & cleanup the catalog reader
func (c *CatalogReader) Close() error {
	var err error
	if len(c.mmap) > 0 {
		err = releaseMmap(c.mmap)
		c.mmap = nil
	}
	return errors.Join(err, c.f.Close())
}

func (c *CatalogReader) String() string {
	fi, err := c.f.Stat()
	if err != nil {
		return "corrupted catalog"
	}
	comp := compression(c.path)
	if comp == "" {
		comp = "none"
	}
	return fmt.Sprintf("Path: %s, Size: %d, Compression: %s, Mmap: %v",
		c.path, fi.Size(), comp, len(c.mmap) > 0)
}
