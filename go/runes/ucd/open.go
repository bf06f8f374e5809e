package ucd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Standard UCD file names, as published by the Unicode consortium.
const (
	FileUnicodeData   = "UnicodeData.txt"
	FilePropList      = "PropList.txt"
	FileCaseFolding   = "CaseFolding.txt"
	FileGraphemeBreak = "GraphemeBreakProperty.txt"
	FileEmojiData     = "emoji-data.txt"
)

type gzReadCloser struct {
	*gzip.Reader
	file io.Closer
}

func (g *gzReadCloser) Close() error {
	if err := g.Reader.Close(); err != nil {
		g.file.Close()
		return err
	}
	return g.file.Close()
}

// Open opens a UCD source file, transparently decompressing it when the
// name ends in .gz so files can be consumed exactly as downloaded.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &gzReadCloser{Reader: zr, file: f}, nil
}

// openEither opens dir/name, falling back to dir/name.gz.
func openEither(dir, name string) (io.ReadCloser, error) {
	plain := filepath.Join(dir, name)
	if _, err := os.Stat(plain); err == nil {
		return Open(plain)
	}
	return Open(plain + ".gz")
}

// Load builds the database from the five standard UCD files in dir. Each
// file may be present either plain or gzipped.
func Load(dir string) (*Database, error) {
	names := []string{
		FileUnicodeData, FilePropList, FileCaseFolding, FileGraphemeBreak, FileEmojiData,
	}
	readers := make([]io.ReadCloser, len(names))
	defer func() {
		for _, r := range readers {
			if r != nil {
				r.Close()
			}
		}
	}()
	for i, name := range names {
		r, err := openEither(dir, name)
		if err != nil {
			return nil, err
		}
		readers[i] = r
	}

	db, err := Build(Files{
		UnicodeData:   readers[0],
		PropList:      readers[1],
		CaseFolding:   readers[2],
		GraphemeBreak: readers[3],
		EmojiData:     readers[4],
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}
