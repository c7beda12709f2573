package catalog

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// headerSize is enough for filetype to recognize anything it knows.
const headerSize = 8192

var catalogType = filetype.NewType("mcat", "application/x-mcat+xml")

func init() {
	filetype.AddMatcher(catalogType, catalogMatcher)
}

// catalogMatcher accepts XML documents (optionally with BOM) whose header
// mentions one of catalog root elements.
func catalogMatcher(buf []byte) bool {
	buf = bytes.TrimPrefix(buf, []byte("\xef\xbb\xbf"))
	buf = bytes.TrimLeft(buf, " \t\r\n")
	if len(buf) == 0 || buf[0] != '<' {
		return false
	}
	return bytes.Contains(buf, []byte("<media")) || bytes.Contains(buf, []byte("<library")) ||
		bytes.Contains(buf, []byte(":media")) || bytes.Contains(buf, []byte(":library"))
}

func readHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, headerSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}

// isArchiveFile reports whether file has zip extension and zip content.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	header, err := readHeader(path)
	if err != nil {
		return false, err
	}
	return filetype.IsType(header, matchers.TypeZip), nil
}

// isCatalogData reports whether data looks like catalog document.
func isCatalogData(data []byte) bool {
	if len(data) > headerSize {
		data = data[:headerSize]
	}
	kind, err := filetype.Match(data)
	return err == nil && kind == catalogType
}

func isCatalogFile(path string) (bool, error) {
	header, err := readHeader(path)
	if err != nil {
		return false, err
	}
	return isCatalogData(header), nil
}
