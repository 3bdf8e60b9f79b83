package store

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// isCompressed reports whether a location names a gzip-compressed
// document. Compression is a property of the location, not of the
// format: "conf.yaml.gz" is still a YAML store.
func isCompressed(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

func readLocation(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if isCompressed(path) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}
	return io.ReadAll(r)
}

func writeLocation(path string, d []byte) error {
	if isCompressed(path) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(d); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return err
		}
		d = buf.Bytes()
	}
	return os.WriteFile(path, d, 0644)
}
