package checkpoint

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Digest computes the full-file MD5 digest of the shard. There is no
// reference hash to compare against: an error means the file could not be
// opened or read, never that the content is wrong. fn, when non-nil, is
// called with the byte count of each read so callers can surface progress.
func (s Shard) Digest(fn func(n int64)) (string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", s.Name, err)
	}
	defer f.Close()

	h := md5.New()

	var w io.Writer = h
	if fn != nil {
		w = io.MultiWriter(h, progressWriter(fn))
	}

	if _, err := io.Copy(w, f); err != nil {
		return "", fmt.Errorf("read %s: %w", s.Name, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

type progressWriter func(n int64)

func (fn progressWriter) Write(p []byte) (int, error) {
	fn(int64(len(p)))
	return len(p), nil
}
