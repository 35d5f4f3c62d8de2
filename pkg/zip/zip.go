package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

type Asset struct {
	Filename string
	MIME     string
	Data     []byte
}

// ArchiveAssets bundles assets into one zip archive in the given order.
func ArchiveAssets(assets []Asset) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	seen := make(map[string]bool, len(assets))
	for _, asset := range assets {
		if asset.Filename == "" || seen[asset.Filename] {
			return nil, fmt.Errorf("zip: invalid or duplicate filename %q", asset.Filename)
		}
		seen[asset.Filename] = true
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     asset.Filename,
			Method:   zip.Deflate,
			Modified: time.Now(),
			Comment:  asset.MIME,
		})
		if err != nil {
			return nil, fmt.Errorf("zip: create %s: %w", asset.Filename, err)
		}
		if _, err := w.Write(asset.Data); err != nil {
			return nil, fmt.Errorf("zip: write %s: %w", asset.Filename, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close: %w", err)
	}
	return buf.Bytes(), nil
}
