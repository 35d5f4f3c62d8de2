package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestArchiveAssets(t *testing.T) {
	out, err := ArchiveAssets([]Asset{
		{Filename: "subway.png", MIME: "image/png", Data: []byte("one")},
		{Filename: "cafe.png", MIME: "image/png", Data: []byte("two")},
	})
	if err != nil {
		t.Fatalf("ArchiveAssets: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 || zr.File[0].Name != "subway.png" || zr.File[1].Name != "cafe.png" {
		t.Fatalf("unexpected entries: %v", zr.File)
	}
	rc, err := zr.File[1].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "two" {
		t.Fatalf("entry data = %q", data)
	}
}

func TestArchiveAssetsRejectsDuplicates(t *testing.T) {
	_, err := ArchiveAssets([]Asset{
		{Filename: "gym.png", Data: []byte("a")},
		{Filename: "gym.png", Data: []byte("b")},
	})
	if err == nil {
		t.Fatal("expected duplicate filename error")
	}
}
