package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/util"
)

// PageImageName is the on-disk name for a fetched page raster,
// "{document id}-page{page}.gif".
func PageImageName(docID int64, page int) string {
	return fmt.Sprintf("%d-page%d.gif", docID, page)
}

// SavePageImage writes raster bytes fetched from the platform into dir
// and returns the full path.
func SavePageImage(dir string, docID int64, page int, data []byte) (string, error) {
	path := filepath.Join(dir, PageImageName(docID, page))
	if err := util.WriteBytesAtomic(path, data); err != nil {
		return "", fmt.Errorf("save page image: %w", err)
	}
	return path, nil
}

// ConvertToPNG decodes the raster at path and re-encodes it as PNG next
// to it, returning the new path. The platform serves pages as GIF (TIFF
// and BMP turn up in older scans); the analysis service wants PNG.
// Animated GIFs decode to their first frame.
func ConvertToPNG(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	if err := util.WriteBytesAtomic(out, buf.Bytes()); err != nil {
		return "", fmt.Errorf("write png: %w", err)
	}
	return out, nil
}
