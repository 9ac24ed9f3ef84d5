package output

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BuildArchive zips every file directly under tablesDir into archivePath
// and returns the entry count. Entry names are the bare file names, so
// the archive extracts to a flat listing. archivePath must live outside
// tablesDir or the archive would try to swallow itself.
func BuildArchive(tablesDir, archivePath string) (int, error) {
	entries, err := os.ReadDir(tablesDir)
	if err != nil {
		return 0, fmt.Errorf("read tables dir: %w", err)
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return 0, fmt.Errorf("create archive: %w", err)
	}
	zw := zip.NewWriter(f)

	count := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := addEntry(zw, filepath.Join(tablesDir, e.Name()), e.Name()); err != nil {
			_ = zw.Close()
			_ = f.Close()
			return 0, err
		}
		count++
	}

	if err := zw.Close(); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("close archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close archive file: %w", err)
	}
	return count, nil
}

func addEntry(zw *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer src.Close()
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("archive entry %s: %w", name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("archive copy %s: %w", name, err)
	}
	return nil
}
