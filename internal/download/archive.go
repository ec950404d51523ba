package download

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"github.com/clipdl/clipd/internal/model"
)

// buildArchive packs the successful files into a zip at zipPath. Entry
// order matches success order, so archive contents are deterministic for a
// given selection.
func buildArchive(zipPath string, files []model.BatchSuccess) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer out.Close()

	w := zip.NewWriter(out)
	for _, file := range files {
		if err := addArchiveEntry(w, file); err != nil {
			w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return out.Close()
}

func addArchiveEntry(w *zip.Writer, file model.BatchSuccess) error {
	src, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", file.Path, err)
	}
	defer src.Close()

	dst, err := w.Create(file.Name)
	if err != nil {
		return fmt.Errorf("adding %s to archive: %w", file.Name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("writing %s to archive: %w", file.Name, err)
	}
	return nil
}
