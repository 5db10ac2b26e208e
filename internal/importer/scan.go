package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// processedDir is where imported files are moved after posting.
const processedDir = "processed"

// FileInfo describes a CSV file waiting in the ingest directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Scan returns the CSV files in the ingest directory, skipping
// subdirectories and non-CSV files. A missing directory is not an error.
func Scan(ingestDir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(ingestDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading ingest dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(ingestDir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from the ingest directory into its
// processed/ subdirectory so it is not imported twice.
func MarkProcessed(ingestDir, fileName string) error {
	dstDir := filepath.Join(ingestDir, processedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}
	if err := os.Rename(filepath.Join(ingestDir, fileName), filepath.Join(dstDir, fileName)); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
