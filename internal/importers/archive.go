package importers

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// extractArchive expands a zip bundle into a freshly created scratch
// directory and enumerates every entry with its path relative to the bundle
// root. The caller owns the scratch directory and must remove it; on error
// it is cleaned up here and an empty path is returned.
func extractArchive(archivePath string) (scratchDir string, entries []FileEntry, err error) {
	scratchDir, err = os.MkdirTemp("", "notehive-import-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	zipReader, err := zip.OpenReader(archivePath)
	if err != nil {
		os.RemoveAll(scratchDir)
		return "", nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer zipReader.Close()

	for _, file := range zipReader.File {
		destPath, err := containedPath(scratchDir, file.Name)
		if err != nil {
			os.RemoveAll(scratchDir)
			return "", nil, err
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(destPath, 0755); err != nil {
				os.RemoveAll(scratchDir)
				return "", nil, fmt.Errorf("failed to create directory: %w", err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			os.RemoveAll(scratchDir)
			return "", nil, fmt.Errorf("failed to create directory: %w", err)
		}

		if err := extractZipFile(file, destPath); err != nil {
			os.RemoveAll(scratchDir)
			return "", nil, fmt.Errorf("failed to extract file %s: %w", file.Name, err)
		}
	}

	entries, err = walkEntries(scratchDir)
	if err != nil {
		os.RemoveAll(scratchDir)
		return "", nil, err
	}

	return scratchDir, entries, nil
}

// walkEntries enumerates all files and directories under root, recording
// forward-slash paths relative to it. The root itself is not an entry.
func walkEntries(root string) ([]FileEntry, error) {
	var entries []FileEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries = append(entries, FileEntry{
			RelativePath: filepath.ToSlash(rel),
			AbsolutePath: path,
			IsDirectory:  d.IsDir(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate archive contents: %w", err)
	}
	return entries, nil
}

// containedPath joins an archive member name onto the scratch root,
// rejecting names that would escape it.
func containedPath(root, name string) (string, error) {
	dest := filepath.Join(root, filepath.FromSlash(name))
	if dest != root && !strings.HasPrefix(dest, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes extraction directory", name)
	}
	return dest, nil
}

// extractZipFile extracts a single file from a zip archive.
func extractZipFile(file *zip.File, destPath string) error {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	outFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer outFile.Close()

	_, err = io.Copy(outFile, rc)
	return err
}
