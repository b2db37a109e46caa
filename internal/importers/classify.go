package importers

import (
	"path/filepath"
	"strings"
)

// FileKind is the classification of an uploaded or extracted file.
type FileKind int

const (
	// FileKindUnknown files are silently skipped; an import is not
	// required to consume every uploaded byte type.
	FileKindUnknown FileKind = iota
	FileKindContent
	FileKindAttachment
)

// contentExtensions are the file types that become note bodies.
var contentExtensions = map[string]bool{
	".md":   true,
	".html": true,
	".htm":  true,
}

// attachmentExtensions are the file types copied into blob storage and
// referenced from content.
var attachmentExtensions = map[string]bool{
	// Images
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".webp": true, ".svg": true, ".bmp": true, ".ico": true,
	// Video
	".mp4": true, ".webm": true, ".mov": true, ".avi": true, ".mkv": true,
	// Audio
	".mp3": true, ".wav": true, ".ogg": true, ".m4a": true, ".flac": true,
	// Documents
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true, ".csv": true, ".txt": true, ".json": true,
	// Archives
	".zip": true, ".tar": true, ".gz": true, ".7z": true, ".rar": true,
}

// Classify decides what a file is by its lowercased extension.
func Classify(name string) FileKind {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case contentExtensions[ext]:
		return FileKindContent
	case attachmentExtensions[ext]:
		return FileKindAttachment
	default:
		return FileKindUnknown
	}
}

// IsMarkdown reports whether a file needs Markdown-to-HTML conversion.
func IsMarkdown(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".md"
}

// IsArchive reports whether an uploaded file is a bundle that should be
// expanded rather than stored. Only zip bundles are expanded; other archive
// extensions are kept as plain attachments.
func IsArchive(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".zip"
}
