package importers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected FileKind
	}{
		{"markdown", "notes/meeting.md", FileKindContent},
		{"html", "page.html", FileKindContent},
		{"htm", "old-page.htm", FileKindContent},
		{"uppercase extension", "README.MD", FileKindContent},
		{"png image", "attachments/diagram.png", FileKindAttachment},
		{"pdf document", "report.pdf", FileKindAttachment},
		{"zip counts as attachment", "nested.zip", FileKindAttachment},
		{"video", "demo.mp4", FileKindAttachment},
		{"no extension", "Makefile", FileKindUnknown},
		{"unknown extension", "binary.exe", FileKindUnknown},
		{"dotfile", ".gitignore", FileKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.filename))
		})
	}
}

func TestIsMarkdown(t *testing.T) {
	assert.True(t, IsMarkdown("note.md"))
	assert.True(t, IsMarkdown("NOTE.MD"))
	assert.False(t, IsMarkdown("note.html"))
	assert.False(t, IsMarkdown("note.markdown.txt"))
}

func TestIsArchive(t *testing.T) {
	assert.True(t, IsArchive("export.zip"))
	assert.True(t, IsArchive("Export.ZIP"))
	assert.False(t, IsArchive("export.tar"))
	assert.False(t, IsArchive("export.gz"))
	assert.False(t, IsArchive("export.md"))
}
