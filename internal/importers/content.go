package importers

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/notehive/notehive/internal/storage"
)

// markdown is shared across imports; goldmark parsers are safe for
// concurrent use. Unsafe rendering is required because exports routinely
// embed raw HTML in Markdown and we store HTML anyway.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

var (
	attrRefPattern       = regexp.MustCompile(`(src|href)="([^"]*)"`)
	markdownImagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)
)

// transformContent converts a content file's raw bytes into the stored HTML
// representation: Markdown is rendered to HTML, plain HTML passes through,
// and every local attachment reference is rewritten to its durable locator.
func (imp *Importer) transformContent(raw []byte, relativePath string, attachments map[string]string) (string, error) {
	content := string(raw)

	if IsMarkdown(relativePath) {
		var buf bytes.Buffer
		if err := markdown.Convert(raw, &buf); err != nil {
			return "", fmt.Errorf("failed to convert markdown: %w", err)
		}
		content = buf.String()
	}

	return rewriteReferences(content, path.Dir(relativePath), attachments), nil
}

// rewriteReferences replaces local attachment references in src/href
// attributes and residual Markdown image syntax with durable locators.
// References that cannot be resolved are left exactly as found; a broken
// link is preferred over silent data loss.
func rewriteReferences(content, docDir string, attachments map[string]string) string {
	content = attrRefPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := attrRefPattern.FindStringSubmatch(match)
		locator, ok := resolveReference(groups[2], docDir, attachments)
		if !ok {
			return match
		}
		return fmt.Sprintf(`%s="%s"`, groups[1], locator)
	})

	// Markdown image syntax can survive conversion (inside raw HTML
	// blocks) and appears verbatim in imported HTML written by hand.
	content = markdownImagePattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := markdownImagePattern.FindStringSubmatch(match)
		locator, ok := resolveReference(groups[2], docDir, attachments)
		if !ok {
			return match
		}
		return fmt.Sprintf(`<img src="%s" alt="%s">`, locator, groups[1])
	})

	return content
}

// resolveReference maps one reference to a durable locator. Resolution is
// attempted in a fixed order: the normalized reference itself, its bare
// filename, the reference relative to the source document's directory, and
// finally each conventional attachment-directory key form. The first hit
// wins. External URLs and references already inside the durable namespace
// are never touched.
func resolveReference(ref, docDir string, attachments map[string]string) (string, bool) {
	if ref == "" ||
		strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "data:") ||
		strings.HasPrefix(ref, storage.PublicPrefix+"/") {
		return "", false
	}

	normalized := strings.TrimPrefix(ref, "./")
	// Export tools percent-encode spaces in file references; the walk
	// recorded the decoded on-disk names.
	if decoded, err := url.PathUnescape(normalized); err == nil {
		normalized = decoded
	}

	if locator, ok := attachments[normalized]; ok {
		return locator, true
	}

	filename := path.Base(normalized)
	if locator, ok := attachments[filename]; ok {
		return locator, true
	}

	if docDir != "" && docDir != "." {
		if locator, ok := attachments[path.Join(docDir, normalized)]; ok {
			return locator, true
		}
	}

	for _, dir := range attachmentDirList {
		if locator, ok := attachments[dir+"/"+filename]; ok {
			return locator, true
		}
	}

	return "", false
}
