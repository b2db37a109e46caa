package importers

import (
	"path"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultTitle is used when nothing usable can be derived from content or
// filename.
const DefaultTitle = "Untitled"

var (
	h1Pattern        = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	innerTagPattern  = regexp.MustCompile(`<[^>]+>`)
	mdHeadingPattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)
)

// extractTitle derives a human title and an optional leading emoji glyph
// from content. Preference order: the first level-1 HTML heading, the first
// Markdown "# " line, then the filename with its extension stripped and
// separators replaced by spaces.
func extractTitle(content, relativePath string) (title, emoji string) {
	if m := h1Pattern.FindStringSubmatch(content); m != nil {
		title = strings.TrimSpace(innerTagPattern.ReplaceAllString(m[1], ""))
	}
	if title == "" {
		if m := mdHeadingPattern.FindStringSubmatch(content); m != nil {
			title = strings.TrimSpace(m[1])
		}
	}
	if title == "" {
		title = titleFromFilename(relativePath)
	}

	emoji, title = splitLeadingEmoji(title)
	if title == "" {
		title = DefaultTitle
	}
	return title, emoji
}

// titleFromFilename turns "my-meeting_notes.md" into "my meeting notes".
func titleFromFilename(relativePath string) string {
	name := path.Base(relativePath)
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.TrimSpace(name)
}

// splitLeadingEmoji splits a single leading emoji glyph off a title. A
// trailing variation selector (U+FE0F) belongs to the glyph.
func splitLeadingEmoji(s string) (emoji, rest string) {
	r, size := utf8.DecodeRuneInString(s)
	if !isEmojiRune(r) {
		return "", s
	}
	emoji = s[:size]
	rest = s[size:]
	if r2, size2 := utf8.DecodeRuneInString(rest); r2 == 0xFE0F {
		emoji += rest[:size2]
		rest = rest[size2:]
	}
	return emoji, strings.TrimSpace(rest)
}

func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, transport, supplemental symbols
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	case r == 0x2B50 || r == 0x2B55: // star, heavy circle
		return true
	}
	return false
}
