package importers

import (
	"os"
	"path"
	"sort"
	"strings"
)

// maxTreeDepth bounds recursive forest traversal. Input path depth bounds
// tree depth, so anything past this is a pathological bundle; deeper nodes
// are dropped rather than risking unbounded recursion.
const maxTreeDepth = 64

// buildForest reconstructs parent/child relationships from file-system
// paths. Directory entries become placeholder nodes (shallow first, so
// parents exist before children attach), content files attach to their
// directory's node or fall back to the forest root, index files merge into
// their enclosing directory's placeholder, and empty nodes are pruned
// bottom-up.
func (imp *Importer) buildForest(entries []FileEntry, attachments map[string]string, result *Result) []*noteData {
	nodes := make(map[string]*noteData)
	var forest []*noteData

	var dirs []FileEntry
	for _, entry := range entries {
		if entry.IsDirectory {
			dirs = append(dirs, entry)
		}
	}
	sort.SliceStable(dirs, func(i, j int) bool {
		return pathDepth(dirs[i].RelativePath) < pathDepth(dirs[j].RelativePath)
	})

	for _, dir := range dirs {
		node := &noteData{
			title:        path.Base(dir.RelativePath),
			relativePath: dir.RelativePath,
		}
		nodes[dir.RelativePath] = node

		if parent, ok := nodes[path.Dir(dir.RelativePath)]; ok {
			parent.children = append(parent.children, node)
		} else {
			forest = append(forest, node)
		}
	}

	for _, entry := range entries {
		if entry.IsDirectory || Classify(entry.RelativePath) != FileKindContent {
			continue
		}

		node, err := imp.loadContentNode(entry, attachments)
		if err != nil {
			result.addError(entry.RelativePath, err)
			continue
		}

		parent := nodes[path.Dir(entry.RelativePath)]

		if isIndexFile(entry.RelativePath) && parent != nil {
			parent.content = node.content
			// A filename-derived "index" title is useless; the directory
			// name is the better label then.
			if node.title != DefaultTitle && !strings.EqualFold(node.title, "index") {
				parent.title = node.title
				parent.titleEmoji = node.titleEmoji
			}
			continue
		}

		if parent != nil {
			parent.children = append(parent.children, node)
		} else {
			// Covers both top-level files and files whose nominal
			// parent directory never got a placeholder: root
			// placement beats dropping the note.
			forest = append(forest, node)
		}
	}

	return pruneForest(forest, 0)
}

// buildFlat turns every content entry into a sibling node in discovery
// order, ignoring directory layout entirely.
func (imp *Importer) buildFlat(entries []FileEntry, attachments map[string]string, result *Result) []*noteData {
	var flat []*noteData
	for _, entry := range entries {
		if entry.IsDirectory || Classify(entry.RelativePath) != FileKindContent {
			continue
		}
		node, err := imp.loadContentNode(entry, attachments)
		if err != nil {
			result.addError(entry.RelativePath, err)
			continue
		}
		flat = append(flat, node)
	}
	return pruneForest(flat, 0)
}

// loadContentNode reads, transforms, and titles one content file.
func (imp *Importer) loadContentNode(entry FileEntry, attachments map[string]string) (*noteData, error) {
	raw, err := os.ReadFile(entry.AbsolutePath)
	if err != nil {
		return nil, err
	}
	content, err := imp.transformContent(raw, entry.RelativePath, attachments)
	if err != nil {
		return nil, err
	}
	title, emoji := extractTitle(content, entry.RelativePath)
	return &noteData{
		title:        title,
		titleEmoji:   emoji,
		content:      content,
		relativePath: entry.RelativePath,
	}, nil
}

// pruneForest drops nodes with blank content and no surviving children.
func pruneForest(nodes []*noteData, depth int) []*noteData {
	if depth > maxTreeDepth {
		return nil
	}
	var kept []*noteData
	for _, node := range nodes {
		node.children = pruneForest(node.children, depth+1)
		if strings.TrimSpace(node.content) == "" && len(node.children) == 0 {
			continue
		}
		kept = append(kept, node)
	}
	return kept
}

// isIndexFile reports whether a content file should merge into its
// enclosing directory's node instead of becoming a child.
func isIndexFile(relativePath string) bool {
	base := strings.ToLower(path.Base(relativePath))
	return base == "index.md" || base == "index.html"
}

func pathDepth(p string) int {
	return strings.Count(p, "/")
}
