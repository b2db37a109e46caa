package importers

import (
	"path"
	"strings"
)

// attachmentDirList holds conventional directory names export tools use
// for attachments. An attachment living under one of these gets an extra
// "<dir>/<filename>" lookup key so references survive layout differences
// between the export tool and the pipeline. Order matters: it is the
// precedence for the fallback lookup in resolveReference.
var attachmentDirList = []string{"attachments", "assets", "images", "files", "media"}

func isAttachmentDir(name string) bool {
	for _, dir := range attachmentDirList {
		if name == dir {
			return true
		}
	}
	return false
}

// resolveAttachments copies every attachment entry into blob storage and
// builds the lookup table from reference keys to durable locators. Each
// attachment is registered under its full relative path, its bare filename,
// and a normalized "<dir>/<filename>" form for each conventional attachment
// directory on its path. Copy failures are recorded per attachment and do
// not block the rest.
func (imp *Importer) resolveAttachments(entries []FileEntry, result *Result) map[string]string {
	attachments := make(map[string]string)

	for _, entry := range entries {
		if entry.IsDirectory || Classify(entry.RelativePath) != FileKindAttachment {
			continue
		}

		filename := path.Base(entry.RelativePath)
		locator, err := imp.blobs.StoreBlob(entry.AbsolutePath, filename)
		if err != nil {
			result.addError(entry.RelativePath, err)
			continue
		}
		result.Imported.Attachments++

		attachments[entry.RelativePath] = locator
		attachments[filename] = locator
		for _, segment := range strings.Split(path.Dir(entry.RelativePath), "/") {
			if isAttachmentDir(strings.ToLower(segment)) {
				attachments[strings.ToLower(segment)+"/"+filename] = locator
			}
		}
	}

	return attachments
}
