// Package importers reconstructs exported document bundles as note trees.
//
// The pipeline accepts a batch of uploaded files (loose Markdown/HTML files,
// binary attachments, or zip bundles of both) and turns them into persisted
// notes: archives are expanded into scratch directories, attachments are
// copied into durable blob storage, content files are converted to HTML with
// their attachment references rewritten, and directory layout optionally
// becomes note hierarchy.
//
// Failure is isolated per item. A bad archive, attachment, or content file
// is reported in the result's error list and never aborts the rest of the
// import; ProcessImport never panics past its own boundary.
//
// # Usage
//
//	imp := importers.NewImporter(noteRepo, blobStore)
//	result := imp.ProcessImport(files, importers.Options{OwnerID: userID})
package importers
