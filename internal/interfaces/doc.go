// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - NoteStore: note tree operations (internal/http/stores.go)
//   - ImportRecordStore: import history (internal/http/stores.go)
//   - importers.NoteStore: the persistence slice the pipeline needs (internal/importers/types.go)
//
// ## Pipeline Interfaces
//
//   - ImportService: runs an import to completion (internal/http/stores.go)
//   - BlobStore: durable attachment storage (internal/importers/types.go)
//
// ## Maintenance Interfaces
//
//   - ImportRecordCleaner: retention for import records (internal/tasks/cleanup_imports.go)
//   - AuditFileCleaner: retention for audit files (internal/tasks/cleanup_audit.go)
//
// # Adding a New Database Domain
//
// To add a new data domain:
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Implement interface methods
//
//  4. Add compile-time check:
//
//     var _ DomainStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
