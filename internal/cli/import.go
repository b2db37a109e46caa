package cli

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/notehive/notehive/internal/config"
	"github.com/notehive/notehive/internal/database"
	"github.com/notehive/notehive/internal/database/notes"
	"github.com/notehive/notehive/internal/importers"
	"github.com/notehive/notehive/internal/storage"
)

// ImportCommand imports documents from a local directory or zip bundle
// without going through the HTTP server.
type ImportCommand struct {
	Path         string
	DatabasePath string
	BlobDir      string
	UserID       uint
	Flat         bool
	Verbose      bool
}

func NewImportCommand() *ImportCommand {
	return &ImportCommand{}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	var userID uint64
	fs.StringVar(&cmd.Path, "path", "", "File, zip bundle or directory to import (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.BlobDir, "blob-dir", "./data/files", "Directory for attachment blobs")
	fs.Uint64Var(&userID, "user", 0, "Owner user ID for imported notes")
	fs.BoolVar(&cmd.Flat, "flat", false, "Import all documents as top-level notes, ignoring directory structure")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import Markdown/HTML documents or zip bundles into the note tree.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import -path ./notes-export.zip\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import -path ./my-notes -db ./notehive.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import -path ./loose-notes -flat\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	cmd.UserID = uint(userID)

	if cmd.Path == "" {
		fs.Usage()
		return fmt.Errorf("path is required")
	}

	return nil
}

func (cmd *ImportCommand) Run() error {
	info, err := os.Stat(cmd.Path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", cmd.Path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if cmd.Verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	files, err := cmd.collectFiles(info.IsDir())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No files found at %s\n", cmd.Path)
		return nil
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	blobStore, err := storage.NewLocalStore(cmd.BlobDir)
	if err != nil {
		return fmt.Errorf("failed to initialize blob storage: %w", err)
	}

	importer := importers.NewImporter(notes.NewRepository(db.DB), blobStore)
	result := importer.ProcessImport(files, importers.Options{
		OwnerID:           cmd.UserID,
		PreserveStructure: !cmd.Flat,
	})

	fmt.Printf("\n=== Import Results ===\n")
	fmt.Printf("Notes imported: %d\n", result.Imported.Notes)
	fmt.Printf("Attachments imported: %d\n", result.Imported.Attachments)
	fmt.Printf("Errors: %d\n", len(result.Errors))

	for _, fileErr := range result.Errors {
		fmt.Printf("  %s: %s\n", fileErr.File, fileErr.Error)
	}

	if !result.Success {
		return fmt.Errorf("import finished with %d errors", len(result.Errors))
	}
	return nil
}

// collectFiles turns the import path into the pipeline's uploaded file list.
// Directories are walked recursively with paths kept relative to the root,
// so the tree builder sees the same structure a zip bundle would carry.
func (cmd *ImportCommand) collectFiles(isDir bool) ([]importers.UploadedFile, error) {
	if !isDir {
		return []importers.UploadedFile{{
			OriginalName: filepath.Base(cmd.Path),
			StoredPath:   cmd.Path,
		}}, nil
	}

	var files []importers.UploadedFile
	err := filepath.Walk(cmd.Path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(cmd.Path, path)
		if err != nil {
			return err
		}
		files = append(files, importers.UploadedFile{
			OriginalName: filepath.ToSlash(rel),
			StoredPath:   path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	return files, nil
}
