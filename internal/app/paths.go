package app

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultOutputDir holds date-named newspapers when the caller does not
// specify an output path.
const DefaultOutputDir = "Newspapers"

// DeriveOutputPath returns a date-derived PDF path under root (or
// DefaultOutputDir when root is empty), creating the directory if needed.
// The filename is stable for a given day: YYYY-MM-DD.pdf.
func DeriveOutputPath(root string, now time.Time) (string, error) {
	if root == "" {
		root = DefaultOutputDir
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(root, now.Format("2006-01-02")+".pdf"), nil
}
