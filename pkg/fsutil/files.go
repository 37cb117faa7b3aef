package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// PendingFile is an output file that only appears at its final path once
// committed. Until then the data lives in a hidden temporary file in the
// same directory, so a rename is enough to publish it.
type PendingFile struct {
	*os.File

	path string
	perm os.FileMode
	done bool
}

// CreatePending opens a staging file for path. It fails when the directory
// of path does not exist or is not writable.
func CreatePending(path string, perm os.FileMode) (*PendingFile, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	file, err := os.CreateTemp(dir, "."+base+".*.partial")
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	return &PendingFile{File: file, path: path, perm: perm}, nil
}

// Path returns the final path of the file.
func (p *PendingFile) Path() string {
	return p.path
}

// Commit flushes the staging file and renames it onto the final path,
// replacing any previous file there.
func (p *PendingFile) Commit() error {
	if p.done {
		return fmt.Errorf("output file %s already finalized", p.path)
	}
	p.done = true

	tempPath := p.Name()
	if err := p.Chmod(p.perm); err != nil {
		_ = p.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to set permissions on %s: %w", p.path, err)
	}
	if err := p.Sync(); err != nil {
		_ = p.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to flush %s: %w", p.path, err)
	}
	if err := p.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to close %s: %w", p.path, err)
	}
	if err := os.Rename(tempPath, p.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to move %s into place: %w", p.path, err)
	}
	return nil
}

// Discard closes and removes the staging file. It is a no-op after Commit
// or a previous Discard.
func (p *PendingFile) Discard() error {
	if p.done {
		return nil
	}
	p.done = true

	_ = p.Close()
	if err := os.Remove(p.Name()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove partial output %s: %w", p.Name(), err)
	}
	return nil
}
