package editor

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/bulga138/cog/logger"
)

// fileMode is the permission given to newly created files, before umask.
const fileMode = 0o644

// save overwrites the file with the buffer contents.
func (e *Editor) save() error {
	err := e.writeFile()
	if err != nil {
		e.styles.err.Fprintf(e.errOut, "Failed to save changes: %v\n", err)
	}
	return err
}

func (e *Editor) writeFile() error {
	f, err := os.OpenFile(e.filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return err
	}

	n, err := e.buffer.WriteTo(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("write error: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("file saved",
		"file", e.filename,
		"bytes", n,
		"lines", e.buffer.LineCount(),
		"modified", !e.isContentUnchanged())
	e.printInfo("%s written to %s", humanize.Bytes(uint64(n)), e.filename)
	return nil
}

// calculateBufferHash computes the SHA-256 hash of the current buffer content.
func (e *Editor) calculateBufferHash() string {
	hasher := sha256.New()
	if _, err := e.buffer.WriteTo(hasher); err != nil {
		return "error_calculating_hash"
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// isContentUnchanged reports whether the buffer still matches what was loaded.
func (e *Editor) isContentUnchanged() bool {
	return e.calculateBufferHash() == e.initialHash
}
