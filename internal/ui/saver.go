package ui

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
)

// DirSaver writes downloads into Dir.
type DirSaver struct {
	Dir string
}

// Save writes content to Dir/name as a plain-text file, replacing any
// previous download of the same name.
func (d DirSaver) Save(name string, content []byte) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.Dir, name), content, 0o644)
}

var errClipboardUnsupported = errors.New("clipboard not supported on this system")

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// WriteText fails when no clipboard utility is available (for example
// xclip or xsel on Linux).
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}
