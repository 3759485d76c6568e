package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// outputWriter writes rendered output to its destination. Output goes to
// a temporary file in the same directory followed by a rename, so a
// concurrent reader never sees a partially written file.
type outputWriter struct {
	path string
}

// write stores out at the destination unless it matches prev byte for
// byte. A nil prev means nothing has been written yet this process; the
// destination is then written unconditionally. Reports whether a write
// happened.
func (w *outputWriter) write(out string, prev *string) (bool, error) {
	if prev != nil && *prev == out {
		return false, nil
	}

	// keep whatever permissions an operator set on the existing file
	mode := os.FileMode(0644)
	if info, err := os.Stat(w.path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*")
	if err != nil {
		return false, fmt.Errorf("could not create temporary file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(out); err != nil {
		tmp.Close()
		return false, fmt.Errorf("could not write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return false, fmt.Errorf("could not chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("could not close %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), w.path); err != nil {
		return false, fmt.Errorf("could not replace %s: %w", w.path, err)
	}

	return true, nil
}
