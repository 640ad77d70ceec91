package adapter

import (
	"github.com/flutsign/flutsign/internal/logging"
	m "github.com/flutsign/flutsign/internal/model"
)

const backupSuffix = ".bak"

// SafeWriter persists a patched build script with a snapshot of the original
// alongside it, restoring the original from memory if the write fails.
type SafeWriter struct {
	fs  ProjectFS
	log logging.Logger
}

// NewSafeWriter constructs a SafeWriter backed by the provided filesystem.
func NewSafeWriter(fs ProjectFS, log logging.Logger) *SafeWriter {
	return &SafeWriter{fs: fs, log: log}
}

// Write snapshots original to path+".bak", then writes patched to path. The
// backup is best-effort: a failure there is logged as a warning since it
// does not endanger the primary file. A failure writing the primary file
// triggers a restore of the original bytes from memory and returns a
// write-failed error wrapping the cause.
func (w *SafeWriter) Write(path m.Path, original, patched []byte) (m.Path, error) {
	backupPath := m.Path(string(path) + backupSuffix)

	if err := w.fs.WriteFile(backupPath, original, 0o644); err != nil {
		w.log.Warnf("failed to create backup of %s: %v", path, err)

		backupPath = ""
	} else {
		w.log.Debugf("created backup at %s", backupPath)
	}

	if err := w.fs.WriteFile(path, patched, 0o644); err != nil {
		if restoreErr := w.fs.WriteFile(path, original, 0o644); restoreErr != nil {
			w.log.Errorf("failed to restore %s after write error, file is left in an unknown state: %v", path, restoreErr)
		} else {
			w.log.Infof("restored original content of %s after write failure", path)
		}

		return backupPath, m.NewPatchError(m.ErrWriteFailed, path, "failed to write patched build script", err)
	}

	return backupPath, nil
}
