package adapter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/flutsign/flutsign/internal/logging"
	m "github.com/flutsign/flutsign/internal/model"
)

// KeyProperties holds the four credentials the build script reads at
// evaluation time.
type KeyProperties struct {
	StorePassword string
	KeyPassword   string
	KeyAlias      string
	StoreFile     m.Path
}

// PropertiesStore writes the key-value credentials file into the android
// directory of a project.
type PropertiesStore interface {
	WriteKeyProperties(androidDir m.Path, fileName string, props KeyProperties) (m.Path, error)
}

// LocalPropertiesStore is the disk-backed PropertiesStore.
type LocalPropertiesStore struct {
	fs  ProjectFS
	log logging.Logger
}

// NewLocalPropertiesStore constructs a LocalPropertiesStore.
func NewLocalPropertiesStore(fs ProjectFS, log logging.Logger) *LocalPropertiesStore {
	return &LocalPropertiesStore{fs: fs, log: log}
}

// WriteKeyProperties writes the properties file with owner-only permissions.
// The store file path is rewritten relative to the android directory with
// forward slashes so the generated script stays portable.
func (s *LocalPropertiesStore) WriteKeyProperties(androidDir m.Path, fileName string, props KeyProperties) (m.Path, error) {
	if !s.fs.DirExists(androidDir) {
		return "", m.NewPatchError(m.ErrMissingProjectStructure, androidDir, "android directory not found", nil)
	}

	storeFile, err := s.fs.RelPath(androidDir, m.Path(absOrSelf(string(props.StoreFile))))
	if err != nil {
		// Different drives on Windows; fall back to the absolute path.
		s.log.Warnf("using absolute keystore path in %s: %v", fileName, err)

		storeFile = props.StoreFile
	}

	content := fmt.Sprintf("storePassword=%s\nkeyPassword=%s\nkeyAlias=%s\nstoreFile=%s\n",
		props.StorePassword,
		props.KeyPassword,
		props.KeyAlias,
		strings.ReplaceAll(string(storeFile), string(filepath.Separator), "/"),
	)

	path := s.fs.JoinPath(string(androidDir), fileName)

	if err := s.fs.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.log.Infof("created %s", path)

	return path, nil
}

func absOrSelf(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return abs
}
