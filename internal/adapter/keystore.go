package adapter

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/flutsign/flutsign/internal/logging"
	m "github.com/flutsign/flutsign/internal/model"
)

// DistinguishedName holds the certificate subject fields for a new key.
type DistinguishedName struct {
	CommonName   string
	OrgUnit      string
	Organization string
	Locality     string
	State        string
	Country      string
}

// String renders the DN in the order keytool expects.
func (d DistinguishedName) String() string {
	return fmt.Sprintf("CN=%s, OU=%s, O=%s, L=%s, ST=%s, C=%s",
		d.CommonName, d.OrgUnit, d.Organization, d.Locality, d.State, d.Country)
}

// KeystoreOptions describes a keystore to generate or reuse.
type KeystoreOptions struct {
	Path          m.Path
	Alias         string
	StorePassword string
	KeyPassword   string
	ValidityDays  int
	DName         DistinguishedName
	// Overwrite deletes an existing keystore before generating; without it
	// an existing keystore is reused as-is.
	Overwrite bool
}

// KeystoreGenerator creates release keystores.
type KeystoreGenerator interface {
	Generate(ctx context.Context, opts KeystoreOptions) error
}

// KeytoolGenerator generates keystores by invoking the JDK keytool.
type KeytoolGenerator struct {
	fs     ProjectFS
	runner CommandRunner
	log    logging.Logger
}

// NewKeytoolGenerator constructs a KeytoolGenerator.
func NewKeytoolGenerator(fs ProjectFS, runner CommandRunner, log logging.Logger) *KeytoolGenerator {
	return &KeytoolGenerator{fs: fs, runner: runner, log: log}
}

// Generate creates an RSA 2048 keystore at opts.Path. An existing keystore
// is reused unless opts.Overwrite is set, in which case it is deleted first
// to avoid an alias conflict.
func (g *KeytoolGenerator) Generate(ctx context.Context, opts KeystoreOptions) error {
	if err := validateKeystoreOptions(opts); err != nil {
		return err
	}

	if g.fs.FileExists(opts.Path) {
		if !opts.Overwrite {
			g.log.Infof("using existing keystore at %s", opts.Path)
			return nil
		}

		if err := g.fs.Remove(opts.Path); err != nil {
			return fmt.Errorf("failed to delete existing keystore %s: %w", opts.Path, err)
		}

		g.log.Infof("deleted existing keystore at %s", opts.Path)
	}

	parent := m.Path(filepath.Dir(string(opts.Path)))
	if err := g.fs.MkdirAll(parent, 0o750); err != nil {
		return fmt.Errorf("failed to create keystore directory %s: %w", parent, err)
	}

	args := []string{
		"-genkey", "-v",
		"-keystore", string(opts.Path),
		"-alias", opts.Alias,
		"-keyalg", "RSA",
		"-keysize", "2048",
		"-validity", strconv.Itoa(opts.ValidityDays),
		"-dname", opts.DName.String(),
		"-storepass", opts.StorePassword,
		"-keypass", opts.KeyPassword,
	}

	out, err := g.runner.Run(ctx, "", "keytool", args...)
	if err != nil {
		return fmt.Errorf("keytool failed: %w: %s", err, out)
	}

	// Keystores hold credentials, keep them owner-only.
	if err := g.fs.Chmod(opts.Path, 0o600); err != nil {
		g.log.Warnf("failed to restrict permissions on %s: %v", opts.Path, err)
	}

	g.log.Infof("keystore generated at %s", opts.Path)

	return nil
}

func validateKeystoreOptions(opts KeystoreOptions) error {
	if opts.Path == "" {
		return fmt.Errorf("keystore path is required")
	}

	if opts.StorePassword == "" {
		return fmt.Errorf("keystore password is required")
	}

	if opts.DName.CommonName == "" {
		return fmt.Errorf("name (CN) is required for keystore generation")
	}

	if opts.DName.Locality == "" {
		return fmt.Errorf("locality (L) is required for keystore generation")
	}

	if opts.DName.State == "" {
		return fmt.Errorf("state/province (ST) is required for keystore generation")
	}

	return nil
}
