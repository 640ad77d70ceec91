package domain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flutsign/flutsign/internal/adapter"
	"github.com/flutsign/flutsign/internal/logging"
	m "github.com/flutsign/flutsign/internal/model"
)

// writeProject lays out a minimal Flutter project in dir and returns the
// build script path.
func writeProject(t *testing.T, dir, scriptName, scriptText string, withProperties bool) m.Path {
	t.Helper()

	appDir := filepath.Join(dir, "android", "app")
	require.NoError(t, os.MkdirAll(appDir, 0o750))

	if withProperties {
		propsPath := filepath.Join(dir, "android", "key.properties")
		require.NoError(t, os.WriteFile(propsPath, []byte("storePassword=secret\n"), 0o600))
	}

	scriptPath := filepath.Join(appDir, scriptName)
	require.NoError(t, os.WriteFile(scriptPath, []byte(scriptText), 0o644))

	return m.Path(scriptPath)
}

func newLocalWorkflow() Workflow {
	fs := adapter.NewLocalProjectFS()
	log := logging.NewNilLogger()

	return NewWorkflow(Deps{
		FS:      fs,
		Writer:  adapter.NewSafeWriter(fs, log),
		Patcher: NewPatcher(log, ""),
	}, log)
}

func TestUpdateBuildScript(t *testing.T) {
	dir := t.TempDir()
	scriptPath := writeProject(t, dir, "build.gradle", groovyScript, true)

	outcome, applied, err := newLocalWorkflow().UpdateBuildScript(m.Path(dir), m.SigningConfigSpec{})

	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, m.StatusApplied, outcome.Status)
	assert.Equal(t, m.Path(string(scriptPath)+".bak"), outcome.BackupPath)

	patched, err := os.ReadFile(string(scriptPath))
	require.NoError(t, err)
	assert.Equal(t, outcome.FinalText, string(patched))
	assert.Contains(t, string(patched), "signingConfig signingConfigs.release")

	// The backup carries the original bytes.
	backup, err := os.ReadFile(string(outcome.BackupPath))
	require.NoError(t, err)
	assert.Equal(t, groovyScript, string(backup))
}

func TestUpdateBuildScriptPrefersKotlinScript(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "build.gradle", groovyScript, true)
	ktsPath := writeProject(t, dir, "build.gradle.kts", kotlinScript, true)

	_, applied, err := newLocalWorkflow().UpdateBuildScript(m.Path(dir), m.SigningConfigSpec{})

	require.NoError(t, err)
	assert.True(t, applied)

	patched, err := os.ReadFile(string(ktsPath))
	require.NoError(t, err)
	assert.Contains(t, string(patched), `signingConfig = signingConfigs.getByName("release")`)
}

func TestUpdateBuildScriptMissingAppDir(t *testing.T) {
	dir := t.TempDir()

	_, applied, err := newLocalWorkflow().UpdateBuildScript(m.Path(dir), m.SigningConfigSpec{})

	require.Error(t, err)
	assert.False(t, applied)
	assert.True(t, m.IsKind(err, m.ErrMissingProjectStructure))

	var patchErr *m.PatchError
	require.ErrorAs(t, err, &patchErr)
	assert.NotEmpty(t, patchErr.Path)
}

func TestUpdateBuildScriptSkipsWithoutProperties(t *testing.T) {
	dir := t.TempDir()
	scriptPath := writeProject(t, dir, "build.gradle", groovyScript, false)

	_, applied, err := newLocalWorkflow().UpdateBuildScript(m.Path(dir), m.SigningConfigSpec{})

	require.NoError(t, err)
	assert.False(t, applied)

	unchanged, err := os.ReadFile(string(scriptPath))
	require.NoError(t, err)
	assert.Equal(t, groovyScript, string(unchanged))
}

func TestUpdateBuildScriptMissingScript(t *testing.T) {
	dir := t.TempDir()
	appDir := filepath.Join(dir, "android", "app")
	require.NoError(t, os.MkdirAll(appDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "android", "key.properties"), []byte("storePassword=secret\n"), 0o600))

	_, _, err := newLocalWorkflow().UpdateBuildScript(m.Path(dir), m.SigningConfigSpec{})

	require.Error(t, err)
	assert.True(t, m.IsKind(err, m.ErrMissingProjectStructure))
}

func TestUpdateBuildScriptFatalErrorLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	text := "dependencies {\n}\n"
	scriptPath := writeProject(t, dir, "build.gradle", text, true)

	_, _, err := newLocalWorkflow().UpdateBuildScript(m.Path(dir), m.SigningConfigSpec{})

	require.Error(t, err)
	assert.True(t, m.IsKind(err, m.ErrMissingOuterBlock))

	unchanged, readErr := os.ReadFile(string(scriptPath))
	require.NoError(t, readErr)
	assert.Equal(t, text, string(unchanged))

	_, statErr := os.Stat(string(scriptPath) + ".bak")
	assert.True(t, os.IsNotExist(statErr), "no backup on a fatal patch error")
}

func TestUpdateBuildScriptRerunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	scriptPath := writeProject(t, dir, "build.gradle", groovyScript, true)
	wf := newLocalWorkflow()

	first, applied, err := wf.UpdateBuildScript(m.Path(dir), m.SigningConfigSpec{})
	require.NoError(t, err)
	require.True(t, applied)

	second, applied, err := wf.UpdateBuildScript(m.Path(dir), m.SigningConfigSpec{})

	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, m.StatusAlreadyPresent, second.Status)
	assert.Empty(t, second.BackupPath, "no write, so no new backup")

	patched, err := os.ReadFile(string(scriptPath))
	require.NoError(t, err)
	assert.Equal(t, first.FinalText, string(patched))
}

// Stub collaborators for exercising the Sign pipeline without external tools.

type stubKeystore struct {
	err   error
	calls int
}

func (s *stubKeystore) Generate(context.Context, adapter.KeystoreOptions) error {
	s.calls++
	return s.err
}

type stubProps struct {
	path m.Path
	err  error
}

func (s *stubProps) WriteKeyProperties(m.Path, string, adapter.KeyProperties) (m.Path, error) {
	return s.path, s.err
}

type stubBuilder struct {
	artifact m.Path
	err      error
}

func (s *stubBuilder) BuildRelease(context.Context, m.Path, string) (m.Path, error) {
	return s.artifact, s.err
}

type stubVerifier struct {
	err   error
	calls int
}

func (s *stubVerifier) Verify(context.Context, m.Path) error {
	s.calls++
	return s.err
}

type stubReports struct {
	saved []m.RunReport
}

func (s *stubReports) Save(_ m.Path, report m.RunReport) (m.Path, error) {
	s.saved = append(s.saved, report)
	return "reports/signing-run.yaml", nil
}

func allToolsRunner() *stubRunner {
	return &stubRunner{found: map[string]string{
		"flutter":   "/usr/bin/flutter",
		"keytool":   "/usr/bin/keytool",
		"apksigner": "/usr/bin/apksigner",
	}}
}

func TestSignPipeline(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "build.gradle", groovyScript, true)

	fs := adapter.NewLocalProjectFS()
	log := logging.NewNilLogger()
	keystore := &stubKeystore{}
	verifier := &stubVerifier{}
	reports := &stubReports{}

	wf := NewWorkflow(Deps{
		FS:       fs,
		Writer:   adapter.NewSafeWriter(fs, log),
		Runner:   allToolsRunner(),
		Keystore: keystore,
		Props:    &stubProps{path: "android/key.properties"},
		Builder:  &stubBuilder{artifact: "build/app-release.apk"},
		Verifier: verifier,
		Reports:  reports,
		Patcher:  NewPatcher(log, ""),
	}, log)

	report, err := wf.Sign(context.Background(), SignArgs{
		ProjectRoot: m.Path(dir),
		BuildType:   adapter.BuildTypeAPK,
		Verify:      true,
		ReportsDir:  "reports",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, keystore.calls)
	assert.Equal(t, 1, verifier.calls)
	assert.True(t, report.Verified)
	assert.Equal(t, m.Path("build/app-release.apk"), report.Artifact)
	require.Len(t, reports.saved, 1)

	names := make([]string, 0, len(report.Steps))
	for _, step := range report.Steps {
		names = append(names, step.Name)
		assert.NotEqual(t, m.StepFailed, step.Status, step.Name)
	}

	assert.Equal(t, []string{"dependencies", "keystore", "properties", "build-script", "build", "verify"}, names)
}

func TestSignAbortsOnMissingDependencies(t *testing.T) {
	log := logging.NewNilLogger()
	keystore := &stubKeystore{}

	wf := NewWorkflow(Deps{
		Runner:   &stubRunner{found: map[string]string{}},
		Keystore: keystore,
	}, log)

	report, err := wf.Sign(context.Background(), SignArgs{ProjectRoot: "project"})

	require.Error(t, err)
	assert.Equal(t, 0, keystore.calls)
	require.Len(t, report.Steps, 1)
	assert.Equal(t, m.StepFailed, report.Steps[0].Status)
	assert.True(t, report.Failed())
}

func TestSignSkipsKeystoreAndBuild(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "build.gradle", groovyScript, true)

	fs := adapter.NewLocalProjectFS()
	log := logging.NewNilLogger()
	keystore := &stubKeystore{}
	verifier := &stubVerifier{}

	wf := NewWorkflow(Deps{
		FS:       fs,
		Writer:   adapter.NewSafeWriter(fs, log),
		Runner:   allToolsRunner(),
		Keystore: keystore,
		Props:    &stubProps{path: "android/key.properties"},
		Builder:  &stubBuilder{err: fmt.Errorf("must not be called")},
		Verifier: verifier,
		Patcher:  NewPatcher(log, ""),
	}, log)

	report, err := wf.Sign(context.Background(), SignArgs{
		ProjectRoot:  m.Path(dir),
		SkipKeystore: true,
		SkipBuild:    true,
		Verify:       true,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, keystore.calls)
	// No artifact, so verification is skipped too.
	assert.Equal(t, 0, verifier.calls)
	assert.False(t, report.Verified)

	for _, step := range report.Steps {
		if step.Name == "keystore" || step.Name == "build" || step.Name == "verify" {
			assert.Equal(t, m.StepSkipped, step.Status, step.Name)
		}
	}
}

func TestSignRecordsBuildFailure(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "build.gradle", groovyScript, true)

	fs := adapter.NewLocalProjectFS()
	log := logging.NewNilLogger()

	wf := NewWorkflow(Deps{
		FS:       fs,
		Writer:   adapter.NewSafeWriter(fs, log),
		Runner:   allToolsRunner(),
		Keystore: &stubKeystore{},
		Props:    &stubProps{path: "android/key.properties"},
		Builder:  &stubBuilder{err: fmt.Errorf("gradle task assembleRelease failed")},
		Verifier: &stubVerifier{},
		Patcher:  NewPatcher(log, ""),
	}, log)

	report, err := wf.Sign(context.Background(), SignArgs{
		ProjectRoot: m.Path(dir),
		BuildType:   adapter.BuildTypeAPK,
	})

	require.Error(t, err)
	assert.True(t, report.Failed())

	last := report.Steps[len(report.Steps)-1]
	assert.Equal(t, "build", last.Name)
	assert.Equal(t, m.StepFailed, last.Status)
	assert.Contains(t, last.Detail, "assembleRelease")
}

func TestVerifyArtifactDelegates(t *testing.T) {
	verifier := &stubVerifier{err: fmt.Errorf("DOES NOT VERIFY")}

	wf := NewWorkflow(Deps{Verifier: verifier}, logging.NewNilLogger())

	err := wf.VerifyArtifact(context.Background(), "app-release.apk")

	require.Error(t, err)
	assert.Equal(t, 1, verifier.calls)
}
