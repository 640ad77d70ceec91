package domain

import (
	"context"
	"fmt"

	"github.com/flutsign/flutsign/internal/adapter"
	"github.com/flutsign/flutsign/internal/logging"
	m "github.com/flutsign/flutsign/internal/model"
)

const (
	androidDirName = "android"
	appDirName     = "app"

	kotlinScriptName = "build.gradle.kts"
	groovyScriptName = "build.gradle"
)

// SignArgs bundles the inputs of a full signing run.
type SignArgs struct {
	ProjectRoot m.Path
	Spec        m.SigningConfigSpec
	Keystore    adapter.KeystoreOptions
	// SkipKeystore reuses whatever keystore the options point at without
	// invoking keytool.
	SkipKeystore bool
	BuildType    string
	SkipBuild    bool
	Verify       bool
	// ReportsDir, when set, receives a YAML report of the run.
	ReportsDir m.Path
}

// Workflow coordinates the signing pipeline against a Flutter project.
type Workflow interface {
	// UpdateBuildScript patches the app-level build script of the project
	// rooted at root. The boolean is false when the operation was skipped
	// because the properties file precondition is not met.
	UpdateBuildScript(root m.Path, spec m.SigningConfigSpec) (m.PatchOutcome, bool, error)

	// Sign runs the full pipeline: dependency check, keystore, properties
	// file, build-script patch, release build, signature verification.
	Sign(ctx context.Context, args SignArgs) (m.RunReport, error)

	// Doctor checks the external tools the pipeline needs.
	Doctor(ctx context.Context) ([]ToolStatus, error)

	// VerifyArtifact verifies the signature of an already-built artifact.
	VerifyArtifact(ctx context.Context, artifact m.Path) error
}

// Deps are the collaborators a workflow needs. Every field is required
// except Reports, which is only used when SignArgs.ReportsDir is set.
type Deps struct {
	FS       adapter.ProjectFS
	Writer   *adapter.SafeWriter
	Runner   adapter.CommandRunner
	Keystore adapter.KeystoreGenerator
	Props    adapter.PropertiesStore
	Builder  adapter.BuildRunner
	Verifier adapter.SignatureVerifier
	Reports  adapter.RunReportStore
	Patcher  Patcher
}

type workflow struct {
	deps Deps
	log  logging.Logger
}

// NewWorkflow creates a Workflow instance with the provided collaborators.
func NewWorkflow(deps Deps, log logging.Logger) Workflow {
	return &workflow{deps: deps, log: log}
}

// UpdateBuildScript patches the app-level build script in place. The
// android/app directory must exist; the properties file must have been
// written first, otherwise the call is a soft no-op. On any fatal error the
// on-disk file is untouched and no backup is created.
func (w *workflow) UpdateBuildScript(root m.Path, spec m.SigningConfigSpec) (m.PatchOutcome, bool, error) {
	spec = spec.WithDefaults()
	fs := w.deps.FS

	androidDir := fs.JoinPath(string(root), androidDirName)
	appDir := fs.JoinPath(string(androidDir), appDirName)

	if !fs.DirExists(appDir) {
		return m.PatchOutcome{}, false, m.NewPatchError(m.ErrMissingProjectStructure, appDir,
			"app directory not found, make sure this is a Flutter project with an android/app directory", nil)
	}

	propsPath := fs.JoinPath(string(androidDir), spec.PropertiesFile)
	if !fs.FileExists(propsPath) {
		w.log.Warnf("%s not found, skipping build script modification", propsPath)

		return m.PatchOutcome{}, false, nil
	}

	scriptPath := fs.JoinPath(string(appDir), kotlinScriptName)
	if !fs.FileExists(scriptPath) {
		scriptPath = fs.JoinPath(string(appDir), groovyScriptName)
	}

	if !fs.FileExists(scriptPath) {
		return m.PatchOutcome{}, false, m.NewPatchError(m.ErrMissingProjectStructure, appDir,
			fmt.Sprintf("neither %s nor %s found", kotlinScriptName, groovyScriptName), nil)
	}

	raw, err := fs.ReadFile(scriptPath)
	if err != nil {
		return m.PatchOutcome{}, false, m.NewPatchError(m.ErrUnreadableFile, scriptPath, "failed to read build script", err)
	}

	doc := m.BuildScriptDocument{Path: scriptPath, Text: string(raw)}

	outcome, err := w.deps.Patcher.Patch(doc, spec)
	if err != nil {
		return m.PatchOutcome{}, false, err
	}

	if outcome.Status == m.StatusAlreadyPresent {
		return outcome, true, nil
	}

	backupPath, err := w.deps.Writer.Write(scriptPath, raw, []byte(outcome.FinalText))
	if err != nil {
		return m.PatchOutcome{}, false, err
	}

	outcome.BackupPath = backupPath
	w.log.Infof("updated %s with signing configuration %q", scriptPath, spec.Name)

	return outcome, true, nil
}

// Sign runs the pipeline steps in order, recording each in the report. The
// first failed step aborts the run; skipped steps are recorded as such.
func (w *workflow) Sign(ctx context.Context, args SignArgs) (m.RunReport, error) {
	args.Spec = args.Spec.WithDefaults()

	report := m.RunReport{
		Project:    args.ProjectRoot,
		ConfigName: args.Spec.Name,
		BuildType:  args.BuildType,
	}

	if _, err := w.Doctor(ctx); err != nil {
		report.AddStep("dependencies", m.StepFailed, err.Error())
		return report, err
	}

	report.AddStep("dependencies", m.StepOK, "")

	if err := w.prepareKeystore(ctx, args, &report); err != nil {
		return report, err
	}

	if err := w.writeProperties(args, &report); err != nil {
		return report, err
	}

	if err := w.patchBuildScript(args, &report); err != nil {
		return report, err
	}

	artifact, err := w.buildArtifact(ctx, args, &report)
	if err != nil {
		return report, err
	}

	report.Artifact = artifact

	if err := w.verifyArtifact(ctx, args, artifact, &report); err != nil {
		return report, err
	}

	w.saveReport(args, &report)

	return report, nil
}

// Doctor checks the external tools the pipeline needs.
func (w *workflow) Doctor(ctx context.Context) ([]ToolStatus, error) {
	return CheckDependencies(ctx, w.deps.Runner)
}

// VerifyArtifact verifies the signature of an already-built artifact.
func (w *workflow) VerifyArtifact(ctx context.Context, artifact m.Path) error {
	return w.deps.Verifier.Verify(ctx, artifact)
}

func (w *workflow) prepareKeystore(ctx context.Context, args SignArgs, report *m.RunReport) error {
	if args.SkipKeystore {
		report.AddStep("keystore", m.StepSkipped, "using existing keystore")
		return nil
	}

	if err := w.deps.Keystore.Generate(ctx, args.Keystore); err != nil {
		report.AddStep("keystore", m.StepFailed, err.Error())
		return err
	}

	report.AddStep("keystore", m.StepOK, string(args.Keystore.Path))

	return nil
}

func (w *workflow) writeProperties(args SignArgs, report *m.RunReport) error {
	androidDir := w.deps.FS.JoinPath(string(args.ProjectRoot), androidDirName)

	path, err := w.deps.Props.WriteKeyProperties(androidDir, args.Spec.PropertiesFile, adapter.KeyProperties{
		StorePassword: args.Keystore.StorePassword,
		KeyPassword:   args.Keystore.KeyPassword,
		KeyAlias:      args.Keystore.Alias,
		StoreFile:     args.Keystore.Path,
	})
	if err != nil {
		report.AddStep("properties", m.StepFailed, err.Error())
		return err
	}

	report.AddStep("properties", m.StepOK, string(path))

	return nil
}

func (w *workflow) patchBuildScript(args SignArgs, report *m.RunReport) error {
	outcome, applied, err := w.UpdateBuildScript(args.ProjectRoot, args.Spec)
	if err != nil {
		report.AddStep("build-script", m.StepFailed, err.Error())
		return err
	}

	if !applied {
		report.AddStep("build-script", m.StepSkipped, "properties file missing")
		return nil
	}

	report.AddStep("build-script", m.StepOK, string(outcome.Status))

	return nil
}

func (w *workflow) buildArtifact(ctx context.Context, args SignArgs, report *m.RunReport) (m.Path, error) {
	if args.SkipBuild {
		report.AddStep("build", m.StepSkipped, "")
		return "", nil
	}

	artifact, err := w.deps.Builder.BuildRelease(ctx, args.ProjectRoot, args.BuildType)
	if err != nil {
		report.AddStep("build", m.StepFailed, err.Error())
		return "", err
	}

	report.AddStep("build", m.StepOK, string(artifact))

	return artifact, nil
}

func (w *workflow) verifyArtifact(ctx context.Context, args SignArgs, artifact m.Path, report *m.RunReport) error {
	if !args.Verify || artifact == "" {
		report.AddStep("verify", m.StepSkipped, "")
		return nil
	}

	if err := w.deps.Verifier.Verify(ctx, artifact); err != nil {
		report.AddStep("verify", m.StepFailed, err.Error())
		return err
	}

	report.Verified = true
	report.AddStep("verify", m.StepOK, "")

	return nil
}

func (w *workflow) saveReport(args SignArgs, report *m.RunReport) {
	if args.ReportsDir == "" || w.deps.Reports == nil {
		return
	}

	path, err := w.deps.Reports.Save(args.ReportsDir, *report)
	if err != nil {
		w.log.Warnf("failed to save run report: %v", err)
		return
	}

	w.log.Infof("run report saved to %s", path)
}
