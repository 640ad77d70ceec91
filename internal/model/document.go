// Package model defines the data structures for build-script patching.
package model

// Path represents a file system path.
type Path string

// Dialect identifies the syntactic flavor of a Gradle build script.
type Dialect string

const (
	// DialectGroovy is the legacy Groovy DSL (build.gradle).
	DialectGroovy Dialect = "groovy"

	// DialectKotlinDSL is a build.gradle.kts file written in idiomatic
	// Kotlin DSL (typed declarations, getByName accessors).
	DialectKotlinDSL Dialect = "kotlin"

	// DialectKotlinHybrid is a build.gradle.kts file whose content still
	// follows the legacy scripting idiom. Common in projects migrated by
	// older generator templates.
	DialectKotlinHybrid Dialect = "kotlin-hybrid"
)

// ScopeSpan identifies the contents of a single `{ ... }` block as a
// half-open [Start, End) range into the document text, exclusive of the
// braces themselves.
type ScopeSpan struct {
	Start int
	End   int
	Inner string
}

// Defaults for SigningConfigSpec fields.
const (
	DefaultConfigName     = "release"
	DefaultPropertiesFile = "key.properties"
)

// SigningConfigSpec describes the signing configuration to inject into a
// build script. It is supplied by the caller and immutable for the duration
// of a patch.
type SigningConfigSpec struct {
	// Name of the generated signing configuration.
	Name string
	// PropertiesFile is the path of the credentials file, relative to the
	// Gradle project root (the android/ directory).
	PropertiesFile string
}

// WithDefaults returns a copy with unset fields filled in.
func (s SigningConfigSpec) WithDefaults() SigningConfigSpec {
	if s.Name == "" {
		s.Name = DefaultConfigName
	}

	if s.PropertiesFile == "" {
		s.PropertiesFile = DefaultPropertiesFile
	}

	return s
}

// BuildScriptDocument is one build script read from disk. It is owned by a
// single patch operation and never shared; it has no existence beyond one
// patch call.
type BuildScriptDocument struct {
	Path Path
	// Dialect may be left empty, in which case the patcher classifies it.
	Dialect Dialect
	Text    string
}

// PatchStatus is the tri-state outcome of a patch operation.
type PatchStatus string

const (
	// StatusAlreadyPresent means the document already carried a signing
	// configuration and was left byte-identical.
	StatusAlreadyPresent PatchStatus = "already-present"

	// StatusApplied means the signing block was inserted and the release
	// variant wired to it.
	StatusApplied PatchStatus = "applied"

	// StatusAppliedWithoutVariantWiring means the signing block was
	// inserted but no release variant block was found to reference it.
	StatusAppliedWithoutVariantWiring PatchStatus = "applied-without-variant-wiring"
)

// PatchOutcome carries the result of one patch operation.
type PatchOutcome struct {
	Status    PatchStatus
	FinalText string
	// BackupPath is set when a .bak snapshot was written alongside the
	// patched file.
	BackupPath Path
}
