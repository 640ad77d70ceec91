package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/flutsign/flutsign/internal/logging"
	m "github.com/flutsign/flutsign/internal/model"
)

const (
	androidBlockKeyword = "android"
	releaseVariant      = "release"
)

// signingConfigsPresent matches the marker the generator itself produces, so
// a patched document short-circuits on re-run.
var signingConfigsPresent = regexp.MustCompile(`signingConfigs\s*\{`)

// debugReferencePatterns match a variant already wired to the debug signing
// config, per dialect reference syntax.
var (
	groovyDebugReference = regexp.MustCompile(`signingConfig\s+signingConfigs\.debug\b`)
	kotlinDebugReference = regexp.MustCompile(`signingConfig\s*=\s*signingConfigs\.getByName\(\s*["']debug["']\s*\)`)
)

// templateCommentLines match the placeholder comments project generators
// leave in the release block; they are dropped once real signing is wired.
var templateCommentLines = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^[ \t]*//.*Add your own signing config.*\r?\n?`),
	regexp.MustCompile(`(?m)^[ \t]*//.*Signing with the debug keys.*\r?\n?`),
}

// Patcher applies a signing configuration to a build script document, in
// memory. Persistence is the caller's concern.
type Patcher interface {
	Patch(doc m.BuildScriptDocument, spec m.SigningConfigSpec) (m.PatchOutcome, error)
}

type patcher struct {
	log             logging.Logger
	fallbackDialect m.Dialect
}

// NewPatcher constructs a Patcher. fallbackDialect applies to files with an
// unrecognized extension; empty means Groovy.
func NewPatcher(log logging.Logger, fallbackDialect m.Dialect) Patcher {
	return &patcher{log: log, fallbackDialect: fallbackDialect}
}

// Patch runs the pipeline: idempotency check, classify, locate, generate,
// splice. The document is patched at most once per invocation and the
// returned text equals the input outside the inserted/modified spans.
//
// The variant block is located before the signing block is spliced in, and
// the splices are applied back-to-front. Locating first means the generated
// block (which itself contains a block named after the config) can never
// satisfy the variant search; splicing back-to-front keeps both spans valid.
func (p *patcher) Patch(doc m.BuildScriptDocument, spec m.SigningConfigSpec) (outcome m.PatchOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = m.NewPatchError(m.ErrInternal, doc.Path, fmt.Sprintf("unexpected failure while patching: %v", r), nil)
		}
	}()

	spec = spec.WithDefaults()

	if signingConfigsPresent.MatchString(doc.Text) {
		p.log.Infof("signing configuration already present in %s, skipping modification", doc.Path)

		return m.PatchOutcome{Status: m.StatusAlreadyPresent, FinalText: doc.Text}, nil
	}

	dialect := doc.Dialect
	if dialect == "" {
		dialect = ClassifyDialect(doc.Path, doc.Text, p.fallbackDialect)
	}

	androidSpan, err := LocateNamedBlock(doc.Text, androidBlockKeyword)
	if err != nil {
		return m.PatchOutcome{}, m.NewPatchError(m.ErrMissingOuterBlock, doc.Path, "could not find the android block", err)
	}

	block, variantLine := RenderFragments(dialect, spec)

	text := doc.Text
	status := m.StatusApplied

	variantSpan, variantErr := LocateVariantBlock(androidSpan.Inner, releaseVariant)
	if variantErr != nil {
		p.log.Warnf("could not find the %s block in %s, signing config is declared but not referenced", releaseVariant, doc.Path)

		status = m.StatusAppliedWithoutVariantWiring
	} else {
		start := androidSpan.Start + variantSpan.Start
		end := androidSpan.Start + variantSpan.End
		text = text[:start] + p.wireVariant(dialect, variantSpan.Inner, spec.Name, variantLine) + text[end:]
	}

	// Insert the signingConfigs block immediately after the android block's
	// opening brace. This offset precedes the variant splice, so it is
	// applied last.
	text = text[:androidSpan.Start] + block + text[androidSpan.Start:]

	return m.PatchOutcome{Status: status, FinalText: text}, nil
}

// wireVariant rewrites the variant block contents to reference the named
// signing configuration. An existing debug reference is redirected; an
// unrelated existing reference is left alone; otherwise the wiring statement
// is appended. Placeholder template comments are stripped either way.
func (p *patcher) wireVariant(dialect m.Dialect, inner, name, variantLine string) string {
	for _, comment := range templateCommentLines {
		inner = comment.ReplaceAllString(inner, "")
	}

	if strings.Contains(inner, "signingConfig") {
		pattern := kotlinDebugReference
		if dialect == m.DialectGroovy {
			pattern = groovyDebugReference
		}

		return pattern.ReplaceAllString(inner, referenceStatement(dialect, name))
	}

	return inner + variantLine
}
