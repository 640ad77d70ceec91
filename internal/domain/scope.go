package domain

import (
	"fmt"
	"regexp"

	m "github.com/flutsign/flutsign/internal/model"
)

// LocateNamedBlock finds the first `keyword {` anchor in text and returns
// the span of the block contents, exclusive of the braces. The closing
// brace is found with a depth-counted scan, not a regex: a pattern match
// alone cannot bound a block that contains nested braces (a lambda inside
// the block, for example).
//
// Only the first occurrence of the keyword is considered; files with
// several same-named blocks are unsupported.
func LocateNamedBlock(text, keyword string) (m.ScopeSpan, error) {
	pattern := `\b` + regexp.QuoteMeta(keyword) + `\s*\{`

	span, ok := locateByPattern(text, pattern)
	if !ok {
		return m.ScopeSpan{}, fmt.Errorf("%w: %q", m.ErrBlockNotFound, keyword)
	}

	return span, nil
}

// LocateVariantBlock finds the build-variant block for variantName. It first
// tries the bare `name {` form used by the legacy and hybrid dialects, then
// the named-accessor call form (`getByName("name") {` and friends) emitted
// by Kotlin DSL project templates.
func LocateVariantBlock(text, variantName string) (m.ScopeSpan, error) {
	name := regexp.QuoteMeta(variantName)

	patterns := []string{
		`\b` + name + `\s*\{`,
		`(?:getByName|named|create)\(\s*["']` + name + `["']\s*\)\s*\{`,
	}

	for _, pattern := range patterns {
		if span, ok := locateByPattern(text, pattern); ok {
			return span, nil
		}
	}

	return m.ScopeSpan{}, fmt.Errorf("%w: %q", m.ErrVariantBlockNotFound, variantName)
}

// locateByPattern anchors on the first match of pattern (which must end at
// an opening brace) and scans forward for the matching closing brace.
func locateByPattern(text, pattern string) (m.ScopeSpan, bool) {
	loc := regexp.MustCompile(pattern).FindStringIndex(text)
	if loc == nil {
		return m.ScopeSpan{}, false
	}

	open := loc[1] - 1

	end, ok := matchBrace(text, open)
	if !ok {
		return m.ScopeSpan{}, false
	}

	return m.ScopeSpan{Start: open + 1, End: end, Inner: text[open+1 : end]}, true
}

// matchBrace returns the index of the brace closing the one at open.
func matchBrace(text string, open int) (int, bool) {
	depth := 0

	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}
