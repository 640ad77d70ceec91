// Package domain implements the build-script patching pipeline.
package domain

import (
	"strings"

	m "github.com/flutsign/flutsign/internal/model"
)

const kotlinScriptExt = ".kts"

// kotlinDSLMarkers are content markers strongly associated with idiomatic
// Kotlin DSL. A .kts file without any of them was almost certainly written
// in the legacy scripting idiom and only renamed.
var kotlinDSLMarkers = []string{
	"val ",             // immutable typed variable declarations
	"listOf(",          // Kotlin collection construction
	"mutableListOf(",   //
	": String",         // typed property declarations
	`id("`,             // plugins { id("...") } application syntax
	"import java.util", // Kotlin-style qualified imports
}

// ClassifyDialect picks the generation dialect for a build script from its
// extension and content. Files outside the .gradle/.gradle.kts family get
// the fallback dialect (Groovy when unset), matching the historical
// permissive behavior.
func ClassifyDialect(path m.Path, text string, fallback m.Dialect) m.Dialect {
	name := strings.ToLower(string(path))

	switch {
	case strings.HasSuffix(name, kotlinScriptExt):
		for _, marker := range kotlinDSLMarkers {
			if strings.Contains(text, marker) {
				return m.DialectKotlinDSL
			}
		}

		return m.DialectKotlinHybrid
	case strings.HasSuffix(name, ".gradle"):
		return m.DialectGroovy
	}

	if fallback == "" {
		return m.DialectGroovy
	}

	return fallback
}
