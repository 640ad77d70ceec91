package domain

import (
	"fmt"

	m "github.com/flutsign/flutsign/internal/model"
)

// groovyBlockTemplate loads the properties file unconditionally and declares
// the signing config with indexed property access, matching the legacy
// scripting idiom. %[1]s is the config name, %[2]s the properties file.
const groovyBlockTemplate = `
    // Load %[2]s file
    def keystorePropertiesFile = rootProject.file("%[2]s")
    def keystoreProperties = new Properties()
    keystoreProperties.load(new FileInputStream(keystorePropertiesFile))

    signingConfigs {
        %[1]s {
            keyAlias keystoreProperties['keyAlias']
            keyPassword keystoreProperties['keyPassword']
            storeFile file(keystoreProperties['storeFile'])
            storePassword keystoreProperties['storePassword']
        }
    }
`

// kotlinHybridBlockTemplate uses Kotlin syntax with direct indexed access,
// for .kts files whose content still follows the legacy idiom.
const kotlinHybridBlockTemplate = `
    // Load %[2]s file
    val keystorePropertiesFile = rootProject.file("%[2]s")
    val keystoreProperties = java.util.Properties()
    keystoreProperties.load(java.io.FileInputStream(keystorePropertiesFile))

    signingConfigs {
        create("%[1]s") {
            keyAlias = keystoreProperties["keyAlias"] as String
            keyPassword = keystoreProperties["keyPassword"] as String
            storeFile = file(keystoreProperties["storeFile"] as String)
            storePassword = keystoreProperties["storePassword"] as String
        }
    }
`

// kotlinDSLBlockTemplate is the idiomatic Kotlin DSL form: the properties
// file load is existence-checked so evaluation survives a missing file, the
// property reads are null-checked, and the store file is resolved relative
// to the project root.
const kotlinDSLBlockTemplate = `
    // Load %[2]s file
    val keystorePropertiesFile = rootProject.file("%[2]s")
    val keystoreProperties = java.util.Properties()
    if (keystorePropertiesFile.exists()) {
        keystorePropertiesFile.inputStream().use { keystoreProperties.load(it) }
    } else {
        logger.warn("%[2]s not found, release signing is not configured")
    }

    signingConfigs {
        create("%[1]s") {
            keyAlias = keystoreProperties["keyAlias"] as String?
            keyPassword = keystoreProperties["keyPassword"] as String?
            storeFile = (keystoreProperties["storeFile"] as String?)?.let { rootProject.file(it) }
            storePassword = keystoreProperties["storePassword"] as String?
        }
    }
`

// RenderFragments produces the two text fragments to insert for the given
// dialect: the top-level signingConfigs block and the single statement that
// wires a build variant to the named configuration. The dialects differ in
// syntax only; all three declare a configuration named spec.Name populated
// from the same four property keys.
func RenderFragments(dialect m.Dialect, spec m.SigningConfigSpec) (signingConfigsBlock, variantConfigLine string) {
	spec = spec.WithDefaults()

	var template string

	switch dialect {
	case m.DialectKotlinDSL:
		template = kotlinDSLBlockTemplate
	case m.DialectKotlinHybrid:
		template = kotlinHybridBlockTemplate
	default:
		template = groovyBlockTemplate
	}

	block := fmt.Sprintf(template, spec.Name, spec.PropertiesFile)
	line := "\n            " + referenceStatement(dialect, spec.Name) + "\n"

	return block, line
}

// referenceStatement renders the signing-config reference in the dialect's
// syntax: property style for Groovy, accessor-call style for both Kotlin
// forms.
func referenceStatement(dialect m.Dialect, name string) string {
	if dialect == m.DialectGroovy {
		return "signingConfig signingConfigs." + name
	}

	return fmt.Sprintf("signingConfig = signingConfigs.getByName(%q)", name)
}
