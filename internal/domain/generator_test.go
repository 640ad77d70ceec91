package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/flutsign/flutsign/internal/model"
)

func TestRenderFragmentsGroovy(t *testing.T) {
	block, line := RenderFragments(m.DialectGroovy, m.SigningConfigSpec{Name: "production", PropertiesFile: "prod.properties"})

	assert.Contains(t, block, `rootProject.file("prod.properties")`)
	assert.Contains(t, block, "production {")
	assert.Contains(t, block, "keyAlias keystoreProperties['keyAlias']")
	assert.Contains(t, block, "storeFile file(keystoreProperties['storeFile'])")
	assert.Contains(t, line, "signingConfig signingConfigs.production")
}

func TestRenderFragmentsKotlinHybrid(t *testing.T) {
	block, line := RenderFragments(m.DialectKotlinHybrid, m.SigningConfigSpec{})

	assert.Contains(t, block, `rootProject.file("key.properties")`)
	assert.Contains(t, block, `create("release") {`)
	assert.Contains(t, block, `keystoreProperties["keyAlias"] as String`)
	// The hybrid form loads unconditionally, like the legacy template.
	assert.NotContains(t, block, "exists()")
	assert.Contains(t, line, `signingConfig = signingConfigs.getByName("release")`)
}

func TestRenderFragmentsKotlinDSL(t *testing.T) {
	block, line := RenderFragments(m.DialectKotlinDSL, m.SigningConfigSpec{Name: "staging"})

	assert.Contains(t, block, "if (keystorePropertiesFile.exists())")
	assert.Contains(t, block, "logger.warn")
	assert.Contains(t, block, `create("staging") {`)
	assert.Contains(t, block, `keystoreProperties["keyAlias"] as String?`)
	assert.Contains(t, block, `(keystoreProperties["storeFile"] as String?)?.let { rootProject.file(it) }`)
	assert.Contains(t, line, `signingConfig = signingConfigs.getByName("staging")`)
}

func TestRenderFragmentsDeclaresSigningConfigs(t *testing.T) {
	// Every dialect's block carries the idempotency marker a re-run keys on.
	for _, dialect := range []m.Dialect{m.DialectGroovy, m.DialectKotlinHybrid, m.DialectKotlinDSL} {
		block, _ := RenderFragments(dialect, m.SigningConfigSpec{})

		assert.Regexp(t, `signingConfigs\s*\{`, block, "dialect %s", dialect)
	}
}
