package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/flutsign/flutsign/internal/model"
)

func TestClassifyDialect(t *testing.T) {
	tests := []struct {
		name     string
		path     m.Path
		text     string
		fallback m.Dialect
		expected m.Dialect
	}{
		{
			name:     "groovy extension",
			path:     "android/app/build.gradle",
			text:     "android {\n}\n",
			expected: m.DialectGroovy,
		},
		{
			name:     "kts with val declaration",
			path:     "android/app/build.gradle.kts",
			text:     "val flutterRoot = project.extra[\"flutterRoot\"]\nandroid {\n}\n",
			expected: m.DialectKotlinDSL,
		},
		{
			name:     "kts with plugin id syntax",
			path:     "android/app/build.gradle.kts",
			text:     "plugins {\n    id(\"com.android.application\")\n}\nandroid {\n}\n",
			expected: m.DialectKotlinDSL,
		},
		{
			name:     "kts with java util import",
			path:     "android/app/build.gradle.kts",
			text:     "import java.util.Properties\nandroid {\n}\n",
			expected: m.DialectKotlinDSL,
		},
		{
			name:     "kts without kotlin markers is hybrid",
			path:     "android/app/build.gradle.kts",
			text:     "def localProperties = new Properties()\nandroid {\n}\n",
			expected: m.DialectKotlinHybrid,
		},
		{
			name:     "uppercase extension",
			path:     "android/app/BUILD.GRADLE",
			text:     "android {\n}\n",
			expected: m.DialectGroovy,
		},
		{
			name:     "unknown extension defaults to groovy",
			path:     "android/app/build.txt",
			text:     "android {\n}\n",
			expected: m.DialectGroovy,
		},
		{
			name:     "unknown extension honors fallback",
			path:     "android/app/build.txt",
			text:     "android {\n}\n",
			fallback: m.DialectKotlinHybrid,
			expected: m.DialectKotlinHybrid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyDialect(tt.path, tt.text, tt.fallback))
		})
	}
}
