package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *TemplateCatalog {
	return &TemplateCatalog{
		Version: 1,
		Languages: map[string]toneCatalog{
			"en": {
				Tones: map[string]reasonCatalog{
					"neutral": {
						Default: "en neutral default for {{reason}}",
						Reasons: map[string]string{
							"poor_performance": "en neutral poor performance for {{driver_name}}",
						},
					},
					"strict": {
						Default: "en strict default",
						Reasons: map[string]string{
							"poor_performance": "en strict poor performance",
						},
					},
				},
			},
			"es": {
				Tones: map[string]reasonCatalog{
					"neutral": {
						Default: "es neutral default",
						Reasons: map[string]string{
							"poor_performance": "es neutral poor performance",
						},
					},
				},
			},
		},
	}
}

func TestResolveExactMatch(t *testing.T) {
	catalog := testCatalog()

	body := catalog.Resolve("es", "neutral", "poor_performance")
	assert.Equal(t, "es neutral poor performance", body)
}

func TestResolveUnsupportedLanguageFallsBackToEnglish(t *testing.T) {
	catalog := testCatalog()

	body := catalog.Resolve("xx", "neutral", "poor_performance")
	assert.Equal(t, "en neutral poor performance for {{driver_name}}", body)
}

func TestResolveUnknownToneFallsBackToNeutral(t *testing.T) {
	catalog := testCatalog()

	body := catalog.Resolve("en", "sarcastic", "poor_performance")
	assert.Equal(t, "en neutral poor performance for {{driver_name}}", body)
}

func TestResolveUnknownReasonFallsBackToToneDefault(t *testing.T) {
	catalog := testCatalog()

	body := catalog.Resolve("en", "neutral", "totally_unknown_reason")
	assert.Equal(t, "en neutral default for {{reason}}", body)
}

func TestResolveFallsBackToBuiltinTemplate(t *testing.T) {
	catalog := &TemplateCatalog{
		Version: 1,
		Languages: map[string]toneCatalog{
			"en": {
				Tones: map[string]reasonCatalog{
					"neutral": {
						Reasons: map[string]string{},
					},
				},
			},
		},
	}

	body := catalog.Resolve("en", "neutral", "unknown")
	assert.Equal(t, fallbackTemplate, body)
}

func TestResolveEmptyInputsUseDefaults(t *testing.T) {
	catalog := testCatalog()

	body := catalog.Resolve("", "", "poor_performance")
	assert.Equal(t, "en neutral poor performance for {{driver_name}}", body)
}

func TestRenderTemplateSubstitutesPlaceholders(t *testing.T) {
	rendered := RenderTemplate("Hello {{driver_name}}, about {{reason}}.", "Maria Lopez", "poor_performance")
	assert.Equal(t, "Hello Maria Lopez, about poor performance.", rendered)
}

func TestLoadTemplateCatalogFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	raw, err := json.Marshal(testCatalog())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	catalog, err := LoadTemplateCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Version)
	assert.Contains(t, catalog.Languages, "en")
}

func TestLoadTemplateCatalogMissingFile(t *testing.T) {
	_, err := LoadTemplateCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
