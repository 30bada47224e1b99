package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"fleetpulse/internal/utils"
)

// fallbackTemplate is the last resort when the catalog has no usable
// entry at all.
const fallbackTemplate = "Hello {{driver_name}}, this is a notice from your fleet manager regarding {{reason}}. Please review your recent activity."

// TemplateCatalog is the versioned, file-backed catalog of alert
// scripts, keyed by language, then tone, then reason. Lookups fall back
// level by level: unknown language to English, unknown tone to neutral,
// unknown reason to the tone's default, and finally to a built-in
// template.
type TemplateCatalog struct {
	Version   int                        `json:"version"`
	Languages map[string]toneCatalog     `json:"languages"`
}

type toneCatalog struct {
	Tones map[string]reasonCatalog `json:"tones"`
}

type reasonCatalog struct {
	Default string            `json:"default"`
	Reasons map[string]string `json:"reasons"`
}

// LoadTemplateCatalog reads the catalog from a JSON file.
func LoadTemplateCatalog(path string) (*TemplateCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template catalog: %w", err)
	}

	var catalog TemplateCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse template catalog: %w", err)
	}

	return &catalog, nil
}

// Resolve finds the best template for a language, tone and reason.
func (c *TemplateCatalog) Resolve(language, tone, reason string) string {
	if language == "" {
		language = utils.DefaultLanguage
	}
	if tone == "" {
		tone = utils.DefaultTone
	}

	lang, ok := c.Languages[language]
	if !ok {
		lang, ok = c.Languages[utils.DefaultLanguage]
		if !ok {
			return fallbackTemplate
		}
	}

	tones, ok := lang.Tones[tone]
	if !ok {
		tones, ok = lang.Tones[utils.DefaultTone]
		if !ok {
			return fallbackTemplate
		}
	}

	if body, ok := tones.Reasons[reason]; ok {
		return body
	}
	if tones.Default != "" {
		return tones.Default
	}
	return fallbackTemplate
}

// Render substitutes the placeholders a template may carry.
func RenderTemplate(body, driverName, reason string) string {
	rendered := strings.ReplaceAll(body, "{{driver_name}}", driverName)
	rendered = strings.ReplaceAll(rendered, "{{reason}}", strings.ReplaceAll(reason, "_", " "))
	return rendered
}
