package newsmaker

import (
	"encoding/json"
	"fmt"
)

const (
	// DefaultSection always exists in a registry, even when no preset
	// targets it.
	DefaultSection = "NEWS"

	// ImageTag is the image pseudo-tag. It is never filled by the user;
	// Field.Render expands it from the image URL value and the format's
	// image fragment.
	ImageTag = "NEWS_IMAGE"

	// ImageURLTag is the language-invariant tag holding the image URL.
	ImageURLTag = "NEWS_IMAGE_URL"
)

// Format holds everything the document needs beyond the fields
// themselves: the base template with its section placeholders, the
// template of a freshly created field, the image fragment, the configured
// presets and the ordered language list. A format is loaded once per
// session and replaced wholesale when a different configuration is
// opened.
type Format struct {
	Base                 string
	DefaultFieldTemplate string
	ImageFragment        string
	Presets              []*Preset
	Languages            []string
}

// ResolveFunc reads the content of a template file referenced by a
// configuration document. It is supplied by the caller; the engine itself
// never touches the filesystem and never reports I/O errors of its own.
type ResolveFunc func(path string) (string, error)

// formatConfig mirrors the configuration source document. Template
// content is given either inline or as a file path resolved through a
// ResolveFunc.
type formatConfig struct {
	BaseTemplate                string         `json:"baseTemplate"`
	BaseFilePath                string         `json:"baseFilePath"`
	DefaultFieldTemplate        string         `json:"defaultFieldTemplate"`
	DefaultNewsTemplateFilePath string         `json:"defaultNewsTemplateFilePath"`
	ImageFragment               string         `json:"imageFragment"`
	ImgFilePath                 string         `json:"imgFilePath"`
	Languages                   []string       `json:"languages"`
	Presets                     []presetConfig `json:"presets"`
}

type presetConfig struct {
	Name         string                     `json:"name"`
	SectionTag   string                     `json:"sectionTag"`
	Template     string                     `json:"template"`
	TemplateFile string                     `json:"templateFile"`
	Parameters   map[string]json.RawMessage `json:"parameters"`
}

// ParseFormat decodes a configuration source document. A preset parameter
// given as a single string becomes a language-invariant tag; one given as
// a list becomes a language-variant tag whose values map positionally
// onto the configured languages. Languages are deduplicated, keeping
// first occurrence order.
func ParseFormat(data []byte, resolve ResolveFunc) (*Format, error) {
	var cfg formatConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	if len(cfg.Languages) == 0 {
		return nil, fmt.Errorf("parse configuration: no languages configured")
	}

	base, err := resolveText(cfg.BaseTemplate, cfg.BaseFilePath, resolve)
	if err != nil {
		return nil, fmt.Errorf("base template: %w", err)
	}
	defaultTemplate, err := resolveText(cfg.DefaultFieldTemplate, cfg.DefaultNewsTemplateFilePath, resolve)
	if err != nil {
		return nil, fmt.Errorf("default field template: %w", err)
	}
	imageFragment, err := resolveText(cfg.ImageFragment, cfg.ImgFilePath, resolve)
	if err != nil {
		return nil, fmt.Errorf("image fragment: %w", err)
	}

	format := &Format{
		Base:                 base,
		DefaultFieldTemplate: defaultTemplate,
		ImageFragment:        imageFragment,
		Languages:            dedupe(cfg.Languages),
	}

	for _, pc := range cfg.Presets {
		template, err := resolveText(pc.Template, pc.TemplateFile, resolve)
		if err != nil {
			return nil, fmt.Errorf("preset %q template: %w", pc.Name, err)
		}
		parameters, err := parseParameters(pc.Parameters)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", pc.Name, err)
		}
		format.Presets = append(format.Presets, &Preset{
			Name:       pc.Name,
			Template:   template,
			SectionTag: pc.SectionTag,
			Parameters: parameters,
		})
	}
	return format, nil
}

// parseParameters turns the raw tag-name-to-value mapping into typed
// tags: a bare string means a single shared value, a string list means
// one value per language.
func parseParameters(raw map[string]json.RawMessage) (map[Tag][]string, error) {
	if raw == nil {
		return map[Tag][]string{}, nil
	}
	parameters := make(map[Tag][]string, len(raw))
	for name, value := range raw {
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			parameters[NewTag(name)] = []string{single}
			continue
		}
		var list []string
		if err := json.Unmarshal(value, &list); err != nil {
			return nil, fmt.Errorf("parameter %q: expected string or list of strings", name)
		}
		parameters[NewVariantTag(name)] = list
	}
	return parameters, nil
}

func resolveText(inline, path string, resolve ResolveFunc) (string, error) {
	if inline != "" || path == "" {
		return inline, nil
	}
	if resolve == nil {
		return "", fmt.Errorf("file path %q given but no resolver supplied", path)
	}
	return resolve(path)
}

func dedupe(languages []string) []string {
	seen := make(map[string]bool, len(languages))
	out := make([]string, 0, len(languages))
	for _, l := range languages {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
