// Package catalog loads the embedded message catalogs and exposes them as
// golang.org/x/text printers.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the canonical source locale; every key must exist in it.
const BaseLocale = "en"

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds every locale's messages and the x/text catalog built from them.
type Bundle struct {
	locales map[string]map[string]string
	builder *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
}

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadEmbedded()

// Default returns the process-wide embedded bundle.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalog files embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads catalog files matching locales/*/*.yaml from catalogFS.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale catalogs found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: make(map[string]map[string]string)}
	for _, path := range paths {
		data, err := fs.ReadFile(catalogFS, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := b.addFile(path, file); err != nil {
			return nil, err
		}
	}
	if err := b.checkBaseCoverage(); err != nil {
		return nil, err
	}
	if err := b.build(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) addFile(path string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	namespace := strings.TrimSpace(file.Namespace)
	if locale == "" {
		return fmt.Errorf("%s: locale is required", path)
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("%s: invalid locale %q: %w", path, locale, err)
	}
	if namespace == "" {
		return fmt.Errorf("%s: namespace is required", path)
	}
	messages := b.locales[locale]
	if messages == nil {
		messages = make(map[string]string)
		b.locales[locale] = messages
	}
	for key, value := range file.Messages {
		if !strings.HasPrefix(key, namespace+".") {
			return fmt.Errorf("%s: key %q is outside namespace %q", path, key, namespace)
		}
		if _, exists := messages[key]; exists {
			return fmt.Errorf("%s: duplicate key %q for locale %s", path, key, locale)
		}
		messages[key] = value
	}
	return nil
}

func (b *Bundle) checkBaseCoverage() error {
	base, ok := b.locales[BaseLocale]
	if !ok {
		return fmt.Errorf("base locale %s is missing", BaseLocale)
	}
	for locale, messages := range b.locales {
		for key := range messages {
			if _, ok := base[key]; !ok {
				return fmt.Errorf("locale %s defines %q which is missing from %s", locale, key, BaseLocale)
			}
		}
	}
	return nil
}

func (b *Bundle) build() error {
	builder := catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale)))
	for locale, messages := range b.locales {
		tag := language.MustParse(locale)
		for key, value := range messages {
			if err := builder.SetString(tag, key, value); err != nil {
				return fmt.Errorf("register %s/%s: %w", locale, key, err)
			}
		}
	}
	b.builder = builder

	// The base locale goes first so unmatched tags resolve to it.
	b.tags = []language.Tag{language.MustParse(BaseLocale)}
	for _, locale := range b.Locales() {
		if locale != BaseLocale {
			b.tags = append(b.tags, language.MustParse(locale))
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return nil
}

// HasLocale reports whether locale has a catalog.
func (b *Bundle) HasLocale(locale string) bool {
	_, ok := b.locales[locale]
	return ok
}

// Locales returns the loaded locales in sorted order.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Message returns the raw message for key in locale.
func (b *Bundle) Message(locale string, key string) (string, bool) {
	value, ok := b.locales[locale][key]
	return value, ok
}

// Match resolves the preferred tags to the closest loaded locale, or
// BaseLocale when nothing matches.
func (b *Bundle) Match(preferred ...language.Tag) language.Tag {
	_, idx, _ := b.matcher.Match(preferred...)
	return b.tags[idx]
}

// Printer returns a printer for the loaded locale closest to tag.
func (b *Bundle) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(b.Match(tag), message.Catalog(b.builder))
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(fmt.Sprintf("load embedded catalogs: %v", err))
	}
	return b
}
