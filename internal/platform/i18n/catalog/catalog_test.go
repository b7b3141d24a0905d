package catalog

import (
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range []string{"en", "es"} {
		if !bundle.HasLocale(locale) {
			t.Fatalf("expected locale %s", locale)
		}
	}
	if got, _ := bundle.Message("en", "form.email_invalid"); got != "email is not valid" {
		t.Fatalf("en email message = %q", got)
	}
}

func TestEmbeddedLocalesCoverBaseKeys(t *testing.T) {
	bundle := Default()
	for _, locale := range bundle.Locales() {
		for key := range bundle.locales[BaseLocale] {
			if _, ok := bundle.Message(locale, key); !ok {
				t.Fatalf("locale %s is missing %q", locale, key)
			}
		}
	}
}

func TestPrinterFormatsAndFallsBack(t *testing.T) {
	bundle := Default()

	en := bundle.Printer(language.English)
	if got := en.Sprintf("form.accepted", "3"); got != "Form received and processed successfully. ID: 3" {
		t.Fatalf("en accepted = %q", got)
	}

	es := bundle.Printer(language.Spanish)
	if got := es.Sprintf("form.age_out_of_range"); got != "La edad debe estar entre 1 y 150" {
		t.Fatalf("es age = %q", got)
	}
	if got := es.Sprintf("form.internal_error", "boom"); got != "Error interno del servidor: boom" {
		t.Fatalf("es internal = %q", got)
	}

	fr := bundle.Printer(language.French)
	if got := fr.Sprintf("form.first_name_required"); got != "first name is required" {
		t.Fatalf("fallback = %q", got)
	}
}

func TestMatchResolvesRegionalAndUnknownTags(t *testing.T) {
	bundle := Default()
	if got := bundle.Match(language.MustParse("es-MX")); got != language.Spanish {
		t.Fatalf("es-MX matched %v, want es", got)
	}
	if got := bundle.Match(language.Japanese); got != language.English {
		t.Fatalf("ja matched %v, want en", got)
	}
}

func TestLoadFromFSRejectsKeyOutsideNamespace(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en/form.yaml": {Data: []byte(`locale: "en"
namespace: "form"
messages:
  "gateway.bad": "nope"
`)},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected namespace error")
	}
}

func TestLoadFromFSRejectsDuplicateKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en/a.yaml": {Data: []byte(`locale: "en"
namespace: "form"
messages:
  "form.key": "a"
`)},
		"locales/en/b.yaml": {Data: []byte(`locale: "en"
namespace: "form"
messages:
  "form.key": "b"
`)},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/es/form.yaml": {Data: []byte(`locale: "es"
namespace: "form"
messages:
  "form.key": "hola"
`)},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func TestLoadFromFSRejectsKeysMissingFromBase(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en/form.yaml": {Data: []byte(`locale: "en"
namespace: "form"
messages:
  "form.a": "a"
`)},
		"locales/es/form.yaml": {Data: []byte(`locale: "es"
namespace: "form"
messages:
  "form.b": "b"
`)},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Fatal("expected base coverage error")
	}
}

func TestLoadFromFSEmpty(t *testing.T) {
	if _, err := LoadFromFS(fstest.MapFS{}); err == nil {
		t.Fatal("expected error for empty catalog fs")
	}
}
