// Package i18n resolves request locales against the embedded catalogs and
// carries them across the gateway-to-service hop.
package i18n

import (
	"context"
	"net/http"
	"strings"

	"github.com/louisbranch/formrelay/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"google.golang.org/grpc/metadata"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// MetadataLocale is the gRPC metadata key carrying the caller's locale.
	MetadataLocale = "accept-language"
)

// Default returns the default language tag.
func Default() language.Tag {
	return language.MustParse(catalog.BaseLocale)
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return catalog.Default().Printer(tag)
}

// ParseAcceptLanguage resolves an Accept-Language value to a supported tag.
func ParseAcceptLanguage(value string) language.Tag {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default()
	}
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(tags) == 0 {
		return Default()
	}
	return catalog.Default().Match(tags...)
}

// ResolveTag picks the request language from ?lang= and then Accept-Language.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}
	if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
		if tag, err := language.Parse(langValue); err == nil {
			return catalog.Default().Match(tag)
		}
	}
	return ParseAcceptLanguage(r.Header.Get("Accept-Language"))
}

// OutgoingContext attaches tag to outgoing gRPC metadata.
func OutgoingContext(ctx context.Context, tag language.Tag) context.Context {
	return metadata.AppendToOutgoingContext(ctx, MetadataLocale, tag.String())
}

// TagFromIncomingContext reads the caller's locale from incoming gRPC metadata.
func TagFromIncomingContext(ctx context.Context) language.Tag {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return Default()
	}
	values := md.Get(MetadataLocale)
	if len(values) == 0 {
		return Default()
	}
	return ParseAcceptLanguage(values[0])
}
