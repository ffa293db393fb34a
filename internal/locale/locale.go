package locale

import (
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported report languages.
const (
	Polish  = "pl"
	English = "en"
)

// Default is used when the requested language is not supported.
const Default = Polish

var tags = map[string]language.Tag{
	Polish:  language.Polish,
	English: language.English,
}

// cat is read-only after init.
var cat = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Polish))
	for _, e := range entries {
		// SetString only fails for malformed tags.
		_ = b.SetString(language.Polish, string(e.key), e.pl)
		_ = b.SetString(language.English, string(e.key), e.en)
	}
	return b
}

// Supported reports whether lang has a translation.
func Supported(lang string) bool {
	_, ok := tags[lang]
	return ok
}

// Languages returns the supported language codes in a stable order.
func Languages() []string {
	langs := make([]string, 0, len(tags))
	for l := range tags {
		langs = append(langs, l)
	}
	slices.Sort(langs)
	return langs
}

// Printer formats localized messages for one language.
type Printer struct {
	lang    string
	tag     language.Tag
	printer *message.Printer
	upper   cases.Caser
}

// NewPrinter returns a Printer for lang, falling back to Polish.
func NewPrinter(lang string) *Printer {
	tag, ok := tags[lang]
	if !ok {
		lang, tag = Default, tags[Default]
	}
	return &Printer{
		lang:    lang,
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
		upper:   cases.Upper(tag),
	}
}

// Lang returns the effective language code.
func (p *Printer) Lang() string {
	return p.lang
}

// T returns the message for key formatted with args.
// Numbers are formatted for the printer's locale.
func (p *Printer) T(key Key, args ...any) string {
	return p.printer.Sprintf(string(key), args...)
}

// Upper returns the message for key in upper case using the language's
// casing rules, for console section headings.
func (p *Printer) Upper(key Key, args ...any) string {
	return p.upper.String(p.T(key, args...))
}

// YesNo returns the localized yes or no.
func (p *Printer) YesNo(v bool) string {
	if v {
		return p.T(Yes)
	}
	return p.T(No)
}
