// Package translate formats user visible messages for the current locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	tag     language.Tag
	printer *message.Printer
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("sigma16: locale: %v", err)
	}

	SetLocales(locales...)
}

// SetLocales selects the message language from BCP 47 tags, in order of
// preference. The first tag that parses wins; none selects en-US.
//
// SetLocales is not safe to call while messages are being formatted.
func SetLocales(locales ...string) {
	tag = language.AmericanEnglish
	for _, name := range locales {
		parsed, err := language.Parse(name)
		if err == nil {
			tag = parsed
			break
		}
	}

	printer = message.NewPrinter(tag)
}

// Locale returns the language messages are formatted for.
func Locale() language.Tag {
	return tag
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
