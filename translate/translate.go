// Package translate formats user-facing messages for the μCircuit bench.
//
// Messages are written as en-US Sprintf() formats and rendered through an
// x/text message printer matched against the user's locales.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// load selects a printer from the system locales.
func load() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("ucircuit: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// SetLanguage overrides the detected locale, ie for --lang on the command line.
func SetLanguage(tag string) (err error) {
	lang, err := language.Parse(tag)
	if err != nil {
		return
	}

	printerOnce.Do(func() {})
	printer = message.NewPrinter(lang)

	return
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	printerOnce.Do(load)
	return printer.Sprintf(key, args...)
}
