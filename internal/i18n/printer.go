// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package i18n provides locale-aware printers for operator-facing output.
package i18n

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Supported lists the languages the CLI has catalogs for.
var Supported = []language.Tag{
	language.English,
}

var matcher = language.NewMatcher(Supported)

// MatchLanguage picks the best supported tag for a POSIX locale string
// such as "de_DE.UTF-8" or an Accept-Language style list.
func MatchLanguage(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	tag, _, _ := matcher.Match(tags...)
	return tag
}

// NewPrinter returns a printer for the given language.
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// NewCLIPrinter returns a printer for the locale in the environment
// (LC_ALL, LC_MESSAGES, LANG in that order).
func NewCLIPrinter() *message.Printer {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return NewPrinter(MatchLanguage(v))
		}
	}
	return NewPrinter(language.English)
}
