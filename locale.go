package csvtable

import (
	"golang.org/x/text/language"
)

// isoLayouts are tried for every locale before the locale specific layouts
var isoLayouts = []string{
	// ISO8601 formats with timezone
	"2006-01-02T15:04:05Z07:00",
	// ISO8601 formats without timezone
	"2006-01-02T15:04:05",
	// ISO8601 date and time with space
	"2006-01-02 15:04:05",
	// ISO8601 date only
	"2006-01-02",
}

// localeSymbols holds the number and date conventions of a locale
type localeSymbols struct {
	decimal rune
	groups  []rune
	// dateLayouts are short date layouts; time variants are derived from them
	dateLayouts []string
	// twelveHour adds "3:04:05 PM" style variants
	twelveHour bool
}

var (
	invariantSymbols = localeSymbols{
		decimal:     '.',
		groups:      []rune{','},
		dateLayouts: []string{"1/2/2006"},
	}
	englishUSSymbols = localeSymbols{
		decimal:     '.',
		groups:      []rune{','},
		dateLayouts: []string{"1/2/2006"},
		twelveHour:  true,
	}
	englishUKSymbols = localeSymbols{
		decimal:     '.',
		groups:      []rune{','},
		dateLayouts: []string{"2/1/2006"},
	}
	dotGroupSymbols = localeSymbols{
		decimal:     ',',
		groups:      []rune{'.'},
		dateLayouts: []string{"2.1.2006"},
	}
	slashDotGroupSymbols = localeSymbols{
		decimal:     ',',
		groups:      []rune{'.'},
		dateLayouts: []string{"2/1/2006"},
	}
	dutchSymbols = localeSymbols{
		decimal:     ',',
		groups:      []rune{'.'},
		dateLayouts: []string{"2-1-2006"},
	}
	spaceGroupSymbols = localeSymbols{
		decimal:     ',',
		groups:      []rune{' ', '\u00a0', '\u202f'},
		dateLayouts: []string{"2.1.2006"},
	}
	frenchSymbols = localeSymbols{
		decimal:     ',',
		groups:      []rune{' ', '\u00a0', '\u202f'},
		dateLayouts: []string{"2/1/2006"},
	}
	swissSymbols = localeSymbols{
		decimal:     '.',
		groups:      []rune{'\'', '\u2019'},
		dateLayouts: []string{"2.1.2006"},
	}
	eastAsianSymbols = localeSymbols{
		decimal:     '.',
		groups:      []rune{','},
		dateLayouts: []string{"2006/1/2"},
	}
)

// localeTable pairs supported tags with their symbols. The order of the tags
// is the order handed to the matcher.
var localeTable = []struct {
	tag     language.Tag
	symbols localeSymbols
}{
	{language.AmericanEnglish, englishUSSymbols},
	{language.BritishEnglish, englishUKSymbols},
	{language.MustParse("de-CH"), swissSymbols},
	{language.German, dotGroupSymbols},
	{language.French, frenchSymbols},
	{language.Italian, slashDotGroupSymbols},
	{language.Spanish, slashDotGroupSymbols},
	{language.Portuguese, slashDotGroupSymbols},
	{language.BrazilianPortuguese, slashDotGroupSymbols},
	{language.Dutch, dutchSymbols},
	{language.Russian, spaceGroupSymbols},
	{language.Polish, spaceGroupSymbols},
	{language.Swedish, localeSymbols{decimal: ',', groups: []rune{' ', '\u00a0'}, dateLayouts: []string{"2006-01-02"}}},
	{language.Japanese, eastAsianSymbols},
	{language.Chinese, eastAsianSymbols},
}

// localeMatcher resolves arbitrary tags to an entry of localeTable
var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(localeTable))
	for i, entry := range localeTable {
		tags[i] = entry.tag
	}
	return language.NewMatcher(tags)
}()

// symbolsFor returns the conventions for tag. The undetermined tag and tags
// without a reasonable match use invariant conventions.
func symbolsFor(tag language.Tag) localeSymbols {
	if tag == language.Und {
		return invariantSymbols
	}
	_, index, confidence := localeMatcher.Match(tag)
	if confidence == language.No || index < 0 || index >= len(localeTable) {
		return invariantSymbols
	}
	return localeTable[index].symbols
}

// defaultLayouts returns the date layouts tried for a locale when a format
// does not list its own.
func (ls localeSymbols) defaultLayouts() []string {
	layouts := make([]string, 0, len(isoLayouts)+len(ls.dateLayouts)*4)
	layouts = append(layouts, isoLayouts...)
	for _, date := range ls.dateLayouts {
		layouts = append(layouts, date+" 15:04:05", date+" 15:04")
		if ls.twelveHour {
			layouts = append(layouts, date+" 3:04:05 PM", date+" 3:04 PM")
		}
		layouts = append(layouts, date)
	}
	return layouts
}

// isGroup reports whether r separates digit groups in this locale.
func (ls localeSymbols) isGroup(r rune) bool {
	for _, g := range ls.groups {
		if r == g {
			return true
		}
	}
	return false
}
