package csvtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestSymbolsFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		tag         language.Tag
		decimal     rune
		group       rune
		firstLayout string
		twelveHour  bool
	}{
		{name: "undetermined", tag: language.Und, decimal: '.', group: ',', firstLayout: "1/2/2006"},
		{name: "american english", tag: language.AmericanEnglish, decimal: '.', group: ',', firstLayout: "1/2/2006", twelveHour: true},
		{name: "british english", tag: language.BritishEnglish, decimal: '.', group: ',', firstLayout: "2/1/2006"},
		{name: "german", tag: language.MustParse("de-DE"), decimal: ',', group: '.', firstLayout: "2.1.2006"},
		{name: "swiss german", tag: language.MustParse("de-CH"), decimal: '.', group: '\'', firstLayout: "2.1.2006"},
		{name: "french", tag: language.MustParse("fr-FR"), decimal: ',', group: ' ', firstLayout: "2/1/2006"},
		{name: "dutch", tag: language.Dutch, decimal: ',', group: '.', firstLayout: "2-1-2006"},
		{name: "russian", tag: language.Russian, decimal: ',', group: '\u00a0', firstLayout: "2.1.2006"},
		{name: "swedish", tag: language.Swedish, decimal: ',', group: ' ', firstLayout: "2006-01-02"},
		{name: "japanese", tag: language.Japanese, decimal: '.', group: ',', firstLayout: "2006/1/2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sym := symbolsFor(tt.tag)
			assert.Equal(t, tt.decimal, sym.decimal)
			assert.True(t, sym.isGroup(tt.group), "group %q", tt.group)
			assert.False(t, sym.isGroup(sym.decimal), "decimal separator is never a group separator")
			assert.Equal(t, tt.firstLayout, sym.dateLayouts[0])
			assert.Equal(t, tt.twelveHour, sym.twelveHour)
		})
	}
}

func TestLocaleSymbols_DefaultLayouts(t *testing.T) {
	t.Parallel()

	t.Run("iso layouts come first", func(t *testing.T) {
		t.Parallel()

		layouts := symbolsFor(language.German).defaultLayouts()
		assert.Equal(t, isoLayouts, layouts[:len(isoLayouts)])
		assert.Equal(t, []string{"2.1.2006 15:04:05", "2.1.2006 15:04", "2.1.2006"}, layouts[len(isoLayouts):])
	})

	t.Run("twelve hour variants", func(t *testing.T) {
		t.Parallel()

		layouts := englishUSSymbols.defaultLayouts()
		assert.Contains(t, layouts, "1/2/2006 3:04:05 PM")
		assert.Contains(t, layouts, "1/2/2006 3:04 PM")
		assert.NotContains(t, englishUKSymbols.defaultLayouts(), "2/1/2006 3:04 PM")
	})
}

