package main

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// charsets are the named code point sets accepted by -charset.
var charsets = map[string]*unicode.RangeTable{
	"ascii":  rangetable.New(runeRange(0x20, 0x7e)...),
	"latin1": rangetable.Merge(rangetable.New(runeRange(0x20, 0x7e)...), rangetable.New(runeRange(0xa0, 0xff)...)),
	"greek":  unicode.Greek,
	"digits": rangetable.New(runeRange('0', '9')...),
}

func runeRange(lo, hi rune) []rune {
	rs := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		rs = append(rs, r)
	}
	return rs
}

// buildCharset merges the comma separated named sets with the runes of
// extra.
func buildCharset(names, extra string) (*unicode.RangeTable, error) {
	var tables []*unicode.RangeTable
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		t, ok := charsets[name]
		if !ok {
			return nil, fmt.Errorf("unknown charset %q", name)
		}
		tables = append(tables, t)
	}
	if extra != "" {
		tables = append(tables, rangetable.New([]rune(extra)...))
	}
	if len(tables) == 0 {
		return nil, errors.New("empty charset")
	}
	return rangetable.Merge(tables...), nil
}

// countRunes returns the number of code points in t.
func countRunes(t *unicode.RangeTable) int {
	n := 0
	rangetable.Visit(t, func(rune) { n++ })
	return n
}
