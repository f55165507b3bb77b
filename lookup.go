package aniparse

import "strings"

var ordinalNumbers = map[string]string{
	"1st":     "1",
	"2nd":     "2",
	"3rd":     "3",
	"4th":     "4",
	"5th":     "5",
	"6th":     "6",
	"7th":     "7",
	"8th":     "8",
	"9th":     "9",
	"first":   "1",
	"second":  "2",
	"third":   "3",
	"fourth":  "4",
	"fifth":   "5",
	"sixth":   "6",
	"seventh": "7",
	"eighth":  "8",
	"ninth":   "9",
}

// fromOrdinalNumber converts an ordinal word like "2nd" or "Second" to its
// digit form. Matching is case-insensitive.
func fromOrdinalNumber(s string) (string, bool) {
	v, ok := ordinalNumbers[strings.ToLower(s)]
	return v, ok
}

var romanNumbers = map[string]string{
	"II":  "2",
	"III": "3",
	"IV":  "4",
	"V":   "5",
	"VI":  "6",
	"VII": "7",
}

// fromRomanNumber converts an uppercase Roman numeral in the II..VII range
// to its digit form.
func fromRomanNumber(s string) (string, bool) {
	v, ok := romanNumbers[s]
	return v, ok
}
