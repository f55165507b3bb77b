// Package aniparse extracts structured metadata from anime and TV release
// file names, e.g. titles, seasons, episodes, release groups, video and
// audio terms, checksums and file extensions.
//
// Parsing is a pure function over a single line of UTF-8 text. It never
// fails; inputs the parser cannot make sense of simply yield fewer (or no)
// elements. For best results the input should be in composed normalization
// form (NFC); the parser does not normalize on its own.
package aniparse

// Parse extracts elements from a release file name using the default
// options. The result is ordered by source position.
func Parse(input string) Elements {
	return ParseWithOptions(input, DefaultOptions())
}

// ParseWithOptions extracts elements from a release file name, running only
// the rules enabled in opts.
func ParseWithOptions(input string, opts Options) Elements {
	return parseTokens(tokenize(input), opts)
}
