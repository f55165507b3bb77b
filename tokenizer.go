package aniparse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func isOpenBracketRune(r rune) bool {
	switch r {
	case '(', // parenthesis
		'[',      // square bracket
		'{',      // curly bracket
		'「', // corner bracket
		'『', // white corner bracket
		'【', // black lenticular bracket
		'（', // fullwidth parenthesis
		'［', // fullwidth square bracket
		'｛': // fullwidth curly bracket
		return true
	}
	return false
}

func isClosedBracketRune(r rune) bool {
	switch r {
	case ')', // parenthesis
		']',      // square bracket
		'}',      // curly bracket
		'」', // corner bracket
		'』', // white corner bracket
		'】', // black lenticular bracket
		'）', // fullwidth parenthesis
		'］', // fullwidth square bracket
		'｝': // fullwidth curly bracket
		return true
	}
	return false
}

// oppositeBracket returns the matching bracket for r, in either direction.
func oppositeBracket(r rune) (rune, bool) {
	switch r {
	case '(':
		return ')', true
	case '[':
		return ']', true
	case '{':
		return '}', true
	case '「':
		return '」', true
	case '『':
		return '』', true
	case '【':
		return '】', true
	case '（':
		return '）', true
	case '［':
		return '］', true
	case '｛':
		return '｝', true
	case ')':
		return '(', true
	case ']':
		return '[', true
	case '}':
		return '{', true
	case '」':
		return '「', true
	case '』':
		return '『', true
	case '】':
		return '【', true
	case '）':
		return '（', true
	case '］':
		return '［', true
	case '｝':
		return '｛', true
	}
	return 0, false
}

func isBracketRune(r rune) bool {
	return isOpenBracketRune(r) || isClosedBracketRune(r)
}

func isDash(r rune) bool {
	switch r {
	case '-', // hyphen-minus
		'\u00ad', // soft hyphen
		'\u2010', // hyphen
		'\u2011', // non-breaking hyphen
		'\u2012', // figure dash
		'\u2013', // en dash
		'\u2014', // em dash
		'\u2015': // horizontal bar
		return true
	}
	return false
}

func isSpace(r rune) bool {
	switch r {
	case ' ', // space
		'\t',     // character tabulation
		'\u00a0', // no-break space
		'\u200b', // zero width space
		'\u3000': // ideographic space
		return true
	}
	return false
}

func isDelimiterRune(r rune) bool {
	switch r {
	case '_', // used instead of space
		'.', // used instead of space, problematic (e.g. `AAC2.0.H.264`)
		',', // used to separate keywords
		'&', // used for episode ranges
		'+', // used in torrent titles
		'|': // used in torrent titles, reserved in Windows
		return true
	}
	return isSpace(r) || isDash(r)
}

func isTextRune(r rune) bool {
	return !isBracketRune(r) && !isDelimiterRune(r)
}

// isKeywordBoundary reports whether the text following a keyword match
// terminates it: end of input or a non-text character.
func isKeywordBoundary(rest string) bool {
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return !isTextRune(r)
}

func isASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// matchKeyword attempts the longest case-insensitive catalogue match at the
// start of s, returning the matched byte length. The scan extends while some
// catalogue key still has the current candidate as a prefix, which lets
// multi-word keys like "Dolby TrueHD" match across delimiters.
func matchKeyword(s string) (int, keyword, bool) {
	var (
		lower   strings.Builder
		bestLen int
		best    keyword
	)
	for i, r := range s {
		lower.WriteRune(unicode.ToLower(r))
		candidate := lower.String()
		if k, ok := keywords[candidate]; ok {
			bestLen = i + utf8.RuneLen(r)
			best = k
		}
		if _, viable := keywordPrefixes[candidate]; viable {
			continue
		}
		if _, isKey := keywords[candidate]; isKey {
			continue
		}
		if bestLen == 0 {
			return 0, keyword{}, false
		}
		break
	}
	if bestLen == 0 {
		return 0, keyword{}, false
	}

	rest := s[bestLen:]
	if !best.unbounded && !isKeywordBoundary(rest) {
		// Allow things like "ED2" or "Season2"
		digitNext := true
		if rest != "" {
			digitNext = rest[0] >= '0' && rest[0] <= '9'
		}
		if !(best.ambiguous && digitNext) {
			return 0, keyword{}, false
		}
	}
	return bestLen, best, true
}

// takeTextLen returns the byte length of the maximal run of text characters
// at the start of s.
func takeTextLen(s string) int {
	for i, r := range s {
		if !isTextRune(r) {
			return i
		}
	}
	return len(s)
}

// tokenize segments the input into typed tokens, tracking bracket depth to
// decide enclosure, then runs the fusion pass and assigns final positions.
func tokenize(input string) []token {
	var tokens []token
	level := 0
	rest := input
	for len(rest) > 0 {
		r, size := utf8.DecodeRuneInString(rest)
		switch {
		case isOpenBracketRune(r):
			level++
			tokens = append(tokens, token{
				kind:       tokenOpenBracket,
				value:      rest[:size],
				unknown:    true,
				isEnclosed: level >= 2,
			})
			rest = rest[size:]
		case isClosedBracketRune(r):
			level--
			tokens = append(tokens, token{
				kind:       tokenCloseBracket,
				value:      rest[:size],
				unknown:    true,
				isEnclosed: level >= 1,
			})
			rest = rest[size:]
		case isDelimiterRune(r):
			tokens = append(tokens, token{
				kind:       tokenDelimiter,
				value:      rest[:size],
				unknown:    true,
				isEnclosed: level > 0,
			})
			rest = rest[size:]
		default:
			enclosed := level > 0
			if n, k, ok := matchKeyword(rest); ok {
				tokens = append(tokens, token{
					kind:       tokenKeyword,
					value:      rest[:n],
					keyword:    k,
					hasKeyword: true,
					unknown:    true,
					isEnclosed: enclosed,
				})
				rest = rest[n:]
				continue
			}
			n := takeTextLen(rest)
			value := rest[:n]
			kind := tokenText
			if isASCIIDigits(value) {
				kind = tokenNumber
			}
			tokens = append(tokens, token{
				kind:       kind,
				value:      value,
				unknown:    true,
				isEnclosed: enclosed,
			})
			rest = rest[n:]
		}
	}

	fuseTokens(input, tokens)

	out := tokens[:0]
	for _, t := range tokens {
		if t.kind != tokenInvalid {
			out = append(out, t)
		}
	}
	for i := range out {
		out[i].position = i
	}
	return out
}

// fuseTokens combines number-delimiter-number runs (e.g. `009-1`, `01+02`,
// `1.11`) and `No.N` into a single text token anchored at the middle
// delimiter. Neighbours are marked invalid; the caller drops them.
func fuseTokens(input string, tokens []token) {
	startLength := 0
	for i := range tokens {
		tokenLength := len(tokens[i].value)
		isDot := tokens[i].value == "."
		if tokens[i].isDelimiter() && strings.IndexAny(tokens[i].value, ".-&+~") == 0 &&
			i > 0 && i+1 < len(tokens) {
			prev := &tokens[i-1]
			next := &tokens[i+1]
			mergeable := (prev.isMostlyNumbers() && next.isMostlyNumbers()) ||
				(isDot && prev.isText() && strings.EqualFold(prev.value, "No") && next.isNumber())
			if mergeable {
				prev.kind = tokenInvalid
				next.kind = tokenInvalid
				start := startLength - len(prev.value)
				end := startLength + tokenLength + len(next.value)
				tokens[i].kind = tokenText
				tokens[i].value = input[start:end]
			}
		}
		startLength += tokenLength
	}
}

// combineTokens joins a slice of tokens into a single string. Delimiters are
// replaced with a space when doing so preserves the intended word breaks:
// spaces and underscores always, dots only when the slice has no spaces or
// underscores, anything else only when it is the sole delimiter. Commas and
// ampersands are always kept. With keepDelimiters false the result is also
// trimmed of surrounding spaces and dashes.
func combineTokens(tokens []token, keepDelimiters bool) string {
	singleDelimiter := false
	hasSpaces := false
	hasUnderscores := false
	delimiters := 0
	for i := range tokens {
		if !tokens[i].isDelimiter() {
			continue
		}
		delimiters++
		r, _ := utf8.DecodeRuneInString(tokens[i].value)
		if isSpace(r) {
			hasSpaces = true
		}
		if r == '_' {
			hasUnderscores = true
		}
	}
	singleDelimiter = delimiters == 1

	transformable := func(t *token) bool {
		if keepDelimiters || t.isNotDelimiter() || t.value == "" {
			return false
		}
		r, _ := utf8.DecodeRuneInString(t.value)
		switch {
		case r == ',' || r == '&':
			return false
		case isSpace(r) || r == '_':
			return true
		case hasSpaces || hasUnderscores:
			return false
		case r == '.':
			return true
		default:
			return singleDelimiter
		}
	}

	var sb strings.Builder
	for i := range tokens {
		if transformable(&tokens[i]) {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(tokens[i].value)
		}
	}

	result := sb.String()
	if !keepDelimiters {
		result = strings.TrimFunc(result, func(r rune) bool {
			return r == ' ' || isDash(r)
		})
	}
	return result
}
