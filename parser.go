package aniparse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// A video resolution can be in `1080p` or `1920x1080` format.
	videoResolutionRegex = regexp.MustCompile(`^\d{3,4}(?:[ip]|[xX×]\d{3,4}[ip]?)$`)

	// Episode prefixes, e.g. `E5`, `ep12v2`, `Eps02`.
	episodePrefixRegex = regexp.MustCompile(`^(?:E|[Ee][Pp]|Eps)(\d{1,4}(?:\.5)?)(?:[vV](\d))?$`)

	// Season and episode combined, e.g. `2x01`, `S01E03`, `S01-02xE001-150`.
	seasonEpisodeRegex = regexp.MustCompile(`^S?(\d{1,2})(?:-S?(\d{1,2}))?(?:x|[ ._-x]?E)(\d{1,4})(?:-E?(\d{1,4}))?(?:[vV](\d))?$`)

	// Number sign episodes, e.g. `#01`, `#02-03v2`.
	numberSignRegex = regexp.MustCompile(`#(\d{1,4})(?:[-~&+](\d{1,4}))?(?:[vV](\d))?`)
)

// findPrevToken returns the index of the last token before `before` that
// matches the predicate, or -1. Pass len(tokens) to search the whole list.
func findPrevToken(tokens []token, before int, pred func(*token) bool) int {
	for i := before - 1; i >= 0; i-- {
		if pred(&tokens[i]) {
			return i
		}
	}
	return -1
}

// findNextToken returns the index of the first token at or after `index`
// (after, when skip is true) that matches the predicate, or -1.
func findNextToken(tokens []token, index int, skip bool, pred func(*token) bool) int {
	start := index
	if skip {
		start = index + 1
	}
	for i := start; i < len(tokens); i++ {
		if pred(&tokens[i]) {
			return i
		}
	}
	return -1
}

// findTokenPair returns the first token matching first and the first token
// after it matching second. The two do not have to be adjacent.
func findTokenPair(tokens []token, first, second func(*token) bool) (int, int, bool) {
	i := findNextToken(tokens, 0, false, first)
	if i < 0 {
		return 0, 0, false
	}
	j := findNextToken(tokens, i, true, second)
	if j < 0 {
		return 0, 0, false
	}
	return i, j, true
}

// isTokenIsolated reports whether the nearest non-delimiter token on each
// side of index exists and is a bracket, i.e. the token lives alone in a
// bracket-delimited island.
func isTokenIsolated(tokens []token, index int) bool {
	prev := findPrevToken(tokens, index, (*token).isNotDelimiter)
	if prev < 0 || !tokens[prev].isBracket() {
		return false
	}
	next := findNextToken(tokens, index, true, (*token).isNotDelimiter)
	return next >= 0 && tokens[next].isBracket()
}

func isValidEpisodeNumber(s string) bool {
	return len(s) >= 1 && len(s) <= 4 && isASCIIDigits(s)
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func parseFileExtension(tokens []token) (Element, bool) {
	if len(tokens) < 2 {
		return Element{}, false
	}
	previous := &tokens[len(tokens)-2]
	last := &tokens[len(tokens)-1]
	if last.keywordKindIs(keywordFileExtension) && previous.isDelimiter() && previous.value == "." {
		previous.markKnown()
		last.markKnown()
		return newElement(ElementFileExtension, last), true
	}
	return Element{}, false
}

func keywordToElementKind(kind keywordKind) (ElementKind, bool) {
	switch kind {
	case keywordAudioChannels, keywordAudioCodec, keywordAudioLanguage:
		return ElementAudioTerm, true
	case keywordDeviceCompatibility:
		return ElementDeviceCompatibility, true
	case keywordEpisodeType, keywordType:
		return ElementType, true
	case keywordLanguage:
		return ElementLanguage, true
	case keywordOther:
		return ElementOther, true
	case keywordReleaseGroup:
		return ElementReleaseGroup, true
	case keywordReleaseInformation:
		return ElementReleaseInformation, true
	case keywordReleaseVersion:
		return ElementReleaseVersion, true
	case keywordSource:
		return ElementSource, true
	case keywordSubtitles:
		return ElementSubtitles, true
	case keywordVideoCodec, keywordVideoColorDepth, keywordVideoFormat,
		keywordVideoFrameRate, keywordVideoProfile, keywordVideoQuality:
		return ElementVideoTerm, true
	case keywordVideoResolution:
		return ElementVideoResolution, true
	default:
		// Episode, Season, Volume and FileExtension keywords drive
		// dedicated rules instead.
		return "", false
	}
}

func parseKeywords(tokens []token, opts Options, results *Elements) {
	for i := range tokens {
		t := &tokens[i]
		if !t.isFree() || !t.hasKeyword {
			continue
		}
		if t.keyword.kind == keywordReleaseGroup && !opts.ReleaseGroup {
			continue
		}
		if t.keyword.kind == keywordVideoResolution && !opts.VideoResolution {
			continue
		}
		elementKind, ok := keywordToElementKind(t.keyword.kind)
		if !ok {
			continue
		}
		if !t.keyword.ambiguous || t.isEnclosed {
			t.markKnown()
		}
		value := t.value
		if t.keyword.kind == keywordReleaseVersion {
			value = value[1:] // v2 -> 2
		}
		*results = append(*results, Element{Kind: elementKind, Value: value, Position: t.position})
	}
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

func parseFileChecksum(tokens []token) (Element, bool) {
	for i := len(tokens) - 1; i >= 0; i-- {
		t := &tokens[i]
		if t.isFree() && len(t.value) == 8 && isHexDigits(t.value) {
			t.markKnown()
			return newElement(ElementFileChecksum, t), true
		}
	}
	return Element{}, false
}

func parseVideoResolution(tokens []token, results *Elements) {
	found := results.Has(ElementVideoResolution)
	for i := range tokens {
		t := &tokens[i]
		if t.isFree() && videoResolutionRegex.MatchString(t.value) {
			t.markKnown()
			*results = append(*results, newElement(ElementVideoResolution, t))
			found = true
		}
	}

	if !found {
		// A special case for the 720 and 1080 string
		for i := range tokens {
			t := &tokens[i]
			if t.isFree() && t.isNumber() && (t.value == "1080" || t.value == "720") {
				*results = append(*results, newElement(ElementVideoResolution, t))
				break
			}
		}
	}
}

func isYear(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1950 && n <= 2050
}

func parseYear(tokens []token) (Element, bool) {
	// Find a year enclosed by brackets
	for i := 0; i+2 < len(tokens); i++ {
		mid := &tokens[i+1]
		if tokens[i].isOpenBracket() && tokens[i+2].isClosedBracket() &&
			mid.isFree() && mid.isNumber() && isYear(mid.value) {
			mid.markKnown()
			return newElement(ElementYear, mid), true
		}
	}

	// Find a year number that is isolated
	for i := range tokens {
		t := &tokens[i]
		if t.isFree() && t.isNumber() && !t.isEnclosed && isYear(t.value) && isTokenIsolated(tokens, i) {
			t.markKnown()
			return newElement(ElementYear, t), true
		}
	}

	return Element{}, false
}

func parseSeasonKeyword(tokens []token) (Element, bool) {
	for i := 0; i+2 < len(tokens); i++ {
		first := &tokens[i]
		mid := &tokens[i+1]
		last := &tokens[i+2]
		// Check previous token for a number (e.g. 2nd Season)
		if last.keywordKindIs(keywordSeason) && mid.isDelimiter() && first.isFree() {
			if number, ok := fromOrdinalNumber(first.value); ok {
				last.markKnown()
				mid.markKnown()
				first.markKnown()
				return Element{Kind: ElementSeason, Value: number, Position: first.position}, true
			}
		}
		// Check next token for a number (e.g. Season 2, Season II, etc.)
		if first.keywordKindIs(keywordSeason) && mid.isDelimiter() && last.isFree() {
			value := last.value
			if !last.isNumber() {
				roman, ok := fromRomanNumber(last.value)
				if !ok {
					continue
				}
				value = roman
			}
			last.markKnown()
			mid.markKnown()
			first.markKnown()
			return Element{Kind: ElementSeason, Value: value, Position: last.position}, true
		}
	}
	return Element{}, false
}

func parseSeason(tokens []token) (Element, bool) {
	if el, ok := parseSeasonKeyword(tokens); ok {
		return el, true
	}

	// Check other patterns for seasons (e.g. S2, 第2期)
	for i := range tokens {
		t := &tokens[i]
		if !t.isFree() {
			continue
		}
		// S\d{1,2} pattern
		if strings.HasPrefix(t.value, "S") || strings.HasPrefix(t.value, "s") {
			suffix := t.value[1:]
			if len(suffix) >= 1 && len(suffix) <= 2 && isASCIIDigits(suffix) {
				t.markKnown()
				return Element{Kind: ElementSeason, Value: suffix, Position: t.position}, true
			}
		}
		// 第2期 pattern
		if prefix, ok := strings.CutSuffix(t.value, "期"); ok {
			prefix = strings.TrimPrefix(prefix, "第")
			if len(prefix) >= 1 && len(prefix) <= 2 && isASCIIDigits(prefix) {
				t.markKnown()
				return Element{Kind: ElementSeason, Value: prefix, Position: t.position}, true
			}
		}
	}

	return Element{}, false
}

// parseSingleEpisode parses numbers in `\d{1,4}(?:[vV]\d)?` format, splitting
// off the release-version suffix when present.
func parseSingleEpisode(s string) (prefix, suffix string, ok bool) {
	if idx := strings.IndexAny(s, "vV"); idx >= 0 {
		prefix, suffix = s[:idx], s[idx+1:]
		if isValidEpisodeNumber(prefix) && len(suffix) == 1 && suffix[0] >= '0' && suffix[0] <= '9' {
			return prefix, suffix, true
		}
		return "", "", false
	}
	if isValidEpisodeNumber(s) {
		return s, "", true
	}
	return "", "", false
}

// parseMultiEpisodeRange handles ranges like `01-02`, `03~04v2`, `05&06`.
// The range must be ascending; `009-1` or `5-2` do not count.
func parseMultiEpisodeRange(tokens []token, index int, results *Elements, kind ElementKind) bool {
	t := &tokens[index]
	idx := strings.IndexAny(t.value, "-~&+")
	if idx < 0 {
		return false
	}
	first, last := t.value[:idx], t.value[idx+1:]
	lower, lowVersion, okLow := parseSingleEpisode(first)
	upper, upVersion, okUp := parseSingleEpisode(last)
	if !okLow || !okUp {
		return false
	}
	x, errX := strconv.Atoi(lower)
	y, errY := strconv.Atoi(upper)
	if errX != nil || errY != nil || x >= y {
		return false
	}
	*results = append(*results, Element{Kind: kind, Value: lower, Position: t.position})
	t.markKnown()
	if lowVersion != "" {
		*results = append(*results, Element{Kind: ElementReleaseVersion, Value: lowVersion, Position: t.position})
	}
	*results = append(*results, Element{Kind: kind, Value: upper, Position: t.position})
	if upVersion != "" {
		*results = append(*results, Element{Kind: ElementReleaseVersion, Value: upVersion, Position: t.position})
	}
	return true
}

func parseVolume(tokens []token, results *Elements) {
	// Some files have multiple volume specifiers in the name
	for index := range tokens {
		if !tokens[index].keywordKindIs(keywordVolume) {
			continue
		}

		next := findNextToken(tokens, index, true, (*token).isNotDelimiter)
		if next < 0 || !tokens[next].isFree() {
			continue
		}

		if parseMultiEpisodeRange(tokens, next, results, ElementVolume) {
			tokens[index].markKnown()
			tokens[next].markKnown()
			continue
		}

		prefix, suffix, ok := parseSingleEpisode(tokens[next].value)
		if !ok {
			continue
		}
		*results = append(*results, Element{Kind: ElementVolume, Value: prefix, Position: tokens[index].position})
		if suffix != "" {
			*results = append(*results, Element{Kind: ElementReleaseVersion, Value: suffix, Position: tokens[index].position})
		}
		tokens[index].markKnown()
		tokens[next].markKnown()
	}
}

// parseNumberInNumberEpisode handles a number that comes before another
// number (e.g. `8 & 10`, `01 of 24`).
func parseNumberInNumberEpisode(tokens []token) (Element, bool) {
	for index := range tokens {
		t := &tokens[index]
		if !t.isFree() || !t.isNumber() {
			continue
		}
		// Skip delimiters but not &
		middle := findNextToken(tokens, index, true, func(t *token) bool {
			return t.isNotDelimiter() || t.value == "&"
		})
		if middle < 0 {
			continue
		}
		if tokens[middle].value != "&" && tokens[middle].value != "of" {
			continue
		}
		other := findNextToken(tokens, middle, true, (*token).isNotDelimiter)
		if other < 0 || !tokens[other].isNumber() {
			continue
		}
		tokens[other].markKnown()
		tokens[middle].markKnown()
		tokens[index].markKnown()
		return newElement(ElementEpisode, &tokens[index]), true
	}
	return Element{}, false
}

func parseEpisode(tokens []token, results *Elements, kind ElementKind) {
	// Equivalent numbers (e.g. `01 (176)`, `29 (04)`)
	if kind == ElementEpisode {
		if parseEquivalentNumbers(tokens, results) {
			return
		}
	}

	if number, ok := parseNumberInNumberEpisode(tokens); ok {
		*results = append(*results, number)
		return
	}

	for index := range tokens {
		if !tokens[index].isFree() {
			continue
		}

		if tokens[index].keywordKindIs(keywordEpisode) {
			if next := findNextToken(tokens, index, true, (*token).isNotDelimiter); next >= 0 {
				if tokens[next].isFree() && tokens[next].isMostlyNumbers() {
					if parseMultiEpisodeRange(tokens, next, results, kind) {
						tokens[index].markKnown()
						return
					}
					if tokens[next].isNumber() {
						tokens[index].markKnown()
						tokens[next].markKnown()
						*results = append(*results, newElement(kind, &tokens[next]))
						return
					}
				}
			}
		}

		if parseMultiEpisodeRange(tokens, index, results, kind) {
			return
		}

		t := &tokens[index]
		if m := episodePrefixRegex.FindStringSubmatch(t.value); m != nil {
			*results = append(*results, Element{Kind: kind, Value: m[1], Position: t.position})
			t.markKnown()
			if m[2] != "" {
				*results = append(*results, Element{Kind: ElementReleaseVersion, Value: m[2], Position: t.position})
			}
			return
		}

		// Season and episode (e.g. `2x01`, `S01E03`, `S01-02xE001-150`)
		if m := seasonEpisodeRegex.FindStringSubmatch(t.value); m != nil {
			if season, err := strconv.Atoi(m[1]); err == nil && season != 0 {
				*results = append(*results, Element{Kind: ElementSeason, Value: m[1], Position: t.position})
				t.markKnown()
				if m[2] != "" {
					*results = append(*results, Element{Kind: ElementSeason, Value: m[2], Position: t.position})
				}
				*results = append(*results, Element{Kind: kind, Value: m[3], Position: t.position})
				if m[4] != "" {
					*results = append(*results, Element{Kind: kind, Value: m[4], Position: t.position})
				}
				if m[5] != "" {
					*results = append(*results, Element{Kind: ElementReleaseVersion, Value: m[5], Position: t.position})
				}
				return
			}
		}

		// Single episode (e.g. 01v2)
		if prefix, suffix, ok := parseSingleEpisode(t.value); ok && suffix != "" {
			t.markKnown()
			*results = append(*results, Element{Kind: kind, Value: prefix, Position: t.position})
			*results = append(*results, Element{Kind: ElementReleaseVersion, Value: suffix, Position: t.position})
			return
		}

		// Number sign, e.g. #01 or #02-03v2
		if m := numberSignRegex.FindStringSubmatch(t.value); m != nil {
			t.markKnown()
			*results = append(*results, Element{Kind: kind, Value: m[1], Position: t.position})
			if m[2] != "" {
				*results = append(*results, Element{Kind: kind, Value: m[2], Position: t.position})
			}
			if m[3] != "" {
				*results = append(*results, Element{Kind: ElementReleaseVersion, Value: m[3], Position: t.position})
			}
			return
		}

		// Japanese counter (e.g. `第01話`)
		if prefix, ok := strings.CutSuffix(t.value, "話"); ok {
			prefix = strings.TrimPrefix(prefix, "第")
			if isValidEpisodeNumber(prefix) {
				t.markKnown()
				*results = append(*results, Element{Kind: kind, Value: prefix, Position: t.position})
				return
			}
		}

		// Partial episode (e.g. `4a`, `111C`)
		if len(t.value) > 1 && strings.ContainsRune("ABCabc", rune(t.value[len(t.value)-1])) {
			if isValidEpisodeNumber(t.value[:len(t.value)-1]) {
				t.markKnown()
				*results = append(*results, newElement(kind, t))
				return
			}
		}

		// Fractional episode (e.g. `07.5`)
		// We don't allow any fractional part other than `.5`, because there
		// are cases where such a number is a part of the title (e.g.
		// `Evangelion: 1.11`, `Tokyo Magnitude 8.0`) or a keyword (e.g. `5.1`).
		if before, after, found := strings.Cut(t.value, "."); found {
			if after == "5" && isValidEpisodeNumber(before) {
				t.markKnown()
				*results = append(*results, newElement(kind, t))
				return
			}
		}
	}

	// Type and episode (e.g. `ED1`, `OP4a`, `OVA2`)
	if _, j, ok := findTokenPair(tokens,
		func(t *token) bool {
			return t.keywordKindIs(keywordType) && !strings.EqualFold(t.value, "movie")
		},
		(*token).isNotDelimiter,
	); ok {
		t := &tokens[j]
		if t.isFree() && t.isNumber() {
			t.markKnown()
			*results = append(*results, newElement(kind, t))
			return
		}
	}

	// Separated number (e.g. ` - 08`)
	for index := range tokens {
		if !tokens[index].isDelimiter() || !isDash(firstRune(tokens[index].value)) {
			continue
		}
		if next := findNextToken(tokens, index, false, (*token).isNotDelimiter); next >= 0 {
			if tokens[next].isNumber() && tokens[next].isFree() {
				tokens[next].markKnown()
				*results = append(*results, newElement(kind, &tokens[next]))
				tokens[index].markKnown()
				return
			}
		}
	}

	// Isolated number (e.g. [12], (2006), etc.)
	for i := 0; i+2 < len(tokens); i++ {
		mid := &tokens[i+1]
		if tokens[i].isOpenBracket() && tokens[i+2].isClosedBracket() && mid.isFree() && mid.isNumber() {
			*results = append(*results, newElement(kind, mid))
			mid.markKnown()
			return
		}
	}

	// Last number
	// At this point an enclosed number is not the episode number
	for index := 1; index < len(tokens); index++ {
		t := &tokens[index]
		if !t.isFree() || !t.isNumber() || t.isEnclosed {
			continue
		}

		// Ignore if it's the first non-enclosed and non-delimiter token
		leading := true
		for i := 0; i < index; i++ {
			if !tokens[i].isEnclosed && tokens[i].isNotDelimiter() {
				leading = false
				break
			}
		}
		if leading {
			continue
		}

		// Ignore if the previous token is "movie" or "part"
		if prev := findPrevToken(tokens, index, (*token).isNotDelimiter); prev >= 0 {
			p := &tokens[prev]
			if p.isFree() && (strings.EqualFold(p.value, "movie") || strings.EqualFold(p.value, "part")) {
				continue
			}
		}

		// At this point this is probably the valid number
		t.markKnown()
		*results = append(*results, newElement(kind, t))
		break
	}
}

// parseEquivalentNumbers handles equivalent episode pairs like `01 (176)`
// where the release numbers the episode in both season and absolute order.
// The smaller number becomes the episode, the larger the alternative.
func parseEquivalentNumbers(tokens []token, results *Elements) bool {
	for index := range tokens {
		t := &tokens[index]
		if !t.isFree() || !t.isNumber() {
			continue
		}
		if isTokenIsolated(tokens, index) || !isValidEpisodeNumber(t.value) {
			continue
		}

		// Find the bracket that opens the equivalent number
		next := findNextToken(tokens, index, true, (*token).isNotDelimiter)
		if next < 0 || !tokens[next].isBracket() {
			continue
		}

		next = findNextToken(tokens, next, true, (*token).isNotDelimiter)
		if next < 0 {
			continue
		}
		other := &tokens[next]
		if !other.isFree() || !other.isNumber() || !isValidEpisodeNumber(other.value) ||
			!isTokenIsolated(tokens, next) {
			continue
		}

		first, errFirst := strconv.Atoi(t.value)
		second, errSecond := strconv.Atoi(other.value)
		if errFirst != nil || errSecond != nil {
			continue
		}

		a, b := ElementEpisode, ElementEpisodeAlt
		if first > second {
			a, b = ElementEpisodeAlt, ElementEpisode
		}

		other.markKnown()
		t.markKnown()
		*results = append(*results, newElement(b, other))
		*results = append(*results, newElement(a, t))
		return true
	}
	return false
}

// findTitle picks the token range holding the title. Returns start and end
// indices; end < 0 means the range extends to the end of the token list.
func findTitle(tokens []token) (int, int, bool) {
	// Find the first free unenclosed range
	// e.g. `[Group] Title - Episode [Info]`
	//               ^-------^
	first := findNextToken(tokens, 0, false, func(t *token) bool {
		return t.isFree() && !t.isEnclosed
	})
	last := -1
	if first >= 0 {
		last = findNextToken(tokens, first, true, (*token).isIdentified)
	}

	// Fall back to the second enclosed range (assuming the first one is for
	// the release group)
	// e.g. `[Group][Title][Info]`
	//               ^----^
	if first < 0 {
		// Get the opposite bracket that was matched with the open bracket.
		// This is mainly for cases where a parentheses is within the title,
		// e.g. [Evangelion 3.0 You Can (Not) Redo]
		if _, open, ok := findTokenPair(tokens, (*token).isClosedBracket, (*token).isOpenBracket); ok {
			if opposite, ok := oppositeBracket(firstRune(tokens[open].value)); ok {
				first = findNextToken(tokens, open, false, (*token).isFree)
				if first >= 0 {
					last = findNextToken(tokens, first, true, func(t *token) bool {
						return t.isBracket() && strings.HasPrefix(t.value, string(opposite))
					})
				}
			}
		}
	}

	if first < 0 {
		return 0, 0, false
	}

	// Prevent titles with mismatched brackets
	// e.g. `Title (`      -> `Title `
	// e.g. `Title [Info ` -> `Title `
	end := last
	if end < 0 {
		end = len(tokens)
	}
	openCount, lastOpen := 0, 0
	closedCount := 0
	for i := first; i < end; i++ {
		if tokens[i].isOpenBracket() {
			openCount++
			lastOpen = i
		}
		if tokens[i].isClosedBracket() {
			closedCount++
		}
	}
	if openCount != 0 && closedCount != openCount {
		last = lastOpen
	}

	// Prevent titles ending with brackets (except parentheses)
	// e.g. `Title [Group]` -> `Title `
	// e.g. `Title (TV)`    -> *no change*
	before := last
	if before < 0 {
		before = len(tokens)
	}
	if idx := findPrevToken(tokens, before, (*token).isNotDelimiter); idx >= 0 {
		if tokens[idx].isClosedBracket() && tokens[idx].value != ")" {
			if newLast := findPrevToken(tokens, idx, (*token).isOpenBracket); newLast >= 0 {
				last = newLast
			}
		}
	}

	return first, last, true
}

func parseTitle(tokens []token) (Element, bool) {
	first, last, ok := findTitle(tokens)
	if !ok {
		return Element{}, false
	}
	if last < 0 {
		last = len(tokens)
	}
	span := tokens[first:last]
	value := combineTokens(span, false)
	if value == "" {
		return Element{}, false
	}
	position := span[0].position
	for i := range span {
		span[i].markKnown()
	}
	return Element{Kind: ElementTitle, Value: value, Position: position}, true
}

func lastIndexForReleaseGroup(tokens []token, first int) int {
	if first < 0 {
		return -1
	}
	openIdx := findPrevToken(tokens, first, func(t *token) bool {
		return !t.isEnclosed && t.isOpenBracket()
	})
	if openIdx >= 0 {
		if opposite, ok := oppositeBracket(firstRune(tokens[openIdx].value)); ok {
			return findNextToken(tokens, first, true, func(t *token) bool {
				return t.isClosedBracket() && strings.HasPrefix(t.value, string(opposite))
			})
		}
	}
	return findNextToken(tokens, first, true, (*token).isClosedBracket)
}

// findReleaseGroup picks the token range holding the release group.
func findReleaseGroup(tokens []token) (int, int, bool) {
	// Find the first enclosed unidentified range
	// e.g. `[Group] Title - Episode [Info]`
	//        ^----^
	first := findNextToken(tokens, 0, false, func(t *token) bool {
		return t.isEnclosed && !t.isIdentified()
	})
	last := lastIndexForReleaseGroup(tokens, first)

	// Skip brackets whose tokens are already taken and move on to the next
	// pair of brackets instead
	for first >= 0 && last >= 0 {
		taken := false
		for i := first; i < last; i++ {
			if tokens[i].isIdentified() {
				taken = true
				break
			}
		}
		if !taken {
			break
		}
		first = findNextToken(tokens, last, true, func(t *token) bool {
			return t.isEnclosed && t.isFree()
		})
		last = lastIndexForReleaseGroup(tokens, first)
	}

	// Fall back to the last token before the file extension
	// e.g. `Title.Episode.Info-Group.mkv`
	//                          ^----^
	if first < 0 {
		idx := findPrevToken(tokens, len(tokens), (*token).isFree)
		if idx > 0 && tokens[idx-1].isDelimiter() && tokens[idx-1].value == "-" {
			first = idx
			last = idx + 1
		}
	}

	if first < 0 {
		return 0, 0, false
	}
	return first, last, true
}

func parseReleaseGroup(tokens []token) (Element, bool) {
	first, last, ok := findReleaseGroup(tokens)
	if !ok {
		return Element{}, false
	}
	if last < 0 {
		last = len(tokens)
	}
	span := tokens[first:last]
	value := combineTokens(span, true)
	if value == "" {
		return Element{}, false
	}
	position := span[0].position
	for i := range span {
		span[i].markKnown()
	}
	return Element{Kind: ElementReleaseGroup, Value: value, Position: position}, true
}

// findEpisodeTitle picks the token range holding the episode title.
func findEpisodeTitle(tokens []token) (int, int, bool) {
	// Find the first free unenclosed range
	// e.g. `[Group] Title - Episode - Episode Title [Info]`
	//                                 ^-------------^
	first := findNextToken(tokens, 0, false, func(t *token) bool {
		return t.isFree() && !t.isEnclosed
	})
	if first >= 0 {
		last := findNextToken(tokens, first, false, func(t *token) bool {
			return t.isOpenBracket() || t.isIdentified()
		})
		return first, last, true
	}

	// Fall back to the first free range in corner brackets
	// e.g. `[Group] Title - Episode 「Episode Title」`
	//                                ^------------^
	open := findNextToken(tokens, 0, false, func(t *token) bool {
		return t.isOpenBracket() && t.value == "「"
	})
	if open < 0 {
		return 0, 0, false
	}
	first = open + 1
	last := findNextToken(tokens, first, false, func(t *token) bool {
		return t.isClosedBracket() && t.value == "」"
	})
	if last < 0 {
		return 0, 0, false
	}
	for i := first; i < last; i++ {
		if tokens[i].isIdentified() {
			return 0, 0, false
		}
	}
	return first, last, true
}

func parseEpisodeTitle(tokens []token) (Element, bool) {
	first, last, ok := findEpisodeTitle(tokens)
	if !ok {
		return Element{}, false
	}
	if last < 0 {
		last = len(tokens)
	}
	span := tokens[first:last]
	value := combineTokens(span, false)
	if value == "" {
		return Element{}, false
	}
	position := span[0].position
	for i := range span {
		span[i].markKnown()
	}
	return Element{Kind: ElementEpisodeTitle, Value: value, Position: position}, true
}

// parseTokens runs the rule pipeline over the token list and returns the
// extracted elements in source order.
func parseTokens(tokens []token, opts Options) Elements {
	var results Elements

	if opts.FileExtension {
		if el, ok := parseFileExtension(tokens); ok {
			results = append(results, el)
		}
	}

	parseKeywords(tokens, opts, &results)

	if opts.FileChecksum {
		if el, ok := parseFileChecksum(tokens); ok {
			results = append(results, el)
		}
	}

	if opts.VideoResolution {
		parseVideoResolution(tokens, &results)
	}

	if opts.Year {
		if el, ok := parseYear(tokens); ok {
			results = append(results, el)
		}
	}

	if opts.Season {
		if el, ok := parseSeason(tokens); ok {
			results = append(results, el)
		}
	}

	if opts.Episode {
		parseVolume(tokens, &results)
		parseEpisode(tokens, &results, ElementEpisode)
	}

	if opts.Title {
		if el, ok := parseTitle(tokens); ok {
			results = append(results, el)
		}
	}

	if opts.ReleaseGroup && !results.Has(ElementReleaseGroup) {
		if el, ok := parseReleaseGroup(tokens); ok {
			results = append(results, el)
		}
	}

	if results.Has(ElementEpisode) {
		if opts.EpisodeTitle {
			if el, ok := parseEpisodeTitle(tokens); ok {
				results = append(results, el)
			}
		}
		if opts.Episode {
			parseEpisode(tokens, &results, ElementEpisodeAlt)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Position < results[j].Position
	})
	return results
}
