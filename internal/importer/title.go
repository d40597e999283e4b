package importer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxTitleLength = 150
	titleEllipsis  = "..."
)

// titlePasses are applied in order, each to the output of the previous one.
var titlePasses = []*regexp.Regexp{
	// leading marker
	regexp.MustCompile(`(?i)^\*Need\*\s*`),

	// greetings
	regexp.MustCompile(`(?i)^Hi\b\s*(?:(all|guys|everyone|there|hi|hello)\b)?\s*[,.!]?\s*`),
	regexp.MustCompile(`(?i)^Hello\b\s*(?:(all|guys|everyone|there)\b)?\s*[,.!]?\s*`),
	regexp.MustCompile(`(?i)^Good\s*(morning|afternoon|evening)\b\s*[,.!]?\s*`),
	regexp.MustCompile(`(?i)^Hey\b\s*(?:(all|guys|everyone|peeps)\b)?\s*[,.!]?\s*`),
	regexp.MustCompile(`(?i)^Morning\b\s*[,.!]?\s*`),

	// question openers
	regexp.MustCompile(`(?i)^(can\s+)?anyone\s+(here\s+)?(can\s+)?(share|recommend|know|has|have|got)\b\s*`),
	regexp.MustCompile(`(?i)^does\s+anyone\s+(here\s+)?(know|have|has)\b\s*`),
	regexp.MustCompile(`(?i)^I('m|\s+am)\s+(looking\s+for|searching\s+for|in\s+search\s+of)\b\s*`),
	regexp.MustCompile(`(?i)^looking\s+for\b\s*`),
	regexp.MustCompile(`(?i)^need(ing)?\b\s*(?:(help\s+with|to\s+find|a\s+lead)\b)?\s*`),
	regexp.MustCompile(`(?i)^seeking\b\s*`),
	regexp.MustCompile(`(?i)^\*need:?\*?\s*`),

	// trailing question mark and sign-offs
	regexp.MustCompile(`\?\s*$`),
	regexp.MustCompile(`(?i)\bplease\s*(?:(pm|dm|message)\b)?\s*(?:me\b)?\s*[.!]?\s*$`),
	regexp.MustCompile(`(?i)\bthanks?\s*(in\s+advance)?\s*[.!]?\s*$`),
	regexp.MustCompile(`(?i)\bappreciate\s+(any|it)\s*[.!]?\s*$`),

	// whatever punctuation the sign-offs left exposed
	regexp.MustCompile(`[.!?]+\s*$`),
}

// SimplifyTitle derives a display title from the free text of a need. The
// result is never empty for non-blank input and is at most MaxTitleLength
// characters long.
func SimplifyTitle(original string) string {
	title := original
	for _, pass := range titlePasses {
		title = pass.ReplaceAllString(title, "")
	}

	title = strings.Join(strings.Fields(title), " ")
	title = capitalizeFirst(title)

	if utf8.RuneCountInString(title) > MaxTitleLength {
		title = truncateRunes(title, MaxTitleLength-len(titleEllipsis)) + titleEllipsis
	}

	if title == "" {
		return truncateRunes(original, MaxTitleLength)
	}

	return title
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
