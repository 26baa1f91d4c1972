// Package tagged reads part-of-speech tagged text into keyword tokens.
//
// The accepted format is the common morphological analyzer output where each
// morpheme is written as surface/TAG:
//
//	나무/NNG 를/JKO 심/VV+었/EP+다/EF ./SF
//
// Units are separated by whitespace or by a '+' that directly follows a tag.
// Each unit splits at its last '/', so surfaces may themselves contain '/'
// or '+' ("1/2/SN", "+/SW").
//
// Surfaces and tags are converted to NFC with golang.org/x/text/unicode/norm;
// decomposed Hangul (conjoining jamo) would otherwise never match the
// precomposed syllables used in stop tokens. Tags are upper-cased.
//
// All functions are safe for concurrent use by multiple goroutines.
package tagged

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/vbalien/textrank/keywords"
)

const (
	maxLineBytes = 1 << 20 // 1 MiB per line
	tagSep       = '/'
	morphemeSep  = '+'
	commentMark  = "#"
)

// ErrMalformed is returned for a unit without a surface, a tag or a '/'.
var ErrMalformed = errors.New("malformed tagged unit")

// Parse splits text into tokens. Returns nil and no error for text without
// units.
func Parse(text string) ([]keywords.Token, error) {
	units := splitUnits(text)
	if len(units) == 0 {
		return nil, nil
	}

	tokens := make([]keywords.Token, 0, len(units))
	for i, u := range units {
		tok, err := parseUnit(u)
		if err != nil {
			return nil, errors.Wrapf(err, "unit %d %q", i, u)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// ParseLines reads r line by line and returns the tokens of every line in
// order. Blank lines and lines starting with '#' are skipped.
func ParseLines(r io.Reader) ([]keywords.Token, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var tokens []keywords.Token
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, commentMark) {
			continue
		}
		toks, err := Parse(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		tokens = append(tokens, toks...)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading tagged text")
	}
	return tokens, nil
}

// Format writes tokens back as space separated surface/TAG units.
func Format(tokens []keywords.Token) string {
	var sb strings.Builder
	for i, t := range tokens {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Surface)
		sb.WriteByte(tagSep)
		sb.WriteString(t.Tag)
	}
	return sb.String()
}

func parseUnit(u string) (keywords.Token, error) {
	i := strings.LastIndexByte(u, tagSep)
	if i <= 0 || i == len(u)-1 {
		return keywords.Token{}, ErrMalformed
	}
	return keywords.Token{
		Surface: norm.NFC.String(u[:i]),
		Tag:     strings.ToUpper(norm.NFC.String(u[i+1:])),
	}, nil
}

// splitUnits cuts text at whitespace and at '+' signs that close a complete
// surface/TAG unit.
func splitUnits(text string) []string {
	var units []string
	for _, field := range strings.FieldsFunc(text, unicode.IsSpace) {
		start := 0
		for i := 0; i < len(field); i++ {
			if field[i] != morphemeSep || !hasTag(field[start:i]) {
				continue
			}
			units = append(units, field[start:i])
			start = i + 1
		}
		if start < len(field) {
			units = append(units, field[start:])
		}
	}
	return units
}

// hasTag reports whether seg looks like surface/TAG with both parts present.
func hasTag(seg string) bool {
	i := strings.LastIndexByte(seg, tagSep)
	return i > 0 && i < len(seg)-1
}
