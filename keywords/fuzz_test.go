package keywords

import (
	"slices"
	"strings"
	"testing"
)

var fuzzTags = []string{"NNG", "VV", "JKO", "NNP", "VA", "EF"}

// fuzzTokens assigns tags round-robin so every input mixes candidates and
// non-candidates.
func fuzzTokens(text string) []Token {
	fields := strings.Fields(text)
	out := make([]Token, len(fields))
	for i, f := range fields {
		out[i] = Token{Surface: f, Tag: fuzzTags[i%len(fuzzTags)]}
	}
	return out
}

func FuzzExtract(f *testing.F) {
	f.Add("나무 심 꽃", 5, 2)
	f.Add("봄 이 오 면 나무 를 심 고 꽃 을", 3, 10)
	f.Add("", 5, 5)
	f.Add("a", 5, 1)
	f.Add("있 하 되 없 보", 5, 5)
	f.Add("\xff\xfe \x00", 2, 3)
	f.Add("나무 나무 나무 나무", 4, 0)

	f.Fuzz(func(t *testing.T, text string, window, n int) {
		window = window % 64
		tokens := fuzzTokens(text)
		e := New(WithWindowSize(window))

		a := e.Extract(tokens, n)
		b := e.Extract(tokens, n)
		if !slices.Equal(a, b) {
			t.Errorf("non-deterministic:\n  a = %v\n  b = %v", a, b)
		}
		if n <= 0 && a != nil {
			t.Errorf("Extract(n=%d) = %v, want nil", n, a)
		}
		if n > 0 && len(a) > n {
			t.Errorf("Extract(n=%d) returned %d results", n, len(a))
		}
	})
}

func FuzzPairsSymmetric(f *testing.F) {
	f.Add("나무 심 꽃 나무 물", 5)
	f.Add("a bb cc dd", 2)
	f.Add("", 0)

	f.Fuzz(func(t *testing.T, text string, window int) {
		window = window % 64
		e := New(WithWindowSize(window))
		pairs := e.Pairs(fuzzTokens(text))

		for _, p := range pairs.Sorted() {
			ab, okAB := pairs.Get(p.A, p.B)
			ba, okBA := pairs.Get(p.B, p.A)
			if !okAB || !okBA || ab != ba || ab != p.Count {
				t.Errorf("asymmetric pair %q/%q: %v(%v) vs %v(%v), want %v", p.A, p.B, ab, okAB, ba, okBA, p.Count)
			}
			if p.A >= p.B {
				t.Errorf("pair not canonical: %q >= %q", p.A, p.B)
			}
		}
	})
}
