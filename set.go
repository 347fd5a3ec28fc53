package tolerant

import (
	"iter"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/coregex"

	"github.com/coregx/tolerant/lazy"
)

// RegexSet is a compiled set of regular expressions that may be degraded.
//
// The set is compiled as a single unit: under the tolerant build, one
// invalid pattern degrades the whole set, including patterns that were
// individually valid. There is no per-pattern tolerance. Callers relying on
// set-level atomicity get exactly that; a degraded set reports no patterns
// and matches nothing.
//
// A RegexSet is immutable after construction and safe to use concurrently
// from multiple goroutines.
type RegexSet struct {
	res      []*coregex.Regex
	patterns []string
	compiled bool // distinguishes an empty valid set from a degraded one

	// literals answers membership in O(n) when every pattern in the set is
	// a bare literal, the same bypass the engine applies to large literal
	// alternations.
	literals *ahocorasick.Automaton
}

// CompileSet compiles an ordered sequence of regular expression patterns
// into one set. Order and duplicates are preserved.
//
// Under the default tolerant build, any single invalid pattern yields a
// degraded set as a whole; under the strictregex build, CompileSet returns
// that pattern's compilation error unchanged.
func CompileSet(patterns []string) (*RegexSet, error) {
	res := make([]*coregex.Regex, 0, len(patterns))
	for _, p := range patterns {
		re, err := coregex.Compile(p)
		if err != nil {
			if tolerateInvalid {
				return &RegexSet{}, nil
			}
			return nil, err
		}
		res = append(res, re)
	}

	s := &RegexSet{
		res:      res,
		patterns: append([]string(nil), patterns...),
		compiled: true,
	}
	s.literals = literalAutomaton(patterns)
	return s, nil
}

// literalAutomaton builds an Aho-Corasick automaton over patterns when all
// of them are bare literals, so a literal pattern matches a haystack exactly
// when the haystack contains it as a substring. Returns nil when any pattern
// uses metacharacters or the set is empty.
func literalAutomaton(patterns []string) *ahocorasick.Automaton {
	if len(patterns) == 0 {
		return nil
	}
	builder := ahocorasick.NewBuilder()
	for _, p := range patterns {
		if coregex.QuoteMeta(p) != p {
			return nil
		}
		builder.AddPattern([]byte(p))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return auto
}

// Patterns returns the source texts the set was compiled from, in input
// order. A degraded set reports no patterns. The returned slice is shared
// and must not be modified.
func (s *RegexSet) Patterns() []string {
	if !s.compiled {
		return nil
	}
	return s.patterns
}

// MatchString reports whether the string s matches at least one pattern in
// the set. A degraded set matches nothing.
func (s *RegexSet) MatchString(haystack string) bool {
	if !s.compiled {
		return false
	}
	if s.literals != nil {
		return s.literals.IsMatch([]byte(haystack))
	}
	for _, re := range s.res {
		if re.MatchString(haystack) {
			return true
		}
	}
	return false
}

// Matches returns a sequence of the indices of the patterns that match the
// string s, in input order, produced lazily: each pattern is only tested
// when the sequence advances past the previous one. A degraded set yields
// an empty sequence.
//
// Example:
//
//	set, _ := tolerant.CompileSet([]string{`\d+`, `[a-z]+`, `^x`})
//	for i := range set.Matches("abc123") {
//	    fmt.Println(i) // 0, then 1
//	}
func (s *RegexSet) Matches(haystack string) iter.Seq[int] {
	if !s.compiled {
		return lazy.None[int]()
	}
	return lazy.Seq(func(yield func(int) bool) {
		for i, re := range s.res {
			if re.MatchString(haystack) && !yield(i) {
				return
			}
		}
	})
}
