// Package tolerant provides fault-tolerant wrappers around the coregex
// engine for systems that aggregate many patterns from untrusted input.
//
// Rule engines, filter lists and similar systems often load hundreds of
// patterns from configuration they do not control. With the plain engine a
// single bad pattern aborts the whole batch. This package instead lets a bad
// pattern degrade into a matcher that never matches anything, so the rest of
// the batch keeps working:
//
//	re, _ := tolerant.Compile(`(`) // invalid, but construction succeeds
//	re.MatchString("anything")     // always false
//	re.String()                    // "invalid"
//
// Whether invalid patterns degrade or fail construction is fixed per build.
// The default build tolerates them; building with the "strictregex" tag makes
// Compile and CompileSet return the engine's compilation error instead, with
// no other behavioral difference.
//
// A degraded matcher is indistinguishable from a valid pattern that happens
// to never match. That ambiguity is the deliberate trade: availability over
// error visibility.
//
// Both Regex and RegexSet are immutable after construction and safe to use
// concurrently from multiple goroutines.
package tolerant

import (
	"iter"

	"github.com/coregx/coregex"

	"github.com/coregx/tolerant/lazy"
)

// invalidSource is what String reports for a degraded Regex.
const invalidSource = "invalid"

// Regex is a compiled regular expression that may be degraded.
//
// A degraded Regex is one whose source failed to compile under the tolerant
// build. It answers every query with the corresponding "no match" value and
// never returns an error or panics. Whether a Regex is degraded is fixed at
// construction and never changes.
type Regex struct {
	re *coregex.Regex // nil when degraded
}

// Compile compiles a regular expression pattern.
//
// Syntax is the engine's (Perl-compatible, same as stdlib regexp). Under the
// default tolerant build an invalid pattern still yields a usable Regex: a
// degraded one that matches nothing. Under the strictregex build, Compile
// returns the engine's compilation error unchanged.
//
// Example:
//
//	re, err := tolerant.Compile(`^a+$`)
//	if err != nil {
//	    // only reachable in strictregex builds
//	}
//	re.MatchString("aaa") // true
func Compile(pattern string) (*Regex, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		if tolerateInvalid {
			return &Regex{}, nil
		}
		return nil, err
	}
	return &Regex{re: re}, nil
}

// String returns the source text used to compile the regular expression, or
// "invalid" when the Regex is degraded.
func (r *Regex) String() string {
	if r.re == nil {
		return invalidSource
	}
	return r.re.String()
}

// MatchString reports whether the string s contains any match of the pattern.
// A degraded Regex matches nothing.
func (r *Regex) MatchString(s string) bool {
	if r.re == nil {
		return false
	}
	return r.re.MatchString(s)
}

// FindString returns the text of the leftmost match in s, or the empty
// string if there is no match or the Regex is degraded. Use FindStringIndex
// to distinguish an empty match from no match.
func (r *Regex) FindString(s string) string {
	if r.re == nil {
		return ""
	}
	return r.re.FindString(s)
}

// FindStringIndex returns a two-element slice defining the location of the
// leftmost match in s. It returns nil if there is no match or the Regex is
// degraded.
func (r *Regex) FindStringIndex(s string) []int {
	if r.re == nil {
		return nil
	}
	return r.re.FindStringIndex(s)
}

// FindStringIndexAt is like FindStringIndex but starts the search at byte
// offset at. The returned indices are relative to the start of s. Anchors
// anchor at the offset. It returns nil when at is out of range, there is no
// match, or the Regex is degraded.
func (r *Regex) FindStringIndexAt(s string, at int) []int {
	if r.re == nil || at < 0 || at > len(s) {
		return nil
	}
	loc := r.re.FindStringIndex(s[at:])
	if loc == nil {
		return nil
	}
	return []int{loc[0] + at, loc[1] + at}
}

// Match holds one match of a pattern in a haystack.
type Match struct {
	haystack   string
	start, end int
}

// Start returns the byte offset of the start of the match.
func (m Match) Start() int { return m.start }

// End returns the byte offset of the end of the match.
func (m Match) End() int { return m.end }

// String returns the matched text.
func (m Match) String() string { return m.haystack[m.start:m.end] }

// FindSeq returns a sequence of all successive non-overlapping matches of
// the pattern in s, produced lazily. A degraded Regex yields an empty
// sequence.
//
// Example:
//
//	re, _ := tolerant.Compile(`\d+`)
//	for m := range re.FindSeq("1 2 3") {
//	    fmt.Println(m.String())
//	}
func (r *Regex) FindSeq(s string) iter.Seq[Match] {
	if r.re == nil {
		return lazy.None[Match]()
	}
	return lazy.Seq(func(yield func(Match) bool) {
		for pos := 0; pos <= len(s); {
			loc := r.re.FindStringIndex(s[pos:])
			if loc == nil {
				return
			}
			start, end := pos+loc[0], pos+loc[1]
			if !yield(Match{haystack: s, start: start, end: end}) {
				return
			}
			if end > pos {
				pos = end
			} else {
				// Empty match: advance by 1 to avoid an infinite loop.
				pos++
			}
		}
	})
}

// SplitSeq returns a sequence of the substrings of s between successive
// matches of the pattern, produced lazily. When the pattern never matches,
// the sequence contains s itself. A degraded Regex yields an empty sequence.
func (r *Regex) SplitSeq(s string) iter.Seq[string] {
	if r.re == nil {
		return lazy.None[string]()
	}
	return lazy.Seq(func(yield func(string) bool) {
		last := 0
		for m := range r.FindSeq(s) {
			if !yield(s[last:m.Start()]) {
				return
			}
			last = m.End()
		}
		yield(s[last:])
	})
}

// FindAllString returns the text of all successive matches of the pattern in
// s. If n > 0, it returns at most n matches; if n <= 0, all matches. It
// returns nil if there are no matches or the Regex is degraded.
func (r *Regex) FindAllString(s string, n int) []string {
	if r.re == nil {
		return nil
	}
	return r.re.FindAllString(s, n)
}

// CountString returns the number of non-overlapping matches of the pattern
// in s. A degraded Regex counts zero.
func (r *Regex) CountString(s string) int {
	if r.re == nil {
		return 0
	}
	return r.re.CountString(s, -1)
}

// ReplaceFirstString returns a copy of src with the leftmost match of the
// pattern replaced by repl. Inside repl, $0 is the entire match and $1-$9
// are capture groups; $$ is a literal dollar sign. When there is no match,
// or the Regex is degraded, src is returned unchanged without copying.
func (r *Regex) ReplaceFirstString(src, repl string) string {
	if r.re == nil {
		return src
	}
	loc := r.re.FindStringSubmatchIndex(src)
	if loc == nil {
		return src
	}
	var b []byte
	b = append(b, src[:loc[0]]...)
	b = expand(b, repl, src, loc)
	b = append(b, src[loc[1]:]...)
	return string(b)
}

// ReplaceAllString returns a copy of src with all matches of the pattern
// replaced by repl, with $ expansion as in ReplaceFirstString. A degraded
// Regex returns src unchanged without copying.
func (r *Regex) ReplaceAllString(src, repl string) string {
	if r.re == nil {
		return src
	}
	return r.re.ReplaceAllString(src, repl)
}

// FindStringSubmatch returns the text of the leftmost match of the pattern
// in s and the matches of its capture groups. Index 0 is the entire match;
// unmatched groups are empty strings. It returns nil if there is no match
// or the Regex is degraded.
func (r *Regex) FindStringSubmatch(s string) []string {
	if r.re == nil {
		return nil
	}
	return r.re.FindStringSubmatch(s)
}

// SubmatchSeq returns a sequence of the capture groups of all successive
// matches of the pattern in s, produced lazily. Each element has the shape
// of FindStringSubmatch. A degraded Regex yields an empty sequence.
func (r *Regex) SubmatchSeq(s string) iter.Seq[[]string] {
	if r.re == nil {
		return lazy.None[[]string]()
	}
	return lazy.Seq(func(yield func([]string) bool) {
		for pos := 0; pos <= len(s); {
			loc := r.re.FindStringSubmatchIndex(s[pos:])
			if loc == nil {
				return
			}
			groups := make([]string, len(loc)/2)
			for i := range groups {
				lo, hi := loc[2*i], loc[2*i+1]
				if lo >= 0 && hi >= 0 {
					groups[i] = s[pos+lo : pos+hi]
				}
			}
			if !yield(groups) {
				return
			}
			end := pos + loc[1]
			if end > pos {
				pos = end
			} else {
				pos++
			}
		}
	})
}

// CaptureNames returns a sequence of the names of the pattern's capture
// groups, in group order. The first element is always the empty string,
// matching the convention that the whole match cannot be named; unnamed
// groups are empty strings. A degraded Regex yields an empty sequence.
func (r *Regex) CaptureNames() iter.Seq[string] {
	if r.re == nil {
		return lazy.None[string]()
	}
	return lazy.Values(r.re.SubexpNames())
}

// expand appends repl to dst, substituting $0-$9 with the corresponding
// group of the match described by loc, and $$ with a literal $. Unknown
// escapes are kept literally.
func expand(dst []byte, repl, src string, loc []int) []byte {
	for i := 0; i < len(repl); {
		if repl[i] != '$' || i+1 >= len(repl) {
			dst = append(dst, repl[i])
			i++
			continue
		}
		next := repl[i+1]
		switch {
		case next >= '0' && next <= '9':
			g := 2 * int(next-'0')
			if g+1 < len(loc) && loc[g] >= 0 {
				dst = append(dst, src[loc[g]:loc[g+1]]...)
			}
			i += 2
		case next == '$':
			dst = append(dst, '$')
			i += 2
		default:
			dst = append(dst, '$')
			i++
		}
	}
	return dst
}
