//go:build !strictregex

package tolerant

import (
	"slices"
	"testing"
)

// These tests exercise the degraded state and therefore only apply to the
// tolerant build, where invalid patterns survive construction.

func compileDegraded(t *testing.T, pattern string) *Regex {
	t.Helper()
	re, err := Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q) = %v, want tolerated nil error", pattern, err)
	}
	if re.re != nil {
		t.Fatalf("Compile(%q) produced a live engine handle, want degraded", pattern)
	}
	return re
}

func TestDegradedConstruction(t *testing.T) {
	for _, pattern := range []string{"(", "[invalid", `\`, "*abc", `\8`} {
		compileDegraded(t, pattern)
	}
}

func TestDegradedQueries(t *testing.T) {
	re := compileDegraded(t, "(")
	const input = "anything"

	if re.MatchString(input) {
		t.Error("MatchString = true, want false")
	}
	if got := re.String(); got != "invalid" {
		t.Errorf("String() = %q, want %q", got, "invalid")
	}
	if got := re.FindString(input); got != "" {
		t.Errorf("FindString = %q, want empty", got)
	}
	if got := re.FindStringIndex(input); got != nil {
		t.Errorf("FindStringIndex = %v, want nil", got)
	}
	if got := re.FindStringIndexAt(input, 3); got != nil {
		t.Errorf("FindStringIndexAt = %v, want nil", got)
	}
	if got := re.FindAllString(input, -1); got != nil {
		t.Errorf("FindAllString = %v, want nil", got)
	}
	if got := re.CountString(input); got != 0 {
		t.Errorf("CountString = %d, want 0", got)
	}
	if got := re.FindStringSubmatch(input); got != nil {
		t.Errorf("FindStringSubmatch = %v, want nil", got)
	}
}

// TestDegradedSequences verifies that every sequence-returning query on a
// degraded Regex terminates immediately with zero elements instead of
// erroring.
func TestDegradedSequences(t *testing.T) {
	re := compileDegraded(t, "(")
	const input = "a b c"

	for range re.FindSeq(input) {
		t.Fatal("FindSeq yielded an element, want none")
	}
	for range re.SplitSeq(input) {
		t.Fatal("SplitSeq yielded an element, want none")
	}
	for range re.SubmatchSeq(input) {
		t.Fatal("SubmatchSeq yielded an element, want none")
	}
	for range re.CaptureNames() {
		t.Fatal("CaptureNames yielded an element, want none")
	}
}

func TestDegradedReplaceUnchanged(t *testing.T) {
	re := compileDegraded(t, "(")
	const src = "axbxc"

	if got := re.ReplaceFirstString(src, "_"); got != src {
		t.Errorf("ReplaceFirstString = %q, want %q unchanged", got, src)
	}
	if got := re.ReplaceAllString(src, "_"); got != src {
		t.Errorf("ReplaceAllString = %q, want %q unchanged", got, src)
	}
}

// TestDegradedIdempotence: the degraded state is terminal; queries stay
// degraded no matter how often they run.
func TestDegradedIdempotence(t *testing.T) {
	re := compileDegraded(t, "(")
	for i := 0; i < 3; i++ {
		if re.MatchString("aaa") {
			t.Fatalf("MatchString run %d = true, want false", i)
		}
		if got := re.String(); got != "invalid" {
			t.Fatalf("String() run %d = %q, want %q", i, got, "invalid")
		}
	}
}

// TestTolerantValidUnaffected: tolerance must not change behavior for
// patterns that do compile.
func TestTolerantValidUnaffected(t *testing.T) {
	re := mustCompile(t, `^a+$`)
	if !re.MatchString("aaa") {
		t.Error("MatchString(aaa) = false, want true")
	}
	re = mustCompile(t, `x`)
	if got := re.ReplaceAllString("axbxc", "_"); got != "a_b_c" {
		t.Errorf("ReplaceAllString = %q, want %q", got, "a_b_c")
	}
}

// TestSetAllOrNothing: one invalid pattern degrades the whole set, even
// though other members were individually valid.
func TestSetAllOrNothing(t *testing.T) {
	set, err := CompileSet([]string{"a", "("})
	if err != nil {
		t.Fatalf("CompileSet = %v, want tolerated nil error", err)
	}

	if got := set.Patterns(); len(got) != 0 {
		t.Errorf("Patterns() = %q, want empty", got)
	}
	if set.MatchString("a") {
		t.Error("MatchString(a) = true, want false")
	}
	if got := slices.Collect(set.Matches("a")); len(got) != 0 {
		t.Errorf("Matches(a) = %v, want empty", got)
	}
}
