//go:build !strictregex

package tolerant

// tolerateInvalid selects how construction handles a pattern that fails to
// compile. In the default build an invalid pattern degrades into a matcher
// that never matches; building with the strictregex tag surfaces the
// engine's compilation error instead. Exactly one policy is active per
// build artifact.
const tolerateInvalid = true
