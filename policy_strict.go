//go:build strictregex

package tolerant

// tolerateInvalid is false under the strictregex build: Compile and
// CompileSet propagate the engine's compilation error to the caller.
const tolerateInvalid = false
