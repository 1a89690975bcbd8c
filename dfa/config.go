package dfa

import "github.com/parexlang/parex/errs"

// Config configures eager subset construction, mirroring the
// Config/DefaultConfig/Validate trio used throughout this module (compare
// the retrieved coregx/coregex lazy DFA's own Config).
//
// Unlike a lazy DFA, construction here happens once, up front, and the
// entire transition table is materialized before the first match — the
// parallel matcher needs every row available to every worker goroutine
// without synchronizing on a shared cache.
type Config struct {
	// MaxStates bounds the number of DFA states eager subset construction
	// may allocate before giving up. Complement and intersection of large
	// patterns can blow this up; callers that expect large automata
	// (spec's stress scenario asks for >=10,000 states) should raise it
	// accordingly.
	MaxStates uint32
}

// DefaultConfig returns sensible defaults for everyday patterns.
func DefaultConfig() Config {
	return Config{MaxStates: 100_000}
}

// Validate reports whether the configuration is usable.
func (c *Config) Validate() error {
	if c.MaxStates == 0 {
		return &errs.ConfigError{Field: "MaxStates", Message: "must be > 0"}
	}
	return nil
}

// WithMaxStates returns a copy of c with MaxStates set.
func (c Config) WithMaxStates(n uint32) Config {
	c.MaxStates = n
	return c
}
