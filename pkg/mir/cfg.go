package mir

// Cfg is a conditional-compilation guard, carried opaquely through the
// pipeline and emitted verbatim (spec §9 design note: "do not try to
// evaluate cfg expressions during compilation"). The empty Cfg means
// "always active".
type Cfg struct {
	// Exprs holds zero or more conjuncts. An empty slice means "always
	// active"; multiple entries are combined with logical AND.
	Exprs []string
}

// NoCfg is the always-active guard.
var NoCfg = Cfg{}

// IsEmpty reports whether this guard has no conjuncts (always active).
func (c Cfg) IsEmpty() bool { return len(c.Exprs) == 0 }

// Combine returns the conjunction of c and other, deduplicating identical
// conjuncts and preserving first-seen order so that repeated combination
// (e.g. re-running propagate_cfg) is idempotent (spec §8 property 2).
func (c Cfg) Combine(other Cfg) Cfg {
	if other.IsEmpty() {
		return c
	}

	if c.IsEmpty() {
		return other
	}

	seen := make(map[string]bool, len(c.Exprs)+len(other.Exprs))
	out := make([]string, 0, len(c.Exprs)+len(other.Exprs))

	for _, e := range append(append([]string{}, c.Exprs...), other.Exprs...) {
		if seen[e] {
			continue
		}

		seen[e] = true

		out = append(out, e)
	}

	return Cfg{Exprs: out}
}

// Render renders the guard as a Rust-style `all(...)` conjunction for
// emission, or "" when always active.
func (c Cfg) Render() string {
	if c.IsEmpty() {
		return ""
	}

	if len(c.Exprs) == 1 {
		return c.Exprs[0]
	}

	out := "all("

	for i, e := range c.Exprs {
		if i > 0 {
			out += ", "
		}

		out += e
	}

	return out + ")"
}
