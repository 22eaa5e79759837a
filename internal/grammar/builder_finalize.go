// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package grammar

// Finalize performs basic structural validation — existence of rules, an
// entry non-terminal, and non-nil rule sets — and emits diagnostics. It
// does not panic; it records errors/warnings and returns the grammar
// anyway. GNF-specific validation (first-symbol-is-terminal, reachability,
// triangular eligibility, id-dense metadata) happens downstream in
// package normalize, which expects a grammar that has already passed
// Finalize.
func (b *Builder) Finalize() *Grammar {
	if b == nil || b.g == nil {
		return nil
	}
	g := b.g

	if len(g.RuleSets) == 0 {
		b.error(nil, "grammar has no non-terminals")
		return g
	}

	anyRules := false
	for _, rs := range g.RuleSets {
		if rs == nil || rs.NonTerm == nil {
			b.error(nil, "rule set has nil non-terminal")
			continue
		}
		if len(rs.Rules) == 0 {
			b.warn(rs.NonTerm.DeclaredAt, "non-terminal %q has no rules", rs.NonTerm.Name)
			continue
		}
		anyRules = true
	}
	if !anyRules {
		b.error(nil, "grammar has no rules")
	}

	if g.Entry == nil {
		b.error(nil, "entry non-terminal is not set and could not be inferred")
	} else if _, ok := g.NonTerminalByName(g.Entry.Name); !ok {
		b.error(g.Entry.DeclaredAt, "entry non-terminal %q is not interned in this grammar", g.Entry.Name)
	}

	return g
}
