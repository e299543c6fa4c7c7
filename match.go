package mapstruct

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// MatchRule is a compiled user-supplied matching predicate, evaluated
// as the last cascade strategy. The expression sees two variables,
// "source" and "target", each a Field.
type MatchRule struct {
	Source  string
	program *vm.Program
}

// CompileMatchRules compiles the match_rules expressions from config.
func CompileMatchRules(sources []string) ([]MatchRule, error) {
	rules := make([]MatchRule, 0, len(sources))

	for _, src := range sources {
		program, err := expr.Compile(src, expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compiling match rule %q: %w", src, err)
		}

		rules = append(rules, MatchRule{Source: src, program: program})
	}

	return rules, nil
}

// Matcher proposes target fields for source fields using an ordered
// cascade of string-similarity strategies. The zero value is usable and
// runs the four built-in strategies only.
type Matcher struct {
	rules []MatchRule
}

// NewMatcher creates a matcher with optional user rules appended to the
// built-in cascade.
func NewMatcher(rules ...MatchRule) *Matcher {
	return &Matcher{rules: rules}
}

// Match proposes zero or one target field for source. Targets whose
// identity appears in claimed are skipped; pass nil for manual matching,
// where reuse is allowed. The first strategy to succeed wins; there is
// no scoring across strategies.
func (m *Matcher) Match(source Field, targets []Field, claimed map[FieldID]bool) (Field, bool) {
	type strategy func(Field, []Field, map[FieldID]bool) (Field, bool)

	strategies := []strategy{
		matchExact,
		matchStrippedPrefix,
		matchSubstring,
		matchCleanedRoles,
		m.matchRules,
	}

	for _, s := range strategies {
		if f, ok := s(source, targets, claimed); ok {
			return f, true
		}
	}

	return Field{}, false
}

// matchExact: case-insensitive equality on the raw names.
func matchExact(source Field, targets []Field, claimed map[FieldID]bool) (Field, bool) {
	return matchName(source.Name, targets, claimed)
}

// matchStrippedPrefix: strip a recognized directional prefix from the
// source name and retry exact matching.
func matchStrippedPrefix(source Field, targets []Field, claimed map[FieldID]bool) (Field, bool) {
	stripped := StripDirectionPrefix(source.Name)
	if stripped == source.Name {
		return Field{}, false
	}

	return matchName(stripped, targets, claimed)
}

// matchSubstring: either lower-cased name contains the other. The first
// target in catalog order wins; when several targets satisfy the
// relation the outcome depends on catalog order. The editor behaved the
// same way, so no tie-break is applied here.
func matchSubstring(source Field, targets []Field, claimed map[FieldID]bool) (Field, bool) {
	src := strings.ToLower(source.Name)
	if src == "" {
		return Field{}, false
	}

	for _, t := range targets {
		if claimed[t.ID()] {
			continue
		}

		tgt := strings.ToLower(t.Name)
		if strings.Contains(tgt, src) || strings.Contains(src, tgt) {
			return t, true
		}
	}

	return Field{}, false
}

// matchCleanedRoles: strip the "dto" role prefix from the source name
// and the "dao" role prefix from the target name, drop a trailing
// "field" from both, then exact-match the cleaned names.
func matchCleanedRoles(source Field, targets []Field, claimed map[FieldID]bool) (Field, bool) {
	src := cleanRoleName(source.Name, sourceRolePrefix)

	for _, t := range targets {
		if claimed[t.ID()] {
			continue
		}

		if strings.EqualFold(src, cleanRoleName(t.Name, targetRolePrefix)) {
			return t, true
		}
	}

	return Field{}, false
}

// matchRules: user-configured expr predicates, in config order.
func (m *Matcher) matchRules(source Field, targets []Field, claimed map[FieldID]bool) (Field, bool) {
	for _, rule := range m.rules {
		for _, t := range targets {
			if claimed[t.ID()] {
				continue
			}

			env := map[string]any{"source": source, "target": t}

			out, err := expr.Run(rule.program, env)
			if err != nil {
				// A failing rule must not abort the cascade.
				continue
			}

			if ok, _ := out.(bool); ok {
				return t, true
			}
		}
	}

	return Field{}, false
}

func matchName(name string, targets []Field, claimed map[FieldID]bool) (Field, bool) {
	for _, t := range targets {
		if claimed[t.ID()] {
			continue
		}

		if strings.EqualFold(name, t.Name) {
			return t, true
		}
	}

	return Field{}, false
}

// StripDirectionPrefix removes a recognized directional prefix from a
// source field name, or returns the name unchanged.
func StripDirectionPrefix(name string) string {
	for _, prefix := range []string{OutputPrefix, InputPrefix} {
		if strings.HasPrefix(name, prefix) {
			return name[len(prefix):]
		}
	}

	return name
}

func cleanRoleName(name, rolePrefix string) string {
	lower := strings.ToLower(name)

	if strings.HasPrefix(lower, rolePrefix) {
		name = name[len(rolePrefix):]
		lower = lower[len(rolePrefix):]
	}

	if strings.HasSuffix(lower, roleFieldSuffix) {
		name = name[:len(name)-len(roleFieldSuffix)]
	}

	return name
}
