package config

import "strings"

// NameSet is a set of function name patterns. A pattern is matched against
// every identity a call site exposes: the bare function name, pkg.Func,
// pkg.Type.Method, and the package-path qualified forms.
type NameSet []string

// ParseNames splits a comma-separated flag value into a NameSet.
func ParseNames(s string) NameSet {
	if s == "" {
		return nil
	}
	var set NameSet
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			set = append(set, part)
		}
	}
	return set
}

// Match reports whether any of the candidate identities is configured.
func (s NameSet) Match(candidates ...string) bool {
	for _, pattern := range s {
		for _, c := range candidates {
			if c != "" && c == pattern {
				return true
			}
		}
	}
	return false
}

// Empty reports whether no patterns are configured.
func (s NameSet) Empty() bool { return len(s) == 0 }

func (s NameSet) String() string { return strings.Join(s, ",") }

// Set implements flag.Value.
func (s *NameSet) Set(v string) error {
	*s = ParseNames(v)
	return nil
}
