package relocate

import "strings"

// Apply rewrites a dotted or slashed class or package name with the rule whose
// From is the longest prefix of name ending at a segment boundary. It reports
// whether any rule applied.
func Apply(rules []Rule, name string) (string, bool) {
	sep := "."
	if strings.Contains(name, "/") {
		sep = "/"
	}

	best := -1
	bestLen := 0
	for i, rule := range rules {
		from := toSeparator(rule.From, sep)
		if len(from) <= bestLen || !hasSegmentPrefix(name, from, sep) {
			continue
		}
		best, bestLen = i, len(from)
	}
	if best < 0 {
		return name, false
	}

	return toSeparator(rules[best].To, sep) + name[bestLen:], true
}

func hasSegmentPrefix(name, prefix, sep string) bool {
	if name == prefix {
		return true
	}
	return strings.HasPrefix(name, prefix+sep)
}

func toSeparator(pkg, sep string) string {
	if sep == "/" {
		return strings.ReplaceAll(pkg, ".", "/")
	}
	return strings.ReplaceAll(pkg, "/", ".")
}
