package reconcile

import "strings"

// stopWords are filler tokens that must never drive a match on their own.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true,
	"to": true, "for": true, "with": true,
	"and": true, "or": true,
}

var affixes = []string{"designed to", "to", "for", "with", "and", "or", "the", "a", "an"}

// MatchTask resolves a free-text activity description against the literal
// task catalog. The cascade is a versioned contract: exact match after
// affix stripping, then token-boundary containment of a full task name, then
// reverse containment for short descriptions, then a token-level fallback.
// It returns "" when nothing matches, so explanatory prose from the generator
// is discarded instead of becoming a task.
func MatchTask(description string, tasks []string) string {
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" {
		return ""
	}
	desc = stripAffixes(desc)

	// Exact, case-insensitive.
	for _, task := range tasks {
		name := strings.ToLower(strings.TrimSpace(task))
		if name == "" {
			continue
		}
		if desc == name {
			return task
		}
	}

	// Description contains the full task name at a token boundary.
	for _, task := range tasks {
		name := strings.ToLower(strings.TrimSpace(task))
		if name == "" {
			continue
		}
		if idx := strings.Index(desc, name); idx >= 0 && boundedAt(desc, idx, len(name)) {
			return task
		}
	}

	// Short descriptions may be a fragment of a longer task name.
	if len(desc) <= 20 && len(desc) >= 2 {
		for _, task := range tasks {
			name := strings.ToLower(strings.TrimSpace(task))
			if name != "" && strings.Contains(name, desc) {
				return task
			}
		}
	}

	// Token-level fallback: any meaningful description word related to a task
	// name by containment in either direction.
	for _, word := range strings.Fields(desc) {
		if len(word) < 2 || stopWords[word] {
			continue
		}
		for _, task := range tasks {
			name := strings.ToLower(strings.TrimSpace(task))
			if name == "" {
				continue
			}
			if strings.Contains(name, word) || strings.Contains(word, name) {
				return task
			}
		}
	}
	return ""
}

// stripAffixes removes one leading and one trailing filler phrase.
func stripAffixes(desc string) string {
	for _, a := range affixes {
		if strings.HasPrefix(desc, a+" ") {
			desc = strings.TrimSpace(desc[len(a)+1:])
			break
		}
	}
	for _, a := range affixes {
		if strings.HasSuffix(desc, " "+a) {
			desc = strings.TrimSpace(desc[:len(desc)-len(a)-1])
			break
		}
	}
	return desc
}

// boundedAt reports whether desc[idx:idx+n] sits at token boundaries, where a
// boundary is start/end of string, a space, or a colon.
func boundedAt(desc string, idx, n int) bool {
	if idx > 0 {
		switch desc[idx-1] {
		case ' ', ':':
		default:
			return false
		}
	}
	if end := idx + n; end < len(desc) {
		switch desc[end] {
		case ' ', ':':
		default:
			return false
		}
	}
	return true
}
