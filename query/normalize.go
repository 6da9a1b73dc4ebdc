// Package query rewrites, validates and dispatches XPath expressions
// against parsed documents. Its main job is the SVG default-namespace
// problem: SVG declares xmlns="http://www.w3.org/2000/svg", which XPath
// 1.0 treats as a real namespace requiring explicit binding, so an
// unprefixed //rect silently matches nothing. Normalize rewrites such
// user-friendly fragments into namespace-agnostic local-name() form.
package query

import "strings"

// SVGNamespace is the URI bound to the "svg" prefix in every namespace
// map returned by Normalize.
const SVGNamespace = "http://www.w3.org/2000/svg"

var pathPrefixes = []string{"//", ".//", "/", "./", "(", "@"}

func hasPathPrefix(s string) bool {
	for _, p := range pathPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Normalize rewrites a raw XPath fragment into a namespace-safe
// equivalent for SVG documents and returns it with the namespace map
// needed to evaluate it. Element and attribute names are rewritten into
// local-name() predicate form rather than prefixed, so multiple
// namespaces in one document (SVG plus embedded RDF metadata, say) need
// no per-step bookkeeping.
//
// Expressions that already use local-name(), or that carry their own
// namespace prefix (a colon with no leading path token; literal colons
// inside predicates false-trigger this, an accepted limitation), pass
// through unchanged. Empty input means "everything": //*.
//
// Normalize never fails; a step it cannot classify is treated as a bare
// element name.
func Normalize(raw string) (string, map[string]string) {
	namespaces := map[string]string{"svg": SVGNamespace}

	if strings.Contains(raw, "local-name()") {
		return raw, namespaces
	}
	if strings.Contains(raw, ":") && !hasPathPrefix(strings.TrimLeft(raw, " \t\n\r")) {
		return raw, namespaces
	}
	if strings.TrimSpace(raw) == "" {
		return "//*", namespaces
	}
	if strings.HasPrefix(raw, "@") {
		return normalizeAttribute(raw), namespaces
	}
	if !strings.ContainsAny(raw, "[]/()@") {
		return `//*[local-name()="` + raw + `"]`, namespaces
	}

	parts := strings.Split(raw, "/")
	rewritten := make([]string, 0, len(parts))
	for _, part := range parts {
		rewritten = append(rewritten, normalizeStep(part))
	}
	result := strings.Join(rewritten, "/")
	if !hasPathPrefix(result) {
		result = "//" + result
	}
	return result, namespaces
}

func normalizeStep(step string) string {
	switch step {
	// Empty steps preserve a leading // and repeated separators; the
	// rest are namespace-independent node tests and axis shorthands.
	case "", ".", "..", "*", "text()", "node()":
		return step
	}
	if strings.HasPrefix(step, "@") {
		return normalizeAttribute(step)
	}
	if i := strings.Index(step, "["); i >= 0 && strings.Contains(step, "]") {
		elem := step[:i]
		pred := normalizePredicate(step[i:])
		switch elem {
		case "":
			return pred
		// The wildcard already matches namespaced elements.
		case "*":
			return "*" + pred
		}
		return `*[local-name()="` + elem + `"]` + pred
	}
	// Fallback for anything else, including fragments mangled by the
	// separator split: treat as a bare element name.
	return `*[local-name()="` + step + `"]`
}

// normalizeAttribute rewrites @name so the attribute test matches by
// local name regardless of any namespace the document put on it.
func normalizeAttribute(step string) string {
	name := step[1:]
	if name == "*" {
		return step
	}
	return `@*[local-name()="` + name + `"]`
}

// normalizePredicate rewrites a single attribute-equality predicate,
// [@attr='value'], into namespace-agnostic form. Compound, positional
// and function predicates pass through verbatim.
func normalizePredicate(pred string) string {
	name, value, ok := splitAttrEquality(pred)
	if !ok {
		return pred
	}
	return "[@*[local-name()='" + name + "']='" + value + "']"
}

func splitAttrEquality(pred string) (name, value string, ok bool) {
	if !strings.HasPrefix(pred, "[@") || !strings.HasSuffix(pred, "]") {
		return "", "", false
	}
	body := pred[2 : len(pred)-1]
	eq := strings.Index(body, "=")
	if eq < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(body[:eq])
	if name == "" || name == "*" || strings.ContainsAny(name, "@[]()'\"<> =") {
		return "", "", false
	}
	quoted := strings.TrimSpace(body[eq+1:])
	if len(quoted) < 2 {
		return "", "", false
	}
	quote := quoted[0]
	if (quote != '\'' && quote != '"') || quoted[len(quoted)-1] != quote {
		return "", "", false
	}
	value = quoted[1 : len(quoted)-1]
	// An interior quote means the predicate holds more than one literal
	// (or needs escaping the rewritten single-quoted form cannot give).
	if strings.Contains(value, "'") || strings.Contains(value, string(quote)) {
		return "", "", false
	}
	return name, value, true
}
