package usecase

import "strings"

// normalizeQuery trims and lower-cases a free-text query
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// normalizeKey turns a catalog slug into comparable text: "bamboo-cup" -> "bamboo cup"
func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "-", " "))
}

// normalizeName lower-cases a product name
func normalizeName(name string) string {
	return strings.ToLower(name)
}

// containsEither reports whether a contains b or b contains a
func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
