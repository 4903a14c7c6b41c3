// Package mimetype parses and compares type/subtype media types.
package mimetype

import "strings"

// MimeType is a parsed type/subtype pair. Parameters are discarded.
type MimeType struct {
	// Type is the top-level type (e.g., "application").
	Type string

	// Subtype is the subtype (e.g., "json").
	Subtype string
}

// Wildcard matches every other MimeType.
var Wildcard = MimeType{Type: "*", Subtype: "*"}

// Missing is the MimeType used when a response does not declare one.
var Missing = MimeType{Type: "missing", Subtype: "missing"}

// Parse parses "type/subtype", ignoring surrounding whitespace and any
// parameters after ';'. The case is preserved as given. It returns false
// unless there are exactly two slash-separated components.
func Parse(s string) (MimeType, bool) {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, ';'); idx >= 0 {
		s = s[:idx]
	}
	components := strings.Split(s, "/")
	if len(components) != 2 {
		return MimeType{}, false
	}
	mt := MimeType{
		Type:    strings.TrimSpace(components[0]),
		Subtype: strings.TrimSpace(components[1]),
	}
	return mt, true
}

// ParseAll parses each element of values, silently skipping those that
// cannot be parsed.
func ParseAll(values []string) (out []MimeType) {
	for _, value := range values {
		if mt, good := Parse(value); good {
			out = append(out, mt)
		}
	}
	return
}

// IsWildcard returns whether both type and subtype are "*".
func (mt MimeType) IsWildcard() bool {
	return mt.Type == "*" && mt.Subtype == "*"
}

// Matches returns true when either side is a wildcard or when both the
// type and the subtype are equal.
func (mt MimeType) Matches(other MimeType) bool {
	if mt.IsWildcard() || other.IsWildcard() {
		return true
	}
	return mt.Type == other.Type && mt.Subtype == other.Subtype
}

// MatchesAny returns whether mt matches at least one of candidates.
func (mt MimeType) MatchesAny(candidates []MimeType) bool {
	for _, candidate := range candidates {
		if candidate.Matches(mt) {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (mt MimeType) String() string {
	return mt.Type + "/" + mt.Subtype
}
