package fret

// DefaultMarker is the fork marker used when Options.Marker is empty.
const DefaultMarker = "fork"

// Options configures family resolution behavior.
type Options struct {
	// Marker is the fork's distinguishing prerelease identifier
	// (e.g. "bscotch" in v1.2.3-bscotch.4). Empty means DefaultMarker.
	Marker string
}

// DefaultOptions returns a practical preset for fork releases:
//
//   - Marker: DefaultMarker ("fork")
func DefaultOptions() Options {
	return Options{Marker: DefaultMarker}
}

// normalized returns a copy with implicit defaults applied.
func (o Options) normalized() Options {
	out := o

	if out.Marker == "" {
		out.Marker = DefaultMarker
	}

	return out
}

// ParseMarker maps a free-form string to a usable fork marker.
// The input is lowercased and trimmed; it must be a SemVer alphanumeric
// identifier (ASCII letters, digits, hyphens, at least one non-digit) so
// it can never collide with the numeric counter identifiers that follow
// it. Anything else falls back to DefaultMarker.
func ParseMarker(s string) string {
	t := toTok(s)
	if t == "" {
		return DefaultMarker
	}

	hasAlpha := false
	for i := 0; i < len(t); i++ {
		c := t[i]
		switch {
		case c >= 'a' && c <= 'z' || c == '-':
			hasAlpha = true
		case c >= '0' && c <= '9':
		default:
			return DefaultMarker
		}
	}

	if !hasAlpha {
		return DefaultMarker
	}

	return t
}

// SortMode controls family listing order.
type SortMode uint8

const (
	// SortNone preserves the input order.
	SortNone SortMode = iota
	// SortAsc sorts ascending by SemVer precedence.
	SortAsc
	// SortDesc sorts descending by SemVer precedence.
	SortDesc
)

// String returns a stable textual representation for SortMode.
func (m SortMode) String() string {
	switch m {
	case SortAsc:
		return "ascending"
	case SortDesc:
		return "descending"
	default:
		return "none"
	}
}

// ParseSort maps strings to SortMode.
// Supported aliases:
//
//	asc:  "asc","ascending","inc","increase","up"
//	desc: "desc","descending","dec","decrease","down"
//	none: "none","default","asis"
func ParseSort(s string) SortMode {
	switch toTok(s) {
	// ascending (low -> high)
	case "asc", "ascending", "inc", "increase", "up":
		return SortAsc

	// descending (high -> low)
	case "desc", "descending", "dec", "decrease", "down":
		return SortDesc

	// as is
	case "none", "default", "asis":
		return SortNone

	default:
		return SortNone
	}
}
