package format

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/backtoschool/progcompare/pkg/program"
)

// bullet separates qualifications in the entry requirements line.
const bullet = " • "

type qualification struct {
	label string
	key   string // normalized key, see normalizeKey
	// scalar is the sub-field a bare value stands for, e.g. {"diploma": 3.0}.
	scalar string
}

var qualifications = []qualification{
	{label: "STPM", key: "stpm", scalar: "cgpa"},
	{label: "A-Level", key: "alevel", scalar: "grade"},
	{label: "Diploma", key: "diploma", scalar: "cgpa"},
	{label: "Foundation", key: "foundation", scalar: "cgpa"},
}

var entryStrategy = strategy{
	plain:      verbatim,
	malformed:  cleanMalformed,
	structured: entryParts,
}

// EntryRequirements renders admission requirements. Known qualifications
// (STPM, A-Level, Diploma, Foundation) come first as
// "<Label>: CGPA 3.5; Subjects: Biology, Chemistry"; any other keys follow
// as "key: value". Parts are joined with a bullet.
func EntryRequirements(r program.Raw) string { return entryStrategy.apply(r) }

func entryParts(v any) string {
	var parts []string
	switch t := v.(type) {
	case program.Object:
		handled := make(map[int]bool)
		for _, q := range qualifications {
			found := false
			for i, m := range t {
				if normalizeKey(m.Key) != q.key {
					continue
				}
				// Every spelling is consumed; the first one with content wins.
				handled[i] = true
				if found {
					continue
				}
				if part := qualificationPart(q, m.Value); part != "" {
					parts = append(parts, part)
					found = true
				}
			}
		}
		for i, m := range t {
			if handled[i] {
				continue
			}
			if part := genericPart(m.Key, m.Value); part != "" {
				parts = append(parts, part)
			}
		}
	case []any:
		for _, item := range t {
			if s := strings.Join(leaves(item), ", "); s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(parts, bullet)
}

func qualificationPart(q qualification, v any) string {
	var fields []string
	switch t := v.(type) {
	case program.Object:
		if s := scalar(subField(t, "cgpa")); s != "" {
			fields = append(fields, "CGPA "+s)
		}
		if s := scalar(subField(t, "grade")); s != "" {
			fields = append(fields, "Grade "+s)
		}
		if s := scalar(subField(t, "minimumpasses")); s != "" {
			fields = append(fields, "Minimum Passes: "+s)
		}
		if subjects := leaves(subField(t, "subjects")); len(subjects) > 0 {
			fields = append(fields, "Subjects: "+strings.Join(subjects, ", "))
		}
	case []any:
		if subjects := leaves(t); len(subjects) > 0 {
			fields = append(fields, "Subjects: "+strings.Join(subjects, ", "))
		}
	default:
		if s := scalar(t); s != "" {
			if q.scalar == "grade" {
				fields = append(fields, "Grade "+s)
			} else {
				fields = append(fields, "CGPA "+s)
			}
		}
	}
	if len(fields) == 0 {
		return ""
	}
	return q.label + ": " + strings.Join(fields, "; ")
}

func subField(o program.Object, key string) any {
	for _, m := range o {
		if normalizeKey(m.Key) == key {
			return m.Value
		}
	}
	return nil
}

// genericPart renders an unrecognized key, flattening one level of nesting.
func genericPart(key string, v any) string {
	switch t := v.(type) {
	case program.Object:
		var sub []string
		for _, m := range t {
			var s string
			if arr, ok := m.Value.([]any); ok {
				s = strings.Join(leaves(arr), ", ")
			} else {
				s = scalar(m.Value)
			}
			if s != "" {
				sub = append(sub, m.Key+": "+s)
			}
		}
		if len(sub) == 0 {
			return ""
		}
		return key + ": " + strings.Join(sub, "; ")
	case []any:
		items := leaves(t)
		if len(items) == 0 {
			return ""
		}
		return key + ": " + strings.Join(items, ", ")
	default:
		if s := scalar(t); s != "" {
			return key + ": " + s
		}
		return ""
	}
}

// normalizeKey folds case and drops separators: "A-Level", "a_level",
// "A Level" and "aLevel" all become "alevel".
func normalizeKey(k string) string {
	var b strings.Builder
	for _, r := range k {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

var (
	malformedStrip = strings.NewReplacer("{", "", "}", "", "[", "", "]", "", `"`, "")
	commaSpacing   = regexp.MustCompile(`\s*,\s*`)
	colonSpacing   = regexp.MustCompile(`\s*:\s*`)
)

// cleanMalformed salvages a JSON-looking string that failed to parse.
func cleanMalformed(s string) string {
	s = malformedStrip.Replace(s)
	s = commaSpacing.ReplaceAllString(s, ", ")
	s = colonSpacing.ReplaceAllString(s, ": ")
	return strings.TrimSpace(s)
}
