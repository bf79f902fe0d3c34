package format

import (
	"strconv"
	"strings"

	"github.com/backtoschool/progcompare/pkg/program"
)

// shape classifies a coerced raw field.
type shape int

const (
	shapeEmpty      shape = iota
	shapePlain            // non-JSON prose
	shapeStructured       // object, array or scalar JSON
	shapeMalformed        // looked like JSON but did not parse
)

type coerced struct {
	shape shape
	text  string
	value any
}

// coerce resolves a Raw into one of four shapes. Strings are only parsed when
// their trimmed form is bounded by {} or [], or merely opened by one of them
// when open is set.
func coerce(r program.Raw, open bool) coerced {
	switch r.Kind() {
	case program.RawText:
		s := r.Text()
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return coerced{}
		}
		if !looksLikeJSON(trimmed) && !(open && opensJSON(trimmed)) {
			return coerced{shape: shapePlain, text: s}
		}
		v, err := program.ParseJSON([]byte(trimmed))
		if err != nil {
			return coerced{shape: shapeMalformed, text: s}
		}
		return structured(v)
	case program.RawStructured:
		return structured(r.Value())
	default:
		return coerced{}
	}
}

func structured(v any) coerced {
	if v == nil {
		return coerced{}
	}
	return coerced{shape: shapeStructured, value: v}
}

func looksLikeJSON(s string) bool {
	return (strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")) ||
		(strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"))
}

func opensJSON(s string) bool {
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

// strategy extracts display text from each shape of a field. A nil func
// renders that shape as "". With openJSON, a string that opens like JSON
// but is truncated counts as malformed instead of plain.
type strategy struct {
	openJSON   bool
	plain      func(string) string
	malformed  func(string) string
	structured func(any) string
}

func (s strategy) apply(r program.Raw) string {
	c := coerce(r, s.openJSON)
	var out string
	switch c.shape {
	case shapePlain:
		if s.plain != nil {
			out = s.plain(c.text)
		}
	case shapeMalformed:
		if s.malformed != nil {
			out = s.malformed(c.text)
		}
	case shapeStructured:
		if s.structured != nil {
			out = s.structured(c.value)
		}
	}
	return strings.TrimSpace(out)
}

func verbatim(s string) string { return s }

var (
	curriculumStrategy = strategy{
		openJSON: true,
		plain:    verbatim,
		structured: func(v any) string {
			return flattenList(v, func(item any) []string {
				if obj, ok := item.(program.Object); ok {
					if subjects, ok := obj.Get("subjects"); ok {
						return leaves(subjects)
					}
				}
				return leaves(item)
			})
		},
	}

	facilitiesStrategy = strategy{
		openJSON: true,
		plain:    verbatim,
		structured: func(v any) string {
			return flattenList(v, leaves)
		},
	}

	careerStrategy = strategy{
		openJSON: true,
		plain:    verbatim,
		structured: func(v any) string {
			return flattenList(v, func(item any) []string {
				if obj, ok := item.(program.Object); ok {
					if role, ok := obj.Get("role"); ok {
						return leaves(role)
					}
				}
				return leaves(item)
			})
		},
	}
)

// Curriculum flattens a curriculum into a comma-joined list of subjects.
// Entries shaped like {"year": 1, "subjects": [...]} contribute their subjects.
func Curriculum(r program.Raw) string { return curriculumStrategy.apply(r) }

// Facilities flattens a facility list or an object of facility groups.
func Facilities(r program.Raw) string { return facilitiesStrategy.apply(r) }

// CareerOutcomes flattens career outcomes. Object items contribute their role.
func CareerOutcomes(r program.Raw) string { return careerStrategy.apply(r) }

// flattenList joins the items of an array, or of every array value in an
// object, after mapping each item through extract.
func flattenList(v any, extract func(any) []string) string {
	var out []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			out = append(out, extract(item)...)
		}
	case program.Object:
		for _, m := range t {
			if arr, ok := m.Value.([]any); ok {
				for _, item := range arr {
					out = append(out, extract(item)...)
				}
			}
		}
	}
	return strings.Join(out, ", ")
}

// leaves returns the non-empty scalar strings found in v, descending into
// arrays and object values.
func leaves(v any) []string {
	switch t := v.(type) {
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, leaves(item)...)
		}
		return out
	case program.Object:
		var out []string
		for _, m := range t {
			out = append(out, leaves(m.Value)...)
		}
		return out
	default:
		if s := scalar(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

// scalar renders a JSON scalar. Objects and arrays render as "".
func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
