package explain

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/backtoschool/progcompare/pkg/format"
	"github.com/backtoschool/progcompare/pkg/program"
)

// SystemPrompt frames the model as a neutral advisor.
const SystemPrompt = `You are an academic advisor helping Malaysian students compare two university programs objectively. Your role is to provide neutral, factual, and student-friendly guidance.

Guidelines:
- Be neutral and factual; do not favor one program over another
- Focus on objective differences and similarities
- Use student-friendly language
- Only discuss academic programs in Malaysia
- Do not make admissions guarantees
- Do not claim rankings or superiority
- Do not invent information that is not provided
- Be concise but comprehensive

Structure the comparison in these sections:
1. Overview Comparison: brief summary of both programs
2. Key Academic Differences: curriculum, duration, entry requirements
3. Cost & Career Implications: tuition, employment rates, salary expectations
4. Recommendation by Student Profile: who each program suits better

Return plain text without markdown formatting.`

const notSpecified = "Not specified"

// descriptionLimit caps the description quoted in the prompt, in runes.
const descriptionLimit = 300

// UserPrompt asks for the comparison of a and b.
func UserPrompt(a, b *program.Program) string {
	return fmt.Sprintf(`Compare these two Malaysian university programs:

PROGRAM A:
%s

PROGRAM B:
%s

Provide an objective comparison following the structure specified.`, Describe(a), Describe(b))
}

// Describe renders the facts about p the model is allowed to use, one
// "Label: value" per line. Identity lines are always present; the rest only
// when known.
func Describe(p *program.Program) string {
	var lines []string
	add := func(label, value string) { lines = append(lines, label+": "+value) }
	or := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return notSpecified
		}
		return s
	}

	add("Program Name", or(p.Name))
	add("University", or(format.UniversityName(p.University)))
	add("Location", location(p.University))
	add("Level", or(format.Level(p.Level)))
	add("Duration", or(format.Duration(p.Duration, p.DurationMonths)))
	add("Tuition Fee", or(tuition(p)))

	if p.StartMonth != "" {
		add("Start Month", p.StartMonth)
	}
	if p.Deadline != "" {
		add("Application Deadline", p.Deadline)
	}
	if p.Description != "" {
		add("Description", truncate(p.Description, descriptionLimit))
	}
	if req := entryRequirements(p.EntryRequirements); req != "" {
		add("Entry Requirements", req)
	}
	if s := format.Percent(p.EmploymentRate); s != "" {
		add("Employment Rate", s)
	}
	if s := format.Salary(p.AverageSalary); s != "" {
		add("Average Salary", s)
	}
	if s := format.Percent(p.SatisfactionRate); s != "" {
		add("Graduate Satisfaction", s)
	}
	if p.Rating != nil && *p.Rating != 0 {
		reviews := 0
		if p.ReviewCount != nil {
			reviews = *p.ReviewCount
		}
		add("Rating", fmt.Sprintf("%s/5 (%d reviews)", format.Number(*p.Rating), reviews))
	}
	return strings.Join(lines, "\n")
}

func location(u *program.University) string {
	if loc := format.Location(u); loc != "" {
		return loc
	}
	return "Malaysia"
}

// tuition keeps the stored period wording ("per year", "per semester").
func tuition(p *program.Program) string {
	if p.TuitionFeeAmount == nil || *p.TuitionFeeAmount == 0 {
		return ""
	}
	symbol := p.Currency
	if symbol == "MYR" {
		symbol = "RM"
	}
	period := p.TuitionFeePeriod
	if period == "" {
		period = "period"
	}
	return strings.TrimSpace(symbol+" "+format.Number(*p.TuitionFeeAmount)) + " per " + period
}

// entryRequirements passes structured requirements to the model as compact
// JSON. Text that parses as JSON is compacted the same way; other text is
// quoted as is.
func entryRequirements(r program.Raw) string {
	switch r.Kind() {
	case program.RawStructured:
		data, err := json.Marshal(r.Value())
		if err != nil {
			return ""
		}
		return string(data)
	case program.RawText:
		text := strings.TrimSpace(r.Text())
		if v, err := program.ParseJSON([]byte(text)); err == nil {
			if data, err := json.Marshal(v); err == nil {
				return string(data)
			}
		}
		return text
	}
	return ""
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
