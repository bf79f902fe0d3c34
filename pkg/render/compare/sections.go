package compare

import (
	"github.com/backtoschool/progcompare/pkg/format"
	"github.com/backtoschool/progcompare/pkg/program"
)

// Field is one table row: a label and how to read its value from a program.
type Field struct {
	Label string
	Value func(p *program.Program) string
}

// Section is a titled group of rows.
type Section struct {
	Title  string
	Fields []Field
}

// Section titles, in document order.
const (
	SectionBasic     = "Basic Information"
	SectionAcademic  = "Academic Details"
	SectionFinancial = "Financial Information"
	SectionCareer    = "Career Outcomes & Performance"
	SectionRatings   = "Ratings & Reviews"
	SectionSummary   = "AI Comparison Summary"
)

// Sections returns the fixed table sections in the order they are drawn.
// The AI summary is not a table section and is not included.
func Sections() []Section {
	return []Section{
		{
			Title: SectionBasic,
			Fields: []Field{
				{"University", func(p *program.Program) string { return format.UniversityName(p.University) }},
				{"Location", func(p *program.Program) string { return format.Location(p.University) }},
				{"Level", func(p *program.Program) string { return format.Level(p.Level) }},
				{"Description", func(p *program.Program) string { return p.Description }},
			},
		},
		{
			Title: SectionAcademic,
			Fields: []Field{
				{"Duration", func(p *program.Program) string { return format.Duration(p.Duration, p.DurationMonths) }},
				{"Start Month", func(p *program.Program) string { return p.StartMonth }},
				{"Application Deadline", func(p *program.Program) string { return format.Date(p.Deadline) }},
				{"Entry Requirements", func(p *program.Program) string { return format.EntryRequirements(p.EntryRequirements) }},
				{"Curriculum", func(p *program.Program) string { return format.Curriculum(p.Curriculum) }},
				{"Facilities", func(p *program.Program) string { return format.Facilities(p.Facilities) }},
			},
		},
		{
			Title: SectionFinancial,
			Fields: []Field{
				{"Tuition Fee", func(p *program.Program) string {
					return format.Currency(p.TuitionFeeAmount, p.Currency, p.TuitionFeePeriod)
				}},
			},
		},
		{
			Title: SectionCareer,
			Fields: []Field{
				{"Employment Rate", func(p *program.Program) string { return format.Percent(p.EmploymentRate) }},
				{"Average Salary", func(p *program.Program) string { return format.Salary(p.AverageSalary) }},
				{"Career Outcomes", func(p *program.Program) string { return format.CareerOutcomes(p.CareerOutcomes) }},
				{"Satisfaction Rate", func(p *program.Program) string { return format.Percent(p.SatisfactionRate) }},
			},
		},
		{
			Title: SectionRatings,
			Fields: []Field{
				{"Rating", func(p *program.Program) string { return format.Rating(p.Rating) }},
				{"Review Count", func(p *program.Program) string { return format.Count(p.ReviewCount) }},
			},
		},
	}
}
