// Package program defines the university program records that get compared.
//
// Programs arrive from the platform's database or from JSON files exported by
// the dashboard. Every field is optional: numeric fields are pointers so that
// "absent" and "zero" stay distinguishable, and the four loosely-typed columns
// (entry requirements, curriculum, career outcomes, facilities) are carried as
// [Raw] values whose shape is only resolved at display time.
package program

// Level values stored by the platform.
const (
	LevelFoundation = "foundation"
	LevelDiploma    = "diploma"
	LevelDegree     = "degree"
	LevelBachelor   = "bachelor"
)

// University is the institution offering a program.
type University struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
}

// Program is a single course or degree offering.
type Program struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Level            string   `json:"level,omitempty"`
	Duration         string   `json:"duration,omitempty"`
	DurationMonths   *int     `json:"duration_months,omitempty"`
	TuitionFeeAmount *float64 `json:"tuition_fee_amount,omitempty"`
	TuitionFeePeriod string   `json:"tuition_fee_period,omitempty"`
	Currency         string   `json:"currency,omitempty"`
	StartMonth       string   `json:"start_month,omitempty"`
	Deadline         string   `json:"deadline,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
	ReviewCount      *int     `json:"review_count,omitempty"`
	Description      string   `json:"description,omitempty"`
	Tags             []string `json:"tags,omitempty"`

	EntryRequirements Raw `json:"entry_requirements"`
	Curriculum        Raw `json:"curriculum"`
	CareerOutcomes    Raw `json:"career_outcomes"`
	Facilities        Raw `json:"facilities"`

	EmploymentRate   *float64 `json:"employment_rate,omitempty"`
	AverageSalary    *float64 `json:"average_salary,omitempty"`
	SatisfactionRate *float64 `json:"satisfaction_rate,omitempty"`

	University *University `json:"university"`
}

// DisplayName returns the program name, or fallback when it is blank.
func (p *Program) DisplayName(fallback string) string {
	if p == nil || p.Name == "" {
		return fallback
	}
	return p.Name
}

// Request asks for a comparison document of two programs.
type Request struct {
	ProgramA             Program `json:"programA"`
	ProgramB             Program `json:"programB"`
	IncludeAIExplanation bool    `json:"includeAIExplanation,omitempty"`
	AIExplanation        string  `json:"aiExplanation,omitempty"`
}

// Float returns a pointer to v. Handy for building programs in code and tests.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
