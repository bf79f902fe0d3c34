package format

import (
	"sync"
	"testing"

	"github.com/backtoschool/progcompare/pkg/program"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount *float64
		code   string
		period string
		want   string
	}{
		{"ringgit per year", program.Float(50000), "MYR", "year", "RM 50,000 per Year"},
		{"nil amount", nil, "MYR", "year", ""},
		{"zero amount", program.Float(0), "MYR", "year", ""},
		{"other code", program.Float(12500), "USD", "semester", "USD 12,500 per Semester"},
		{"no period", program.Float(1200000), "MYR", "", "RM 1,200,000"},
		{"fractional", program.Float(1234.5), "MYR", "", "RM 1,234.5"},
		{"no code", program.Float(900), "", "", "900"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount, tt.code, tt.period); got != tt.want {
				t.Errorf("Currency() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCurrencyConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if got := Currency(program.Float(50000), "MYR", "year"); got != "RM 50,000 per Year" {
					errs <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("Currency() = %q under concurrent use", got)
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		text   string
		months *int
		want   string
	}{
		{"", program.Int(18), "1 Year 6 Months"},
		{"", program.Int(12), "1 Year"},
		{"", program.Int(5), "5 Months"},
		{"", program.Int(1), "1 Month"},
		{"", program.Int(25), "2 Years 1 Month"},
		{"", program.Int(48), "4 Years"},
		{"", nil, ""},
		{"", program.Int(0), ""},
		{"3 years full-time", program.Int(36), "3 years full-time"},
	}

	for _, tt := range tests {
		if got := Duration(tt.text, tt.months); got != tt.want {
			t.Errorf("Duration(%q, %v) = %q, want %q", tt.text, tt.months, got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2025-03-31", "Mar 31, 2025"},
		{"2025-03-31T00:00:00Z", "Mar 31, 2025"},
		{"2025-03-31T08:30:00+08:00", "Mar 31, 2025"},
		{"", ""},
		{"end of March", "end of March"},
	}

	for _, tt := range tests {
		if got := Date(tt.in); got != tt.want {
			t.Errorf("Date(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"foundation", "Foundation"},
		{"DIPLOMA", "Diploma"},
		{"degree", "Degree"},
		{"bachelor", "Bachelor"},
		{"Masters", "Masters"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Level(tt.in); got != tt.want {
			t.Errorf("Level(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		name string
		u    *program.University
		want string
	}{
		{"nil", nil, ""},
		{"city and state", &program.University{City: "Kuala Lumpur", State: "Wilayah Persekutuan"}, "Kuala Lumpur, Wilayah Persekutuan, Malaysia"},
		{"state only", &program.University{State: "Selangor"}, "Selangor, Malaysia"},
		{"neither", &program.University{Name: "UM"}, "Malaysia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Location(tt.u); got != tt.want {
				t.Errorf("Location() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	if got := Percent(program.Float(92.5)); got != "92.5%" {
		t.Errorf("Percent = %q", got)
	}
	if got := Percent(nil); got != "" {
		t.Errorf("Percent(nil) = %q", got)
	}
	if got := Salary(program.Float(4500)); got != "RM 4,500/month" {
		t.Errorf("Salary = %q", got)
	}
	if got := Rating(program.Float(4.5)); got != "4.5 / 5.0" {
		t.Errorf("Rating = %q", got)
	}
	if got := Rating(program.Float(4)); got != "4.0 / 5.0" {
		t.Errorf("Rating(4) = %q", got)
	}
	if got := Count(program.Int(1234)); got != "1,234" {
		t.Errorf("Count = %q", got)
	}
	if got := Count(nil); got != "" {
		t.Errorf("Count(nil) = %q", got)
	}
}

func TestAllNullProgramIsEmpty(t *testing.T) {
	var p program.Program
	values := map[string]string{
		"university":         UniversityName(p.University),
		"location":           Location(p.University),
		"level":              Level(p.Level),
		"duration":           Duration(p.Duration, p.DurationMonths),
		"deadline":           Date(p.Deadline),
		"entry requirements": EntryRequirements(p.EntryRequirements),
		"curriculum":         Curriculum(p.Curriculum),
		"facilities":         Facilities(p.Facilities),
		"tuition":            Currency(p.TuitionFeeAmount, p.Currency, p.TuitionFeePeriod),
		"employment":         Percent(p.EmploymentRate),
		"salary":             Salary(p.AverageSalary),
		"careers":            CareerOutcomes(p.CareerOutcomes),
		"satisfaction":       Percent(p.SatisfactionRate),
		"rating":             Rating(p.Rating),
		"reviews":            Count(p.ReviewCount),
	}
	for name, v := range values {
		if v != "" {
			t.Errorf("%s = %q, want empty", name, v)
		}
	}
}
