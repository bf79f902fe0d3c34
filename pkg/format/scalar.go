package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/backtoschool/progcompare/pkg/program"
)

// printer is safe for concurrent use. A cases.Caser is not, so Currency
// builds its own.
var printer = message.NewPrinter(language.English)

// Number renders v with thousands separators and up to three fraction
// digits: 50000 -> "50,000", 1234.5 -> "1,234.5".
func Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(3)))
}

// Currency renders a fee as "<symbol> <amount>[ per <Period>]". The symbol is
// "RM" for MYR and the raw code otherwise. A nil or zero amount yields "".
func Currency(amount *float64, code, period string) string {
	if amount == nil || *amount == 0 {
		return ""
	}
	symbol := code
	if code == "MYR" {
		symbol = "RM"
	}
	s := strings.TrimSpace(symbol + " " + Number(*amount))
	if period = strings.TrimSpace(period); period != "" {
		s += " per " + cases.Title(language.English).String(period)
	}
	return s
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// Date renders an ISO-like date as "Jan 2, 2006". Input that does not parse
// is returned unchanged.
func Date(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}

// Duration prefers the free-text duration. Otherwise it derives
// "<N> Year(s) [<M> Month(s)]" from a month count: 18 -> "1 Year 6 Months".
func Duration(text string, months *int) string {
	if strings.TrimSpace(text) != "" {
		return text
	}
	if months == nil || *months <= 0 {
		return ""
	}
	years, rest := *months/12, *months%12
	switch {
	case years > 0 && rest > 0:
		return plural(years, "Year") + " " + plural(rest, "Month")
	case years > 0:
		return plural(years, "Year")
	default:
		return plural(rest, "Month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

var levelLabels = map[string]string{
	program.LevelFoundation: "Foundation",
	program.LevelDiploma:    "Diploma",
	program.LevelDegree:     "Degree",
	program.LevelBachelor:   "Bachelor",
}

// Level maps stored level values to labels. Unknown values pass through.
func Level(s string) string {
	if label, ok := levelLabels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return label
	}
	return s
}

// Location renders "<city>, <state>, Malaysia", dropping missing parts.
// A university without city or state is just "Malaysia"; no university is "".
func Location(u *program.University) string {
	if u == nil {
		return ""
	}
	var parts []string
	for _, p := range []string{u.City, u.State} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "Malaysia"
	}
	return strings.Join(parts, ", ") + ", Malaysia"
}

// UniversityName returns the university's name, or "" when there is none.
func UniversityName(u *program.University) string {
	if u == nil {
		return ""
	}
	return u.Name
}

// Percent renders 85 as "85%". Nil or zero yields "".
func Percent(v *float64) string {
	if v == nil || *v == 0 {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + "%"
}

// Salary renders a monthly salary as "RM 4,500/month".
func Salary(v *float64) string {
	if v == nil || *v == 0 {
		return ""
	}
	return "RM " + Number(*v) + "/month"
}

// Rating renders a score out of five with one decimal: "4.5 / 5.0".
func Rating(v *float64) string {
	if v == nil || *v == 0 {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64) + " / 5.0"
}

// Count renders a review count with thousands separators.
func Count(v *int) string {
	if v == nil || *v == 0 {
		return ""
	}
	return Number(float64(*v))
}
