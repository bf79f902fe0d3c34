package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/backtoschool/progcompare/pkg/program"
)

// Postgres reads programs from the platform database.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to dsn and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewPostgres(db), nil
}

// NewPostgres wraps an open database handle.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const selectPrograms = `
	SELECT p.id, p.name, p.level, p.duration, p.duration_months,
	       p.tuition_fee_amount, p.tuition_fee_period, p.currency,
	       p.start_month, p.deadline, p.rating, p.review_count, p.description,
	       p.tags, p.entry_requirements, p.curriculum, p.career_outcomes,
	       p.facilities, p.employment_rate, p.average_salary, p.satisfaction_rate,
	       u.id, u.name, u.city, u.state, u.email, u.phone_number, u.website_url
	FROM programs p
	LEFT JOIN university u ON u.id = p.university_id`

// Program returns one program with its university.
func (s *Postgres) Program(ctx context.Context, id int64) (*program.Program, error) {
	row := s.db.QueryRowContext(ctx, selectPrograms+`
	WHERE p.id = $1`, id)

	p, err := scanProgram(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("load program %d: %w", id, err)
	}
	return p, nil
}

// Programs lists programs ordered by name.
func (s *Postgres) Programs(ctx context.Context, limit int) ([]program.Program, error) {
	query := selectPrograms + `
	ORDER BY p.name, p.id`
	args := []any{}
	if limit > 0 {
		query += `
	LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer rows.Close()

	var programs []program.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("list programs: %w", err)
		}
		programs = append(programs, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return programs, nil
}

// Close closes the database handle.
func (s *Postgres) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProgram(row scanner) (*program.Program, error) {
	var (
		p                                           program.Program
		level, duration, period, currency           sql.NullString
		startMonth, deadline, description           sql.NullString
		months, reviews                             sql.NullInt64
		fee, rating, employment, salary, satisfied  sql.NullFloat64
		tags                                        pq.StringArray
		entry, curriculum, careers, facilities      []byte
		uniID                                       sql.NullInt64
		uniName, city, state, email, phone, website sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Name, &level, &duration, &months,
		&fee, &period, &currency,
		&startMonth, &deadline, &rating, &reviews, &description,
		&tags, &entry, &curriculum, &careers,
		&facilities, &employment, &salary, &satisfied,
		&uniID, &uniName, &city, &state, &email, &phone, &website,
	)
	if err != nil {
		return nil, err
	}

	p.Level = level.String
	p.Duration = duration.String
	p.DurationMonths = intPtr(months)
	p.TuitionFeeAmount = floatPtr(fee)
	p.TuitionFeePeriod = period.String
	p.Currency = currency.String
	p.StartMonth = startMonth.String
	p.Deadline = deadline.String
	p.Rating = floatPtr(rating)
	p.ReviewCount = intPtr(reviews)
	p.Description = description.String
	p.Tags = []string(tags)
	p.EmploymentRate = floatPtr(employment)
	p.AverageSalary = floatPtr(salary)
	p.SatisfactionRate = floatPtr(satisfied)

	for _, f := range []struct {
		name string
		data []byte
		dst  *program.Raw
	}{
		{"entry_requirements", entry, &p.EntryRequirements},
		{"curriculum", curriculum, &p.Curriculum},
		{"career_outcomes", careers, &p.CareerOutcomes},
		{"facilities", facilities, &p.Facilities},
	} {
		if f.data == nil {
			continue
		}
		if err := f.dst.UnmarshalJSON(f.data); err != nil {
			// Not JSON: a plain text column.
			*f.dst = program.Text(string(f.data))
		}
	}

	if uniID.Valid {
		p.University = &program.University{
			ID:          uniID.Int64,
			Name:        uniName.String,
			City:        city.String,
			State:       state.String,
			Email:       email.String,
			PhoneNumber: phone.String,
			WebsiteURL:  website.String,
		}
	}
	return &p, nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

var _ Store = (*Postgres)(nil)
