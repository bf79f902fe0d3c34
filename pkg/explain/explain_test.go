package explain_test

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backtoschool/progcompare/pkg/cache"
	"github.com/backtoschool/progcompare/pkg/errors"
	"github.com/backtoschool/progcompare/pkg/explain"
	"github.com/backtoschool/progcompare/pkg/program"
)

type fakeCompleter struct {
	answer string
	err    error
	calls  int
	user   string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.user = user
	return f.answer, f.err
}

func (f *fakeCompleter) Model() string { return "fake-model" }

func programs() (*program.Program, *program.Program) {
	a := &program.Program{
		ID:               1,
		Name:             "Bachelor of Computer Science",
		TuitionFeeAmount: program.Float(50000),
		TuitionFeePeriod: "year",
		Currency:         "MYR",
		University:       &program.University{Name: "Universiti Malaya", City: "Kuala Lumpur"},
	}
	b := &program.Program{
		ID:             2,
		Name:           "Diploma in IT",
		DurationMonths: program.Int(30),
	}
	return a, b
}

func TestExplainWithoutClient(t *testing.T) {
	a, b := programs()
	_, err := explain.New(nil).Explain(context.Background(), a, b)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeAIUnavailable))
	assert.Equal(t, explain.NotConfiguredMessage, errors.UserMessage(err))
	assert.False(t, explain.New(nil).Available())
}

func TestExplainCachesByProgramIDs(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	client := &fakeCompleter{answer: "Program A costs more but has stronger outcomes."}
	ex := explain.New(client, explain.WithCache(fc, cache.NewDefaultKeyer()))

	a, b := programs()
	first, err := ex.Explain(ctx, a, b)
	require.NoError(t, err)
	second, err := ex.Explain(ctx, a, b)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.calls)

	data, hit, err := fc.Get(ctx, "explain:1-2")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, string(data))

	// The reverse pair is a different comparison.
	_, err = ex.Explain(ctx, b, a)
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
}

func TestExplainCachesUnsavedProgramsByContent(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	client := &fakeCompleter{answer: "Both are solid."}
	ex := explain.New(client, explain.WithCache(fc, nil))

	a := &program.Program{Name: "Draft A"}
	b := &program.Program{Name: "Draft B"}
	_, err = ex.Explain(ctx, a, b)
	require.NoError(t, err)
	_, err = ex.Explain(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)

	b.Name = "Draft C"
	_, err = ex.Explain(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
}

func TestExplainEmptyAnswerFallsBack(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	client := &fakeCompleter{answer: "  \n"}
	ex := explain.New(client, explain.WithCache(fc, cache.NewDefaultKeyer()))

	a, b := programs()
	got, err := ex.Explain(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, explain.FallbackText, got)

	_, hit, _ := fc.Get(ctx, "explain:1-2")
	assert.False(t, hit, "fallback text must not be cached")
}

func TestExplainClientFailure(t *testing.T) {
	cause := stderrors.New("invalid api key")
	client := &fakeCompleter{err: cause}
	a, b := programs()

	_, err := explain.New(client).Explain(context.Background(), a, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeAIUnavailable))
	assert.Equal(t, explain.FailedMessage, errors.UserMessage(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, client.calls, "non-retryable errors are not retried")
}

func TestExplainSendsBothPrograms(t *testing.T) {
	client := &fakeCompleter{answer: "ok"}
	a, b := programs()
	_, err := explain.New(client).Explain(context.Background(), a, b)
	require.NoError(t, err)

	assert.Contains(t, client.user, "PROGRAM A:\nProgram Name: Bachelor of Computer Science")
	assert.Contains(t, client.user, "PROGRAM B:\nProgram Name: Diploma in IT")
}

func TestDescribe(t *testing.T) {
	p := &program.Program{
		Name:              "Bachelor of Nursing",
		Level:             "bachelor",
		DurationMonths:    program.Int(48),
		TuitionFeeAmount:  program.Float(32000),
		TuitionFeePeriod:  "semester",
		Currency:          "MYR",
		StartMonth:        "September",
		Description:       strings.Repeat("x", 320),
		EntryRequirements: program.Text(`{ "stpm": { "cgpa": 3.5 }, "muet": "Band 3" }`),
		EmploymentRate:    program.Float(92),
		AverageSalary:     program.Float(3500),
		Rating:            program.Float(4.5),
		ReviewCount:       program.Int(120),
		University:        &program.University{Name: "UiTM", City: "Shah Alam", State: "Selangor"},
	}

	got := explain.Describe(p)
	for _, want := range []string{
		"Program Name: Bachelor of Nursing",
		"University: UiTM",
		"Location: Shah Alam, Selangor, Malaysia",
		"Level: Bachelor",
		"Duration: 4 Years",
		"Tuition Fee: RM 32,000 per semester",
		"Start Month: September",
		"Description: " + strings.Repeat("x", 300) + "...",
		`Entry Requirements: {"stpm":{"cgpa":3.5},"muet":"Band 3"}`,
		"Employment Rate: 92%",
		"Average Salary: RM 3,500/month",
		"Rating: 4.5/5 (120 reviews)",
	} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "Application Deadline")
	assert.NotContains(t, got, "Graduate Satisfaction")
}

func TestDescribeEmptyProgram(t *testing.T) {
	got := explain.Describe(&program.Program{})
	assert.Equal(t, strings.Join([]string{
		"Program Name: Not specified",
		"University: Not specified",
		"Location: Malaysia",
		"Level: Not specified",
		"Duration: Not specified",
		"Tuition Fee: Not specified",
	}, "\n"), got)
}

func TestDescribeEntryRequirementsText(t *testing.T) {
	p := &program.Program{EntryRequirements: program.Text("SPM with 5 credits")}
	assert.Contains(t, explain.Describe(p), "Entry Requirements: SPM with 5 credits")
}
