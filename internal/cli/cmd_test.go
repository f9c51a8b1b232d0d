package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ogurasousui/dwrecords/internal/core/employment"
	"github.com/ogurasousui/dwrecords/internal/core/ports"
	"github.com/ogurasousui/dwrecords/internal/core/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubReviewer struct {
	input  worker.ReviewProbationInput
	result *worker.ReviewProbationResult
	err    error
}

func (s *stubReviewer) ReviewProbation(_ context.Context, in worker.ReviewProbationInput) (*worker.ReviewProbationResult, error) {
	s.input = in
	return s.result, s.err
}

func testApp() *App {
	return &App{Clock: fixedClock{now: time.Date(2024, 4, 10, 18, 0, 0, 0, time.UTC)}}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- status command ---

func TestStatusCmd_ProbationaryUsesClock(t *testing.T) {
	output, err := executeCmd(t, testApp(), "status", "--start", "2024-01-01")
	require.NoError(t, err)

	assert.Contains(t, output, "Eligible for Permanent")
	assert.Contains(t, output, "100 (3 months, 10 days)")
	assert.Contains(t, output, "yes")
	assert.NotContains(t, output, "Actual days worked")
}

func TestStatusCmd_TerminatedUsesEffectiveDate(t *testing.T) {
	output, err := executeCmd(t, testApp(), "status",
		"--start", "2024-01-01",
		"--status", "Terminated",
		"--effective", "2024-02-15",
	)
	require.NoError(t, err)

	assert.Contains(t, output, "Terminated")
	assert.Contains(t, output, "45 (1 month, 15 days)")
	assert.Contains(t, output, "Actual days worked")
	assert.NotContains(t, output, "Days until permanent")
}

func TestStatusCmd_AsOf(t *testing.T) {
	output, err := executeCmd(t, testApp(), "status", "--start", "2024-01-01", "--as-of", "2024-03-01")
	require.NoError(t, err)

	assert.Contains(t, output, "60 (2 months)")
	assert.Contains(t, output, "30")
}

func TestStatusCmd_EmptyStartIsZeroState(t *testing.T) {
	output, err := executeCmd(t, testApp(), "status")
	require.NoError(t, err)

	assert.Contains(t, output, "0 (0 days)")
	assert.Contains(t, output, "90")
}

func TestStatusCmd_InvalidInput(t *testing.T) {
	cases := map[string][]string{
		"start":  {"status", "--start", "01/01/2024"},
		"status": {"status", "--start", "2024-01-01", "--status", "contract"},
		"as-of":  {"status", "--start", "2024-01-01", "--as-of", "tomorrow"},
	}

	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := executeCmd(t, testApp(), args...)
			require.Error(t, err)
		})
	}

	_, err := executeCmd(t, testApp(), "status", "--start", "2024-02-30")
	require.Error(t, err)
	assert.True(t, errors.Is(err, employment.ErrInvalidDate))
	assert.Contains(t, err.Error(), "start_date")
}

func TestStatusCmd_BlankAsOfFallsBackToClock(t *testing.T) {
	want, err := executeCmd(t, testApp(), "status", "--start", "2024-01-01")
	require.NoError(t, err)

	for _, blank := range []string{"", " ", "\t"} {
		output, err := executeCmd(t, testApp(), "status", "--start", "2024-01-01", "--as-of", blank)
		require.NoError(t, err, "as-of %q", blank)
		assert.Equal(t, want, output)
	}
}

func TestNewRootCmd_DefaultsToLocalClock(t *testing.T) {
	app := &App{}
	NewRootCmd(app)

	require.IsType(t, ports.LocalClock{}, app.Clock)
	assert.Equal(t, time.Local, app.Clock.Now().Location())

	output, err := executeCmd(t, app, "status", "--start", "2024-01-01", "--as-of", " ")
	require.NoError(t, err)
	assert.Contains(t, output, "Eligible for Permanent")
}

// --- duration command ---

func TestDurationCmd(t *testing.T) {
	cases := map[string]string{
		"0":   "0 days",
		"1":   "1 day",
		"45":  "1 month, 15 days",
		"365": "1 year",
		"730": "2 years",
	}

	for arg, want := range cases {
		output, err := executeCmd(t, testApp(), "duration", arg)
		require.NoError(t, err)
		assert.Equal(t, want+"\n", output)
	}
}

func TestDurationCmd_InvalidDays(t *testing.T) {
	_, err := executeCmd(t, testApp(), "duration", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid days")

	_, err = executeCmd(t, testApp(), "duration")
	assert.Error(t, err)
}

// --- review command ---

func TestReviewCmd_RendersTable(t *testing.T) {
	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	reviewer := &stubReviewer{result: &worker.ReviewProbationResult{
		Entries: []*worker.EmploymentStatusResult{
			worker.Evaluate(&worker.Worker{
				WorkerCode: "dw-007",
				FullName:   "Siti Rahma",
				Status:     employment.StatusProbationary,
				StartDate:  &start,
			}, now),
		},
		NextPageToken: "1",
	}}

	var openedWith string
	app := testApp()
	app.OpenReviewer = func(_ context.Context, path string) (ProbationReviewer, func(), error) {
		openedWith = path
		return reviewer, func() {}, nil
	}

	output, err := executeCmd(t, app, "review", "--agency", "agency-1", "--page-size", "1", "--config", "custom.yaml")
	require.NoError(t, err)

	assert.Equal(t, "custom.yaml", openedWith)
	assert.Equal(t, "agency-1", reviewer.input.AgencyID)
	assert.Equal(t, 1, reviewer.input.PageSize)
	assert.Contains(t, output, "dw-007")
	assert.Contains(t, output, "Siti Rahma")
	assert.Contains(t, output, "2024-03-01")
	assert.Contains(t, output, "1 month, 10 days")
	assert.Contains(t, output, "--page-token 1")
}

func TestReviewCmd_RequiresAgency(t *testing.T) {
	app := testApp()
	app.OpenReviewer = func(context.Context, string) (ProbationReviewer, func(), error) {
		t.Fatal("reviewer must not be opened without --agency")
		return nil, nil, nil
	}

	_, err := executeCmd(t, app, "review")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agency")
}

func TestReviewCmd_PropagatesErrors(t *testing.T) {
	closed := false
	app := testApp()
	app.OpenReviewer = func(context.Context, string) (ProbationReviewer, func(), error) {
		return &stubReviewer{err: worker.ErrInvalidPageSize}, func() { closed = true }, nil
	}

	_, err := executeCmd(t, app, "review", "--agency", "agency-1", "--page-size", "500")
	require.ErrorIs(t, err, worker.ErrInvalidPageSize)
	assert.True(t, closed, "reviewer must be closed on error")
}

func TestReviewCmd_EmptyResult(t *testing.T) {
	app := testApp()
	app.OpenReviewer = func(context.Context, string) (ProbationReviewer, func(), error) {
		return &stubReviewer{result: &worker.ReviewProbationResult{}}, func() {}, nil
	}

	output, err := executeCmd(t, app, "review", "--agency", "agency-1")
	require.NoError(t, err)
	assert.Contains(t, output, "No probationary workers.")
}

func TestReviewCmd_WithoutDatabase(t *testing.T) {
	_, err := executeCmd(t, testApp(), "review", "--agency", "agency-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no database configured")
}
