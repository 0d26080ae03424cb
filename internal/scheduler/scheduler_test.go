package scheduler

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/portfolio-vis/internal/symbols"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Run() error {
	j.runs.Add(1)
	return j.err
}

func (j *countingJob) Name() string { return "counting" }

// TestScheduler_AddJob verifies cron expressions are validated on registration.
//
// WHY: A typo in SYMBOLS_REFRESH_CRON should fail start-up, not silently never reload.
func TestScheduler_AddJob(t *testing.T) {
	s := New(zerolog.Nop())

	t.Run("valid descriptor", func(t *testing.T) {
		require.NoError(t, s.AddJob("@daily", &countingJob{}))
	})

	t.Run("invalid expression", func(t *testing.T) {
		assert.Error(t, s.AddJob("every day please", &countingJob{}))
	})

	t.Run("empty schedule disables the job", func(t *testing.T) {
		before := len(s.cron.Entries())
		require.NoError(t, s.AddJob("", &countingJob{}))
		assert.Len(t, s.cron.Entries(), before)
	})
}

// TestScheduler_RunsJobs verifies scheduled jobs execute and errors do not stop the scheduler.
func TestScheduler_RunsJobs(t *testing.T) {
	s := New(zerolog.Nop())
	ok := &countingJob{}
	failing := &countingJob{err: errors.New("boom")}

	require.NoError(t, s.AddJob("@every 1s", ok))
	require.NoError(t, s.AddJob("@every 1s", failing))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return ok.runs.Load() >= 1 && failing.runs.Load() >= 1
	}, 5*time.Second, 50*time.Millisecond)
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{err: errors.New("boom")}

	err := s.RunNow(job)

	assert.EqualError(t, err, "boom")
	assert.Equal(t, int32(1), job.runs.Load())
}

// TestScheduler_RunNowLoadsCatalog covers the start-up load of the symbol catalog.
//
// WHY: The server fills the catalog through RunNow before the first scheduled reload;
// the same job must work both ways.
func TestScheduler_RunNowLoadsCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.csv")
	require.NoError(t, os.WriteFile(path, []byte("Symbol,Name\nAAPL,Apple Inc.\nSPY,SPDR S&P 500 ETF Trust\n"), 0o600))

	s := New(zerolog.Nop())
	catalog := symbols.NewCatalog(path, zerolog.Nop())

	require.NoError(t, s.RunNow(catalog))
	assert.Equal(t, 2, catalog.Len())

	missing := symbols.NewCatalog(filepath.Join(t.TempDir(), "missing.csv"), zerolog.Nop())
	assert.Error(t, s.RunNow(missing))
	assert.True(t, missing.LoadedAt().IsZero())
}
