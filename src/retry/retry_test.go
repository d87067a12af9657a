package retry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stock-monitor/src/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("simulated network error")

// recordSleeps replaces the package sleep with a recorder for the duration of
// a test, so backoff timing can be asserted without waiting.
func recordSleeps(t *testing.T) *[]time.Duration {
	t.Helper()
	var recorded []time.Duration
	orig := sleep
	sleep = func(d time.Duration) { recorded = append(recorded, d) }
	t.Cleanup(func() { sleep = orig })
	return &recorded
}

// -----------------------------------------------------------------------------

func TestBackoffDelayFormula(t *testing.T) {
	cfg := Config{BaseDelay: 1 * time.Second, MaxDelay: 60 * time.Second}

	for attempt := 0; attempt < 10; attempt++ {
		want := 1 * time.Second << uint(attempt)
		if want > 60*time.Second {
			want = 60 * time.Second
		}
		assert.Equal(t, want, backoffDelay(cfg, attempt), "attempt %d", attempt)
	}
}

func TestBackoffDelayZeroMaxCapsAtZero(t *testing.T) {
	cfg := Config{BaseDelay: 1 * time.Second}

	for attempt := 0; attempt < 10; attempt++ {
		assert.Equal(t, time.Duration(0), backoffDelay(cfg, attempt), "attempt %d", attempt)
	}
}

func TestBackoffDelayOverflowCapped(t *testing.T) {
	cfg := Config{BaseDelay: 1 * time.Second, MaxDelay: 60 * time.Second}

	assert.Equal(t, 60*time.Second, backoffDelay(cfg, 200))
}

// -----------------------------------------------------------------------------

func TestDoSucceedsFirstAttempt(t *testing.T) {
	sleeps := recordSleeps(t)

	calls := 0
	err := Do(DefaultConfig(), "fetch", nil, func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *sleeps)
}

func TestDoZeroBudgetSingleAttempt(t *testing.T) {
	sleeps := recordSleeps(t)

	calls := 0
	err := Do(Config{MaxRetries: 0, BaseDelay: time.Second}, "fetch", nil, func() error {
		calls++
		return errTransient
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *sleeps)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "fetch", exhausted.Operation)
	assert.Equal(t, 0, exhausted.Retries)
}

func TestDoNegativeBudgetSingleAttempt(t *testing.T) {
	sleeps := recordSleeps(t)

	calls := 0
	err := Do(Config{MaxRetries: -2, BaseDelay: time.Second}, "fetch", nil, func() error {
		calls++
		return errTransient
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *sleeps)
}

func TestDoFailuresThenSuccess(t *testing.T) {
	sleeps := recordSleeps(t)

	calls := 0
	result, err := DoWithResult(Config{MaxRetries: 5, BaseDelay: 1 * time.Second, MaxDelay: 60 * time.Second},
		"fetch", nil, func() (string, error) {
			calls++
			if calls <= 2 {
				return "", errTransient
			}
			return "quote", nil
		})

	require.NoError(t, err)
	assert.Equal(t, "quote", result)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *sleeps)
}

func TestDoExhaustsBudget(t *testing.T) {
	sleeps := recordSleeps(t)

	calls := 0
	err := Do(Config{MaxRetries: 3, BaseDelay: 1 * time.Second, MaxDelay: 60 * time.Second},
		"fetch quotes", nil, func() error {
			calls++
			return errTransient
		})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *sleeps)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "fetch quotes", exhausted.Operation)
	assert.Equal(t, 3, exhausted.Retries)
	assert.ErrorIs(t, err, errTransient)
	assert.Contains(t, err.Error(), "fetch quotes")
	assert.Contains(t, err.Error(), "3")
}

func TestDoLastCauseWrapped(t *testing.T) {
	recordSleeps(t)

	calls := 0
	err := Do(Config{MaxRetries: 2}, "fetch", nil, func() error {
		calls++
		return fmt.Errorf("attempt %d failed", calls)
	})

	require.Error(t, err)
	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.EqualError(t, exhausted.Cause, "attempt 2 failed")
}

func TestDoBackoffSequenceEndToEnd(t *testing.T) {
	sleeps := recordSleeps(t)

	calls := 0
	result, err := DoWithResult(Config{MaxRetries: 5, BaseDelay: 1 * time.Second, MaxDelay: 10 * time.Second},
		"fetch", nil, func() (int, error) {
			calls++
			if calls <= 4 {
				return 0, errTransient
			}
			return calls, nil
		})

	require.NoError(t, err)
	assert.Equal(t, 5, result)
	assert.Equal(t, []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
	}, *sleeps)
}

func TestDoZeroMaxDelayNoPause(t *testing.T) {
	sleeps := recordSleeps(t)

	err := Do(Config{MaxRetries: 3, BaseDelay: 1 * time.Second}, "fetch", nil, func() error {
		return errTransient
	})

	require.Error(t, err)
	assert.Equal(t, []time.Duration{0, 0}, *sleeps)
}

func TestDoZeroDelaysNoPause(t *testing.T) {
	sleeps := recordSleeps(t)

	err := Do(Config{MaxRetries: 3}, "fetch", nil, func() error {
		return errTransient
	})

	require.Error(t, err)
	assert.Equal(t, []time.Duration{0, 0}, *sleeps)
}

// -----------------------------------------------------------------------------

func TestDoLogsWarningPerRetry(t *testing.T) {
	recordSleeps(t)

	logPath := filepath.Join(t.TempDir(), "retry_test.log")
	log, err := logger.GetLogger("retry-warning-test", logPath, logger.LevelDebug)
	require.NoError(t, err)
	defer log.Close()

	_ = Do(Config{MaxRetries: 3}, "poll prices", log, func() error {
		return errTransient
	})

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	warnings := 0
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if strings.Contains(line, "Retrying poll prices") {
			warnings++
			assert.Contains(t, line, errTransient.Error())
		}
	}
	assert.Equal(t, 2, warnings)
}
