package primes_test

import (
	"errors"
	"testing"

	"prime-job-service/internal/primes"
)

func TestCountPrimes_BelowThresholdReturnsZero(t *testing.T) {
	for _, limit := range []int64{-5, 0, 1} {
		calls := 0
		res, err := primes.CountPrimes(limit, func(p primes.Progress) error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("limit=%d: expected nil error, got %v", limit, err)
		}
		if res.PrimeCount != 0 || res.DurationMs != 0 {
			t.Fatalf("limit=%d: expected zero result, got %+v", limit, res)
		}
		if res.Limit != limit {
			t.Fatalf("limit=%d: expected limit echoed, got %d", limit, res.Limit)
		}
		if calls != 0 {
			t.Fatalf("limit=%d: expected no callbacks, got %d", limit, calls)
		}
	}
}

func TestCountPrimes_KnownCounts(t *testing.T) {
	cases := []struct {
		limit int64
		want  int64
	}{
		{2, 1},
		{10, 4}, // 2,3,5,7
		{100, 25},
		{1000, 168},
	}
	for _, tc := range cases {
		res, err := primes.CountPrimes(tc.limit, nil)
		if err != nil {
			t.Fatalf("limit=%d: expected nil error, got %v", tc.limit, err)
		}
		if res.PrimeCount != tc.want {
			t.Fatalf("limit=%d: expected %d primes, got %d", tc.limit, tc.want, res.PrimeCount)
		}
	}
}

func TestCountPrimes_Deterministic(t *testing.T) {
	a, err := primes.CountPrimes(5000, nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	b, err := primes.CountPrimes(5000, nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if a.PrimeCount != b.PrimeCount || a.Limit != b.Limit {
		t.Fatalf("expected identical counts, got %+v vs %+v", a, b)
	}
}

func TestCountPrimes_ProgressBoundedAndMonotonic(t *testing.T) {
	const limit = int64(100_000) // steps=100, stride=1000

	var events []primes.Progress
	res, err := primes.CountPrimes(limit, func(p primes.Progress) error {
		events = append(events, p)
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if len(events) != 100 {
		t.Fatalf("expected exactly 100 callbacks for limit=%d, got %d", limit, len(events))
	}

	prev := -1.0
	for i, p := range events {
		if p.Progress < prev {
			t.Fatalf("progress decreased at event %d: %f < %f", i, p.Progress, prev)
		}
		prev = p.Progress
		if p.Limit != limit {
			t.Fatalf("event %d: expected limit=%d, got %d", i, limit, p.Limit)
		}
	}

	last := events[len(events)-1]
	if last.Progress != 1.0 {
		t.Fatalf("expected final progress=1.0, got %f", last.Progress)
	}
	if last.PrimeCountSoFar != res.PrimeCount {
		t.Fatalf("expected final partial count %d to equal result %d", last.PrimeCountSoFar, res.PrimeCount)
	}
}

func TestCountPrimes_SmallLimitCallbackCountStaysBounded(t *testing.T) {
	// stride clamps to 1 for tiny limits, so callbacks are at most limit-1
	calls := 0
	_, err := primes.CountPrimes(10, func(p primes.Progress) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if calls == 0 || calls > 9 {
		t.Fatalf("expected between 1 and 9 callbacks, got %d", calls)
	}
}

func TestCountPrimes_CallbackErrorAborts(t *testing.T) {
	boom := errors.New("store unavailable")
	calls := 0
	_, err := primes.CountPrimes(100_000, func(p primes.Progress) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error propagated, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected count aborted after first callback, got %d calls", calls)
	}
}
