package primes

import "time"

// Progress is a snapshot handed to the progress callback during a count.
type Progress struct {
	Current         int64
	Limit           int64
	Progress        float64
	PrimeCountSoFar int64
	ElapsedMs       int64
}

// Result is the deterministic outcome of a count. DurationMs is wall-clock.
type Result struct {
	Limit      int64 `json:"limit"`
	PrimeCount int64 `json:"primeCount"`
	DurationMs int64 `json:"durationMs"`
}

func isPrime(n int64) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for i := int64(3); i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// CountPrimes counts primes in [2, limit]. onProgress, when non-nil, fires
// on a stride chosen so the callback runs on the order of 100..1000 times
// regardless of limit; a non-nil error from the callback aborts the count.
// limit < 2 returns a zero result without iterating.
func CountPrimes(limit int64, onProgress func(Progress) error) (Result, error) {
	start := time.Now()

	if limit < 2 {
		return Result{Limit: limit}, nil
	}

	steps := limit / 1000
	if steps < 100 {
		steps = 100
	}
	if steps > 1000 {
		steps = 1000
	}
	reportEvery := limit / steps
	if reportEvery < 1 {
		reportEvery = 1
	}

	var count int64
	for n := int64(2); n <= limit; n++ {
		if isPrime(n) {
			count++
		}

		if onProgress != nil && n%reportEvery == 0 {
			p := Progress{
				Current:         n,
				Limit:           limit,
				Progress:        float64(n) / float64(limit),
				PrimeCountSoFar: count,
				ElapsedMs:       time.Since(start).Milliseconds(),
			}
			if err := onProgress(p); err != nil {
				return Result{}, err
			}
		}
	}

	return Result{
		Limit:      limit,
		PrimeCount: count,
		DurationMs: time.Since(start).Milliseconds(),
	}, nil
}
