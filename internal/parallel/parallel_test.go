package parallel

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForSequentialFallback(t *testing.T) {
	cfg := Config{Enabled: false}

	order := make([]int, 0, 10)
	For(10, func(i int) {
		order = append(order, i)
	}, cfg)

	for i, v := range order {
		if v != i {
			t.Fatalf("sequential fallback out of order at %d: %v", i, order)
		}
	}
}

func TestForSmallBatch(t *testing.T) {
	// Below MinBatch the loop stays on the calling goroutine, so
	// unsynchronized writes are safe.
	cfg := Config{Enabled: true, NumWorkers: 4, MinBatch: 8}

	count := 0
	For(3, func(_ int) { count++ }, cfg)
	if count != 3 {
		t.Errorf("Expected 3, got %d", count)
	}
}

func TestForErr(t *testing.T) {
	cfg := DefaultConfig()

	if err := ForErr(100, func(_ int) error { return nil }, cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	errBoom := errors.New("boom")
	err := ForErr(100, func(i int) error {
		if i == 42 {
			return errBoom
		}
		return nil
	}, cfg)
	if !errors.Is(err, errBoom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestForErrLowestIndexWins(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	err := ForErr(10, func(i int) error {
		switch i {
		case 3:
			return errA
		case 7:
			return errB
		}
		return nil
	}, DefaultConfig())
	if !errors.Is(err, errA) {
		t.Errorf("expected error from index 3, got %v", err)
	}
}
