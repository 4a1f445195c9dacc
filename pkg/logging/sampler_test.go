package logging

import (
	"testing"
)

func TestErrorSampler(t *testing.T) {
	sampler := NewErrorSampler(10)

	if !sampler.ShouldLog("sync_error") {
		t.Error("First occurrence should be logged")
	}

	// Occurrences 2-9 are suppressed
	for i := 2; i <= 9; i++ {
		if sampler.ShouldLog("sync_error") {
			t.Errorf("Occurrence %d should not be logged", i)
		}
	}

	if !sampler.ShouldLog("sync_error") {
		t.Error("10th occurrence should be logged")
	}

	if count := sampler.GetCount("sync_error"); count != 10 {
		t.Errorf("Expected count 10, got %d", count)
	}

	sampler.Reset("sync_error")
	if count := sampler.GetCount("sync_error"); count != 0 {
		t.Errorf("Expected count 0 after reset, got %d", count)
	}
}

func TestErrorSamplerMultipleKeys(t *testing.T) {
	sampler := NewErrorSampler(5)

	// Keys are tracked independently
	sampler.ShouldLog("fetch_error")
	sampler.ShouldLog("store_error")

	if sampler.GetCount("fetch_error") != 1 {
		t.Error("fetch_error count should be 1")
	}
	if sampler.GetCount("store_error") != 1 {
		t.Error("store_error count should be 1")
	}

	sampler.ResetAll()
	if sampler.GetCount("fetch_error") != 0 || sampler.GetCount("store_error") != 0 {
		t.Error("All counts should be 0 after ResetAll")
	}
}

func TestErrorSamplerMinimumInterval(t *testing.T) {
	sampler := NewErrorSampler(0)

	// Interval below 1 falls back to the default of 10
	if !sampler.ShouldLog("x") {
		t.Error("First occurrence should be logged")
	}
	if sampler.ShouldLog("x") {
		t.Error("Second occurrence should be suppressed with default interval")
	}
}
