package storage

import (
	"testing"
	"time"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	times := []float64{0, 2, 4}
	temps := []float64{1.5e18, 1.5e18, 1.5e18}
	metrics := map[string]float64{"temperature_drift": 0}

	runID, err := st.Save(42, 51, 10000, 0.5, times, temps, metrics)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Seed != 42 || meta.Particles != 51 || meta.Horizon != 10000 {
		t.Errorf("metadata round trip lost fields: %+v", meta)
	}

	gotTimes, gotTemps, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(gotTimes) != len(times) {
		t.Fatalf("expected %d rows, got %d", len(times), len(gotTimes))
	}
	for i := range times {
		if gotTimes[i] != times[i] {
			t.Errorf("row %d: expected time %g, got %g", i, times[i], gotTimes[i])
		}
		if gotTemps[i] != temps[i] {
			t.Errorf("row %d: expected temperature %g, got %g", i, temps[i], gotTemps[i])
		}
	}
}

func TestSaveMismatchedSeries(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := st.Save(1, 1, 10, 0.5, []float64{0, 2}, []float64{1}, nil); err == nil {
		t.Error("expected error for mismatched series lengths")
	}
}

func TestListEmpty(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestListOrdering(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	id1, err := st.Save(1, 10, 100, 0.5, nil, nil, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	id2, err := st.Save(2, 20, 200, 0.5, nil, nil, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != id1 || runs[1].ID != id2 {
		t.Errorf("runs not in timestamp order: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestLoadSeriesMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, _, err := st.LoadSeries("nope"); err == nil {
		t.Error("expected error for missing run")
	}
}
