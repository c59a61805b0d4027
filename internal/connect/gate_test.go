package connect

import "testing"

func TestEvaluateAllRequiredMet(t *testing.T) {
	rows := []Row{
		{ID: "gmail", Required: true, Connected: true},
		{ID: "gcal", Required: false, Connected: false},
		{ID: "gsheets", Required: false, Connected: true},
	}

	result := Evaluate(rows)

	if !result.AllRequiredMet {
		t.Error("expected gate to pass with all required rows connected")
	}
	if result.RequiredTotal != 1 || result.RequiredConnected != 1 {
		t.Errorf("expected 1/1 required, got %d/%d", result.RequiredConnected, result.RequiredTotal)
	}
	if result.ConnectedTotal != 2 {
		t.Errorf("expected 2 connected, got %d", result.ConnectedTotal)
	}
	if result.RowTotal != 3 {
		t.Errorf("expected 3 rows, got %d", result.RowTotal)
	}
}

func TestEvaluateRequiredMissing(t *testing.T) {
	rows := []Row{
		{ID: "shodan", Required: true, Connected: false},
	}

	result := Evaluate(rows)

	if result.AllRequiredMet {
		t.Error("expected gate to fail with a required row disconnected")
	}
	if missing := result.RequiredTotal - result.RequiredConnected; missing != 1 {
		t.Errorf("expected 1 required row missing, got %d", missing)
	}
}

func TestEvaluateVacuouslyTrue(t *testing.T) {
	rows := []Row{
		{ID: "strava", Connected: false},
		{ID: "gsheets", Connected: false},
	}

	if result := Evaluate(rows); !result.AllRequiredMet {
		t.Error("expected gate to pass vacuously with no required rows")
	}

	if result := Evaluate(nil); !result.AllRequiredMet {
		t.Error("expected gate to pass vacuously with no rows at all")
	}
}
