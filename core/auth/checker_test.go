package auth

import (
	"sync"
	"testing"
	"time"
)

type checkerRecorder struct {
	mu      sync.Mutex
	results []Availability
	names   []string
}

func (r *checkerRecorder) record(name string, a Availability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
	r.results = append(r.results, a)
}

func (r *checkerRecorder) snapshot() ([]string, []Availability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.names))
	copy(names, r.names)
	results := make([]Availability, len(r.results))
	copy(results, r.results)
	return names, results
}

func waitForProbe(t *testing.T, rec *checkerRecorder) ([]string, []Availability) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if names, results := rec.snapshot(); len(names) > 0 {
			return names, results
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timed out waiting for availability probe")
	return nil, nil
}

func TestAvailabilityCheckerDebounce(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, newFakeStore(), &fakeProvider{}, noopLogger{})
	rec := &checkerRecorder{}
	c := NewAvailabilityChecker(svc, "", rec.record)
	defer c.Stop()

	// rapid keystrokes; only the final candidate reaches the backend
	c.Input("jo")
	c.Input("joh")
	c.Input("john")
	c.Input("johnd")

	names, results := waitForProbe(t, rec)
	if len(names) != 1 || names[0] != "johnd" {
		t.Fatalf("expected a single probe for johnd; got %v", names)
	}
	if results[0] != AvailabilityAvailable {
		t.Errorf("expected available; got %v", results[0])
	}
	if calls := gw.calls(); len(calls) != 1 || calls[0] != "johnd" {
		t.Errorf("expected one backend call for johnd; got %v", calls)
	}
}

func TestAvailabilityCheckerSkips(t *testing.T) {
	tests := []struct {
		name             string
		providerUsername string
		input            string
	}{
		{"too short", "", "jo"},
		{"empty", "", ""},
		{"own username", "amina", "amina"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{}
			svc := NewService(gw, newFakeStore(), &fakeProvider{}, noopLogger{})
			rec := &checkerRecorder{}
			c := NewAvailabilityChecker(svc, tt.providerUsername, rec.record)
			defer c.Stop()

			c.Input(tt.input)
			time.Sleep(debounceDelay + 200*time.Millisecond)
			if calls := gw.calls(); len(calls) != 0 {
				t.Errorf("expected no backend calls; got %v", calls)
			}
		})
	}
}

func TestAvailabilityCheckerTaken(t *testing.T) {
	gw := &fakeGateway{checkErr: fakeStatusError{code: 409}}
	svc := NewService(gw, newFakeStore(), &fakeProvider{}, noopLogger{})
	rec := &checkerRecorder{}
	c := NewAvailabilityChecker(svc, "", rec.record)
	defer c.Stop()

	c.Input("taken_name")
	_, results := waitForProbe(t, rec)
	if results[0] != AvailabilityTaken {
		t.Errorf("expected taken; got %v", results[0])
	}
}

func TestAvailabilityCheckerStop(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, newFakeStore(), &fakeProvider{}, noopLogger{})
	rec := &checkerRecorder{}
	c := NewAvailabilityChecker(svc, "", rec.record)

	c.Input("johnd")
	c.Stop()
	time.Sleep(debounceDelay + 200*time.Millisecond)
	if calls := gw.calls(); len(calls) != 0 {
		t.Errorf("expected no backend calls after Stop; got %v", calls)
	}
	c.Input("again")
	time.Sleep(debounceDelay + 200*time.Millisecond)
	if calls := gw.calls(); len(calls) != 0 {
		t.Errorf("stopped checker must ignore input; got %v", calls)
	}
}
