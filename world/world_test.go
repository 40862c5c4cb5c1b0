package world

import (
	"strings"
	"testing"

	"github.com/trackmap-xyz/go-trackmap/rules"
)

// Helper: linear three-region world gated by a key
func createLinearWorld() *World {
	return Build("linear").
		Region("Start").
		ExitTo("Mid", rules.Item("Key")).
		Region("Mid").
		ExitTo("End", rules.Const(true)).
		Location("Chest", rules.Item("Lamp")).
		Region("End").
		Start("Start").
		Done()
}

func TestBuilder(t *testing.T) {
	w := createLinearWorld()

	if len(w.Regions) != 3 {
		t.Fatalf("want 3 regions, got %d", len(w.Regions))
	}
	names := w.RegionNames()
	if names[0] != "Start" || names[1] != "Mid" || names[2] != "End" {
		t.Errorf("declaration order not preserved: %v", names)
	}

	exit := w.Regions["Start"].Exits[0]
	if exit.Name != "Start->Mid" {
		t.Errorf("default exit name = %q", exit.Name)
	}
	if exit.From != "Start" || exit.Target != "Mid" {
		t.Errorf("exit endpoints wrong: %+v", exit)
	}

	loc := w.Location("Chest")
	if loc == nil || loc.Region != "Mid" || loc.IsEvent {
		t.Errorf("Chest = %+v", loc)
	}
	if w.Location("Nothing") != nil {
		t.Error("unknown location should be nil")
	}
}

func TestEventLocations(t *testing.T) {
	w := Build("events").
		Region("A").
		EventLocation("First", rules.Const(true)).
		Region("B").
		Location("Plain", rules.Const(true)).
		EventLocation("Second", rules.Const(true)).
		Done()

	events := w.EventLocations()
	if len(events) != 2 || events[0].Name != "First" || events[1].Name != "Second" {
		t.Errorf("EventLocations = %v", events)
	}
}

func TestStartRegionsExplicit(t *testing.T) {
	w := createLinearWorld()
	starts := w.StartRegions(nil)
	if len(starts) != 1 || starts[0] != "Start" {
		t.Errorf("starts = %v", starts)
	}
}

func TestStartRegionsInDegree(t *testing.T) {
	w := Build("roots").
		Region("A").
		ExitTo("C", rules.Const(true)).
		Region("B").
		ExitTo("C", rules.Const(true)).
		Region("C").
		Done()

	starts := w.StartRegions(nil)
	if len(starts) != 2 || starts[0] != "A" || starts[1] != "B" {
		t.Errorf("zero in-degree roots = %v", starts)
	}
}

func TestStartRegionsCycleFallback(t *testing.T) {
	w := Build("cycle").
		Region("B").
		ExitTo("A", rules.Const(true)).
		Region("A").
		ExitTo("B", rules.Const(true)).
		Done()

	starts := w.StartRegions(nil)
	if len(starts) != 1 || starts[0] != "A" {
		t.Errorf("fallback should pick the lexicographically smallest, got %v", starts)
	}
}

func TestValidate(t *testing.T) {
	w := createLinearWorld()
	if errs := w.Validate(); len(errs) != 0 {
		t.Errorf("valid world reported errors: %v", errs)
	}

	w.AddExit("Start", "Start->Nowhere", "Nowhere", rules.Const(true))
	w.AddExit("Mid", "Start->Mid", "End", rules.Const(true)) // duplicate exit name
	w.AddLocation("End", "Chest", rules.Const(true), false)  // duplicate location name
	w.Starts = append(w.Starts, "Ghost")

	errs := w.Validate()
	if len(errs) != 4 {
		t.Fatalf("want 4 errors, got %d: %v", len(errs), errs)
	}
	joined := ""
	for _, err := range errs {
		joined += err.Error() + "\n"
	}
	for _, want := range []string{"unknown region", "duplicate exit", "duplicate location", "start region"} {
		if !strings.Contains(joined, want) {
			t.Errorf("errors missing %q: %v", want, errs)
		}
	}
}

func TestSignature(t *testing.T) {
	a := createLinearWorld()
	b := createLinearWorld()
	if a.Signature() != b.Signature() {
		t.Error("identical worlds should share a signature")
	}

	b.AddRegion("Extra")
	if a.Signature() == b.Signature() {
		t.Error("structural change should change the signature")
	}
}
