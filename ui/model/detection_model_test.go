package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/soocke/vision-overlay-go/domain/detection"
)

func sampleList(conf float32) detection.List {
	return detection.NewList([]detection.Result{
		{Label: "person", Confidence: conf, Box: detection.NormRect{MinX: 0.1, MinY: 0.1, Width: 0.2, Height: 0.2}},
	})
}

type recorder struct {
	events []Event
	lens   []int
}

func (r *recorder) observe(ev Event, l detection.List) {
	r.events = append(r.events, ev)
	r.lens = append(r.lens, len(l))
}

func TestDetectionModel_SetNotifiesOnChangeOnly(t *testing.T) {
	m := NewDetectionModel()
	r := &recorder{}
	m.Subscribe(r.observe)

	if !m.Set(sampleList(0.9)) {
		t.Fatalf("expected first set to change the model")
	}
	// Same values, fresh IDs.
	if m.Set(sampleList(0.9)) {
		t.Fatalf("expected value-equal set to be a no-op")
	}
	if !m.Set(nil) {
		t.Fatalf("expected clearing to change the model")
	}
	if m.Set(detection.List{}) {
		t.Fatalf("expected empty after nil to be a no-op")
	}
	want := []Event{EventChanged, EventChanged}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if m.Publishes() != 2 {
		t.Fatalf("publishes=%d want 2", m.Publishes())
	}
}

func TestDetectionModel_WillChangeCarriesCurrentList(t *testing.T) {
	m := NewDetectionModel()
	m.Set(sampleList(0.5))
	r := &recorder{}
	m.Subscribe(r.observe)
	m.WillChange()
	if len(r.events) != 1 || r.events[0] != EventWillChange || r.lens[0] != 1 {
		t.Fatalf("unexpected will-change notification events=%v lens=%v", r.events, r.lens)
	}
}

func TestDetectionModel_ListIsACopy(t *testing.T) {
	m := NewDetectionModel()
	in := sampleList(0.7)
	m.Set(in)
	in[0].Label = "mutated"
	got := m.List()
	got[0].Label = "also mutated"
	if l := m.List()[0].Label; l != "person" {
		t.Fatalf("model list was aliased: label=%q", l)
	}
}

func TestDetectionModel_CancelSubscription(t *testing.T) {
	m := NewDetectionModel()
	r := &recorder{}
	cancel := m.Subscribe(r.observe)
	cancel()
	cancel()
	m.Set(sampleList(0.3))
	if len(r.events) != 0 {
		t.Fatalf("expected no events after cancel, got %v", r.events)
	}
}

func TestDetectionModel_NilSafe(t *testing.T) {
	var m *DetectionModel
	if m.Set(sampleList(1)) || m.List() != nil || m.Len() != 0 {
		t.Fatalf("nil model should be inert")
	}
	m.WillChange()
	m.NotifyChanged()
	m.Subscribe(func(Event, detection.List) {})()
}

func TestDetectionModel_NotifyChangedKeepsList(t *testing.T) {
	m := NewDetectionModel()
	m.Set(sampleList(0.5))
	r := &recorder{}
	m.Subscribe(r.observe)
	m.NotifyChanged()
	if len(r.events) != 1 || r.events[0] != EventChanged {
		t.Fatalf("expected one changed event, got %v", r.events)
	}
	if m.Publishes() != 1 || m.Len() != 1 {
		t.Fatalf("list must not be replaced: publishes=%d len=%d", m.Publishes(), m.Len())
	}
}
