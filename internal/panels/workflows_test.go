package panels

import (
	"errors"
	"testing"
	"time"
)

func fixedNow() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

func TestFixturesLoaded(t *testing.T) {
	w, err := NewWorkflows(fixedNow)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	list := w.List()
	if len(list) != 3 || list[0].ID != "1" {
		t.Fatalf("unexpected fixtures: %+v", list)
	}
	if list[0].LastRun == nil || !list[0].LastRun.Equal(fixedNow().Add(-2*time.Hour)) {
		t.Fatalf("last run = %v", list[0].LastRun)
	}
	if list[1].Schedule == nil || list[1].Schedule.Time != "18:00" {
		t.Fatalf("schedule = %+v", list[1].Schedule)
	}
	if list[2].Conditions[0].Value != 50 {
		t.Fatalf("condition value = %#v", list[2].Conditions[0].Value)
	}
}

func TestRun(t *testing.T) {
	w, _ := NewWorkflows(fixedNow)
	wf, err := w.Run("2")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if wf.ExecutionCount != 157 || wf.SuccessRate != 99.9 {
		t.Fatalf("after run: count=%d rate=%v", wf.ExecutionCount, wf.SuccessRate)
	}
	wf, _ = w.Run("2")
	if wf.SuccessRate != 100 {
		t.Fatalf("rate should cap at 100, got %v", wf.SuccessRate)
	}
	if !wf.LastRun.Equal(fixedNow()) {
		t.Fatalf("last run = %v", wf.LastRun)
	}
	if _, err := w.Run("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	w, _ := NewWorkflows(fixedNow)
	wf, err := w.Create(Workflow{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if wf.Name != "Novi Workflow" || wf.Trigger != "manual" || wf.Status != "inactive" {
		t.Fatalf("defaults = %+v", wf)
	}

	wf.Trigger = "carrier-pigeon"
	if _, err := w.Update(wf.ID, wf); err == nil {
		t.Fatalf("expected invalid trigger error")
	}

	if err := w.Delete(wf.ID, false); !errors.Is(err, ErrDeleteDeclined) {
		t.Fatalf("want ErrDeleteDeclined, got %v", err)
	}
	if len(w.List()) != 4 {
		t.Fatalf("declined delete removed the workflow")
	}
	if err := w.Delete(wf.ID, true); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(w.List()) != 3 {
		t.Fatalf("workflow not removed")
	}

	toggled, err := w.Toggle("3")
	if err != nil || toggled.Status != "active" {
		t.Fatalf("toggle = %+v, %v", toggled, err)
	}
}
