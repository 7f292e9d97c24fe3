package observability

import (
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestEventLog_WriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	now := time.Now().UTC().Truncate(time.Millisecond)
	events := []Event{
		{
			Time:    now,
			Level:   "INFO",
			Type:    "evaluation.completed",
			Target:  "Objetivo",
			Message: "evaluation completed",
			Data:    map[string]any{"average": 4.2},
		},
		{
			Time:    now.Add(time.Second),
			Level:   "WARN",
			Type:    "evaluation.cancelled",
			Target:  "Actividad 1",
			Message: "evaluation cancelled",
		},
	}

	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	result, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("expected 2 events, got %d", len(result))
	}

	if result[0].Type != "evaluation.completed" {
		t.Errorf("expected type evaluation.completed, got %s", result[0].Type)
	}
	if result[0].Target != "Objetivo" {
		t.Errorf("expected target Objetivo, got %s", result[0].Target)
	}
	if result[1].Level != "WARN" {
		t.Errorf("expected level WARN, got %s", result[1].Level)
	}
}

func TestEventLog_FilterByTypeAndTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	now := time.Now().UTC()
	events := []Event{
		{Time: now, Level: "INFO", Type: "evaluation.completed", Target: "Objetivo", Message: "done"},
		{Time: now.Add(time.Second), Level: "INFO", Type: "synthesis.completed", Target: "synthesis", Message: "done"},
		{Time: now.Add(2 * time.Second), Level: "INFO", Type: "evaluation.completed", Target: "Actividad 1", Message: "done"},
	}
	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	byType, err := log.Read(EventFilter{Type: "evaluation.completed"})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(byType) != 2 {
		t.Fatalf("expected 2 evaluation events, got %d", len(byType))
	}

	byTarget, err := log.Read(EventFilter{Target: "Actividad 1"})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(byTarget) != 1 || byTarget[0].Target != "Actividad 1" {
		t.Fatalf("unexpected target filter result: %+v", byTarget)
	}
}

func TestEventLog_ReadMissingFile(t *testing.T) {
	log := &jsonlEventLog{path: filepath.Join(t.TempDir(), "missing.jsonl")}
	events, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading a missing log: %v", err)
	}
	if events != nil {
		t.Errorf("expected no events, got %v", events)
	}
}

func TestEventLog_ConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = log.Write(Event{Time: time.Now().UTC(), Level: "INFO", Type: "evaluation.started", Message: "x"})
		}()
	}
	wg.Wait()

	events, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(events) != 20 {
		t.Errorf("expected 20 events, got %d", len(events))
	}
}

func TestRecorder_LevelsFromType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	recorder := NewRecorder(log)
	recorder.LogEvent("evaluation.completed", "Objetivo", map[string]any{"average": 4.0})
	recorder.LogEvent("evaluation.cancelled", "Objetivo", nil)
	recorder.LogEvent("synthesis.failed", "synthesis", map[string]any{"error": "boom"})

	events, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i, want := range []string{"INFO", "WARN", "ERROR"} {
		if events[i].Level != want {
			t.Errorf("event %d: expected level %s, got %s", i, want, events[i].Level)
		}
	}
	if events[0].Target != "Objetivo" {
		t.Errorf("unexpected target %q", events[0].Target)
	}
}
