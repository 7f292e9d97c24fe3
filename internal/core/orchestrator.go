package core

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/juan-rv/tallereval/pkg/models"
)

// SynthesisTarget is the pending-request target used for the aggregate
// synthesis request, as opposed to a section label.
const SynthesisTarget = "synthesis"

// Event types written by the orchestrator.
const (
	EventEvaluationStarted   = "evaluation.started"
	EventEvaluationCompleted = "evaluation.completed"
	EventEvaluationCancelled = "evaluation.cancelled"
	EventEvaluationFailed    = "evaluation.failed"
	EventSynthesisStarted    = "synthesis.started"
	EventSynthesisCompleted  = "synthesis.completed"
	EventSynthesisCancelled  = "synthesis.cancelled"
	EventSynthesisFailed     = "synthesis.failed"
	EventCancelNotifyFailed  = "cancel.notify_failed"
)

// EvaluationService is the remote scoring service as seen by the
// orchestrator. Implemented over HTTP by the integration package and by
// fakes in tests.
type EvaluationService interface {
	EvaluateSection(ctx context.Context, population models.Population, ageRange string, section models.Section) (*models.EvaluationResult, error)
	SynthesizeWorkshop(ctx context.Context, payload models.SynthesisPayload) (*models.SynthesisResult, error)
	NotifyCancel(ctx context.Context) error
	NotifyReset(ctx context.Context) error
}

// EventLogger records orchestrator lifecycle events. A nil logger disables
// event recording.
type EventLogger interface {
	LogEvent(eventType, target string, data map[string]any)
}

// Orchestrator drives the session's requests against the scoring service:
// exactly one evaluation or synthesis in flight at a time, with explicit
// cancellation. A cancel that loses the race against the network response
// still wins: the response is discarded and no state is mutated.
type Orchestrator struct {
	service EvaluationService
	events  EventLogger

	mu      sync.Mutex
	pending *pendingRequest
}

type pendingRequest struct {
	target    string
	cancel    context.CancelFunc
	cancelled bool
}

// NewOrchestrator creates an orchestrator over the given service. events may
// be nil.
func NewOrchestrator(service EvaluationService, events EventLogger) *Orchestrator {
	return &Orchestrator{service: service, events: events}
}

// Pending returns the target of the in-flight request, if any.
func (o *Orchestrator) Pending() (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending == nil {
		return "", false
	}
	return o.pending.target, true
}

// EvaluateSection sends one section to the scoring service and, on success,
// stores the result in the session keyed by the section label. Returns
// ErrCancelled when the request was aborted, in which case the session is
// left untouched even if a response had already arrived.
func (o *Orchestrator) EvaluateSection(ctx context.Context, state *models.SessionState, label string) (*models.EvaluationResult, error) {
	section := state.Workshop.FindSection(label)
	if section == nil {
		return nil, validationErrorf("no section named %q", label)
	}
	if state.Workshop.AgeRange == "" {
		return nil, validationErrorf("select an age range before evaluating")
	}

	reqCtx, pending, err := o.begin(ctx, label)
	if err != nil {
		return nil, err
	}
	o.log(EventEvaluationStarted, label, nil)

	result, err := o.service.EvaluateSection(reqCtx, state.Workshop.Population, state.Workshop.AgeRange, *section)

	if o.finish(pending) || IsCancelled(err) {
		o.log(EventEvaluationCancelled, label, nil)
		return nil, ErrCancelled
	}
	if err != nil {
		o.log(EventEvaluationFailed, label, map[string]any{"error": err.Error()})
		return nil, err
	}

	state.Evaluations[label] = *result
	data := map[string]any{}
	if result.Statistics != nil {
		data["average"] = result.Statistics.Average
	}
	o.log(EventEvaluationCompleted, label, data)
	return result, nil
}

// Synthesize aggregates all stored results into one request and, on success,
// replaces the session's synthesis wholesale. It fails fast with a
// ValidationError, without touching the network, when the objective slot
// cannot be filled.
func (o *Orchestrator) Synthesize(ctx context.Context, state *models.SessionState) (*models.SynthesisResult, error) {
	payload, err := BuildSynthesisPayload(state)
	if err != nil {
		return nil, err
	}

	reqCtx, pending, err := o.begin(ctx, SynthesisTarget)
	if err != nil {
		return nil, err
	}
	o.log(EventSynthesisStarted, SynthesisTarget, map[string]any{
		"activities": len(payload.Evaluations.Activities),
	})

	result, err := o.service.SynthesizeWorkshop(reqCtx, payload)

	if o.finish(pending) || IsCancelled(err) {
		o.log(EventSynthesisCancelled, SynthesisTarget, nil)
		return nil, ErrCancelled
	}
	if err != nil {
		o.log(EventSynthesisFailed, SynthesisTarget, map[string]any{"error": err.Error()})
		return nil, err
	}

	state.Synthesis = result
	data := map[string]any{}
	if result.Metrics != nil {
		data["average"] = result.Metrics.Average
	}
	o.log(EventSynthesisCompleted, SynthesisTarget, data)
	return result, nil
}

// Cancel aborts the in-flight request, if any, and notifies the scoring
// service in the background so it can stop work too. The notification is
// best effort: its failure is logged and never surfaced, since the local
// abort has already taken effect. Calling Cancel with nothing pending is a
// no-op.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	pending := o.pending
	if pending != nil {
		pending.cancelled = true
	}
	o.mu.Unlock()

	if pending == nil {
		return
	}
	pending.cancel()

	go func() {
		if err := o.service.NotifyCancel(context.Background()); err != nil {
			o.log(EventCancelNotifyFailed, pending.target, map[string]any{"error": err.Error()})
		}
	}()
}

// begin registers a pending request, rejecting a second concurrent start.
func (o *Orchestrator) begin(ctx context.Context, target string) (context.Context, *pendingRequest, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending != nil {
		return nil, nil, ErrRequestInFlight
	}
	reqCtx, cancel := context.WithCancel(ctx)
	o.pending = &pendingRequest{target: target, cancel: cancel}
	return reqCtx, o.pending, nil
}

// finish clears the pending marker and reports whether the request had been
// cancelled. The cancelled flag is read under the same lock Cancel writes it
// with, so a response racing a cancel can never commit.
func (o *Orchestrator) finish(pending *pendingRequest) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending == pending {
		o.pending = nil
	}
	pending.cancel()
	return pending.cancelled
}

func (o *Orchestrator) log(eventType, target string, data map[string]any) {
	if o.events != nil {
		o.events.LogEvent(eventType, target, data)
	}
}

// BuildSynthesisPayload slots the stored evaluation results into the
// synthesis request. Slotting probes each section label, case-insensitively
// and with accents folded, for "introduccion", "objetivo" and "actividad";
// activity results keep their original label. Sections are visited in
// workshop order so the activity list is deterministic.
func BuildSynthesisPayload(state *models.SessionState) (models.SynthesisPayload, error) {
	var payload models.SynthesisPayload

	seen := make(map[string]bool, len(state.Evaluations))
	for _, section := range state.Workshop.Sections {
		result, ok := state.Evaluations[section.Label]
		if !ok {
			continue
		}
		seen[section.Label] = true
		slotEvaluation(&payload.Evaluations, section.Label, result)
	}

	// Imported backups may hold results for labels no longer in the section
	// list; slot them too, in a stable order.
	var orphans []string
	for label := range state.Evaluations {
		if !seen[label] {
			orphans = append(orphans, label)
		}
	}
	sort.Strings(orphans)
	for _, label := range orphans {
		slotEvaluation(&payload.Evaluations, label, state.Evaluations[label])
	}

	if payload.Evaluations.Objective == nil {
		return models.SynthesisPayload{}, validationErrorf("the Objetivo section must be evaluated before requesting a synthesis")
	}

	payload.AgeRangeLabel = FormatAgeRange(state.Workshop.AgeRange)
	return payload, nil
}

func slotEvaluation(slots *models.SynthesisEvaluations, label string, result models.EvaluationResult) {
	folded := foldLabel(label)
	switch {
	case strings.Contains(folded, "introduccion"):
		if slots.Introduction == nil {
			r := result
			slots.Introduction = &r
		}
	case strings.Contains(folded, "objetivo"):
		if slots.Objective == nil {
			r := result
			slots.Objective = &r
		}
	case strings.Contains(folded, "actividad"):
		slots.Activities = append(slots.Activities, models.ActivityEvaluation{
			EvaluationResult: result,
			SectionLabel:     label,
		})
	}
}

var labelFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
)

// foldLabel lowercases a label and strips Spanish diacritics so the default
// accented section names ("Introducción") match the service's unaccented
// slot keys.
func foldLabel(label string) string {
	return labelFolder.Replace(strings.ToLower(label))
}
