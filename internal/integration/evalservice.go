// Package integration holds the adapters that talk to systems outside the
// session: the HTTP scoring service and the spreadsheet import/export.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/juan-rv/tallereval/internal/core"
	"github.com/juan-rv/tallereval/pkg/models"
)

// EvaluationClient is the HTTP client for the scoring service. It implements
// core.EvaluationService.
type EvaluationClient struct {
	baseURL string
	client  *http.Client
}

// NewEvaluationClient creates a client for the scoring service at baseURL.
// A zero timeout leaves requests unbounded except by their context, which is
// how interactive evaluations are normally run (the user cancels explicitly).
func NewEvaluationClient(baseURL string, timeout time.Duration) *EvaluationClient {
	return &EvaluationClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// evaluationRequest is the wire form of a single-section evaluation.
type evaluationRequest struct {
	Population models.Population `json:"poblacion"`
	AgeRange   string            `json:"rango_edad"`
	Section    wireSection       `json:"apartado"`
}

// wireSection carries the section with its activity content flattened to a
// labelled text block, which is the shape the scoring prompts expect.
type wireSection struct {
	Kind    models.SectionKind `json:"tipo"`
	Label   string             `json:"Apartado"`
	Content string             `json:"Contenido"`
}

// EvaluateSection posts one section to /evaluar_apartado and decodes the
// evaluation result.
func (c *EvaluationClient) EvaluateSection(ctx context.Context, population models.Population, ageRange string, section models.Section) (*models.EvaluationResult, error) {
	payload := evaluationRequest{
		Population: population,
		AgeRange:   ageRange,
		Section: wireSection{
			Kind:    section.Kind,
			Label:   section.Label,
			Content: FlattenSectionContent(section),
		},
	}

	var result models.EvaluationResult
	if err := c.post(ctx, "/evaluar_apartado", "evaluating section", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SynthesizeWorkshop posts the aggregated results to
// /analizar_taller_completo and decodes the synthesis.
func (c *EvaluationClient) SynthesizeWorkshop(ctx context.Context, payload models.SynthesisPayload) (*models.SynthesisResult, error) {
	var result models.SynthesisResult
	if err := c.post(ctx, "/analizar_taller_completo", "synthesizing workshop", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// NotifyCancel tells the service to stop work on the aborted request.
func (c *EvaluationClient) NotifyCancel(ctx context.Context) error {
	return c.post(ctx, "/cancelar", "notifying cancel", struct{}{}, nil)
}

// NotifyReset tells the service the session was discarded so it can drop any
// cached context.
func (c *EvaluationClient) NotifyReset(ctx context.Context) error {
	return c.post(ctx, "/reset", "notifying reset", struct{}{}, nil)
}

func (c *EvaluationClient) post(ctx context.Context, path, op string, payload, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: encoding request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: building request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return &core.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &core.NetworkError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &core.NetworkError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(data),
		}
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return &core.NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// extractErrorMessage pulls the service's error detail out of a failure body.
// The service writes it under "error", older deployments under "detalle".
func extractErrorMessage(body []byte) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detalle"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}
	if payload.Error != "" {
		return payload.Error
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(body))
}

// FlattenSectionContent renders a section's content as the plain text block
// the scoring prompts consume. Text sections pass through unchanged; activity
// sections become a labelled block:
//
//	TÍTULO: ...
//	MODALIDAD: ...
//	DURACIÓN: ...
//	MATERIALES: a, b
//
//	DESCRIPCIÓN Y PASOS:
//	paso uno. paso dos
func FlattenSectionContent(section models.Section) string {
	activity := section.Content.Activity
	if activity == nil {
		return section.Content.Text
	}

	var b strings.Builder
	fmt.Fprintf(&b, "TÍTULO: %s\n", activity.Title)
	fmt.Fprintf(&b, "MODALIDAD: %s\n", activity.Modality)
	fmt.Fprintf(&b, "DURACIÓN: %s\n", activity.Duration)
	fmt.Fprintf(&b, "MATERIALES: %s\n", strings.Join(activity.Materials, ", "))
	fmt.Fprintf(&b, "\nDESCRIPCIÓN Y PASOS:\n%s", strings.Join(activity.Steps, ". "))
	return b.String()
}
