package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// FunctionResult is the response shape of a remote function call
type FunctionResult struct {
	Success  bool   `json:"success"`
	PDFData  string `json:"pdfData,omitempty"` // base64-encoded document
	Filename string `json:"filename,omitempty"`
	Message  string `json:"message,omitempty"`
}

// FunctionInvoker calls an opaque remote function by ID. The ticket
// PDF generator is reached through this collaborator; the core owns
// neither its transport nor its document format.
type FunctionInvoker interface {
	Invoke(ctx context.Context, functionID string, payload any) (*FunctionResult, error)
}

// DownloadTicket generates the printable ticket for a booking via the
// remote PDF function. Downstream failures propagate with the
// downstream's message.
func (l *ledger) DownloadTicket(ctx context.Context, pnr string) (*FunctionResult, error) {
	booking := l.GetByPNR(ctx, pnr)
	if booking == nil {
		return nil, fmt.Errorf("%w: pnr %s", ErrBookingNotFound, pnr)
	}

	result, err := l.invoker.Invoke(ctx, l.ticketFunctionID, booking)
	if err != nil {
		return nil, fmt.Errorf("ticket generation failed: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("ticket generation failed: %s", result.Message)
	}

	return result, nil
}

// HTTPFunctionInvoker invokes remote functions as JSON POSTs against a
// base URL
type HTTPFunctionInvoker struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFunctionInvoker creates an invoker for the function endpoint
// at baseURL
func NewHTTPFunctionInvoker(baseURL string) *HTTPFunctionInvoker {
	return &HTTPFunctionInvoker{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (i *HTTPFunctionInvoker) Invoke(ctx context.Context, functionID string, payload any) (*FunctionResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode function payload: %w", err)
	}

	url := fmt.Sprintf("%s/functions/%s", i.baseURL, functionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build function request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke function %s: %w", functionID, err)
	}
	defer resp.Body.Close()

	var result FunctionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode function response: %w", err)
	}

	return &result, nil
}
