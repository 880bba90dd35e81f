package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/careassist/internal/domain/entities"
	"github.com/zatekoja/careassist/internal/domain/providers"
	"github.com/zatekoja/careassist/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/careassist/pkg/errors"
)

const assistPath = "/assist"

var _ providers.AssistProvider = (*HTTPClient)(nil)

// HTTPClient talks to the backend assistant over its JSON contract.
// It keeps no state between calls; callers serialize requests.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
	metrics    *observability.Metrics
}

// NewClient creates a client for the assistant at baseURL.
// A zero timeout leaves requests unbounded apart from the caller's context.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		metrics:  metrics,
	}
}

// Send posts one message and decodes the structured reply
func (c *HTTPClient) Send(ctx context.Context, message, patientID string) (*entities.AssistResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.NewEmptyInputError()
	}

	ctx, span := observability.StartSpan(ctx, "assist.send")
	defer span.End()

	start := time.Now()
	result, err := c.post(ctx, entities.AssistRequest{Message: message, PatientID: patientID})
	elapsed := time.Since(start)

	logger := observability.LoggerFromContext(ctx)
	if err != nil {
		observability.RecordError(span, err)
		observability.RecordAssistMetric(ctx, c.metrics, outcomeOf(err), elapsed)
		logger.Warn().Err(err).Dur("duration", elapsed).Msg("assist exchange failed")
		return nil, err
	}

	observability.SetSpanAttributes(span, attribute.Int("assist.answers", len(result.Result.Answers)))
	observability.RecordAssistMetric(ctx, c.metrics, "ok", elapsed)
	logger.Debug().
		Int("answers", len(result.Result.Answers)).
		Dur("duration", elapsed).
		Msg("assist exchange completed")

	return result, nil
}

func (c *HTTPClient) post(ctx context.Context, payload entities.AssistRequest) (*entities.AssistResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("encoding assist request: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+assistPath, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewNetworkError("building assist request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.NewNetworkError("assist request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, apperrors.NewProtocolError(statusLine(resp), nil)
	}

	var result entities.AssistResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperrors.NewProtocolError("invalid assist response", err)
	}
	if err := c.validate.Struct(result); err != nil {
		return nil, apperrors.NewProtocolError("invalid assist response", err)
	}

	return &result, nil
}

// statusLine renders "<code> <text>" the way the operator sees it
func statusLine(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

func outcomeOf(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return string(appErr.Type)
	}
	return "error"
}
