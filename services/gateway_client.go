package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"platelog/models"
)

// GatewayClient speaks the analyze endpoint's wire contract, so the log flow
// can run against a gateway deployed as a separate process. It satisfies
// Estimator just like the in-process service.
type GatewayClient struct {
	baseURL string
	client  *http.Client
}

func NewGatewayClient(baseURL string) *GatewayClient {
	return &GatewayClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: upstreamTimeout + 5*time.Second},
	}
}

func (g *GatewayClient) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.Estimate, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, newUpstream(genericUpstreamMsg, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/meals/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, newUpstream(genericUpstreamMsg, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, newUpstreamTimeout(genericUpstreamMsg, err)
		}
		if errors.Is(err, context.Canceled) {
			return nil, newCanceled("analysis canceled", err)
		}
		return nil, newUpstream(genericUpstreamMsg, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newUpstream(genericUpstreamMsg, err)
	}

	if resp.StatusCode != http.StatusOK {
		var fail struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &fail)
		if fail.Error == "" {
			fail.Error = genericUpstreamMsg
		}
		switch resp.StatusCode {
		case http.StatusBadRequest:
			return nil, newValidation(fail.Error)
		case http.StatusGatewayTimeout:
			return nil, newUpstreamTimeout(fail.Error, fmt.Errorf("gateway status %d", resp.StatusCode))
		default:
			return nil, newUpstream(fail.Error, fmt.Errorf("gateway status %d", resp.StatusCode))
		}
	}

	var est models.Estimate
	if err := json.Unmarshal(body, &est); err != nil {
		return nil, newUpstreamFormat(genericUpstreamMsg, err)
	}
	return &est, nil
}
