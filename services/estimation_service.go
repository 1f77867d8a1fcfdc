package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"platelog/config"
	"platelog/models"
)

// Estimator turns a meal description and optional photo into a normalized
// nutrition estimate. EstimationService talks to the model API directly;
// GatewayClient satisfies the same interface over HTTP.
type Estimator interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.Estimate, error)
}

const (
	defaultModel   = "gpt-4o-mini"
	defaultBaseURL = "https://api.openai.com/v1"

	// Bound on the upstream call. The reference behavior had none; a hung
	// estimator would block the submission flow forever.
	upstreamTimeout = 30 * time.Second

	maxCompletionTokens = 900
	// Near-deterministic sampling: we want consistent structured output,
	// not creative phrasing.
	samplingTemperature = 0.1

	genericUpstreamMsg = "unable to analyze meal right now"
)

const analysisPrompt = `You are a nutrition assistant. Estimate the nutrition of the meal the user describes or photographs.

Respond with valid JSON, nothing else, in this exact format:
{
  "mealTitle": "short title for the meal",
  "items": [
    {"name": "food item", "quantity": "portion, e.g. 1 cup", "kcal": 0, "protein": 0, "carbs": 0, "fat": 0}
  ],
  "notes": "optional short note",
  "confidence": 0.0
}
Items must be listed in the order they appear in the meal. kcal is the total calories for the portion; protein, carbs and fat are grams. confidence is a number between 0 and 1.`

// EstimationService is the stateless gateway core: it forwards one meal to
// the external estimation service and normalizes whatever comes back.
// Identical inputs may legitimately yield different outputs; the upstream
// model is not deterministic.
type EstimationService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewEstimationService() *EstimationService {
	return &EstimationService{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		model:   config.Getenv("OPENAI_MODEL", defaultModel),
		baseURL: config.Getenv("OPENAI_BASE_URL", defaultBaseURL),
		client:  &http.Client{Timeout: upstreamTimeout + 5*time.Second},
	}
}

// Configured reports whether the upstream credential is present. Handlers
// check this before touching the request body.
func (s *EstimationService) Configured() bool {
	return s.apiKey != ""
}

func (s *EstimationService) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.Estimate, error) {
	if !s.Configured() {
		return nil, newConfiguration("estimation service is not configured")
	}
	if strings.TrimSpace(req.Message) == "" && req.ImageBase64 == "" {
		return nil, newValidation("missing input")
	}

	content, err := s.complete(ctx, req)
	if err != nil {
		return nil, err
	}
	return normalizeEstimate(content, req.MealLabel)
}

// --- upstream wire shapes (OpenAI-style chat completions) ---

type chatMessage struct {
	Role string `json:"role"`
	// string for the system message, []contentPart for the user message
	Content any `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *EstimationService) complete(ctx context.Context, req models.AnalyzeRequest) (string, error) {
	description := strings.TrimSpace(req.Message)
	if description == "" {
		description = "None"
	}
	label := req.MealLabel
	if label == "" {
		label = "Meal"
	}

	parts := []contentPart{{
		Type: "text",
		Text: fmt.Sprintf("Meal: %s\nDescription: %s", label, description),
	}}
	if req.ImageBase64 != "" {
		parts = append(parts, contentPart{Type: "image_url", ImageURL: &imageURL{URL: req.ImageBase64}})
	}

	payload, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: analysisPrompt},
			{Role: "user", Content: parts},
		},
		MaxTokens:      maxCompletionTokens,
		Temperature:    samplingTemperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", newUpstream(genericUpstreamMsg, err)
	}

	ctx, cancel := context.WithTimeout(ctx, upstreamTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", newUpstream(genericUpstreamMsg, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", newUpstreamTimeout(genericUpstreamMsg, err)
		}
		if errors.Is(err, context.Canceled) {
			return "", newCanceled("analysis canceled", err)
		}
		log.Printf("estimation: upstream call failed: %v", err)
		return "", newUpstream(genericUpstreamMsg, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("estimation: failed to read upstream response: %v", err)
		return "", newUpstream(genericUpstreamMsg, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("estimation: upstream status %d: %s", resp.StatusCode, body)
		return "", newUpstream(genericUpstreamMsg, fmt.Errorf("upstream status %d", resp.StatusCode))
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		log.Printf("estimation: undecodable upstream envelope: %v", err)
		return "", newUpstreamFormat(genericUpstreamMsg, err)
	}
	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		log.Printf("estimation: upstream returned no content")
		return "", newUpstreamFormat(genericUpstreamMsg, nil)
	}
	return cr.Choices[0].Message.Content, nil
}

// normalizeEstimate parses the model's completion and scrubs it into a shape
// the client can trust: items always a slice, every macro numeric, total
// recomputed here. An upstream-supplied total is discarded; the model's
// arithmetic is not trusted.
func normalizeEstimate(content, mealLabel string) (*models.Estimate, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		log.Printf("estimation: unparsable completion: %v", err)
		return nil, newUpstreamFormat(genericUpstreamMsg, err)
	}

	items := normalizeItems(doc["items"])

	title, _ := doc["mealTitle"].(string)
	title = strings.TrimSpace(title)
	if title == "" {
		title = mealLabel
	}
	if title == "" {
		title = "Meal"
	}

	est := &models.Estimate{
		MealTitle: title,
		Items:     items,
		Total:     models.SumItems(items),
	}
	if notes, ok := doc["notes"].(string); ok {
		est.Notes = notes
	}
	if c, ok := doc["confidence"].(float64); ok && !math.IsNaN(c) && !math.IsInf(c, 0) {
		c = math.Min(math.Max(c, 0), 1)
		est.Confidence = &c
	}
	return est, nil
}

// normalizeItems never fails: a missing or malformed items field degrades to
// an empty list, and item fields that will not coerce become zero.
func normalizeItems(v any) []models.MealItem {
	list, ok := v.([]any)
	if !ok {
		return []models.MealItem{}
	}
	items := make([]models.MealItem, 0, len(list))
	for _, el := range list {
		obj, _ := el.(map[string]any)
		item := models.MealItem{
			Name:     stringField(obj, "name"),
			Quantity: stringField(obj, "quantity"),
		}
		item.Kcal = numberField(obj, "kcal")
		item.Protein = numberField(obj, "protein")
		item.Carbs = numberField(obj, "carbs")
		item.Fat = numberField(obj, "fat")
		items = append(items, item)
	}
	return items
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// numberField coerces a decoded JSON value to float64, accepting numbers and
// numeric strings. Anything else, including NaN and infinities, becomes 0 so
// bad values never propagate into totals.
func numberField(obj map[string]any, key string) float64 {
	switch v := obj[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}
