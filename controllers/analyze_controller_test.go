package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"platelog/models"
	"platelog/services"

	"github.com/gin-gonic/gin"
)

func analyzeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/meals/analyze", NewAnalyzeController(services.NewEstimationService()).Analyze)
	return r
}

func postAnalyze(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/meals/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAnalyzeHandlerMissingCredential(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	// Configuration is checked before the body: even garbage must get 500.
	w := postAnalyze(t, analyzeRouter(), `not json at all`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestAnalyzeHandlerInvalidPayload(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	w := postAnalyze(t, analyzeRouter(), `{"message": 7}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "invalid payload" {
		t.Fatalf("error = %q", body["error"])
	}
}

func TestAnalyzeHandlerMissingInput(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	w := postAnalyze(t, analyzeRouter(), `{"mealLabel": "Lunch"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "missing input" {
		t.Fatalf("error = %q", body["error"])
	}
}

func TestAnalyzeHandlerSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := `{"mealTitle": "Oatmeal", "items": [{"name": "Oats", "quantity": "1 bowl", "kcal": 150, "protein": 5, "carbs": 27, "fat": 3}], "confidence": 0.9}`
		resp := map[string]any{"choices": []map[string]any{{"message": map[string]any{"content": content}}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer upstream.Close()

	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", upstream.URL)

	w := postAnalyze(t, analyzeRouter(), `{"message": "a bowl of oatmeal", "mealLabel": "Breakfast"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var est models.Estimate
	if err := json.Unmarshal(w.Body.Bytes(), &est); err != nil {
		t.Fatalf("undecodable response: %v", err)
	}
	if est.MealTitle != "Oatmeal" {
		t.Errorf("mealTitle = %q", est.MealTitle)
	}
	if est.Total != (models.MacroBreakdown{Kcal: 150, Protein: 5, Carbs: 27, Fat: 3}) {
		t.Errorf("total = %+v", est.Total)
	}
	if est.Confidence == nil || *est.Confidence != 0.9 {
		t.Errorf("confidence = %v", est.Confidence)
	}
}
