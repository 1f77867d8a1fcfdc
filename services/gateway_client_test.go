package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"platelog/models"
)

func TestGatewayClientSuccess(t *testing.T) {
	t.Parallel()

	want := models.Estimate{
		MealTitle: "Lunch Bowl",
		Items: []models.MealItem{
			{Name: "Rice", Quantity: "1 cup", MacroBreakdown: models.MacroBreakdown{Kcal: 200, Protein: 4, Carbs: 45, Fat: 1}},
		},
		Total: models.MacroBreakdown{Kcal: 200, Protein: 4, Carbs: 45, Fat: 1},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/meals/analyze" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req models.AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Message != "rice" || req.MealLabel != "Lunch" {
			t.Errorf("request not forwarded verbatim: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	got, err := NewGatewayClient(srv.URL).Analyze(context.Background(), models.AnalyzeRequest{Message: "rice", MealLabel: "Lunch"})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if got.MealTitle != want.MealTitle || got.Total != want.Total || len(got.Items) != 1 {
		t.Fatalf("Analyze() = %+v, want %+v", got, want)
	}
}

func TestGatewayClientErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		kind   Kind
		msg    string
	}{
		{"bad request", http.StatusBadRequest, `{"error": "missing input"}`, KindValidation, "missing input"},
		{"server failure", http.StatusInternalServerError, `{"error": "unable to analyze meal right now"}`, KindUpstream, "unable to analyze meal right now"},
		{"timeout", http.StatusGatewayTimeout, `{"error": "unable to analyze meal right now"}`, KindUpstreamTimeout, "unable to analyze meal right now"},
		{"empty error body", http.StatusBadGateway, ``, KindUpstream, genericUpstreamMsg},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGatewayClient(srv.URL).Analyze(context.Background(), models.AnalyzeRequest{Message: "x"})
			if !IsKind(err, tt.kind) {
				t.Fatalf("expected kind %q, got %v", tt.kind, err)
			}
			if UserMessage(err) != tt.msg {
				t.Fatalf("message = %q, want %q", UserMessage(err), tt.msg)
			}
		})
	}
}

func TestGatewayClientUndecodableBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewGatewayClient(srv.URL).Analyze(context.Background(), models.AnalyzeRequest{Message: "x"})
	if !IsKind(err, KindUpstreamFormat) {
		t.Fatalf("expected upstream format error, got %v", err)
	}
}
