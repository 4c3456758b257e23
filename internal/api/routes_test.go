package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/simplifymoney/kuberai-backend/internal/assistant"
	"github.com/simplifymoney/kuberai-backend/internal/purchase"
)

type stubAsk struct {
	resp assistant.Response
	seen string
}

func (s *stubAsk) Ask(_ context.Context, question string) assistant.Response {
	s.seen = question
	return s.resp
}

type stubPurchases struct {
	result *purchase.Result
	err    error
}

func (s *stubPurchases) Record(context.Context, purchase.Request) (*purchase.Result, error) {
	return s.result, s.err
}

func newTestServer(ask AskService, purchases PurchaseService) *Server {
	return NewServer(nil, ask, purchases, 0, "*", zerolog.Nop())
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rr, req)
	return rr
}

func TestRoot_StaticStatus(t *testing.T) {
	s := newTestServer(&stubAsk{}, &stubPurchases{})

	rr := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["message"] != "KuberAI is running" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestAskKuber_OK(t *testing.T) {
	ask := &stubAsk{resp: assistant.Response{
		IsGoldQuery: true,
		Answer:      "Gold is at ₹9905.10 per gram.",
	}}
	s := newTestServer(ask, &stubPurchases{})

	req := httptest.NewRequest(http.MethodPost, "/ask-kuber",
		strings.NewReader(`{"question": "What is the gold rate today?"}`))
	rr := serve(s, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ask.seen != "What is the gold rate today?" {
		t.Fatalf("question not forwarded, got %q", ask.seen)
	}

	var resp assistant.Response
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.IsGoldQuery {
		t.Fatal("expected is_gold_query=true")
	}
}

func TestAskKuber_BadBody(t *testing.T) {
	s := newTestServer(&stubAsk{}, &stubPurchases{})

	req := httptest.NewRequest(http.MethodPost, "/ask-kuber", strings.NewReader(`{bad json`))
	if rr := serve(s, req); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestAskKuber_EmptyQuestion(t *testing.T) {
	s := newTestServer(&stubAsk{}, &stubPurchases{})

	req := httptest.NewRequest(http.MethodPost, "/ask-kuber", strings.NewReader(`{"question": "  "}`))
	if rr := serve(s, req); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestBuyGold_OK(t *testing.T) {
	s := newTestServer(&stubAsk{}, &stubPurchases{result: &purchase.Result{
		Success:        true,
		Message:        "Purchase of 0.1667g gold successful.",
		TransactionID:  42,
		GramsPurchased: 0.1667,
	}})

	req := httptest.NewRequest(http.MethodPost, "/buy-gold", strings.NewReader(`{
		"user_name": "Asha",
		"user_email": "asha@example.com",
		"amount_inr": 1000,
		"quoted_price_inr_per_gram": 6000,
		"nudge_to_invest": true
	}`))
	rr := serve(s, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var result purchase.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.TransactionID != 42 || result.GramsPurchased != 0.1667 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestBuyGold_ValidationFailuresAre400(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"nudge declined", purchase.ErrNudgeDeclined},
		{"below minimum", purchase.ErrBelowMinimum},
		{"invalid request", purchase.ErrInvalidRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(&stubAsk{}, &stubPurchases{err: tc.err})
			req := httptest.NewRequest(http.MethodPost, "/buy-gold", strings.NewReader(`{}`))
			rr := serve(s, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rr.Code)
			}
			var body map[string]string
			json.Unmarshal(rr.Body.Bytes(), &body)
			if body["error"] == "" {
				t.Fatal("expected descriptive error message")
			}
		})
	}
}

func TestBuyGold_InternalFailureIs500(t *testing.T) {
	s := newTestServer(&stubAsk{}, &stubPurchases{err: context.DeadlineExceeded})
	req := httptest.NewRequest(http.MethodPost, "/buy-gold", strings.NewReader(`{}`))
	if rr := serve(s, req); rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestCorsMiddleware_Headers(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := corsMiddleware(inner, "https://app.simplifymoney.example")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	origin := rr.Header().Get("Access-Control-Allow-Origin")
	if origin != "https://app.simplifymoney.example" {
		t.Fatalf("expected custom origin, got %q", origin)
	}
	if !strings.Contains(rr.Header().Get("Access-Control-Allow-Methods"), "POST") {
		t.Fatal("expected POST to be allowed")
	}
}

func TestCorsMiddleware_Preflight(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called for OPTIONS")
	})
	handler := corsMiddleware(inner, "*")

	req := httptest.NewRequest(http.MethodOptions, "/ask-kuber", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", rr.Code)
	}
}
