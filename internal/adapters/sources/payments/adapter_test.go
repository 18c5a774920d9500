package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-history/internal/domain/timeline"
	"clinic-history/internal/platform/httpclient"
	"clinic-history/internal/ports/auth"
)

func newAdapter(t *testing.T, ts *httptest.Server, bulkLimit int) *Adapter {
	t.Helper()
	client, err := httpclient.NewWithBaseURL(ts.URL, 0)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return New(client, auth.StaticToken("tok"), bulkLimit)
}

func TestFetch_ScopedByPatient(t *testing.T) {
	var gotQuery, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payments" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("patient_id")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"payments":[
			{"id":"p1","patient_id":"pat-9","payment_date":"2025-06-10","amount":150.5,"method":"card","status":"Completed","receipt_number":"RCP-77","concept":"Consultation fee"}
		]}`))
	}))
	defer ts.Close()

	a := newAdapter(t, ts, 0)
	res, err := a.Fetch(context.Background(), "pat-9")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotQuery != "pat-9" {
		t.Fatalf("expected patient_id query, got %q", gotQuery)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
	if len(res.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(res.Events))
	}

	e := res.Events[0]
	if e.ID != "payment-p1" {
		t.Fatalf("unexpected id %s", e.ID)
	}
	if e.Status != timeline.EventStatusCompleted {
		t.Fatalf("unexpected status %s", e.Status)
	}
	if e.AmountValue() != 150.5 || e.Method != "card" {
		t.Fatalf("amount/method lost: %v %s", e.Amount, e.Method)
	}
	if e.ReferenceID != "RCP-77" {
		t.Fatalf("expected receipt number as reference, got %s", e.ReferenceID)
	}
	if e.Description != "Consultation fee" {
		t.Fatalf("unexpected description %q", e.Description)
	}
}

func TestFetch_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	a := newAdapter(t, ts, 0)
	if _, err := a.Fetch(context.Background(), "pat-9"); err == nil {
		t.Fatalf("expected error on 500")
	}
}

// El fallback trae el listado masivo (limit=N) y filtra acá por paciente.
func TestFetchFallback_BulkFilteredClientSide(t *testing.T) {
	var gotLimit string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		if r.URL.Query().Has("patient_id") {
			t.Errorf("bulk fetch must not scope by patient server-side")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"payments":[
			{"id":"mine","patient_id":"pat-9","payment_date":"2025-06-10","amount":10,"status":"Completed"},
			{"id":"other","patient_id":"pat-2","payment_date":"2025-06-11","amount":20,"status":"Completed"},
			{"id":"mine2","patient_id":"pat-9","payment_date":"2025-06-12","amount":30,"status":"Pending"}
		]}`))
	}))
	defer ts.Close()

	a := newAdapter(t, ts, 500)
	res, err := a.FetchFallback(context.Background(), "pat-9")
	if err != nil {
		t.Fatalf("fallback: %v", err)
	}

	if gotLimit != "500" {
		t.Fatalf("expected limit=500, got %q", gotLimit)
	}
	if len(res.Events) != 2 {
		t.Fatalf("expected 2 events for pat-9, got %d", len(res.Events))
	}
	if res.Events[0].ID != "payment-mine" || res.Events[1].ID != "payment-mine2" {
		t.Fatalf("wrong events survived the filter: %s, %s", res.Events[0].ID, res.Events[1].ID)
	}
}

func TestNormalize_DefaultsAndSyntheticReference(t *testing.T) {
	res := normalize([]rawPayment{{
		ID:          "p7",
		PaymentDate: "2025-06-10",
		Status:      "Refunded", // fuera de tabla => pending
	}})

	e := res.Events[0]
	if e.Status != timeline.EventStatusPending {
		t.Fatalf("unmapped status should be pending, got %s", e.Status)
	}
	if e.Description != fallbackDescription {
		t.Fatalf("expected fallback description, got %q", e.Description)
	}
	if e.ReferenceID != "PAY-p7" {
		t.Fatalf("expected synthetic reference PAY-p7, got %s", e.ReferenceID)
	}
	if len(e.Actions) != 3 {
		t.Fatalf("payments expose view/download/print, got %v", e.Actions)
	}
}

func TestNormalize_DropsRecordWithoutDate(t *testing.T) {
	res := normalize([]rawPayment{
		{ID: "ok", PaymentDate: "2025-06-10"},
		{ID: "nodate"},
	})
	if len(res.Events) != 1 || res.Dropped != 1 {
		t.Fatalf("expected 1 event / 1 dropped, got %d / %d", len(res.Events), res.Dropped)
	}
}
