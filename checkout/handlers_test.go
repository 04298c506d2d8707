package checkout

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIdemCacheKeyScopedToBuyer(t *testing.T) {
	if got := idemCacheKey("buyer1", "k1"); got != "checkout:idem:buyer1:k1" {
		t.Errorf("unexpected key %q", got)
	}
	// the same client-supplied key must map to different entries per buyer
	if idemCacheKey("buyer1", "k1") == idemCacheKey("buyer2", "k1") {
		t.Error("replay entries are not scoped to the buyer")
	}
}

func TestRespondLockOutcome(t *testing.T) {
	rec := httptest.NewRecorder()
	if respondLockOutcome(rec, "buyer1", false, errors.New("redis down")) {
		t.Fatal("redis error must not let checkout proceed")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("redis error: want 500, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	if respondLockOutcome(rec, "buyer1", false, nil) {
		t.Fatal("contention must not let checkout proceed")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("contention: want 429, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	if !respondLockOutcome(rec, "buyer1", true, nil) {
		t.Fatal("acquired lock should let checkout proceed")
	}
}

func TestRespondCheckoutError(t *testing.T) {
	rec := httptest.NewRecorder()
	respondCheckoutError(rec, "buyer1", ErrCartEmpty)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty cart: want 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	respondCheckoutError(rec, "buyer1", &ValidationError{Issues: []LineIssue{
		{LineID: "l1", Code: IssueInsufficientStock, Available: 1, Requested: 5},
	}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("validation: want 400, got %d", rec.Code)
	}
	var body struct {
		Error   string      `json:"error"`
		Details []LineIssue `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Details) != 1 || body.Details[0].Code != IssueInsufficientStock {
		t.Errorf("line issues not in response: %+v", body)
	}

	rec = httptest.NewRecorder()
	respondCheckoutError(rec, "buyer1", errors.New("session lost"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("engine fault: want 500, got %d", rec.Code)
	}
}
