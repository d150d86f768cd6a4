package handlers

import (
	"encoding/json"
	"testing"
)

func TestInstallmentRequestAcceptsMaskedAmount(t *testing.T) {
	var req installmentRequest
	if err := json.Unmarshal([]byte(`{"amount":"R$ 1.234,56"}`), &req); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if req.Amount == nil || float64(*req.Amount) != 1234.56 {
		t.Fatalf("masked amount not parsed: %+v", req.Amount)
	}
	if req.Date != nil {
		t.Fatalf("date should stay nil")
	}
}

func TestInstallmentRequestAcceptsPlainNumber(t *testing.T) {
	var req installmentRequest
	if err := json.Unmarshal([]byte(`{"amount":250.5,"date":"2024-06-15"}`), &req); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if req.Amount == nil || float64(*req.Amount) != 250.5 {
		t.Fatalf("numeric amount not parsed: %+v", req.Amount)
	}
	if req.Date == nil || *req.Date != "2024-06-15" {
		t.Fatalf("date not parsed: %+v", req.Date)
	}
}

func TestInstallmentRequestRejectsGarbageAmount(t *testing.T) {
	var req installmentRequest
	if err := json.Unmarshal([]byte(`{"amount":"abc"}`), &req); err == nil {
		t.Fatalf("expected error for non-monetary string")
	}
}
