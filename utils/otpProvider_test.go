package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(url string) *OTPClient {
	return &OTPClient{
		AuthKey:   "test-key",
		VerifyURL: url,
		Client:    &http.Client{Timeout: 2 * time.Second},
	}
}

func TestVerifyIDToken_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["authkey"] != "test-key" {
			t.Errorf("authkey = %q, want test-key", body["authkey"])
		}
		if body["access-token"] != "tok-123" {
			t.Errorf("access-token = %q, want tok-123", body["access-token"])
		}
		json.NewEncoder(w).Encode(map[string]string{
			"type":    "success",
			"message": "+91 98450 12345",
		})
	}))
	defer srv.Close()

	phone, err := newTestClient(srv.URL).VerifyIDToken("tok-123")
	if err != nil {
		t.Fatalf("VerifyIDToken: %v", err)
	}
	if phone != "919845012345" {
		t.Errorf("phone = %q, want digits only 919845012345", phone)
	}
}

func TestVerifyIDToken_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"type":    "error",
			"message": "token expired",
		})
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).VerifyIDToken("stale"); err == nil {
		t.Error("expected error for rejected token")
	}
}

func TestVerifyIDToken_NoPhoneInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"type":    "success",
			"message": "verified",
		})
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).VerifyIDToken("tok"); err == nil {
		t.Error("expected error when the identity has no phone number")
	}
}

func TestVerifyIDToken_MissingKey(t *testing.T) {
	client := &OTPClient{Client: &http.Client{}}
	if _, err := client.VerifyIDToken("tok"); err == nil {
		t.Error("expected error when provider key is unset")
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"+91 98450 12345": "919845012345",
		"98450-12345":     "9845012345",
		"abc":             "",
	}
	for in, want := range cases {
		if got := NormalizePhone(in); got != want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", in, got, want)
		}
	}
}
