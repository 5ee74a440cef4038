package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"time"
)

const defaultVerifyURL = "https://control.msg91.com/api/v5/widget/verifyAccessToken"

var nonDigits = regexp.MustCompile(`\D`)

// OTPClient verifies phone-auth access tokens against the provider's
// verification endpoint. The provider key comes from the server
// environment and is never sent to clients.
type OTPClient struct {
	AuthKey   string
	VerifyURL string
	Client    *http.Client
}

func NewOTPClient() *OTPClient {
	url := os.Getenv("OTP_VERIFY_URL")
	if url == "" {
		url = defaultVerifyURL
	}
	return &OTPClient{
		AuthKey:   os.Getenv("OTP_PROVIDER_KEY"),
		VerifyURL: url,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// VerifyIDToken exchanges the widget access token for the verified phone
// number (digits only). Any non-success response means the token is not
// valid.
func (o *OTPClient) VerifyIDToken(idToken string) (string, error) {
	if o.AuthKey == "" {
		return "", fmt.Errorf("OTP_PROVIDER_KEY is not set")
	}

	payload := map[string]string{
		"authkey":      o.AuthKey,
		"access-token": idToken,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequest("POST", o.VerifyURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach OTP provider: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode provider response: %v", err)
	}

	if resp.StatusCode != http.StatusOK || body.Type != "success" {
		return "", fmt.Errorf("token verification failed: %s", body.Message)
	}

	phone := NormalizePhone(body.Message)
	if phone == "" {
		return "", fmt.Errorf("verified identity has no phone number")
	}
	return phone, nil
}

// NormalizePhone strips everything except digits.
func NormalizePhone(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}
