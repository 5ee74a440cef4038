package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// SendPaymentReceipt sends a WhatsApp payment confirmation to the farmer
// through the fonnte.com API. Callers treat failures as best-effort.
func SendPaymentReceipt(phone, message string) error {
	apiURL := "https://api.fonnte.com/send"
	token := os.Getenv("FONNTE_TOKEN")

	if token == "" {
		return fmt.Errorf("FONNTE_TOKEN is not set")
	}

	payload := map[string]string{
		"target":  phone,
		"message": message,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %v", err)
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status: %d", resp.StatusCode)
	}

	return nil
}

// FormatPaymentMessage formats the receipt text sent to the farmer.
func FormatPaymentMessage(farmerName, receiptNumber string, amount, pendingBalance float64, status string) string {
	message := "PAYMENT RECEIVED\n\n"
	message += fmt.Sprintf("Dear %s,\n", farmerName)
	message += fmt.Sprintf("Receipt: %s\n", receiptNumber)
	message += fmt.Sprintf("Amount: Rs %.2f\n", amount)
	if pendingBalance > 0 {
		message += fmt.Sprintf("Balance due: Rs %.2f\n", pendingBalance)
	} else {
		message += "Balance due: nil\n"
	}
	message += fmt.Sprintf("Status: %s\n", status)
	message += fmt.Sprintf("\n_%s_", time.Now().Format("02/01/2006 15:04:05"))

	return message
}
