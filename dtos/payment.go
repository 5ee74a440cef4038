package dtos

// RecordPaymentInput records money against a job. A nil Amount is a
// correction call: it re-derives the cached paid_amount/status from the
// payment ledger when the balance is already settled.
type RecordPaymentInput struct {
	Amount    *float64 `json:"amount,omitempty"`
	Method    string   `json:"method,omitempty"`
	RequestID *string  `json:"request_id,omitempty"`
}
