package dtos

type NewFarmerInput struct {
	Name   string `json:"name" binding:"required"`
	Mobile string `json:"mobile"`
	Place  string `json:"place"`
}

// CreateJobInput logs work done for a farmer. Either an existing
// farmer_id or an inline farmer must be supplied; a farmer is registered
// on first job entry.
type CreateJobInput struct {
	FarmerID  *uint           `json:"farmer_id,omitempty"`
	Farmer    *NewFarmerInput `json:"farmer,omitempty"`
	MachineID *uint           `json:"machine_id,omitempty"`

	Crop        string  `json:"crop"`
	BillingMode string  `json:"billing_mode" binding:"required,oneof=acre hour"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	Rate        float64 `json:"rate" binding:"required,gt=0"`
	JobDate     string  `json:"job_date"`

	// Optional advance collected while logging the job. Runs through the
	// same recording path as a standalone payment.
	PaymentAmount *float64 `json:"payment_amount,omitempty"`
	PaymentMethod string   `json:"payment_method,omitempty"`
}

type UpdateJobInput struct {
	MachineID   *uint    `json:"machine_id,omitempty"`
	Crop        *string  `json:"crop,omitempty"`
	BillingMode *string  `json:"billing_mode,omitempty" binding:"omitempty,oneof=acre hour"`
	Quantity    *float64 `json:"quantity,omitempty" binding:"omitempty,gt=0"`
	Rate        *float64 `json:"rate,omitempty" binding:"omitempty,gt=0"`
	JobDate     *string  `json:"job_date,omitempty"`
}
