package seeders

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"harvestbook-api/config"
	"harvestbook-api/dtos"
	"harvestbook-api/ledger"
	"harvestbook-api/models"
	"harvestbook-api/services"
)

func ptrString(s string) *string {
	return &s
}

func Seed() {
	// ============= Demo operator =============
	hash, _ := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	user := models.User{
		Email:    "919900112233@phone.harvestbook.app",
		Password: string(hash),
		Name:     "Demo Operator",
		Phone:    "919900112233",
	}
	config.DB.FirstOrCreate(&user, models.User{Email: user.Email})

	// ============= Machines =============
	machines := []models.Machine{
		{UserID: user.ID, Name: "John Deere W70", RegistrationNumber: "KA01HV2345"},
		{UserID: user.ID, Name: "Kartar 4000", RegistrationNumber: "KA01HV7788"},
	}
	for i := range machines {
		config.DB.FirstOrCreate(&machines[i], models.Machine{
			UserID:             user.ID,
			RegistrationNumber: machines[i].RegistrationNumber,
		})
	}

	// ============= Farmers =============
	farmers := []models.Farmer{
		{UserID: user.ID, Name: "Ramesh Gowda", Mobile: "919845012345", Place: "Hosur"},
		{UserID: user.ID, Name: "Shivanna", Mobile: "919845067890", Place: "Maddur"},
		{UserID: user.ID, Name: "Kumar Reddy", Mobile: "919845054321", Place: "Kolar"},
	}
	for i := range farmers {
		config.DB.FirstOrCreate(&farmers[i], models.Farmer{UserID: user.ID, Name: farmers[i].Name})
	}

	var jobCount int64
	config.DB.Model(&models.Job{}).Where("user_id = ?", user.ID).Count(&jobCount)
	if jobCount > 0 {
		return
	}

	// ============= Jobs + payments =============
	createJob := func(farmer models.Farmer, machineID uint, crop string, qty, rate float64, daysAgo int, paid *float64) {
		total := qty * rate
		job := models.Job{
			UserID:      user.ID,
			FarmerID:    farmer.ID,
			MachineID:   &machineID,
			Crop:        crop,
			BillingMode: "acre",
			Quantity:    qty,
			Rate:        rate,
			TotalAmount: total,
			Status:      ledger.StatusPending,
			JobDate:     time.Now().AddDate(0, 0, -daysAgo),
		}
		config.DB.Create(&job)

		if paid != nil {
			paymentService := services.NewPaymentService(config.DB)
			_, _ = paymentService.Record(user.ID, job.ID, dtos.RecordPaymentInput{
				Amount: paid,
				Method: "cash",
			})
		}
	}

	full := 7500.0
	partial := 3000.0
	createJob(farmers[0], machines[0].ID, "paddy", 5, 1500, 10, &full)
	createJob(farmers[1], machines[0].ID, "ragi", 3, 1400, 6, &partial)
	createJob(farmers[2], machines[1].ID, "maize", 4, 1600, 2, nil)

	// ============= Expenses =============
	expenses := []models.Expense{
		{UserID: user.ID, Category: "diesel", Amount: 2200, MachineID: &machines[0].ID, Description: ptrString("Diesel top-up"), SpentAt: time.Now().AddDate(0, 0, -5)},
		{UserID: user.ID, Category: "repair", Amount: 850, MachineID: &machines[1].ID, Description: ptrString("Belt replacement"), SpentAt: time.Now().AddDate(0, 0, -3)},
	}
	for i := range expenses {
		config.DB.Create(&expenses[i])
	}

	fmt.Println("Seeding done: 1 operator + 3 farmers + 2 machines + 3 jobs + expenses")
}
