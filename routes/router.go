package routes

import (
	"harvestbook-api/controllers"
	"harvestbook-api/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {

	// Public: phone bridge + password login
	r.POST("/auth/bridge", controllers.BridgeLogin)
	r.POST("/login", controllers.Login)

	// Farmers
	farmers := r.Group("/farmers")
	farmers.Use(middlewares.AuthMiddleware())
	{
		farmers.GET("/", controllers.GetFarmers)
		farmers.POST("/", controllers.CreateFarmer)
		farmers.GET("/:id", controllers.GetFarmerByID)
		farmers.PUT("/:id", controllers.UpdateFarmer)
	}

	// Machines
	machines := r.Group("/machines")
	machines.Use(middlewares.AuthMiddleware())
	{
		machines.GET("/", controllers.GetMachines)
		machines.POST("/", controllers.CreateMachine)
		machines.GET("/:id", controllers.GetMachineByID)
		machines.PUT("/:id", controllers.UpdateMachine)
		machines.DELETE("/:id", controllers.DeleteMachine)
	}

	// Jobs + payment ledger
	jobs := r.Group("/jobs")
	jobs.Use(middlewares.AuthMiddleware())
	{
		jobs.GET("/", controllers.GetJobs)
		jobs.POST("/", controllers.CreateJob)
		jobs.GET("/:id", controllers.GetJobByID)
		jobs.PUT("/:id", controllers.UpdateJob)
		jobs.DELETE("/:id", controllers.DeleteJob)

		jobs.POST("/:id/payments", controllers.RecordPayment)
		jobs.GET("/:id/payments", controllers.GetJobPayments)
	}

	// Expenses
	expenses := r.Group("/expenses")
	expenses.Use(middlewares.AuthMiddleware())
	{
		expenses.GET("/", controllers.GetExpenses)
		expenses.POST("/", controllers.CreateExpense)
		expenses.GET("/:id", controllers.GetExpenseByID)
		expenses.PUT("/:id", controllers.UpdateExpense)
		expenses.DELETE("/:id", controllers.DeleteExpense)
	}

	// Reports
	reports := r.Group("/reports")
	reports.Use(middlewares.AuthMiddleware())
	{
		reports.GET("/summary", controllers.GetSummaryReport)
		reports.GET("/farmers", controllers.GetFarmerReport)
	}

	// Profile
	me := r.Group("/me")
	me.Use(middlewares.AuthMiddleware())
	{
		me.GET("", controllers.GetMe)
		me.PUT("", controllers.UpdateMe)
		me.POST("/pin", controllers.SetPin)
		me.POST("/pin/verify", controllers.VerifyPin)
	}
}
