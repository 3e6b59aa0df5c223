package main

import (
	"log"

	"github.com/employeems/employee-management-api/internal/config"
	"github.com/employeems/employee-management-api/internal/database"
	"github.com/employeems/employee-management-api/internal/handlers"
	"github.com/employeems/employee-management-api/internal/middleware"
	"github.com/employeems/employee-management-api/internal/repository"
	"github.com/employeems/employee-management-api/internal/services"
	"github.com/employeems/employee-management-api/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Prepare upload storage
	store, err := storage.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	// Initialize repositories
	db := database.GetDB()
	adminRepo := repository.NewAdminRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	// Initialize services
	secret := []byte(cfg.JWTSecret)
	authService := services.NewAuthService(adminRepo, employeeRepo, secret, cfg.TokenTTL)
	employeeService := services.NewEmployeeService(employeeRepo, categoryRepo, adminRepo)
	taskService := services.NewTaskService(taskRepo, employeeRepo)
	submissionService := services.NewSubmissionService(submissionRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.IsProduction())
	employeeHandler := handlers.NewEmployeeHandler(employeeService, store)
	taskHandler := handlers.NewTaskHandler(taskService, store)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, store)

	// Initialize Gin router
	r := gin.Default()

	// CORS for the browser frontend; credentials must be allowed so the
	// session cookie travels with requests.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Uploaded images and files are served directly
	r.Static("/public", cfg.UploadDir)

	// Credential endpoints get a per-IP rate limit
	loginLimiter := middleware.RateLimiter(rate.Limit(5), 10)

	requireAuth := middleware.RequireAuth(secret)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Employee Management API is running",
		})
	})

	// Session introspection for the frontend
	r.GET("/verify", requireAuth, authHandler.Verify)

	// Admin routes
	auth := r.Group("/auth")
	{
		auth.POST("/adminregister", loginLimiter, authHandler.AdminRegister)
		auth.POST("/adminlogin", loginLimiter, authHandler.AdminLogin)
		auth.GET("/logout", authHandler.Logout)

		protected := auth.Group("", requireAuth)
		{
			protected.GET("/category", employeeHandler.ListCategories)
			protected.POST("/add_category", employeeHandler.AddCategory)

			protected.GET("/employee", employeeHandler.ListEmployees)
			protected.GET("/employee/:id", employeeHandler.GetEmployee)
			protected.POST("/add_employee", employeeHandler.AddEmployee)
			protected.PUT("/edit_employee/:id", employeeHandler.EditEmployee)
			protected.DELETE("/delete_employee/:id", employeeHandler.DeleteEmployee)

			protected.GET("/admin_count", employeeHandler.AdminCount)
			protected.GET("/employee_count", employeeHandler.EmployeeCount)
			protected.GET("/salary_count", employeeHandler.SalaryCount)
			protected.GET("/admin_records", employeeHandler.AdminRecords)
		}
	}

	// Employee routes
	employee := r.Group("/employee")
	{
		employee.POST("/employee_login", loginLimiter, authHandler.EmployeeLogin)
		employee.POST("/register", loginLimiter, authHandler.EmployeeRegister)
		employee.GET("/logout", authHandler.Logout)
		employee.GET("/detail/:id", requireAuth, employeeHandler.GetEmployeeDetail)
	}

	// Task routes
	tasks := r.Group("/api/tasks", requireAuth)
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
		tasks.POST("/:id/attachments", taskHandler.UploadAttachment)
	}

	// Submission routes
	submissions := r.Group("/api/submissions", requireAuth)
	{
		submissions.GET("", submissionHandler.ListSubmissions)
		submissions.POST("", submissionHandler.CreateSubmission)
		submissions.GET("/:id", submissionHandler.GetSubmission)
		submissions.PUT("/:id/status", submissionHandler.UpdateStatus)
		submissions.DELETE("/:id", submissionHandler.DeleteSubmission)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
