package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/crypto/bcrypt"

	"unidash/internal/auth"
	"unidash/internal/config"
	"unidash/internal/handlers"
	"unidash/internal/lecture"
	"unidash/internal/models"
	"unidash/internal/storage"
	"unidash/internal/tasks"
	"unidash/internal/ws"
)

// @Title						University Dashboard API
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	if os.Getenv("ENV_CHECK") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file, using system env")
		}
	}

	cfg := config.Load()
	auth.Configure(cfg)

	storage.ConnectDatabase(cfg)

	err := storage.DB.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.DepartmentAssignment{},
		&models.Student{},
		&models.Course{},
		&models.Lecture{},
		&models.Assignment{},
		&models.Exam{},
		&models.FinancialRecord{},
		&models.AttendanceRecord{},
	)
	if err != nil {
		log.Fatal("migration failed: ", err)
	}

	storage.InitRedis(cfg)

	seedAdmin()

	handlers.InitLectureService(lecture.NewService(lecture.NewGormStore(storage.DB)))

	tasks.InitScheduler()

	go ws.HubInstance.Run()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", handlers.Login)
		authGroup.POST("/refresh", handlers.RefreshToken)
		authGroup.GET("/me", auth.AuthMiddleware(), handlers.Me)
		authGroup.POST("/logout", auth.AuthMiddleware(), handlers.Logout)
	}

	api := r.Group("/api", auth.AuthMiddleware())
	{
		api.GET("/stats", handlers.GetStats)

		api.GET("/students", handlers.ListStudents)
		api.GET("/courses", handlers.ListCourses)
		api.GET("/lecturers", handlers.ListLecturers)
		api.GET("/departments", handlers.ListDepartments)
		api.GET("/departments/assignments", handlers.ListDepartmentAssignments)

		api.GET("/assignments", handlers.ListAssignments)
		api.POST("/assignments", handlers.CreateAssignment)
		api.PUT("/assignments/:id", handlers.UpdateAssignment)
		api.DELETE("/assignments/:id", handlers.DeleteAssignment)

		api.GET("/exams", handlers.ListExams)
		api.POST("/exams", handlers.CreateExam)
		api.PUT("/exams/:id", handlers.UpdateExam)
		api.DELETE("/exams/:id", handlers.DeleteExam)

		api.GET("/finance", handlers.ListFinancialRecords)

		api.GET("/attendance", handlers.ListAttendance)
		api.POST("/attendance", handlers.RecordAttendance)
		api.POST("/attendance/:id/toggle", handlers.ToggleAttendance)

		api.GET("/lectures", handlers.ListLectures)
		api.GET("/lectures/buckets", handlers.LectureBuckets)
		api.POST("/lectures", handlers.CreateLecture)
		api.PUT("/lectures/:id", handlers.UpdateLecture)
		api.DELETE("/lectures/:id", handlers.DeleteLecture)
		api.POST("/lectures/:id/start", handlers.StartLecture)
		api.POST("/lectures/:id/end", handlers.EndLecture)
	}

	admin := r.Group("/api", auth.AuthMiddleware(), auth.RequireAdmin())
	{
		admin.POST("/students", handlers.CreateStudent)
		admin.PUT("/students/:id", handlers.UpdateStudent)
		admin.DELETE("/students/:id", handlers.DeleteStudent)

		admin.POST("/courses", handlers.CreateCourse)
		admin.PUT("/courses/:id", handlers.UpdateCourse)
		admin.DELETE("/courses/:id", handlers.DeleteCourse)

		admin.POST("/lecturers", handlers.CreateLecturer)
		admin.PUT("/lecturers/:id", handlers.UpdateLecturer)
		admin.DELETE("/lecturers/:id", handlers.DeleteLecturer)

		admin.POST("/departments", handlers.CreateDepartment)
		admin.POST("/departments/assignments", handlers.AssignLecturer)
		admin.DELETE("/departments/assignments/:id", handlers.DeactivateAssignment)

		admin.POST("/finance", handlers.CreateFinancialRecord)
		admin.POST("/finance/:id/pay", handlers.MarkRecordPaid)
		admin.DELETE("/finance/:id", handlers.DeleteFinancialRecord)
	}

	r.GET("/ws/:channel", ws.SubscribeHandler)

	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server failed: ", err)
	}
}

// seedAdmin provisions the initial admin account from the environment
// when no admin exists yet.
func seedAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	storage.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("admin seed failed:", err)
		return
	}
	admin := models.User{
		Name:         "System",
		Surname:      "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := storage.DB.Create(&admin).Error; err != nil {
		log.Println("admin seed failed:", err)
		return
	}
	log.Println("seeded admin account:", email)
}
