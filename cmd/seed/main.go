package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const (
	seedUserEmail    = "test@example.com"
	seedUserName     = "Test User"
	seedUserPassword = "Test@123"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Project{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Clear existing data, children first
	if err := gormDB.Exec("DELETE FROM tasks").Error; err != nil {
		log.Fatalf("Failed to clear tasks: %v", err)
	}
	if err := gormDB.Exec("DELETE FROM projects").Error; err != nil {
		log.Fatalf("Failed to clear projects: %v", err)
	}
	if err := gormDB.Exec("DELETE FROM users").Error; err != nil {
		log.Fatalf("Failed to clear users: %v", err)
	}
	log.Println("Old data destroyed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedUserPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        seedUserEmail,
		FullName:     seedUserName,
		PasswordHash: string(hashed),
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	log.Println("User created")

	projects := []*model.Project{
		{
			Title:       "Frontend Development",
			Description: "Build the React frontend for the project manager.",
			OwnerID:     user.ID,
		},
		{
			Title:       "API Finalization",
			Description: "Complete and test all backend API endpoints.",
			Status:      model.ProjectStatusCompleted,
			OwnerID:     user.ID,
		},
	}
	for _, p := range projects {
		if err := projectRepo.Create(ctx, p); err != nil {
			log.Fatalf("Failed to create project %q: %v", p.Title, err)
		}
	}
	log.Println("Projects created")

	due := time.Now().Add(7 * 24 * time.Hour)
	tasks := []*model.Task{
		{Title: "Setup React Project", ProjectID: projects[0].ID, OwnerID: user.ID},
		{Title: "Design Login Page", ProjectID: projects[0].ID, OwnerID: user.ID, Status: model.TaskStatusInProgress, DueDate: &due},
		{Title: "Implement State Management", ProjectID: projects[0].ID, OwnerID: user.ID},
		{Title: "Write Seeder Script", ProjectID: projects[1].ID, OwnerID: user.ID, Status: model.TaskStatusDone},
		{Title: "Add API Documentation", ProjectID: projects[1].ID, OwnerID: user.ID, Status: model.TaskStatusInProgress},
		{Title: "Test Authentication Flow", ProjectID: projects[1].ID, OwnerID: user.ID, Status: model.TaskStatusDone},
	}
	for _, t := range tasks {
		if err := taskRepo.Create(ctx, t); err != nil {
			log.Fatalf("Failed to create task %q: %v", t.Title, err)
		}
	}
	log.Println("Tasks created")

	log.Printf("Seed completed successfully!")
	log.Printf("  - Login with %s / %s", seedUserEmail, seedUserPassword)
	log.Printf("  - Projects: %d, Tasks: %d", len(projects), len(tasks))
}
