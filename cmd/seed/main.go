package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"jobtracker/internal/config"
	"jobtracker/internal/db"
	"jobtracker/internal/model"
	"jobtracker/internal/repository"
)

const (
	demoUsername = "demo"
	demoPassword = "demo-password"
)

var sampleJobs = []model.JobApplication{
	{Company: "Google", Role: "Software Engineer", DateApplied: "2024-01-15", Status: model.StatusInterviewScheduled, Category: model.CategoryBigTech, Notes: "Referred by a former colleague"},
	{Company: "Stripe", Role: "Backend Engineer", DateApplied: "2024-01-22", Status: model.StatusApplied, Category: model.CategoryBigTech},
	{Company: "Acme Robotics", Role: "Platform Engineer", DateApplied: "2024-02-01", Status: model.StatusShortlisted, Category: model.CategoryStartup, Notes: "Series B, ~80 people"},
	{Company: "Initech", Role: "Site Reliability Engineer", DateApplied: "2024-02-08", Status: model.StatusRejected, Category: model.CategoryMidTier},
	{Company: "Hooli", Role: "Full Stack Developer", DateApplied: "2024-02-14", Status: model.StatusTechnicalInterview, Category: model.CategoryOther, Notes: "Take-home due Friday"},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.JobApplication{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	jobRepo := repository.NewJobRepository(gormDB)

	user, err := ensureDemoUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}
	log.Printf("Demo user ready: %s (%s)", user.Username, user.ID)

	existing, err := jobRepo.ListByUser(ctx, user.ID)
	if err != nil {
		log.Fatalf("Failed to list existing jobs: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Demo user already has %d jobs, skipping job seed", len(existing))
		return
	}

	seeded := 0
	for _, job := range sampleJobs {
		job.UserID = user.ID
		if err := jobRepo.Create(ctx, &job); err != nil {
			log.Fatalf("Failed to create job %q: %v", job.Company, err)
		}
		seeded++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Jobs created: %d", seeded)
	log.Printf("  - Login with %s / %s", demoUsername, demoPassword)
}

// ensureDemoUser returns the demo user, creating it on first run.
func ensureDemoUser(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	user, err := repo.FindByUsername(ctx, demoUsername)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = &model.User{
		Username:     demoUsername,
		PasswordHash: string(hashed),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
