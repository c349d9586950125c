package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tutorhub/internal/config"
	"tutorhub/internal/database"
	"tutorhub/internal/domain/feedback"
	"tutorhub/internal/domain/profile"
	"tutorhub/internal/domain/review"
	"tutorhub/internal/domain/schedule"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	if db.Dialector.Name() == "postgres" {
		if err := database.Migrate(context.Background(), db, cfg.MigrationsDir); err != nil {
			log.Fatal("migrations failed: ", err)
		}
	} else {
		err := db.AutoMigrate(&profile.User{}, &schedule.Slot{}, &review.Record{}, &review.File{}, &feedback.Message{})
		if err != nil {
			log.Fatal("auto-migrate failed: ", err)
		}
	}

	// Cleanup old data in FK-safe order.
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM repository_files")
	db.Exec("DELETE FROM repository_feedback")
	db.Exec("DELETE FROM repositories")
	db.Exec("DELETE FROM calendar_events")
	db.Exec("DELETE FROM profiles")

	log.Println("Creating users...")

	admin := createUser(db, "admin@tutorhub.io", "admin123", "Admin", profile.RoleAdmin)
	log.Printf("Admin created: %s / admin123", admin.Email)

	tutors := []*profile.User{
		createUser(db, "marat.tutor@tutorhub.io", "tutor123", "Marat Seitkali", profile.RoleTutor),
		createUser(db, "aigerim.tutor@tutorhub.io", "tutor123", "Aigerim Nurlanova", profile.RoleTutor),
	}

	students := []*profile.User{}
	studentEmails := []string{"asel@mail.kz", "bekzat@gmail.com", "dina@yandex.kz"}
	for i, email := range studentEmails {
		students = append(students, createUser(db, email, "student123", fmt.Sprintf("Student %d", i+1), profile.RoleStudent))
	}
	log.Printf("Created %d tutors and %d students", len(tutors), len(students))

	log.Println("Creating availability...")
	now := time.Now().Truncate(time.Hour)
	slots := 0
	for _, tutor := range tutors {
		for day := 1; day <= 5; day++ {
			for _, hour := range []int{10, 14, 17} {
				start := now.AddDate(0, 0, day).Add(time.Duration(hour-now.Hour()) * time.Hour)
				slot := schedule.Slot{
					ID:        uuid.New().String(),
					TutorID:   tutor.ID,
					StartTime: start,
					EndTime:   start.Add(time.Hour),
					Status:    schedule.StatusAvailable,
				}
				if err := db.Create(&slot).Error; err != nil {
					log.Fatal("slot create failed: ", err)
				}
				slots++
			}
		}
	}
	log.Printf("Created %d available slots", slots)

	log.Println("Seed complete")
}

func createUser(db *gorm.DB, email, password, name string, role profile.Role) *profile.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt failed: ", err)
	}
	u := &profile.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
	}
	if err := db.Create(u).Error; err != nil {
		log.Fatalf("user create failed for %s: %v", email, err)
	}
	return u
}
