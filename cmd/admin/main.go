package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mentorhub/backend/internal/models"
	"mentorhub/backend/internal/storage"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "promote-mentor":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin promote-mentor <user_id>")
			os.Exit(1)
		}
		userID := os.Args[2]
		if err := promoteMentor(storageSvc, userID); err != nil {
			log.Fatalf("Error promoting user: %v", err)
		}
		fmt.Printf("User %s is now a certified mentor.\n", userID)
	case "grant-admin":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin grant-admin <user_id>")
			os.Exit(1)
		}
		userID := os.Args[2]
		if err := grantAdmin(storageSvc, userID); err != nil {
			log.Fatalf("Error granting admin: %v", err)
		}
		fmt.Printf("User %s is now an admin.\n", userID)
	case "reset-streaks":
		reset, err := storageSvc.ResetStaleStreaks(
			time.Now().Truncate(24*time.Hour).AddDate(0, 0, -1),
			time.Now().Truncate(24*time.Hour),
		)
		if err != nil {
			log.Fatalf("Error resetting streaks: %v", err)
		}
		fmt.Printf("Reset streaks for %d users.\n", reset)
	case "stats":
		if err := printStats(storageSvc); err != nil {
			log.Fatalf("Error collecting stats: %v", err)
		}
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func promoteMentor(s storage.Storage, userID string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.Role = models.RoleMentor
	user.IsMentorCertified = true
	if !hasBadge(user, "Certified Mentor") {
		user.Badges = append(user.Badges, "Certified Mentor")
	}
	return s.UpdateUser(user)
}

func grantAdmin(s storage.Storage, userID string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.Role = models.RoleAdmin
	return s.UpdateUser(user)
}

func printStats(s storage.Storage) error {
	total, err := s.CountUsers()
	if err != nil {
		return err
	}
	mentors, err := s.CountUsersByRole(models.RoleMentor)
	if err != nil {
		return err
	}
	completed, err := s.CountMeetingsByStatus(models.MeetingStatusCompleted)
	if err != nil {
		return err
	}
	fmt.Printf("Users:             %d\n", total)
	fmt.Printf("Mentors:           %d\n", mentors)
	fmt.Printf("Completed meetings: %d\n", completed)
	return nil
}

func hasBadge(user *models.User, badge string) bool {
	for _, b := range user.Badges {
		if b == badge {
			return true
		}
	}
	return false
}
