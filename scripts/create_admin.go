// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/branegg/dyspo/config"
	"github.com/branegg/dyspo/database"
	"github.com/branegg/dyspo/models"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@dyspo.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var existing models.User
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		fmt.Println("admin user already exists with email:", email)
		os.Exit(0)
	}

	u := models.User{
		Email:    email,
		Name:     "Administrator",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin user created")
	fmt.Println("   Email:", email)
	fmt.Println("   Password:", password, "(plain, remember to change later!)")
}
