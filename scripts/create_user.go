package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/franciscosanchezn/gin-shop-api/internal/auth"
	"github.com/franciscosanchezn/gin-shop-api/internal/config"
	"github.com/franciscosanchezn/gin-shop-api/internal/database"
	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"github.com/franciscosanchezn/gin-shop-api/internal/repository"
	"github.com/franciscosanchezn/gin-shop-api/internal/services"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command line flags
	email := flag.String("email", "", "User email")
	password := flag.String("password", "", "User password")
	role := flag.String("role", models.RoleAdmin, "User role (admin or user)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Both -email and -password are required")
	}

	_ = godotenv.Load()
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.InitDatabase(ctx, conf.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	tokens := auth.NewTokenManager(conf.JWTSecret, conf.JWTExpiration)
	authService := services.NewAuthService(repository.NewUserRepository(db), tokens)

	user, err := authService.Register(ctx, services.RegisterInput{Email: *email, Password: *password, Role: *role})
	if errors.Is(err, services.ErrConflict) {
		log.Fatalf("Could not create user: %s", services.Message(err))
	}
	if err != nil {
		log.Fatal("Failed to create user:", err)
	}

	fmt.Printf("✓ User created with role '%s'!\n", user.Role)
	fmt.Printf("User ID: %d\n", user.ID)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Println("\nLog in with:")
	fmt.Printf("curl -X POST http://%s/auth/login \\\n", conf.Address())
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\"email\":\"%s\",\"password\":\"<password>\"}'\n", user.Email)
}
