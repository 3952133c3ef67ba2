// Seeds the demo users (two customers and one admin) so the portal can be
// exercised without open admin registration.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"payment_portal/internal/config"
	"payment_portal/internal/model"
	"payment_portal/internal/repository"
	"payment_portal/internal/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type seedUser struct {
	fullName      string
	idNumber      string
	accountNumber string
	password      string
	role          string
}

var demoUsers = []seedUser{
	{"Alice Customer", "8001015009087", "10000001", "Secur3P@ssw0rd", model.RoleCustomer},
	{"Bob Receiver", "8202025009086", "10000002", "Secur3P@ssw0rd", model.RoleCustomer},
	{"Admin User", "7703035009085", "admin0001", "AdminSecur3!", model.RoleAdmin},
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the demo users into the payments database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		return err
	}
	pool, err := config.ConnectDB(dbCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := config.AutoMigrate(pool); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(pool)

	for _, u := range demoUsers {
		existing, err := userRepo.FindByAccountNumber(ctx, u.accountNumber)
		if err != nil {
			return fmt.Errorf("checking %s: %w", u.accountNumber, err)
		}
		if existing != nil {
			log.Printf("Already exists: %s", u.accountNumber)
			continue
		}

		hash, err := utils.HashPassword(u.password, utils.DefaultHashCost)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", u.accountNumber, err)
		}

		user := &model.User{
			FullName:      u.fullName,
			IDNumber:      u.idNumber,
			AccountNumber: u.accountNumber,
			PasswordHash:  hash,
			Role:          u.role,
			CreatedAt:     time.Now(),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("seeding %s: %w", u.accountNumber, err)
		}
		log.Printf("Seeded user: %s", u.accountNumber)
	}

	return nil
}
