package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"kharcha/internal/domain/user"
	"kharcha/internal/infrastructure/postgres"
	"kharcha/internal/interfaces/scheduler"
	"kharcha/internal/shared/auth"
	"kharcha/internal/shared/config"
)

const usage = `Kharcha Admin CLI - Management commands for the Kharcha API

Usage:
  admin <command> [options]

Commands:
  migrate        Apply pending database migrations
  create-user    Create a user account
  credit-sweep   Log unpaid business credit digests for users

Examples:
  # Apply migrations
  admin migrate

  # Create a user
  admin create-user --email=ana@example.com --name="Ana" --password=secret123

  # Sweep unpaid business credits for a specific user
  admin credit-sweep --user-id=1

  # Sweep unpaid business credits for all users
  admin credit-sweep --all
`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		runMigrate(os.Args[2:])
	case "create-user":
		runCreateUser(os.Args[2:])
	case "credit-sweep":
		runCreditSweep(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func connect() *postgres.DB {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	return db
}

func runMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	db := connect()
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations applied")
}

func runCreateUser(args []string) {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	email := fs.String("email", "", "Email address for the new user")
	name := fs.String("name", "", "Display name for the new user")
	password := fs.String("password", "", "Password for the new user (min 8 characters)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *email == "" || *name == "" || *password == "" {
		fmt.Println("Error: --email, --name and --password are required")
		fs.Usage()
		os.Exit(1)
	}
	if len(*password) < 8 {
		log.Fatal("Password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	params := user.CreateUserParams{
		Email:        strings.ToLower(strings.TrimSpace(*email)),
		Name:         *name,
		PasswordHash: hash,
	}
	if err := params.Validate(); err != nil {
		log.Fatalf("Invalid user: %v", err)
	}

	db := connect()
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	u, err := postgres.NewUserRepository(db).Create(ctx, params)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("Created user %d (%s)\n", u.ID, u.Email)
}

func runCreditSweep(args []string) {
	fs := flag.NewFlagSet("credit-sweep", flag.ExitOnError)

	userIDStr := fs.String("user-id", "", "User ID(s) to sweep (comma-separated for multiple)")
	allUsers := fs.Bool("all", false, "Sweep all users")
	timeoutStr := fs.String("timeout", "5m", "Timeout for the operation (e.g., 5m, 1h)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *userIDStr == "" && !*allUsers {
		fmt.Println("Error: must specify --user-id or --all")
		fs.Usage()
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	db := connect()
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var userIDs []int64

	if *allUsers {
		userIDs, err = postgres.NewUserRepository(db).ListIDs(ctx)
		if err != nil {
			log.Fatalf("Failed to list users: %v", err)
		}
	} else {
		for _, p := range strings.Split(*userIDStr, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			id, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				log.Fatalf("Invalid user ID '%s': %v", p, err)
			}
			userIDs = append(userIDs, id)
		}
	}

	if len(userIDs) == 0 {
		log.Println("No users to process")
		return
	}

	expenseRepo := postgres.NewExpenseRepository(db)

	for _, id := range userIDs {
		job := scheduler.NewCreditSweepJob(id, expenseRepo)
		if err := job.Execute(ctx); err != nil {
			log.Printf("Sweep failed for user %d: %v", id, err)
		}
	}

	log.Printf("Credit sweep completed for %d user(s)", len(userIDs))
}
