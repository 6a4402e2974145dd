package main

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/joebanks10/todo-api/internal/config"
	"github.com/joebanks10/todo-api/internal/db"
	"github.com/joebanks10/todo-api/internal/model"
	"github.com/joebanks10/todo-api/internal/repository"
)

// seedUser is one demo account with its todos.
type seedUser struct {
	Email    string
	Password string
	Todos    []string
}

var demoUsers = []seedUser{
	{
		Email:    "joeb@example.com",
		Password: "userOnePass",
		Todos:    []string{"Get the milk", "Buy flowers"},
	},
	{
		Email:    "gaby@example.com",
		Password: "userTwoPass",
		Todos:    []string{"Throw out garbage"},
	},
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Token{}, &model.Todo{}); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	todoRepo := repository.NewTodoRepository(gormDB)
	ctx := context.Background()

	created, skipped, err := seedDemoData(ctx, userRepo, todoRepo)
	if err != nil {
		logger.Fatalf("Failed to seed demo data: %v", err)
	}

	logger.Println("Seed completed successfully!")
	logger.Printf("  - Users created: %d", created)
	logger.Printf("  - Users already present, skipped: %d", skipped)
}

// seedDemoData inserts the demo users and their todos. Users that already
// exist are skipped so the script can be re-run safely.
func seedDemoData(ctx context.Context, users repository.UserRepository, todos repository.TodoRepository) (created int, skipped int, err error) {
	for _, seed := range demoUsers {
		existing, err := users.FindByEmail(ctx, seed.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, skipped, err
		}
		if existing != nil {
			skipped++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return created, skipped, err
		}

		user := &model.User{Email: seed.Email, PasswordHash: string(hash)}
		if err := users.Create(ctx, user); err != nil {
			return created, skipped, err
		}

		for _, text := range seed.Todos {
			todo := &model.Todo{Text: text, OwnerID: user.ID}
			if err := todos.Create(ctx, todo); err != nil {
				return created, skipped, err
			}
		}
		created++
	}

	return created, skipped, nil
}
