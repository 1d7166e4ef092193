// Command admin provisions operator accounts from the terminal, the
// equivalent of the legacy createsuperuser management command.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/desatorate/desatorate-backend/internal/config"
	"github.com/desatorate/desatorate-backend/internal/user"
)

func main() {
	username := flag.String("username", "", "login username (required)")
	email := flag.String("email", "", "account email (required)")
	password := flag.String("password", "", "plaintext password, hashed before storage (required)")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	service := user.NewService(user.NewPostgresRepository(db), nil)
	created, err := service.CreateSuperuser(*username, *email, *password)
	if err != nil {
		log.Fatalf("create superuser: %v", err)
	}

	fmt.Printf("superuser %q created with id %d\n", created.Username, created.ID)
}
