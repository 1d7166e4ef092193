package main

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/desatorate/desatorate-backend/internal/avatar"
	"github.com/desatorate/desatorate-backend/internal/config"
	"github.com/desatorate/desatorate-backend/internal/device"
	"github.com/desatorate/desatorate-backend/internal/mail"
	"github.com/desatorate/desatorate-backend/internal/notify"
	"github.com/desatorate/desatorate-backend/internal/request"
	"github.com/desatorate/desatorate-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	app := fiber.New()
	setupCORS(app)

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.DefaultFrom)

	userService := user.NewService(user.NewPostgresRepository(db), mailer)
	deviceService := device.NewService(device.NewPostgresRepository(db))
	avatars := avatar.NewStore(cfg.UploadDir)
	userHandler := user.NewHandler(userService, deviceService, avatars, []byte(cfg.JWTSecret), cfg.TokenTTL)

	notifier := notify.NewEmailNotifier(mailer, cfg.StaffEmail)
	requestService := request.NewService(request.NewPostgresRepository(db), notifier)
	requestHandler := request.NewHandler(requestService)
	deviceHandler := device.NewHandler(deviceService)

	userHandler.RegisterPublicRoutes(app)
	app.Static("/uploads", cfg.UploadDir)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	deviceHandler.RegisterProtectedRoutes(app)
	requestHandler.RegisterProtectedRoutes(app)

	log.Printf("listening on %s", cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	return db
}

// schemaStatements create the three tables on first boot. Table and column
// definitions match the legacy backend so an existing database keeps working.
// RFC3339 strings bind to the date and timestamp columns through database/sql
// in both directions.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS "user" (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		name TEXT,
		last_name TEXT,
		second_last_name TEXT,
		avatar TEXT,
		phone TEXT,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		birthday DATE,
		gender TEXT,
		register_date TIMESTAMPTZ NOT NULL,
		last_modify_date TIMESTAMPTZ NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_staff BOOLEAN NOT NULL DEFAULT FALSE,
		is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
		last_login TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS user_device (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES "user"(id) ON DELETE CASCADE,
		device_token TEXT NOT NULL,
		device_os TEXT NOT NULL,
		status BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS request (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		last_name TEXT,
		second_last_name TEXT,
		email TEXT NOT NULL,
		phone TEXT,
		request_date TIMESTAMPTZ NOT NULL,
		device_os TEXT NOT NULL,
		comment TEXT NOT NULL,
		status BOOLEAN NOT NULL DEFAULT TRUE,
		user_id INT NOT NULL REFERENCES "user"(id) ON DELETE CASCADE
	)`,
}

func ensureSchema(db *sql.DB) {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("schema bootstrap failed: %v", err)
		}
	}
}
