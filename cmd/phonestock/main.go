package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"phonestock/internal/api"
	"phonestock/internal/bot"
	"phonestock/internal/config"
	"phonestock/internal/db"
	"phonestock/internal/perm"
	"phonestock/internal/sheet"
	"phonestock/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: phonestock <init|serve|bot|sync|sample>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		cmdInit(cfg, os.Args[2:])
	case "serve":
		cmdServe(cfg, os.Args[2:])
	case "bot":
		cmdBot(cfg, os.Args[2:])
	case "sync":
		cmdSync(cfg, os.Args[2:])
	case "sample":
		cmdSample(cfg, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\nUsage: phonestock <init|serve|bot|sync|sample>\n", os.Args[1])
		os.Exit(1)
	}
}

func cmdInit(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "path to SQLite database file")
	fs.Parse(args)

	if _, err := os.Stat(*dbPath); err == nil {
		fmt.Fprintf(os.Stderr, "Error: database file %s already exists\n", *dbPath)
		os.Exit(1)
	}

	database, password, err := initDatabase(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	database.Close()

	fmt.Printf("Database created: %s\n", *dbPath)
	fmt.Println()
	fmt.Println("Admin account created:")
	fmt.Printf("  Username: admin\n")
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password, it cannot be recovered.")
}

func cmdServe(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "path to SQLite database file")
	addr := fs.String("addr", cfg.Addr, "listen address")
	fs.Parse(args)

	log.SetFormatter(&log.JSONFormatter{})

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			log.WithError(err).Fatal("generating JWT secret")
		}
		jwtSecret = hex.EncodeToString(buf)
		log.Warn("JWT secret auto-generated, tokens will be invalidated on restart")
	}

	database := openOrInit(*dbPath)
	defer database.Close()

	router := api.NewRouter(database, api.Options{
		JWTSecret:  jwtSecret,
		ExcelPath:  cfg.ExcelPath,
		SyncPolicy: syncPolicy(cfg),
	})
	handler := api.LoggingMiddleware(router)

	log.WithField("addr", *addr).Info("server listening")
	if err := http.ListenAndServe(*addr, handler); err != nil {
		log.WithError(err).Fatal("server error")
	}
}

func cmdBot(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("bot", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "path to SQLite database file")
	fs.Parse(args)

	log.SetFormatter(&log.JSONFormatter{})

	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is not set")
	}

	database := openOrInit(*dbPath)
	defer database.Close()

	resolver := perm.NewResolver(cfg.AdminIDs, cfg.PowerUserIDs,
		cfg.PowerUserPermissions, cfg.UserPermissions)

	b, err := bot.New(cfg.TelegramBotToken, database, resolver, cfg.ExcelPath, syncPolicy(cfg))
	if err != nil {
		log.WithError(err).Fatal("starting bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	b.Run(ctx)
}

func cmdSync(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "path to SQLite database file")
	excelPath := fs.String("file", cfg.ExcelPath, "path to the import workbook")
	fs.Parse(args)

	database := openOrInit(*dbPath)
	defer database.Close()

	rows, err := sheet.ReadDevices(*excelPath)
	if err != nil {
		log.WithError(err).Fatal("reading workbook")
	}

	count, err := store.SyncDevices(context.Background(), database, rows, syncPolicy(cfg))
	if err != nil {
		log.WithError(err).Fatal("sync failed, nothing applied")
	}

	log.WithFields(log.Fields{"rows": len(rows), "applied": count}).Info("sync complete")
}

func cmdSample(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	path := fs.String("file", cfg.ExcelPath, "path for the generated workbook")
	count := fs.Int("n", 50, "number of demo devices")
	fs.Parse(args)

	if err := sheet.WriteSample(*path, *count); err != nil {
		log.WithError(err).Fatal("generating sample workbook")
	}
	fmt.Printf("Sample workbook with %d devices written to %s\n", *count, *path)
}

func syncPolicy(cfg *config.Config) store.SyncPolicy {
	if cfg.SyncSkipBadRows {
		return store.SyncSkipBadRows
	}
	return store.SyncRejectBatch
}

// openOrInit opens the database, creating and bootstrapping it first if the
// file does not exist yet.
func openOrInit(path string) *sql.DB {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		database, password, err := initDatabase(path)
		if err != nil {
			log.WithError(err).Fatal("initializing database")
		}
		database.Close()

		fmt.Printf("Database created: %s\n", path)
		fmt.Println()
		fmt.Println("Admin account created:")
		fmt.Printf("  Username: admin\n")
		fmt.Printf("  Password: %s\n", password)
		fmt.Println()
		fmt.Println("Save this password, it cannot be recovered.")
		fmt.Println()
	}

	database, err := db.Open(path)
	if err != nil {
		log.WithError(err).Fatal("opening database")
	}
	if err := db.EnsureSchema(database); err != nil {
		log.WithError(err).Fatal("ensuring schema")
	}
	return database
}

// initDatabase creates a new database, applies the schema, and creates the
// admin user with a random password.
func initDatabase(path string) (*sql.DB, string, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening database: %w", err)
	}

	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		os.Remove(path)
		return nil, "", fmt.Errorf("creating schema: %w", err)
	}

	password, err := generatePassword(16)
	if err != nil {
		database.Close()
		os.Remove(path)
		return nil, "", fmt.Errorf("generating password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		database.Close()
		os.Remove(path)
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	ctx := context.Background()
	if _, err := store.CreateUser(ctx, database, "admin", string(hash), "admin"); err != nil {
		database.Close()
		os.Remove(path)
		return nil, "", fmt.Errorf("creating admin user: %w", err)
	}

	return database, password, nil
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range result {
		result[i] = charset[int(buf[i])%len(charset)]
	}
	return string(result), nil
}
