package app

import (
	"context"
	"fmt"
	"syscall"

	"github.com/andy/smartbill/internal/config"
	"github.com/andy/smartbill/internal/crypto"
	"github.com/andy/smartbill/internal/db"
	"github.com/andy/smartbill/internal/domain"
	"github.com/andy/smartbill/internal/pdf"
	"github.com/andy/smartbill/internal/repository"
	"github.com/andy/smartbill/internal/service"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB

	// Repositories
	BillRepo     repository.BillRepository
	SettingsRepo repository.SettingsRepository

	// Services
	BillingService  service.BillingService
	HistoryService  service.HistoryService
	SettingsService service.SettingsService

	// Draft is the in-memory working invoice shared by CLI and TUI.
	// Nothing in it is persisted until it is generated.
	Draft *domain.Draft
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Getting the store passphrase from keyring
// 3. Opening the encrypted store
// 4. Running migrations
// 5. Creating repositories and services
func New(ctx context.Context) (*App, error) {
	// Load config from default path
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	// Ensure all necessary directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	// Get keyring for secure passphrase storage
	keyring := crypto.NewKeyring()

	// Try to get existing passphrase
	password, err := keyring.GetKey()
	if err != nil {
		// No key exists, prompt user to set one
		fmt.Println("Setting up store encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		// Store the key in keyring
		if err := keyring.SetKey(password); err != nil {
			return nil, fmt.Errorf("failed to store encryption key: %w", err)
		}
	}

	// Open the store with encryption
	database, err := db.Open(cfg.Store.Path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// Run migrations to ensure schema is up to date
	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create repositories
	billRepo := repository.NewBillRepo(database)
	settingsRepo := repository.NewSettingsRepo(database)

	// Create services with their dependencies
	renderer := pdf.New(cfg.PDF.OutputDir)
	billingService := service.NewBillingService(billRepo, settingsRepo, renderer)
	historyService := service.NewHistoryService(billRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	return &App{
		Config:          cfg,
		DB:              database,
		BillRepo:        billRepo,
		SettingsRepo:    settingsRepo,
		BillingService:  billingService,
		HistoryService:  historyService,
		SettingsService: settingsService,
		Draft:           domain.NewDraft(),
	}, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// promptForPassword prompts user for a new store password (first run)
// This should be called when keyring has no stored key
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your billing data will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for store encryption: ")

	// Read password securely (no echo)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	// Confirm password
	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after confirmation
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	// Check if passwords match
	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Store encryption configured successfully")
	fmt.Println()

	return string(password), nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
