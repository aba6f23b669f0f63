package service

import (
	"context"
	"fmt"

	"github.com/andy/smartbill/internal/domain"
	"github.com/andy/smartbill/internal/repository"
)

// SettingsService manages the user preferences record. The record is
// loaded once and mutated in memory; persistence happens on explicit Save,
// on Reset, or automatically per field change while auto-save is on.
type SettingsService interface {
	// Get returns the current settings, loading them on first use
	Get(ctx context.Context) (*domain.Settings, error)

	// UpdateField sets one named field from its string value. If auto-save
	// was enabled before the change, the full record is persisted
	// immediately; the returned flag reports whether a save happened.
	UpdateField(ctx context.Context, name, value string) (bool, error)

	// Save persists the current record regardless of auto-save
	Save(ctx context.Context) error

	// Reset restores and persists the default record
	Reset(ctx context.Context) (*domain.Settings, error)
}

type settingsService struct {
	repo    repository.SettingsRepository
	current *domain.Settings
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	if s.current != nil {
		return s.current, nil
	}
	settings, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	s.current = settings
	return s.current, nil
}

func (s *settingsService) UpdateField(ctx context.Context, name, value string) (bool, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return false, err
	}

	// Auto-save is decided by the state before the change, so switching
	// auto-save off is itself still persisted.
	autoSave := settings.AutoSave

	if err := settings.SetField(name, value); err != nil {
		return false, err
	}

	if !autoSave {
		return false, nil
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return false, fmt.Errorf("failed to auto-save settings: %w", err)
	}
	return true, nil
}

func (s *settingsService) Save(ctx context.Context) error {
	settings, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *settingsService) Reset(ctx context.Context) (*domain.Settings, error) {
	defaults := domain.DefaultSettings()
	if err := s.repo.Save(ctx, defaults); err != nil {
		return nil, fmt.Errorf("failed to reset settings: %w", err)
	}
	s.current = defaults
	return defaults, nil
}
