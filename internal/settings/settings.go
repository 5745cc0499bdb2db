// Package settings stores the export branding and printer configuration.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pilana/internal/export"
)

const (
	exportKey = "export"
	printKey  = "print"
)

type ExportSettings struct {
	Header  string `json:"header"`
	Footer  string `json:"footer"`
	LogoURL string `json:"logo_url"`
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Export(ctx context.Context) (ExportSettings, error) {
	var out ExportSettings
	err := s.load(ctx, exportKey, &out)
	return out, err
}

func (s *Service) SetExport(ctx context.Context, v ExportSettings) error {
	return s.save(ctx, exportKey, v)
}

// Print returns the stored printer settings, or the defaults when none
// were saved yet.
func (s *Service) Print(ctx context.Context) (export.PrintSettings, error) {
	out := export.DefaultPrintSettings()
	err := s.load(ctx, printKey, &out)
	return out, err
}

func (s *Service) SetPrint(ctx context.Context, v export.PrintSettings) error {
	if err := v.NetworkPrinter.Validate(); err != nil {
		return err
	}
	if v.PrintOptions.Copies < 1 {
		v.PrintOptions.Copies = 1
	}
	return s.save(ctx, printKey, v)
}

func (s *Service) load(ctx context.Context, key string, dst any) error {
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, ErrNotSet) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s settings: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s settings: %w", key, err)
	}
	return nil
}

func (s *Service) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s settings: %w", key, err)
	}
	return nil
}
