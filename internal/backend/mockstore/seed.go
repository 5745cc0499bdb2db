package mockstore

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"pilana/internal/backend"
	"pilana/internal/models"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type fixtureUser struct {
	Username    string   `yaml:"username"`
	Email       string   `yaml:"email"`
	Password    string   `yaml:"password"`
	Role        string   `yaml:"role"`
	Permissions []string `yaml:"permissions"`
	IsActive    bool     `yaml:"is_active"`
}

type fixtures struct {
	Users    []fixtureUser    `yaml:"users"`
	Offers   []map[string]any `yaml:"ponude"`
	Orders   []map[string]any `yaml:"radni_nalozi"`
	Sawmill  []map[string]any `yaml:"pilana"`
	Refinish []map[string]any `yaml:"dorada"`
	Logs     []map[string]any `yaml:"trupci"`
	Notes    []map[string]any `yaml:"otpremnice"`
	Cash     []map[string]any `yaml:"blagajna"`
}

func (s *Store) seed(ctx context.Context) error {
	var fx fixtures
	if err := yaml.Unmarshal(fixturesYAML, &fx); err != nil {
		return fmt.Errorf("parse fixtures: %w", err)
	}
	for _, fu := range fx.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(fu.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u := models.User{
			Username: fu.Username, Email: fu.Email, PasswordHash: string(hash),
			Role: fu.Role, Permissions: fu.Permissions, IsActive: fu.IsActive,
		}
		if err := s.users.Insert(ctx, &u); err != nil {
			return fmt.Errorf("seed user %s: %w", fu.Email, err)
		}
	}
	if err := seedRows(ctx, "ponude", fx.Offers, s.Offers()); err != nil {
		return err
	}
	if err := seedRows(ctx, "radni_nalozi", fx.Orders, s.WorkOrders()); err != nil {
		return err
	}
	if err := seedRows(ctx, "pilana", fx.Sawmill, s.Sawmill()); err != nil {
		return err
	}
	if err := seedRows(ctx, "dorada", fx.Refinish, s.Refinish()); err != nil {
		return err
	}
	if err := seedRows(ctx, "trupci", fx.Logs, s.Logs()); err != nil {
		return err
	}
	if err := seedRows(ctx, "otpremnice", fx.Notes, s.ShippingNotes()); err != nil {
		return err
	}
	return seedRows(ctx, "blagajna", fx.Cash, s.Cash())
}

// seedRows round-trips YAML maps through JSON so fixtures share the API's
// field names.
func seedRows[T any](ctx context.Context, name string, rows []map[string]any, repo backend.Repository[T]) error {
	for i, raw := range rows {
		b, err := json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("seed %s[%d]: %w", name, i, err)
		}
		var rec T
		if err := json.Unmarshal(b, &rec); err != nil {
			return fmt.Errorf("seed %s[%d]: %w", name, i, err)
		}
		if err := repo.Insert(ctx, &rec); err != nil {
			return fmt.Errorf("seed %s[%d]: %w", name, i, err)
		}
	}
	return nil
}
