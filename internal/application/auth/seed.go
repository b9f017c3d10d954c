package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// SeedUser usuario predefinido tal como viene en config/users.json.
type SeedUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type seedFile struct {
	Users []SeedUser `json:"users"`
}

// LoadSeedFile lee {"users":[...]} desde path.
func LoadSeedFile(path string) ([]SeedUser, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	var f seedFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsear %s: %w", path, err)
	}
	return f.Users, nil
}

// SeedUsers inserta o actualiza (por email) los usuarios predefinidos con password bcrypt.
// Devuelve cuántos usuarios se procesaron.
func SeedUsers(ctx context.Context, repo repository.UserRepository, users []SeedUser) (int, error) {
	n := 0
	for _, su := range users {
		email := strings.ToLower(strings.TrimSpace(su.Email))
		if email == "" || su.Password == "" {
			return n, fmt.Errorf("usuario predefinido sin email o password")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return n, err
		}
		id := su.ID
		if id == "" {
			id = uuid.New().String()
		}
		now := time.Now()
		u := &entity.User{
			ID:           id,
			Email:        email,
			PasswordHash: string(hash),
			FirstName:    su.FirstName,
			LastName:     su.LastName,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := repo.Upsert(ctx, u); err != nil {
			return n, fmt.Errorf("upsert %s: %w", email, err)
		}
		n++
	}
	return n, nil
}
