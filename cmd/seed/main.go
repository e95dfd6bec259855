// Comando de datos semilla para desarrollo: crea el usuario administrador
// inicial y la bodega principal. Es idempotente: si ya existen, no hace nada.
//
//	go run ./cmd/seed
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/erp-pro/pkg/config"
)

const (
	adminEmail    = "admin@erp.local"
	adminPassword = "admin123"
	mainWarehouse = "WH-001"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("seed: cargar configuración: %v", err)
	}

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		log.Fatalf("seed: conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)

	adminID, err := seedAdmin(userRepo)
	if err != nil {
		log.Fatalf("seed: usuario administrador: %v", err)
	}

	if err := seedWarehouse(warehouseRepo, adminID); err != nil {
		log.Fatalf("seed: bodega principal: %v", err)
	}

	log.Printf("seed: listo (admin: %s)", adminEmail)
}

func seedAdmin(repo *postgres.UserRepo) (string, error) {
	existing, err := repo.GetByEmail(adminEmail)
	if err != nil {
		return "", err
	}
	if existing != nil {
		log.Printf("seed: el usuario %s ya existe, se omite", adminEmail)
		return existing.ID, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        adminEmail,
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Department:   "IT",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(admin); err != nil {
		return "", err
	}
	log.Printf("seed: usuario administrador creado (%s / %s)", adminEmail, adminPassword)
	return admin.ID, nil
}

func seedWarehouse(repo *postgres.WarehouseRepo, managerID string) error {
	existing, err := repo.GetByCode(mainWarehouse)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Printf("seed: la bodega %s ya existe, se omite", mainWarehouse)
		return nil
	}

	now := time.Now()
	wh := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      mainWarehouse,
		Name:      "Bodega principal",
		Contact:   "Administrador",
		ManagerID: managerID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(wh); err != nil {
		return err
	}
	log.Printf("seed: bodega principal creada (%s)", mainWarehouse)
	return nil
}
