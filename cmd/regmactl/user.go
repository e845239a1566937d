package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/regma/inventario-api/internal/application/auth"
	"github.com/regma/inventario-api/internal/domain/entity"
	"github.com/regma/inventario-api/internal/infrastructure/postgres"
	"github.com/regma/inventario-api/pkg/config"
)

var (
	userEmail string
	userName  string
	userRole  string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Gestión de operadores",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Crea un operador; la contraseña se lee de REGMA_PASSWORD",
	RunE: func(cmd *cobra.Command, args []string) error {
		password := os.Getenv("REGMA_PASSWORD")
		if len(password) < 8 {
			return fmt.Errorf("REGMA_PASSWORD debe tener al menos 8 caracteres")
		}
		switch userRole {
		case entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor:
		default:
			return fmt.Errorf("rol inválido %q (admin, bodeguero o vendedor)", userRole)
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		conn, err := connectionString()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: conn, MaxConns: 2})
		if err != nil {
			return err
		}
		defer pool.Close()

		now := time.Now().UTC()
		u := &entity.User{
			ID:           uuid.New().String(),
			Email:        strings.TrimSpace(userEmail),
			PasswordHash: hash,
			Name:         userName,
			Role:         userRole,
			Status:       entity.UserStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := postgres.NewUserRepository(pool).Create(ctx, u); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "usuario %s creado (%s)\n", u.Email, u.ID)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "email del operador (obligatorio)")
	_ = userCreateCmd.MarkFlagRequired("email")
	userCreateCmd.Flags().StringVar(&userName, "name", "", "nombre visible")
	userCreateCmd.Flags().StringVar(&userRole, "role", entity.RoleBodeguero, "admin | bodeguero | vendedor")
	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}
