package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/regma/inventario-api/internal/infrastructure/postgres"
)

var downSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migraciones del esquema embebidas en el binario",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplica todas las migraciones pendientes",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := connectionString()
		if err != nil {
			return err
		}
		if err := postgres.MigrateUp(conn); err != nil {
			return err
		}
		return printVersion(cmd, conn)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revierte migraciones (--steps, 0 = todas)",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := connectionString()
		if err != nil {
			return err
		}
		if err := postgres.MigrateDown(conn, downSteps); err != nil {
			return err
		}
		return printVersion(cmd, conn)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Muestra la versión actual del esquema",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := connectionString()
		if err != nil {
			return err
		}
		return printVersion(cmd, conn)
	},
}

func printVersion(cmd *cobra.Command, conn string) error {
	v, dirty, err := postgres.MigrationVersion(conn)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "versión del esquema: %d (dirty=%t)\n", v, dirty)
	return nil
}

func init() {
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "número de migraciones a revertir (0 = todas)")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
