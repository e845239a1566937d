// regmactl herramientas de operación: migraciones, carga del catálogo y alta de usuarios.
//
// Uso:
//
//	regmactl migrate up
//	regmactl migrate down --steps 1
//	regmactl seed -f catalogo.csv --latin1 -o catalogo.sql
//	regmactl user create --email bodega@regma.co --role bodeguero
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/regma/inventario-api/pkg/config"
)

var dsn string

var rootCmd = &cobra.Command{
	Use:           "regmactl",
	Short:         "Herramientas de operación de REGMA Inventario",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "connection string PostgreSQL (por defecto DATABASE_URL / DB_*)")
}

// connectionString usa --dsn o la configuración del entorno.
func connectionString() (string, error) {
	if dsn != "" {
		return dsn, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.DB.ConnectionString(), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
