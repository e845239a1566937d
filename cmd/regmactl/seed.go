package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/regma/inventario-api/internal/infrastructure/cache"
	"github.com/regma/inventario-api/internal/seed"
	"github.com/regma/inventario-api/pkg/config"
)

var (
	seedFile      string
	seedOut       string
	seedLatin1    bool
	seedDelimiter string
	seedFlush     bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Genera el SQL del catálogo a partir de un CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return fmt.Errorf("abrir CSV: %w", err)
		}
		defer f.Close()

		opts := seed.Options{Latin1: seedLatin1}
		if seedDelimiter != "" {
			opts.Delimiter = []rune(seedDelimiter)[0]
		}
		catalog, err := seed.Parse(f, opts)
		if err != nil {
			return err
		}
		for _, w := range catalog.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "  [warn] %s\n", w)
		}

		var out io.Writer = cmd.OutOrStdout()
		if seedOut != "" {
			file, err := os.Create(seedOut)
			if err != nil {
				return fmt.Errorf("crear archivo: %w", err)
			}
			defer file.Close()
			out = file
		}
		if err := seed.WriteSQL(out, catalog); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "catálogo: %d productos, %d filas descartadas\n", len(catalog.Rows), len(catalog.Warnings))
		if seedFlush {
			return invalidateCatalogCache(cmd.Context(), catalog)
		}
		return nil
	},
}

// invalidateCatalogCache borra de Redis los productos del CSV para que la API relea precios y nombres.
func invalidateCatalogCache(ctx context.Context, catalog *seed.Catalog) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.Redis.Enabled() {
		return fmt.Errorf("--invalidate-cache requiere REDIS_URL")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	rdb, err := cache.NewRedis(ctx, cfg.Redis.URL)
	if err != nil {
		return err
	}
	defer rdb.Close()

	ids := make([]string, 0, len(catalog.Rows))
	for _, r := range catalog.Rows {
		ids = append(ids, r.ProductID())
	}
	return cache.NewCatalogCache(nil, rdb, cfg.Redis.CacheTTL, nil).Invalidate(ctx, ids...)
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "ruta del CSV (obligatorio)")
	_ = seedCmd.MarkFlagRequired("file")
	seedCmd.Flags().StringVarP(&seedOut, "out", "o", "", "archivo SQL de salida (por defecto stdout)")
	seedCmd.Flags().BoolVar(&seedLatin1, "latin1", false, "el CSV está en ISO-8859-1")
	seedCmd.Flags().StringVar(&seedDelimiter, "delimiter", ";", "separador de columnas")
	seedCmd.Flags().BoolVar(&seedFlush, "invalidate-cache", false, "borra de Redis el detalle de los productos del CSV")
	rootCmd.AddCommand(seedCmd)
}
