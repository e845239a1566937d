// Package seed convierte el catálogo de productos exportado en CSV (categoría, variante,
// formato, producto, precio, stock inicial) en un script SQL idempotente.
//
// Los IDs se derivan con UUID v5 de los nombres normalizados, así que ejecutar el script dos
// veces no duplica filas.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Namespace para los UUID v5 del catálogo.
var namespace = uuid.MustParse("6f1f4a52-3d0c-4b7e-9a55-2c1d8e0b7a10")

// Columnas esperadas en la cabecera (sin importar orden ni mayúsculas).
const (
	colProducto  = "producto"
	colCategoria = "categoria"
	colVariante  = "variante"
	colFormato   = "formato"
	colPrecio    = "precio"
	colStock     = "stock"
	colUbicacion = "ubicacion"
)

// ErrMissingColumn la cabecera no trae una columna obligatoria.
var ErrMissingColumn = errors.New("seed: columna obligatoria ausente")

// Options lectura del CSV.
type Options struct {
	Latin1    bool // el archivo viene en ISO-8859-1 (exportación de Excel en Windows)
	Delimiter rune // por defecto ';'
}

// Row una fila válida del catálogo.
type Row struct {
	Producto  string
	Categoria string
	Variante  string
	Formato   string
	Ubicacion string
	Precio    decimal.Decimal
	Stock     int
}

// ProductID ID estable del producto.
func (r Row) ProductID() string { return stableID("producto", r.Producto, r.Variante, r.Formato) }

// LedgerID ID estable del inventario del producto en su ubicación.
func (r Row) LedgerID() string {
	return stableID("inventario", r.ProductID(), strings.ToLower(r.Ubicacion))
}

// Catalog resultado del parseo: filas válidas y advertencias por fila descartada.
type Catalog struct {
	Rows     []Row
	Warnings []string
}

// Parse lee el CSV. Las filas con datos inválidos se descartan con una advertencia.
func Parse(r io.Reader, opts Options) (*Catalog, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("seed: leer cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range []string{colProducto, colPrecio} {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}
	get := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	out := &Catalog{}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("seed: línea %d: %w", line, err)
		}
		row := Row{
			Producto:  get(rec, colProducto),
			Categoria: get(rec, colCategoria),
			Variante:  get(rec, colVariante),
			Formato:   get(rec, colFormato),
			Ubicacion: get(rec, colUbicacion),
		}
		if row.Producto == "" {
			out.Warnings = append(out.Warnings, fmt.Sprintf("línea %d: producto vacío", line))
			continue
		}
		// Precios exportados con coma decimal ("8500,50").
		precio, err := decimal.NewFromString(strings.ReplaceAll(get(rec, colPrecio), ",", "."))
		if err != nil || precio.IsNegative() {
			out.Warnings = append(out.Warnings, fmt.Sprintf("línea %d: precio inválido %q", line, get(rec, colPrecio)))
			continue
		}
		row.Precio = precio
		if s := get(rec, colStock); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				out.Warnings = append(out.Warnings, fmt.Sprintf("línea %d: stock inválido %q", line, s))
				continue
			}
			row.Stock = n
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// WriteSQL escribe el script: referencias primero, luego productos e inventarios.
// Un inventario existente no se toca; su stock solo cambia por movimientos.
func WriteSQL(w io.Writer, c *Catalog) error {
	var b strings.Builder
	b.WriteString("-- Catálogo REGMA generado por regmactl seed\n")
	b.WriteString("BEGIN;\n\n")

	writeRefs(&b, "categorias", "categoria", c.Rows, func(r Row) string { return r.Categoria })
	writeRefs(&b, "variantes", "variante", c.Rows, func(r Row) string { return r.Variante })
	writeRefs(&b, "formatos", "formato", c.Rows, func(r Row) string { return r.Formato })

	b.WriteString("-- Productos\n")
	for _, r := range c.Rows {
		fmt.Fprintf(&b, "INSERT INTO productos (id, nombre, precio, activo, categoria_id, variante_id, formato_id)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', %s, TRUE, %s, %s, %s)\n",
			r.ProductID(), escapeSQL(r.Producto), r.Precio.StringFixed(2),
			refID("categoria", r.Categoria), refID("variante", r.Variante), refID("formato", r.Formato))
		b.WriteString("ON CONFLICT (id) DO UPDATE SET nombre = EXCLUDED.nombre, precio = EXCLUDED.precio, updated_at = now();\n")
	}

	b.WriteString("\n-- Inventarios con stock inicial\n")
	for _, r := range c.Rows {
		fmt.Fprintf(&b, "INSERT INTO inventarios (id, producto_id, ubicacion, stock_actual, version)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', %d, %d)\n", r.LedgerID(), r.ProductID(), escapeSQL(r.Ubicacion), r.Stock, initialVersion(r.Stock))
		b.WriteString("ON CONFLICT DO NOTHING;\n")
		if r.Stock > 0 {
			fmt.Fprintf(&b, "INSERT INTO movimientos_inventario (id, inventario_id, tipo, cantidad, stock_anterior, stock_nuevo, motivo)\n")
			fmt.Fprintf(&b, "VALUES ('%s', '%s', 'entrada', %d, 0, %d, 'Carga inicial de catálogo')\n",
				stableID("movimiento", r.LedgerID(), "carga-inicial"), r.LedgerID(), r.Stock, r.Stock)
			b.WriteString("ON CONFLICT DO NOTHING;\n")
		}
	}
	b.WriteString("\nCOMMIT;\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRefs(b *strings.Builder, table, kind string, rows []Row, name func(Row) string) {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range rows {
		n := name(r)
		if n == "" {
			continue
		}
		if _, ok := seen[strings.ToLower(n)]; ok {
			continue
		}
		seen[strings.ToLower(n)] = struct{}{}
		names = append(names, n)
	}
	if len(names) == 0 {
		return
	}
	sort.Strings(names)
	fmt.Fprintf(b, "-- %s\n", table)
	fmt.Fprintf(b, "INSERT INTO %s (id, nombre) VALUES\n", table)
	for i, n := range names {
		sep := ","
		if i == len(names)-1 {
			sep = ""
		}
		fmt.Fprintf(b, "  ('%s', '%s')%s\n", stableID(kind, n), escapeSQL(n), sep)
	}
	b.WriteString("ON CONFLICT (id) DO UPDATE SET nombre = EXCLUDED.nombre;\n\n")
}

func refID(kind, name string) string {
	if name == "" {
		return "NULL"
	}
	return "'" + stableID(kind, name) + "'"
}

// La primera entrada de un stock inicial > 0 cuenta como una mutación.
func initialVersion(stock int) int {
	if stock > 0 {
		return 2
	}
	return 1
}

func stableID(parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return uuid.NewSHA1(namespace, []byte(strings.Join(parts, "|"))).String()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
