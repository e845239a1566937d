package graphql_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regma/inventario-api/internal/application/inventory"
	"github.com/regma/inventario-api/internal/infrastructure/memory"
	appgraphql "github.com/regma/inventario-api/internal/interfaces/graphql"
	apphttp "github.com/regma/inventario-api/internal/interfaces/http"
	pkgjwt "github.com/regma/inventario-api/pkg/jwt"
)

var signer = pkgjwt.NewSigner("test-secret-key-for-unit-tests", "regma-test", 60)

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	s := memory.NewStore()
	memory.SeedDemo(s)
	ledgers := memory.NewStockLedgerRepository(s)
	catalog := memory.NewCatalogRepository(s)

	schema, err := appgraphql.NewSchema(appgraphql.NewResolver(
		inventory.NewAdjustStockUseCase(memory.NewTxRunner(s), ledgers, catalog, nil),
		inventory.NewLedgerUseCase(ledgers, catalog, nil),
	))
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/graphql", apphttp.OptionalAuth(signer), appgraphql.Handler(schema))
	return app
}

func exec(t *testing.T, app *fiber.App, query string, variables map[string]interface{}, token string) gqlResponse {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"query": query, "variables": variables})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out gqlResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

const ajustarMutation = `mutation($id: ID!, $tipo: String!, $cantidad: Int!) {
  ajustarInventario(id: $id, tipoMovimiento: $tipo, cantidad: $cantidad, motivo: "gql") {
    success
    message
    data { stockActual movimientos { tipo usuarioId } }
  }
}`

type ajusteData struct {
	AjustarInventario struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    *struct {
			StockActual int `json:"stockActual"`
			Movimientos []struct {
				Tipo      string  `json:"tipo"`
				UsuarioID *string `json:"usuarioId"`
			} `json:"movimientos"`
		} `json:"data"`
	} `json:"ajustarInventario"`
}

func TestQueryInventario(t *testing.T) {
	app := newApp(t)
	out := exec(t, app, `query($id: ID!) { inventario(id: $id) { id stockActual producto { nombre precio categoria } } }`,
		map[string]interface{}{"id": memory.DemoLedgerID}, "")
	require.Empty(t, out.Errors)

	var data struct {
		Inventario struct {
			ID          string `json:"id"`
			StockActual int    `json:"stockActual"`
			Producto    struct {
				Nombre    string `json:"nombre"`
				Precio    string `json:"precio"`
				Categoria string `json:"categoria"`
			} `json:"producto"`
		} `json:"inventario"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &data))
	assert.Equal(t, 10, data.Inventario.StockActual)
	assert.Equal(t, "Kombucha", data.Inventario.Producto.Nombre)
	assert.Equal(t, "8500.00", data.Inventario.Producto.Precio)
	assert.Equal(t, "Bebidas", data.Inventario.Producto.Categoria)
}

func TestQueryInventario_InexistenteEsNull(t *testing.T) {
	out := exec(t, newApp(t), `{ inventario(id: "33333333-3333-3333-3333-333333333333") { id } }`, nil, "")
	require.Empty(t, out.Errors)
	assert.JSONEq(t, `{"inventario":null}`, string(out.Data))
}

func TestQueryInventarios(t *testing.T) {
	out := exec(t, newApp(t), `{ inventarios(limit: 5) { total limit offset items { id } } }`, nil, "")
	require.Empty(t, out.Errors)
	assert.JSONEq(t, `{"inventarios":{"total":1,"limit":5,"offset":0,"items":[{"id":"`+memory.DemoLedgerID+`"}]}}`, string(out.Data))
}

func TestNewSchema_ArgumentosConDefault(t *testing.T) {
	_, err := appgraphql.NewSchema(appgraphql.NewResolver(nil, nil))
	require.NoError(t, err, "el schema debe compilar contra los resolvers")
}

func TestQueryInventarios_ValoresPorDefecto(t *testing.T) {
	out := exec(t, newApp(t), `{ inventarios { limit offset } }`, nil, "")
	require.Empty(t, out.Errors)
	assert.JSONEq(t, `{"inventarios":{"limit":20,"offset":0}}`, string(out.Data))
}

func TestMutationAjustarInventario_Exito(t *testing.T) {
	app := newApp(t)
	token, err := signer.Generate("user-gql", "bodeguero")
	require.NoError(t, err)

	out := exec(t, app, ajustarMutation, map[string]interface{}{
		"id": memory.DemoLedgerID, "tipo": "salida", "cantidad": 4,
	}, token)
	require.Empty(t, out.Errors)

	var data ajusteData
	require.NoError(t, json.Unmarshal(out.Data, &data))
	assert.True(t, data.AjustarInventario.Success)
	assert.Contains(t, data.AjustarInventario.Message, "reducido")
	require.NotNil(t, data.AjustarInventario.Data)
	assert.Equal(t, 6, data.AjustarInventario.Data.StockActual)
	require.Len(t, data.AjustarInventario.Data.Movimientos, 1)
	require.NotNil(t, data.AjustarInventario.Data.Movimientos[0].UsuarioID)
	assert.Equal(t, "user-gql", *data.AjustarInventario.Data.Movimientos[0].UsuarioID)
}

func TestMutationAjustarInventario_RechazoDeNegocio(t *testing.T) {
	app := newApp(t)
	cases := []struct {
		name     string
		id       string
		tipo     string
		cantidad int
		message  string
	}{
		{"stock insuficiente", memory.DemoLedgerID, "salida", 15, "stock insuficiente"},
		{"tipo inválido", memory.DemoLedgerID, "invalido", 5, "tipo de movimiento inválido"},
		{"ledger inexistente", "33333333-3333-3333-3333-333333333333", "entrada", 1, "no encontrado"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := exec(t, app, ajustarMutation, map[string]interface{}{
				"id": tc.id, "tipo": tc.tipo, "cantidad": tc.cantidad,
			}, "")
			require.Empty(t, out.Errors)

			var data ajusteData
			require.NoError(t, json.Unmarshal(out.Data, &data))
			assert.False(t, data.AjustarInventario.Success)
			assert.Contains(t, data.AjustarInventario.Message, tc.message)
			assert.Nil(t, data.AjustarInventario.Data)
		})
	}

	out := exec(t, app, `{ inventario(id: "`+memory.DemoLedgerID+`") { stockActual } }`, nil, "")
	assert.JSONEq(t, `{"inventario":{"stockActual":10}}`, string(out.Data))
}
