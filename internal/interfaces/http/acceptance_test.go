package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/gofiber/fiber/v2"

	"github.com/regma/inventario-api/internal/application/dto"
	"github.com/regma/inventario-api/internal/application/inventory"
	"github.com/regma/inventario-api/internal/infrastructure/memory"
	apphttp "github.com/regma/inventario-api/internal/interfaces/http"
)

type acceptance struct {
	app    *fiber.App
	store  *memory.Store
	status int
	env    apiEnvelope
}

func (a *acceptance) inventarioConStock(stock int) error {
	a.store = memory.NewStore()
	memory.SeedDemo(a.store)
	ledgers := memory.NewStockLedgerRepository(a.store)
	catalog := memory.NewCatalogRepository(a.store)
	if stock != 10 {
		if _, _, err := inventory.NewAdjustStockUseCase(memory.NewTxRunner(a.store), ledgers, catalog, nil).
			AdjustStock(context.Background(), inventory.AdjustStockInput{
				LedgerID: memory.DemoLedgerID, TipoMovimiento: "ajuste", Cantidad: &stock,
			}); err != nil {
			return err
		}
	}
	a.app = apphttp.NewApp(apphttp.AppConfig{Name: "regma-bdd"})
	apphttp.Router(a.app, apphttp.RouterDeps{
		AdjustStock: inventory.NewAdjustStockUseCase(memory.NewTxRunner(a.store), ledgers, catalog, nil),
		Ledgers:     inventory.NewLedgerUseCase(ledgers, catalog, nil),
		Signer:      testSigner,
	})
	return nil
}

func (a *acceptance) envioMovimiento(tipo string, cantidad int) error {
	return a.envioMovimientoA(tipo, cantidad, memory.DemoLedgerID)
}

func (a *acceptance) envioMovimientoA(tipo string, cantidad int, id string) error {
	body := fmt.Sprintf(`{"tipoMovimiento":%q,"cantidad":%d}`, tipo, cantidad)
	req := httptest.NewRequest(http.MethodPatch, "/api/inventario/"+id, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.app.Test(req, -1)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	a.status = resp.StatusCode
	a.env = apiEnvelope{}
	return json.Unmarshal(raw, &a.env)
}

func (a *acceptance) estado(want int) error {
	if a.status != want {
		return fmt.Errorf("estado %d, se esperaba %d (mensaje: %s)", a.status, want, a.env.Message)
	}
	return nil
}

func (a *acceptance) stockRespuesta(want int) error {
	var l dto.LedgerResponse
	if err := json.Unmarshal(a.env.Data, &l); err != nil {
		return err
	}
	if l.StockActual != want {
		return fmt.Errorf("stock %d, se esperaba %d", l.StockActual, want)
	}
	return nil
}

func (a *acceptance) mensajeContiene(fragment string) error {
	if !strings.Contains(a.env.Message, fragment) {
		return fmt.Errorf("mensaje %q no contiene %q", a.env.Message, fragment)
	}
	return nil
}

func (a *acceptance) noExitosa() error {
	if a.env.Success {
		return fmt.Errorf("se esperaba success:false")
	}
	if a.env.Message == "" {
		return fmt.Errorf("la respuesta de error debe incluir message")
	}
	return nil
}

func (a *acceptance) stockGuardado(want int) error {
	l, err := memory.NewStockLedgerRepository(a.store).GetByID(context.Background(), memory.DemoLedgerID)
	if err != nil {
		return err
	}
	if l.CurrentStock != want {
		return fmt.Errorf("stock guardado %d, se esperaba %d", l.CurrentStock, want)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	a := &acceptance{}
	ctx.Step(`^un inventario con stock actual (\d+)$`, a.inventarioConStock)
	ctx.Step(`^envío un movimiento "([^"]*)" con cantidad (-?\d+)$`, a.envioMovimiento)
	ctx.Step(`^envío un movimiento "([^"]*)" con cantidad (-?\d+) al inventario "([^"]*)"$`, a.envioMovimientoA)
	ctx.Step(`^la respuesta tiene estado (\d+)$`, a.estado)
	ctx.Step(`^el stock actual de la respuesta es (\d+)$`, a.stockRespuesta)
	ctx.Step(`^el mensaje contiene "([^"]*)"$`, a.mensajeContiene)
	ctx.Step(`^la respuesta no es exitosa$`, a.noExitosa)
	ctx.Step(`^el stock guardado es (\d+)$`, a.stockGuardado)
}

func TestAjusteInventarioFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("los escenarios de aceptación fallaron")
	}
}
