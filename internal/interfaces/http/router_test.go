package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	apphttp "github.com/jhoicas/pos-api/internal/interfaces/http"
)

// Los casos de este archivo se resuelven en los middlewares, antes de llegar a los use cases.
func buildRouterApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: testJWTSecret})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, auth string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestRouter_RutasProtegidas(t *testing.T) {
	app := buildRouterApp()
	cashier := tokenForRole(t, "cashier")
	customer := tokenForRole(t, "customer")

	cases := []struct {
		method, path, auth string
		want               int
	}{
		{http.MethodGet, "/api/transactions", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/products", "", http.StatusUnauthorized},
		{http.MethodPut, "/api/categories/c1", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/report", cashier, http.StatusForbidden},
		{http.MethodPost, "/api/categories", cashier, http.StatusForbidden},
		{http.MethodDelete, "/api/products/p1", cashier, http.StatusForbidden},
		{http.MethodPut, "/api/transactions/t1", cashier, http.StatusForbidden},
		{http.MethodDelete, "/api/transactions/t1", cashier, http.StatusForbidden},
		{http.MethodGet, "/api/auth/users", cashier, http.StatusForbidden},
		{http.MethodPut, "/api/auth/users/u1/active", cashier, http.StatusForbidden},
		{http.MethodGet, "/api/transactions", customer, http.StatusForbidden},
		{http.MethodPost, "/api/transaction-items", customer, http.StatusForbidden},
		{http.MethodGet, "/api/transaction-items/item/i1", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, call(t, app, tc.method, tc.path, tc.auth), tc.method+" "+tc.path)
	}
}

func TestRouter_GoogleDeshabilitado(t *testing.T) {
	app := buildRouterApp()
	assert.Equal(t, http.StatusServiceUnavailable, call(t, app, http.MethodGet, "/api/auth/google", ""))
	assert.Equal(t, http.StatusServiceUnavailable, call(t, app, http.MethodGet, "/api/auth/google/callback?state=x&code=y", ""))
}

// listOnlyCategories responde List y GetByID; el resto del puerto no se usa en estas rutas.
type listOnlyCategories struct {
	repository.CategoryRepository
	cats []*entity.Category
}

func (r listOnlyCategories) List(context.Context) ([]*entity.Category, error) { return r.cats, nil }

func (r listOnlyCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	for _, c := range r.cats {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func TestRouter_CatalogoLecturaPublica(t *testing.T) {
	repo := listOnlyCategories{cats: []*entity.Category{{ID: "c1", Name: "Beverages"}}}
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		JWTSecret:  testJWTSecret,
		CategoryUC: usecase.NewCategoryUseCase(repo, nil),
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/categories", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Beverages")

	assert.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/categories/c1", ""))
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/categories/c9", ""))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodPost, "/api/categories", ""))
}
