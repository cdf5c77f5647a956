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

	"github.com/quimidom/quimidom-api/internal/domain/entity"
	apphttp "github.com/quimidom/quimidom-api/internal/interfaces/http"
)

// tenantRepoStub implementa repository.TenantRepository en memoria.
type tenantRepoStub struct {
	tenants []*entity.Tenant
}

func (s *tenantRepoStub) Create(ctx context.Context, t *entity.Tenant) error {
	s.tenants = append(s.tenants, t)
	return nil
}

func (s *tenantRepoStub) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	for _, t := range s.tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (s *tenantRepoStub) GetByHostname(ctx context.Context, hostname string) (*entity.Tenant, error) {
	for _, t := range s.tenants {
		if t.Hostname == hostname {
			return t, nil
		}
	}
	return nil, nil
}

func (s *tenantRepoStub) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	for _, t := range s.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, nil
}

func (s *tenantRepoStub) List(ctx context.Context) ([]*entity.Tenant, error) {
	return s.tenants, nil
}

func buildTenantApp(repo *tenantRepoStub) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", apphttp.TenantMiddleware(repo), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"slug": apphttp.GetTenant(c).Slug})
	})
	return app
}

func seededRepo() *tenantRepoStub {
	return &tenantRepoStub{tenants: []*entity.Tenant{
		{
			ID:         "t-1",
			Name:       "Acme Química",
			Slug:       "acme",
			SchemaName: "tenant_acme",
			Hostname:   "acme.quimidom.do",
			IsActive:   true,
		},
		{
			ID:         "t-2",
			Name:       "Suspendida SRL",
			Slug:       "suspendida",
			SchemaName: "tenant_suspendida",
			Hostname:   "suspendida.quimidom.do",
			IsActive:   false,
		},
	}}
}

func TestTenantMiddleware_ResuelvePorHostname(t *testing.T) {
	app := buildTenantApp(seededRepo())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Host = "acme.quimidom.do"
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "acme")
}

func TestTenantMiddleware_ResuelvePorCabeceraXTenant(t *testing.T) {
	app := buildTenantApp(seededRepo())

	// La cabecera X-Tenant tiene prioridad sobre el hostname.
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Host = "otro-host.ejemplo.com"
	req.Header.Set("X-Tenant", "acme")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTenantMiddleware_TenantDesconocido_Retorna404(t *testing.T) {
	app := buildTenantApp(seededRepo())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Host = "nadie.quimidom.do"
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "TENANT_NOT_FOUND")
}

func TestTenantMiddleware_TenantInactivo_Retorna403(t *testing.T) {
	app := buildTenantApp(seededRepo())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Tenant", "suspendida")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "TENANT_INACTIVE")
}

func TestTenantMiddleware_HostnameConPuerto(t *testing.T) {
	app := buildTenantApp(seededRepo())

	// El puerto se descarta antes de buscar el hostname.
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Host = "acme.quimidom.do:8080"
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
