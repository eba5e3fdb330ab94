package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/whoismarios/sa-gateway-demo/internal/config"
	"github.com/whoismarios/sa-gateway-demo/internal/repository"
	"github.com/whoismarios/sa-gateway-demo/internal/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	s := &Server{
		config:    &config.Config{AllowedOrigins: "*"},
		db:        db,
		init:      seed.NewInitializer(db),
		userRepo:  repository.NewUserRepository(db),
		orderRepo: repository.NewOrderRepository(db),
	}
	return s, db
}

func restApp(t *testing.T, s *Server) *fiber.App {
	t.Helper()
	app := fiber.New()
	s.SetupMiddleware(app)
	s.SetupRESTRoutes(app)
	return app
}

func TestGetHello(t *testing.T) {
	s, _ := setupTestServer(t)
	app := restApp(t, s)

	req := httptest.NewRequest(http.MethodGet, "/api/hello", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body HelloResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "Hello from REST", body.Msg)

	// 8 seeded users capped at 5, all 10 orders within the cap.
	assert.Equal(t, 5, body.TotalUsers)
	assert.Len(t, body.Users, 5)
	assert.Equal(t, 10, body.TotalOrders)
	assert.Len(t, body.Orders, 10)
	assert.NotEmpty(t, body.Timestamp)

	assert.Equal(t, "Max Mustermann", body.Users[0].Name)
	assert.Equal(t, "max@example.com", body.Users[0].Email)

	// Orders carry the owning user's name and email flat.
	assert.Equal(t, "Laptop", body.Orders[0].Product)
	assert.Equal(t, "Max Mustermann", body.Orders[0].UserName)
	assert.Equal(t, "max@example.com", body.Orders[0].UserEmail)
}

func TestGetHello_SeedIsStableAcrossCalls(t *testing.T) {
	s, _ := setupTestServer(t)
	app := restApp(t, s)

	var totals []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/hello", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		var body HelloResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		_ = resp.Body.Close()
		totals = append(totals, body.TotalOrders)
	}

	// The initializer runs on every call; row counts must not grow.
	assert.Equal(t, []int{10, 10, 10}, totals)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := setupTestServer(t)
	app := restApp(t, s)

	req := httptest.NewRequest(http.MethodOptions, "/api/hello", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodGet)
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := setupTestServer(t)
	app := restApp(t, s)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, "%s: %s", path, body)
	}
}
