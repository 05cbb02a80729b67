package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terraincognita07/cyclia/internal/config"
	"github.com/terraincognita07/cyclia/internal/models"
	"github.com/terraincognita07/cyclia/internal/persistence"
	"github.com/terraincognita07/cyclia/internal/services"
	"github.com/terraincognita07/cyclia/internal/store"
)

func newTestApp(t *testing.T, cfg *config.Config) (*fiber.App, *store.DataStore, persistence.Port) {
	t.Helper()

	if cfg == nil {
		cfg = config.Default()
	}
	port := persistence.NewJSONFile(filepath.Join(t.TempDir(), "data.json"), models.DefaultSettings())
	dataStore := store.New(models.DefaultSnapshot(), services.AverageStrategyByName(cfg.Prediction.Average))

	handler := NewHandler(dataStore, port, cfg, zap.NewNop())
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, dataStore, port
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any, cookie string) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return response, raw
}

func decodeJSON(t *testing.T, raw []byte, target any) {
	t.Helper()
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("decode response %q: %v", string(raw), err)
	}
}
