package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bellapacxx/bingo-cardgen/controllers"
	"github.com/bellapacxx/bingo-cardgen/models"
	"github.com/bellapacxx/bingo-cardgen/routes"
	"github.com/bellapacxx/bingo-cardgen/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router   *gin.Engine
	service  *services.BingoGeneratorService
	registry *services.CardRegistry
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	registry := services.NewCardRegistry()
	service := services.NewBingoGeneratorService(registry)
	archive := services.NewCardArchive(nil)
	hub := services.NewDealerHub(service, registry, archive)

	r := gin.New()
	routes.SetupRoutes(r, controllers.NewCardController(service, registry, archive), hub)

	return &testEnv{router: r, service: service, registry: registry}
}

func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// fixedStrategy exhausts its unique space after a single card.
type fixedStrategy struct{}

func (fixedStrategy) Config() models.FormatConfig {
	return models.FormatConfig{Rows: 1, Columns: 1, TotalCells: 1}
}

func (fixedStrategy) GenerateCells() []models.GeneratedCell {
	return []models.GeneratedCell{models.NumberCell(0, 9)}
}

func TestGenerateCardEndpoint(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/cards", gin.H{"format": "5x5", "session_id": "room-1"})
	require.Equal(t, http.StatusCreated, w.Code)

	var card models.BingoCard
	decodeBody(t, w, &card)
	assert.NotEmpty(t, card.ID)
	assert.Equal(t, "5x5", card.Format)
	assert.Equal(t, "room-1", card.SessionID)
	assert.Len(t, card.Cells, 25)
	assert.NotEmpty(t, card.Hash)
	assert.Equal(t, 1, env.registry.SessionCount("room-1"))
}

func TestGenerateCardEndpointRejectsMissingFields(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/cards", gin.H{"format": "5x5"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/cards", gin.H{"session_id": "room-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateCardEndpointUnsupportedFormat(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/cards", gin.H{"format": "4x4", "session_id": "room-1"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	decodeBody(t, w, &body)
	message, _ := body["error"].(string)
	assert.Contains(t, message, "unsupported card format")
}

func TestGenerateCardEndpointExhaustion(t *testing.T) {
	env := newTestEnv()
	env.service.RegisterStrategy("fixed", fixedStrategy{})
	env.service.SetMaxAttempts(3)

	w := env.do(t, http.MethodPost, "/api/cards", gin.H{"format": "fixed", "session_id": "room-1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/cards", gin.H{"format": "fixed", "session_id": "room-1"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGenerateBatchEndpoint(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/cards/batch", gin.H{"format": "3x9", "session_id": "room-2", "count": 4})
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Cards []models.BingoCard `json:"cards"`
		Count int                `json:"count"`
	}
	decodeBody(t, w, &body)
	require.Len(t, body.Cards, 4)
	assert.Equal(t, 4, body.Count)
	for _, card := range body.Cards {
		assert.Len(t, card.Cells, 27)
	}
	assert.Equal(t, 4, env.registry.SessionCount("room-2"))
}

func TestGenerateBatchEndpointInvalidCount(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/cards/batch", gin.H{"format": "5x5", "session_id": "room-1", "count": 101})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	decodeBody(t, w, &body)
	message, _ := body["error"].(string)
	assert.Contains(t, message, "batch count out of range")

	// A missing count binds to zero and is rejected the same way.
	w = env.do(t, http.MethodPost, "/api/cards/batch", gin.H{"format": "5x5", "session_id": "room-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, env.registry.ActiveSessionCount())
}

func TestValidateEndpoint(t *testing.T) {
	env := newTestEnv()

	fresh := []models.GeneratedCell{models.NumberCell(0, 1), models.BlankCell(1)}
	w := env.do(t, http.MethodPost, "/api/cards/validate", gin.H{"cells": fresh, "session_id": "room-1"})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	decodeBody(t, w, &body)
	assert.Equal(t, true, body["unique"])

	// An issued card's grid is no longer unique for its session.
	w = env.do(t, http.MethodPost, "/api/cards", gin.H{"format": "5x5", "session_id": "room-1"})
	require.Equal(t, http.StatusCreated, w.Code)
	var card models.BingoCard
	decodeBody(t, w, &card)

	w = env.do(t, http.MethodPost, "/api/cards/validate", gin.H{"cells": card.Cells, "session_id": "room-1"})
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &body)
	assert.Equal(t, false, body["unique"])

	// The same grid is still fair game for another session.
	w = env.do(t, http.MethodPost, "/api/cards/validate", gin.H{"cells": card.Cells, "session_id": "room-9"})
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &body)
	assert.Equal(t, true, body["unique"])
}

func TestSessionStatusEndpoint(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/sessions/room-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	env.do(t, http.MethodPost, "/api/cards", gin.H{"format": "5x5", "session_id": "room-1"})

	w = env.do(t, http.MethodGet, "/api/sessions/room-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	decodeBody(t, w, &body)
	assert.Equal(t, "room-1", body["session_id"])
	assert.Equal(t, float64(1), body["issued_cards"])
	assert.NotEmpty(t, body["last_accessed"])
}

func TestClearSessionEndpoint(t *testing.T) {
	env := newTestEnv()

	env.do(t, http.MethodPost, "/api/cards", gin.H{"format": "3x9", "session_id": "room-1"})
	require.Equal(t, 1, env.registry.SessionCount("room-1"))

	w := env.do(t, http.MethodDelete, "/api/sessions/room-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.registry.SessionCount("room-1"))
}

func TestListSessionCardsWithArchiveDisabled(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/sessions/room-1/cards", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		SessionID string              `json:"session_id"`
		Cards     []models.IssuedCard `json:"cards"`
		Count     int                 `json:"count"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, "room-1", body.SessionID)
	assert.Empty(t, body.Cards)
	assert.Equal(t, 0, body.Count)
}

func TestListFormatsEndpoint(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/formats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Formats []struct {
			Format string              `json:"format"`
			Config models.FormatConfig `json:"config"`
		} `json:"formats"`
	}
	decodeBody(t, w, &body)
	require.Len(t, body.Formats, 2)
	assert.Equal(t, "3x9", body.Formats[0].Format)
	assert.Equal(t, 27, body.Formats[0].Config.TotalCells)
	assert.Equal(t, "5x5", body.Formats[1].Format)
	assert.Equal(t, 25, body.Formats[1].Config.TotalCells)
	assert.True(t, body.Formats[1].Config.HasFreeSpace)
}
