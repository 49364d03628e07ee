package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tasks_api/internal/config"
	httpserver "tasks_api/internal/http"
	"tasks_api/internal/http/handlers"
	"tasks_api/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_CreateTaskAnnouncedOnFeed(t *testing.T) {
	db := openDB(t)
	gin.SetMode(gin.TestMode)

	hub := ws.NewHub()
	defer hub.Close()
	r := httpserver.NewEngine(&config.Config{APIPrefix: "/api"},
		handlers.NewHandler(db, hub),
		handlers.NewHealthHandler(db, hub, "e2e"),
		hub,
	)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	body, _ := json.Marshal(map[string]string{"title": "e2e", "description": "d", "deadline": "2030-01-01T00:00:00Z"})
	res, err := http.Post(srv.URL+"/api/tasks", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var created struct {
		Status string `json:"status"`
		Data   struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	assert.Equal(t, "success", created.Status)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev ws.Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, ws.EventTaskCreated, ev.Type)
	assert.Equal(t, created.Data.ID, ev.ID)

	res2, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	res2.Body.Close()
	assert.Equal(t, http.StatusOK, res2.StatusCode)
}
