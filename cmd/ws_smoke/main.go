package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"time"

	"tasks_api/internal/config"
	"tasks_api/internal/logger"
	"tasks_api/internal/ws"

	"github.com/gorilla/websocket"
)

// Connects to the change feed of a running server, creates a task over
// HTTP and waits for the matching event.
func main() {
	host := flag.String("host", "127.0.0.1", "server host (IPv4 avoids resolving to [::1])")
	flag.Parse()

	cfg := config.Load()
	base := fmt.Sprintf("%s:%s%s", *host, cfg.AppPort, cfg.APIPrefix)

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+base+"/ws", nil)
	if err != nil {
		logger.Fatal("dial feed", "error", err)
	}
	defer conn.Close()

	body, _ := json.Marshal(map[string]string{
		"title":       "smoke",
		"description": "ws smoke test",
		"deadline":    time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
	})
	res, err := http.Post("http://"+base+"/tasks", "application/json", bytes.NewReader(body))
	if err != nil {
		logger.Fatal("create task", "error", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		logger.Fatal("create task", "status", res.StatusCode)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			logger.Fatal("read feed", "error", err)
		}
		var ev struct {
			Type string `json:"type"`
			ID   int64  `json:"id"`
		}
		if err := json.Unmarshal(msg, &ev); err != nil {
			logger.Warn("bad event", "payload", string(msg))
			continue
		}
		logger.Info("event received", "type", ev.Type, "id", ev.ID)
		if ev.Type == ws.EventTaskCreated {
			return
		}
	}
}
