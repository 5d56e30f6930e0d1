package handlers

import (
	"log"
	"net/http"

	"github.com/avelychko/league-roster/live"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the deployed frontend origin.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs subscribes the client to a roster topic at /ws/roster/{topic}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")
	switch topic {
	case live.TopicSports, live.TopicTeams, live.TopicPlayers:
	default:
		http.Error(w, "unknown topic", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		log.Printf("failed to upgrade connection for topic %s: %v", topic, err)
		return
	}

	client := &live.Client{
		Hub:   h.hub,
		Conn:  conn,
		Send:  make(chan []byte, 256),
		Topic: topic,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
