package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"dormcareBack/internal/models"
)

const wsWriteDeadline = 5 * time.Second

// WebSocketManager broadcasts complaint events to connected admin dashboards.
type WebSocketManager struct {
	clients    map[int]*websocket.Conn
	broadcast  chan models.ComplaintEvent
	register   chan wsClient
	unregister chan wsUnregister
}

type wsClient struct {
	ID     int
	Socket *websocket.Conn
}

type wsUnregister struct {
	userID int
	conn   *websocket.Conn
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[int]*websocket.Conn),
		broadcast:  make(chan models.ComplaintEvent, 16),
		register:   make(chan wsClient),
		unregister: make(chan wsUnregister),
	}
}

// All access to clients happens here.
func (ws *WebSocketManager) Run() {
	for {
		select {
		case client := <-ws.register:
			// A reconnect displaces the previous socket for the same admin.
			if old, ok := ws.clients[client.ID]; ok && old != nil && old != client.Socket {
				_ = old.Close()
			}
			ws.clients[client.ID] = client.Socket

		case u := <-ws.unregister:
			// Only remove the entry if it still belongs to this socket; a
			// stale connection closing must not evict its replacement.
			if cur, ok := ws.clients[u.userID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(ws.clients, u.userID)
			}

		case event := <-ws.broadcast:
			for id, conn := range ws.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
				if err := conn.WriteJSON(event); err != nil {
					_ = conn.Close()
					delete(ws.clients, id)
				}
			}
		}
	}
}

// PublishComplaintEvent implements services.ComplaintPublisher. Non-blocking;
// an event is dropped if the feed cannot keep up.
func (ws *WebSocketManager) PublishComplaintEvent(event models.ComplaintEvent) {
	select {
	case ws.broadcast <- event:
	default:
	}
}

// AdminFeedHandler upgrades an admin connection into the live complaint feed.
func (app *application) AdminFeedHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		app.clientError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := app.userRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			app.clientError(w, http.StatusForbidden, "Access denied")
			return
		}
		app.clientError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !user.IsAdmin {
		app.clientError(w, http.StatusForbidden, "Access denied")
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("WebSocket upgrade error: %v", err)
		return
	}

	app.wsManager.register <- wsClient{ID: userID, Socket: conn}

	go func() {
		defer func() { app.wsManager.unregister <- wsUnregister{userID: userID, conn: conn} }()
		for {
			// The feed is one-way; reads only detect the peer closing.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
