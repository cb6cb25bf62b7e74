package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"fitplan/internal/realtime"
	"fitplan/pkg/logger"
	"fitplan/pkg/utils"
)

const wsWriteWait = 10 * time.Second

// Browser clients cannot originate pings, so the server drives the
// keepalive: a ping every wsPingPeriod, and the connection is considered
// dead when no pong (or other frame) arrives within wsPongWait.
var (
	wsPongWait   = 90 * time.Second
	wsPingPeriod = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin access is governed by the CORS layer and token auth.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSController struct {
	hub *realtime.Hub
	log *logger.Logger
}

func NewWSController(hub *realtime.Hub, log *logger.Logger) *WSController {
	return &WSController{
		hub: hub,
		log: log.With("service", "WSController"),
	}
}

// ConnectHandler upgrades the request and keeps the connection registered
// until the client goes away. The server only pushes; inbound frames are
// drained to keep the pong handler running and to detect disconnects.
func (w *WSController) ConnectHandler(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		w.log.Warn("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	w.hub.Register(userID, conn)
	w.log.Debug("websocket connected", "user_id", userID)

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))

	done := make(chan struct{})

	go func() {
		defer func() {
			close(done)
			w.hub.Unregister(userID, conn)
			w.log.Debug("websocket disconnected", "user_id", userID)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		}
	}()

	go func() {
		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return
				}
			}
		}
	}()
}
