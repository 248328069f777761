// Package ws provides the live notification gateway. Clients connect over
// WebSocket, authenticate with the same tokens as the REST API, and receive
// order transition events they are eligible for. The connection carries no
// replay: a reconnecting client re-fetches current order state through the
// REST API.
package ws

import (
	"log/slog"
	"net/http"
	"time"

	"orderflow/internal/core/ports"
	"orderflow/internal/notifications"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	// writeWait bounds how long a single frame write may take.
	writeWait = 10 * time.Second

	// pongWait is how long the connection may stay silent before it is
	// considered dead.
	pongWait = 60 * time.Second

	// pingPeriod must be shorter than pongWait so pings keep the
	// connection alive.
	pingPeriod = (pongWait * 9) / 10

	// subscriberBuffer bounds undelivered messages per connection.
	subscriberBuffer = 16
)

// Gateway upgrades HTTP requests to WebSocket connections and bridges them to
// the notification registry. Each connection becomes one subscriber; closing
// the connection unregisters it.
type Gateway struct {
	registry *notifications.Registry
	verifier ports.CredentialVerifier
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewGateway creates a gateway registering connections with the given registry.
func NewGateway(
	registry *notifications.Registry,
	verifier ports.CredentialVerifier,
	logger *slog.Logger,
) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		registry: registry,
		verifier: verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
		logger: logger.With("component", "ws-gateway"),
	}
}

// HandleConnection handles GET /ws/orders. The token travels in the "token"
// query parameter because browsers cannot set headers on WebSocket dials.
// Authentication failures are rejected before the upgrade.
func (g *Gateway) HandleConnection(ctx echo.Context) error {
	token := ctx.QueryParam("token")
	actor, err := g.verifier.Verify(ctx.Request().Context(), token)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, map[string]string{
			"message": "invalid or missing token",
		})
	}

	conn, err := g.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return nil
	}

	sub, err := notifications.NewSubscriber(actor.ID(), actor.Role(), subscriberBuffer)
	if err != nil {
		_ = conn.Close()
		return err
	}

	g.registry.Register(sub)
	g.logger.Info("subscriber connected",
		"subscriber", sub.ID().String(),
		"user", actor.ID().String(),
		"role", actor.Role().String(),
	)

	// The buffer is freshly created, so the confirmation is always the
	// first frame the connection sees.
	confirm := notifications.NewConnectionConfirmedMessage(actor.ID(), actor.Role(), time.Now())
	if err := sub.TrySend(confirm); err != nil {
		g.logger.Warn("connection confirmation not queued",
			"subscriber", sub.ID().String(), "error", err)
	}

	go g.writePump(conn, sub)
	g.readPump(conn, sub)
	return nil
}

// readPump consumes inbound frames until the connection dies. The protocol is
// push-only, so inbound payloads are discarded; the loop exists to notice
// closes and pongs.
func (g *Gateway) readPump(conn *websocket.Conn, sub *notifications.Subscriber) {
	defer func() {
		g.registry.Unregister(sub.ID())
		_ = conn.Close()
		g.logger.Info("subscriber disconnected", "subscriber", sub.ID().String())
	}()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump drains the subscriber's outbound queue onto the connection and
// keeps it alive with periodic pings. Exits when the subscriber is closed or
// a write fails.
func (g *Gateway) writePump(conn *websocket.Conn, sub *notifications.Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		g.registry.Unregister(sub.ID())
		_ = conn.Close()
	}()

	for {
		select {
		case msg := <-sub.Outbound():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				g.logger.Warn("write failed", "subscriber", sub.ID().String(), "error", err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-sub.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			)
			return
		}
	}
}
