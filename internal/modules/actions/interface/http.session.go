package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"dsfrGateway/internal/modules/actions/domain"
	"dsfrGateway/internal/modules/actions/infrastructure"
	"dsfrGateway/internal/shared/auth"
)

const commandDispatch = "dispatch"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SessionTopics are subscribed for every page session on connect.
func SessionTopics() []string {
	return []string{domain.TopicRecordRefresh, domain.ChannelTopic(domain.RefreshChannel)}
}

// NewSessionWebsocketHandler exposes GET /ws/session. The JWT is read from the Authorization
// header or the token query parameter and validated before the upgrade.
func NewSessionWebsocketHandler(deps Dependencies) echo.HandlerFunc {
	d := dispatcher{deps: deps}
	return func(c echo.Context) error {
		logger := c.Logger()
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		identity, err := auth.Authenticate(c.Request(), deps.Validator)
		if err != nil {
			logger.Warnf("ws rejected ip=%s reqID=%s: %v", peerIP, requestID, err)
			return httpError(c, err)
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws handler upgrade failed", slog.String("sessionId", identity.SessionID), slog.Any("error", err))
			logger.Errorf("ws upgrade failed session=%s ip=%s reqID=%s: %v", identity.SessionID, peerIP, requestID, err)
			return err
		}

		commands := infrastructure.NewCommandProcessor(deps.Hub, newSessionCommandHandler(d), deps.CommandTimeout)
		client := infrastructure.NewClient(deps.Hub, conn, identity, deps.SendBuffer, commands)

		topics := SessionTopics()
		deps.Hub.AttachClient(client, topics)

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(&domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				"userId":    identity.UserID,
				"sessionId": identity.SessionID,
			},
			Data: map[string]any{
				"topics": topics,
			},
			Timestamp: time.Now().UTC(),
		})
		logger.Infof("ws connected user=%s session=%s ip=%s reqID=%s", identity.UserID, identity.SessionID, peerIP, requestID)
		return nil
	}
}

func newSessionCommandHandler(d dispatcher) infrastructure.CommandHandler {
	return func(ctx context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
		action := strings.ToLower(strings.TrimSpace(cmd.Action))
		switch action {
		case commandDispatch:
			var payload domain.DispatchCommand
			if err := json.Unmarshal(cmd.Payload, &payload); err != nil {
				slog.Warn("ws dispatch decode failed", slog.String("sessionId", client.SessionID()), slog.Any("error", err))
				infrastructure.SendCommandError(client, commandDispatch, "invalid payload")
				return
			}
			outcome, err := d.run(ctx, payload)
			if err != nil {
				info := errorMapper.Map(err)
				slog.Warn("ws dispatch failed", slog.String("sessionId", client.SessionID()), slog.String("button", payload.Button), slog.Int("status", info.Status), slog.Any("error", err))
				infrastructure.SendCommandError(client, commandDispatch, info.Message)
				return
			}
			client.SendDomainMessage(&domain.Message{
				Topic:      domain.TopicActionCompleted,
				Entity:     domain.ActionEntity,
				Action:     domain.ActionCompleted,
				ResourceID: outcome.RecordID,
				Metadata:   map[string]string{"button": payload.Button, "component": payload.Component},
				Data:       outcome,
				Timestamp:  time.Now().UTC(),
			})
		default:
			slog.Debug("ws session unknown command", slog.String("sessionId", client.SessionID()), slog.String("action", cmd.Action))
			infrastructure.SendCommandError(client, action, "unsupported action")
		}
	}
}
