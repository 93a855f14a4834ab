package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/myrjola/jurassictravel/internal/errors"
)

const (
	// stateEvent is published after every selection store change.
	stateEvent = "state"
	// chatEventPrefix prefixes the chat id of a conversation that changed.
	chatEventPrefix = "chat:"
	keepAlive       = 15 * time.Second
)

func chatEvent(chatID string) string {
	return chatEventPrefix + chatID
}

// sseEventName maps a broker message to the Server-Sent Event the visitor should receive, if any. Visitors only
// hear about their own conversation.
func sseEventName(message string, chatID string) (string, bool) {
	switch {
	case message == stateEvent:
		return "state", true
	case strings.HasPrefix(message, chatEventPrefix):
		return "chat", chatID != "" && message == chatEvent(chatID)
	default:
		return "", false
	}
}

// refreshChatID re-reads the visitor's chat id from the session store. The stream's own session snapshot goes stale
// when the visitor's conversation expires and a new one starts under a new id.
func (app *application) refreshChatID(r *http.Request, chatID string) string {
	if _, ok := app.chats.Get(chatID); ok {
		return chatID
	}
	cookie, err := r.Cookie(app.sessionManager.Cookie.Name)
	if err != nil {
		return chatID
	}
	ctx, err := app.sessionManager.Load(r.Context(), cookie.Value)
	if err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "reload session for event stream", errors.SlogError(err))
		return chatID
	}
	return app.sessionManager.GetString(ctx, chatIDSessionKey)
}

// streamEvents notifies the browser that it should refresh the terminal.
func (app *application) streamEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rc := http.NewResponseController(w)
	// The stream outlives the server write timeout.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		app.serverError(w, r, errors.Wrap(err, "clear write deadline"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	messages, unsubscribe := app.events.Subscribe()
	defer unsubscribe()

	chatID := app.sessionManager.GetString(ctx, chatIDSessionKey)
	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	write := func(payload string) bool {
		if _, err := fmt.Fprint(w, payload); err != nil {
			app.logger.LogAttrs(ctx, slog.LevelDebug, "event stream closed", errors.SlogError(err))
			return false
		}
		if err := rc.Flush(); err != nil {
			app.logger.LogAttrs(ctx, slog.LevelDebug, "event stream flush failed", errors.SlogError(err))
			return false
		}
		return true
	}

	if !write(": connected\n\n") {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !write(": keep-alive\n\n") {
				return
			}
		case message, ok := <-messages:
			if !ok {
				return
			}
			if strings.HasPrefix(message, chatEventPrefix) {
				chatID = app.refreshChatID(r, chatID)
			}
			name, deliver := sseEventName(message, chatID)
			if !deliver {
				continue
			}
			if !write(fmt.Sprintf("event: %s\ndata: %s\n\n", name, name)) {
				return
			}
		}
	}
}
