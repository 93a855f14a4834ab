package main

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/myrjola/jurassictravel/internal/dialogue"
	"github.com/myrjola/jurassictravel/internal/intent"
	"github.com/myrjola/jurassictravel/internal/logging"
)

// assistantView returns the visitor's conversation without starting one.
func (app *application) assistantView(r *http.Request) dialogue.View {
	id := app.sessionManager.GetString(r.Context(), chatIDSessionKey)
	if s, ok := app.chats.Get(id); ok {
		return s.Snapshot()
	}
	return dialogue.View{Suggestions: slices.Clone(intent.QuickReplies[:4])}
}

// chatSession returns the visitor's conversation and starts a new one when the visitor has none or it has expired.
func (app *application) chatSession(r *http.Request) (context.Context, *dialogue.Session) {
	ctx := r.Context()
	id := app.sessionManager.GetString(ctx, chatIDSessionKey)
	s := app.chats.GetOrCreate(id)
	if s.ID() != id {
		app.sessionManager.Put(ctx, chatIDSessionKey, s.ID())
	}
	return logging.WithAttrs(ctx, slog.String("chat_id", s.ID())), s
}

// assistant renders the assistant panel on its own for htmx polling.
func (app *application) assistant(w http.ResponseWriter, r *http.Request) {
	data := assistantTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Assistant:        app.assistantView(r),
	}
	app.render(w, r, http.StatusOK, "home", "assistant", data)
}

func (app *application) openAssistant(w http.ResponseWriter, r *http.Request) {
	_, s := app.chatSession(r)
	s.Open()
	app.redirectHome(w, r)
}

// closeAssistant hides the panel. Replies already on their way still arrive.
func (app *application) closeAssistant(w http.ResponseWriter, r *http.Request) {
	_, s := app.chatSession(r)
	s.Hide()
	app.redirectHome(w, r)
}

func (app *application) sendAssistantMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	if !app.limiters.allow(clientAddr(r), app.now()) {
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "assistant rate limit exceeded",
			slog.String("client", clientAddr(r)))
		app.clientError(w, r, http.StatusTooManyRequests)
		return
	}
	ctx, s := app.chatSession(r)
	if s.SendUserMessage(r.PostForm.Get("message")) {
		app.logger.LogAttrs(ctx, slog.LevelDebug, "assistant message received")
	}
	app.redirectHome(w, r)
}
