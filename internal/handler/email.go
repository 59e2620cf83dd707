// Package handler contains the HTTP handlers for the guesthouse email API.
//
// Routes:
//   - POST /api/send-email -> EmailHandler.HandleSendEmail
//   - GET  /               -> Liveness (registered in main)
//
// The send-email route is PUBLIC and stateless: no session, no
// per-request auth. It is the single backend touchpoint of the static
// site's booking and review forms.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/simphiwe/guesthouse/internal/domain"
	"github.com/simphiwe/guesthouse/internal/email"
	"github.com/simphiwe/guesthouse/internal/form"
	"github.com/simphiwe/guesthouse/internal/metrics"
)

// typeMissingMessage is the exact copy the site's client script matches on.
const typeMissingMessage = "Invalid request: Form type is missing."

// maxBodySize bounds the request body; form submissions are tiny.
const maxBodySize = 64 * 1024

// Renderer maps a record to subject and HTML body. Satisfied by
// *email.Renderer; the indirection keeps template failures testable.
type Renderer interface {
	Render(rec form.Record) (subject, html string, err error)
}

// EmailHandler accepts a form record, renders the notification email
// and relays it to the mail provider.
type EmailHandler struct {
	renderer Renderer
	mailer   email.Mailer
	to       string
	timeout  time.Duration
	logger   *slog.Logger
}

// NewEmailHandler creates an EmailHandler. to is the guesthouse inbox
// every submission is relayed to; timeout bounds one provider send.
func NewEmailHandler(renderer Renderer, mailer email.Mailer, to string, timeout time.Duration, logger *slog.Logger) *EmailHandler {
	return &EmailHandler{
		renderer: renderer,
		mailer:   mailer,
		to:       to,
		timeout:  timeout,
		logger:   logger,
	}
}

// RegisterRoutes registers the email API routes on the provided mux.
func (h *EmailHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/send-email", h.HandleSendEmail)
}

// HandleSendEmail processes one form submission end to end: decode,
// type check, render, dispatch. Every outcome is an HTTP response;
// nothing here is allowed to take the process down.
func (h *EmailHandler) HandleSendEmail(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("email.send", typeMissingMessage))
		return
	}

	var rec form.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("email.send", typeMissingMessage))
		return
	}

	formType, err := form.ParseType(string(rec.Type))
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("email.send", typeMissingMessage))
		return
	}

	subject, html, err := h.renderer.Render(rec)
	if err != nil {
		metrics.EmailsSent.WithLabelValues(string(formType), "error").Inc()
		ErrorResponse(w, r, h.logger, domain.Internal(err, "email.render", "could not render email"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	messageID, err := h.mailer.Send(ctx, email.Message{
		To:       h.to,
		Subject:  subject,
		HTMLBody: html,
		Tag:      string(formType),
	})
	metrics.DispatchDuration.WithLabelValues(string(formType)).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.EmailsSent.WithLabelValues(string(formType), "error").Inc()
		ErrorResponse(w, r, h.logger, domain.Dispatch(err, "email.send",
			fmt.Sprintf("Failed to send %s request: %v", formType, err)))
		return
	}

	metrics.EmailsSent.WithLabelValues(string(formType), "success").Inc()
	h.logger.Info("form email dispatched",
		"type", formType,
		"message_id", messageID,
	)

	writeJSON(w, http.StatusOK, apiResponse{
		Status:    "success",
		Message:   fmt.Sprintf("%s email sent successfully.", formType),
		MessageID: messageID,
	})
}

// Liveness is the root check route the uptime monitor polls.
func Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Simphiwe Guesthouse Email API is running.")
}
