package bot

import (
	"crypto/ed25519"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mineskin/skinbot/internal/discord"
	"github.com/mineskin/skinbot/internal/mineskin"
	"github.com/mineskin/skinbot/internal/queue"
)

// readBodyLimit caps inbound webhook bodies. Interactions are small;
// anything past this is not a legitimate payload.
const readBodyLimit = 1 << 20

// GenerateQueue is the paced queue feeding the MineSkin API.
type GenerateQueue = queue.Queue[*mineskin.Job, *mineskin.GenerateResult]

// Handler serves the Discord interactions webhook. Per request:
// verify signature, interpret, acknowledge immediately; accepted commands
// continue on an async tail that resolves into a deferred-response edit.
type Handler struct {
	publicKey  ed25519.PublicKey
	basePath   string
	interp     *Interpreter
	generate   *GenerateQueue
	dispatcher *Dispatcher
	tracer     trace.Tracer
}

// NewHandler creates the webhook handler.
func NewHandler(publicKey ed25519.PublicKey, basePath string, interp *Interpreter, gen *GenerateQueue, dispatcher *Dispatcher) *Handler {
	return &Handler{
		publicKey:  publicKey,
		basePath:   basePath,
		interp:     interp,
		generate:   gen,
		dispatcher: dispatcher,
		tracer:     otel.Tracer("skinbot/bot"),
	}
}

// Register installs the webhook routes on the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /", h.handleRoot)
	mux.HandleFunc("GET "+h.basePath, h.handleProbe)
	mux.HandleFunc("POST "+h.basePath, h.handleInteraction)
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	slog.Debug("root probe", "path", r.URL.Path, "remote", r.RemoteAddr)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleProbe(w http.ResponseWriter, r *http.Request) {
	slog.Debug("interactions endpoint probe", "remote", r.RemoteAddr)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleInteraction(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()

	body, err := readBody(r)
	if err != nil {
		slog.Warn("failed to read interaction body", "request_id", reqID, "error", err)
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	// Signature check runs on the exact raw bytes, before any parsing.
	sig := r.Header.Get("X-Signature-Ed25519")
	ts := r.Header.Get("X-Signature-Timestamp")
	if !discord.Verify(body, ts, sig, h.publicKey) {
		slog.Warn("rejected interaction: invalid signature", "request_id", reqID, "remote", r.RemoteAddr)
		http.Error(w, "invalid request signature", http.StatusUnauthorized)
		return
	}

	interaction := &discord.Interaction{}
	if err := json.Unmarshal(body, interaction); err != nil {
		slog.Warn("rejected interaction: malformed payload", "request_id", reqID, "error", err)
		http.Error(w, "malformed interaction payload", http.StatusBadRequest)
		return
	}

	ctx, span := h.tracer.Start(r.Context(), "interaction",
		trace.WithAttributes(
			attribute.Int("interaction.type", interaction.Type),
			attribute.String("interaction.id", interaction.ID),
		))
	defer span.End()

	switch interaction.Type {
	case discord.InteractionTypePing:
		writeJSON(w, http.StatusOK, &discord.InteractionResponse{Type: discord.ResponseTypePong})

	case discord.InteractionTypeApplicationCommand:
		resp, job := h.interp.Interpret(ctx, interaction)
		writeJSON(w, http.StatusOK, resp)
		if job != nil {
			// The HTTP response is already sent; the tail owns the job's
			// future and observes every outcome.
			go h.awaitGeneration(job)
		}

	default:
		slog.Warn("rejected interaction: unsupported type", "request_id", reqID, "type", interaction.Type)
		http.Error(w, "unsupported interaction type", http.StatusBadRequest)
	}
}

// awaitGeneration submits the job and delivers whatever the queue resolves.
// Transport failures become error results so the conversation always gets
// exactly one terminal message.
func (h *Handler) awaitGeneration(job *mineskin.Job) {
	res := <-h.generate.Submit(job)
	out := res.Value
	if res.Err != nil {
		slog.Warn("generation request failed", "interaction", job.InteractionID, "error", res.Err)
		out = &mineskin.GenerateResult{
			Token:         job.Token,
			InteractionID: job.InteractionID,
			Kind:          job.Kind,
			Failure:       &mineskin.APIError{Message: res.Err.Error(), Code: "transport"},
		}
	}
	h.dispatcher.Deliver(out)
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, readBodyLimit))
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
