package contact

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/craftburger/internal/logging"
	"github.com/ziadkadry99/craftburger/internal/session"
)

const maxFormBytes = 64 << 10

// Service wires the per-client channels to the outcome store.
type Service struct {
	Channels *Channels
	Store    *Store
	Logger   *logging.Logger
}

// NewService returns a Service and hooks outcome logging into every
// channel the registry creates.
func NewService(channels *Channels, store *Store, logger *logging.Logger) *Service {
	svc := &Service{Channels: channels, Store: store, Logger: logger.With("component", "contact")}
	channels.OnNew(func(clientID string, ch *Channel) {
		ch.OnOutcome(func(o Outcome) { svc.record(clientID, o) })
	})
	return svc
}

func (s *Service) record(clientID string, o Outcome) {
	rec := Record{ClientID: clientID, State: o.State, HTTPStatus: o.HTTPStatus}
	if o.Err != nil {
		rec.Error = o.Err.Error()
		s.Logger.WithFields(map[string]any{"client_id": clientID, "http_status": o.HTTPStatus}).Error(o.Err, "contact submission failed")
	} else {
		s.Logger.WithFields(map[string]any{"client_id": clientID}).Info("contact submission sent")
	}
	if s.Store == nil {
		return
	}
	// The request context may already be cancelled once the backend answered.
	if _, err := s.Store.Log(context.Background(), rec); err != nil {
		s.Logger.Error(err, "storing submission record")
	}
}

// RegisterRoutes mounts the contact form endpoint and the visitor's own
// channel state. Recorded outcomes are only reachable from the CLI.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/contact", handleSubmit(svc))
	r.Get("/api/contact/state", handleState(svc))
}

// Response is the JSON answer to a contact form post.
type Response struct {
	State   State  `json:"state"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func handleSubmit(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := decodeSubmission(w, r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		clientID := session.ClientID(w, r)
		ch := svc.Channels.Get(clientID)

		state, err := ch.Submit(r.Context(), sub)
		status, resp := responseFor(state, err)

		if wantsJSON(r) {
			writeJSON(w, status, resp)
			return
		}
		q := url.Values{"state": {string(resp.State)}}
		if resp.Field != "" {
			q.Set("field", resp.Field)
		}
		http.Redirect(w, r, "/contact?"+q.Encode(), http.StatusSeeOther)
	}
}

func responseFor(state State, err error) (int, Response) {
	var fe *FieldError
	switch {
	case err == nil:
		return http.StatusOK, Response{State: state, Message: MessageSuccess}
	case errors.Is(err, ErrSubmitInProgress):
		return http.StatusConflict, Response{State: StateSubmitting, Message: MessageSubmitting}
	case errors.As(err, &fe):
		return http.StatusUnprocessableEntity, Response{State: state, Message: MessageInvalid, Field: fe.Field}
	case errors.Is(err, ErrInvalidSubmission):
		return http.StatusUnprocessableEntity, Response{State: state, Message: MessageInvalid}
	default:
		return http.StatusBadGateway, Response{State: StateError, Message: MessageError}
	}
}

func decodeSubmission(w http.ResponseWriter, r *http.Request) (Submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var sub Submission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			return Submission{}, err
		}
		return sub, nil
	}

	if err := r.ParseForm(); err != nil {
		return Submission{}, err
	}
	return Submission{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Message: r.PostForm.Get("message"),
	}, nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

type stateResponse struct {
	State State  `json:"state"`
	Error string `json:"error,omitempty"`
}

func handleState(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := stateResponse{State: StateIdle}
		if id, ok := session.PeekClientID(r); ok {
			if ch, ok := svc.Channels.Peek(id); ok {
				resp.State = ch.State()
				if err := ch.Err(); err != nil && resp.State == StateError {
					resp.Error = MessageError
				}
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
