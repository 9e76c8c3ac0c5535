package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"osu-dumper/internal/config"
	"osu-dumper/internal/domain"
	"osu-dumper/internal/ingest"
	"osu-dumper/internal/service"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
)

type DumpServer struct {
	dumps    *service.DumpService
	users    *service.UserService
	topPlays *service.TopPlaysService
	throttle *ingest.FixedInterval
	hub      *ProgressHub
	cfg      *config.Config
	logger   zerolog.Logger
}

func NewDumpServer(
	dumps *service.DumpService,
	users *service.UserService,
	topPlays *service.TopPlaysService,
	throttle *ingest.FixedInterval,
	hub *ProgressHub,
	cfg *config.Config,
	logger zerolog.Logger,
) *DumpServer {
	return &DumpServer{
		dumps:    dumps,
		users:    users,
		topPlays: topPlays,
		throttle: throttle,
		hub:      hub,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *DumpServer) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /get-all-scores", s.GetAllScores)
	mux.HandleFunc("POST /set-user", s.SetUser)
	mux.HandleFunc("GET /top-plays", s.TopPlays)
	mux.HandleFunc("GET /top-plays/{username}", s.TopPlays)
	mux.HandleFunc("GET /info", s.Info)
	mux.HandleFunc("POST /set-delay", s.SetDelay)
	mux.Handle("GET /ws", s.hub)
	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

type dumpResponse struct {
	Success string         `json:"success,omitempty"`
	Error   string         `json:"error,omitempty"`
	State   string         `json:"state"`
	Result  *ingest.Result `json:"result,omitempty"`
}

type setUserRequest struct {
	User string `json:"user"`
}

type setUserResponse struct {
	Msg string `json:"msg"`
}

type setDelayRequest struct {
	DelayMs *int64 `json:"delay_ms"`
}

type setDelayResponse struct {
	DelayMs int64 `json:"delay_ms"`
}

type infoResponse struct {
	APIConfigured bool         `json:"api_configured"`
	User          *domain.User `json:"user"`
	State         string       `json:"state"`
	DelayMs       int64        `json:"delay_ms"`
	Listening     bool         `json:"listening"`
}

func (s *DumpServer) GetAllScores(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	refresh := false
	if v := r.URL.Query().Get("refresh"); v != "" {
		var err error
		refresh, err = strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "refresh must be true or false"})
			return
		}
	}

	listener, gate, release, ok := s.hub.Bind()
	defer release()
	if !ok {
		logger.Info().Msg("no progress listener, progress goes to the log")
	}

	// The run outlives the request if the client goes away.
	ctx := context.WithoutCancel(r.Context())
	result, err := s.dumps.Dump(ctx, refresh, listener, gate)
	switch {
	case errors.Is(err, service.ErrNoUser):
		writeJSON(w, http.StatusPreconditionFailed, errorResponse{Error: err.Error()})
		return
	case errors.Is(err, service.ErrBusy):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	case result == nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, dumpResponse{Error: err.Error(), State: result.Outcome.String(), Result: result})
		return
	}

	msg := "Completed dumping!"
	if result.Outcome == ingest.StateCancelled {
		msg = "Canceled dumping"
	}
	writeJSON(w, http.StatusOK, dumpResponse{Success: msg, State: result.Outcome.String(), Result: result})
}

func (s *DumpServer) SetUser(w http.ResponseWriter, r *http.Request) {
	var req setUserRequest
	if err := readJSON(r, &req); err != nil || req.User == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user is required"})
		return
	}

	user, err := s.users.SetUser(r.Context(), req.User)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, setUserResponse{Msg: "Hello " + user.Name + "!"})
}

func (s *DumpServer) TopPlays(w http.ResponseWriter, r *http.Request) {
	plays, err := s.topPlays.TopPlays(r.Context(), r.PathValue("username"))
	switch {
	case errors.Is(err, service.ErrNoUser):
		writeJSON(w, http.StatusPreconditionFailed, errorResponse{Error: "either link a user or specify one"})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, plays)
}

func (s *DumpServer) Info(w http.ResponseWriter, r *http.Request) {
	resp := infoResponse{
		APIConfigured: s.cfg.OsuClientID != "" && s.cfg.OsuClientSecret != "",
		State:         s.dumps.State().String(),
		DelayMs:       s.throttle.Interval().Milliseconds(),
		Listening:     s.hub.Connected(),
	}
	if user, ok := s.users.Current(); ok {
		resp.User = &user
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *DumpServer) SetDelay(w http.ResponseWriter, r *http.Request) {
	var req setDelayRequest
	if err := readJSON(r, &req); err != nil || req.DelayMs == nil || *req.DelayMs < 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "delay_ms must be a non-negative integer"})
		return
	}

	s.throttle.SetInterval(time.Duration(*req.DelayMs) * time.Millisecond)
	zerolog.Ctx(r.Context()).Info().Int64("delay_ms", *req.DelayMs).Msg("api delay updated")
	writeJSON(w, http.StatusOK, setDelayResponse{DelayMs: *req.DelayMs})
}

func readJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return err
	}
	return sonic.Unmarshal(body, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
