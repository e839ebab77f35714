// Package httpapi exposes the agent and the task store over HTTP: token
// auth, plain task CRUD, and the natural-language message endpoint.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskbridge/internal/agent"
	"taskbridge/internal/auth"
	"taskbridge/internal/store"
)

type server struct {
	logger *zap.Logger
	store  *store.Store
	agent  *agent.Agent
	issuer *auth.TokenIssuer
}

const maxRequestBytes int64 = 1 << 20

// NewServer wires the routes and returns a ready-to-listen http.Server.
func NewServer(logger *zap.Logger, addr string, st *store.Store, ag *agent.Agent, issuer *auth.TokenIssuer) *http.Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &server{logger: logger, store: st, agent: ag, issuer: issuer}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /ai-agent/message", s.withUser(s.handleMessage))
	mux.HandleFunc("GET /api/tasks", s.withUser(s.handleListTasks))
	mux.HandleFunc("POST /api/tasks", s.withUser(s.handleCreateTask))
	mux.HandleFunc("GET /api/tasks/{id}", s.withUser(s.handleGetTask))
	mux.HandleFunc("PUT /api/tasks/{id}", s.withUser(s.handleUpdateTask))
	mux.HandleFunc("DELETE /api/tasks/{id}", s.withUser(s.handleDeleteTask))
	mux.HandleFunc("PATCH /api/tasks/{id}/complete", s.withUser(s.handleCompleteTask))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// withUser verifies the Bearer token and hands the resolved user id to the
// wrapped handler. Every task and agent route is scoped this way.
func (s *server) withUser(next func(http.ResponseWriter, *http.Request, int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		userID, err := s.issuer.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next(w, r, userID)
	}
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Email == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		s.internalError(w, "hash password", err)
		return
	}
	user, err := s.store.CreateUser(r.Context(), body.Email, hash)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		s.internalError(w, "create user", err)
		return
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.internalError(w, "issue token", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"token": token})
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if !decodeBody(w, r, &body) {
		return
	}

	user, err := s.store.UserByEmail(r.Context(), body.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.internalError(w, "look up user", err)
		return
	}
	if !auth.VerifyPassword(user.PasswordHash, body.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.internalError(w, "issue token", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}

func (s *server) handleMessage(w http.ResponseWriter, r *http.Request, userID int) {
	var body struct {
		Message string `json:"message"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	writeJSON(w, http.StatusOK, s.agent.ProcessMessage(r.Context(), userID, body.Message))
}

type taskPayload struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

func toPayload(t store.Task) taskPayload {
	return taskPayload{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
	}
}

func (s *server) handleListTasks(w http.ResponseWriter, r *http.Request, userID int) {
	tasks, err := s.store.ListTasks(r.Context(), userID)
	if err != nil {
		s.internalError(w, "list tasks", err)
		return
	}
	payload := make([]taskPayload, 0, len(tasks))
	for _, t := range tasks {
		payload = append(payload, toPayload(t))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *server) handleCreateTask(w http.ResponseWriter, r *http.Request, userID int) {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	task, err := s.store.CreateTask(r.Context(), userID, body.Title, body.Description)
	if err != nil {
		s.internalError(w, "create task", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPayload(task))
}

func (s *server) handleGetTask(w http.ResponseWriter, r *http.Request, userID int) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	task, err := s.store.GetTask(r.Context(), id, userID)
	if err != nil {
		s.taskError(w, "get task", err)
		return
	}
	writeJSON(w, http.StatusOK, toPayload(task))
}

func (s *server) handleUpdateTask(w http.ResponseWriter, r *http.Request, userID int) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	var body struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	patch := store.TaskPatch{Title: body.Title, Description: body.Description, Completed: body.Completed}
	task, err := s.store.UpdateTask(r.Context(), id, userID, patch)
	if err != nil {
		s.taskError(w, "update task", err)
		return
	}
	writeJSON(w, http.StatusOK, toPayload(task))
}

func (s *server) handleDeleteTask(w http.ResponseWriter, r *http.Request, userID int) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	task, err := s.store.DeleteTask(r.Context(), id, userID)
	if err != nil {
		s.taskError(w, "delete task", err)
		return
	}
	writeJSON(w, http.StatusOK, toPayload(task))
}

func (s *server) handleCompleteTask(w http.ResponseWriter, r *http.Request, userID int) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	var body struct {
		Completed *bool `json:"completed"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	completed := true
	if body.Completed != nil {
		completed = *body.Completed
	}

	task, err := s.store.SetTaskCompleted(r.Context(), id, userID, completed)
	if err != nil {
		s.taskError(w, "complete task", err)
		return
	}
	writeJSON(w, http.StatusOK, toPayload(task))
}

func (s *server) taskError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, store.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	s.internalError(w, op, err)
}

func (s *server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error("request failed", zap.String("op", op), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func taskID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON request body into dst, writing the 400 itself
// on bad input. An empty body decodes to the zero value.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
