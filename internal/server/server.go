// internal/server/server.go
//
// Thin HTTP transport over the orchestrator. The only pipeline-facing call
// is Orchestrator.Handle; everything else here is envelope plumbing.
package server

import (
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weatherchat/internal/common/logger"
	"weatherchat/internal/entities"
	"weatherchat/internal/models"
	"weatherchat/internal/orchestrator"
)

type Server struct {
	orch   *orchestrator.Orchestrator
	logger logger.Logger
}

func New(orch *orchestrator.Orchestrator, log logger.Logger) *Server {
	return &Server{
		orch:   orch,
		logger: log.With(map[string]interface{}{"component": "server"}),
	}
}

// chatRequest is the transport envelope: free text plus optional browser
// geolocation coordinates.
type chatRequest struct {
	Message string   `json:"message"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Handler builds the HTTP mux: the chat endpoint plus health, metrics and
// pprof.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	return mux
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, chatResponse{Reply: "I couldn't read that request. Please send a weather question."})
		return
	}

	msg := strings.TrimSpace(req.Message)
	if msg == "" && (req.Lat == nil || req.Lon == nil) {
		writeJSON(w, chatResponse{Reply: "Please type a weather question or click **Use my location**."})
		return
	}

	query := models.Query{Text: msg}
	if req.Lat != nil && req.Lon != nil {
		query.Coordinates = &entities.Coordinates{Lat: *req.Lat, Lon: *req.Lon}
	}

	reply := s.orch.Handle(r.Context(), query)
	writeJSON(w, chatResponse{Reply: reply.Text})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
