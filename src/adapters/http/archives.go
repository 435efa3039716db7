package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"postarchive/src/domain"
	"strconv"
	"strings"
)

func (s *Server) GetArchive(w http.ResponseWriter, r *http.Request) {
	creator := strings.TrimSpace(r.PathValue("creator"))
	if creator == "" {
		http.Error(w, "creator is required", http.StatusBadRequest)
		return
	}

	snapshot, err := s.archiveSnapshots.Latest(r.Context(), creator)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		s.logger.Error("Failed to get archive snapshot", "creator", creator, "error", err)

		http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Render-ID", snapshot.RenderID)
	w.Header().Set("Last-Modified", snapshot.RenderedAt.UTC().Format(http.TimeFormat))
	w.Header().Set("Content-Length", strconv.Itoa(len(snapshot.Document)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(snapshot.Document)); err != nil {
		s.logger.Error("Failed to write archive response", "creator", creator, "error", err)
	}
}

func (s *Server) ListArchives(w http.ResponseWriter, r *http.Request) {
	creators, err := s.archiveSnapshots.ListCreators(r.Context())
	if err != nil {
		s.logger.Error("Failed to list archives", "error", err)

		http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, ArchiveListResponse{Creators: creators})
}

func (s *Server) RenderArchive(w http.ResponseWriter, r *http.Request) {
	creator := strings.TrimSpace(r.PathValue("creator"))
	if creator == "" {
		http.Error(w, "creator is required", http.StatusBadRequest)
		return
	}

	snapshot, err := s.archiveSnapshots.RenderAndPublish(r.Context(), creator)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrArchiveNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, domain.ErrMalformedPost):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			s.logger.Error("Failed to render archive", "creator", creator, "error", err)
			http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusInternalServerError)
		}
		return
	}

	s.writeJSON(w, http.StatusCreated, MapSnapshotToRenderResponse(snapshot))
}

// RenderAllArchives re-renderiza todo criador com posts arquivados. Falhas
// por criador vão no corpo; só a listagem derruba a requisição.
func (s *Server) RenderAllArchives(w http.ResponseWriter, r *http.Request) {
	summary, err := s.archiveSnapshots.RenderAll(r.Context())
	if err != nil {
		s.logger.Error("Failed to render archives", "error", err)

		http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, MapSummaryToRenderAllResponse(summary))
}

func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	for _, checker := range s.healthCheckers {
		if err := checker.HealthCheck(r.Context()); err != nil {
			s.logger.Warn("Health check failed", "error", err)
			s.writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
			return
		}
	}

	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to write JSON response", "error", err)
	}
}
