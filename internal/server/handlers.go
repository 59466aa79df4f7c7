package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"ytbatch/internal/model"
	"ytbatch/internal/queue"
	"ytbatch/internal/util"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// GET /api/channel?url=...&page=...
func (s *Server) handleChannel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	channelURL := r.URL.Query().Get("url")
	if channelURL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	page, err := s.lister.ListChannelPage(r.Context(), channelURL, r.URL.Query().Get("page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if page.Entries == nil {
		page.Entries = []model.ChannelEntry{}
	}
	writeJSON(w, http.StatusOK, page)
}

type queueAddRequest struct {
	URLs   []string `json:"urls"`
	Format string   `json:"format"`
}

// POST /api/queue
func (s *Server) handleQueueAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req queueAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var urls []string
	for _, u := range req.URLs {
		for _, line := range util.SplitURLList(u) {
			if util.ValidateVideoURL(line) == nil {
				urls = append(urls, line)
			}
		}
	}
	if len(urls) == 0 {
		writeError(w, http.StatusBadRequest, "no valid URLs provided")
		return
	}

	spec, err := model.ParseFormatSpec(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	added := s.manager.Enqueue(urls, spec)
	writeJSON(w, http.StatusOK, map[string]int{
		"added":  added,
		"queued": len(s.manager.Snapshot()),
	})
}

type queueRemoveRequest struct {
	URL string `json:"url"`
}

// POST /api/queue/remove
func (s *Server) handleQueueRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req queueRemoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": s.manager.Remove(req.URL)})
}

// POST /api/queue/clear
func (s *Server) handleQueueClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": s.manager.Clear()})
}

type runRequest struct {
	Workers int `json:"workers"`
}

// POST /api/run
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req runRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	// The pool must outlive this request; it is bound to the server's
	// lifetime context, not the request's.
	runID, err := s.manager.StartRun(s.runContext(), queue.ClampWorkers(req.Workers))
	if err != nil {
		if errors.Is(err, queue.ErrRunActive) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Printf("run %s started with %d workers", runID, queue.ClampWorkers(req.Workers))
	writeJSON(w, http.StatusOK, map[string]string{"run_id": runID})
}

// GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	items := s.manager.Snapshot()
	if items == nil {
		items = []model.QueueItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"active": s.manager.Active(),
		"items":  items,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}
