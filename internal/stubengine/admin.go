package stubengine

import (
	"net/http"
	"sort"

	"github.com/guerrasclon/termclient/pkg/types"
)

const maxLogEntries = 100

func (s *Server) handleAdminLogs(w http.ResponseWriter, _ *http.Request) {
	s.store.mu.Lock()
	logs := make([]types.AuditLog, len(s.store.audit))
	copy(logs, s.store.audit)
	s.store.mu.Unlock()

	sort.Slice(logs, func(i, j int) bool { return logs[i].Timestamp.After(logs[j].Timestamp) })
	if len(logs) > maxLogEntries {
		logs = logs[:maxLogEntries]
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleAdminStats(w http.ResponseWriter, _ *http.Request) {
	s.store.mu.Lock()
	stats := types.Stats{
		TotalUsers:     len(s.store.users),
		TotalAuditLogs: len(s.store.audit),
	}
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}
