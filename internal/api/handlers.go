package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/IvanShishkin/webtrail/internal/diff"
	"github.com/IvanShishkin/webtrail/internal/store"
	"github.com/IvanShishkin/webtrail/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errBadUser = errors.New("invalid user name")

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": Version})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.source.Users()
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleChangesets(w http.ResponseWriter, r *http.Request) {
	user, err := pathUser(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.summaries(user))
}

func (s *Server) handleChangeset(w http.ResponseWriter, r *http.Request) {
	user, err := pathUser(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid changeset id")
		return
	}

	cs, err := s.source.Find(user, id)
	if err != nil {
		s.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (s *Server) handleDiffLatest(w http.ResponseWriter, r *http.Request) {
	user, err := pathUser(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	opts, err := s.diffOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.engine.DiffLatest(user, opts)
	if err != nil {
		s.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	user, result, ok := s.diffFromPath(w, r)
	if !ok {
		return
	}
	s.logger.Debug("Diff computed", zap.String("user", user), zap.Int("segments", len(result.Segments)))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDiffPage(w http.ResponseWriter, r *http.Request) {
	user, result, ok := s.diffFromPath(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := diff.RenderHTML(w, user, result); err != nil {
		s.logger.Error("Failed to render diff", zap.String("user", user), zap.Error(err))
	}
}

func (s *Server) handleHistoryPage(w http.ResponseWriter, r *http.Request) {
	user, err := pathUser(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(renderHistory(user, s.summaries(user))))
}

// diffFromPath parses {user}/{a}/{b} and computes the diff, writing any error
func (s *Server) diffFromPath(w http.ResponseWriter, r *http.Request) (string, *diff.Result, bool) {
	user, err := pathUser(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", nil, false
	}
	a, errA := uuid.Parse(r.PathValue("a"))
	b, errB := uuid.Parse(r.PathValue("b"))
	if errA != nil || errB != nil {
		writeError(w, http.StatusBadRequest, "invalid changeset id")
		return "", nil, false
	}
	opts, err := s.diffOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", nil, false
	}

	result, err := s.engine.DiffByID(user, a, b, opts)
	if err != nil {
		s.writeLookupError(w, err)
		return "", nil, false
	}
	return user, result, true
}

func (s *Server) diffOptions(r *http.Request) (diff.Options, error) {
	opts := diff.Options{
		Filter: diff.ExtensionFilter(r.URL.Query().Get("ext")),
		Mode:   s.mode,
	}
	switch mode := diff.Mode(r.URL.Query().Get("mode")); mode {
	case "":
	case diff.ModeChar, diff.ModeLine:
		opts.Mode = mode
	default:
		return opts, fmt.Errorf("mode must be one of: char, line (got: %s)", mode)
	}
	return opts, nil
}

func (s *Server) summaries(user string) []models.ChangesetSummary {
	all := s.source.All(user)
	out := make([]models.ChangesetSummary, 0, len(all))
	for _, cs := range all {
		out = append(out, cs.Summary())
	}
	return out
}

func (s *Server) writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, diff.ErrNotEnough):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("Lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// pathUser returns the {user} segment, refusing names that could leave the store root
func pathUser(r *http.Request) (string, error) {
	user := r.PathValue("user")
	if user == "" || strings.HasPrefix(user, ".") || strings.ContainsAny(user, `/\`) {
		return "", errBadUser
	}
	return user, nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}

// renderHistory lists a user's changesets with links diffing each one against its predecessor
func renderHistory(user string, items []models.ChangesetSummary) string {
	var sb strings.Builder
	esc := html.EscapeString

	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"UTF-8\">\n")
	fmt.Fprintf(&sb, "<title>%s history</title>\n", esc(user))
	sb.WriteString(`<style>
body { background: #0C0C0C; color: #ECECEC; font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; }
td, th { border-bottom: 1px solid #2A2A2A; padding: 0.4rem 0.8rem; text-align: left; }
a { color: #FF6B35; }
.invalid { color: #6B6B6B; }
</style>
</head>
<body>
`)
	fmt.Fprintf(&sb, "<h1>%s</h1>\n", esc(user))

	if len(items) == 0 {
		sb.WriteString("<p>No changesets stored.</p>\n</body>\n</html>\n")
		return sb.String()
	}

	sb.WriteString("<table>\n<tr><th>Time</th><th>Changeset</th><th>Entries</th><th>Domains</th><th></th></tr>\n")
	var prev *models.ChangesetSummary
	for i := range items {
		it := &items[i]
		class := ""
		if !it.Valid {
			class = " class=\"invalid\""
		}
		fmt.Fprintf(&sb, "<tr%s><td>%s</td><td>%s</td><td>%d</td><td>%s</td><td>",
			class,
			time.UnixMilli(it.Timestamp).UTC().Format("2006-01-02 15:04:05"),
			esc(it.UUID.String()),
			it.Entries,
			esc(strings.Join(it.Domains, ", ")))
		if it.Valid && prev != nil {
			fmt.Fprintf(&sb, "<a href=\"/diff/%s/%s/%s\">diff</a>", esc(url.PathEscape(user)), prev.UUID, it.UUID)
		}
		sb.WriteString("</td></tr>\n")
		if it.Valid {
			prev = it
		}
	}
	sb.WriteString("</table>\n</body>\n</html>\n")
	return sb.String()
}
