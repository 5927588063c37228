package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hpungsan/taskflow/internal/config"
	"github.com/hpungsan/taskflow/internal/db"
	"github.com/hpungsan/taskflow/internal/errors"
	"github.com/hpungsan/taskflow/internal/ops"
	"github.com/hpungsan/taskflow/internal/task"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	store    *db.Store
	cfg      *config.Config
	renderer *Renderer
}

// HandleDashboard handles GET /dashboard with the triage snapshot.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Dashboard(r.Context(), h.store, h.cfg)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "dashboard", DashboardPageData{
		PageData: PageData{
			Title:   "Dashboard",
			Version: h.renderer.version,
			Nav:     "dashboard",
		},
		NowTask:         result.NowTask,
		NextTasks:       result.NextTasks,
		WaitingTasks:    result.WaitingTasks,
		ReviewDueInDays: result.ReviewDueInDays,
		Statuses:        task.AllStatuses,
	})
}

// HandleList handles GET /tasks, listing tasks in a status.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = "next"
	}

	input := ops.ListInput{
		Status: status,
		Limit:  parseIntParam(r, "limit", 20),
		Offset: parseIntParam(r, "offset", 0),
	}

	result, err := ops.List(r.Context(), h.store, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "list", ListPageData{
		PageData: PageData{
			Title:   "Tasks",
			Version: h.renderer.version,
			Nav:     "tasks",
		},
		Items:      result.Items,
		Pagination: result.Pagination,
		Status:     status,
		Statuses:   task.AllStatuses,
	})
}

// HandleCapture handles POST /tasks from the quick-add form.
func (h *Handlers) HandleCapture(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	input := ops.CaptureInput{
		Text:   r.FormValue("text"),
		Source: ops.SourceWeb,
		Raw:    r.FormValue("raw") == "true",
	}

	result, err := ops.Capture(r.Context(), h.store, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// HTMX request: redirect via HX-Redirect header
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/dashboard")
		w.WriteHeader(http.StatusOK)
		return
	}

	// JSON request
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusCreated, result)
		return
	}

	// Default: redirect back to the dashboard
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// HandleUpdateStatus handles POST /tasks/{id}/status, moving a task.
func (h *Handlers) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("task ID is required"))
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	result, err := ops.UpdateStatus(r.Context(), h.store, ops.UpdateStatusInput{
		ID:     id,
		Status: r.FormValue("status"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// HTMX request: redirect via HX-Redirect header
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/dashboard")
		w.WriteHeader(http.StatusOK)
		return
	}

	// JSON request
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, result)
		return
	}

	// Default: redirect
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// HandleDelete handles DELETE /tasks/{id}, permanently deleting a task.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("task ID is required"))
		return
	}

	result, err := ops.Delete(r.Context(), h.store, ops.DeleteInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// HTMX request: redirect via HX-Redirect header
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/tasks")
		w.WriteHeader(http.StatusOK)
		return
	}

	// JSON request
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, map[string]any{
			"deleted": result.Deleted,
			"id":      result.ID,
		})
		return
	}

	// Default: redirect
	http.Redirect(w, r, "/tasks", http.StatusFound)
}

// HandleReport handles GET /report, the markdown agenda rendered to HTML.
func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Report(r.Context(), h.store, h.cfg)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "report", ReportPageData{
		PageData: PageData{
			Title:   "Report",
			Version: h.renderer.version,
			Nav:     "report",
		},
		RenderedHTML: renderMarkdown(result.Markdown),
		GeneratedAt:  result.GeneratedAt,
	})
}

// HandleReviewed handles POST /reviewed, marking the triage review as done.
func (h *Handlers) HandleReviewed(w http.ResponseWriter, r *http.Request) {
	result, err := ops.MarkReviewed(r.Context(), h.store, h.cfg)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// HTMX request: redirect via HX-Redirect header
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/dashboard")
		w.WriteHeader(http.StatusOK)
		return
	}

	// JSON request
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, result)
		return
	}

	// Default: redirect
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
