package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/purnalakshitha99/location-app/internal/adminview"
	"github.com/purnalakshitha99/location-app/internal/model"
	"github.com/purnalakshitha99/location-app/internal/service"
)

// AdminHandler exposes the operator surface: listing with
// filter/sort/pagination, stats, CSV export, and bulk delete.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates an AdminHandler with the given service.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// submissionRow is one record as the admin table renders it: the model
// plus the derived display fields.
type submissionRow struct {
	*model.ContactSubmission
	LocationDisplay string `json:"location_display"`
	MapLink         string `json:"map_link,omitempty"`
}

func toRow(sub *model.ContactSubmission) submissionRow {
	row := submissionRow{ContactSubmission: sub, LocationDisplay: "N/A"}
	if sub.VisitorData != nil {
		row.LocationDisplay = sub.VisitorData.Location.Display()
		row.MapLink = sub.VisitorData.Location.MapLink()
	}
	return row
}

// viewParams builds the engine inputs from query parameters. The
// caller keeps the previous sort state, so sort/dir arrive explicit.
func viewParams(r *http.Request) (search, sortKey string, sortAsc bool, page int, visible map[string]bool) {
	q := r.URL.Query()
	search = q.Get("search")

	sortKey = q.Get("sort")
	if !validColumn(sortKey) {
		sortKey = ""
	}
	sortAsc = q.Get("dir") != "desc"

	page = 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil {
		page = p
	}

	visible = map[string]bool{}
	if cols := q.Get("columns"); cols != "" {
		for _, c := range strings.Split(cols, ",") {
			if validColumn(c) {
				visible[c] = true
			}
		}
	}
	if len(visible) == 0 {
		for _, c := range adminview.Columns {
			visible[c] = true
		}
	}
	return search, sortKey, sortAsc, page, visible
}

func validColumn(c string) bool {
	for _, col := range adminview.Columns {
		if col == c {
			return true
		}
	}
	return false
}

// listResponse is the JSON response for GET /api/admin/submissions.
type listResponse struct {
	Submissions []submissionRow `json:"submissions"`
	Total       int             `json:"total"`
	TotalPages  int             `json:"total_pages"`
	Page        int             `json:"page"`
	Stats       adminview.Stats `json:"stats"`
}

// List handles GET /api/admin/submissions.
// Query params: search, sort, dir (asc/desc), page, columns (csv).
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.adminService.ListAll(r.Context())
	if err != nil {
		slog.Error("admin list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}

	search, sortKey, sortAsc, page, visible := viewParams(r)

	filtered := adminview.Filter(subs, search, visible)
	sorted := adminview.Sort(filtered, sortKey, sortAsc)
	pageSubs, totalPages, page := adminview.Paginate(sorted, page)

	rows := make([]submissionRow, 0, len(pageSubs))
	for _, sub := range pageSubs {
		rows = append(rows, toRow(sub))
	}

	writeJSON(w, http.StatusOK, listResponse{
		Submissions: rows,
		Total:       len(filtered),
		TotalPages:  totalPages,
		Page:        page,
		// Stats always cover the full unfiltered set.
		Stats: adminview.ComputeStats(subs, time.Now()),
	})
}

// Stats handles GET /api/admin/submissions/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	subs, err := h.adminService.ListAll(r.Context())
	if err != nil {
		slog.Error("admin stats failed", "error", err)
		writeError(w, http.StatusInternalServerError, "stats_failed")
		return
	}
	writeJSON(w, http.StatusOK, adminview.ComputeStats(subs, time.Now()))
}

// Export handles GET /api/admin/submissions/export.
// Applies the list filter (sort and pagination are ignored) and streams
// CSV with a date-derived filename.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	subs, err := h.adminService.ListAll(r.Context())
	if err != nil {
		slog.Error("admin export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export_failed")
		return
	}

	search, _, _, _, visible := viewParams(r)
	filtered := adminview.Filter(subs, search, visible)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=`+adminview.ExportFilename(time.Now()))
	if err := adminview.WriteCSV(w, filtered, visible); err != nil {
		slog.Error("csv write failed", "error", err)
	}
}

// bulkDeleteRequest is the expected JSON body for POST /api/admin/submissions/delete.
type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// bulkDeleteResponse reports which deletes settled on which side.
// Callers clear their selection only when Failed is empty.
type bulkDeleteResponse struct {
	Deleted []string          `json:"deleted"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// BulkDelete handles POST /api/admin/submissions/delete.
// Not atomic across the set: successes stay deleted on partial failure,
// which is reported as 207.
func (h *AdminHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "ids_required")
		return
	}

	deleted, failed := h.adminService.BulkDelete(r.Context(), req.IDs)

	resp := bulkDeleteResponse{Deleted: deleted}
	if deleted == nil {
		resp.Deleted = []string{}
	}
	status := http.StatusOK
	if len(failed) > 0 {
		status = http.StatusMultiStatus
		resp.Failed = make(map[string]string, len(failed))
		for id, err := range failed {
			resp.Failed[id] = err.Error()
		}
	}
	writeJSON(w, status, resp)
}
