package httpx

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/agri-admin/internal/audit"
	"github.com/ariefcatur/agri-admin/internal/listview"
)

// AuditLister is satisfied by *audit.Repo.
type AuditLister interface {
	List(ctx context.Context, f audit.Filter, limit, offset int) ([]audit.Entry, int, error)
}

type AuditHandler struct {
	Repo     AuditLister
	PageSize int
}

type AuditResp struct {
	Items     []audit.Entry `json:"items"`
	Page      int           `json:"page"`
	PageSize  int           `json:"page_size"`
	PageCount int           `json:"page_count"`
	Total     int           `json:"total"`
	Window    []int         `json:"window"`
}

func (h *AuditHandler) Register(r chi.Router) {
	r.Get("/audit", h.list)
}

func (h *AuditHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := audit.Filter{Entity: q.Get("entity"), Op: q.Get("op")}
	if v := q.Get("record_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badRequest(w, "invalid record_id")
			return
		}
		f.RecordID = id
	}
	size := min(intParam(r, "page_size", h.PageSize), maxPageSize)
	if size <= 0 {
		size = listview.DefaultPageSize
	}
	page := intParam(r, "page", 1)

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, total, err := h.Repo.List(ctx, f, size, (page-1)*size)
	if err != nil {
		writeError(w, err)
		return
	}
	clamped, count := listview.Bounds(total, page, size)
	if clamped != page && total > 0 {
		// requested page ran past the end, serve the last one
		page = clamped
		if items, total, err = h.Repo.List(ctx, f, size, (page-1)*size); err != nil {
			writeError(w, err)
			return
		}
		_, count = listview.Bounds(total, page, size)
	}
	if items == nil {
		items = []audit.Entry{}
	}
	writeJSON(w, http.StatusOK, AuditResp{
		Items:     items,
		Page:      clamped,
		PageSize:  size,
		PageCount: count,
		Total:     total,
		Window:    listview.Window(clamped, count),
	})
}
