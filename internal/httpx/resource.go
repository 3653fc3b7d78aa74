package httpx

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/agri-admin/internal/listview"
)

const maxPageSize = 100

// Methods selects which write routes a Resource exposes. Reads are always on.
type Methods uint8

const (
	MethodCreate Methods = 1 << iota
	MethodUpdate
	MethodDelete

	Ledger    = MethodCreate
	AllWrites = MethodCreate | MethodUpdate | MethodDelete
)

// Resource serves one entity store as a REST collection.
type Resource[T any] struct {
	Path     string
	Store    *listview.Store[T]
	PageSize int
	Methods  Methods
}

type ListResp[T any] struct {
	Query     listview.Query    `json:"query"`
	Page      int               `json:"page"`
	PageSize  int               `json:"page_size"`
	PageCount int               `json:"page_count"`
	Total     int               `json:"total"`
	Window    []int             `json:"window"`
	Rows      []listview.Row[T] `json:"rows"`
}

func (h *Resource[T]) Register(r chi.Router) {
	r.Get(h.Path, h.list)
	r.Get(h.Path+"/counts", h.counts)
	r.Get(h.Path+"/{id}", h.get)
	if h.Methods&MethodCreate != 0 {
		r.Post(h.Path, h.create)
	}
	if h.Methods&MethodUpdate != 0 {
		r.Patch(h.Path+"/{id}", h.update)
	}
	if h.Methods&MethodDelete != 0 {
		r.Delete(h.Path+"/{id}", h.delete)
	}
}

func queryFrom(r *http.Request) listview.Query {
	q := r.URL.Query()
	return listview.Query{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Kind:   q.Get("type"),
		Order:  q.Get("order"),
	}
}

func (h *Resource[T]) list(w http.ResponseWriter, r *http.Request) {
	size := min(intParam(r, "page_size", h.PageSize), maxPageSize)
	v := listview.NewView(h.Store, size)
	v.State.Apply(queryFrom(r))
	v.State.SetPage(intParam(r, "page", 1))
	p := v.Current()
	writeJSON(w, http.StatusOK, ListResp[T]{
		Query:     v.State.Query(),
		Page:      p.Page,
		PageSize:  p.PageSize,
		PageCount: p.PageCount,
		Total:     p.Total,
		Window:    p.Window,
		Rows:      p.Rows(),
	})
}

func (h *Resource[T]) counts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Counts())
}

func (h *Resource[T]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	rec, found := h.Store.Get(id)
	if !found {
		writeError(w, listview.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Resource[T]) create(w http.ResponseWriter, r *http.Request) {
	var tmpl T
	if err := decodeJSON(r, &tmpl); err != nil {
		badRequest(w, "invalid json")
		return
	}
	rec, err := h.Store.Create(tmpl).Commit()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// update merges the request body onto a staged copy of the record.
func (h *Resource[T]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		badRequest(w, "unreadable body")
		return
	}
	d, err := h.Store.Open(id)
	if err != nil {
		writeError(w, err)
		return
	}
	var decodeErr error
	_ = d.Edit(func(v *T) { decodeErr = json.Unmarshal(body, v) })
	if decodeErr != nil {
		d.Cancel()
		badRequest(w, "invalid json")
		return
	}
	rec, err := d.Commit()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Resource[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	if !h.Store.Delete(id) {
		writeError(w, listview.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
