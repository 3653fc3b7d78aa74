package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/agri-admin/internal/listview"
	"github.com/ariefcatur/agri-admin/internal/market"
)

type MarketHandler struct {
	Market   *market.Market
	PageSize int
}

func mount[T any](r chi.Router, entity string, s *listview.Store[T], size int, m Methods) {
	(&Resource[T]{Path: "/" + entity, Store: s, PageSize: size, Methods: m}).Register(r)
}

func (h *MarketHandler) Register(r chi.Router) {
	m, size := h.Market, h.PageSize
	mount(r, market.EntityAuctions, m.Auctions, size, AllWrites)
	mount(r, market.EntityProducts, m.Products, size, AllWrites)
	mount(r, market.EntityMembers, m.Members, size, AllWrites)
	mount(r, market.EntityContracts, m.Contracts, size, AllWrites)
	mount(r, market.EntityEscrows, m.Escrows, size, AllWrites)
	mount(r, market.EntityNotices, m.Notices, size, AllWrites)
	mount(r, market.EntityFAQs, m.FAQs, size, AllWrites)
	mount(r, market.EntityFAQCategories, m.FAQCategories, size, MethodCreate|MethodUpdate)
	mount(r, market.EntityInquiries, m.Inquiries, size, AllWrites)
	mount(r, market.EntityMileage, m.Mileage, size, Ledger)
	mount(r, market.EntityCredits, m.Credits, size, Ledger)
	mount(r, market.EntityCategories, m.Categories, size, AllWrites)
	mount(r, market.EntityAdmins, m.Admins, size, AllWrites)

	r.Get("/auctions/{id}/bids", h.listBids)
	r.Post("/auctions/{id}/bids", h.placeBid)
	r.Post("/products/hot", h.registerHot)
	r.Delete("/products/{id}/hot", h.unregisterHot)
	r.Post("/inquiries/{id}/replies", h.reply)
	r.Put("/inquiries/{id}/status", h.changeStatus)
	r.Get("/members/{id}/history", h.memberHistory)
	r.Get("/members/{id}/products", h.memberProducts)
	r.Post("/categories/{id}/subcategories", h.addSubCategory)
	r.Patch("/categories/{id}/subcategories/{subID}", h.editSubCategory)
	r.Get("/faq-categories/active", h.activeCategories)
	r.Delete("/faq-categories/{id}", h.deleteCategory)
	r.Get("/dashboard", h.dashboard)
}

func (h *MarketHandler) listBids(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	bids, err := h.Market.Bids(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bids)
}

func (h *MarketHandler) placeBid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	var bid market.Bid
	if err := decodeJSON(r, &bid); err != nil {
		badRequest(w, "invalid json")
		return
	}
	b, err := h.Market.PlaceBid(id, bid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

type HotReq struct {
	IDs []int64 `json:"ids"`
}

func (h *MarketHandler) registerHot(w http.ResponseWriter, r *http.Request) {
	var req HotReq
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	if len(req.IDs) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResp{Error: "required", Field: "ids"})
		return
	}
	writeJSON(w, http.StatusOK, h.Market.SetHot(req.IDs, true))
}

func (h *MarketHandler) unregisterHot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	updated := h.Market.SetHot([]int64{id}, false)
	if len(updated) == 0 {
		writeError(w, listview.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated[0])
}

type ReplyReq struct {
	Content string `json:"content"`
}

func (h *MarketHandler) reply(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	var req ReplyReq
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	q, err := h.Market.ReplyInquiry(id, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

type StatusReq struct {
	Status market.InquiryStatus `json:"status"`
}

func (h *MarketHandler) changeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	var req StatusReq
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	q, err := h.Market.ChangeInquiryStatus(id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *MarketHandler) memberHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	typ := market.HistoryType(r.URL.Query().Get("type"))
	p, err := h.Market.MemberHistory(id, typ, intParam(r, "page", 1))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResp[market.MemberEvent]{
		Query:     listview.Query{Kind: string(typ)},
		Page:      p.Page,
		PageSize:  p.PageSize,
		PageCount: p.PageCount,
		Total:     p.Total,
		Window:    p.Window,
		Rows:      p.Rows(),
	})
}

func (h *MarketHandler) memberProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	all := queryFrom(r)
	q := listview.Query{Search: all.Search, Kind: all.Kind}
	p, err := h.Market.MemberProducts(id, q, intParam(r, "page", 1))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResp[market.ProductActivity]{
		Query:     q,
		Page:      p.Page,
		PageSize:  p.PageSize,
		PageCount: p.PageCount,
		Total:     p.Total,
		Window:    p.Window,
		Rows:      p.Rows(),
	})
}

type SubCategoryReq struct {
	Name   string                `json:"name"`
	Status market.CategoryStatus `json:"status"`
}

func (h *MarketHandler) addSubCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	var req SubCategoryReq
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	sc, err := h.Market.AddSubCategory(id, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sc)
}

func (h *MarketHandler) editSubCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	subID, subOK := pathInt(r, "subID")
	if !ok || !subOK {
		badRequest(w, "invalid id")
		return
	}
	var req SubCategoryReq
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	sc, err := h.Market.EditSubCategory(id, subID, req.Name, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (h *MarketHandler) activeCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Market.ActiveFAQCategories())
}

func (h *MarketHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid id")
		return
	}
	n, err := h.Market.DeleteFAQCategory(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed_faqs": n})
}

func (h *MarketHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Market.Summary())
}
