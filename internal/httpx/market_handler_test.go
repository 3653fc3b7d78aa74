package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/agri-admin/internal/market"
)

func newTestServer(t *testing.T) (*market.Market, http.Handler) {
	t.Helper()
	seed, err := market.LoadSeed("")
	require.NoError(t, err)
	m := market.New(seed, market.WithClock(func() time.Time {
		return time.Date(2024, 3, 25, 9, 30, 0, 0, time.UTC)
	}))
	r := NewRouter()
	(&MarketHandler{Market: m, PageSize: 10}).Register(r)
	return m, r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestList_statusTab(t *testing.T) {
	t.Parallel()

	_, h := newTestServer(t)
	q := url.Values{"status": {string(market.AuctionFailed)}}
	rec := do(t, h, http.MethodGet, "/auctions?"+q.Encode(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[ListResp[market.Auction]](t, rec)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, []int{1}, resp.Window)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, 2, resp.Rows[0].Index)
	assert.Equal(t, int64(3), resp.Rows[0].Item.ID)
}

func TestList_hotTabAndSearch(t *testing.T) {
	t.Parallel()

	_, h := newTestServer(t)
	resp := decode[ListResp[market.Product]](t, do(t, h, http.MethodGet, "/products?status=hot", ""))
	assert.Equal(t, 1, resp.Total)

	q := url.Values{"search": {"한라봉"}, "type": {string(market.ProductRaw)}}
	resp = decode[ListResp[market.Product]](t, do(t, h, http.MethodGet, "/products?"+q.Encode(), ""))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(2), resp.Rows[0].Item.ID)
}

func TestList_emptyPageAndClamp(t *testing.T) {
	t.Parallel()

	_, h := newTestServer(t)
	resp := decode[ListResp[market.Notice]](t, do(t, h, http.MethodGet, "/notices?page=99", ""))
	assert.Equal(t, 1, resp.Page)
	assert.Len(t, resp.Rows, 2)

	resp = decode[ListResp[market.Notice]](t, do(t, h, http.MethodGet, "/notices?search=zzz", ""))
	assert.Equal(t, 0, resp.Total)
	assert.Equal(t, []int{}, resp.Window)
	require.Len(t, resp.Rows, 1)
	assert.Nil(t, resp.Rows[0].Item)
	assert.NotEmpty(t, resp.Rows[0].Placeholder)
}

func TestCounts(t *testing.T) {
	t.Parallel()

	_, h := newTestServer(t)
	counts := decode[map[string]int](t, do(t, h, http.MethodGet, "/products/counts", ""))
	assert.Equal(t, 6, counts["all"])
	assert.Equal(t, 1, counts["hot"])
	assert.Equal(t, 2, counts[string(market.ProductDeleted)])

	counts = decode[map[string]int](t, do(t, h, http.MethodGet, "/notices/counts", ""))
	assert.Equal(t, 2, counts["all"])
	assert.Equal(t, 1, counts[market.NoticeImportant])
	assert.Equal(t, 1, counts[market.NoticePopup])
	assert.Equal(t, 1, counts[market.NoticeGeneral])
}

func TestGet(t *testing.T) {
	t.Parallel()

	_, h := newTestServer(t)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/members/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/members/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/members/abc", "").Code)
}

func TestCreate_validation(t *testing.T) {
	t.Parallel()

	m, h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/notices", `{"title":"점검"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "content", decode[errorResp](t, rec).Field)
	assert.Equal(t, 2, m.Notices.Len())

	rec = do(t, h, http.MethodPost, "/notices", `{"title":"점검","content":"내일 점검합니다","is_important":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	n := decode[market.Notice](t, rec)
	assert.Equal(t, int64(3), n.ID)
	assert.Equal(t, "2024-03-25", n.CreatedAt)
	assert.Equal(t, int64(3), m.Notices.All()[0].ID)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/notices", `{`).Code)
}

func TestUpdate_mergesOntoStagedCopy(t *testing.T) {
	t.Parallel()

	m, h := newTestServer(t)
	rec := do(t, h, http.MethodPatch, "/inquiries/1", `{"title":"출금 지연 재문의"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	q, _ := m.Inquiries.Get(1)
	assert.Equal(t, "출금 지연 재문의", q.Title)
	assert.Contains(t, q.Content, "출금 신청")

	rec = do(t, h, http.MethodPatch, "/inquiries/1", `{"status":"보류"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "status", decode[errorResp](t, rec).Field)
	q, _ = m.Inquiries.Get(1)
	assert.Equal(t, market.InquiryWaiting, q.Status)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPatch, "/inquiries/1", `{"title":`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPatch, "/inquiries/99", `{}`).Code)
}

func TestDelete_softAndHard(t *testing.T) {
	t.Parallel()

	m, h := newTestServer(t)
	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/products/2", "").Code)
	p, ok := m.Products.Get(2)
	require.True(t, ok)
	assert.Equal(t, market.ProductDeleted, p.Status)

	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/notices/1", "").Code)
	_, ok = m.Notices.Get(1)
	assert.False(t, ok)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/notices/1", "").Code)
}

func TestLedger_isAppendOnly(t *testing.T) {
	t.Parallel()

	m, h := newTestServer(t)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodDelete, "/mileage/1", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodPatch, "/credits/1", `{}`).Code)

	rec := do(t, h, http.MethodPost, "/mileage", `{"user_id":"u1","nickname":"사과농부","type":"적립","amount":500}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "2024-03-25 09:30", decode[market.MileageEntry](t, rec).Date)
	assert.Equal(t, 4, m.Mileage.Len())
}

func TestBids(t *testing.T) {
	t.Parallel()

	_, h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/auctions/2/bids", `{"bidder_id":"b9","amount":35000}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/auctions/2/bids", `{"bidder_id":"b9","amount":40000}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(2), decode[market.Bid](t, rec).AuctionID)

	bids := decode[[]market.Bid](t, do(t, h, http.MethodGet, "/auctions/2/bids", ""))
	assert.Len(t, bids, 1)

	bids = decode[[]market.Bid](t, do(t, h, http.MethodGet, "/auctions/1/bids", ""))
	require.Len(t, bids, 2)
	assert.Equal(t, []int64{1, 2}, []int64{bids[0].ID, bids[1].ID})

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/auctions/99/bids", `{"bidder_id":"b9","amount":1}`).Code)
}

func TestHotProducts(t *testing.T) {
	t.Parallel()

	m, h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/products/hot", `{"ids":[2,3]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]market.Product](t, rec), 2)
	assert.Equal(t, 3, m.Products.Counts()[market.TabHot])

	assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodPost, "/products/hot", `{"ids":[]}`).Code)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, "/products/1/hot", "").Code)
	assert.Equal(t, 2, m.Products.Counts()[market.TabHot])
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/products/99/hot", "").Code)
}

func TestInquiryReplyAndStatus(t *testing.T) {
	t.Parallel()

	_, h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/inquiries/1/replies", `{"content":"처리 중입니다"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	q := decode[market.Inquiry](t, rec)
	assert.Equal(t, market.InquiryProgress, q.Status)
	assert.Len(t, q.Replies, 1)

	assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodPost, "/inquiries/1/replies", `{"content":""}`).Code)

	rec = do(t, h, http.MethodPut, "/inquiries/1/status", `{"status":"완료"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, market.InquiryDone, decode[market.Inquiry](t, rec).Status)
}

func TestMemberHistory(t *testing.T) {
	t.Parallel()

	_, h := newTestServer(t)
	resp := decode[ListResp[market.MemberEvent]](t, do(t, h, http.MethodGet, "/members/1/history?page=2", ""))
	assert.Equal(t, 6, resp.Total)
	assert.Equal(t, 2, resp.Page)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, 1, resp.Rows[0].Index)

	resp = decode[ListResp[market.MemberEvent]](t, do(t, h, http.MethodGet, "/members/1/history?type=registration", ""))
	assert.Equal(t, 2, resp.Total)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/members/9/history", "").Code)
}

func TestMemberProducts(t *testing.T) {
	t.Parallel()

	_, h := newTestServer(t)
	resp := decode[ListResp[market.ProductActivity]](t, do(t, h, http.MethodGet, "/members/1/products", ""))
	assert.Equal(t, 14, resp.Total)
	assert.Equal(t, market.MemberProductsPageSize, resp.PageSize)
	require.Len(t, resp.Rows, 10)
	assert.Equal(t, "명품 가방", resp.Rows[0].Item.ProductName)

	resp = decode[ListResp[market.ProductActivity]](t, do(t, h, http.MethodGet, "/members/1/products?page=2", ""))
	assert.Len(t, resp.Rows, 4)

	resp = decode[ListResp[market.ProductActivity]](t, do(t, h, http.MethodGet, "/members/1/products?type=won", ""))
	assert.Equal(t, 3, resp.Total)
	for _, row := range resp.Rows {
		assert.Equal(t, market.ActivityWon, row.Item.Type)
	}

	resp = decode[ListResp[market.ProductActivity]](t, do(t, h, http.MethodGet, "/members/1/products?search=103", ""))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "노트북", resp.Rows[0].Item.ProductName)

	resp = decode[ListResp[market.ProductActivity]](t, do(t, h, http.MethodGet, "/members/1/products?search="+url.QueryEscape("스마트"), ""))
	assert.Equal(t, 1, resp.Total)

	resp = decode[ListResp[market.ProductActivity]](t, do(t, h, http.MethodGet, "/members/2/products", ""))
	assert.Zero(t, resp.Total)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/members/9/products", "").Code)
}

func TestCategories(t *testing.T) {
	t.Parallel()

	m, h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/categories", `{"name":"  곡물 "}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	c := decode[market.Category](t, rec)
	assert.Equal(t, int64(3), c.ID)
	assert.Equal(t, "곡물", c.Name)
	assert.Equal(t, market.CategoryActive, c.Status)

	assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodPost, "/categories", `{"name":"  "}`).Code)

	rec = do(t, h, http.MethodPost, "/categories/1/subcategories", `{"name":"포도"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(104), decode[market.SubCategory](t, rec).ID)

	rec = do(t, h, http.MethodPost, "/categories/3/subcategories", `{"name":"쌀"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(301), decode[market.SubCategory](t, rec).ID)

	rec = do(t, h, http.MethodPatch, "/categories/1/subcategories/103", `{"name":"감귤","status":"active"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	sc := decode[market.SubCategory](t, rec)
	assert.Equal(t, "감귤", sc.Name)
	assert.Equal(t, market.CategoryActive, sc.Status)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPatch, "/categories/1/subcategories/999", `{"name":"x"}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodPatch, "/categories/1/subcategories/101", `{"name":""}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/categories/9/subcategories", `{"name":"x"}`).Code)

	got, _ := m.Categories.Get(1)
	assert.Len(t, got.SubCategories, 4)

	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/categories/2", "").Code)
	counts := decode[map[string]int](t, do(t, h, http.MethodGet, "/categories/counts", ""))
	assert.Equal(t, 1, counts[string(market.CategoryInactive)])
}

func TestAdmins(t *testing.T) {
	t.Parallel()

	_, h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/admins", `{"name":"박운영","email":"ops@example.com","role":"운영자"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	a := decode[market.AdminAccount](t, rec)
	assert.Equal(t, int64(3), a.ID)
	assert.Equal(t, market.AdminActive, a.Status)
	assert.Equal(t, "2024-03-25", a.CreatedAt)

	rec = do(t, h, http.MethodPost, "/admins", `{"name":"박운영","role":"운영자"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "email", decode[errorResp](t, rec).Field)

	resp := decode[ListResp[market.AdminAccount]](t, do(t, h, http.MethodGet, "/admins?search=editor", ""))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "이에디터", resp.Rows[0].Item.Name)

	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/admins/2", "").Code)
	got := decode[market.AdminAccount](t, do(t, h, http.MethodGet, "/admins/2", ""))
	assert.Equal(t, market.AdminInactive, got.Status)
}

func TestFAQCategories(t *testing.T) {
	t.Parallel()

	m, h := newTestServer(t)
	rec := do(t, h, http.MethodDelete, "/faq-categories/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[map[string]int](t, rec)["removed_faqs"])
	assert.Equal(t, 1, m.FAQs.Len())

	cats := decode[[]market.FAQCategory](t, do(t, h, http.MethodGet, "/faq-categories/active", ""))
	assert.Len(t, cats, 4)
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	_, h := newTestServer(t)
	s := decode[market.Summary](t, do(t, h, http.MethodGet, "/dashboard", ""))
	assert.Equal(t, 4, s.Auctions["all"])
	assert.Equal(t, 1, s.NewInquiries)
}
