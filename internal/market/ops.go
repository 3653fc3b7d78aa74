package market

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ariefcatur/agri-admin/internal/listview"
)

var (
	ErrAuctionClosed = errors.New("auction is not accepting bids")
	ErrBidTooLow     = errors.New("bid must exceed the current price")
)

// Page sizes of the history and product sub-views of the member page.
const (
	MemberHistoryPageSize  = 5
	MemberProductsPageSize = 10
)

// PlaceBid appends a bid to an open auction and moves its current price.
func (m *Market) PlaceBid(auctionID int64, bid Bid) (Bid, error) {
	if err := listview.Required("bidder_id", bid.BidderID); err != nil {
		return Bid{}, err
	}
	_, err := m.Auctions.Update(auctionID, func(a *Auction) error {
		if a.Status != AuctionOpen {
			return fmt.Errorf("auction %d (%s): %w", a.ID, a.Status, ErrAuctionClosed)
		}
		if bid.Amount <= a.CurrentPrice {
			return fmt.Errorf("bid %d <= %d: %w", bid.Amount, a.CurrentPrice, ErrBidTooLow)
		}
		var last int64
		for _, b := range a.Bids {
			last = max(last, b.ID)
		}
		bid.ID = last + 1
		bid.AuctionID = a.ID
		bid.BidDate = m.stamp()
		bid.IsWinning = false
		a.Bids = append(a.Bids, bid)
		a.BidCount++
		a.CurrentPrice = bid.Amount
		return nil
	})
	if err != nil {
		return Bid{}, err
	}
	return bid, nil
}

// Bids lists the bids of one auction by bid time, newest first.
func (m *Market) Bids(auctionID int64) ([]Bid, error) {
	a, ok := m.Auctions.Get(auctionID)
	if !ok {
		return nil, fmt.Errorf("auction %d: %w", auctionID, listview.ErrNotFound)
	}
	out := slices.Clone(a.Bids)
	slices.SortStableFunc(out, func(x, y Bid) int {
		if c := cmp.Compare(y.BidDate, x.BidDate); c != 0 {
			return c
		}
		return cmp.Compare(y.ID, x.ID)
	})
	return out, nil
}

// SetHot flags or unflags products for the hot list. Unknown ids are
// skipped; the updated products are returned.
func (m *Market) SetHot(ids []int64, hot bool) []Product {
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.Products.Patch(id, func(p *Product) { p.IsHot = hot }); ok {
			out = append(out, p)
		}
	}
	return out
}

func (m *Market) handlerAction(action string) *HandlerAction {
	return &HandlerAction{
		AdminID:    m.admin.ID,
		AdminName:  m.admin.Name,
		ActionTime: m.stamp(),
		Action:     action,
	}
}

// ReplyInquiry appends an admin reply. A waiting inquiry moves to in
// progress; other statuses are kept.
func (m *Market) ReplyInquiry(id int64, content string) (Inquiry, error) {
	if err := listview.Required("content", content); err != nil {
		return Inquiry{}, err
	}
	return m.Inquiries.Update(id, func(q *Inquiry) error {
		var last int64
		for _, r := range q.Replies {
			last = max(last, r.ID)
		}
		q.Replies = append(q.Replies, Reply{
			ID:        last + 1,
			InquiryID: q.ID,
			AdminID:   m.admin.ID,
			AdminName: m.admin.Name,
			Content:   strings.TrimSpace(content),
			CreatedAt: m.stamp(),
		})
		q.IsNew = false
		q.Handler = m.handlerAction(ActionReply)
		if q.Status == InquiryWaiting {
			q.Status = InquiryProgress
		}
		return nil
	})
}

// ChangeInquiryStatus sets any listed status and records the acting admin.
func (m *Market) ChangeInquiryStatus(id int64, status InquiryStatus) (Inquiry, error) {
	if !ValidInquiryStatus(status) {
		return Inquiry{}, listview.OneOf("status", string(status), inquiryStatuses...)
	}
	return m.Inquiries.Update(id, func(q *Inquiry) error {
		q.Status = status
		q.Handler = m.handlerAction(string(status))
		return nil
	})
}

// MemberHistory pages through one member's history, optionally narrowed to
// a single event type.
func (m *Market) MemberHistory(id int64, typ HistoryType, page int) (listview.Page[MemberEvent], error) {
	v, ok := m.Members.Get(id)
	if !ok {
		return listview.Page[MemberEvent]{}, fmt.Errorf("member %d: %w", id, listview.ErrNotFound)
	}
	events := v.History
	if typ != "" && typ != listview.All && typ != listview.AllKo {
		events = make([]MemberEvent, 0, len(v.History))
		for _, e := range v.History {
			if e.Type == typ {
				events = append(events, e)
			}
		}
	}
	return listview.Paginate(events, page, MemberHistoryPageSize), nil
}

// MemberProducts pages through the products one member registered, bid on,
// won or lost. q.Kind narrows by activity type and q.Search matches the
// product name or id; rows come newest first.
func (m *Market) MemberProducts(id int64, q listview.Query, page int) (listview.Page[ProductActivity], error) {
	v, ok := m.Members.Get(id)
	if !ok {
		return listview.Page[ProductActivity]{}, fmt.Errorf("member %d: %w", id, listview.ErrNotFound)
	}
	rows := listview.Project(v.Products, activitySchema, q)
	return listview.Paginate(rows, page, MemberProductsPageSize), nil
}

// AddSubCategory appends an active sub-category to category catID. New ids
// continue from the largest sibling, or start at catID*100+1.
func (m *Market) AddSubCategory(catID int64, name string) (SubCategory, error) {
	name = strings.TrimSpace(name)
	if err := listview.Required("name", name); err != nil {
		return SubCategory{}, err
	}
	var sub SubCategory
	_, err := m.Categories.Update(catID, func(c *Category) error {
		next := c.ID*100 + 1
		for _, sc := range c.SubCategories {
			next = max(next, sc.ID+1)
		}
		sub = SubCategory{ID: next, Name: name, Status: CategoryActive}
		c.SubCategories = append(c.SubCategories, sub)
		return nil
	})
	if err != nil {
		return SubCategory{}, err
	}
	return sub, nil
}

// EditSubCategory renames a sub-category and sets its status. An empty
// status keeps the current one.
func (m *Market) EditSubCategory(catID, subID int64, name string, status CategoryStatus) (SubCategory, error) {
	name = strings.TrimSpace(name)
	if err := listview.Required("name", name); err != nil {
		return SubCategory{}, err
	}
	if status != "" {
		if err := oneOf("status", string(status), categoryStatuses); err != nil {
			return SubCategory{}, err
		}
	}
	var sub SubCategory
	_, err := m.Categories.Update(catID, func(c *Category) error {
		i := slices.IndexFunc(c.SubCategories, func(sc SubCategory) bool { return sc.ID == subID })
		if i < 0 {
			return fmt.Errorf("sub-category %d of %d: %w", subID, catID, listview.ErrNotFound)
		}
		c.SubCategories[i].Name = name
		if status != "" {
			c.SubCategories[i].Status = status
		}
		sub = c.SubCategories[i]
		return nil
	})
	if err != nil {
		return SubCategory{}, err
	}
	return sub, nil
}

// DeleteFAQCategory removes a category together with its FAQs. It returns
// the number of FAQs removed.
func (m *Market) DeleteFAQCategory(id int64) (int, error) {
	c, ok := m.FAQCategories.Get(id)
	if !ok {
		return 0, fmt.Errorf("faq category %d: %w", id, listview.ErrNotFound)
	}
	m.FAQCategories.RemoveByID(id)
	return m.FAQs.RemoveWhere(func(f FAQ) bool { return f.Category == c.Name }), nil
}

// ActiveFAQCategories lists enabled categories in display order.
func (m *Market) ActiveFAQCategories() []FAQCategory {
	all := listview.Project(m.FAQCategories.All(), m.FAQCategories.Schema(), listview.Query{})
	out := all[:0]
	for _, c := range all {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

// Summary is the dashboard view: per-entity counts keyed by status.
type Summary struct {
	Auctions     map[string]int `json:"auctions"`
	Products     map[string]int `json:"products"`
	Members      map[string]int `json:"members"`
	Contracts    map[string]int `json:"contracts"`
	Escrows      map[string]int `json:"escrows"`
	Inquiries    map[string]int `json:"inquiries"`
	NewInquiries int            `json:"new_inquiries"`
	Notices      int            `json:"notices"`
	FAQs         int            `json:"faqs"`
}

func (m *Market) Summary() Summary {
	s := Summary{
		Auctions:  m.Auctions.Counts(),
		Products:  m.Products.Counts(),
		Members:   m.Members.Counts(),
		Contracts: m.Contracts.Counts(),
		Escrows:   m.Escrows.Counts(),
		Inquiries: m.Inquiries.Counts(),
		Notices:   m.Notices.Len(),
		FAQs:      m.FAQs.Len(),
	}
	for _, q := range m.Inquiries.All() {
		if q.IsNew {
			s.NewInquiries++
		}
	}
	return s
}
