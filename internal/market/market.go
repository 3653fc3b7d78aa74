package market

import (
	"time"

	"github.com/ariefcatur/agri-admin/internal/listview"
)

// Market owns one store per back-office entity.
type Market struct {
	Auctions      *listview.Store[Auction]
	Products      *listview.Store[Product]
	Members       *listview.Store[Member]
	Contracts     *listview.Store[Contract]
	Escrows       *listview.Store[Escrow]
	Notices       *listview.Store[Notice]
	FAQs          *listview.Store[FAQ]
	FAQCategories *listview.Store[FAQCategory]
	Inquiries     *listview.Store[Inquiry]
	Mileage       *listview.Store[MileageEntry]
	Credits       *listview.Store[CreditTransaction]
	Categories    *listview.Store[Category]
	Admins        *listview.Store[AdminAccount]

	admin Admin
	now   func() time.Time
}

type Option func(*Market)

func WithClock(now func() time.Time) Option {
	return func(m *Market) { m.now = now }
}

// WithAdmin sets the operator stamped on notices and inquiry actions.
func WithAdmin(a Admin) Option {
	return func(m *Market) { m.admin = a }
}

var DefaultAdmin = Admin{ID: "admin1", Name: "관리자", Role: "일반관리자"}

func New(seed Seed, opts ...Option) *Market {
	m := &Market{admin: DefaultAdmin, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	m.Auctions = listview.NewStore(m.auctionSchema(), seed.Auctions)
	m.Products = listview.NewStore(m.productSchema(), seed.Products)
	m.Members = listview.NewStore(m.memberSchema(), seed.Members)
	m.Contracts = listview.NewStore(m.contractSchema(), seed.Contracts)
	m.Escrows = listview.NewStore(m.escrowSchema(), seed.Escrows)
	m.Notices = listview.NewStore(m.noticeSchema(), seed.Notices)
	m.FAQs = listview.NewStore(m.faqSchema(), seed.FAQs)
	m.FAQCategories = listview.NewStore(m.faqCategorySchema(), seed.FAQCategories)
	m.Inquiries = listview.NewStore(m.inquirySchema(), seed.Inquiries)
	m.Mileage = listview.NewStore(m.mileageSchema(), seed.Mileage)
	m.Credits = listview.NewStore(m.creditSchema(), seed.Credits)
	m.Categories = listview.NewStore(m.categorySchema(), seed.Categories)
	m.Admins = listview.NewStore(m.adminSchema(), seed.Admins)
	return m
}

func (m *Market) Admin() Admin { return m.admin }

func (m *Market) today() string { return m.now().Format(DateLayout) }
func (m *Market) stamp() string { return m.now().Format(DateTimeLayout) }
