package market

import (
	"cmp"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ariefcatur/agri-admin/internal/listview"
)

// Entity names double as URL segments, Redis keys and audit entity tags.
const (
	EntityAuctions      = "auctions"
	EntityProducts      = "products"
	EntityMembers       = "members"
	EntityContracts     = "contracts"
	EntityEscrows       = "escrows"
	EntityNotices       = "notices"
	EntityFAQs          = "faqs"
	EntityFAQCategories = "faq-categories"
	EntityInquiries     = "inquiries"
	EntityMileage       = "mileage"
	EntityCredits       = "credits"
	EntityCategories    = "categories"
	EntityAdmins        = "admins"
)

func oneOf(field, v string, allowed []string) error {
	return listview.OneOf(field, v, allowed...)
}

func byID(a, b int64) int { return cmp.Compare(a, b) }

func (m *Market) auctionSchema() *listview.Schema[Auction] {
	return &listview.Schema[Auction]{
		Name:  EntityAuctions,
		ID:    func(a Auction) int64 { return a.ID },
		SetID: func(a *Auction, id int64) { a.ID = id },
		Clone: func(a Auction) Auction {
			a.Images = slices.Clone(a.Images)
			a.Bids = slices.Clone(a.Bids)
			if a.WinningBid != nil {
				w := *a.WinningBid
				a.WinningBid = &w
			}
			return a
		},
		Search: []func(Auction) string{func(a Auction) string { return a.Title }},
		Status: listview.Facet[Auction]{Field: func(a Auction) string { return string(a.Status) }},
		Kind:   listview.Facet[Auction]{Field: func(a Auction) string { return string(a.ProductType) }},
		OnCreate: func(a *Auction) {
			if a.Status == "" {
				a.Status = AuctionOpen
			}
			if a.CreatedAt == "" {
				a.CreatedAt = m.today()
			}
			if a.CurrentPrice == 0 {
				a.CurrentPrice = a.StartPrice
			}
			a.Bids = nil
			a.BidCount = 0
		},
		Validate: func(a Auction) error {
			return listview.FirstError(
				listview.Required("title", a.Title),
				listview.Required("seller", a.Seller),
				oneOf("status", string(a.Status), auctionStatuses),
				oneOf("product_type", string(a.ProductType), productTypes),
			)
		},
	}
}

func (m *Market) productSchema() *listview.Schema[Product] {
	return &listview.Schema[Product]{
		Name:  EntityProducts,
		ID:    func(p Product) int64 { return p.ID },
		SetID: func(p *Product, id int64) { p.ID = id },
		Clone: func(p Product) Product {
			p.Images = slices.Clone(p.Images)
			return p
		},
		Search: []func(Product) string{func(p Product) string { return p.Title }},
		Status: listview.Facet[Product]{
			Field: func(p Product) string { return string(p.Status) },
			Named: map[string]func(Product) bool{TabHot: func(p Product) bool { return p.IsHot }},
		},
		Kind:      listview.Facet[Product]{Field: func(p Product) string { return string(p.ProductType) }},
		Terminal:  string(ProductDeleted),
		SetStatus: func(p *Product, s string) { p.Status = ProductStatus(s) },
		OnCreate: func(p *Product) {
			if p.Status == "" {
				p.Status = ProductSelling
			}
			if p.RegisteredDate == "" {
				p.RegisteredDate = m.today()
			}
			p.CreatedAt = m.today()
		},
		Validate: func(p Product) error {
			return listview.FirstError(
				listview.Required("title", p.Title),
				listview.Required("seller", p.Seller),
				oneOf("status", string(p.Status), productStatuses),
				oneOf("product_type", string(p.ProductType), productTypes),
			)
		},
	}
}

func (m *Market) memberSchema() *listview.Schema[Member] {
	return &listview.Schema[Member]{
		Name:  EntityMembers,
		ID:    func(v Member) int64 { return v.ID },
		SetID: func(v *Member, id int64) { v.ID = id },
		Clone: func(v Member) Member {
			v.History = slices.Clone(v.History)
			v.Products = slices.Clone(v.Products)
			for i := range v.Products {
				v.Products[i].Details = maps.Clone(v.Products[i].Details)
			}
			return v
		},
		Search: []func(Member) string{
			func(v Member) string { return v.Username },
			func(v Member) string { return v.Name },
			func(v Member) string { return v.Nickname },
			func(v Member) string { return v.Email },
		},
		Status:    listview.Facet[Member]{Field: func(v Member) string { return string(v.Status) }},
		Terminal:  string(MemberWithdrawn),
		SetStatus: func(v *Member, s string) { v.Status = MemberStatus(s) },
		OnCreate: func(v *Member) {
			if v.Status == "" {
				v.Status = MemberActive
			}
			if v.JoinDate == "" {
				v.JoinDate = m.today()
			}
		},
		Validate: func(v Member) error {
			return listview.FirstError(
				listview.Required("username", v.Username),
				listview.Required("nickname", v.Nickname),
				oneOf("status", string(v.Status), memberStatuses),
			)
		},
	}
}

func (m *Market) contractSchema() *listview.Schema[Contract] {
	return &listview.Schema[Contract]{
		Name:  EntityContracts,
		ID:    func(c Contract) int64 { return c.ID },
		SetID: func(c *Contract, id int64) { c.ID = id },
		Search: []func(Contract) string{
			func(c Contract) string { return c.ContractNumber },
			func(c Contract) string { return c.Seller },
			func(c Contract) string { return c.Buyer },
			func(c Contract) string { return c.ProductName },
		},
		Status:    listview.Facet[Contract]{Field: func(c Contract) string { return string(c.Status) }},
		Kind:      listview.Facet[Contract]{Field: func(c Contract) string { return string(c.Type) }},
		Terminal:  string(ContractCancelled),
		SetStatus: func(c *Contract, s string) { c.Status = ContractStatus(s) },
		OnCreate: func(c *Contract) {
			if c.Status == "" {
				c.Status = ContractOpen
			}
			c.CreatedAt = m.today()
		},
		Validate: func(c Contract) error {
			return listview.FirstError(
				listview.Required("contract_number", c.ContractNumber),
				listview.Required("seller", c.Seller),
				listview.Required("buyer", c.Buyer),
				listview.Required("product_name", c.ProductName),
				oneOf("type", string(c.Type), productTypes),
				oneOf("status", string(c.Status), contractStatuses),
			)
		},
	}
}

func (m *Market) escrowSchema() *listview.Schema[Escrow] {
	return &listview.Schema[Escrow]{
		Name:  EntityEscrows,
		ID:    func(e Escrow) int64 { return e.ID },
		SetID: func(e *Escrow, id int64) { e.ID = id },
		Search: []func(Escrow) string{
			func(e Escrow) string { return e.EscrowNumber },
			func(e Escrow) string { return e.Seller },
			func(e Escrow) string { return e.Buyer },
			func(e Escrow) string { return e.ProductName },
		},
		Status:    listview.Facet[Escrow]{Field: func(e Escrow) string { return string(e.Status) }},
		Terminal:  string(EscrowCancelled),
		SetStatus: func(e *Escrow, s string) { e.Status = EscrowStatus(s) },
		OnCreate: func(e *Escrow) {
			if e.Status == "" {
				e.Status = EscrowAwaitingDeposit
			}
			e.CreatedAt = m.today()
		},
		Validate: func(e Escrow) error {
			return listview.FirstError(
				listview.Required("escrow_number", e.EscrowNumber),
				listview.Required("seller", e.Seller),
				listview.Required("buyer", e.Buyer),
				listview.Required("product_name", e.ProductName),
				oneOf("status", string(e.Status), escrowStatuses),
			)
		},
	}
}

func (m *Market) noticeSchema() *listview.Schema[Notice] {
	return &listview.Schema[Notice]{
		Name:  EntityNotices,
		ID:    func(n Notice) int64 { return n.ID },
		SetID: func(n *Notice, id int64) { n.ID = id },
		Search: []func(Notice) string{
			func(n Notice) string { return n.Title },
			func(n Notice) string { return n.Content },
		},
		Kind: listview.Facet[Notice]{Named: map[string]func(Notice) bool{
			NoticeGeneral:   func(n Notice) bool { return !n.IsImportant && !n.IsPopup },
			NoticeImportant: func(n Notice) bool { return n.IsImportant },
			NoticePopup:     func(n Notice) bool { return n.IsPopup },
		}},
		Prepend: true,
		OnCreate: func(n *Notice) {
			n.Author = m.admin.Name
			n.AuthorRole = m.admin.Role
			n.CreatedAt = m.today()
			n.Views = 0
		},
		Validate: func(n Notice) error {
			return listview.FirstError(
				listview.Required("title", n.Title),
				listview.Required("content", n.Content),
			)
		},
	}
}

func (m *Market) faqSchema() *listview.Schema[FAQ] {
	return &listview.Schema[FAQ]{
		Name:  EntityFAQs,
		ID:    func(f FAQ) int64 { return f.ID },
		SetID: func(f *FAQ, id int64) { f.ID = id },
		Search: []func(FAQ) string{
			func(f FAQ) string { return f.Question },
			func(f FAQ) string { return f.Answer },
		},
		Kind: listview.Facet[FAQ]{Field: func(f FAQ) string { return f.Category }},
		OnCreate: func(f *FAQ) {
			f.IsActive = true
			f.CreatedAt = m.today()
			if f.Order == 0 {
				f.Order = m.FAQs.Len() + 1
			}
		},
		Validate: func(f FAQ) error {
			return listview.FirstError(
				listview.Required("category", f.Category),
				listview.Required("question", f.Question),
				listview.Required("answer", f.Answer),
			)
		},
	}
}

func (m *Market) faqCategorySchema() *listview.Schema[FAQCategory] {
	return &listview.Schema[FAQCategory]{
		Name:   EntityFAQCategories,
		ID:     func(c FAQCategory) int64 { return c.ID },
		SetID:  func(c *FAQCategory, id int64) { c.ID = id },
		Search: []func(FAQCategory) string{func(c FAQCategory) string { return c.Name }},
		Sort:   func(a, b FAQCategory) int { return cmp.Compare(a.Order, b.Order) },
		OnCreate: func(c *FAQCategory) {
			c.IsActive = true
			if c.Order == 0 {
				c.Order = m.FAQCategories.Len() + 1
			}
		},
		Validate: func(c FAQCategory) error {
			return listview.Required("name", c.Name)
		},
	}
}

func (m *Market) inquirySchema() *listview.Schema[Inquiry] {
	return &listview.Schema[Inquiry]{
		Name:  EntityInquiries,
		ID:    func(q Inquiry) int64 { return q.ID },
		SetID: func(q *Inquiry, id int64) { q.ID = id },
		Clone: func(q Inquiry) Inquiry {
			q.Replies = slices.Clone(q.Replies)
			q.Files = slices.Clone(q.Files)
			if q.Handler != nil {
				h := *q.Handler
				q.Handler = &h
			}
			return q
		},
		Search: []func(Inquiry) string{
			func(q Inquiry) string { return q.Title },
			func(q Inquiry) string { return q.UserID },
			func(q Inquiry) string { return q.Content },
			func(q Inquiry) string { return q.Category },
		},
		Status:   listview.Facet[Inquiry]{Field: func(q Inquiry) string { return string(q.Status) }},
		Sort:     func(a, b Inquiry) int { return byID(a.ID, b.ID) },
		SortDesc: true,
		OnCreate: func(q *Inquiry) {
			if q.Status == "" {
				q.Status = InquiryWaiting
			}
			q.CreatedAt = m.stamp()
			q.IsNew = true
			q.Replies = nil
			q.Handler = nil
		},
		Validate: func(q Inquiry) error {
			return listview.FirstError(
				listview.Required("title", q.Title),
				listview.Required("content", q.Content),
				listview.Required("user_id", q.UserID),
				oneOf("status", string(q.Status), inquiryStatuses),
			)
		},
	}
}

func (m *Market) mileageSchema() *listview.Schema[MileageEntry] {
	return &listview.Schema[MileageEntry]{
		Name:  EntityMileage,
		ID:    func(e MileageEntry) int64 { return e.ID },
		SetID: func(e *MileageEntry, id int64) { e.ID = id },
		Search: []func(MileageEntry) string{
			func(e MileageEntry) string { return e.UserID },
			func(e MileageEntry) string { return e.Nickname },
			func(e MileageEntry) string { return e.Description },
		},
		Kind:     listview.Facet[MileageEntry]{Field: func(e MileageEntry) string { return string(e.Type) }},
		Sort:     func(a, b MileageEntry) int { return cmp.Compare(a.Date, b.Date) },
		SortDesc: true,
		OnCreate: func(e *MileageEntry) {
			e.Date = m.now().Format(MinuteLayout)
		},
		Validate: func(e MileageEntry) error {
			return listview.FirstError(
				listview.Required("user_id", e.UserID),
				oneOf("type", string(e.Type), mileageTypes),
			)
		},
	}
}

func (m *Market) creditSchema() *listview.Schema[CreditTransaction] {
	return &listview.Schema[CreditTransaction]{
		Name:  EntityCredits,
		ID:    func(c CreditTransaction) int64 { return c.ID },
		SetID: func(c *CreditTransaction, id int64) { c.ID = id },
		Search: []func(CreditTransaction) string{
			func(c CreditTransaction) string { return c.Username },
			func(c CreditTransaction) string { return c.Description },
		},
		Kind: listview.Facet[CreditTransaction]{Field: func(c CreditTransaction) string { return string(c.Type) }},
		OnCreate: func(c *CreditTransaction) {
			c.Date = m.now().Format(MinuteLayout)
		},
		Validate: func(c CreditTransaction) error {
			return listview.FirstError(
				listview.Required("username", c.Username),
				oneOf("type", string(c.Type), creditTypes),
			)
		},
	}
}

// activitySchema drives the product sub-view of a member: newest first,
// searchable by product name or id.
var activitySchema = &listview.Schema[ProductActivity]{
	Name: "member-products",
	ID:   func(a ProductActivity) int64 { return a.ID },
	Search: []func(ProductActivity) string{
		func(a ProductActivity) string { return a.ProductName },
		func(a ProductActivity) string { return strconv.FormatInt(a.ProductID, 10) },
	},
	Kind:     listview.Facet[ProductActivity]{Field: func(a ProductActivity) string { return string(a.Type) }},
	Sort:     func(a, b ProductActivity) int { return cmp.Compare(a.CreatedAt, b.CreatedAt) },
	SortDesc: true,
}

func (m *Market) categorySchema() *listview.Schema[Category] {
	return &listview.Schema[Category]{
		Name:  EntityCategories,
		ID:    func(c Category) int64 { return c.ID },
		SetID: func(c *Category, id int64) { c.ID = id },
		Clone: func(c Category) Category {
			c.SubCategories = slices.Clone(c.SubCategories)
			return c
		},
		Search: []func(Category) string{
			func(c Category) string { return c.Name },
			func(c Category) string {
				names := make([]string, len(c.SubCategories))
				for i, sc := range c.SubCategories {
					names[i] = sc.Name
				}
				return strings.Join(names, " ")
			},
		},
		Status:    listview.Facet[Category]{Field: func(c Category) string { return string(c.Status) }},
		Terminal:  string(CategoryInactive),
		SetStatus: func(c *Category, s string) { c.Status = CategoryStatus(s) },
		OnCreate: func(c *Category) {
			c.Name = strings.TrimSpace(c.Name)
			if c.Status == "" {
				c.Status = CategoryActive
			}
			c.ProductCount = 0
			c.SubCategories = nil
		},
		Validate: func(c Category) error {
			return listview.FirstError(
				listview.Required("name", c.Name),
				oneOf("status", string(c.Status), categoryStatuses),
			)
		},
	}
}

func (m *Market) adminSchema() *listview.Schema[AdminAccount] {
	return &listview.Schema[AdminAccount]{
		Name:  EntityAdmins,
		ID:    func(a AdminAccount) int64 { return a.ID },
		SetID: func(a *AdminAccount, id int64) { a.ID = id },
		Search: []func(AdminAccount) string{
			func(a AdminAccount) string { return a.Name },
			func(a AdminAccount) string { return a.Email },
			func(a AdminAccount) string { return a.Role },
		},
		Status:    listview.Facet[AdminAccount]{Field: func(a AdminAccount) string { return string(a.Status) }},
		Kind:      listview.Facet[AdminAccount]{Field: func(a AdminAccount) string { return a.Role }},
		Terminal:  string(AdminInactive),
		SetStatus: func(a *AdminAccount, s string) { a.Status = AdminStatus(s) },
		OnCreate: func(a *AdminAccount) {
			if a.Status == "" {
				a.Status = AdminActive
			}
			a.CreatedAt = m.today()
		},
		Validate: func(a AdminAccount) error {
			return listview.FirstError(
				listview.Required("name", a.Name),
				listview.Required("email", a.Email),
				listview.Required("role", a.Role),
				oneOf("status", string(a.Status), adminStatuses),
			)
		},
	}
}
