package market

// Dates are kept as display strings, the same way the back office shows
// them. Lexical order is date order for these layouts.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	MinuteLayout   = "2006-01-02 15:04"
)

type Bid struct {
	ID             int64  `json:"id" yaml:"id"`
	AuctionID      int64  `json:"auction_id" yaml:"auction_id"` // back-reference only
	BidderID       string `json:"bidder_id" yaml:"bidder_id"`
	BidderNickname string `json:"bidder_nickname" yaml:"bidder_nickname"`
	Amount         int64  `json:"amount" yaml:"amount"`
	BidDate        string `json:"bid_date" yaml:"bid_date"`
	IsWinning      bool   `json:"is_winning" yaml:"is_winning"`
}

type WinningBid struct {
	Bidder         string `json:"bidder" yaml:"bidder"`
	BidderNickname string `json:"bidder_nickname" yaml:"bidder_nickname"`
	Amount         int64  `json:"amount" yaml:"amount"`
	Date           string `json:"date" yaml:"date"`
}

type Auction struct {
	ID             int64         `json:"id" yaml:"id"`
	Title          string        `json:"title" yaml:"title"`
	Seller         string        `json:"seller" yaml:"seller"`
	SellerNickname string        `json:"seller_nickname" yaml:"seller_nickname"`
	StartPrice     int64         `json:"start_price" yaml:"start_price"`
	CurrentPrice   int64         `json:"current_price" yaml:"current_price"`
	BidCount       int           `json:"bid_count" yaml:"bid_count"`
	CreatedAt      string        `json:"created_at" yaml:"created_at"`
	EndDate        string        `json:"end_date" yaml:"end_date"`
	Status         AuctionStatus `json:"status" yaml:"status"`
	Images         []string      `json:"images" yaml:"images"`
	ProductType    ProductType   `json:"product_type" yaml:"product_type"`
	CropType       string        `json:"crop_type" yaml:"crop_type"`
	Credit         int64         `json:"credit" yaml:"credit"`
	WinningBid     *WinningBid   `json:"winning_bid,omitempty" yaml:"winning_bid"`
	Bids           []Bid         `json:"bids" yaml:"bids"`
}

type Product struct {
	ID                  int64         `json:"id" yaml:"id"`
	Title               string        `json:"title" yaml:"title"`
	Seller              string        `json:"seller" yaml:"seller"`
	ProductType         ProductType   `json:"product_type" yaml:"product_type"`
	CropType            string        `json:"crop_type" yaml:"crop_type"`
	Price               int64         `json:"price" yaml:"price"`
	RegisteredDate      string        `json:"registered_date" yaml:"registered_date"`
	Address             string        `json:"address,omitempty" yaml:"address"`
	FarmSize            string        `json:"farm_size,omitempty" yaml:"farm_size"`
	PestStatus          string        `json:"pest_status,omitempty" yaml:"pest_status"`
	ExpectedHarvestDate string        `json:"expected_harvest_date" yaml:"expected_harvest_date"`
	Images              []string      `json:"images" yaml:"images"`
	SaleType            string        `json:"sale_type,omitempty" yaml:"sale_type"`
	Size                string        `json:"size,omitempty" yaml:"size"`
	SugarContent        string        `json:"sugar_content,omitempty" yaml:"sugar_content"`
	Acidity             string        `json:"acidity,omitempty" yaml:"acidity"`
	Status              ProductStatus `json:"status" yaml:"status"`
	IsHot               bool          `json:"is_hot" yaml:"is_hot"`
	CreatedAt           string        `json:"created_at" yaml:"created_at"`
}

type MemberEvent struct {
	Type          HistoryType `json:"type" yaml:"type"`
	Title         string      `json:"title" yaml:"title"`
	Date          string      `json:"date" yaml:"date"`
	Details       string      `json:"details" yaml:"details"`
	PreviousValue string      `json:"previous_value,omitempty" yaml:"previous_value"`
	NewValue      string      `json:"new_value,omitempty" yaml:"new_value"`
}

type Member struct {
	ID              int64             `json:"id" yaml:"id"`
	Username        string            `json:"username" yaml:"username"`
	Name            string            `json:"name" yaml:"name"`
	Nickname        string            `json:"nickname" yaml:"nickname"`
	Email           string            `json:"email" yaml:"email"`
	Phone           string            `json:"phone" yaml:"phone"`
	RegisteredItems int               `json:"registered_items" yaml:"registered_items"`
	SoldItems       int               `json:"sold_items" yaml:"sold_items"`
	PurchasedItems  int               `json:"purchased_items" yaml:"purchased_items"`
	JoinDate        string            `json:"join_date" yaml:"join_date"`
	LastLoginDate   string            `json:"last_login_date" yaml:"last_login_date"`
	Status          MemberStatus      `json:"status" yaml:"status"`
	History         []MemberEvent     `json:"history,omitempty" yaml:"history"`
	Products        []ProductActivity `json:"products,omitempty" yaml:"products"`
}

// ProductActivity is one entry of a member's product trail: something they
// registered, bid on, won or lost.
type ProductActivity struct {
	ID          int64          `json:"id" yaml:"id"`
	Type        ActivityType   `json:"type" yaml:"type"`
	ProductName string         `json:"product_name" yaml:"product_name"`
	ProductID   int64          `json:"product_id" yaml:"product_id"`
	Price       int64          `json:"price" yaml:"price"`
	Status      string         `json:"status" yaml:"status"`
	CreatedAt   string         `json:"created_at" yaml:"created_at"`
	Details     map[string]any `json:"details,omitempty" yaml:"details"`
}

type SubCategory struct {
	ID           int64          `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	ProductCount int            `json:"product_count" yaml:"product_count"`
	Status       CategoryStatus `json:"status" yaml:"status"`
}

// Category is a main product category with its sub-categories. Sub-category
// ids are unique within their parent.
type Category struct {
	ID            int64          `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	ProductCount  int            `json:"product_count" yaml:"product_count"`
	Status        CategoryStatus `json:"status" yaml:"status"`
	SubCategories []SubCategory  `json:"sub_categories,omitempty" yaml:"sub_categories"`
}

// AdminAccount is a back-office login managed from the settings page.
type AdminAccount struct {
	ID        int64       `json:"id" yaml:"id"`
	Name      string      `json:"name" yaml:"name"`
	Email     string      `json:"email" yaml:"email"`
	Status    AdminStatus `json:"status" yaml:"status"`
	Role      string      `json:"role" yaml:"role"`
	CreatedAt string      `json:"created_at" yaml:"created_at"`
}

type Contract struct {
	ID             int64          `json:"id" yaml:"id"`
	ContractNumber string         `json:"contract_number" yaml:"contract_number"`
	Type           ProductType    `json:"type" yaml:"type"`
	Seller         string         `json:"seller" yaml:"seller"`
	Buyer          string         `json:"buyer" yaml:"buyer"`
	ProductName    string         `json:"product_name" yaml:"product_name"`
	Amount         int64          `json:"amount" yaml:"amount"`
	Status         ContractStatus `json:"status" yaml:"status"`
	CreatedAt      string         `json:"created_at" yaml:"created_at"`
}

type Escrow struct {
	ID           int64        `json:"id" yaml:"id"`
	EscrowNumber string       `json:"escrow_number" yaml:"escrow_number"`
	Seller       string       `json:"seller" yaml:"seller"`
	Buyer        string       `json:"buyer" yaml:"buyer"`
	ProductName  string       `json:"product_name" yaml:"product_name"`
	Amount       int64        `json:"amount" yaml:"amount"`
	Status       EscrowStatus `json:"status" yaml:"status"`
	CreatedAt    string       `json:"created_at" yaml:"created_at"`
}

type Notice struct {
	ID          int64  `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Author      string `json:"author" yaml:"author"`
	AuthorRole  string `json:"author_role" yaml:"author_role"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
	Views       int    `json:"views" yaml:"views"`
	IsPopup     bool   `json:"is_popup" yaml:"is_popup"`
	IsImportant bool   `json:"is_important" yaml:"is_important"`
	Content     string `json:"content" yaml:"content"`
}

type FAQ struct {
	ID        int64  `json:"id" yaml:"id"`
	Category  string `json:"category" yaml:"category"`
	Question  string `json:"question" yaml:"question"`
	Answer    string `json:"answer" yaml:"answer"`
	Order     int    `json:"order" yaml:"order"`
	IsActive  bool   `json:"is_active" yaml:"is_active"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

type FAQCategory struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Order    int    `json:"order" yaml:"order"`
	IsActive bool   `json:"is_active" yaml:"is_active"`
}

type Reply struct {
	ID        int64  `json:"id" yaml:"id"`
	InquiryID int64  `json:"inquiry_id" yaml:"inquiry_id"`
	AdminID   string `json:"admin_id" yaml:"admin_id"`
	AdminName string `json:"admin_name" yaml:"admin_name"`
	Content   string `json:"content" yaml:"content"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

type Attachment struct {
	Name string `json:"name" yaml:"name"`
	Size string `json:"size" yaml:"size"`
	URL  string `json:"url" yaml:"url"`
}

// HandlerAction records the last admin who acted on an inquiry.
type HandlerAction struct {
	AdminID    string `json:"admin_id" yaml:"admin_id"`
	AdminName  string `json:"admin_name" yaml:"admin_name"`
	ActionTime string `json:"action_time" yaml:"action_time"`
	Action     string `json:"action" yaml:"action"`
}

type Inquiry struct {
	ID        int64          `json:"id" yaml:"id"`
	Title     string         `json:"title" yaml:"title"`
	Content   string         `json:"content" yaml:"content"`
	UserID    string         `json:"user_id" yaml:"user_id"`
	UserName  string         `json:"user_name" yaml:"user_name"`
	Category  string         `json:"category" yaml:"category"`
	CreatedAt string         `json:"created_at" yaml:"created_at"`
	Status    InquiryStatus  `json:"status" yaml:"status"`
	IsNew     bool           `json:"is_new" yaml:"is_new"`
	Replies   []Reply        `json:"replies" yaml:"replies"`
	Files     []Attachment   `json:"files" yaml:"files"`
	Handler   *HandlerAction `json:"handler,omitempty" yaml:"handler"`
	Answer    string         `json:"answer,omitempty" yaml:"answer"`
}

type MileageEntry struct {
	ID          int64       `json:"id" yaml:"id"`
	UserID      string      `json:"user_id" yaml:"user_id"`
	Nickname    string      `json:"nickname" yaml:"nickname"`
	Amount      int64       `json:"amount" yaml:"amount"`
	Type        MileageType `json:"type" yaml:"type"`
	Description string      `json:"description" yaml:"description"`
	Date        string      `json:"date" yaml:"date"`
}

type CreditTransaction struct {
	ID          int64      `json:"id" yaml:"id"`
	Username    string     `json:"username" yaml:"username"`
	Type        CreditType `json:"type" yaml:"type"`
	Amount      int64      `json:"amount" yaml:"amount"`
	Description string     `json:"description" yaml:"description"`
	Date        string     `json:"date" yaml:"date"`
}

// Admin identifies the operator stamped on inquiry actions and new notices.
type Admin struct {
	ID   string
	Name string
	Role string
}
