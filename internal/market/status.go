package market

import "slices"

// Status transitions are free: any listed value may follow any other.
// Only membership is checked.

type AuctionStatus string

const (
	AuctionOpen   AuctionStatus = "진행중"
	AuctionWon    AuctionStatus = "낙찰"
	AuctionFailed AuctionStatus = "유찰"
)

type ProductType string

const (
	ProductField ProductType = "밭떼기"
	ProductRaw   ProductType = "원물"
)

type ProductStatus string

const (
	ProductSelling ProductStatus = "판매중"
	ProductSold    ProductStatus = "판매완료"
	ProductDeleted ProductStatus = "삭제"
)

// TabHot selects hot products regardless of status.
const TabHot = "hot"

type MemberStatus string

const (
	MemberActive    MemberStatus = "활성"
	MemberDormant   MemberStatus = "휴면"
	MemberSuspended MemberStatus = "정지"
	MemberWithdrawn MemberStatus = "탈퇴"
)

type HistoryType string

const (
	HistoryRegistration HistoryType = "registration"
	HistoryAuction      HistoryType = "auction"
	HistoryChat         HistoryType = "chat"
	HistoryFailed       HistoryType = "failed"
	HistoryNickname     HistoryType = "nickname"
)

type ContractStatus string

const (
	ContractDone      ContractStatus = "계약완료"
	ContractOpen      ContractStatus = "진행중"
	ContractCancelled ContractStatus = "취소"
)

type EscrowStatus string

const (
	EscrowAwaitingDeposit  EscrowStatus = "입금대기"
	EscrowDeposited        EscrowStatus = "입금완료"
	EscrowAwaitingShipment EscrowStatus = "출고대기"
	EscrowShipped          EscrowStatus = "출고완료"
	EscrowConfirmed        EscrowStatus = "구매확정"
	EscrowCancelled        EscrowStatus = "거래취소"
)

// Notice kinds are derived from the important and popup flags.
const (
	NoticeGeneral   = "일반공지"
	NoticeImportant = "중요공지"
	NoticePopup     = "팝업공지"
)

type InquiryStatus string

const (
	InquiryWaiting  InquiryStatus = "대기중"
	InquiryProgress InquiryStatus = "진행중"
	InquiryDone     InquiryStatus = "완료"
	InquiryRejected InquiryStatus = "거부"
)

// ActionReply is the handler action stamped when an admin replies.
const ActionReply = "답변"

type MileageType string

const (
	MileageEarn MileageType = "적립"
	MileageUse  MileageType = "사용"
)

type CreditType string

const (
	CreditCharge CreditType = "충전"
	CreditUse    CreditType = "사용"
	CreditRefund CreditType = "환불"
)

type ActivityType string

const (
	ActivityRegistered ActivityType = "registered"
	ActivityBidded     ActivityType = "bidded"
	ActivityWon        ActivityType = "won"
	ActivityFailed     ActivityType = "failed"
)

type CategoryStatus string

const (
	CategoryActive   CategoryStatus = "active"
	CategoryInactive CategoryStatus = "inactive"
)

type AdminStatus string

const (
	AdminActive   AdminStatus = "활성"
	AdminInactive AdminStatus = "비활성"
)

var (
	auctionStatuses  = []string{string(AuctionOpen), string(AuctionWon), string(AuctionFailed)}
	productTypes     = []string{string(ProductField), string(ProductRaw)}
	productStatuses  = []string{string(ProductSelling), string(ProductSold), string(ProductDeleted)}
	memberStatuses   = []string{string(MemberActive), string(MemberDormant), string(MemberSuspended), string(MemberWithdrawn)}
	historyTypes     = []string{string(HistoryRegistration), string(HistoryAuction), string(HistoryChat), string(HistoryFailed), string(HistoryNickname)}
	contractStatuses = []string{string(ContractDone), string(ContractOpen), string(ContractCancelled)}
	escrowStatuses   = []string{
		string(EscrowAwaitingDeposit), string(EscrowDeposited), string(EscrowAwaitingShipment),
		string(EscrowShipped), string(EscrowConfirmed), string(EscrowCancelled),
	}
	inquiryStatuses  = []string{string(InquiryWaiting), string(InquiryProgress), string(InquiryDone), string(InquiryRejected)}
	mileageTypes     = []string{string(MileageEarn), string(MileageUse)}
	creditTypes      = []string{string(CreditCharge), string(CreditUse), string(CreditRefund)}
	activityTypes    = []string{string(ActivityRegistered), string(ActivityBidded), string(ActivityWon), string(ActivityFailed)}
	categoryStatuses = []string{string(CategoryActive), string(CategoryInactive)}
	adminStatuses    = []string{string(AdminActive), string(AdminInactive)}
)

func ValidInquiryStatus(s InquiryStatus) bool { return slices.Contains(inquiryStatuses, string(s)) }
func ValidHistoryType(t HistoryType) bool     { return slices.Contains(historyTypes, string(t)) }
func ValidActivityType(t ActivityType) bool   { return slices.Contains(activityTypes, string(t)) }
