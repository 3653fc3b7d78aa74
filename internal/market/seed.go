package market

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed/seed.yaml
var defaultSeed []byte

// Seed is the initial content of every store.
type Seed struct {
	Auctions      []Auction           `yaml:"auctions"`
	Products      []Product           `yaml:"products"`
	Members       []Member            `yaml:"members"`
	Contracts     []Contract          `yaml:"contracts"`
	Escrows       []Escrow            `yaml:"escrows"`
	Notices       []Notice            `yaml:"notices"`
	FAQs          []FAQ               `yaml:"faqs"`
	FAQCategories []FAQCategory       `yaml:"faq_categories"`
	Inquiries     []Inquiry           `yaml:"inquiries"`
	Mileage       []MileageEntry      `yaml:"mileage"`
	Credits       []CreditTransaction `yaml:"credits"`
	Categories    []Category          `yaml:"categories"`
	Admins        []AdminAccount      `yaml:"admins"`
}

// LoadSeed reads seed data from path, or the bundled sample data when path
// is empty.
func LoadSeed(path string) (Seed, error) {
	b := defaultSeed
	if path != "" {
		var err error
		if b, err = os.ReadFile(path); err != nil {
			return Seed{}, fmt.Errorf("read seed: %w", err)
		}
	}
	return ParseSeed(b)
}

func ParseSeed(b []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	s.link()
	return s, nil
}

// link fills child back-references that the seed file leaves implicit.
func (s *Seed) link() {
	for i := range s.Auctions {
		for j := range s.Auctions[i].Bids {
			s.Auctions[i].Bids[j].AuctionID = s.Auctions[i].ID
		}
	}
	for i := range s.Inquiries {
		for j := range s.Inquiries[i].Replies {
			s.Inquiries[i].Replies[j].InquiryID = s.Inquiries[i].ID
		}
	}
}
