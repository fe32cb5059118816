package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive Status = "active"
	StatusSold   Status = "sold"
)

// Order is a sell listing as persisted in the orders table.
type Order struct {
	ID                  string          `json:"id"`
	TokenID             string          `json:"tokenId"`
	Price               decimal.Decimal `json:"price"`
	NFTContract         string          `json:"nftContract"`
	MarketplaceContract string          `json:"marketplaceContract"`
	SellerAddress       string          `json:"sellerAddress"`
	BuyerAddress        *string         `json:"buyerAddress"`
	SeaportOrder        json.RawMessage `json:"seaportOrder"`
	OrderHash           *string         `json:"orderHash"`
	OnChain             bool            `json:"onChain"`
	Status              Status          `json:"status"`
	Image               *string         `json:"image"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// NewOrder is a submission coming from the HTTP API or the Kafka intake.
// Price is a pointer so that an absent price can be told apart from zero.
type NewOrder struct {
	TokenID       TokenID          `json:"tokenId"`
	Price         *decimal.Decimal `json:"price"`
	SellerAddress string           `json:"sellerAddress"`
	SeaportOrder  json.RawMessage  `json:"seaportOrder"`
	OrderHash     string           `json:"orderHash,omitempty"`
	Image         string           `json:"image,omitempty"`
}

// MarshalJSON writes the price as a JSON number without touching the
// package-wide decimal setting.
func (o Order) MarshalJSON() ([]byte, error) {
	type order Order
	return json.Marshal(struct {
		order
		Price json.Number `json:"price"`
	}{order(o), json.Number(o.Price.String())})
}

// OrderSummary is what a submission answers with.
type OrderSummary struct {
	ID        string          `json:"id"`
	TokenID   string          `json:"tokenId"`
	Price     decimal.Decimal `json:"price"`
	Seller    string          `json:"seller"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (s OrderSummary) MarshalJSON() ([]byte, error) {
	type summary OrderSummary
	return json.Marshal(struct {
		summary
		Price json.Number `json:"price"`
	}{summary(s), json.Number(s.Price.String())})
}

// UnmarshalJSON treats a null, empty-string or false price as absent so that
// it is reported as missing rather than malformed.
func (o *NewOrder) UnmarshalJSON(b []byte) error {
	type newOrder NewOrder
	var in struct {
		newOrder
		Price json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}

	*o = NewOrder(in.newOrder)
	switch string(bytes.TrimSpace(in.Price)) {
	case "", "null", `""`, "false":
		o.Price = nil
		return nil
	}

	var p decimal.Decimal
	if err := p.UnmarshalJSON(in.Price); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	o.Price = &p
	return nil
}

// TokenID accepts both JSON strings and JSON numbers. A numeric zero or
// false leaves it empty, which validation reports as missing.
type TokenID string

func (t *TokenID) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "null", "false":
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = TokenID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("tokenId: must be a string or a number")
	}
	if isZero(n) {
		return nil
	}
	*t = TokenID(n.String())
	return nil
}

func isZero(n json.Number) bool {
	f, err := n.Float64()
	return err == nil && f == 0
}
