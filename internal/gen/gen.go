package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"demo/marketplace/internal/model"
)

const (
	seaportOrderType = 0 // FULL_OPEN
	itemTypeNative   = 0
	itemTypeERC721   = 2
)

func SeedOnce() { gofakeit.Seed(time.Now().UnixNano()) }

func Address() string { return gofakeit.Regex("0x[0-9a-f]{40}") }

func OrderHash() string { return gofakeit.Regex("0x[0-9a-f]{64}") }

// FakeOrder builds a complete submission with a plausible Seaport payload.
func FakeOrder(nftContract string) model.NewOrder {
	seller := Address()
	tokenID := fmt.Sprint(gofakeit.Number(1, 10000))
	price := decimal.NewFromFloat(gofakeit.Price(0.001, 5)).Round(6)
	start := time.Now().UTC()

	payload := map[string]any{
		"parameters": map[string]any{
			"offerer":   seller,
			"zone":      "0x0000000000000000000000000000000000000000",
			"orderType": seaportOrderType,
			"startTime": fmt.Sprint(start.Unix()),
			"endTime":   fmt.Sprint(start.Add(30 * 24 * time.Hour).Unix()),
			"salt":      gofakeit.Regex("0x[0-9a-f]{32}"),
			"offer": []map[string]any{{
				"itemType":             itemTypeERC721,
				"token":                nftContract,
				"identifierOrCriteria": tokenID,
				"startAmount":          "1",
				"endAmount":            "1",
			}},
			"consideration": []map[string]any{{
				"itemType":             itemTypeNative,
				"token":                "0x0000000000000000000000000000000000000000",
				"identifierOrCriteria": "0",
				"startAmount":          price.Shift(18).String(),
				"endAmount":            price.Shift(18).String(),
				"recipient":            seller,
			}},
			"totalOriginalConsiderationItems": 1,
		},
		"signature": gofakeit.Regex("0x[0-9a-f]{130}"),
	}
	raw, _ := json.Marshal(payload)

	return model.NewOrder{
		TokenID:       model.TokenID(tokenID),
		Price:         &price,
		SellerAddress: seller,
		SeaportOrder:  raw,
		OrderHash:     OrderHash(),
		Image:         gofakeit.URL() + "/" + tokenID + ".png",
	}
}

// SendOrder publishes one submission keyed by its orderHash.
func SendOrder(ctx context.Context, w *kafka.Writer, o model.NewOrder, source string) (int, error) {
	val, err := json.Marshal(o)
	if err != nil {
		return 0, fmt.Errorf("marshal order: %w", err)
	}
	return SendRaw(ctx, w, o.OrderHash, val, source)
}

// SendRaw publishes an already encoded submission.
func SendRaw(ctx context.Context, w *kafka.Writer, key string, val []byte, source string) (int, error) {
	if key == "" {
		key = "no-order-hash"
	}
	err := w.WriteMessages(ctx, Message(key, val, source))
	if err != nil {
		return 0, err
	}
	return 1, nil
}

func Message(key string, val []byte, source string) kafka.Message {
	return kafka.Message{
		Key:   []byte(key),
		Value: val,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "source", Value: []byte(source)},
		},
	}
}
