package validate

import (
	"strings"

	apperrors "demo/marketplace/internal/errors"
	"demo/marketplace/internal/model"
)

const (
	MsgMissingParameters = "Missing parameters"
	MsgMissingPurchase   = "Missing orderHash or buyerAddress"

	MaxListLimit = 500
)

type details []apperrors.ValidationDetail

func (d *details) required(field string, missing bool) {
	if missing {
		*d = append(*d, apperrors.ValidationDetail{Field: field, Message: "required"})
	}
}

func (d details) orNil(message string) error {
	if len(d) == 0 {
		return nil
	}
	return apperrors.NewValidationError(message, d...)
}

// Order checks the required fields of a submission. A zero price is valid,
// only an absent one is rejected.
func Order(o model.NewOrder) error {
	var d details
	d.required("tokenId", strings.TrimSpace(string(o.TokenID)) == "")
	d.required("price", o.Price == nil)
	d.required("sellerAddress", strings.TrimSpace(o.SellerAddress) == "")
	d.required("seaportOrder", model.PayloadMissing(o.SeaportOrder))
	return d.orNil(MsgMissingParameters)
}

func Purchase(orderHash, buyerAddress string) error {
	var d details
	d.required("orderHash", strings.TrimSpace(orderHash) == "")
	d.required("buyerAddress", strings.TrimSpace(buyerAddress) == "")
	return d.orNil(MsgMissingPurchase)
}

// Limit bounds a listing size to 1..MaxListLimit; non-positive means the maximum.
func Limit(limit int) int {
	if limit <= 0 || limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
