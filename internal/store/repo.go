package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "demo/marketplace/internal/errors"
	"demo/marketplace/internal/model"
	"demo/marketplace/internal/validate"
)

//go:generate mockgen -source=repo.go -destination=storemock/repo_mock.go -package=storemock

// Repository owns the persisted orders. Every mutation is a single statement
// so concurrent submissions and purchases never race on a read.
type Repository interface {
	UpsertOrder(ctx context.Context, o model.NewOrder) (model.OrderSummary, error)
	ListActiveOrders(ctx context.Context, limit int) ([]model.Order, error)
	MarkSold(ctx context.Context, orderHash, buyerAddress string) (model.Order, error)
}

// Contracts are the deployment-fixed addresses written on every new order.
type Contracts struct {
	NFT         string
	Marketplace string
}

type Repo struct {
	Pool      PgxIface
	contracts Contracts
	log       *zap.Logger
	newID     func() string
}

func New(pool PgxIface, contracts Contracts, log *zap.Logger) *Repo {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repo{
		Pool:      pool,
		contracts: contracts,
		log:       log,
		newID:     func() string { return ulid.Make().String() },
	}
}

const orderColumns = `id, token_id, price::text, nft_contract, marketplace_contract, seller_address,
	buyer_address, seaport_order, order_hash, on_chain, status, image, created_at, updated_at`

const upsertOrderSQL = `
	INSERT INTO orders (
		id, token_id, price, nft_contract, marketplace_contract,
		seller_address, seaport_order, order_hash, on_chain, status, image
	)
	VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, FALSE, 'active', $9)
	ON CONFLICT (order_hash) DO UPDATE SET
		price = EXCLUDED.price,
		seaport_order = EXCLUDED.seaport_order,
		status = 'active',
		updated_at = NOW()
	WHERE orders.status = 'active'
	RETURNING id, token_id, price::text, seller_address, created_at`

const listActiveOrdersSQL = `
	SELECT ` + orderColumns + `
	FROM orders
	WHERE status = 'active'
	ORDER BY created_at DESC
	LIMIT $1`

const markSoldSQL = `
	UPDATE orders
	SET on_chain = TRUE,
		buyer_address = $2,
		status = 'sold',
		updated_at = NOW()
	WHERE order_hash = $1
	RETURNING ` + orderColumns

// UpsertOrder inserts a new order, or refreshes price, payload and status of
// the active order that already carries the same orderHash. An order that is
// already sold is left untouched and reported as a conflict.
func (r *Repo) UpsertOrder(ctx context.Context, o model.NewOrder) (model.OrderSummary, error) {
	if err := validate.Order(o); err != nil {
		return model.OrderSummary{}, err
	}

	var (
		s     model.OrderSummary
		price string
	)
	err := r.Pool.QueryRow(ctx, upsertOrderSQL,
		r.newID(),
		strings.TrimSpace(string(o.TokenID)),
		o.Price.String(),
		r.contracts.NFT,
		r.contracts.Marketplace,
		strings.ToLower(o.SellerAddress),
		model.EncodePayload(o.SeaportOrder),
		nullIfEmpty(o.OrderHash),
		nullIfEmpty(o.Image),
	).Scan(&s.ID, &s.TokenID, &price, &s.Seller, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.OrderSummary{}, apperrors.NewConflictError("Order already sold")
		}
		return model.OrderSummary{}, apperrors.NewStoreError("upsert order", err)
	}

	if s.Price, err = decimal.NewFromString(price); err != nil {
		return model.OrderSummary{}, apperrors.NewStoreError("upsert order", fmt.Errorf("price %q: %w", price, err))
	}
	return s, nil
}

// ListActiveOrders returns active orders, newest first. A payload that cannot
// be parsed is handed back as its raw stored text instead of failing the list.
func (r *Repo) ListActiveOrders(ctx context.Context, limit int) ([]model.Order, error) {
	rows, err := r.Pool.Query(ctx, listActiveOrdersSQL, validate.Limit(limit))
	if err != nil {
		return nil, apperrors.NewStoreError("list active orders", err)
	}
	defer rows.Close()

	out := make([]model.Order, 0)
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, apperrors.NewStoreError("list active orders", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("list active orders", err)
	}
	return out, nil
}

// MarkSold records the purchase of the order identified by orderHash.
// Concurrent calls for the same hash are serialized by the row lock; the
// last one to commit determines the buyer.
func (r *Repo) MarkSold(ctx context.Context, orderHash, buyerAddress string) (model.Order, error) {
	if err := validate.Purchase(orderHash, buyerAddress); err != nil {
		return model.Order{}, err
	}

	row := r.Pool.QueryRow(ctx, markSoldSQL, orderHash, strings.ToLower(buyerAddress))
	o, err := r.scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, apperrors.NewNotFoundError("Order not found")
		}
		return model.Order{}, apperrors.NewStoreError("mark sold", err)
	}
	return o, nil
}

func (r *Repo) scanOrder(row pgx.Row) (model.Order, error) {
	var (
		o                      model.Order
		price, status, payload string
	)
	err := row.Scan(
		&o.ID, &o.TokenID, &price, &o.NFTContract, &o.MarketplaceContract, &o.SellerAddress,
		&o.BuyerAddress, &payload, &o.OrderHash, &o.OnChain, &status, &o.Image, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return model.Order{}, err
	}

	if o.Price, err = decimal.NewFromString(price); err != nil {
		return model.Order{}, fmt.Errorf("order %s price %q: %w", o.ID, price, err)
	}
	o.Status = model.Status(status)

	o.SeaportOrder, err = model.DecodePayload(payload)
	if err != nil {
		r.log.Warn("returning seaportOrder unparsed", zap.String("orderId", o.ID), zap.Error(err))
		o.SeaportOrder = model.RawPayload(payload)
	}
	return o, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
