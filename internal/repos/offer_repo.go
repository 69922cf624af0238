package repos

import (
	"pricewatch/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type OfferRepo struct{ db *sqlx.DB }

func NewOfferRepo(db *sqlx.DB) *OfferRepo { return &OfferRepo{db: db} }

// Insert commits a single offer on its own. An invalid price is written as NULL
// so the NOT NULL constraint rejects it with ErrConflict rather than storing a default.
func (r *OfferRepo) Insert(productID int64, price decimal.NullDecimal, availability string) (domain.Offer, error) {
	const op = "repos.OfferRepo.Insert"

	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Offer{}, wrap(op, err)
	}
	defer func() { _ = tx.Rollback() }()

	o := domain.Offer{ProductID: productID, Price: price.Decimal, Availability: availability}
	q := tx.Rebind(`
	  INSERT INTO offers(price, availability, product_id)
	  VALUES (?, ?, ?)
	  RETURNING id, created_at
	`)
	if err := tx.QueryRowx(q, price, nullIfEmpty(availability), productID).Scan(&o.ID, &o.CreatedAt); err != nil {
		return domain.Offer{}, wrap(op, err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Offer{}, wrap(op, err)
	}
	return o, nil
}

func (r *OfferRepo) ListByProduct(productID int64) ([]domain.Offer, error) {
	var out []domain.Offer
	err := r.db.Select(&out, r.db.Rebind(`
	  SELECT id, product_id, price, COALESCE(availability,'') AS availability, created_at
	  FROM offers
	  WHERE product_id = ?
	  ORDER BY id
	`), productID)
	return out, err
}

func (r *OfferRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM offers`)
	return n, err
}
