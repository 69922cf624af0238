package repos

import (
	"pricewatch/internal/domain"

	"github.com/jmoiron/sqlx"
)

type TrackedRepo struct{ db *sqlx.DB }

func NewTrackedRepo(db *sqlx.DB) *TrackedRepo { return &TrackedRepo{db: db} }

func (r *TrackedRepo) Insert(url string) (domain.TrackedProduct, error) {
	const op = "repos.TrackedRepo.Insert"

	tx, err := r.db.Beginx()
	if err != nil {
		return domain.TrackedProduct{}, wrap(op, err)
	}
	defer func() { _ = tx.Rollback() }()

	t := domain.TrackedProduct{URL: url}
	q := tx.Rebind(`INSERT INTO tracked_products(url) VALUES (?) RETURNING id, created_at`)
	if err := tx.QueryRowx(q, url).Scan(&t.ID, &t.CreatedAt); err != nil {
		return domain.TrackedProduct{}, wrap(op, err)
	}
	if err := tx.Commit(); err != nil {
		return domain.TrackedProduct{}, wrap(op, err)
	}
	return t, nil
}

func (r *TrackedRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM tracked_products`)
	return n, err
}
