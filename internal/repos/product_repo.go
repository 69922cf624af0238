package repos

import (
	"pricewatch/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
    id, sku, COALESCE(name,'') AS name, COALESCE(url,'') AS url,
    COALESCE(description,'') AS description, COALESCE(brand,'') AS brand, created_at`

// Insert writes p in its own transaction and fills in ID and CreatedAt.
// A duplicate SKU rolls the transaction back and returns an error wrapping ErrConflict.
func (r *ProductRepo) Insert(p domain.Product) (domain.Product, error) {
	const op = "repos.ProductRepo.Insert"

	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Product{}, wrap(op, err)
	}
	defer func() { _ = tx.Rollback() }()

	q := tx.Rebind(`
	  INSERT INTO products(sku, name, url, description, brand)
	  VALUES (?, ?, ?, ?, ?)
	  RETURNING id, created_at
	`)
	if err := tx.QueryRowx(q, p.SKU, nullIfEmpty(p.Name), nullIfEmpty(p.URL),
		nullIfEmpty(p.Description), nullIfEmpty(p.Brand)).Scan(&p.ID, &p.CreatedAt); err != nil {
		return domain.Product{}, wrap(op, err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Product{}, wrap(op, err)
	}
	return p, nil
}

// BySKU returns sql.ErrNoRows when no product carries sku.
func (r *ProductRepo) BySKU(sku string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, r.db.Rebind(`SELECT`+productCols+` FROM products WHERE sku = ?`), sku)
	return p, err
}

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT`+productCols+` FROM products ORDER BY id`)
	return out, err
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}
