package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"pricewatch/internal/domain"
	"pricewatch/internal/jsonld"
	applog "pricewatch/internal/log"
	"pricewatch/internal/repos"
)

type LoaderService struct {
	Prods  *repos.ProductRepo
	Offers *repos.OfferRepo
}

func NewLoaderService(prods *repos.ProductRepo, offers *repos.OfferRepo) *LoaderService {
	return &LoaderService{Prods: prods, Offers: offers}
}

// LoadProduct inserts the product described by rec. It returns nil without an error
// when rec has no sku or the sku is already stored; both are logged as warnings.
func (s *LoaderService) LoadProduct(rec jsonld.Record) (*domain.Product, error) {
	sku := rec.String("sku")
	if sku == "" {
		applog.Warn(nil, "product.load.skip", nil, map[string]any{"reason": "missing sku", "record": rec})
		return nil, nil
	}

	p, err := s.Prods.Insert(domain.Product{
		SKU:         sku,
		Name:        rec.String("name"),
		URL:         rec.String("url"),
		Description: rec.String("description"),
		Brand:       rec.Brand(),
	})
	if errors.Is(err, repos.ErrConflict) {
		applog.Warn(nil, "product.load.conflict", err, map[string]any{"sku": sku})
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("services.LoadProduct: %w", err)
	}
	applog.Info(nil, "product.load", map[string]any{"sku": sku, "id": p.ID})
	return &p, nil
}

// LoadOffers attaches rec's offers to the already stored product with the same sku
// and returns how many were written.
//
// A list of offers only contributes entries whose own sku matches the product; a
// single offer object is written as is. Each offer commits on its own, so one bad
// offer does not stop the rest.
func (s *LoaderService) LoadOffers(rec jsonld.Record) (int, error) {
	sku := rec.String("sku")
	if sku == "" {
		applog.Warn(nil, "offer.load.no_product", nil, map[string]any{"reason": "missing sku"})
		return 0, nil
	}
	p, err := s.Prods.BySKU(sku)
	if errors.Is(err, sql.ErrNoRows) {
		applog.Warn(nil, "offer.load.no_product", nil, map[string]any{"sku": sku})
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("services.LoadOffers: %w", err)
	}

	shape, offers := rec.Offers()
	created := 0
	var errs []error
	for _, o := range offers {
		if shape == jsonld.OffersList && o.String("sku") != p.SKU {
			continue
		}
		price := parsePrice(o["price"])
		if !price.Valid {
			applog.Warn(nil, "offer.price.invalid", nil, map[string]any{"sku": p.SKU, "price": o["price"]})
		}
		offer, err := s.Offers.Insert(p.ID, price, o.String("availability"))
		switch {
		case errors.Is(err, repos.ErrConflict):
			applog.Warn(nil, "offer.load.conflict", err, map[string]any{"sku": p.SKU})
		case err != nil:
			applog.Error(nil, "offer.load.fail", err, map[string]any{"sku": p.SKU})
			errs = append(errs, err)
		default:
			created++
			applog.Info(nil, "offer.load", map[string]any{"sku": p.SKU, "id": offer.ID, "price": offer.Price.String()})
		}
	}
	if len(errs) > 0 {
		return created, fmt.Errorf("services.LoadOffers: %w", errors.Join(errs...))
	}
	return created, nil
}

// parsePrice accepts the string and numeric forms shops use. Anything else is invalid.
func parsePrice(v any) decimal.NullDecimal {
	var (
		d   decimal.Decimal
		err error
	)
	switch p := v.(type) {
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(p))
	case json.Number:
		d, err = decimal.NewFromString(p.String())
	case float64:
		d = decimal.NewFromFloat(p)
	default:
		return decimal.NullDecimal{}
	}
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
