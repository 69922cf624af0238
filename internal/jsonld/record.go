package jsonld

import "encoding/json"

// Record is one decoded JSON-LD object. Numbers are kept as json.Number.
type Record map[string]any

// String returns the value at key when it is a string or a number, "" otherwise.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	}
	return ""
}

// Nested returns the object at key, or nil.
func (r Record) Nested(key string) Record {
	if m, ok := r[key].(map[string]any); ok {
		return Record(m)
	}
	return nil
}

// Brand reads brand.name. Some shops publish the brand as a bare string instead.
func (r Record) Brand() string {
	if b := r.Nested("brand"); b != nil {
		return b.String("name")
	}
	return r.String("brand")
}

type OffersShape int

const (
	OffersNone OffersShape = iota
	OffersList
	OffersSingle
)

// Offers exposes the "offers" field in whichever shape the page used.
// For OffersList, non-object elements are dropped.
func (r Record) Offers() (OffersShape, []Record) {
	switch v := r["offers"].(type) {
	case map[string]any:
		return OffersSingle, []Record{Record(v)}
	case []any:
		out := make([]Record, 0, len(v))
		for _, el := range v {
			if m, ok := el.(map[string]any); ok {
				out = append(out, Record(m))
			}
		}
		return OffersList, out
	}
	return OffersNone, nil
}
