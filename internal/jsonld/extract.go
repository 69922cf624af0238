// Package jsonld pulls schema.org JSON-LD blocks out of HTML pages.
package jsonld

import (
	"bytes"
	"encoding/json"
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"

	applog "pricewatch/internal/log"
)

const scriptType = "application/ld+json"

// Extract yields every JSON-LD object embedded in page. Blocks are decoded lazily as
// the sequence is consumed; blocks that are not valid JSON are skipped. Unparseable or
// block-free pages give an empty sequence.
func Extract(page []byte) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
		if err != nil {
			applog.Debug(nil, "jsonld.parse.fail", map[string]any{"err": err.Error()})
			return
		}
		doc.Find("script").EachWithBreak(func(i int, s *goquery.Selection) bool {
			if !strings.EqualFold(strings.TrimSpace(s.AttrOr("type", "")), scriptType) {
				return true
			}
			for _, rec := range decode(s.Text()) {
				if !yield(rec) {
					return false
				}
			}
			return true
		})
	}
}

func decode(raw string) []Record {
	raw = unwrap(raw)
	if raw == "" {
		return nil
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		applog.Debug(nil, "jsonld.block.malformed", map[string]any{"err": err.Error()})
		return nil
	}

	var out []Record
	switch t := v.(type) {
	case map[string]any:
		if graph, ok := t["@graph"].([]any); ok {
			out = appendObjects(out, graph)
		} else {
			out = append(out, Record(t))
		}
	case []any:
		out = appendObjects(out, t)
	}
	return out
}

func appendObjects(out []Record, items []any) []Record {
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// unwrap strips the comment and CDATA guards some CMSes put around inline scripts.
func unwrap(s string) string {
	s = strings.TrimSpace(s)
	for _, p := range []string{"<!--", "//<![CDATA[", "<![CDATA["} {
		s = strings.TrimSpace(strings.TrimPrefix(s, p))
	}
	for _, p := range []string{"-->", "//]]>", "]]>"} {
		s = strings.TrimSpace(strings.TrimSuffix(s, p))
	}
	return s
}
