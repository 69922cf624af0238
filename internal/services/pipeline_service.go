package services

import (
	"github.com/google/uuid"

	"pricewatch/internal/jsonld"
	applog "pricewatch/internal/log"
)

type Fetcher interface {
	Fetch(url string) ([]byte, bool)
}

// Summary counts what one ingestion run did.
type Summary struct {
	RunID    string `json:"run_id"`
	URLs     int    `json:"urls"`
	Fetched  int    `json:"fetched"`
	Records  int    `json:"records"`
	Products int    `json:"products"`
	Offers   int    `json:"offers"`
	Failures int    `json:"failures"`
}

type PipelineService struct {
	Fetch  Fetcher
	Loader *LoaderService
}

func NewPipelineService(f Fetcher, loader *LoaderService) *PipelineService {
	return &PipelineService{Fetch: f, Loader: loader}
}

// Run processes urls one after another. Nothing here aborts the batch: pages that
// cannot be fetched or records that cannot be stored are logged and skipped.
// Reporting the returned Summary is left to the caller.
func (s *PipelineService) Run(urls []string) Summary {
	sum := Summary{RunID: uuid.NewString(), URLs: len(urls)}
	applog.Info(nil, "ingest.start", map[string]any{"run_id": sum.RunID, "urls": len(urls)})

	for _, url := range urls {
		page, ok := s.Fetch.Fetch(url)
		if !ok {
			continue
		}
		sum.Fetched++

		for rec := range jsonld.Extract(page) {
			sum.Records++
			applog.Debug(nil, "ingest.record", map[string]any{"run_id": sum.RunID, "url": url, "record": rec})

			p, err := s.Loader.LoadProduct(rec)
			if err != nil {
				sum.Failures++
				applog.Error(nil, "ingest.product.fail", err, map[string]any{"run_id": sum.RunID, "url": url})
				continue
			}
			if p != nil {
				sum.Products++
			}

			if rec.String("sku") == "" {
				continue
			}
			n, err := s.Loader.LoadOffers(rec)
			sum.Offers += n
			if err != nil {
				sum.Failures++
				applog.Error(nil, "ingest.offers.fail", err, map[string]any{"run_id": sum.RunID, "url": url})
			}
		}
	}

	return sum
}
