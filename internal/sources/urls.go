package sources

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadURLs loads the whole list before anything is fetched. Only the first column
// of each CSV row is used; empty rows are skipped.
func ReadURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sources.ReadURLs: %w", err)
	}
	defer f.Close()
	return parseURLs(f)
}

func parseURLs(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var urls []string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return urls, nil
		}
		if err != nil {
			return nil, fmt.Errorf("sources.ReadURLs: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		if u := strings.TrimSpace(row[0]); u != "" {
			urls = append(urls, u)
		}
	}
}
