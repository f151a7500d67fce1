// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package opendata queries the NYC open-data violation datasets for one
// plate and returns raw records for normalization. The current dataset and
// every fiscal-year dataset are queried concurrently; the layer is
// stateless between invocations.
package opendata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"sync"

	"github.com/openplates/platewatch/internal/httputil"
	"github.com/openplates/platewatch/pkg/types"
)

// openDataBase is the Socrata resource root for the violation datasets.
// Declared as a var so tests can substitute an httptest server; config may
// also override it per client.
var openDataBase = "https://data.cityofnewyork.us/resource/"

// recordLimit caps rows per dataset query. Per-vehicle volumes are tens to
// low hundreds, so this is a safety bound, not pagination.
const recordLimit = 10000

// Dataset fetches raw violation records for one plate query from a single
// endpoint. Each dataset implements this per the Strategy pattern.
type Dataset interface {
	Name() string
	Fetch(ctx context.Context, q types.PlateQuery) ([]types.RawViolationRecord, error)
}

// Client holds shared HTTP state for all dataset queries.
type Client struct {
	HTTP *http.Client
	cfg  types.OpenDataConfig
	base string
}

// NewClient builds a Client from config. A zero MaxRetries falls back to
// the httputil default; an empty BaseURL uses the NYC open-data host.
func NewClient(cfg types.OpenDataConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = openDataBase
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	return &Client{HTTP: httpClient, cfg: cfg, base: base}
}

// Datasets returns the full endpoint set for violation queries: the
// current Open Parking and Camera Violations dataset plus one dataset per
// historical fiscal year, in fixed year order.
func (c *Client) Datasets() []Dataset {
	ds := []Dataset{&CurrentDataset{client: c}}
	years := make([]int, 0, len(fiscalYearDatasets))
	for y := range fiscalYearDatasets {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		ds = append(ds, &FiscalYearDataset{client: c, Year: y, ResourceID: fiscalYearDatasets[y]})
	}
	return ds
}

// FetchAll resolves medallion plates, then fans the query out to every
// dataset concurrently and joins. Any dataset failure fails the whole
// fetch with a classified *QueryError; sibling datasets still run to
// completion. Records are returned in dataset order.
func (c *Client) FetchAll(ctx context.Context, q types.PlateQuery) ([]types.RawViolationRecord, error) {
	resolved, err := c.ResolveMedallion(ctx, q)
	if err != nil {
		return nil, err
	}
	q = resolved

	datasets := c.Datasets()

	type result struct {
		idx     int
		records []types.RawViolationRecord
		err     error
	}

	ch := make(chan result, len(datasets))
	var wg sync.WaitGroup
	for i, d := range datasets {
		wg.Add(1)
		go func(i int, d Dataset) {
			defer wg.Done()
			records, err := d.Fetch(ctx, q)
			ch <- result{idx: i, records: records, err: err}
		}(i, d)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	byIdx := make([][]types.RawViolationRecord, len(datasets))
	errs := make([]error, len(datasets))
	for r := range ch {
		byIdx[r.idx] = r.records
		errs[r.idx] = r.err
	}

	// Surface the first failure in dataset order so error reporting is
	// deterministic.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var all []types.RawViolationRecord
	for _, records := range byIdx {
		all = append(all, records...)
	}
	return all, nil
}

// getJSON issues one retried GET against a dataset endpoint and decodes
// the response list into out. Terminal non-200 responses become a
// classified *QueryError carrying the query string.
func (c *Client) getJSON(ctx context.Context, dataset, query string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, query, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if c.cfg.AppToken != "" {
		req.Header.Set("X-App-Token", c.cfg.AppToken)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.cfg.MaxRetries)
	if err != nil {
		return &QueryError{Class: FailureUnknown, Dataset: dataset, Query: query, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &QueryError{
			Class:   ClassifyStatus(resp.StatusCode),
			Dataset: dataset,
			Query:   query,
			Status:  resp.StatusCode,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &QueryError{Class: FailureUnknown, Dataset: dataset, Query: query, Err: err}
	}
	return nil
}

// queryParams builds the shared parameter set for a records query.
func (c *Client) queryParams(where string) url.Values {
	params := url.Values{
		"$where": {where},
		"$limit": {fmt.Sprintf("%d", recordLimit)},
	}
	return params
}
