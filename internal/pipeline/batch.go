// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/openplates/platewatch/internal/extract"
	"github.com/openplates/platewatch/pkg/types"
)

// BatchFile is the on-disk representation of a batch lookup run. Operators
// list the plates once and can re-run the file later without retyping.
type BatchFile struct {
	Lookups []BatchLookup `yaml:"lookups"`
}

// BatchLookup is one plate entry in a batch file.
type BatchLookup struct {
	Plate      string `yaml:"plate"`
	State      string `yaml:"state"`
	PlateTypes string `yaml:"plate_types,omitempty"`
}

// BatchResults holds the aggregates and run statistics written back out.
type BatchResults struct {
	Results []types.AggregateResult `yaml:"results"`
	Summary BatchSummary            `yaml:"summary"`
}

// BatchSummary stores run statistics and a timestamp.
type BatchSummary struct {
	Vehicles  int       `yaml:"vehicles"`
	Tickets   int       `yaml:"tickets"`
	Errors    []string  `yaml:"errors,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
}

// ReadBatchFile loads a batch file from disk.
func ReadBatchFile(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	var bf BatchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	return &bf, nil
}

// WriteBatchResults saves aggregates and run statistics to a YAML file.
func WriteBatchResults(path string, results []types.AggregateResult, errs []string) error {
	tickets := 0
	for _, r := range results {
		tickets += r.TotalCount
	}
	out := BatchResults{
		Results: results,
		Summary: BatchSummary{
			Vehicles:  len(results),
			Tickets:   tickets,
			Errors:    errs,
			Timestamp: time.Now(),
		},
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshaling batch results: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// RunBatch looks up every entry in the file through the pipeline. Entries
// fail independently; failures are collected as messages alongside the
// successful aggregates. Stored lookup rows for batch runs are written
// non-countable.
func (p *Pipeline) RunBatch(ctx context.Context, bf *BatchFile) ([]types.AggregateResult, []string) {
	var results []types.AggregateResult
	var errs []string

	for _, entry := range bf.Lookups {
		ref := types.VehicleReference{
			OriginalText: entry.State + ":" + entry.Plate,
			Plate:        entry.Plate,
			State:        entry.State,
			Valid:        true,
		}
		if entry.PlateTypes != "" {
			ref.PlateTypes = strings.Split(entry.PlateTypes, ",")
		}
		if !extract.IsValidState(entry.State) {
			errs = append(errs, fmt.Sprintf("%s:%s: unrecognized state code", entry.State, entry.Plate))
			continue
		}

		req := NewBatchRequest(entry.Plate, entry.State, entry.PlateTypes)
		q := types.NewPlateQuery(ref, req.CreatedAt(), req.UserID())

		agg, err := p.Lookup(ctx, q)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s:%s: %v", entry.State, entry.Plate, err))
			continue
		}
		if p.store != nil {
			p.persist(ctx, q, agg, req, nil)
		}
		results = append(results, agg)
	}
	return results, errs
}
