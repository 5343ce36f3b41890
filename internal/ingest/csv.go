package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVExtractor reads raw rows from a headered CSV stream. Column names are
// normalized (lowercased, trimmed, spaces to underscores) so exports from
// different municipal portals map onto the same field names.
type CSVExtractor struct {
	r      *csv.Reader
	header []string
	line   int
	done   bool
}

// NewCSVExtractor creates a CSVExtractor over r. The first row is treated
// as the header.
func NewCSVExtractor(r io.Reader) *CSVExtractor {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &CSVExtractor{r: cr}
}

// ExtractBatch reads up to batchSize data rows. It returns an empty batch
// once the stream is exhausted.
func (e *CSVExtractor) ExtractBatch(ctx context.Context, batchSize int) ([]RawRow, error) {
	if e.done {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if e.header == nil {
		if err := e.readHeader(); err != nil {
			return nil, err
		}
	}

	rows := make([]RawRow, 0, batchSize)
	for len(rows) < batchSize {
		fields, err := e.r.Read()
		if err == io.EOF {
			e.done = true
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		e.line++
		row := RawRow{Line: e.line, Fields: make(map[string]string, len(e.header))}
		for i, name := range e.header {
			if i >= len(fields) {
				break
			}
			row.Fields[name] = strings.TrimSpace(fields[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (e *CSVExtractor) readHeader() error {
	fields, err := e.r.Read()
	if err == io.EOF {
		e.done = true
		e.header = []string{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}

	e.header = make([]string, len(fields))
	for i, f := range fields {
		e.header[i] = normalizeHeader(f)
	}
	e.line = 1
	return nil
}

// normalizeHeader canonicalizes a column name. The BOM strip handles CSVs
// exported from spreadsheet tools.
func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "﻿")
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}
