// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for snapshot searches.
type QueryOptions struct {
	// Query is the FTS5 full-text search over display names and synonyms.
	Query string

	// Class and Datatype filter by exact value, ignoring case.
	Class    string
	Datatype string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Search queries the snapshot. Full-text queries are ranked by relevance;
// filter-only queries are sorted by display name.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Concept, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT c.id, c.external_id, c.display, c.class, c.datatype, c.url, c.names
			FROM concepts_fts
			JOIN concepts c ON c.rowid = concepts_fts.rowid
			WHERE concepts_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT c.id, c.external_id, c.display, c.class, c.datatype, c.url, c.names
			FROM concepts c
			WHERE 1=1`)
	}

	if opts.Class != "" {
		qb.WriteString(` AND lower(c.class) = lower(?)`)
		args = append(args, opts.Class)
	}
	if opts.Datatype != "" {
		qb.WriteString(` AND lower(c.datatype) = lower(?)`)
		args = append(args, opts.Datatype)
	}

	if useFTS {
		qb.WriteString(` ORDER BY concepts_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY c.display, c.id`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []Concept
	for rows.Next() {
		c, err := scanConcept(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// Get returns the concept whose id or external id equals id, ignoring case.
// ok is false when the snapshot does not hold it.
func (s *Store) Get(ctx context.Context, id string) (c Concept, ok bool, err error) {
	key := strings.ToLower(strings.TrimSpace(id))
	row := s.db.QueryRowContext(ctx,
		`SELECT id, external_id, display, class, datatype, url, names
		 FROM concepts WHERE id = ? OR external_id = ? LIMIT 1`, key, key)
	c, err = scanConcept(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Concept{}, false, nil
	}
	if err != nil {
		return Concept{}, false, err
	}
	return c, true, nil
}

// Count returns the number of concepts in the snapshot.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM concepts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting concepts: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConcept(r rowScanner) (Concept, error) {
	var (
		c          Concept
		externalID sql.NullString
		class      sql.NullString
		datatype   sql.NullString
		url        sql.NullString
		namesJSON  sql.NullString
	)
	if err := r.Scan(&c.ID, &externalID, &c.Display, &class, &datatype, &url, &namesJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Concept{}, err
		}
		return Concept{}, fmt.Errorf("scanning row: %w", err)
	}
	c.ExternalID = externalID.String
	c.Class = class.String
	c.Datatype = datatype.String
	c.URL = url.String
	if namesJSON.Valid {
		json.Unmarshal([]byte(namesJSON.String), &c.Names)
	}
	return c, nil
}
