package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dkurek/ofertownik/internal/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// EstimateStore reads and writes estimates and their version history.
type EstimateStore struct {
	db *sql.DB
}

// NewEstimateStore wraps an open database handle.
func NewEstimateStore(db *sql.DB) *EstimateStore {
	return &EstimateStore{db: db}
}

// EstimateSummary is one row of the estimate list view.
type EstimateSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ClientName string `json:"client_name"`
	UpdatedAt  string `json:"updated_at"`
}

// SaveEstimate inserts or updates an estimate. The full estimate is
// stored as a JSON document; the indexed columns only serve list queries.
func (s *EstimateStore) SaveEstimate(e model.Estimate) error {
	if e.ID == "" {
		return errors.New("estimate has no id")
	}
	doc, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal estimate: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO estimates (id, title, client_name, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			client_name = excluded.client_name,
			document = excluded.document,
			updated_at = excluded.updated_at
	`, e.ID, e.Title, e.Client.Name, string(doc), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save estimate %s: %w", e.ID, err)
	}
	return nil
}

// GetEstimate loads one estimate by ID.
func (s *EstimateStore) GetEstimate(id string) (model.Estimate, error) {
	var doc string
	err := s.db.QueryRow(`SELECT document FROM estimates WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Estimate{}, fmt.Errorf("estimate %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Estimate{}, fmt.Errorf("load estimate %s: %w", id, err)
	}
	var e model.Estimate
	if err := json.Unmarshal([]byte(doc), &e); err != nil {
		return model.Estimate{}, fmt.Errorf("parse estimate %s: %w", id, err)
	}
	return e, nil
}

// ListEstimates returns summaries of all stored estimates, most recently
// updated first.
func (s *EstimateStore) ListEstimates() ([]EstimateSummary, error) {
	rows, err := s.db.Query(`
		SELECT id, title, client_name, updated_at
		FROM estimates
		ORDER BY updated_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	defer rows.Close()

	var out []EstimateSummary
	for rows.Next() {
		var sum EstimateSummary
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.ClientName, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan estimate row: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// DeleteEstimate removes an estimate and, via the foreign key cascade,
// its stored versions.
func (s *EstimateStore) DeleteEstimate(id string) error {
	res, err := s.db.Exec(`DELETE FROM estimates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete estimate %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("estimate %s: %w", id, ErrNotFound)
	}
	return nil
}

// SaveHistory replaces the stored version history of one estimate with
// the given one. Used after snapshots, pruning and deletions so the
// database always mirrors the in-memory history.
func (s *EstimateStore) SaveHistory(hist model.VersionHistory) error {
	if hist.EstimateID == "" {
		return errors.New("history has no estimate id")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM estimate_versions WHERE estimate_id = ?`, hist.EstimateID); err != nil {
		return fmt.Errorf("clear history for %s: %w", hist.EstimateID, err)
	}
	for _, v := range hist.Versions {
		doc, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal version %d: %w", v.VersionNumber, err)
		}
		_, err = tx.Exec(`
			INSERT INTO estimate_versions
				(id, estimate_id, version_number, author, description, checksum, snapshot, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, v.ID, hist.EstimateID, v.VersionNumber, v.Author, v.Description, v.Checksum,
			string(doc), v.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("insert version %d for %s: %w", v.VersionNumber, hist.EstimateID, err)
		}
	}
	return tx.Commit()
}

// LoadHistory reads the stored version history of one estimate. An
// estimate without versions yields an empty history.
func (s *EstimateStore) LoadHistory(estimateID string) (model.VersionHistory, error) {
	rows, err := s.db.Query(`
		SELECT snapshot FROM estimate_versions
		WHERE estimate_id = ?
		ORDER BY version_number
	`, estimateID)
	if err != nil {
		return model.VersionHistory{}, fmt.Errorf("load history for %s: %w", estimateID, err)
	}
	defer rows.Close()

	hist := model.VersionHistory{EstimateID: estimateID}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return model.VersionHistory{}, fmt.Errorf("scan version row: %w", err)
		}
		var v model.Version
		if err := json.Unmarshal([]byte(doc), &v); err != nil {
			return model.VersionHistory{}, fmt.Errorf("parse version for %s: %w", estimateID, err)
		}
		hist.Versions = append(hist.Versions, v)
	}
	return hist, rows.Err()
}
