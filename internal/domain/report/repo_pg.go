package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepoPG fetches report bundles through the relatorio_usuario stored
// function. The function aggregates a patient's diaries, questionnaires
// and diagnoses into jsonb columns; their inner encoding is the upstream
// platform's business, not ours, so the columns are decoded leniently.
type RepoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) *RepoPG {
	return &RepoPG{pool: pool}
}

func (r *RepoPG) GetReportBundle(ctx context.Context, patientID string) (*RawBundle, error) {
	const q = `SELECT usuario_nome, usuario_email, usuario_data_nascimento,
	                  diarios, questionarios, diagnosticos
	           FROM relatorio_usuario($1)`

	var (
		name, email          *string
		birthDate            *time.Time
		diaries, quests, dxs []byte
	)
	err := r.pool.QueryRow(ctx, q, patientID).
		Scan(&name, &email, &birthDate, &diaries, &quests, &dxs)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query report bundle: %w", err)
	}

	bundle := &RawBundle{
		Diaries:        decodeCollection(diaries),
		Questionnaires: decodeCollection(quests),
		Diagnoses:      decodeCollection(dxs),
	}
	if name != nil {
		bundle.Name = *name
	}
	if email != nil {
		bundle.Email = *email
	}
	if birthDate != nil {
		bundle.BirthDate = *birthDate
	}
	return bundle, nil
}

// decodeCollection unmarshals a jsonb column into a generic value. A null
// column or undecodable payload becomes nil; the normalizer turns that
// into an empty sequence.
func decodeCollection(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v
}
