package report

import (
	"context"
	"fmt"
)

// Service assembles canonical reports: one fetch, three normalizer
// passes, no retries, no caching. Each call produces an independent
// Report value.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Assemble builds the report for one patient. A missing patient surfaces
// as ErrNotFound; malformed record content never fails, it degrades
// inside the normalizer.
func (s *Service) Assemble(ctx context.Context, patientID string) (*Report, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient id is required")
	}

	bundle, err := s.repo.GetReportBundle(ctx, patientID)
	if err != nil {
		return nil, err
	}

	return &Report{
		Identity: PatientIdentity{
			Name:      bundle.Name,
			Email:     bundle.Email,
			BirthDate: bundle.BirthDate,
		},
		Diaries:        NormalizeDiaries(bundle.Diaries),
		Questionnaires: NormalizeQuestionnaires(bundle.Questionnaires),
		Diagnoses:      NormalizeDiagnoses(bundle.Diagnoses),
	}, nil
}
