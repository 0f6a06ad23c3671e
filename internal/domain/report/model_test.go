package report

import "testing"

func TestAverageScore_MeanWinsOverConvertedScore(t *testing.T) {
	mean := 7.5
	q := QuestionnaireResponse{Mean: &mean, ConvertedScore: 3}
	if got := AverageScore(q); got != 7.5 {
		t.Errorf("AverageScore = %v, want 7.5", got)
	}
}

func TestAverageScore_FallsBackToConvertedScore(t *testing.T) {
	q := QuestionnaireResponse{ConvertedScore: 3}
	if got := AverageScore(q); got != 3 {
		t.Errorf("AverageScore = %v, want 3", got)
	}
}

func TestAverageScore_DefaultsToZero(t *testing.T) {
	if got := AverageScore(QuestionnaireResponse{}); got != 0 {
		t.Errorf("AverageScore = %v, want 0", got)
	}
}

func TestAverageScore_ZeroMeanStillWins(t *testing.T) {
	// An explicit zero mean is a value, not an absence.
	zero := 0.0
	q := QuestionnaireResponse{Mean: &zero, ConvertedScore: 9}
	if got := AverageScore(q); got != 0 {
		t.Errorf("AverageScore = %v, want 0", got)
	}
}

func TestFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Maria Silva", "Relatorio-Maria_Silva.pdf"},
		{"  João  da\tSilva ", "Relatorio-João_da_Silva.pdf"},
		{"Ana", "Relatorio-Ana.pdf"},
		{"", "Relatorio-usuario.pdf"},
		{"   ", "Relatorio-usuario.pdf"},
	}
	for _, tc := range cases {
		if got := FileName(tc.in); got != tc.want {
			t.Errorf("FileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
