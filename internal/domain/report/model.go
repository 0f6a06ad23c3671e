package report

// PatientIdentity holds the identity block rendered at the top of a
// report. BirthDate keeps whatever the store returned (time.Time, string
// or nil); it is formatted at render time with the header sentinel.
type PatientIdentity struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	BirthDate any    `json:"birth_date"`
}

// DiaryEntry is a normalized diary record. Date is already a display
// string: either DD/MM/YYYY or the diary sentinel.
type DiaryEntry struct {
	ID      int    `json:"id"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// QuestionnaireResponse is a normalized questionnaire record. Mean carries
// the store's pre-computed mean when present; AverageScore prefers it over
// ConvertedScore.
type QuestionnaireResponse struct {
	ID             int      `json:"id"`
	Date           string   `json:"date"`
	Score          float64  `json:"score"`
	ConvertedScore float64  `json:"converted_score"`
	Mean           *float64 `json:"mean,omitempty"`
	Text           string   `json:"text"`
}

// DiagnosisEntry is a diagnosis already resolved to its display string.
type DiagnosisEntry = string

// Report is the canonical, read-only report model consumed by the layout
// engine. All collections are non-nil after normalization.
type Report struct {
	Identity       PatientIdentity         `json:"identity"`
	Diaries        []DiaryEntry            `json:"diaries"`
	Questionnaires []QuestionnaireResponse `json:"questionnaires"`
	Diagnoses      []DiagnosisEntry        `json:"diagnoses"`
}

// AverageScore resolves a questionnaire's average out of 10: the holistic
// pre-computed mean wins over the derived converted score. The order is a
// business decision, not a convenience.
func AverageScore(q QuestionnaireResponse) float64 {
	if q.Mean != nil {
		return *q.Mean
	}
	return q.ConvertedScore
}
