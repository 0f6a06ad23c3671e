package report

import "strconv"

// Field priority chains. The order encodes which stored field wins when a
// record carries several candidates; it mirrors the store's conventions
// and must not be reordered.
var (
	diaryContentChain     = []string{"texto", "conteudo", "descricao"}
	diagnosisContentChain = []string{"descricao", "texto", "diagnostico"}
)

// NormalizeDiaries converts the raw diary collection into canonical
// entries. Any malformed element degrades to a safe value; the result is
// never nil and normalization never fails.
func NormalizeDiaries(raw any) []DiaryEntry {
	items := asSequence(raw)
	out := make([]DiaryEntry, 0, len(items))

	for i, item := range items {
		rec := classifyRaw(item)
		entry := DiaryEntry{ID: i + 1, Date: SentinelDiaryDate}

		switch rec.Kind {
		case RawStructured:
			if id, ok := toInt(rec.Fields["id"]); ok {
				entry.ID = id
			}
			entry.Date = FormatDate(rec.Fields["data_hora"], SentinelDiaryDate)
			entry.Content = extractField(rec.Fields, diaryContentChain, serializeFields(rec.Fields))
		case RawEncodedText:
			entry.Date = FormatDate(rec.Fields["data_hora"], SentinelDiaryDate)
			// For re-encoded records the raw string itself is the last
			// resort, not a second serialization of it.
			entry.Content = extractField(rec.Fields, diaryContentChain[:2], rec.Text)
		case RawPlainText:
			entry.Content = rec.Text
		default:
			entry.Content = asString(rec.Value)
		}

		out = append(out, entry)
	}
	return out
}

// NormalizeQuestionnaires converts the raw questionnaire collection into
// canonical responses.
func NormalizeQuestionnaires(raw any) []QuestionnaireResponse {
	items := asSequence(raw)
	out := make([]QuestionnaireResponse, 0, len(items))

	for i, item := range items {
		rec := classifyRaw(item)

		fields := rec.Fields
		if rec.Kind == RawPlainText {
			// Unparseable strings are wrapped as bare text.
			fields = map[string]any{"texto": rec.Text}
		}

		resp := QuestionnaireResponse{
			ID:   i + 1,
			Date: FormatDate(fields["data"], SentinelTableDate),
		}
		if id, ok := toInt(fields["questionario_id"]); ok {
			resp.ID = id
		} else if id, ok := toInt(fields["id"]); ok {
			resp.ID = id
		}
		resp.Score = toNumber(fields["pontuacao"])
		resp.ConvertedScore = toNumber(fields["nota_convertida"])
		if mean, present := fields["media"]; present && mean != nil {
			m := toNumber(mean)
			resp.Mean = &m
		}
		if text, ok := fields["texto"].(string); ok {
			resp.Text = text
		}

		out = append(out, resp)
	}
	return out
}

// NormalizeDiagnoses converts the raw diagnosis collection into display
// strings. Only proper objects get field resolution; strings pass through
// as-is, including ones that happen to contain JSON.
func NormalizeDiagnoses(raw any) []DiagnosisEntry {
	items := asSequence(raw)
	out := make([]DiagnosisEntry, 0, len(items))

	for _, item := range items {
		rec := classifyRaw(item)
		switch rec.Kind {
		case RawStructured:
			out = append(out, extractField(rec.Fields, diagnosisContentChain, serializeFields(rec.Fields)))
		case RawEncodedText, RawPlainText:
			out = append(out, rec.Text)
		default:
			out = append(out, asString(rec.Value))
		}
	}
	return out
}

// asSequence coerces the raw collection slot to a slice. Absent or
// non-sequence input yields an empty sequence, never an error.
func asSequence(raw any) []any {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	return items
}

// extractField tries the chain's keys in order and returns the first
// non-empty value, or fallback when none matches.
func extractField(fields map[string]any, chain []string, fallback string) string {
	for _, key := range chain {
		v, present := fields[key]
		if !present || v == nil {
			continue
		}
		if s := asString(v); s != "" {
			return s
		}
	}
	return fallback
}

// toNumber coerces a stored value to float64 with a 0 fallback. The store
// delivers numbers, numeric strings, and garbage interchangeably.
func toNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return 0
}

// toInt coerces a stored identifier to int, reporting whether the value
// was usable.
func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, true
		}
	}
	return 0, false
}
