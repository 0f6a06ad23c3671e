package render

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"github.com/SabrinaDeveloper/mindtracking-api/internal/domain/report"
	"github.com/SabrinaDeveloper/mindtracking-api/internal/platform/storage"
)

const (
	pageMargin     = 50
	tableRowHeight = 24
	summaryGap     = 10
	summaryHeight  = 20
)

var tableColWidths = [3]float64{120, 180, 150}

var (
	colorTableHeader = [3]int{5, 24, 133}    // #051885
	colorZebraEven   = [3]int{243, 244, 246} // #F3F4F6
	colorZebraOdd    = [3]int{224, 231, 239} // #E0E7EF
)

// Generator renders reports with fpdf and persists them to the artifact
// store. One Render call is one document; the generator holds no mutable
// state across calls.
type Generator struct {
	store    storage.Store
	logoPath string
	logger   zerolog.Logger
	compress bool
}

func NewGenerator(store storage.Store, logoPath string, logger zerolog.Logger) *Generator {
	return &Generator{store: store, logoPath: logoPath, logger: logger, compress: true}
}

// Render draws the report and saves it under a name derived from the
// patient's display name. Returns the stored artifact's location.
func (g *Generator) Render(ctx context.Context, rep *report.Report) (string, error) {
	doc, err := g.buildDoc(rep)
	if err != nil {
		return "", fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}

	location, err := g.store.Save(ctx, report.FileName(rep.Identity.Name), &buf)
	if err != nil {
		return "", fmt.Errorf("store report: %w", err)
	}
	return location, nil
}

func (g *Generator) buildDoc(rep *report.Report) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(g.compress)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	g.drawHeader(pdf, tr, rep.Identity)
	g.drawDiaries(pdf, tr, rep.Diaries)
	g.drawDiagnoses(pdf, tr, rep.Diagnoses)
	g.drawQuestionnaires(pdf, tr, rep.Questionnaires)

	if pdf.Err() {
		return nil, pdf.Error()
	}
	return pdf, nil
}

func (g *Generator) drawHeader(pdf *fpdf.Fpdf, tr func(string) string, id report.PatientIdentity) {
	if g.logoPath != "" {
		if _, err := os.Stat(g.logoPath); err == nil {
			pdf.ImageOptions(g.logoPath, 90, pdf.GetY(), 60, 60, false, fpdf.ImageOptions{}, 0, "")
		} else {
			g.logger.Warn().Str("logo_path", g.logoPath).Msg("branding image missing, rendering without logo")
		}
	}

	pdf.SetFont("Times", "B", 20)
	pdf.CellFormat(0, 24, tr("Relatório de Saúde Gerado pela"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 24, "MindTracking", "", 1, "C", false, 0, "")
	pdf.Ln(24)

	name := id.Name
	if name == "" {
		name = "Sem nome"
	}
	email := id.Email
	if email == "" {
		email = "Sem e-mail"
	}

	pdf.SetFont("Times", "", 12)
	pdf.CellFormat(0, 16, tr("Nome: "+name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 16, tr("E-mail: "+email), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 16, tr("Data de Nascimento: "+report.FormatDate(id.BirthDate, report.SentinelHeaderDate)), "", 1, "L", false, 0, "")
	pdf.Ln(18)

	pdf.SetFont("Courier", "", 16)
	pdf.CellFormat(0, 20, tr("Relatório"), "", 1, "C", false, 0, "")
	pdf.Ln(10)
}

func (g *Generator) drawDiaries(pdf *fpdf.Fpdf, tr func(string) string, diaries []report.DiaryEntry) {
	pdf.SetFont("Times", "", 14)
	pdf.CellFormat(0, 18, tr("Diários"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Times", "", 12)
	if len(diaries) == 0 {
		pdf.SetX(pageMargin + 20)
		pdf.CellFormat(0, 16, tr("Nenhum diário registrado."), "", 1, "L", false, 0, "")
		pdf.Ln(12)
		return
	}

	for i, d := range diaries {
		pdf.CellFormat(0, 16, tr(fmt.Sprintf("Diário %d - %s:", i+1, d.Date)), "", 1, "L", false, 0, "")
		pdf.SetLeftMargin(pageMargin + 20)
		pdf.SetX(pageMargin + 20)
		pdf.MultiCell(0, 14, tr(d.Content), "", "J", false)
		pdf.SetLeftMargin(pageMargin)
		pdf.Ln(6)
	}
	pdf.Ln(6)
}

func (g *Generator) drawDiagnoses(pdf *fpdf.Fpdf, tr func(string) string, diagnoses []report.DiagnosisEntry) {
	pdf.SetFont("Times", "", 14)
	pdf.CellFormat(0, 18, tr("Diagnósticos"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Times", "", 12)
	if len(diagnoses) == 0 {
		pdf.SetX(pageMargin + 20)
		pdf.CellFormat(0, 16, tr("Sem diagnósticos registrados."), "", 1, "L", false, 0, "")
		pdf.Ln(12)
		return
	}

	for _, dx := range diagnoses {
		pdf.SetX(pageMargin + 20)
		pdf.MultiCell(0, 14, tr(dx), "", "L", false)
	}
	pdf.Ln(12)
}

func (g *Generator) drawQuestionnaires(pdf *fpdf.Fpdf, tr func(string) string, quests []report.QuestionnaireResponse) {
	pdf.SetFont("Times", "", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 18, tr("Questionários Respondidos"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if len(quests) == 0 {
		pdf.SetFont("Times", "", 12)
		pdf.CellFormat(0, 16, tr("Nenhum questionário respondido."), "", 1, "C", false, 0, "")
		return
	}

	pageW, pageH := pdf.GetPageSize()
	totalWidth := tableColWidths[0] + tableColWidths[1] + tableColWidths[2]
	startX := (pageW - totalWidth) / 2

	// The table is paginated by hand; fpdf's automatic break would fire
	// mid-row.
	pdf.SetAutoPageBreak(false, 0)
	defer pdf.SetAutoPageBreak(true, pageMargin)

	layout := NewTableLayout(pdf.GetY(), pageMargin, pageH-pageMargin, tableRowHeight)

	headerY := layout.PlaceHeader()
	g.drawTableHeader(pdf, tr, startX, headerY, totalWidth)

	var sum float64
	for i, q := range quests {
		y, pageBreak := layout.PlaceRow()
		if pageBreak {
			pdf.AddPage()
		}

		avg := report.AverageScore(q)
		sum += avg

		zebra := colorZebraEven
		if i%2 == 1 {
			zebra = colorZebraOdd
		}
		pdf.SetFillColor(zebra[0], zebra[1], zebra[2])
		pdf.Rect(startX, y, totalWidth, tableRowHeight, "F")

		pdf.SetFont("Times", "", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(startX, y+7)
		pdf.CellFormat(tableColWidths[0], 12, fmt.Sprintf("#%d", i+1), "", 0, "C", false, 0, "")
		pdf.CellFormat(tableColWidths[1], 12, tr(q.Date), "", 0, "C", false, 0, "")
		pdf.CellFormat(tableColWidths[2], 12, fmt.Sprintf("%.1f/10", avg), "", 1, "C", false, 0, "")

		pdf.SetDrawColor(0, 0, 0)
		x := startX
		for _, w := range tableColWidths {
			pdf.Rect(x, y, w, tableRowHeight, "D")
			x += w
		}
	}

	y, pageBreak := layout.PlaceBlock(summaryGap, summaryHeight)
	if pageBreak {
		pdf.AddPage()
	}
	overall := sum / float64(len(quests))
	pdf.SetFont("Times", "", 13)
	pdf.SetTextColor(colorTableHeader[0], colorTableHeader[1], colorTableHeader[2])
	pdf.SetXY(startX, y)
	pdf.CellFormat(totalWidth, summaryHeight, tr(fmt.Sprintf("Média Geral: %.1f/10", overall)), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func (g *Generator) drawTableHeader(pdf *fpdf.Fpdf, tr func(string) string, startX, y, totalWidth float64) {
	pdf.SetFillColor(colorTableHeader[0], colorTableHeader[1], colorTableHeader[2])
	x := startX
	for _, w := range tableColWidths {
		pdf.Rect(x, y, w, tableRowHeight, "F")
		x += w
	}

	pdf.SetFont("Times", "B", 12)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(startX, y+6)
	pdf.CellFormat(tableColWidths[0], 12, tr("Nº"), "", 0, "C", false, 0, "")
	pdf.CellFormat(tableColWidths[1], 12, "Data", "", 0, "C", false, 0, "")
	pdf.CellFormat(tableColWidths[2], 12, tr("Nota Média"), "", 1, "C", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1)
	pdf.Rect(startX, y, totalWidth, tableRowHeight, "D")
	pdf.SetTextColor(0, 0, 0)
}
