package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/diillson/datamart-reports/internal/domain/entity"
	"github.com/diillson/datamart-reports/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

var summaryHeaders = []string{
	"Report", "Status", "Product Code", "As Of", "Start", "End",
	"Output Path", "Rows", "Duration", "Upload", "Error",
}

func summaryRecord(r entity.ReportResult) []string {
	status := "success"
	if !r.Success {
		status = "failed"
	}

	// On-risk usa apenas as_of; os demais usam a janela [start, end)
	var asOf, start, end string
	if r.Kind == entity.ReportOnRisk {
		asOf = strconv.FormatInt(r.Request.AsOf, 10)
	} else {
		start = strconv.FormatInt(r.Request.Start, 10)
		end = strconv.FormatInt(r.Request.End, 10)
	}

	return []string{
		string(r.Kind),
		status,
		r.Request.ProductCode,
		asOf,
		start,
		end,
		r.OutputPath,
		fmt.Sprintf("%d", r.Rows),
		r.Duration.Round(time.Millisecond).String(),
		r.UploadURI,
		cleanRichTags(r.Error),
	}
}

// --- Exportação do resumo da execução ---

func (r *ExportRepositoryImpl) ExportSummaryToCSV(summary *entity.RunSummary, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating summary CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(summaryHeaders); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, res := range summary.Results {
		if err := writer.Write(summaryRecord(res)); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing summary CSV file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("error closing summary CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportSummaryToJSON(summary *entity.RunSummary, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	clean := *summary
	clean.Results = make([]entity.ReportResult, len(summary.Results))
	for i, res := range summary.Results {
		res.Error = cleanRichTags(res.Error)
		clean.Results[i] = res
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating summary JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(clean); err != nil {
		return "", fmt.Errorf("error encoding summary JSON data: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("error closing summary JSON file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportSummaryToPDF(summary *entity.RunSummary, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  Datamart Report Run"), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	period := fmt.Sprintf("  Started %s | Finished %s",
		summary.StartedAt.UTC().Format(time.RFC3339), summary.FinishedAt.UTC().Format(time.RFC3339))
	pdf.CellFormat(0, 8, tr(period), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	widths := []float64{55, 18, 30, 95, 18, 22, 39}
	columns := []string{"Report", "Status", "Product", "Output", "Rows", "Duration", "Upload"}

	pdf.SetFont("Arial", "B", 9)
	for i, col := range columns {
		pdf.CellFormat(widths[i], 7, tr(col), "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, res := range summary.Results {
		rec := summaryRecord(res)
		cells := []string{res.Kind.Title(), rec[1], rec[2], rec[6], rec[7], rec[8], rec[9]}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, tr(cell), "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		if res.Error != "" {
			pdf.SetTextColor(192, 0, 0)
			pdf.MultiCell(0, 5, tr("  "+cleanRichTags(res.Error)), "", "L", false)
			pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		}
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by datamart-reports | %s", r.now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing summary PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}
