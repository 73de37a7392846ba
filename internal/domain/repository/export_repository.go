package repository

import (
	"github.com/diillson/datamart-reports/internal/domain/entity"
)

// ExportRepository writes the run summary in the supported formats.
type ExportRepository interface {
	ExportSummaryToCSV(summary *entity.RunSummary, filename, outputDir string) (string, error)
	ExportSummaryToJSON(summary *entity.RunSummary, filename, outputDir string) (string, error)
	ExportSummaryToPDF(summary *entity.RunSummary, filename, outputDir string) (string, error)
}
