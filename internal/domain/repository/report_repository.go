package repository

import (
	"context"

	"github.com/diillson/datamart-reports/internal/domain/entity"
)

// ReportGenerator produces one kind of datamart report as a CSV file.
type ReportGenerator interface {
	Kind() entity.ReportKind
	Generate(ctx context.Context, req entity.ReportRequest) (entity.ReportOutput, error)
}

// ReportFactory builds the generator for a kind from the run credentials.
type ReportFactory interface {
	NewReport(kind entity.ReportKind, creds *entity.Credentials) (ReportGenerator, error)
}

// ReportFactoryProvider builds the factory for a datamart driver.
type ReportFactoryProvider func(driver string) (ReportFactory, error)
