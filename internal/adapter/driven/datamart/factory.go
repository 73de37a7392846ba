package datamart

import (
	"fmt"

	"github.com/diillson/datamart-reports/internal/domain/entity"
	"github.com/diillson/datamart-reports/internal/domain/repository"
	"github.com/diillson/datamart-reports/internal/shared/types"
)

// Factory builds datamart report clients that share one connector.
type Factory struct {
	connector Connector
}

// NewFactory cria a fábrica de relatórios do datamart.
func NewFactory(connector Connector) repository.ReportFactory {
	return &Factory{connector: connector}
}

// NewReport returns the client for kind bound to creds.
func (f *Factory) NewReport(kind entity.ReportKind, creds *entity.Credentials) (repository.ReportGenerator, error) {
	switch kind {
	case entity.ReportOnRisk:
		return NewOnRiskReport(creds, f.connector), nil
	case entity.ReportAllPolicies:
		return NewAllPoliciesReport(creds, f.connector), nil
	case entity.ReportTransactionFinancialImpact:
		return NewTransactionFinancialImpactReport(creds, f.connector), nil
	case entity.ReportFinancialTransactions:
		return NewFinancialTransactionsReport(creds, f.connector), nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownReportKind, kind)
	}
}

// NewFactoryForDriver builds a factory whose reports connect with driver.
func NewFactoryForDriver(driver string) (repository.ReportFactory, error) {
	connector, err := NewSQLConnector(driver)
	if err != nil {
		return nil, err
	}
	return NewFactory(connector), nil
}
