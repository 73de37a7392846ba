package datamart

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"

	"github.com/diillson/datamart-reports/internal/domain/entity"
)

const transactionImpactQuery = `
SELECT m.locator, m.policy_locator, p.product_name, p.currency,
       m.name, m.number, m.effective_timestamp, m.issued_timestamp,
       pc.policy_modification_locator, pc.replacement_modification_locator,
       pc.coverage_start_timestamp, pc.coverage_end_timestamp, pc.premium
FROM policy_modification m
JOIN policy p ON p.locator = m.policy_locator
LEFT JOIN peril_characteristics pc
       ON pc.policy_modification_locator = m.locator
       OR pc.replacement_modification_locator = m.locator
WHERE p.product_name = ?
  AND m.issued_timestamp IS NOT NULL
  AND m.issued_timestamp >= ? AND m.issued_timestamp < ?
ORDER BY m.issued_timestamp, m.locator, pc.locator`

var transactionImpactHeader = []string{
	"transaction_locator", "policy_locator", "product_name", "currency",
	"transaction_type", "transaction_number", "effective_timestamp", "issued_timestamp",
	"premium_added", "premium_removed", "financial_impact",
}

// TransactionFinancialImpactReport computes the premium effect of each
// policy transaction issued in a window.
type TransactionFinancialImpactReport struct {
	baseReport
}

// NewTransactionFinancialImpactReport creates the transaction financial impact report client.
func NewTransactionFinancialImpactReport(creds *entity.Credentials, connector Connector) *TransactionFinancialImpactReport {
	return &TransactionFinancialImpactReport{baseReport{kind: entity.ReportTransactionFinancialImpact, creds: creds, connector: connector}}
}

// Generate writes one row per transaction of req.ProductCode issued in [Start, End).
func (r *TransactionFinancialImpactReport) Generate(ctx context.Context, req entity.ReportRequest) (entity.ReportOutput, error) {
	var impacts []entity.TransactionImpact

	err := r.withDB(ctx, func(db *sql.DB) error {
		var err error
		impacts, err = loadTransactionImpacts(ctx, db, req)
		return err
	})
	if err != nil {
		return entity.ReportOutput{}, err
	}

	return writeCSV(req.OutputPath, transactionImpactHeader, func(w *csv.Writer) (int, error) {
		for i, t := range impacts {
			record := []string{
				t.ModificationLocator,
				t.PolicyLocator,
				t.ProductName,
				t.Currency,
				t.Type,
				fmt.Sprint(t.Number),
				formatMillis(t.Effective),
				formatMillis(t.Issued),
				formatMoney(t.PremiumAdded),
				formatMoney(t.PremiumRemoved),
				formatMoney(t.FinancialImpact()),
			}
			if err := w.Write(record); err != nil {
				return i, fmt.Errorf("error writing CSV record: %w", err)
			}
		}
		return len(impacts), nil
	})
}

// loadTransactionImpacts agrega as características de perigo criadas e
// substituídas por cada modificação, preservando a ordem da consulta.
func loadTransactionImpacts(ctx context.Context, db *sql.DB, req entity.ReportRequest) ([]entity.TransactionImpact, error) {
	rows, err := db.QueryContext(ctx, transactionImpactQuery, req.ProductCode, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("error querying policy transactions: %w", err)
	}
	defer rows.Close()

	var impacts []entity.TransactionImpact
	index := make(map[string]int)

	for rows.Next() {
		var (
			t          entity.TransactionImpact
			createdBy  sql.NullString
			replacedBy sql.NullString
			covStart   sql.NullInt64
			covEnd     sql.NullInt64
			premium    sql.NullFloat64
		)
		if err := rows.Scan(
			&t.ModificationLocator, &t.PolicyLocator, &t.ProductName, &t.Currency,
			&t.Type, &t.Number, &t.Effective, &t.Issued,
			&createdBy, &replacedBy, &covStart, &covEnd, &premium,
		); err != nil {
			return nil, fmt.Errorf("error scanning policy transaction row: %w", err)
		}

		i, ok := index[t.ModificationLocator]
		if !ok {
			impacts = append(impacts, t)
			i = len(impacts) - 1
			index[t.ModificationLocator] = i
		}

		// Transação sem características associadas
		if !premium.Valid || !covStart.Valid || !covEnd.Valid {
			continue
		}

		created := createdBy.Valid && createdBy.String == t.ModificationLocator
		replaced := replacedBy.Valid && replacedBy.String == t.ModificationLocator

		// Criada e substituída pela mesma modificação: efeito líquido zero
		if created && replaced {
			continue
		}

		amount := ProratedPremium(premium.Float64, covStart.Int64, covEnd.Int64, t.Effective)
		if created {
			impacts[i].PremiumAdded += amount
		} else {
			impacts[i].PremiumRemoved += amount
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating policy transaction rows: %w", err)
	}

	return impacts, nil
}
