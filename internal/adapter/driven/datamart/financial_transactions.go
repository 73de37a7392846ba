package datamart

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"

	"github.com/diillson/datamart-reports/internal/domain/entity"
)

const financialTransactionsQuery = `
SELECT ft.locator, COALESCE(ft.policy_locator, ''), COALESCE(p.product_name, ''),
       ft.type, ft.amount, ft.currency, ft.posted_timestamp
FROM financial_transaction ft
LEFT JOIN policy p ON p.locator = ft.policy_locator
WHERE ft.posted_timestamp >= ? AND ft.posted_timestamp < ?
ORDER BY ft.posted_timestamp, ft.locator`

var financialTransactionsHeader = []string{
	"financial_transaction_locator", "policy_locator", "product_name",
	"type", "amount", "currency", "posted_timestamp",
}

// FinancialTransactionsReport exports ledger entries across all products.
type FinancialTransactionsReport struct {
	baseReport
}

// NewFinancialTransactionsReport creates the financial-transactions report client.
func NewFinancialTransactionsReport(creds *entity.Credentials, connector Connector) *FinancialTransactionsReport {
	return &FinancialTransactionsReport{baseReport{kind: entity.ReportFinancialTransactions, creds: creds, connector: connector}}
}

// Generate writes the transactions posted in [Start, End). ProductCode is ignored.
func (r *FinancialTransactionsReport) Generate(ctx context.Context, req entity.ReportRequest) (entity.ReportOutput, error) {
	var out entity.ReportOutput
	err := r.withDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, financialTransactionsQuery, req.Start, req.End)
		if err != nil {
			return fmt.Errorf("error querying financial transactions: %w", err)
		}
		defer rows.Close()

		out, err = writeCSV(req.OutputPath, financialTransactionsHeader, func(w *csv.Writer) (int, error) {
			count := 0
			for rows.Next() {
				var ft entity.FinancialTransaction
				if err := rows.Scan(
					&ft.Locator, &ft.PolicyLocator, &ft.ProductName,
					&ft.Type, &ft.Amount, &ft.Currency, &ft.Posted,
				); err != nil {
					return count, fmt.Errorf("error scanning financial transaction row: %w", err)
				}
				record := []string{
					ft.Locator,
					ft.PolicyLocator,
					ft.ProductName,
					ft.Type,
					formatMoney(ft.Amount),
					ft.Currency,
					formatMillis(ft.Posted),
				}
				if err := w.Write(record); err != nil {
					return count, fmt.Errorf("error writing CSV record: %w", err)
				}
				count++
			}
			if err := rows.Err(); err != nil {
				return count, fmt.Errorf("error iterating financial transaction rows: %w", err)
			}
			return count, nil
		})
		return err
	})
	return out, err
}
