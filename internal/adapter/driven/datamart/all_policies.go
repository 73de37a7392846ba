package datamart

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"

	"github.com/diillson/datamart-reports/internal/domain/entity"
)

const allPoliciesQuery = `
SELECT p.locator, p.product_name, p.policyholder_locator, p.currency,
       p.created_timestamp, p.issued_timestamp, p.cancellation_timestamp,
       p.policy_start_timestamp, p.policy_end_timestamp,
       COALESCE(gp.gross_premium, 0)
FROM policy p
LEFT JOIN (
    SELECT policy_locator, SUM(premium) AS gross_premium
    FROM peril_characteristics
    WHERE replaced_timestamp IS NULL
    GROUP BY policy_locator
) gp ON gp.policy_locator = p.locator
WHERE p.product_name = ?
  AND p.created_timestamp >= ? AND p.created_timestamp < ?
ORDER BY p.created_timestamp, p.locator`

var allPoliciesHeader = []string{
	"policy_locator", "product_name", "policyholder_locator", "currency",
	"created_timestamp", "issued_timestamp", "cancellation_timestamp",
	"policy_start_timestamp", "policy_end_timestamp",
	"status", "gross_premium",
}

// AllPoliciesReport lists every policy created in a window.
type AllPoliciesReport struct {
	baseReport
}

// NewAllPoliciesReport creates the all-policies report client.
func NewAllPoliciesReport(creds *entity.Credentials, connector Connector) *AllPoliciesReport {
	return &AllPoliciesReport{baseReport{kind: entity.ReportAllPolicies, creds: creds, connector: connector}}
}

// Generate writes the policies of req.ProductCode created in [Start, End).
func (r *AllPoliciesReport) Generate(ctx context.Context, req entity.ReportRequest) (entity.ReportOutput, error) {
	var out entity.ReportOutput
	err := r.withDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, allPoliciesQuery, req.ProductCode, req.Start, req.End)
		if err != nil {
			return fmt.Errorf("error querying policies: %w", err)
		}
		defer rows.Close()

		out, err = writeCSV(req.OutputPath, allPoliciesHeader, func(w *csv.Writer) (int, error) {
			count := 0
			for rows.Next() {
				var (
					p                 entity.PolicyRecord
					issued, cancelled sql.NullInt64
				)
				if err := rows.Scan(
					&p.Locator, &p.ProductName, &p.PolicyholderLocator, &p.Currency,
					&p.Created, &issued, &cancelled,
					&p.PolicyStart, &p.PolicyEnd, &p.GrossPremium,
				); err != nil {
					return count, fmt.Errorf("error scanning policy row: %w", err)
				}
				p.Issued = nullInt64Ptr(issued)
				p.Cancelled = nullInt64Ptr(cancelled)

				if err := w.Write(policyRecord(p)); err != nil {
					return count, fmt.Errorf("error writing CSV record: %w", err)
				}
				count++
			}
			if err := rows.Err(); err != nil {
				return count, fmt.Errorf("error iterating policy rows: %w", err)
			}
			return count, nil
		})
		return err
	})
	return out, err
}

func policyRecord(p entity.PolicyRecord) []string {
	optional := func(v *int64) string {
		if v == nil {
			return ""
		}
		return formatMillis(*v)
	}

	return []string{
		p.Locator,
		p.ProductName,
		p.PolicyholderLocator,
		p.Currency,
		formatMillis(p.Created),
		optional(p.Issued),
		optional(p.Cancelled),
		formatMillis(p.PolicyStart),
		formatMillis(p.PolicyEnd),
		string(p.Status()),
		formatMoney(p.GrossPremium),
	}
}
