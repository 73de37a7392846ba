package datamart

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"

	"github.com/diillson/datamart-reports/internal/domain/entity"
)

const onRiskQuery = `
SELECT p.locator, p.product_name, p.policyholder_locator,
       e.locator, e.name, pr.locator, pr.name,
       pc.locator, pc.coverage_start_timestamp, pc.coverage_end_timestamp, pc.premium
FROM peril_characteristics pc
JOIN peril pr ON pr.locator = pc.peril_locator
JOIN exposure e ON e.locator = pr.exposure_locator
JOIN policy p ON p.locator = pc.policy_locator
WHERE p.product_name = ?
  AND p.issued_timestamp IS NOT NULL AND p.issued_timestamp <= ?
  AND (p.cancellation_timestamp IS NULL OR p.cancellation_timestamp > ?)
  AND pc.coverage_start_timestamp <= ? AND pc.coverage_end_timestamp > ?
  AND (pc.replaced_timestamp IS NULL OR pc.replaced_timestamp > ?)
ORDER BY p.locator, e.locator, pr.locator, pc.locator`

var onRiskHeader = []string{
	"policy_locator", "product_name", "policyholder_locator",
	"exposure_locator", "exposure_name", "peril_locator", "peril_name",
	"peril_characteristics_locator", "coverage_start_timestamp", "coverage_end_timestamp",
	"premium",
}

// OnRiskReport lists the peril coverages in force at a point in time.
type OnRiskReport struct {
	baseReport
}

// NewOnRiskReport creates the on-risk report client.
func NewOnRiskReport(creds *entity.Credentials, connector Connector) *OnRiskReport {
	return &OnRiskReport{baseReport{kind: entity.ReportOnRisk, creds: creds, connector: connector}}
}

// Generate writes the coverages of req.ProductCode on risk at req.AsOf.
func (r *OnRiskReport) Generate(ctx context.Context, req entity.ReportRequest) (entity.ReportOutput, error) {
	var out entity.ReportOutput
	err := r.withDB(ctx, func(db *sql.DB) error {
		asOf := req.AsOf
		rows, err := db.QueryContext(ctx, onRiskQuery, req.ProductCode, asOf, asOf, asOf, asOf, asOf)
		if err != nil {
			return fmt.Errorf("error querying on-risk coverages: %w", err)
		}
		defer rows.Close()

		out, err = writeCSV(req.OutputPath, onRiskHeader, func(w *csv.Writer) (int, error) {
			count := 0
			for rows.Next() {
				var c entity.OnRiskCoverage
				if err := rows.Scan(
					&c.PolicyLocator, &c.ProductName, &c.PolicyholderLocator,
					&c.ExposureLocator, &c.ExposureName, &c.PerilLocator, &c.PerilName,
					&c.CharacteristicsLocator, &c.CoverageStart, &c.CoverageEnd, &c.Premium,
				); err != nil {
					return count, fmt.Errorf("error scanning on-risk row: %w", err)
				}
				if err := w.Write(onRiskRecord(c)); err != nil {
					return count, fmt.Errorf("error writing CSV record: %w", err)
				}
				count++
			}
			if err := rows.Err(); err != nil {
				return count, fmt.Errorf("error iterating on-risk rows: %w", err)
			}
			return count, nil
		})
		return err
	})
	return out, err
}

func onRiskRecord(c entity.OnRiskCoverage) []string {
	return []string{
		c.PolicyLocator,
		c.ProductName,
		c.PolicyholderLocator,
		c.ExposureLocator,
		c.ExposureName,
		c.PerilLocator,
		c.PerilName,
		c.CharacteristicsLocator,
		formatMillis(c.CoverageStart),
		formatMillis(c.CoverageEnd),
		formatMoney(c.Premium),
	}
}
