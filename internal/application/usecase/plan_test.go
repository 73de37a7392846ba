package usecase

import (
	"path/filepath"
	"testing"

	"github.com/diillson/datamart-reports/internal/domain/entity"
	"github.com/diillson/datamart-reports/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFileName(t *testing.T) {
	req := entity.ReportRequest{ProductCode: "personal-auto", AsOf: 5, Start: 1659326400000, End: 1864596800000}

	assert.Equal(t, "all_policies_report_1659326400000-1864596800000.csv",
		RenderFileName("all_policies_report_{start}-{end}.csv", req))
	assert.Equal(t, "personal-auto_5.csv", RenderFileName("{product}_{as_of}.csv", req))
	assert.Equal(t, "on_risk_report_1.csv", RenderFileName("on_risk_report_1.csv", req))
}

func TestSelectKinds(t *testing.T) {
	kinds, err := SelectKinds(nil)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportKinds(), kinds)

	kinds, err = SelectKinds([]string{" Transaction_Financial_Impact", "all_policies", "all_policies"})
	require.NoError(t, err)
	assert.Equal(t, []entity.ReportKind{entity.ReportAllPolicies, entity.ReportTransactionFinancialImpact}, kinds)

	_, err = SelectKinds([]string{"claims"})
	assert.ErrorIs(t, err, types.ErrUnknownReportKind)
}

func TestBuildRequest(t *testing.T) {
	args := &types.CLIArgs{
		ProductCode: "personal-auto",
		AsOf:        1667278800000,
		Start:       0,
		End:         1864596800000,
		Dir:         "exports",
		FileTemplates: map[string]string{
			"on_risk": "on_risk_report_1.csv",
		},
	}

	onRisk := BuildRequest(entity.ReportOnRisk, args)
	assert.Equal(t, filepath.Join("exports", "on_risk_report_1.csv"), onRisk.OutputPath)
	assert.Equal(t, "personal-auto", onRisk.ProductCode)
	assert.Equal(t, int64(1667278800000), onRisk.AsOf)
	assert.Zero(t, onRisk.Start)
	assert.Zero(t, onRisk.End)

	tfi := BuildRequest(entity.ReportTransactionFinancialImpact, args)
	assert.Equal(t, filepath.Join("exports", "transaction_financial_impact_report_0-1864596800000.csv"), tfi.OutputPath)
	assert.Equal(t, "personal-auto", tfi.ProductCode)
	assert.Zero(t, tfi.AsOf)

	ft := BuildRequest(entity.ReportFinancialTransactions, args)
	assert.Empty(t, ft.ProductCode)
	assert.Equal(t, int64(1864596800000), ft.End)
}

func TestProductCodePassedUnchanged(t *testing.T) {
	args := &types.CLIArgs{ProductCode: "personal-auto", Start: 1, End: 2}

	for _, kind := range entity.ReportKinds() {
		req := BuildRequest(kind, args)
		if kind.ProductScoped() {
			assert.Equal(t, "personal-auto", req.ProductCode, kind)
		} else {
			assert.Empty(t, req.ProductCode, kind)
		}
	}
}
