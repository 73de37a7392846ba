package usecase

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diillson/datamart-reports/internal/domain/entity"
	"github.com/diillson/datamart-reports/internal/domain/repository"
	"github.com/diillson/datamart-reports/internal/shared/types"
)

// Valores padrão da execução.
const (
	DefaultProductCode       = "personal-auto"
	DefaultAsOf        int64 = 1667278800000
	DefaultStart       int64 = 1659326400000
	DefaultEnd         int64 = 1864596800000
	DefaultSummaryName       = "datamart_run_summary"
)

// DefaultFileTemplates holds the output file name of each report.
// Placeholders: {product}, {as_of}, {start}, {end}.
var DefaultFileTemplates = map[entity.ReportKind]string{
	entity.ReportOnRisk:                     "on_risk_report_{as_of}.csv",
	entity.ReportAllPolicies:                "all_policies_report_{start}-{end}.csv",
	entity.ReportTransactionFinancialImpact: "transaction_financial_impact_report_{start}-{end}.csv",
	entity.ReportFinancialTransactions:      "financial_transactions_report_{start}-{end}.csv",
}

// Step pairs a generator with the request it will be invoked with.
type Step struct {
	Generator repository.ReportGenerator
	Request   entity.ReportRequest
}

// RenderFileName substitutes the request values into a file name template.
func RenderFileName(template string, req entity.ReportRequest) string {
	replacer := strings.NewReplacer(
		"{product}", req.ProductCode,
		"{as_of}", strconv.FormatInt(req.AsOf, 10),
		"{start}", strconv.FormatInt(req.Start, 10),
		"{end}", strconv.FormatInt(req.End, 10),
	)
	return replacer.Replace(template)
}

// SelectKinds returns the requested kinds in canonical run order.
// An empty selection means every kind.
func SelectKinds(names []string) ([]entity.ReportKind, error) {
	if len(names) == 0 {
		return entity.ReportKinds(), nil
	}

	wanted := make(map[entity.ReportKind]bool, len(names))
	for _, name := range names {
		kind := entity.ReportKind(strings.ToLower(strings.TrimSpace(name)))
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: %q", types.ErrUnknownReportKind, name)
		}
		wanted[kind] = true
	}

	var kinds []entity.ReportKind
	for _, kind := range entity.ReportKinds() {
		if wanted[kind] {
			kinds = append(kinds, kind)
		}
	}
	if len(kinds) == 0 {
		return nil, types.ErrNoReportsSelected
	}
	return kinds, nil
}

// BuildRequest monta a requisição de um relatório a partir dos argumentos.
func BuildRequest(kind entity.ReportKind, args *types.CLIArgs) entity.ReportRequest {
	req := entity.ReportRequest{}
	if kind.ProductScoped() {
		req.ProductCode = args.ProductCode
	}
	if kind == entity.ReportOnRisk {
		req.AsOf = args.AsOf
	} else {
		req.Start = args.Start
		req.End = args.End
	}

	template := DefaultFileTemplates[kind]
	if custom, ok := args.FileTemplates[string(kind)]; ok && custom != "" {
		template = custom
	}

	name := RenderFileName(template, req)
	if args.Dir != "" {
		name = filepath.Join(args.Dir, name)
	}
	req.OutputPath = name

	return req
}
