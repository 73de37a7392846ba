package entity

import "time"

// ReportKind identifica um tipo de relatório do datamart.
type ReportKind string

const (
	ReportOnRisk                     ReportKind = "on_risk"
	ReportAllPolicies                ReportKind = "all_policies"
	ReportTransactionFinancialImpact ReportKind = "transaction_financial_impact"
	ReportFinancialTransactions      ReportKind = "financial_transactions"
)

// ReportKinds returns every kind in the order a run executes them.
func ReportKinds() []ReportKind {
	return []ReportKind{
		ReportOnRisk,
		ReportAllPolicies,
		ReportTransactionFinancialImpact,
		ReportFinancialTransactions,
	}
}

// Valid reports whether k is a known kind.
func (k ReportKind) Valid() bool {
	for _, known := range ReportKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// ProductScoped reports whether the kind filters rows by product code.
func (k ReportKind) ProductScoped() bool {
	return k != ReportFinancialTransactions
}

// Title devolve o nome legível usado no console e no resumo.
func (k ReportKind) Title() string {
	switch k {
	case ReportOnRisk:
		return "On-Risk"
	case ReportAllPolicies:
		return "All Policies"
	case ReportTransactionFinancialImpact:
		return "Transaction Financial Impact"
	case ReportFinancialTransactions:
		return "Financial Transactions"
	default:
		return string(k)
	}
}

// ReportRequest carries the selection parameters for one report invocation.
// Each kind reads only the fields it needs: OnRisk uses AsOf, the window
// reports use Start and End. Start <= End is expected but not enforced.
type ReportRequest struct {
	ProductCode string `json:"product_code,omitempty"`
	AsOf        int64  `json:"as_of,omitempty"`
	Start       int64  `json:"start,omitempty"`
	End         int64  `json:"end,omitempty"`
	OutputPath  string `json:"output_path"`
}

// ReportOutput describes the CSV a generator produced.
type ReportOutput struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

// ReportResult is one line of a run summary.
type ReportResult struct {
	Kind       ReportKind    `json:"kind"`
	Request    ReportRequest `json:"request"`
	OutputPath string        `json:"output_path,omitempty"`
	Rows       int           `json:"rows"`
	Duration   time.Duration `json:"duration_ns"`
	UploadURI  string        `json:"upload_uri,omitempty"`
	Success    bool          `json:"success"`
	Error      string        `json:"error,omitempty"`
}

// RunSummary agrega o resultado de uma execução completa.
type RunSummary struct {
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Results    []ReportResult `json:"results"`
}

// Succeeded reports whether every attempted report completed.
func (s *RunSummary) Succeeded() bool {
	for _, r := range s.Results {
		if !r.Success {
			return false
		}
	}
	return true
}
