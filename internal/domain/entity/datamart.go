package entity

// OnRiskCoverage is one peril coverage in force at the requested instant.
type OnRiskCoverage struct {
	PolicyLocator          string  `json:"policy_locator"`
	ProductName            string  `json:"product_name"`
	PolicyholderLocator    string  `json:"policyholder_locator"`
	ExposureLocator        string  `json:"exposure_locator"`
	ExposureName           string  `json:"exposure_name"`
	PerilLocator           string  `json:"peril_locator"`
	PerilName              string  `json:"peril_name"`
	CharacteristicsLocator string  `json:"peril_characteristics_locator"`
	CoverageStart          int64   `json:"coverage_start_timestamp"`
	CoverageEnd            int64   `json:"coverage_end_timestamp"`
	Premium                float64 `json:"premium"`
}

// PolicyStatus is derived from issue and cancellation timestamps.
type PolicyStatus string

const (
	PolicyPending   PolicyStatus = "pending"
	PolicyIssued    PolicyStatus = "issued"
	PolicyCancelled PolicyStatus = "cancelled"
)

// PolicyRecord represents a policy row of the all-policies report.
type PolicyRecord struct {
	Locator             string  `json:"locator"`
	ProductName         string  `json:"product_name"`
	PolicyholderLocator string  `json:"policyholder_locator"`
	Currency            string  `json:"currency"`
	Created             int64   `json:"created_timestamp"`
	Issued              *int64  `json:"issued_timestamp,omitempty"`
	Cancelled           *int64  `json:"cancellation_timestamp,omitempty"`
	PolicyStart         int64   `json:"policy_start_timestamp"`
	PolicyEnd           int64   `json:"policy_end_timestamp"`
	GrossPremium        float64 `json:"gross_premium"`
}

// Status deriva o estado atual da apólice.
func (p PolicyRecord) Status() PolicyStatus {
	switch {
	case p.Cancelled != nil:
		return PolicyCancelled
	case p.Issued != nil:
		return PolicyIssued
	default:
		return PolicyPending
	}
}

// TransactionImpact is the monetary effect of one policy modification.
type TransactionImpact struct {
	ModificationLocator string  `json:"transaction_locator"`
	PolicyLocator       string  `json:"policy_locator"`
	ProductName         string  `json:"product_name"`
	Type                string  `json:"transaction_type"`
	Number              int     `json:"transaction_number"`
	Currency            string  `json:"currency"`
	Effective           int64   `json:"effective_timestamp"`
	Issued              int64   `json:"issued_timestamp"`
	PremiumAdded        float64 `json:"premium_added"`
	PremiumRemoved      float64 `json:"premium_removed"`
}

// FinancialImpact is the net premium change of the transaction.
func (t TransactionImpact) FinancialImpact() float64 {
	return t.PremiumAdded - t.PremiumRemoved
}

// FinancialTransaction represents a ledger entry.
type FinancialTransaction struct {
	Locator       string  `json:"locator"`
	PolicyLocator string  `json:"policy_locator,omitempty"`
	ProductName   string  `json:"product_name,omitempty"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Posted        int64   `json:"posted_timestamp"`
}
