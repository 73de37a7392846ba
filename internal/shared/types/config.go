package types

// Config represents the run plan that can be loaded from a file.
// Timestamps are pointers so that an explicit 0 differs from an absent key.
type Config struct {
	Driver        string            `json:"driver" yaml:"driver" toml:"driver"`
	Dir           string            `json:"dir" yaml:"dir" toml:"dir"`
	ProductCode   string            `json:"product_code" yaml:"product_code" toml:"product_code"`
	AsOf          *int64            `json:"as_of" yaml:"as_of" toml:"as_of"`
	Start         *int64            `json:"start" yaml:"start" toml:"start"`
	End           *int64            `json:"end" yaml:"end" toml:"end"`
	Reports       []string          `json:"reports" yaml:"reports" toml:"reports"`
	FileTemplates map[string]string `json:"file_templates" yaml:"file_templates" toml:"file_templates"`
	SummaryName   string            `json:"summary_name" yaml:"summary_name" toml:"summary_name"`
	SummaryType   []string          `json:"summary_type" yaml:"summary_type" toml:"summary_type"`
	UploadBucket  string            `json:"upload_bucket" yaml:"upload_bucket" toml:"upload_bucket"`
	UploadPrefix  string            `json:"upload_prefix" yaml:"upload_prefix" toml:"upload_prefix"`
	AWSProfile    string            `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile"`
}
