package entity

// Credentials holds the datamart connection parameters read at startup.
// Values are kept exactly as found in the environment; an unset variable
// leaves its field empty and the failure surfaces when a connection is opened.
type Credentials struct {
	User     string `env:"REPORT_USER" json:"user"`
	Password string `env:"REPORT_PASSWORD" json:"-"`
	Port     string `env:"REPORT_PORT" json:"port"`
	Host     string `env:"REPORT_HOST" json:"host"`
	Database string `env:"REPORT_DATABASE" json:"database"`
}
