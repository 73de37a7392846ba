package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile    string
	EnvFile       string
	Driver        string
	Dir           string
	ProductCode   string
	AsOf          int64
	Start         int64
	End           int64
	Reports       []string
	FileTemplates map[string]string
	SummaryName   string
	SummaryType   []string
	UploadBucket  string
	UploadPrefix  string
	AWSProfile    string
}

// ApplyConfig copies values from a configuration file into args. Flags the
// user set explicitly (reported by changed) keep their command-line value.
func (a *CLIArgs) ApplyConfig(cfg *Config, changed func(flag string) bool) {
	if cfg == nil {
		return
	}
	if changed == nil {
		changed = func(string) bool { return false }
	}

	setString := func(flag string, dst *string, v string) {
		if v != "" && !changed(flag) {
			*dst = v
		}
	}
	setInt := func(flag string, dst *int64, v *int64) {
		if v != nil && !changed(flag) {
			*dst = *v
		}
	}
	setSlice := func(flag string, dst *[]string, v []string) {
		if len(v) > 0 && !changed(flag) {
			*dst = v
		}
	}

	setString("driver", &a.Driver, cfg.Driver)
	setString("dir", &a.Dir, cfg.Dir)
	setString("product", &a.ProductCode, cfg.ProductCode)
	setInt("as-of", &a.AsOf, cfg.AsOf)
	setInt("start", &a.Start, cfg.Start)
	setInt("end", &a.End, cfg.End)
	setSlice("reports", &a.Reports, cfg.Reports)
	setString("summary-name", &a.SummaryName, cfg.SummaryName)
	setSlice("summary-type", &a.SummaryType, cfg.SummaryType)
	setString("upload-bucket", &a.UploadBucket, cfg.UploadBucket)
	setString("upload-prefix", &a.UploadPrefix, cfg.UploadPrefix)
	setString("aws-profile", &a.AWSProfile, cfg.AWSProfile)

	if len(cfg.FileTemplates) > 0 {
		if a.FileTemplates == nil {
			a.FileTemplates = make(map[string]string, len(cfg.FileTemplates))
		}
		for kind, tmpl := range cfg.FileTemplates {
			a.FileTemplates[kind] = tmpl
		}
	}
}
