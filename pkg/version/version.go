package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

const devVersion = "0.0.0-dev"

// Valores padrão (sobrescritos por ldflags ou por build info)
var (
	Version   = devVersion
	Commit    = ""
	BuildTime = ""
)

func init() {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		applyBuildSettings(bi.Settings)
	}
}

// applyBuildSettings preenche a versão a partir das configurações vcs.* do
// binário, sem sobrescrever valores definidos por ldflags.
func applyBuildSettings(settings []debug.BuildSetting) {
	if Version != "" && Version != devVersion {
		return
	}

	vcs := make(map[string]string, len(settings))
	for _, s := range settings {
		vcs[s.Key] = s.Value
	}

	if rev := vcs["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}

	if t := vcs["vcs.time"]; BuildTime == "" && t != "" {
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}

	if tag := vcs["vcs.tag"]; tag != "" {
		Version = strings.TrimPrefix(tag, "v")
		if strings.EqualFold(vcs["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

// FormatVersion retorna a versão formatada com commit e build time.
// Ex.: "1.2.3 (commit: abc1234, built at: 2026-10-14T10:20:30Z)"
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = devVersion
	}

	if Commit == "" {
		if BuildTime == "" {
			return fmt.Sprintf("%s (development)", ver)
		}
		return fmt.Sprintf("%s (commit: development, built at: %s)", ver, BuildTime)
	}

	if BuildTime != "" {
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
	}

	return fmt.Sprintf("%s (commit: %s)", ver, Commit)
}
