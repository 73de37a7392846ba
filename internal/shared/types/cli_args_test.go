package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func defaultArgs() *CLIArgs {
	return &CLIArgs{
		Driver:      "mysql",
		ProductCode: "personal-auto",
		AsOf:        1667278800000,
		Start:       1659326400000,
		End:         1864596800000,
	}
}

func noneChanged(string) bool { return false }

func TestApplyConfig_ExplicitZeroStart(t *testing.T) {
	args := defaultArgs()

	args.ApplyConfig(&Config{Start: int64Ptr(0), End: int64Ptr(1864596800000)}, noneChanged)

	assert.Equal(t, int64(0), args.Start)
	assert.Equal(t, int64(1864596800000), args.End)
	assert.Equal(t, int64(1667278800000), args.AsOf)
}

func TestApplyConfig_AbsentValuesKeepDefaults(t *testing.T) {
	args := defaultArgs()

	args.ApplyConfig(&Config{}, noneChanged)

	assert.Equal(t, defaultArgs(), args)
}

func TestApplyConfig_ChangedFlagsWin(t *testing.T) {
	args := defaultArgs()
	args.Start = 5
	args.Driver = "sqlite3"
	changed := func(flag string) bool { return flag == "start" || flag == "driver" }

	args.ApplyConfig(&Config{
		Driver:        "mysql",
		ProductCode:   "homeowners",
		Start:         int64Ptr(0),
		AsOf:          int64Ptr(0),
		FileTemplates: map[string]string{"on_risk": "risk.csv"},
	}, changed)

	assert.Equal(t, "sqlite3", args.Driver)
	assert.Equal(t, int64(5), args.Start)
	assert.Equal(t, int64(0), args.AsOf)
	assert.Equal(t, "homeowners", args.ProductCode)
	assert.Equal(t, "risk.csv", args.FileTemplates["on_risk"])
}

func TestApplyConfig_NilConfig(t *testing.T) {
	args := defaultArgs()

	args.ApplyConfig(nil, nil)

	assert.Equal(t, defaultArgs(), args)
}
