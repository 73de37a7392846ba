package types

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownReportKind = errors.New("unknown report kind")
	ErrUnsupportedDriver = errors.New("unsupported datamart driver")
	ErrNoReportsSelected = errors.New("no reports selected")
)

// Stages at which a report step can fail.
const (
	StageBuild    = "build"
	StageGenerate = "generate"
	StageUpload   = "upload"
)

// ReportError identifies which report of a run failed and at which stage.
type ReportError struct {
	Kind  string
	Stage string
	Err   error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("%s report failed during %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}
