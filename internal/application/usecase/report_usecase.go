package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/diillson/datamart-reports/internal/domain/entity"
	"github.com/diillson/datamart-reports/internal/domain/repository"
	"github.com/diillson/datamart-reports/internal/shared/types"
)

// ReportUseCase runs the datamart reports of a plan in order.
type ReportUseCase struct {
	factoryFor  repository.ReportFactoryProvider
	configRepo  repository.ConfigRepository
	exportRepo  repository.ExportRepository
	uploaderFor repository.UploadRepositoryProvider
	console     types.ConsoleInterface
	now         func() time.Time
}

// UploadTarget is where generated reports are copied after each step.
type UploadTarget struct {
	Repo   repository.UploadRepository
	Bucket string
	Prefix string
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	factoryFor repository.ReportFactoryProvider,
	configRepo repository.ConfigRepository,
	exportRepo repository.ExportRepository,
	uploaderFor repository.UploadRepositoryProvider,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		factoryFor:  factoryFor,
		configRepo:  configRepo,
		exportRepo:  exportRepo,
		uploaderFor: uploaderFor,
		console:     console,
		now:         time.Now,
	}
}

// LoadConfig carrega o arquivo de configuração da execução.
func (uc *ReportUseCase) LoadConfig(path string) (*types.Config, error) {
	return uc.configRepo.LoadConfigFile(path)
}

// BuildSteps constructs one generator per selected kind, every one bound to
// the same credentials.
func (uc *ReportUseCase) BuildSteps(args *types.CLIArgs, creds *entity.Credentials) ([]Step, error) {
	kinds, err := SelectKinds(args.Reports)
	if err != nil {
		return nil, err
	}

	factory, err := uc.factoryFor(args.Driver)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(kinds))
	for _, kind := range kinds {
		generator, err := factory.NewReport(kind, creds)
		if err != nil {
			return nil, &types.ReportError{Kind: string(kind), Stage: types.StageBuild, Err: err}
		}
		steps = append(steps, Step{Generator: generator, Request: BuildRequest(kind, args)})
	}

	return steps, nil
}

// RunReports carrega as credenciais, executa o plano e exporta o resumo.
func (uc *ReportUseCase) RunReports(ctx context.Context, args *types.CLIArgs) error {
	creds, err := uc.configRepo.LoadCredentials(args.EnvFile)
	if err != nil {
		return err
	}

	steps, err := uc.BuildSteps(args, creds)
	if err != nil {
		return err
	}

	var target *UploadTarget
	if args.UploadBucket != "" && uc.uploaderFor != nil {
		target = &UploadTarget{
			Repo:   uc.uploaderFor(args.AWSProfile),
			Bucket: args.UploadBucket,
			Prefix: args.UploadPrefix,
		}
	}

	summary, runErr := uc.Execute(ctx, steps, target)

	uc.displaySummary(summary)
	uc.exportSummary(summary, args)

	return runErr
}

// Execute invokes the steps one after another. The first failure stops the
// run: later steps are not started and the returned *types.ReportError
// names the kind that failed. The summary covers every attempted step.
// A nil target disables uploads.
func (uc *ReportUseCase) Execute(ctx context.Context, steps []Step, target *UploadTarget) (*entity.RunSummary, error) {
	summary := &entity.RunSummary{StartedAt: uc.now()}
	defer func() { summary.FinishedAt = uc.now() }()

	for _, step := range steps {
		kind := step.Generator.Kind()
		result := entity.ReportResult{Kind: kind, Request: step.Request}

		status := uc.console.Status(fmt.Sprintf("Generating %s report...", kind.Title()))
		started := uc.now()
		output, err := step.Generator.Generate(ctx, step.Request)
		result.Duration = uc.now().Sub(started)
		status.Stop()

		if err != nil {
			result.Error = err.Error()
			summary.Results = append(summary.Results, result)
			uc.console.LogError("Failed to generate %s report: %s", kind.Title(), err)
			return summary, &types.ReportError{Kind: string(kind), Stage: types.StageGenerate, Err: err}
		}

		result.OutputPath = absPath(output.Path)
		result.Rows = output.Rows
		uc.console.LogSuccess("Successfully generated %s report (%d rows): %s", kind.Title(), output.Rows, result.OutputPath)

		if target != nil {
			uri, err := target.Repo.Upload(ctx, target.Bucket, target.Prefix, output.Path)
			if err != nil {
				result.Error = err.Error()
				summary.Results = append(summary.Results, result)
				uc.console.LogError("Failed to upload %s report: %s", kind.Title(), err)
				return summary, &types.ReportError{Kind: string(kind), Stage: types.StageUpload, Err: err}
			}
			result.UploadURI = uri
			uc.console.LogInfo("Uploaded %s report to %s", kind.Title(), uri)
		}

		result.Success = true
		summary.Results = append(summary.Results, result)
	}

	return summary, nil
}

func (uc *ReportUseCase) displaySummary(summary *entity.RunSummary) {
	if summary == nil || len(summary.Results) == 0 {
		return
	}

	table := uc.console.CreateTable()
	table.AddColumn("Report")
	table.AddColumn("Status")
	table.AddColumn("Rows")
	table.AddColumn("Output")
	table.AddColumn("Duration")

	for _, r := range summary.Results {
		status := "OK"
		if !r.Success {
			status = "FAILED"
		}
		table.AddRow(r.Kind.Title(), status, r.Rows, r.OutputPath, r.Duration.Round(time.Millisecond))
	}

	uc.console.Println(table.Render())
}

// exportSummary grava o resumo nos formatos pedidos. Falhas aqui são apenas
// registradas, pois os relatórios já foram gerados.
func (uc *ReportUseCase) exportSummary(summary *entity.RunSummary, args *types.CLIArgs) {
	if summary == nil || len(args.SummaryType) == 0 {
		return
	}

	name := args.SummaryName
	if name == "" {
		name = DefaultSummaryName
	}

	for _, summaryType := range args.SummaryType {
		var (
			path string
			err  error
		)
		switch summaryType {
		case "csv":
			path, err = uc.exportRepo.ExportSummaryToCSV(summary, name, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportSummaryToJSON(summary, name, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportSummaryToPDF(summary, name, args.Dir)
		default:
			uc.console.LogWarning("Unsupported summary type '%s'", summaryType)
			continue
		}

		if err != nil {
			uc.console.LogError("Failed to export run summary to %s: %s", summaryType, err)
		} else {
			uc.console.LogSuccess("Successfully exported run summary to %s: %s", summaryType, path)
		}
	}
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
