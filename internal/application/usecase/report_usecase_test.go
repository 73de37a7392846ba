package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/diillson/datamart-reports/internal/domain/entity"
	"github.com/diillson/datamart-reports/internal/domain/repository"
	"github.com/diillson/datamart-reports/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Test doubles ---

type callLog struct {
	kinds    []entity.ReportKind
	requests []entity.ReportRequest
	creds    []*entity.Credentials
}

type fakeGenerator struct {
	kind  entity.ReportKind
	creds *entity.Credentials
	log   *callLog
	err   error
	rows  int
}

func (g *fakeGenerator) Kind() entity.ReportKind { return g.kind }

func (g *fakeGenerator) Generate(ctx context.Context, req entity.ReportRequest) (entity.ReportOutput, error) {
	g.log.kinds = append(g.log.kinds, g.kind)
	g.log.requests = append(g.log.requests, req)
	g.log.creds = append(g.log.creds, g.creds)
	if g.err != nil {
		return entity.ReportOutput{}, g.err
	}
	return entity.ReportOutput{Path: req.OutputPath, Rows: g.rows}, nil
}

type fakeFactory struct {
	driver   string
	log      *callLog
	failures map[entity.ReportKind]error
	buildErr map[entity.ReportKind]error
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		log:      &callLog{},
		failures: map[entity.ReportKind]error{},
		buildErr: map[entity.ReportKind]error{},
	}
}

func (f *fakeFactory) NewReport(kind entity.ReportKind, creds *entity.Credentials) (repository.ReportGenerator, error) {
	if err := f.buildErr[kind]; err != nil {
		return nil, err
	}
	return &fakeGenerator{kind: kind, creds: creds, log: f.log, err: f.failures[kind], rows: 7}, nil
}

type fakeConfigRepo struct {
	creds   *entity.Credentials
	envFile string
}

func (r *fakeConfigRepo) LoadConfigFile(filePath string) (*types.Config, error) {
	return &types.Config{}, nil
}

func (r *fakeConfigRepo) LoadCredentials(envFile string) (*entity.Credentials, error) {
	r.envFile = envFile
	return r.creds, nil
}

type mockExportRepo struct {
	mock.Mock
}

func (m *mockExportRepo) ExportSummaryToCSV(summary *entity.RunSummary, filename, outputDir string) (string, error) {
	args := m.Called(summary, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *mockExportRepo) ExportSummaryToJSON(summary *entity.RunSummary, filename, outputDir string) (string, error) {
	args := m.Called(summary, filename, outputDir)
	return args.String(0), args.Error(1)
}

func (m *mockExportRepo) ExportSummaryToPDF(summary *entity.RunSummary, filename, outputDir string) (string, error) {
	args := m.Called(summary, filename, outputDir)
	return args.String(0), args.Error(1)
}

type fakeUploadRepo struct {
	uploaded []string
	err      error
}

func (u *fakeUploadRepo) Upload(ctx context.Context, bucket, prefix, localPath string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.uploaded = append(u.uploaded, localPath)
	return fmt.Sprintf("s3://%s/%s/%s", bucket, prefix, localPath), nil
}

type recordingConsole struct {
	errors    []string
	successes []string
	warnings  []string
}

func (c *recordingConsole) Print(a ...interface{})                  {}
func (c *recordingConsole) Printf(format string, a ...interface{})  {}
func (c *recordingConsole) Println(a ...interface{})                {}
func (c *recordingConsole) LogInfo(format string, a ...interface{}) {}
func (c *recordingConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}
func (c *recordingConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}
func (c *recordingConsole) LogSuccess(format string, a ...interface{}) {
	c.successes = append(c.successes, fmt.Sprintf(format, a...))
}
func (c *recordingConsole) Status(message string) types.StatusHandle { return noopStatus{} }
func (c *recordingConsole) CreateTable() types.TableInterface      { return &noopTable{} }

type noopStatus struct{}

func (noopStatus) Update(message string) {}
func (noopStatus) Stop()                 {}

type noopTable struct{ rows int }

func (t *noopTable) AddColumn(name string, options ...interface{}) {}
func (t *noopTable) AddRow(cells ...interface{})                   { t.rows++ }
func (t *noopTable) Render() string                                { return "" }

func defaultArgs() *types.CLIArgs {
	return &types.CLIArgs{
		EnvFile:     ".env",
		Driver:      "mysql",
		ProductCode: DefaultProductCode,
		AsOf:        DefaultAsOf,
		Start:       DefaultStart,
		End:         DefaultEnd,
	}
}

func newTestUseCase(factory *fakeFactory, exportRepo repository.ExportRepository, upload repository.UploadRepository) (*ReportUseCase, *fakeConfigRepo, *recordingConsole) {
	configRepo := &fakeConfigRepo{creds: &entity.Credentials{User: "reader", Host: "datamart"}}
	console := &recordingConsole{}
	if exportRepo == nil {
		exportRepo = new(mockExportRepo)
	}
	factoryFor := func(driver string) (repository.ReportFactory, error) {
		factory.driver = driver
		return factory, nil
	}
	uploaderFor := func(profile string) repository.UploadRepository {
		return upload
	}
	return NewReportUseCase(factoryFor, configRepo, exportRepo, uploaderFor, console), configRepo, console
}

// --- Tests ---

func TestRunReports_InvokesReportsInFixedOrder(t *testing.T) {
	factory := newFakeFactory()
	uc, configRepo, _ := newTestUseCase(factory, nil, nil)

	err := uc.RunReports(context.Background(), defaultArgs())

	require.NoError(t, err)
	assert.Equal(t, ".env", configRepo.envFile)
	assert.Equal(t, "mysql", factory.driver)
	assert.Equal(t, []entity.ReportKind{
		entity.ReportOnRisk,
		entity.ReportAllPolicies,
		entity.ReportTransactionFinancialImpact,
		entity.ReportFinancialTransactions,
	}, factory.log.kinds)
}

func TestRunReports_SharesOneCredentialsRecord(t *testing.T) {
	factory := newFakeFactory()
	uc, configRepo, _ := newTestUseCase(factory, nil, nil)

	require.NoError(t, uc.RunReports(context.Background(), defaultArgs()))

	require.Len(t, factory.log.creds, 4)
	for _, creds := range factory.log.creds {
		assert.Same(t, configRepo.creds, creds)
	}
}

func TestRunReports_OnRiskFailureStopsTheRun(t *testing.T) {
	factory := newFakeFactory()
	cause := errors.New("dial tcp: connection refused")
	factory.failures[entity.ReportOnRisk] = cause
	uc, _, console := newTestUseCase(factory, nil, nil)

	err := uc.RunReports(context.Background(), defaultArgs())

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	var reportErr *types.ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, string(entity.ReportOnRisk), reportErr.Kind)
	assert.Equal(t, types.StageGenerate, reportErr.Stage)

	assert.Equal(t, []entity.ReportKind{entity.ReportOnRisk}, factory.log.kinds)
	assert.Len(t, console.errors, 1)
}

func TestExecute_MiddleFailureKeepsEarlierResults(t *testing.T) {
	factory := newFakeFactory()
	factory.failures[entity.ReportTransactionFinancialImpact] = errors.New("bad window")
	uc, _, _ := newTestUseCase(factory, nil, nil)

	steps, err := uc.BuildSteps(defaultArgs(), &entity.Credentials{})
	require.NoError(t, err)

	summary, err := uc.Execute(context.Background(), steps, nil)

	require.Error(t, err)
	assert.Equal(t, []entity.ReportKind{
		entity.ReportOnRisk,
		entity.ReportAllPolicies,
		entity.ReportTransactionFinancialImpact,
	}, factory.log.kinds)
	require.Len(t, summary.Results, 3)
	assert.True(t, summary.Results[0].Success)
	assert.True(t, summary.Results[1].Success)
	assert.False(t, summary.Results[2].Success)
	assert.Equal(t, "bad window", summary.Results[2].Error)
	assert.False(t, summary.Succeeded())
	assert.False(t, summary.FinishedAt.Before(summary.StartedAt))
}

func TestRunReports_PassesLiteralParameters(t *testing.T) {
	factory := newFakeFactory()
	uc, _, _ := newTestUseCase(factory, nil, nil)

	require.NoError(t, uc.RunReports(context.Background(), defaultArgs()))

	reqs := factory.log.requests
	require.Len(t, reqs, 4)

	assert.Equal(t, entity.ReportRequest{
		ProductCode: "personal-auto",
		AsOf:        1667278800000,
		OutputPath:  "on_risk_report_1667278800000.csv",
	}, reqs[0])
	assert.Equal(t, entity.ReportRequest{
		ProductCode: "personal-auto",
		Start:       1659326400000,
		End:         1864596800000,
		OutputPath:  "all_policies_report_1659326400000-1864596800000.csv",
	}, reqs[1])
	assert.Equal(t, entity.ReportRequest{
		ProductCode: "personal-auto",
		Start:       1659326400000,
		End:         1864596800000,
		OutputPath:  "transaction_financial_impact_report_1659326400000-1864596800000.csv",
	}, reqs[2])
	assert.Equal(t, entity.ReportRequest{
		Start:      1659326400000,
		End:        1864596800000,
		OutputPath: "financial_transactions_report_1659326400000-1864596800000.csv",
	}, reqs[3])
}

func TestRunReports_DriverFailureInvokesNothing(t *testing.T) {
	factory := newFakeFactory()
	uc, configRepo, _ := newTestUseCase(factory, nil, nil)
	uc.factoryFor = func(driver string) (repository.ReportFactory, error) {
		return nil, types.ErrUnsupportedDriver
	}

	err := uc.RunReports(context.Background(), defaultArgs())

	assert.ErrorIs(t, err, types.ErrUnsupportedDriver)
	assert.Equal(t, ".env", configRepo.envFile)
	assert.Empty(t, factory.log.kinds)
}

func TestRunReports_BuildFailureInvokesNothing(t *testing.T) {
	factory := newFakeFactory()
	factory.buildErr[entity.ReportFinancialTransactions] = types.ErrUnknownReportKind
	uc, _, _ := newTestUseCase(factory, nil, nil)

	err := uc.RunReports(context.Background(), defaultArgs())

	var reportErr *types.ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, types.StageBuild, reportErr.Stage)
	assert.Empty(t, factory.log.kinds)
}

func TestRunReports_SelectedSubsetKeepsCanonicalOrder(t *testing.T) {
	factory := newFakeFactory()
	uc, _, _ := newTestUseCase(factory, nil, nil)
	args := defaultArgs()
	args.Reports = []string{"financial_transactions", "on_risk"}

	require.NoError(t, uc.RunReports(context.Background(), args))

	assert.Equal(t, []entity.ReportKind{entity.ReportOnRisk, entity.ReportFinancialTransactions}, factory.log.kinds)
}

func TestExecute_UploadsEachReport(t *testing.T) {
	factory := newFakeFactory()
	upload := &fakeUploadRepo{}
	uc, _, _ := newTestUseCase(factory, nil, upload)

	steps, err := uc.BuildSteps(defaultArgs(), &entity.Credentials{})
	require.NoError(t, err)

	summary, err := uc.Execute(context.Background(), steps, &UploadTarget{Repo: upload, Bucket: "reports-bucket", Prefix: "datamart"})

	require.NoError(t, err)
	assert.Len(t, upload.uploaded, 4)
	assert.Equal(t, "all_policies_report_1659326400000-1864596800000.csv", upload.uploaded[1])
	assert.Equal(t, "s3://reports-bucket/datamart/all_policies_report_1659326400000-1864596800000.csv", summary.Results[1].UploadURI)
}

func TestRunReports_UploadFailureStopsTheRun(t *testing.T) {
	factory := newFakeFactory()
	denied := errors.New("access denied")
	upload := &fakeUploadRepo{err: denied}
	uc, _, _ := newTestUseCase(factory, nil, upload)
	args := defaultArgs()
	args.UploadBucket = "reports-bucket"

	err := uc.RunReports(context.Background(), args)

	var reportErr *types.ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, types.StageUpload, reportErr.Stage)
	assert.Equal(t, string(entity.ReportOnRisk), reportErr.Kind)
	assert.ErrorIs(t, err, denied)
	assert.Equal(t, []entity.ReportKind{entity.ReportOnRisk}, factory.log.kinds)
}

func TestRunReports_ExportsSummaryEvenOnFailure(t *testing.T) {
	factory := newFakeFactory()
	factory.failures[entity.ReportAllPolicies] = errors.New("timeout")

	exportRepo := new(mockExportRepo)
	exportRepo.On("ExportSummaryToJSON", mock.AnythingOfType("*entity.RunSummary"), "nightly", "out").
		Return("/abs/out/nightly.json", nil)
	exportRepo.On("ExportSummaryToCSV", mock.AnythingOfType("*entity.RunSummary"), "nightly", "out").
		Return("", errors.New("disk full"))

	uc, _, console := newTestUseCase(factory, exportRepo, nil)
	args := defaultArgs()
	args.Dir = "out"
	args.SummaryName = "nightly"
	args.SummaryType = []string{"json", "csv", "xlsx"}

	err := uc.RunReports(context.Background(), args)

	require.Error(t, err)
	exportRepo.AssertExpectations(t)
	assert.Len(t, console.warnings, 1)
	assert.Contains(t, console.errors[len(console.errors)-1], "disk full")
}
