package cli

import (
	"context"
	"path/filepath"

	"github.com/diillson/datamart-reports/internal/application/usecase"
	"github.com/diillson/datamart-reports/internal/shared/types"
	"github.com/diillson/datamart-reports/pkg/version"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	version       string
	quiet         bool
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "datamart-reports",
		Short:         "Generate datamart CSV reports",
		Version:       formattedVersion,
		RunE:          app.runCommand,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "Datamart Reports version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON run plan file")
	flags.String("env-file", ".env", "Environment file loaded before reading REPORT_* variables (ignored if missing)")
	flags.String("driver", "mysql", "Datamart driver: mysql or sqlite3")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.StringP("product", "p", usecase.DefaultProductCode, "Product code for product-scoped reports")
	flags.Int64("as-of", usecase.DefaultAsOf, "On-risk point in time (epoch milliseconds)")
	flags.Int64("start", usecase.DefaultStart, "Window start (epoch milliseconds, inclusive)")
	flags.Int64("end", usecase.DefaultEnd, "Window end (epoch milliseconds, exclusive)")
	flags.StringSliceP("reports", "r", nil, "Reports to run: on_risk, all_policies, transaction_financial_impact, financial_transactions (default: all)")
	flags.StringP("summary-name", "n", usecase.DefaultSummaryName, "Base name for the run summary file (without extension)")
	flags.StringSliceP("summary-type", "y", nil, "Run summary types: csv, json, pdf")
	flags.String("upload-bucket", "", "S3 bucket that receives every generated report")
	flags.String("upload-prefix", "", "Key prefix for uploaded reports")
	flags.String("aws-profile", "", "AWS profile used for uploads")
	flags.BoolP("quiet", "q", false, "Do not print the welcome banner")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetArgs substitui os argumentos da linha de comando (usado em testes).
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()

	configFile, _ := flags.GetString("config-file")
	envFile, _ := flags.GetString("env-file")
	driver, _ := flags.GetString("driver")
	dir, _ := flags.GetString("dir")
	product, _ := flags.GetString("product")
	asOf, _ := flags.GetInt64("as-of")
	start, _ := flags.GetInt64("start")
	end, _ := flags.GetInt64("end")
	reports, _ := flags.GetStringSlice("reports")
	summaryName, _ := flags.GetString("summary-name")
	summaryType, _ := flags.GetStringSlice("summary-type")
	uploadBucket, _ := flags.GetString("upload-bucket")
	uploadPrefix, _ := flags.GetString("upload-prefix")
	awsProfile, _ := flags.GetString("aws-profile")
	app.quiet, _ = flags.GetBool("quiet")

	args := &types.CLIArgs{
		ConfigFile:   configFile,
		EnvFile:      envFile,
		Driver:       driver,
		Dir:          dir,
		ProductCode:  product,
		AsOf:         asOf,
		Start:        start,
		End:          end,
		Reports:      reports,
		SummaryName:  summaryName,
		SummaryType:  summaryType,
		UploadBucket: uploadBucket,
		UploadPrefix: uploadPrefix,
		AWSProfile:   awsProfile,
	}

	// Mescla o arquivo de configuração; flags explícitas têm prioridade
	if args.ConfigFile != "" {
		cfg, err := app.reportUseCase.LoadConfig(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		args.ApplyConfig(cfg, flags.Changed)
	}

	// Mantém caminhos relativos para que os nomes passados aos relatórios
	// sejam exatamente os nomes configurados
	if args.Dir != "" {
		args.Dir = filepath.Clean(args.Dir)
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	// Exibe o banner de boas-vindas
	if !app.quiet {
		displayWelcomeBanner(app.version)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.reportUseCase.RunReports(ctx, cliArgs)
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}
