package main

import (
	"fmt"
	"os"

	"github.com/diillson/datamart-reports/internal/adapter/driven/aws"
	"github.com/diillson/datamart-reports/internal/adapter/driven/config"
	"github.com/diillson/datamart-reports/internal/adapter/driven/datamart"
	"github.com/diillson/datamart-reports/internal/adapter/driven/export"
	"github.com/diillson/datamart-reports/internal/adapter/driving/cli"
	"github.com/diillson/datamart-reports/internal/application/usecase"
	"github.com/diillson/datamart-reports/pkg/console"
	"github.com/diillson/datamart-reports/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// O driver e o perfil AWS só são conhecidos depois do parse das flags,
	// então os relatórios e o upload entram como providers
	reportUseCase := usecase.NewReportUseCase(
		datamart.NewFactoryForDriver,
		config.NewConfigRepository(),
		export.NewExportRepository(),
		aws.NewS3Repository,
		console.NewConsole(),
	)

	app.SetReportUseCase(reportUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
