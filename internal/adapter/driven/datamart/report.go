package datamart

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/diillson/datamart-reports/internal/domain/entity"
)

// baseReport holds what every report kind shares: its kind, the run
// credentials and the connector used to reach the datamart.
type baseReport struct {
	kind      entity.ReportKind
	creds     *entity.Credentials
	connector Connector
}

func (b *baseReport) Kind() entity.ReportKind {
	return b.kind
}

// rowWriter streams query results into the CSV writer and returns how many
// data rows it wrote.
type rowWriter func(w *csv.Writer) (int, error)

// withDB abre a conexão, executa fn e fecha a conexão ao final.
func (b *baseReport) withDB(ctx context.Context, fn func(db *sql.DB) error) error {
	db, err := b.connector.Open(ctx, b.creds)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db)
}

// writeCSV trunca (ou cria) o arquivo de saída e escreve cabeçalho e linhas.
// Em caso de erro o arquivo parcial permanece no disco. O Close explícito
// reporta falhas de escrita final; o defer só cobre os caminhos de erro.
func writeCSV(outputPath string, header []string, write rowWriter) (entity.ReportOutput, error) {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return entity.ReportOutput{}, fmt.Errorf("error creating output directory '%s': %w", dir, err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return entity.ReportOutput{}, fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return entity.ReportOutput{}, fmt.Errorf("error writing CSV header: %w", err)
	}

	rows, err := write(writer)
	if err != nil {
		return entity.ReportOutput{}, err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return entity.ReportOutput{}, fmt.Errorf("error flushing CSV file: %w", err)
	}
	if err := file.Close(); err != nil {
		return entity.ReportOutput{}, fmt.Errorf("error closing CSV file: %w", err)
	}

	return entity.ReportOutput{Path: outputPath, Rows: rows}, nil
}

func formatMillis(ms int64) string {
	return strconv.FormatInt(ms, 10)
}

func formatNullMillis(ms sql.NullInt64) string {
	if !ms.Valid {
		return ""
	}
	return formatMillis(ms.Int64)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
