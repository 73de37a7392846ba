package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	env "github.com/Netflix/go-env"
	"github.com/diillson/datamart-reports/internal/domain/entity"
	"github.com/diillson/datamart-reports/internal/domain/repository"
	"github.com/diillson/datamart-reports/internal/shared/types"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := filepath.Ext(filePath)
	fileExtension = strings.ToLower(fileExtension)

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	// Lê o arquivo
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	// Normaliza e valida os nomes dos relatórios selecionados
	for i, name := range config.Reports {
		kind := entity.ReportKind(strings.ToLower(strings.TrimSpace(name)))
		if !kind.Valid() {
			return nil, fmt.Errorf("%w in %s: %q", types.ErrUnknownReportKind, filePath, name)
		}
		config.Reports[i] = string(kind)
	}
	for name := range config.FileTemplates {
		if !entity.ReportKind(name).Valid() {
			return nil, fmt.Errorf("%w in %s file_templates: %q", types.ErrUnknownReportKind, filePath, name)
		}
	}

	return &config, nil
}

// LoadCredentials lê as credenciais do datamart do ambiente do processo.
// Se envFile existir, suas variáveis são carregadas antes, sem sobrescrever
// as que já estão definidas. Variáveis ausentes resultam em campos vazios.
func (r *ConfigRepositoryImpl) LoadCredentials(envFile string) (*entity.Credentials, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading env file %s: %w", envFile, err)
		}
	}

	var creds entity.Credentials
	if _, err := env.UnmarshalFromEnviron(&creds); err != nil {
		return nil, fmt.Errorf("error reading credentials from environment: %w", err)
	}

	return &creds, nil
}
