package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExportFormat représente le format d'export
type ExportFormat string

const (
	ExportFormatCSV     ExportFormat = "csv"
	ExportFormatParquet ExportFormat = "parquet"
	ExportFormatXLSX    ExportFormat = "xlsx"
)

// ParseExportFormat lit un format (insensible à la casse), csv par défaut
func ParseExportFormat(value string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(value))); f {
	case "":
		return ExportFormatCSV, nil
	case ExportFormatCSV, ExportFormatParquet, ExportFormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("invalid export format %q", value)
	}
}

// ContentType type MIME du format
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatParquet:
		return "application/vnd.apache.parquet"
	case ExportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}

// ExportTarget représente la table exportée
type ExportTarget string

const (
	ExportTargetOrders  ExportTarget = "orders"
	ExportTargetSellers ExportTarget = "sellers"
)

// ExportJob représente un job d'export d'une table d'entraînement
type ExportJob struct {
	id        uuid.UUID
	format    ExportFormat
	target    ExportTarget
	createdAt time.Time
}

// NewExportJob crée un nouveau job d'export avec validation
func NewExportJob(format ExportFormat, target ExportTarget) (*ExportJob, error) {
	switch format {
	case ExportFormatCSV, ExportFormatParquet, ExportFormatXLSX:
	default:
		return nil, errors.New("invalid export format")
	}
	if target != ExportTargetOrders && target != ExportTargetSellers {
		return nil, errors.New("invalid export target")
	}

	return &ExportJob{
		id:        uuid.New(),
		format:    format,
		target:    target,
		createdAt: time.Now(),
	}, nil
}

// ID retourne l'identifiant du job
func (ej *ExportJob) ID() uuid.UUID {
	return ej.id
}

// Format retourne le format d'export
func (ej *ExportJob) Format() ExportFormat {
	return ej.format
}

// Target retourne la table exportée
func (ej *ExportJob) Target() ExportTarget {
	return ej.target
}

// CreatedAt retourne la date de création
func (ej *ExportJob) CreatedAt() time.Time {
	return ej.createdAt
}

// FileName nom de fichier proposé: <target>_training_<id court>.<format>
func (ej *ExportJob) FileName() string {
	return fmt.Sprintf("%s_training_%s.%s", ej.target, ej.id.String()[:8], ej.format)
}
