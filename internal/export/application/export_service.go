package application

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"
	"go.uber.org/zap"

	"olist/internal/export/domain"
	"olist/internal/export/infrastructure"
	ordersdomain "olist/internal/orders/domain"
	sellersdomain "olist/internal/sellers/domain"
)

// ExportService sérialise les tables d'entraînement dans le format demandé
type ExportService struct {
	logger *zap.Logger
}

// NewExportService crée une nouvelle instance de ExportService
func NewExportService(logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{logger: logger}
}

// WriteOrders écrit la table des commandes dans w
func (s *ExportService) WriteOrders(w io.Writer, job *domain.ExportJob, table *ordersdomain.OrderTrainingTable) error {
	if job.Target() != domain.ExportTargetOrders {
		return fmt.Errorf("export job %s targets %s, not orders", job.ID(), job.Target())
	}
	return s.write(w, job, table.Len(), table.DataFrame, func(w io.Writer) error {
		if !table.WithDistance() {
			return infrastructure.WriteParquet(w, domain.NewOrderParquetRowsNoDistance(table))
		}
		return infrastructure.WriteParquet(w, domain.NewOrderParquetRows(table))
	})
}

// WriteSellers écrit la table des vendeurs dans w
func (s *ExportService) WriteSellers(w io.Writer, job *domain.ExportJob, table *sellersdomain.SellerTrainingTable) error {
	if job.Target() != domain.ExportTargetSellers {
		return fmt.Errorf("export job %s targets %s, not sellers", job.ID(), job.Target())
	}
	return s.write(w, job, table.Len(), table.DataFrame, func(w io.Writer) error {
		return infrastructure.WriteParquet(w, domain.NewSellerParquetRows(table))
	})
}

// WriteFile crée path et y écrit le résultat de write
func (s *ExportService) WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *ExportService) write(
	w io.Writer,
	job *domain.ExportJob,
	rows int,
	frame func() dataframe.DataFrame,
	parquet func(io.Writer) error,
) error {
	start := time.Now()

	var err error
	switch job.Format() {
	case domain.ExportFormatCSV:
		err = infrastructure.WriteCSV(w, frame())
	case domain.ExportFormatXLSX:
		err = infrastructure.WriteXLSX(w, frame(), string(job.Target()))
	case domain.ExportFormatParquet:
		err = parquet(w)
	default:
		err = fmt.Errorf("unsupported export format %q", job.Format())
	}
	if err != nil {
		return fmt.Errorf("export %s as %s: %w", job.Target(), job.Format(), err)
	}

	s.logger.Info("training table exported",
		zap.String("job_id", job.ID().String()),
		zap.String("target", string(job.Target())),
		zap.String("format", string(job.Format())),
		zap.Int("rows", rows),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
