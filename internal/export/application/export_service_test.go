package application

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xuri/excelize/v2"

	"olist/internal/export/domain"
	ordersapp "olist/internal/orders/application"
	ordersdomain "olist/internal/orders/domain"
	ordersinfra "olist/internal/orders/infrastructure"
	sellersapp "olist/internal/sellers/application"
	sellersdomain "olist/internal/sellers/domain"
	"olist/internal/testhelpers"
)

func buildTables(t *testing.T) (*ordersdomain.OrderTrainingTable, *sellersdomain.SellerTrainingTable) {
	t.Helper()

	repo := ordersinfra.NewSnapshotRepository(testhelpers.MarketplaceFixture().Snapshot(t))
	orders := ordersapp.NewOrderFeatureBuilder(repo, nil, nil)
	sellers, err := sellersapp.NewSellerFeatureBuilder(repo, orders, sellersdomain.DefaultEconomics(), nil, nil)
	require.NoError(t, err)

	orderTable, err := orders.TrainingData(ordersapp.DefaultOrderOptions())
	require.NoError(t, err)
	sellerTable, err := sellers.TrainingData()
	require.NoError(t, err)
	return orderTable, sellerTable
}

func TestExportService_CSV(t *testing.T) {
	orders, _ := buildTables(t)
	job, err := domain.NewExportJob(domain.ExportFormatCSV, domain.ExportTargetOrders)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewExportService(nil).WriteOrders(&buf, job, orders))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, orders.Len()+1)
	assert.Equal(t, strings.Join(orders.Columns(), ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "o1,"))
}

func TestExportService_XLSX(t *testing.T) {
	_, sellers := buildTables(t)
	job, err := domain.NewExportJob(domain.ExportFormatXLSX, domain.ExportTargetSellers)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewExportService(nil).WriteSellers(&buf, job, sellers))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("sellers")
	require.NoError(t, err)
	require.Len(t, rows, sellers.Len()+1)
	assert.Equal(t, sellersdomain.SellerColumns, rows[0])
	assert.Equal(t, "s1", rows[1][0])
}

func TestExportService_Parquet(t *testing.T) {
	orders, _ := buildTables(t)
	job, err := domain.NewExportJob(domain.ExportFormatParquet, domain.ExportTargetOrders)
	require.NoError(t, err)

	service := NewExportService(nil)
	path := filepath.Join(t.TempDir(), job.FileName())
	require.NoError(t, service.WriteFile(path, func(w io.Writer) error {
		return service.WriteOrders(w, job, orders)
	}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(domain.OrderParquetRow), 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	require.Equal(t, int64(orders.Len()), pr.GetNumRows())
	got := make([]domain.OrderParquetRow, pr.GetNumRows())
	require.NoError(t, pr.Read(&got))
	assert.Equal(t, "o1", got[0].OrderID)
	assert.Equal(t, 150.0, got[0].Price)
	assert.False(t, math.IsNaN(got[0].DistanceSellerCustomer))
}

func TestExportService_ParquetWithoutDistance(t *testing.T) {
	repo := ordersinfra.NewSnapshotRepository(testhelpers.MarketplaceFixture().Snapshot(t))
	orders, err := ordersapp.NewOrderFeatureBuilder(repo, nil, nil).
		TrainingData(ordersapp.OrderOptions{IsDelivered: true, WithDistanceSellerCustomer: false})
	require.NoError(t, err)
	job, err := domain.NewExportJob(domain.ExportFormatParquet, domain.ExportTargetOrders)
	require.NoError(t, err)

	service := NewExportService(nil)
	path := filepath.Join(t.TempDir(), job.FileName())
	require.NoError(t, service.WriteFile(path, func(w io.Writer) error {
		return service.WriteOrders(w, job, orders)
	}))

	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(domain.OrderParquetRowNoDistance), 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	// le schéma suit les colonnes de la table: pas de colonne distance
	names := make([]string, 0, len(pr.Footer.Schema))
	for _, element := range pr.Footer.Schema[1:] {
		names = append(names, element.GetName())
	}
	assert.Equal(t, orders.Columns(), names)

	require.Equal(t, int64(orders.Len()), pr.GetNumRows())
	got := make([]domain.OrderParquetRowNoDistance, pr.GetNumRows())
	require.NoError(t, pr.Read(&got))
	assert.Equal(t, "o1", got[0].OrderID)
}

func TestExportService_TargetMismatch(t *testing.T) {
	orders, _ := buildTables(t)
	job, err := domain.NewExportJob(domain.ExportFormatCSV, domain.ExportTargetSellers)
	require.NoError(t, err)

	err = NewExportService(nil).WriteOrders(&bytes.Buffer{}, job, orders)
	assert.Error(t, err)
}
