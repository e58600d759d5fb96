package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olist/internal/dataset/domain"
	"olist/internal/testhelpers"
)

type recordingObserver struct {
	mu     sync.Mutex
	tables []string
}

func (o *recordingObserver) ObserveLoad(table string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tables = append(o.tables, table)
}

func TestCSVLoader_Load(t *testing.T) {
	dir := t.TempDir()
	testhelpers.MarketplaceFixture().WriteCSV(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o600))

	observer := &recordingObserver{}
	loader := NewCSVLoader(dir, 3, nil, observer)

	snapshot, err := loader.Load(context.Background())
	require.NoError(t, err)

	for _, name := range domain.CoreTables() {
		assert.True(t, snapshot.Has(name), name)
	}
	assert.Len(t, observer.tables, len(domain.CoreTables()))

	// les préfixes gardent leurs zéros et l'ordre source est conservé
	geo, err := snapshot.Table(domain.TableGeolocation)
	require.NoError(t, err)
	assert.Equal(t, []string{"01310", "20040", "01310"}, geo.Col("geolocation_zip_code_prefix").Records())
	assert.Equal(t, 4, snapshot.Rows(domain.TableOrders))
}

func TestCSVLoader_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	testhelpers.MarketplaceFixture().WriteCSV(t, dir)
	header := strings.Join(testhelpers.Headers[domain.TableOrderReviews], ",") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "olist_order_reviews_dataset.csv"), []byte(header), 0o644))

	snapshot, err := NewCSVLoader(dir, 2, nil, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.Rows(domain.TableOrderReviews))
	assert.Equal(t, 4, snapshot.Rows(domain.TableOrders))

	df, err := snapshot.Table(domain.TableOrderReviews)
	require.NoError(t, err)
	assert.Equal(t, testhelpers.Headers[domain.TableOrderReviews], df.Names())
}

func TestCSVLoader_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := NewCSVLoader(filepath.Join(t.TempDir(), "missing"), 2, nil, nil).Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := NewCSVLoader(t.TempDir(), 2, nil, nil).Load(context.Background())
		assert.ErrorContains(t, err, "no csv file")
	})

	t.Run("canceled context", func(t *testing.T) {
		dir := t.TempDir()
		testhelpers.MarketplaceFixture().WriteCSV(t, dir)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewCSVLoader(dir, 2, nil, nil).Load(ctx)
		assert.Error(t, err)
	})
}
