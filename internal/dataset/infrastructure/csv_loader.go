package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"

	"olist/internal/dataset/domain"
	sharedinfra "olist/internal/shared/infrastructure"
)

// LoadObserver reçoit la durée de chargement de chaque table
type LoadObserver interface {
	ObserveLoad(table string, elapsed time.Duration)
}

type nopLoadObserver struct{}

func (nopLoadObserver) ObserveLoad(string, time.Duration) {}

// CSVLoader charge tous les fichiers *.csv d'un répertoire.
// Les fichiers sont lus en parallèle, toutes les colonnes en chaînes.
type CSVLoader struct {
	dir      string
	workers  int
	logger   *zap.Logger
	observer LoadObserver
}

// NewCSVLoader crée un loader sur le répertoire dir
func NewCSVLoader(dir string, workers int, logger *zap.Logger, observer LoadObserver) *CSVLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = nopLoadObserver{}
	}
	return &CSVLoader{
		dir:      dir,
		workers:  workers,
		logger:   logger,
		observer: observer,
	}
}

// Load lit le répertoire et construit le snapshot
func (l *CSVLoader) Load(ctx context.Context) (*domain.Snapshot, error) {
	files, err := l.files()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no csv file in %s", l.dir)
	}

	var (
		mu     sync.Mutex
		tables = make(map[domain.TableName]dataframe.DataFrame, len(files))
	)

	pool := sharedinfra.NewWorkerPool(ctx, l.workers)
	pool.Start()
	for _, file := range files {
		name := domain.TableFromFilename(file)
		path := filepath.Join(l.dir, file)
		err := pool.Submit(func(ctx context.Context) error {
			start := time.Now()
			df, err := readCSV(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", file, err)
			}
			l.observer.ObserveLoad(string(name), time.Since(start))

			mu.Lock()
			defer mu.Unlock()
			tables[name] = df
			return nil
		})
		if err != nil {
			break
		}
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshot, err := domain.NewSnapshot(tables)
	if err != nil {
		return nil, err
	}
	l.logger.Info("csv snapshot loaded",
		zap.String("dir", l.dir),
		zap.Int("tables", len(tables)),
	)
	return snapshot, nil
}

// files retourne les fichiers CSV du répertoire, triés par nom
func (l *CSVLoader) files() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

func readCSV(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err == nil {
		return df, nil
	}

	// gota refuse un fichier sans ligne de données: on relit l'en-tête seul
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return dataframe.DataFrame{}, err
	}
	raw := dataframe.ReadCSV(f,
		dataframe.HasHeader(false),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if raw.Err != nil || raw.Nrow() != 1 {
		return df, df.Err
	}
	// Records()[0] contient les noms générés, Records()[1] l'en-tête du fichier
	return domain.NewStringTable(raw.Records()[1], nil)
}
