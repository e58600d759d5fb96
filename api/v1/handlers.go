package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	datasetdomain "olist/internal/dataset/domain"
	exportapp "olist/internal/export/application"
	exportdomain "olist/internal/export/domain"
	ordersapp "olist/internal/orders/application"
	ordersdomain "olist/internal/orders/domain"
	sellersdomain "olist/internal/sellers/domain"
	sharedinfra "olist/internal/shared/infrastructure"
	trainingapp "olist/internal/training/application"
)

const snapshotKey = "snapshot"

// ExportStore cache partagé des exports sérialisés (Redis en production)
type ExportStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte) error
	Clear(ctx context.Context) error
}

// Handlers expose les tables d'entraînement en HTTP.
// Le snapshot et les tables calculées sont mis en cache pendant la durée du TTL.
type Handlers struct {
	pipeline      *trainingapp.Pipeline
	exportService *exportapp.ExportService
	logger        *zap.Logger

	snapshots sharedinfra.Cache[*datasetdomain.Snapshot]
	orders    sharedinfra.Cache[*ordersdomain.OrderTrainingTable]
	sellers   sharedinfra.Cache[*sellersdomain.SellerTrainingTable]
	store     ExportStore
}

// NewHandlers crée une nouvelle instance des handlers
func NewHandlers(
	pipeline *trainingapp.Pipeline,
	exportService *exportapp.ExportService,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		pipeline:      pipeline,
		exportService: exportService,
		logger:        logger,
		snapshots:     sharedinfra.NewTTLCache[*datasetdomain.Snapshot](cacheTTL),
		orders:        sharedinfra.NewTTLCache[*ordersdomain.OrderTrainingTable](cacheTTL),
		sellers:       sharedinfra.NewTTLCache[*sellersdomain.SellerTrainingTable](cacheTTL),
	}
}

// WithExportStore active le cache partagé des exports
func (h *Handlers) WithExportStore(store ExportStore) *Handlers {
	h.store = store
	return h
}

// Routes monte les routes /training et /tables
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/training/orders", h.GetOrderTraining)
	r.Get("/training/sellers", h.GetSellerTraining)
	r.Get("/tables", h.GetTables)
	r.Delete("/cache", h.ResetCache)
	return r
}

// GetOrderTraining handler pour GET /api/v1/training/orders
// Paramètres: format (csv|parquet|xlsx), with_distance (true), all_statuses (false)
func (h *Handlers) GetOrderTraining(w http.ResponseWriter, r *http.Request) {
	job, ok := h.newJob(w, r, exportdomain.ExportTargetOrders)
	if !ok {
		return
	}

	opts := ordersapp.DefaultOrderOptions()
	var err error
	if opts.WithDistanceSellerCustomer, err = boolParam(r, "with_distance", true); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	allStatuses, err := boolParam(r, "all_statuses", false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts.IsDelivered = !allStatuses

	key := sharedinfra.NewCacheKeyBuilder().
		Add("orders").
		AddBool(opts.IsDelivered).
		AddBool(opts.WithDistanceSellerCustomer).
		Build()

	h.serve(w, r, job, key, func(ctx context.Context, buf *bytes.Buffer) error {
		table, found := h.orders.Get(key)
		if !found {
			snapshot, err := h.snapshot(ctx)
			if err != nil {
				return fmt.Errorf("load snapshot: %w", err)
			}
			if table, err = h.pipeline.OrderTable(snapshot, opts); err != nil {
				return fmt.Errorf("build order training data: %w", err)
			}
			h.orders.Set(key, table)
		}
		return h.exportService.WriteOrders(buf, job, table)
	})
}

// GetSellerTraining handler pour GET /api/v1/training/sellers
func (h *Handlers) GetSellerTraining(w http.ResponseWriter, r *http.Request) {
	job, ok := h.newJob(w, r, exportdomain.ExportTargetSellers)
	if !ok {
		return
	}

	const key = "sellers"
	h.serve(w, r, job, key, func(ctx context.Context, buf *bytes.Buffer) error {
		table, found := h.sellers.Get(key)
		if !found {
			snapshot, err := h.snapshot(ctx)
			if err != nil {
				return fmt.Errorf("load snapshot: %w", err)
			}
			if table, err = h.pipeline.SellerTable(snapshot); err != nil {
				return fmt.Errorf("build seller training data: %w", err)
			}
			h.sellers.Set(key, table)
		}
		return h.exportService.WriteSellers(buf, job, table)
	})
}

// serve renvoie l'export depuis le store s'il existe, sinon le calcule avec render et l'y dépose.
// Une panne du store n'empêche pas de répondre.
func (h *Handlers) serve(
	w http.ResponseWriter,
	r *http.Request,
	job *exportdomain.ExportJob,
	key string,
	render func(ctx context.Context, buf *bytes.Buffer) error,
) {
	storeKey := key + ":" + string(job.Format())

	if h.store != nil {
		body, found, err := h.store.Get(r.Context(), storeKey)
		if err != nil {
			h.logger.Warn("export store read failed", zap.String("key", storeKey), zap.Error(err))
		}
		if found {
			writeAttachment(w, job, body)
			return
		}
	}

	var buf bytes.Buffer
	if err := render(r.Context(), &buf); err != nil {
		h.fail(w, "export "+string(job.Target())+" training data", err)
		return
	}

	if h.store != nil {
		if err := h.store.Set(r.Context(), storeKey, buf.Bytes()); err != nil {
			h.logger.Warn("export store write failed", zap.String("key", storeKey), zap.Error(err))
		}
	}
	writeAttachment(w, job, buf.Bytes())
}

// TableInfo décrit une table chargée
type TableInfo struct {
	Name    string   `json:"name"`
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

// GetTables handler pour GET /api/v1/tables
func (h *Handlers) GetTables(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshot(r.Context())
	if err != nil {
		h.fail(w, "load snapshot", err)
		return
	}

	tables := make([]TableInfo, 0, len(snapshot.Names()))
	for _, name := range snapshot.Names() {
		df, err := snapshot.Table(name)
		if err != nil {
			h.fail(w, "read table", err)
			return
		}
		tables = append(tables, TableInfo{Name: string(name), Rows: df.Nrow(), Columns: df.Names()})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"loaded_at": snapshot.LoadedAt(),
		"tables":    tables,
	})
}

// ResetCache handler pour DELETE /api/v1/cache
func (h *Handlers) ResetCache(w http.ResponseWriter, r *http.Request) {
	h.snapshots.Clear()
	h.orders.Clear()
	h.sellers.Clear()
	if h.store != nil {
		if err := h.store.Clear(r.Context()); err != nil {
			h.fail(w, "clear export store", err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) snapshot(ctx context.Context) (*datasetdomain.Snapshot, error) {
	if snapshot, ok := h.snapshots.Get(snapshotKey); ok {
		return snapshot, nil
	}
	snapshot, err := h.pipeline.Load(ctx)
	if err != nil {
		return nil, err
	}
	h.snapshots.Set(snapshotKey, snapshot)
	return snapshot, nil
}

func (h *Handlers) newJob(w http.ResponseWriter, r *http.Request, target exportdomain.ExportTarget) (*exportdomain.ExportJob, bool) {
	format, err := exportdomain.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	job, err := exportdomain.NewExportJob(format, target)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return job, true
}

func (h *Handlers) fail(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func writeAttachment(w http.ResponseWriter, job *exportdomain.ExportJob, body []byte) {
	w.Header().Set("Content-Type", job.Format().ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+job.FileName())
	w.Header().Set("X-Export-Job", job.ID().String())
	w.Write(body)
}

func boolParam(r *http.Request, name string, fallback bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return v, nil
}
