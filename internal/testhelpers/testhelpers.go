package testhelpers

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/joho/godotenv"

	"olist/database"
	"olist/internal/config"
	datasetdomain "olist/internal/dataset/domain"
)

// Headers des tables de fixture, dans l'ordre des fichiers Olist
var Headers = map[datasetdomain.TableName][]string{
	datasetdomain.TableOrders: {
		"order_id", "customer_id", "order_status", "order_purchase_timestamp", "order_approved_at",
		"order_delivered_carrier_date", "order_delivered_customer_date", "order_estimated_delivery_date",
	},
	datasetdomain.TableOrderItems: {
		"order_id", "order_item_id", "product_id", "seller_id", "shipping_limit_date", "price", "freight_value",
	},
	datasetdomain.TableOrderReviews: {
		"review_id", "order_id", "review_score",
	},
	datasetdomain.TableCustomers: {
		"customer_id", "customer_unique_id", "customer_zip_code_prefix", "customer_city", "customer_state",
	},
	datasetdomain.TableSellers: {
		"seller_id", "seller_zip_code_prefix", "seller_city", "seller_state",
	},
	datasetdomain.TableGeolocation: {
		"geolocation_zip_code_prefix", "geolocation_lat", "geolocation_lng", "geolocation_city", "geolocation_state",
	},
}

// Fixture construit en mémoire les tables Olist d'un test
type Fixture struct {
	rows map[datasetdomain.TableName][][]string
}

// NewFixture crée une fixture avec les tables principales vides
func NewFixture() *Fixture {
	return &Fixture{rows: make(map[datasetdomain.TableName][][]string)}
}

// Order ajoute une commande; les dates vides sont manquantes
func (f *Fixture) Order(id, customerID, status, purchase, approved, carrier, delivered, estimated string) *Fixture {
	return f.add(datasetdomain.TableOrders, id, customerID, status, purchase, approved, carrier, delivered, estimated)
}

// OrderItem ajoute un item de commande
func (f *Fixture) OrderItem(orderID string, itemID int, sellerID, shippingLimit string, price, freight float64) *Fixture {
	return f.add(datasetdomain.TableOrderItems,
		orderID, strconv.Itoa(itemID), "product-"+orderID, sellerID, shippingLimit,
		strconv.FormatFloat(price, 'f', -1, 64), strconv.FormatFloat(freight, 'f', -1, 64),
	)
}

// Review ajoute une review
func (f *Fixture) Review(orderID string, score int) *Fixture {
	id := "review-" + strconv.Itoa(len(f.rows[datasetdomain.TableOrderReviews])+1)
	return f.add(datasetdomain.TableOrderReviews, id, orderID, strconv.Itoa(score))
}

// RawReview ajoute une review avec une note brute (vide pour une note absente)
func (f *Fixture) RawReview(orderID, score string) *Fixture {
	id := "review-" + strconv.Itoa(len(f.rows[datasetdomain.TableOrderReviews])+1)
	return f.add(datasetdomain.TableOrderReviews, id, orderID, score)
}

// Customer ajoute un client
func (f *Fixture) Customer(id, zip string) *Fixture {
	return f.add(datasetdomain.TableCustomers, id, "unique-"+id, zip, "sao paulo", "SP")
}

// Seller ajoute un vendeur
func (f *Fixture) Seller(id, zip, city, state string) *Fixture {
	return f.add(datasetdomain.TableSellers, id, zip, city, state)
}

// Geolocation ajoute un point de géolocalisation
func (f *Fixture) Geolocation(zip string, lat, lng float64) *Fixture {
	return f.add(datasetdomain.TableGeolocation, zip,
		strconv.FormatFloat(lat, 'f', -1, 64), strconv.FormatFloat(lng, 'f', -1, 64), "sao paulo", "SP",
	)
}

func (f *Fixture) add(table datasetdomain.TableName, values ...string) *Fixture {
	f.rows[table] = append(f.rows[table], values)
	return f
}

// Records retourne en-tête et lignes d'une table
func (f *Fixture) Records(table datasetdomain.TableName) [][]string {
	records := [][]string{Headers[table]}
	return append(records, f.rows[table]...)
}

// Snapshot construit le snapshot de la fixture
func (f *Fixture) Snapshot(tb testing.TB) *datasetdomain.Snapshot {
	tb.Helper()

	frames := make(map[datasetdomain.TableName]dataframe.DataFrame, len(Headers))
	for table, header := range Headers {
		df, err := datasetdomain.NewStringTable(header, f.rows[table])
		if err != nil {
			tb.Fatalf("fixture table %s: %v", table, err)
		}
		frames[table] = df
	}

	snapshot, err := datasetdomain.NewSnapshot(frames)
	if err != nil {
		tb.Fatalf("fixture snapshot: %v", err)
	}
	return snapshot
}

// WriteCSV écrit la fixture sous forme de fichiers olist_<table>_dataset.csv dans dir
func (f *Fixture) WriteCSV(tb testing.TB, dir string) {
	tb.Helper()

	for table := range Headers {
		df, err := datasetdomain.NewStringTable(Headers[table], f.rows[table])
		if err != nil {
			tb.Fatalf("fixture table %s: %v", table, err)
		}
		path := filepath.Join(dir, "olist_"+string(table)+"_dataset.csv")
		file, err := os.Create(path)
		if err != nil {
			tb.Fatalf("create %s: %v", path, err)
		}
		if err := df.WriteCSV(file); err != nil {
			file.Close()
			tb.Fatalf("write %s: %v", path, err)
		}
		file.Close()
	}
}

// SetupTestDB ouvre la base de test ou skip le test si elle n'est pas disponible
func SetupTestDB(tb testing.TB) *sql.DB {
	tb.Helper()

	// Charger les variables d'environnement
	_ = godotenv.Load("../../.env")

	cfg, err := config.LoadFile("")
	if err != nil {
		tb.Skipf("Skipping: invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	db, err := database.Open(ctx, cfg.Database.DSN())
	if err != nil {
		tb.Skipf("Skipping: database not available: %v", err)
	}
	tb.Cleanup(func() { db.Close() })
	return db
}
