package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchantdash/datagrid"
)

func TestLoadFileJSON(t *testing.T) {
	records, err := LoadFile("../testdata/payments.json")
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "speedmart-87654432", records[2]["invoice"])
	assert.Equal(t, "119.00", records[3]["amount"])
}

func TestLoadFileYAML(t *testing.T) {
	records, err := File{Path: "../testdata/payments.yaml"}.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "FPX SBIA", records[0]["paymentMethod"])
	assert.Equal(t, "Feb 18, 2024, 12:41:33 AM", records[1]["paymentDate"])
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile("../testdata/missing.json")
	assert.ErrorContains(t, err, "source: read")

	_, err = DecodeJSON([]byte(`{"not":"a list"}`))
	assert.ErrorContains(t, err, "parse json")

	_, err = DecodeYAML([]byte("key: value"))
	assert.ErrorContains(t, err, "parse yaml")
}

func TestStatic(t *testing.T) {
	records, err := Static{{"invoice": "TEST-REF00001"}}.Records(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

type fakeRows struct {
	cols []string
	data [][]interface{}
	pos  int
	err  error
}

func (f *fakeRows) Columns() ([]string, error) { return f.cols, nil }

func (f *fakeRows) Next() bool {
	if f.pos >= len(f.data) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeRows) Scan(dest ...interface{}) error {
	row := f.data[f.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destinations, got %d", len(row), len(dest))
	}
	for i, v := range row {
		*(dest[i].(*interface{})) = v
	}
	return nil
}

func (f *fakeRows) Err() error { return f.err }

func TestScanRows(t *testing.T) {
	paid := time.Date(2024, 3, 28, 14, 59, 28, 0, time.UTC)
	rows := &fakeRows{
		cols: []string{"invoice", "amount", "paid_at", "note"},
		data: [][]interface{}{
			{[]byte("speedmart-87654432"), []byte("119.00"), paid, nil},
			{"WOO-LEANX--118", 19.99, paid, "refund"},
		},
	}

	records, err := scanRows(rows)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, datagrid.Record{
		"invoice": "speedmart-87654432",
		"amount":  "119.00",
		"paid_at": paid,
		"note":    nil,
	}, records[0])
	assert.Equal(t, 19.99, records[1]["amount"])
}

func TestScanRowsIterationError(t *testing.T) {
	rows := &fakeRows{cols: []string{"invoice"}, err: errors.New("connection reset")}
	_, err := scanRows(rows)
	assert.EqualError(t, err, "connection reset")
}

func TestIntegrationQueryRecords(t *testing.T) {
	// Try to load .env from project root
	_ = godotenv.Load("../.env")

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	user := os.Getenv("DB_USER")
	if user == "" {
		user = "postgres"
	}
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	if dbname == "" {
		dbname = "postgres"
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable connect_timeout=2",
		host, port, user, password, dbname)

	db, err := OpenPostgres(context.Background(), connStr, 2)
	if err != nil {
		t.Skip("Postgres not reachable, skipping integration test:", err)
		return
	}
	defer db.Close()

	const query = `SELECT * FROM (VALUES
		('speedmart-87654432', 119.00::numeric, 'VISA MASTERCARD'),
		('WOO-LEANX--118', 19.99::numeric, 'FPX SBIA')
	) AS p(invoice, amount, payment_method)`

	records, err := Postgres{DB: db, Query: query}.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "119.00", records[0]["amount"])

	cols := []datagrid.Column{datagrid.NewColumn("invoice"), datagrid.NewColumn("amount")}
	g := datagrid.New(cols, records, datagrid.Options{Features: datagrid.DefaultFeatures()})
	g.ToggleSorting("amount")
	assert.Equal(t, "WOO-LEANX--118", g.Page().Rows[0].Record["invoice"])
}
