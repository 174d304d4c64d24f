package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"storefront-service/internal/models"
)

func TestWriteCSV_PrependsBOM(t *testing.T) {
	svc := NewExportService()

	data, err := svc.WriteCSV([]string{"Name"}, [][]string{{"Widget"}})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteCSV_QuotesSpecialCharacters(t *testing.T) {
	svc := NewExportService()

	rows := [][]string{
		{`plain`, `with,comma`},
		{`with "quotes"`, "with\nnewline"},
	}
	data, err := svc.WriteCSV([]string{"A", "B"}, rows)
	require.NoError(t, err)

	// The encoded output must round-trip through a standard CSV reader
	// with the original field values intact.
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"A", "B"}, records[0])
	assert.Equal(t, rows[0], records[1])
	assert.Equal(t, rows[1], records[2])
}

func TestWriteCSV_EmptyRows(t *testing.T) {
	svc := NewExportService()

	data, err := svc.WriteCSV([]string{"A", "B"}, nil)
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"A", "B"}, records[0])
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	svc := NewExportService()

	data, err := svc.WriteXLSX("sales", []string{"Name", "Total"}, [][]string{
		{"Coffee", "10.00"},
		{"Tea", "5.50"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("sales")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Total"}, rows[0])
	assert.Equal(t, []string{"Coffee", "10.00"}, rows[1])
	assert.Equal(t, []string{"Tea", "5.50"}, rows[2])
}

func TestSalesTable(t *testing.T) {
	svc := NewExportService()
	customer := "Maria"
	created := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	headers, rows := svc.SalesTable([]models.Sale{
		{
			SaleNumber:   "SAL-1700000000000",
			CustomerName: &customer,
			Payment:      models.PaymentMethodCash,
			Status:       models.SaleStatusCompleted,
			Items:        []models.SaleItem{{}, {}},
			Total:        25.5,
			Currency:     "USD",
			CreatedAt:    created,
		},
	})

	require.Len(t, headers, 8)
	require.Len(t, rows, 1)
	assert.Equal(t, "SAL-1700000000000", rows[0][0])
	assert.Equal(t, "Maria", rows[0][2])
	assert.Equal(t, "CASH", rows[0][3])
	assert.Equal(t, "2", rows[0][5])
	assert.Equal(t, "25.50", rows[0][6])
}

func TestSalesTable_NilCustomer(t *testing.T) {
	svc := NewExportService()

	_, rows := svc.SalesTable([]models.Sale{{SaleNumber: "SAL-1"}})

	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0][2])
}

func TestReceivablesTable_Outstanding(t *testing.T) {
	svc := NewExportService()
	phone := "584121234567"

	headers, rows := svc.ReceivablesTable([]models.Receivable{
		{
			CustomerName:  "Jose",
			CustomerPhone: &phone,
			Amount:        100,
			AmountPaid:    40,
			Currency:      "USD",
			DueDate:       time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			Status:        models.ReceivableStatusPartial,
		},
	})

	require.Len(t, headers, 8)
	require.Len(t, rows, 1)
	assert.Equal(t, "60.00", rows[0][4])
	assert.Equal(t, "2025-04-01", rows[0][6])
	assert.Equal(t, "PARTIAL", rows[0][7])
}

func TestProductsTable(t *testing.T) {
	svc := NewExportService()
	sku := "SKU-001"

	_, rows := svc.ProductsTable([]models.Product{
		{
			Name:         "Widget",
			SKU:          &sku,
			Price:        "19.99",
			CurrencyCode: "USD",
			Stock:        7,
			Status:       models.ProductStatusActive,
			Visible:      true,
		},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Widget", "SKU-001", "19.99", "USD", "7", "ACTIVE", "true"}, rows[0])
}
