package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"storefront-service/internal/models"
)

// utf8BOM makes exported CSVs open correctly in Excel
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportService renders back-office lists as CSV (RFC 4180, UTF-8 BOM) or
// XLSX workbooks.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// WriteCSV renders headers+rows as RFC 4180 CSV with a UTF-8 BOM. Fields
// containing commas, quotes, or newlines are quoted with doubled quotes by
// the encoder.
func (s *ExportService) WriteCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX renders headers+rows as a single-sheet XLSX workbook
func (s *ExportService) WriteXLSX(sheet string, headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, row := range rows {
		for col, val := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// SalesTable flattens sales for export
func (s *ExportService) SalesTable(sales []models.Sale) ([]string, [][]string) {
	headers := []string{"Sale Number", "Date", "Customer", "Payment Method", "Status", "Items", "Total", "Currency"}
	rows := make([][]string, 0, len(sales))
	for _, sale := range sales {
		customer := ""
		if sale.CustomerName != nil {
			customer = *sale.CustomerName
		}
		rows = append(rows, []string{
			sale.SaleNumber,
			sale.CreatedAt.Format(time.RFC3339),
			customer,
			string(sale.Payment),
			string(sale.Status),
			strconv.Itoa(len(sale.Items)),
			formatAmount(sale.Total),
			sale.Currency,
		})
	}
	return headers, rows
}

// ReceivablesTable flattens receivables for export
func (s *ExportService) ReceivablesTable(receivables []models.Receivable) ([]string, [][]string) {
	headers := []string{"Customer", "Phone", "Amount", "Paid", "Outstanding", "Currency", "Due Date", "Status"}
	rows := make([][]string, 0, len(receivables))
	for _, r := range receivables {
		phone := ""
		if r.CustomerPhone != nil {
			phone = *r.CustomerPhone
		}
		rows = append(rows, []string{
			r.CustomerName,
			phone,
			formatAmount(r.Amount),
			formatAmount(r.AmountPaid),
			formatAmount(r.Outstanding()),
			r.Currency,
			r.DueDate.Format("2006-01-02"),
			string(r.Status),
		})
	}
	return headers, rows
}

// PurchasesTable flattens purchases for export
func (s *ExportService) PurchasesTable(purchases []models.Purchase) ([]string, [][]string) {
	headers := []string{"Supplier", "Date", "Status", "Items", "Total", "Currency", "Notes"}
	rows := make([][]string, 0, len(purchases))
	for _, p := range purchases {
		notes := ""
		if p.Notes != nil {
			notes = *p.Notes
		}
		rows = append(rows, []string{
			p.SupplierName,
			p.PurchasedAt.Format("2006-01-02"),
			string(p.Status),
			strconv.Itoa(len(p.Items)),
			formatAmount(p.Total),
			p.Currency,
			notes,
		})
	}
	return headers, rows
}

// ProductsTable flattens products for export
func (s *ExportService) ProductsTable(products []models.Product) ([]string, [][]string) {
	headers := []string{"Name", "SKU", "Price", "Currency", "Stock", "Status", "Visible"}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		sku := ""
		if p.SKU != nil {
			sku = *p.SKU
		}
		rows = append(rows, []string{
			p.Name,
			sku,
			p.Price,
			p.CurrencyCode,
			strconv.Itoa(p.Stock),
			string(p.Status),
			strconv.FormatBool(p.Visible),
		})
	}
	return headers, rows
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
