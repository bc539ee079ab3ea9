package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	"github.com/gsolanocr/comercio-api/internal/domain/repository"
	"github.com/gsolanocr/comercio-api/pkg/apperror"
	"github.com/gsolanocr/comercio-api/pkg/pagination"
	"github.com/gsolanocr/comercio-api/pkg/utils"
)

// ReportService builds spreadsheet exports and imports the product catalog
// from them. Everything goes through xlsx since that is what the owners
// already use for their books.
type ReportService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	expenseRepo repository.ExpenseRepository
}

// NewReportService creates a new report service
func NewReportService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	expenseRepo repository.ExpenseRepository,
) *ReportService {
	return &ReportService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		expenseRepo: expenseRepo,
	}
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// ExportSales writes the period's sales to a spreadsheet, one row per sale
func (s *ReportService) ExportSales(ctx context.Context, from, to time.Time) (*bytes.Buffer, error) {
	sales, err := s.saleRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Ventas"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, sheet, []string{
		"Recibo", "Fecha", "Cliente", "Teléfono", "Subtotal", "IVA", "Total", "Estado", "Origen",
	}); err != nil {
		return nil, err
	}

	for i, sale := range sales {
		if err := writeRow(f, sheet, i+2, []interface{}{
			sale.ReceiptNo,
			sale.Date.Format("2006-01-02"),
			sale.ClientName,
			sale.ClientPhone,
			sale.Subtotal,
			sale.Tax,
			sale.Total,
			sale.Status.String(),
			sale.Source,
		}); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

// ExportProducts writes the whole catalog to a spreadsheet
func (s *ReportService) ExportProducts(ctx context.Context) (*bytes.Buffer, error) {
	products, err := s.productRepo.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Productos"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, sheet, []string{
		"Código", "Nombre", "Precio", "Inventario", "Alerta de inventario",
	}); err != nil {
		return nil, err
	}

	for i, p := range products {
		if err := writeRow(f, sheet, i+2, []interface{}{
			p.Code, p.Name, p.Price, p.Stock, p.StockAlert,
		}); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

// ExportClients writes the CRM to a spreadsheet, paging through the whole list
func (s *ReportService) ExportClients(ctx context.Context) (*bytes.Buffer, error) {
	var clients []entity.Client
	for page := 1; ; page++ {
		params := &pagination.PaginationParams{Page: page, PerPage: 100}
		batch, total, err := s.clientRepo.List(ctx, params, "")
		if err != nil {
			return nil, err
		}
		clients = append(clients, batch...)
		if len(batch) == 0 || int64(len(clients)) >= total {
			break
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Clientes"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, sheet, []string{
		"Nombre", "Teléfono", "Dirección", "Compras", "Total gastado",
	}); err != nil {
		return nil, err
	}

	for i, c := range clients {
		if err := writeRow(f, sheet, i+2, []interface{}{
			c.Name, c.Phone, c.Address, c.Purchases, c.TotalSpent,
		}); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

// ExportCashFlow writes the period's income and expenses side by side
func (s *ReportService) ExportCashFlow(ctx context.Context, from, to time.Time) (*bytes.Buffer, error) {
	sales, err := s.saleRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	incomeSheet := "Ingresos"
	if err := f.SetSheetName("Sheet1", incomeSheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, incomeSheet, []string{"Fecha", "Recibo", "Cliente", "Total"}); err != nil {
		return nil, err
	}
	for i, sale := range sales {
		if err := writeRow(f, incomeSheet, i+2, []interface{}{
			sale.Date.Format("2006-01-02"), sale.ReceiptNo, sale.ClientName, sale.Total,
		}); err != nil {
			return nil, err
		}
	}

	expenseSheet := "Gastos"
	if _, err := f.NewSheet(expenseSheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, expenseSheet, []string{"Fecha", "Concepto", "Categoría", "Monto"}); err != nil {
		return nil, err
	}
	for i, e := range expenses {
		if err := writeRow(f, expenseSheet, i+2, []interface{}{
			e.Date.Format("2006-01-02"), e.Concept, e.Category.String(), e.Amount,
		}); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

// ImportResult summarizes a catalog import
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped []string `json:"skipped,omitempty"`
}

// ImportProducts reads a catalog spreadsheet (the ExportProducts layout) and
// upserts products by code. Rows that cannot be parsed are skipped and
// reported, never fatal.
func (s *ReportService) ImportProducts(ctx context.Context, userID uuid.UUID, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("The file is not a valid spreadsheet")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewBadRequestError("The spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, apperror.NewBadRequestError("The spreadsheet has no data rows")
	}

	result := &ImportResult{}
	for i, row := range rows[1:] {
		rowNo := i + 2
		if len(row) < 2 || strings.TrimSpace(row[1]) == "" {
			result.Skipped = append(result.Skipped, fmt.Sprintf("fila %d: sin nombre", rowNo))
			continue
		}

		code := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		price, stock, stockAlert := int64(0), 0, 0

		if len(row) > 2 {
			if v, err := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64); err == nil {
				price = v
			} else {
				result.Skipped = append(result.Skipped, fmt.Sprintf("fila %d: precio inválido", rowNo))
				continue
			}
		}
		if len(row) > 3 {
			if v, err := strconv.Atoi(strings.TrimSpace(row[3])); err == nil {
				stock = v
			}
		}
		if len(row) > 4 {
			if v, err := strconv.Atoi(strings.TrimSpace(row[4])); err == nil {
				stockAlert = v
			}
		}

		if code == "" {
			code = utils.GenerateProductCode()
		}

		existing, err := s.productRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			existing.Name = name
			existing.Price = price
			existing.Stock = stock
			existing.StockAlert = stockAlert
			if err := s.productRepo.Update(ctx, existing); err != nil {
				return nil, err
			}
			result.Updated++
			continue
		}

		product := &entity.Product{
			UserID:     userID,
			Code:       code,
			Name:       name,
			Price:      price,
			Stock:      stock,
			StockAlert: stockAlert,
		}
		if err := s.productRepo.Create(ctx, product); err != nil {
			return nil, err
		}
		result.Created++
	}

	return result, nil
}
