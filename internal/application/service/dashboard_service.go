package service

import (
	"context"
	"time"

	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	"github.com/gsolanocr/comercio-api/internal/domain/enum"
	"github.com/gsolanocr/comercio-api/internal/domain/repository"
)

// DashboardService aggregates the numbers the portal's home screen shows
type DashboardService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	expenseRepo repository.ExpenseRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	expenseRepo repository.ExpenseRepository,
) *DashboardService {
	return &DashboardService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		expenseRepo: expenseRepo,
	}
}

// DashboardStats is the home screen summary
type DashboardStats struct {
	MonthRevenue    int64                          `json:"month_revenue"`
	MonthExpenses   int64                          `json:"month_expenses"`
	MonthNet        int64                          `json:"month_net"`
	PendingSales    int64                          `json:"pending_sales"`
	TotalSales      int64                          `json:"total_sales"`
	TotalClients    int64                          `json:"total_clients"`
	TotalProducts   int64                          `json:"total_products"`
	LowStock        []entity.Product               `json:"low_stock"`
	TopClients      []entity.Client                `json:"top_clients"`
	RevenueByDay    []repository.DailyRevenuePoint `json:"revenue_by_day"`
}

// GetStats builds the dashboard summary for the current month
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	revenue, err := s.saleRepo.RevenueBetween(ctx, monthStart, now, nil)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.SumBetween(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}

	pending, err := s.saleRepo.CountByStatus(ctx, enum.SaleStatusPendiente)
	if err != nil {
		return nil, err
	}

	totalSales, err := s.saleRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalClients, err := s.clientRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalProducts, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}

	topClients, err := s.clientRepo.TopBySpend(ctx, 5)
	if err != nil {
		return nil, err
	}

	revenueByDay, err := s.saleRepo.DailyRevenue(ctx, 30)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		MonthRevenue:  revenue,
		MonthExpenses: expenses,
		MonthNet:      revenue - expenses,
		PendingSales:  pending,
		TotalSales:    totalSales,
		TotalClients:  totalClients,
		TotalProducts: totalProducts,
		LowStock:      lowStock,
		TopClients:    topClients,
		RevenueByDay:  revenueByDay,
	}, nil
}
