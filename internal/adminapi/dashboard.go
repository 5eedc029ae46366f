package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"

	"github.com/maisonaurum/aurum/internal/domain"
	"github.com/maisonaurum/aurum/internal/webserver"
	"github.com/maisonaurum/aurum/pkg/metrics"
)

func registerDashboardRoutes() {
	webserver.AdminGET("/dashboard", getDashboard)
	webserver.AdminGET("/audit", getAuditLog)
}

type dashboardSummary struct {
	ProductCount   int                   `json:"product_count"`
	InventoryValue float64               `json:"inventory_value"`
	AveragePrice   float64               `json:"average_price"`
	HighestPrice   float64               `json:"highest_price"`
	NewArrivals    int                   `json:"new_arrivals"`
	Revenue        []domain.RevenuePoint `json:"revenue"`
	System         systemStatus          `json:"system"`
	CanWrite       bool                  `json:"can_write"`
}

type systemStatus struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemoryMB   float64 `json:"memory_mb"`
	WritesWeek int64   `json:"writes_week"`
}

// getDashboard aggregates the overview panel: catalog figures computed from
// the projection, the monthly revenue series, and the system gauges the
// monitor job records.
func getDashboard(c echo.Context) error {
	products := webserver.GetProjection(c).Products()

	prices := make([]float64, 0, len(products))
	var inventoryValue float64
	newArrivals := 0
	for _, p := range products {
		prices = append(prices, p.Price)
		inventoryValue += p.Price
		if p.IsNew {
			newArrivals++
		}
	}

	var average, highest float64
	if len(prices) > 0 {
		average, _ = stats.Mean(prices)
		highest, _ = stats.Max(prices)
	}

	writes := metrics.CounterSum("cms_product_create", 7*24*time.Hour) +
		metrics.CounterSum("cms_product_update", 7*24*time.Hour) +
		metrics.CounterSum("cms_product_delete", 7*24*time.Hour) +
		metrics.CounterSum("cms_config_update", 7*24*time.Hour)

	return webserver.OK(c, dashboardSummary{
		ProductCount:   len(products),
		InventoryValue: inventoryValue,
		AveragePrice:   average,
		HighestPrice:   highest,
		NewArrivals:    newArrivals,
		Revenue:        domain.DefaultRevenueSeries(),
		System: systemStatus{
			CPUPercent: metrics.Latest("system_cpuuse", time.Hour) / 100,
			MemoryMB:   metrics.Latest("system_memuse", time.Hour),
			WritesWeek: writes,
		},
		CanWrite: webserver.GetGateway(c).CanWrite(),
	})
}

// getAuditLog returns the most recent operator actions.
func getAuditLog(c echo.Context) error {
	log := webserver.GetAudit(c)
	if log == nil {
		return webserver.OK(c, []interface{}{})
	}
	entries, err := log.Recent(100)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "AUDIT_ERROR", "Failed to read audit log", err.Error())
	}
	return webserver.OK(c, entries)
}
