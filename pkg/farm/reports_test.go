package farm

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// TestReportEngine_GetDailyShipmentSummary は出荷ボード集計のテスト
func TestReportEngine_GetDailyShipmentSummary(t *testing.T) {
	mockStorage := new(MockStorage)
	logger := zap.NewNop()
	engine := NewReportEngine(mockStorage, logger, testConfig())
	ctx := context.Background()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)

	shipments := []ShipmentRecord{
		{ID: "SHP-1", CustomerID: "C001", CustomerName: "新潟中央青果", Status: ShipmentStatusShipped, Boxes: 5, Packs: 100, Amount: 9800, ScheduledTime: "08:00"},
		{ID: "SHP-2", CustomerID: "C003", CustomerName: "ウオロク", Status: ShipmentStatusPreparing, Boxes: 3, Packs: 60, Amount: 4080, ScheduledTime: "10:30"},
		{ID: "SHP-3", CustomerID: "C004", CustomerName: "原信ナルス", Status: ShipmentStatusPending, Boxes: 2, Packs: 40, Amount: 2720, ScheduledTime: "13:00"},
	}

	mockStorage.On("ListShipments", ctx, date).Return(shipments, nil)

	summary, err := engine.GetDailyShipmentSummary(ctx, date)

	assert.NoError(t, err)
	assert.Equal(t, int64(10), summary.TotalBoxes)
	assert.Equal(t, int64(200), summary.TotalPacks)
	assert.Equal(t, int64(16600), summary.TotalAmount)
	assert.Equal(t, 1, summary.ShippedCount)
	assert.Equal(t, 1, summary.PreparingCount)
	assert.Equal(t, 1, summary.PendingCount)
	mockStorage.AssertExpectations(t)
}

// TestReportEngine_GetSalesReport は期間別売上集計のテスト
func TestReportEngine_GetSalesReport(t *testing.T) {
	mockStorage := new(MockStorage)
	logger := zap.NewNop()
	engine := NewReportEngine(mockStorage, logger, testConfig())
	ctx := context.Background()
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local)

	shipments := []ShipmentRecord{
		{Date: date, Status: ShipmentStatusShipped, Amount: 10000},
		{Date: date.AddDate(0, 0, -1), Status: ShipmentStatusShipped, Amount: 8000},
		{Date: date.AddDate(0, 0, -5), Status: ShipmentStatusShipped, Amount: 5000},
		// 前週・前月分
		{Date: date.AddDate(0, 0, -10), Status: ShipmentStatusShipped, Amount: 4000},
		// 未出荷は売上に含まれない
		{Date: date, Status: ShipmentStatusPending, Amount: 9999},
	}
	orders := []Order{
		{
			Status: OrderStatusShipped,
			Items: []OrderItem{
				{ProductID: "TM001", ProductName: "豆苗", Quantity: 80, UnitPrice: 98},
				{ProductID: "KS001", ProductName: "カイワレS", Quantity: 46, UnitPrice: 48},
			},
		},
	}

	mockStorage.On("ListShipmentsByRange", ctx, time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local), date.AddDate(0, 0, 1)).Return(shipments, nil)
	mockStorage.On("ListOrders", ctx, date, OrderStatusShipped).Return(orders, nil)

	report, err := engine.GetSalesReport(ctx, date)

	assert.NoError(t, err)
	assert.Equal(t, int64(10000), report.TodaySales)
	assert.Equal(t, int64(8000), report.YesterdaySales)
	assert.Equal(t, int64(23000), report.WeekSales)
	assert.Equal(t, int64(4000), report.LastWeekSales)
	assert.Equal(t, int64(23000), report.MonthSales)
	assert.Equal(t, int64(4000), report.LastMonthSales)
	assert.Equal(t, "+25.0%", report.DayChange)
	assert.Equal(t, "+475.0%", report.WeekChange)
	assert.Equal(t, "+475.0%", report.MonthChange)

	assert.Len(t, report.ProductBreakdown, 2)
	assert.Equal(t, int64(80*98), report.ProductBreakdown[0].Amount)
	mockStorage.AssertExpectations(t)
}

// TestReportEngine_GetWasteReport は月次廃棄レポートのテスト
func TestReportEngine_GetWasteReport(t *testing.T) {
	mockStorage := new(MockStorage)
	logger := zap.NewNop()
	engine := NewReportEngine(mockStorage, logger, testConfig())
	ctx := context.Background()

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)
	records := []WasteRecord{
		{ProductID: "TM001", Quantity: 10, LossAmount: 980},
		{ProductID: "TM001", Quantity: 5, LossAmount: 490},
		{ProductID: "KS001", Quantity: 20, LossAmount: 960},
	}

	mockStorage.On("ListWasteRecords", ctx, from, to).Return(records, nil)

	report, err := engine.GetWasteReport(ctx, 2026, time.August)

	assert.NoError(t, err)
	assert.Equal(t, int64(35), report.TotalQuantity)
	assert.Equal(t, int64(2430), report.TotalLoss)
	assert.Len(t, report.Breakdown, 2)
	assert.Equal(t, int64(15), report.Breakdown[0].Quantity)
	assert.Equal(t, int64(1470), report.Breakdown[0].LossAmount)
	mockStorage.AssertExpectations(t)
}

// TestReportEngine_ExportInventoryCSV はCSV出力のテスト
func TestReportEngine_ExportInventoryCSV(t *testing.T) {
	mockStorage := new(MockStorage)
	logger := zap.NewNop()
	engine := NewReportEngine(mockStorage, logger, testConfig())
	ctx := context.Background()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)

	products := []Product{
		{ID: "TM001", Name: "豆苗", UnitPrice: 98},
	}
	ledger := map[string][]InventoryBucket{
		"TM001": {
			{DaysOld: 0, Quantity: 50},
			{DaysOld: 1, Quantity: 65},
			{DaysOld: 2, Quantity: 35},
			{DaysOld: 3, Quantity: 10},
		},
	}

	mockStorage.On("ListProducts", ctx).Return(products, nil)
	mockStorage.On("GetAllInventoryBuckets", ctx, date).Return(ledger, nil)
	mockStorage.On("GetAllTargets", ctx).Return(map[string]int64{"TM001": 150}, nil)

	data, err := engine.ExportInventoryCSV(ctx, date)

	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// ヘッダー + 経過日数4行
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[0], "product_id")
	assert.Contains(t, lines[4], "expiring")
	assert.Contains(t, lines[4], "980")
	mockStorage.AssertExpectations(t)
}

// TestFormatChange は前日比フォーマットのテスト
func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+25.0%", formatChange(10000, 8000))
	assert.Equal(t, "-20.0%", formatChange(8000, 10000))
	assert.Equal(t, "+0.0%", formatChange(5000, 5000))
	// 基準が0の場合は比較不能
	assert.Equal(t, "-", formatChange(5000, 0))
}
