package farm

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ReportEngineImpl implements the ReportEngine interface
// ReportEngineインターフェースの実装
type ReportEngineImpl struct {
	storage Storage
	logger  *zap.Logger
	config  *Config
}

var _ ReportEngine = (*ReportEngineImpl)(nil)

// NewReportEngine creates a new reporting engine
// 新しいレポートエンジンを作成
func NewReportEngine(storage Storage, logger *zap.Logger, config *Config) *ReportEngineImpl {
	if config == nil {
		config = &Config{
			ExpiryThresholdDays: DefaultExpiryThresholdDays,
		}
	}
	return &ReportEngineImpl{
		storage: storage,
		logger:  logger,
		config:  config,
	}
}

// DailyShipmentSummary is the day's shipment board with totals
// 当日の出荷ボードと合計値を表現
type DailyShipmentSummary struct {
	Date           time.Time        `json:"date"`            // 対象日
	Shipments      []ShipmentRecord `json:"shipments"`       // 納入先別出荷
	TotalBoxes     int64            `json:"total_boxes"`     // 合計箱数
	TotalPacks     int64            `json:"total_packs"`     // 合計パック数
	TotalAmount    int64            `json:"total_amount"`    // 合計金額（円）
	ShippedCount   int              `json:"shipped_count"`   // 出荷済み件数
	PreparingCount int              `json:"preparing_count"` // 準備中件数
	PendingCount   int              `json:"pending_count"`   // 未着手件数
}

// ProductSales is one product's sales line in a report
// レポートの品目別売上行を表現
type ProductSales struct {
	ProductID   string `json:"product_id"`   // 品目ID
	ProductName string `json:"product_name"` // 品目名
	Packs       int64  `json:"packs"`        // 販売パック数
	Amount      int64  `json:"amount"`       // 売上金額（円）
}

// SalesReport compares sales across standard periods
// 期間別の売上比較レポートを表現
type SalesReport struct {
	Date             time.Time      `json:"date"`              // 基準日
	TodaySales       int64          `json:"today_sales"`       // 本日売上（円）
	YesterdaySales   int64          `json:"yesterday_sales"`   // 昨日売上（円）
	WeekSales        int64          `json:"week_sales"`        // 直近7日売上（円）
	LastWeekSales    int64          `json:"last_week_sales"`   // その前7日売上（円）
	MonthSales       int64          `json:"month_sales"`       // 当月売上（円）
	LastMonthSales   int64          `json:"last_month_sales"`  // 前月売上（円）
	DayChange        string         `json:"day_change"`        // 前日比
	WeekChange       string         `json:"week_change"`       // 前週比
	MonthChange      string         `json:"month_change"`      // 前月比
	ProductBreakdown []ProductSales `json:"product_breakdown"` // 品目別内訳
}

// WasteSummary is one product's waste line in a monthly report
// 月次廃棄レポートの品目別行を表現
type WasteSummary struct {
	ProductID  string `json:"product_id"`  // 品目ID
	Quantity   int64  `json:"quantity"`    // 廃棄数量（パック）
	LossAmount int64  `json:"loss_amount"` // 損失額（円）
}

// WasteReport is the monthly waste write-off report
// 月次の廃棄レポートを表現
type WasteReport struct {
	Year          int            `json:"year"`           // 対象年
	Month         time.Month     `json:"month"`          // 対象月
	TotalQuantity int64          `json:"total_quantity"` // 合計廃棄数量
	TotalLoss     int64          `json:"total_loss"`     // 合計損失額（円）
	Breakdown     []WasteSummary `json:"breakdown"`      // 品目別内訳
}

// GetDailyShipmentSummary builds the day's shipment board
// 当日の出荷ボードを作成
func (r *ReportEngineImpl) GetDailyShipmentSummary(ctx context.Context, date time.Time) (*DailyShipmentSummary, error) {
	shipments, err := r.storage.ListShipments(ctx, date)
	if err != nil {
		return nil, NewStorageError("list_shipments", "出荷一覧取得に失敗しました", err)
	}

	summary := summarizeShipments(date, shipments)

	r.logger.Info("出荷サマリー作成完了",
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("shipments", len(summary.Shipments)),
		zap.Int64("total_amount", summary.TotalAmount),
	)

	return summary, nil
}

// GetSalesReport builds the period sales comparison for a date
// 基準日の期間別売上レポートを作成
func (r *ReportEngineImpl) GetSalesReport(ctx context.Context, date time.Time) (*SalesReport, error) {
	day := dateOnly(date)
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)
	weekStart := day.AddDate(0, 0, -6)
	lastWeekStart := day.AddDate(0, 0, -13)

	// 前月初から基準日までをまとめて取得し、期間ごとに集計
	from := lastMonthStart
	if lastWeekStart.Before(from) {
		from = lastWeekStart
	}
	shipments, err := r.storage.ListShipmentsByRange(ctx, from, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, NewStorageError("list_shipments", "出荷一覧取得に失敗しました", err)
	}

	report := &SalesReport{Date: day}
	for _, s := range shipments {
		if s.Status != ShipmentStatusShipped {
			continue
		}
		d := dateOnly(s.Date)
		switch {
		case d.Equal(day):
			report.TodaySales += s.Amount
		case d.Equal(day.AddDate(0, 0, -1)):
			report.YesterdaySales += s.Amount
		}
		switch {
		case !d.Before(weekStart) && !d.After(day):
			report.WeekSales += s.Amount
		case !d.Before(lastWeekStart) && d.Before(weekStart):
			report.LastWeekSales += s.Amount
		}
		switch {
		case !d.Before(monthStart) && !d.After(day):
			report.MonthSales += s.Amount
		case !d.Before(lastMonthStart) && d.Before(monthStart):
			report.LastMonthSales += s.Amount
		}
	}
	report.DayChange = formatChange(report.TodaySales, report.YesterdaySales)
	report.WeekChange = formatChange(report.WeekSales, report.LastWeekSales)
	report.MonthChange = formatChange(report.MonthSales, report.LastMonthSales)

	// 品目別内訳は当日の受注明細から集計
	orders, err := r.storage.ListOrders(ctx, day, OrderStatusShipped)
	if err != nil {
		r.logger.Error("受注一覧取得に失敗しました", zap.Error(err))
	} else {
		report.ProductBreakdown = summarizeProductSales(orders)
	}

	return report, nil
}

// GetWasteReport builds the monthly waste write-off report
// 月次廃棄レポートを作成
func (r *ReportEngineImpl) GetWasteReport(ctx context.Context, year int, month time.Month) (*WasteReport, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	records, err := r.storage.ListWasteRecords(ctx, from, to)
	if err != nil {
		return nil, NewStorageError("list_waste", "廃棄記録取得に失敗しました", err)
	}

	report := &WasteReport{
		Year:  year,
		Month: month,
	}

	byProduct := make(map[string]*WasteSummary)
	order := make([]string, 0)
	for _, record := range records {
		summary, ok := byProduct[record.ProductID]
		if !ok {
			summary = &WasteSummary{ProductID: record.ProductID}
			byProduct[record.ProductID] = summary
			order = append(order, record.ProductID)
		}
		summary.Quantity += record.Quantity
		summary.LossAmount += record.LossAmount
		report.TotalQuantity += record.Quantity
		report.TotalLoss += record.LossAmount
	}
	for _, productID := range order {
		report.Breakdown = append(report.Breakdown, *byProduct[productID])
	}

	r.logger.Info("廃棄レポート作成完了",
		zap.Int("year", year),
		zap.String("month", month.String()),
		zap.Int64("total_quantity", report.TotalQuantity),
		zap.Int64("total_loss", report.TotalLoss),
	)

	return report, nil
}

// ExportInventoryCSV renders the aging report as CSV for spreadsheets
// 在庫熟成レポートをCSVで出力
func (r *ReportEngineImpl) ExportInventoryCSV(ctx context.Context, date time.Time) ([]byte, error) {
	products, err := r.storage.ListProducts(ctx)
	if err != nil {
		return nil, NewStorageError("list_products", "品目一覧取得に失敗しました", err)
	}
	ledger, err := r.storage.GetAllInventoryBuckets(ctx, date)
	if err != nil {
		return nil, NewStorageError("get_inventory", "在庫台帳取得に失敗しました", err)
	}
	targets, err := r.storage.GetAllTargets(ctx)
	if err != nil {
		return nil, NewStorageError("get_targets", "目標在庫取得に失敗しました", err)
	}

	report := SummarizeAll(products, ledger, targets, r.config.ExpiryThresholdDays, date)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"product_id", "product_name", "days_old", "quantity", "status", "total_stock", "expiring_today", "estimated_loss"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("CSV出力に失敗しました: %w", err)
	}

	for _, summary := range report.Summaries {
		for _, bucket := range summary.Buckets {
			row := []string{
				summary.ProductID,
				summary.ProductName,
				strconv.Itoa(bucket.DaysOld),
				strconv.FormatInt(bucket.Quantity, 10),
				string(bucket.Status),
				strconv.FormatInt(summary.TotalStock, 10),
				strconv.FormatInt(summary.ExpiringToday, 10),
				strconv.FormatInt(summary.EstimatedLoss, 10),
			}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("CSV出力に失敗しました: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("CSV出力に失敗しました: %w", err)
	}

	return buf.Bytes(), nil
}

// summarizeShipments aggregates shipment records into the day's board
// 出荷レコードを当日のボードに集計
func summarizeShipments(date time.Time, shipments []ShipmentRecord) *DailyShipmentSummary {
	summary := &DailyShipmentSummary{
		Date:      date,
		Shipments: shipments,
	}

	for _, s := range shipments {
		summary.TotalBoxes += s.Boxes
		summary.TotalPacks += s.Packs
		summary.TotalAmount += s.Amount
		switch s.Status {
		case ShipmentStatusShipped:
			summary.ShippedCount++
		case ShipmentStatusPreparing:
			summary.PreparingCount++
		case ShipmentStatusPending:
			summary.PendingCount++
		}
	}

	return summary
}

// summarizeProductSales aggregates shipped order items per product
// 出荷済み受注明細を品目別に集計
func summarizeProductSales(orders []Order) []ProductSales {
	byProduct := make(map[string]*ProductSales)
	order := make([]string, 0)

	for _, o := range orders {
		for _, item := range o.Items {
			sales, ok := byProduct[item.ProductID]
			if !ok {
				sales = &ProductSales{ProductID: item.ProductID, ProductName: item.ProductName}
				byProduct[item.ProductID] = sales
				order = append(order, item.ProductID)
			}
			sales.Packs += item.Quantity
			sales.Amount += item.Quantity * item.UnitPrice
		}
	}

	result := make([]ProductSales, 0, len(order))
	for _, productID := range order {
		result = append(result, *byProduct[productID])
	}
	return result
}

// dateOnly normalizes a timestamp to midnight of its calendar day
// タイムスタンプを当日0時に正規化
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// formatChange renders a day-over-day change as a signed one-decimal percent
// 前日比を符号付き小数1桁のパーセントで整形
func formatChange(current, previous int64) string {
	if previous == 0 {
		return "-"
	}
	pct := float64(current-previous) / float64(previous) * 100
	return fmt.Sprintf("%+.1f%%", pct)
}
