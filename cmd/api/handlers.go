package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/nemonet1337/sproutGoFarm/internal/cache"
	"github.com/nemonet1337/sproutGoFarm/pkg/farm"
)

// Handlers holds HTTP handlers for the farm API
// 農場API用のHTTPハンドラーを保持
type Handlers struct {
	manager     *farm.Manager
	planner     farm.ProductionPlanner
	reports     farm.ReportEngine
	reportCache cache.ReportCache
	logger      *zap.Logger
}

// NewHandlers creates new HTTP handlers
// 新しいHTTPハンドラーを作成
func NewHandlers(manager *farm.Manager, planner farm.ProductionPlanner, reports farm.ReportEngine, reportCache cache.ReportCache, logger *zap.Logger) *Handlers {
	return &Handlers{
		manager:     manager,
		planner:     planner,
		reports:     reports,
		reportCache: reportCache,
		logger:      logger,
	}
}

// APIResponse represents standard API response format
// 標準的なAPIレスポンス形式を表現
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ReceiveStockRequest represents a harvest intake request
// 収穫入庫リクエストを表現
type ReceiveStockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Date      string `json:"date"`
}

// RecordForecastRequest represents a forecast variance submission
// 予実記録リクエストを表現
type RecordForecastRequest struct {
	ProductID string `json:"product_id"`
	Date      string `json:"date"`
	Predicted int64  `json:"predicted"`
	Actual    int64  `json:"actual"`
}

// UpdateShipmentStatusRequest represents a shipment status change
// 出荷ステータス変更リクエストを表現
type UpdateShipmentStatusRequest struct {
	Status farm.ShipmentStatus `json:"status"`
}

// AdvancePlanStatusRequest represents a plan status change
// 生産計画ステータス変更リクエストを表現
type AdvancePlanStatusRequest struct {
	Status farm.PlanStatus `json:"status"`
}

// SetTargetRequest represents a target inventory update
// 目標在庫更新リクエストを表現
type SetTargetRequest struct {
	Target int64 `json:"target"`
}

// HealthCheck handles health check requests
// ヘルスチェックリクエストを処理
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	response := APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "sproutGoFarm",
		},
	}

	json.NewEncoder(w).Encode(response)
}

// GetInventoryReport handles aging inventory report requests
// 在庫熟成レポートリクエストを処理
func (h *Handlers) GetInventoryReport(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, "date")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	// キャッシュ確認
	if cached, ok, err := h.reportCache.GetInventoryReport(r.Context(), date); err == nil && ok {
		h.sendSuccess(w, cached)
		return
	} else if err != nil {
		h.logger.Warn("キャッシュ取得に失敗しました", zap.Error(err))
	}

	report, err := h.manager.GetInventoryReport(r.Context(), date)
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	if err := h.reportCache.SetInventoryReport(r.Context(), report); err != nil {
		h.logger.Warn("キャッシュ保存に失敗しました", zap.Error(err))
	}

	h.sendSuccess(w, report)
}

// ExportInventoryCSV handles inventory report CSV export
// 在庫レポートCSVエクスポートを処理
func (h *Handlers) ExportInventoryCSV(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, "date")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := h.reports.ExportInventoryCSV(r.Context(), date)
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=inventory_"+date.Format("2006-01-02")+".csv")
	w.Write(data)
}

// GetInventoryLedger handles per-product ledger requests
// 品目別在庫台帳リクエストを処理
func (h *Handlers) GetInventoryLedger(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID := vars["productId"]

	date, err := parseDateParam(r, "date")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	buckets, err := h.manager.GetInventoryLedger(r.Context(), productID, date)
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, buckets)
}

// ReceiveStock handles harvest intake requests
// 収穫入庫リクエストを処理
func (h *Handlers) ReceiveStock(w http.ResponseWriter, r *http.Request) {
	var req ReceiveStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "無効なリクエスト形式です")
		return
	}

	date, err := parseDateString(req.Date)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.manager.ReceiveStock(r.Context(), req.ProductID, req.Quantity, date); err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	if err := h.reportCache.Invalidate(r.Context(), date); err != nil {
		h.logger.Warn("キャッシュ無効化に失敗しました", zap.Error(err))
	}

	h.sendSuccess(w, map[string]string{
		"message": "入庫が完了しました",
	})
}

// RolloverDay handles day rollover requests
// 日繰り越しリクエストを処理
func (h *Handlers) RolloverDay(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, "date")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	wasted, err := h.manager.RolloverDay(r.Context(), date)
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	if err := h.reportCache.InvalidateAll(r.Context()); err != nil {
		h.logger.Warn("キャッシュ無効化に失敗しました", zap.Error(err))
	}

	h.sendSuccess(w, wasted)
}

// GetSeedingPlan handles seeding plan requests
// 仕込み計画リクエストを処理
func (h *Handlers) GetSeedingPlan(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, "date")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.manager.GetSeedingPlan(r.Context(), date)
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, plan)
}

// RecordSeedingCompleted handles seeding completion requests
// 仕込み完了記録リクエストを処理
func (h *Handlers) RecordSeedingCompleted(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID := vars["productId"]

	date, err := parseDateParam(r, "date")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.manager.RecordSeedingCompleted(r.Context(), productID, date); err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, map[string]string{
		"message": "仕込み完了を記録しました",
	})
}

// RecordForecast handles forecast variance recording requests
// 予実記録リクエストを処理
func (h *Handlers) RecordForecast(w http.ResponseWriter, r *http.Request) {
	var req RecordForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "無効なリクエスト形式です")
		return
	}

	date, err := parseDateString(req.Date)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	variance := &farm.ForecastVariance{
		ProductID: req.ProductID,
		Date:      date,
		Predicted: req.Predicted,
		Actual:    req.Actual,
	}

	if err := h.manager.RecordForecast(r.Context(), variance); err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, variance)
}

// CreateOrder handles order creation requests
// 受注作成リクエストを処理
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var order farm.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		h.sendError(w, http.StatusBadRequest, "無効なリクエスト形式です")
		return
	}

	if err := h.manager.CreateOrder(r.Context(), &order); err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, order)
}

// GetOrder handles order retrieval requests
// 受注取得リクエストを処理
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID := vars["orderId"]

	order, err := h.manager.GetOrder(r.Context(), orderID)
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, order)
}

// ListOrders handles order listing requests
// 受注一覧リクエストを処理
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, "date")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := farm.OrderStatus(r.URL.Query().Get("status"))

	orders, err := h.manager.ListOrders(r.Context(), date, status)
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, orders)
}

// ListOrdersByCustomer handles customer order history requests
// 顧客別受注履歴リクエストを処理
func (h *Handlers) ListOrdersByCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID := vars["customerId"]

	orders, err := h.manager.ListOrdersByCustomer(r.Context(), customerID)
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, orders)
}

// ConfirmOrder handles order confirmation requests
// 受注確定リクエストを処理
func (h *Handlers) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID := vars["orderId"]

	if err := h.manager.ConfirmOrder(r.Context(), orderID); err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, map[string]string{
		"message": "受注を確定しました",
	})
}

// CancelOrder handles order cancellation requests
// 受注キャンセルリクエストを処理
func (h *Handlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID := vars["orderId"]

	if err := h.manager.CancelOrder(r.Context(), orderID); err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, map[string]string{
		"message": "受注をキャンセルしました",
	})
}

// MarkOrderShipped handles order shipment requests
// 受注出荷リクエストを処理
func (h *Handlers) MarkOrderShipped(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID := vars["orderId"]

	if err := h.manager.MarkOrderShipped(r.Context(), orderID); err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, map[string]string{
		"message": "受注を出荷済みにしました",
	})
}

// GetShipmentBoard handles shipment board requests
// 出荷ボードリクエストを処理
func (h *Handlers) GetShipmentBoard(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, "date")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	board, err := h.manager.GetShipmentBoard(r.Context(), date)
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, board)
}

// UpdateShipmentStatus handles shipment status change requests
// 出荷ステータス変更リクエストを処理
func (h *Handlers) UpdateShipmentStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shipmentID := vars["shipmentId"]

	var req UpdateShipmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "無効なリクエスト形式です")
		return
	}

	if err := h.manager.UpdateShipmentStatus(r.Context(), shipmentID, req.Status); err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, map[string]string{
		"message": "出荷ステータスを更新しました",
	})
}

// GetAlerts handles alert listing requests
// アラート一覧リクエストを処理
func (h *Handlers) GetAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.manager.GetAlerts(r.Context())
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, alerts)
}

// ResolveAlert handles alert resolution requests
// アラート解決リクエストを処理
func (h *Handlers) ResolveAlert(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	alertID := vars["alertId"]

	if err := h.manager.ResolveAlert(r.Context(), alertID); err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, map[string]string{
		"message": "アラートが解決されました",
	})
}

// CreateProduct handles product creation requests
// 品目作成リクエストを処理
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product farm.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.sendError(w, http.StatusBadRequest, "無効なリクエスト形式です")
		return
	}

	if err := h.manager.CreateProduct(r.Context(), &product); err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, product)
}

// GetProduct handles product retrieval requests
// 品目取得リクエストを処理
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID := vars["productId"]

	product, err := h.manager.GetProduct(r.Context(), productID)
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, product)
}

// UpdateProduct handles product update requests
// 品目更新リクエストを処理
func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID := vars["productId"]

	var product farm.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.sendError(w, http.StatusBadRequest, "無効なリクエスト形式です")
		return
	}

	product.ID = productID
	if err := h.manager.UpdateProduct(r.Context(), &product); err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, product)
}

// ListProducts handles product catalog requests
// 品目一覧リクエストを処理
func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.manager.ListProducts(r.Context())
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, products)
}

// SetTargetInventory handles target inventory update requests
// 目標在庫更新リクエストを処理
func (h *Handlers) SetTargetInventory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID := vars["productId"]

	var req SetTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "無効なリクエスト形式です")
		return
	}

	if err := h.manager.SetTargetInventory(r.Context(), productID, req.Target); err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, map[string]string{
		"message": "目標在庫を更新しました",
	})
}

// CreateCustomer handles customer creation requests
// 納入先作成リクエストを処理
func (h *Handlers) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer farm.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		h.sendError(w, http.StatusBadRequest, "無効なリクエスト形式です")
		return
	}

	if err := h.manager.CreateCustomer(r.Context(), &customer); err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, customer)
}

// GetCustomer handles customer retrieval requests
// 納入先取得リクエストを処理
func (h *Handlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID := vars["customerId"]

	customer, err := h.manager.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, customer)
}

// ListCustomers handles customer listing requests
// 納入先一覧リクエストを処理
func (h *Handlers) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.manager.ListCustomers(r.Context())
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, customers)
}

// ScheduleSeeding handles plan entry creation requests
// 生産計画登録リクエストを処理
func (h *Handlers) ScheduleSeeding(w http.ResponseWriter, r *http.Request) {
	var entry farm.PlanEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		h.sendError(w, http.StatusBadRequest, "無効なリクエスト形式です")
		return
	}

	if err := h.planner.ScheduleSeeding(r.Context(), &entry); err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, entry)
}

// AdvancePlanStatus handles plan status change requests
// 生産計画ステータス変更リクエストを処理
func (h *Handlers) AdvancePlanStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entryID := vars["entryId"]

	var req AdvancePlanStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "無効なリクエスト形式です")
		return
	}

	if err := h.planner.AdvancePlanStatus(r.Context(), entryID, req.Status); err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, map[string]string{
		"message": "生産計画ステータスを更新しました",
	})
}

// GetSchedule handles production schedule requests
// 生産スケジュールリクエストを処理
func (h *Handlers) GetSchedule(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateParam(r, "from")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	days := 0
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if parsed, err := strconv.Atoi(daysStr); err == nil && parsed > 0 {
			days = parsed
		}
	}

	schedule, err := h.planner.GetSchedule(r.Context(), from, days)
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, schedule)
}

// GetDailyShipmentSummary handles daily shipment summary requests
// 日次出荷サマリーリクエストを処理
func (h *Handlers) GetDailyShipmentSummary(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, "date")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.reports.GetDailyShipmentSummary(r.Context(), date)
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, summary)
}

// GetSalesReport handles sales report requests
// 売上レポートリクエストを処理
func (h *Handlers) GetSalesReport(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, "date")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.reports.GetSalesReport(r.Context(), date)
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, report)
}

// GetWasteReport handles monthly waste report requests
// 月次廃棄レポートリクエストを処理
func (h *Handlers) GetWasteReport(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	year := now.Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			h.sendError(w, http.StatusBadRequest, "無効な年です: "+yearStr)
			return
		}
		year = parsed
	}

	month := now.Month()
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil || parsed < 1 || parsed > 12 {
			h.sendError(w, http.StatusBadRequest, "無効な月です: "+monthStr)
			return
		}
		month = time.Month(parsed)
	}

	report, err := h.reports.GetWasteReport(r.Context(), year, month)
	if err != nil {
		h.sendError(w, statusForError(err), err.Error())
		return
	}

	h.sendSuccess(w, report)
}

// ヘルパーメソッド

// parseDateParam parses a date query parameter, defaulting to today
// 日付クエリパラメータをパース。未指定は今日
func parseDateParam(r *http.Request, name string) (time.Time, error) {
	return parseDateString(r.URL.Query().Get(name))
}

// parseDateString parses a YYYY-MM-DD string, defaulting to today
// YYYY-MM-DD形式の文字列をパース。空文字は今日
func parseDateString(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}

	date, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, errors.New("無効な日付形式です: " + value)
	}
	return date, nil
}

// statusForError maps domain errors to HTTP status codes
// ドメインエラーをHTTPステータスコードにマッピング
func statusForError(err error) int {
	switch {
	case errors.Is(err, farm.ErrProductNotFound),
		errors.Is(err, farm.ErrCustomerNotFound),
		errors.Is(err, farm.ErrOrderNotFound),
		errors.Is(err, farm.ErrShipmentNotFound),
		errors.Is(err, farm.ErrPlanEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, farm.ErrVersionMismatch),
		errors.Is(err, farm.ErrDuplicateProduct),
		errors.Is(err, farm.ErrDuplicateCustomer):
		return http.StatusConflict
	}

	var validationErr *farm.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	var ruleErr *farm.BusinessRuleError
	if errors.As(err, &ruleErr) {
		return http.StatusBadRequest
	}
	var ledgerErr *farm.LedgerStateError
	if errors.As(err, &ledgerErr) {
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

// sendSuccess sends a successful API response
// 成功APIレスポンスを送信
func (h *Handlers) sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := APIResponse{
		Success: true,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("レスポンス送信に失敗しました", zap.Error(err))
	}
}

// sendError sends an error API response
// エラーAPIレスポンスを送信
func (h *Handlers) sendError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := APIResponse{
		Success: false,
		Error:   message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("エラーレスポンス送信に失敗しました", zap.Error(err))
	}
}
