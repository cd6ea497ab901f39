package farm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Manager implements the FarmManager interface
// FarmManagerインターフェースの実装
type Manager struct {
	storage   Storage        // ストレージ層
	publisher EventPublisher // イベント発行者
	logger    *zap.Logger    // ログ
	config    *Config        // 設定
}

// すべてのインターフェースを実装することを明示
var (
	_ FarmManager     = (*Manager)(nil)
	_ ProductManager  = (*Manager)(nil)
	_ CustomerManager = (*Manager)(nil)
)

// Config holds configuration for the farm manager
// 農場マネージャーの設定を保持
type Config struct {
	ExpiryThresholdDays int   `yaml:"expiry_threshold_days"` // 有効期限（日数）
	LowStockThreshold   int64 `yaml:"low_stock_threshold"`   // 低在庫閾値（パック）
	DefaultPacksPerTray int64 `yaml:"packs_per_tray"`        // デフォルトのトレイあたりパック数
	PacksPerBox         int64 `yaml:"packs_per_box"`         // 出荷箱あたりパック数
	ScheduleDays        int   `yaml:"schedule_days"`         // 生産計画カレンダーの表示日数
}

// NewManager creates a new farm manager
// 新しい農場マネージャーを作成
func NewManager(storage Storage, publisher EventPublisher, logger *zap.Logger, config *Config) *Manager {
	if config == nil {
		config = &Config{
			ExpiryThresholdDays: DefaultExpiryThresholdDays,
			LowStockThreshold:   50,
			DefaultPacksPerTray: 50,
			PacksPerBox:         20,
			ScheduleDays:        14,
		}
	}

	return &Manager{
		storage:   storage,
		publisher: publisher,
		logger:    logger,
		config:    config,
	}
}

// GetInventoryReport builds the catalog-wide aging report for a date
// 基準日の全品目在庫熟成レポートを作成
func (m *Manager) GetInventoryReport(ctx context.Context, date time.Time) (*InventoryReport, error) {
	products, err := m.storage.ListProducts(ctx)
	if err != nil {
		return nil, NewStorageError("list_products", "品目一覧取得に失敗しました", err)
	}

	ledger, err := m.storage.GetAllInventoryBuckets(ctx, date)
	if err != nil {
		return nil, NewStorageError("get_inventory", "在庫台帳取得に失敗しました", err)
	}

	targets, err := m.storage.GetAllTargets(ctx)
	if err != nil {
		return nil, NewStorageError("get_targets", "目標在庫取得に失敗しました", err)
	}

	report := SummarizeAll(products, ledger, targets, m.config.ExpiryThresholdDays, date)

	m.logger.Info("在庫レポート作成完了",
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("products", len(report.Summaries)),
		zap.Int("errors", len(report.Errors)),
		zap.Int64("total_expiring", report.TotalExpiringToday),
		zap.Int64("estimated_loss", report.TotalEstimatedLoss),
	)

	return report, nil
}

// GetInventoryLedger gets one product's aging buckets with derived statuses
// 品目の在庫台帳を鮮度ステータス付きで取得
func (m *Manager) GetInventoryLedger(ctx context.Context, productID string, date time.Time) ([]InventoryBucket, error) {
	if err := ValidateProductID(productID); err != nil {
		return nil, err
	}
	if _, err := m.storage.GetProduct(ctx, productID); err != nil {
		if err == ErrProductNotFound {
			return nil, ErrProductNotFound
		}
		return nil, NewStorageError("get_product", "品目取得に失敗しました", err)
	}

	buckets, err := m.storage.GetInventoryBuckets(ctx, productID, date)
	if err != nil {
		return nil, NewStorageError("get_inventory", "在庫台帳取得に失敗しました", err)
	}

	for i := range buckets {
		buckets[i].Status = ClassifyBucket(buckets[i].DaysOld, m.config.ExpiryThresholdDays)
	}

	return buckets, nil
}

// ReceiveStock records a harvest intake as today's age-zero bucket
// 収穫入庫を本日分（経過日数0）の在庫として記録
func (m *Manager) ReceiveStock(ctx context.Context, productID string, quantity int64, date time.Time) error {
	if quantity <= 0 {
		return NewValidationError("quantity", "数量は正の値である必要があります", fmt.Sprintf("%d", quantity))
	}
	if _, err := m.storage.GetProduct(ctx, productID); err != nil {
		if err == ErrProductNotFound {
			return ErrProductNotFound
		}
		return NewStorageError("get_product", "品目取得に失敗しました", err)
	}

	bucket := &InventoryBucket{
		ProductID: productID,
		Date:      date,
		DaysOld:   0,
		Quantity:  quantity,
	}

	if err := m.storage.UpsertInventoryBucket(ctx, bucket); err != nil {
		return NewStorageError("upsert_bucket", "在庫記録に失敗しました", err)
	}

	m.logger.Info("入庫記録完了",
		zap.String("product_id", productID),
		zap.Int64("quantity", quantity),
		zap.String("date", date.Format("2006-01-02")),
	)

	return nil
}

// RolloverDay advances every product's ledger by one day. Stock past the
// expiry threshold is written off as waste with an alert; products keep
// rolling independently when one fails.
// 日次ロールオーバー。全品目の経過日数を1日進め、有効期限超過分を廃棄として
// 計上しアラートを発行する。品目ごとに独立して処理を継続する。
func (m *Manager) RolloverDay(ctx context.Context, date time.Time) ([]WasteRecord, error) {
	products, err := m.storage.ListProducts(ctx)
	if err != nil {
		return nil, NewStorageError("list_products", "品目一覧取得に失敗しました", err)
	}

	wasted := make([]WasteRecord, 0)
	for i := range products {
		p := &products[i]

		expiredQty, err := m.storage.ShiftInventoryAges(ctx, p.ID, date)
		if err != nil {
			m.logger.Error("在庫ロールオーバーに失敗しました",
				zap.String("product_id", p.ID),
				zap.Error(err),
			)
			continue
		}

		if expiredQty > 0 {
			record := WasteRecord{
				ID:         NewID(),
				ProductID:  p.ID,
				Date:       date,
				Quantity:   expiredQty,
				LossAmount: expiredQty * p.UnitPrice,
				CreatedAt:  time.Now(),
			}
			if err := m.storage.CreateWasteRecord(ctx, &record); err != nil {
				m.logger.Error("廃棄記録作成に失敗しました",
					zap.String("product_id", p.ID),
					zap.Error(err),
				)
				continue
			}
			wasted = append(wasted, record)

			m.triggerExpiryAlert(ctx, p, expiredQty, record.LossAmount)
		}

		// 低在庫アラートチェック
		buckets, err := m.storage.GetInventoryBuckets(ctx, p.ID, date)
		if err != nil {
			continue
		}
		var total int64
		for _, b := range buckets {
			total += b.Quantity
		}
		if total <= m.config.LowStockThreshold {
			m.triggerLowStockAlert(ctx, p.ID, total)
		}
	}

	m.logger.Info("日次ロールオーバー完了",
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("products", len(products)),
		zap.Int("waste_records", len(wasted)),
	)

	return wasted, nil
}

// GetSeedingPlan builds today's seeding instructions for the whole catalog
// 本日分の全品目仕込み計画を作成
func (m *Manager) GetSeedingPlan(ctx context.Context, date time.Time) (*SeedingPlan, error) {
	products, err := m.storage.ListProducts(ctx)
	if err != nil {
		return nil, NewStorageError("list_products", "品目一覧取得に失敗しました", err)
	}

	forecasts, err := m.storage.GetAllForecasts(ctx, date)
	if err != nil {
		return nil, NewStorageError("get_forecasts", "出荷予測取得に失敗しました", err)
	}

	targets, err := m.storage.GetAllTargets(ctx)
	if err != nil {
		return nil, NewStorageError("get_targets", "目標在庫取得に失敗しました", err)
	}

	ledger, err := m.storage.GetAllInventoryBuckets(ctx, date)
	if err != nil {
		return nil, NewStorageError("get_inventory", "在庫台帳取得に失敗しました", err)
	}

	// 台帳のある品目のみ現在在庫を算出（欠損はバッチ内でエラー収集される）
	currentStocks := make(map[string]int64, len(ledger))
	for productID, buckets := range ledger {
		var total int64
		for _, b := range buckets {
			total += b.Quantity
		}
		currentStocks[productID] = total
	}

	plan := ComputeAllSeedingAmounts(products, forecasts, targets, currentStocks, date)

	// 仕込み完了記録を指示に反映
	recorded, err := m.storage.GetSeedingRecords(ctx, date)
	if err != nil {
		m.logger.Error("仕込み記録取得に失敗しました", zap.Error(err))
	} else {
		for i := range plan.Instructions {
			if at, ok := recorded[plan.Instructions[i].ProductID]; ok {
				t := at
				plan.Instructions[i].RecordedAt = &t
			}
		}
	}

	m.logger.Info("仕込み計画作成完了",
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("instructions", len(plan.Instructions)),
		zap.Int("errors", len(plan.Errors)),
	)

	return plan, nil
}

// RecordSeedingCompleted marks a product's seeding instruction as done
// 品目の仕込み完了を記録
func (m *Manager) RecordSeedingCompleted(ctx context.Context, productID string, date time.Time) error {
	product, err := m.storage.GetProduct(ctx, productID)
	if err != nil {
		if err == ErrProductNotFound {
			return ErrProductNotFound
		}
		return NewStorageError("get_product", "品目取得に失敗しました", err)
	}

	now := time.Now()
	if err := m.storage.SaveSeedingRecord(ctx, productID, date, now); err != nil {
		return NewStorageError("save_seeding_record", "仕込み記録に失敗しました", err)
	}

	if m.publisher != nil {
		amount := m.seedingAmountFor(ctx, product, date)
		event := SeedingRecordedEvent{
			ProductID:     productID,
			SeedingAmount: amount,
			Date:          date,
			Timestamp:     now,
		}
		if err := m.publisher.PublishSeedingRecorded(ctx, event); err != nil {
			m.logger.Error("仕込みイベント発行に失敗しました", zap.Error(err))
		}
	}

	m.logger.Info("仕込み完了記録",
		zap.String("product_id", productID),
		zap.String("date", date.Format("2006-01-02")),
	)

	return nil
}

// RecordForecast stores a product's predicted and actual shipment for a date
// 品目の予測出荷と実績出荷を記録
func (m *Manager) RecordForecast(ctx context.Context, variance *ForecastVariance) error {
	if variance == nil {
		return NewValidationError("forecast", "予実データが指定されていません", "nil")
	}
	if variance.Predicted < 0 || variance.Actual < 0 {
		return NewValidationError("forecast", "予測・実績は0以上である必要があります", "")
	}

	if _, err := m.storage.GetProduct(ctx, variance.ProductID); err != nil {
		if err == ErrProductNotFound {
			return ErrProductNotFound
		}
		return NewStorageError("get_product", "品目取得に失敗しました", err)
	}

	variance.Variance = variance.Actual - variance.Predicted
	if err := m.storage.SaveForecast(ctx, variance); err != nil {
		return NewStorageError("save_forecast", "予実保存に失敗しました", err)
	}

	m.logger.Info("予実記録",
		zap.String("product_id", variance.ProductID),
		zap.Int64("predicted", variance.Predicted),
		zap.Int64("actual", variance.Actual),
		zap.Int64("variance", variance.Variance),
	)

	return nil
}

// CreateOrder creates a new customer order in pending status
// 新規受注を未確認ステータスで作成
func (m *Manager) CreateOrder(ctx context.Context, order *Order) error {
	if order == nil {
		return NewValidationError("order", "受注が指定されていません", "nil")
	}

	customer, err := m.storage.GetCustomer(ctx, order.CustomerID)
	if err != nil {
		if err == ErrCustomerNotFound {
			return ErrCustomerNotFound
		}
		return NewStorageError("get_customer", "顧客取得に失敗しました", err)
	}

	// 明細の品目名・単価をマスタから補完
	for i := range order.Items {
		item := &order.Items[i]
		product, err := m.storage.GetProduct(ctx, item.ProductID)
		if err != nil {
			if err == ErrProductNotFound {
				return ErrProductNotFound
			}
			return NewStorageError("get_product", "品目取得に失敗しました", err)
		}
		if item.ProductName == "" {
			item.ProductName = product.Name
		}
		if item.UnitPrice == 0 {
			item.UnitPrice = product.UnitPrice
		}
	}

	now := time.Now()
	if order.ID == "" {
		order.ID = NewID()
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = now
	}
	order.CustomerName = customer.Name
	order.Status = OrderStatusPending
	order.Version = 1
	order.CreatedAt = now
	order.UpdatedAt = now
	order.CalculateTotal()

	if err := ValidateOrder(order); err != nil {
		return err
	}

	if err := m.storage.CreateOrder(ctx, order); err != nil {
		return NewStorageError("create_order", "受注作成に失敗しました", err)
	}

	m.logger.Info("受注作成完了",
		zap.String("order_id", order.ID),
		zap.String("customer_id", order.CustomerID),
		zap.Int64("total_packs", order.TotalPacks()),
		zap.Int64("total_amount", order.TotalAmount),
	)

	return nil
}

// GetOrder gets an order by ID
// 受注をIDで取得
func (m *Manager) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, NewValidationError("order_id", "受注IDが指定されていません", "")
	}
	return m.storage.GetOrder(ctx, orderID)
}

// ListOrders lists orders for a delivery date, optionally filtered by status
// 納品日の受注一覧を取得（ステータス絞り込みは任意）
func (m *Manager) ListOrders(ctx context.Context, date time.Time, status OrderStatus) ([]Order, error) {
	if status != "" {
		if err := ValidateOrderStatus(status); err != nil {
			return nil, err
		}
	}
	return m.storage.ListOrders(ctx, date, status)
}

// ListOrdersByCustomer lists a customer's orders, newest first
// 納入先の受注一覧を取得
func (m *Manager) ListOrdersByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	if _, err := m.storage.GetCustomer(ctx, customerID); err != nil {
		if err == ErrCustomerNotFound {
			return nil, ErrCustomerNotFound
		}
		return nil, NewStorageError("get_customer", "顧客取得に失敗しました", err)
	}
	return m.storage.ListOrdersByCustomer(ctx, customerID)
}

// ConfirmOrder transitions an order from pending to confirmed
// 受注を未確認から確定に遷移
func (m *Manager) ConfirmOrder(ctx context.Context, orderID string) error {
	return m.transitionOrder(ctx, orderID, OrderStatusConfirmed)
}

// CancelOrder cancels a pending or confirmed order
// 未確認または確定の受注をキャンセル
func (m *Manager) CancelOrder(ctx context.Context, orderID string) error {
	return m.transitionOrder(ctx, orderID, OrderStatusCancelled)
}

// MarkOrderShipped ships a confirmed order and posts it to the shipment board
// 確定受注を出荷済みにし、出荷ボードへ転記
func (m *Manager) MarkOrderShipped(ctx context.Context, orderID string) error {
	order, err := m.transitionOrderReturning(ctx, orderID, OrderStatusShipped)
	if err != nil {
		return err
	}

	now := time.Now()
	packs := order.TotalPacks()
	shipment := &ShipmentRecord{
		ID:           NewID(),
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		Date:         order.DeliveryDate,
		Status:       ShipmentStatusShipped,
		Boxes:        (packs + m.config.PacksPerBox - 1) / m.config.PacksPerBox,
		Packs:        packs,
		Amount:       order.TotalAmount,
		ShippedAt:    &now,
	}

	if err := m.storage.CreateShipment(ctx, shipment); err != nil {
		m.logger.Error("出荷記録作成に失敗しました",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}

	return nil
}

// GetShipmentBoard builds the day's shipment board
// 当日の出荷ボードを作成
func (m *Manager) GetShipmentBoard(ctx context.Context, date time.Time) (*DailyShipmentSummary, error) {
	shipments, err := m.storage.ListShipments(ctx, date)
	if err != nil {
		return nil, NewStorageError("list_shipments", "出荷一覧取得に失敗しました", err)
	}
	return summarizeShipments(date, shipments), nil
}

// UpdateShipmentStatus advances a shipment's progress. Transitions move
// forward only: pending, preparing, then shipped.
// 出荷の進行状況を更新。遷移は前進のみ。
func (m *Manager) UpdateShipmentStatus(ctx context.Context, shipmentID string, status ShipmentStatus) error {
	if err := ValidateShipmentStatus(status); err != nil {
		return err
	}

	shipment, err := m.storage.GetShipment(ctx, shipmentID)
	if err != nil {
		if err == ErrShipmentNotFound {
			return ErrShipmentNotFound
		}
		return NewStorageError("get_shipment", "出荷レコード取得に失敗しました", err)
	}

	if shipmentStatusRank(status) <= shipmentStatusRank(shipment.Status) {
		return NewBusinessRuleError("shipment_transition", "出荷ステータスは前進のみ可能です",
			fmt.Sprintf("%s -> %s", shipment.Status, status))
	}

	shipment.Status = status
	if status == ShipmentStatusShipped {
		now := time.Now()
		shipment.ShippedAt = &now
	}

	if err := m.storage.UpdateShipment(ctx, shipment); err != nil {
		return NewStorageError("update_shipment", "出荷レコード更新に失敗しました", err)
	}

	m.logger.Info("出荷ステータス更新完了",
		zap.String("shipment_id", shipmentID),
		zap.String("status", string(status)),
	)

	return nil
}

// GetAlerts gets active operational alerts
// アクティブな運用アラートを取得
func (m *Manager) GetAlerts(ctx context.Context) ([]StockAlert, error) {
	return m.storage.GetActiveAlerts(ctx)
}

// ResolveAlert resolves an alert
// アラートを解決
func (m *Manager) ResolveAlert(ctx context.Context, alertID string) error {
	return m.storage.ResolveAlert(ctx, alertID)
}

// CreateProduct creates a new catalog product
// 品目マスタを新規作成
func (m *Manager) CreateProduct(ctx context.Context, product *Product) error {
	if product == nil {
		return NewValidationError("product", "品目が指定されていません", "nil")
	}

	if product.Unit == "" {
		product.Unit = "パック"
	}
	if product.PacksPerTray == 0 {
		product.PacksPerTray = m.config.DefaultPacksPerTray
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := ValidateProduct(product); err != nil {
		return err
	}

	if err := m.storage.CreateProduct(ctx, product); err != nil {
		return NewStorageError("create_product", "品目作成に失敗しました", err)
	}

	m.logger.Info("品目作成完了",
		zap.String("product_id", product.ID),
		zap.String("code", product.Code),
		zap.String("name", product.Name),
	)

	return nil
}

// GetProduct gets a product by ID
// 品目をIDで取得
func (m *Manager) GetProduct(ctx context.Context, productID string) (*Product, error) {
	if err := ValidateProductID(productID); err != nil {
		return nil, err
	}
	return m.storage.GetProduct(ctx, productID)
}

// UpdateProduct updates a catalog product
// 品目マスタを更新
func (m *Manager) UpdateProduct(ctx context.Context, product *Product) error {
	if err := ValidateProduct(product); err != nil {
		return err
	}
	product.UpdatedAt = time.Now()
	if err := m.storage.UpdateProduct(ctx, product); err != nil {
		return NewStorageError("update_product", "品目更新に失敗しました", err)
	}
	return nil
}

// ListProducts lists the whole catalog in catalog order
// 品目マスタをカタログ順で取得
func (m *Manager) ListProducts(ctx context.Context) ([]Product, error) {
	return m.storage.ListProducts(ctx)
}

// SetTargetInventory sets a product's target inventory level
// 品目の目標在庫を設定
func (m *Manager) SetTargetInventory(ctx context.Context, productID string, target int64) error {
	if err := ValidateProductID(productID); err != nil {
		return err
	}
	if target < 0 {
		return NewValidationError("target", "目標在庫は0以上である必要があります", fmt.Sprintf("%d", target))
	}
	if _, err := m.storage.GetProduct(ctx, productID); err != nil {
		if err == ErrProductNotFound {
			return ErrProductNotFound
		}
		return NewStorageError("get_product", "品目取得に失敗しました", err)
	}

	if err := m.storage.SetTargetInventory(ctx, productID, target); err != nil {
		return NewStorageError("set_target", "目標在庫設定に失敗しました", err)
	}

	m.logger.Info("目標在庫設定完了",
		zap.String("product_id", productID),
		zap.Int64("target", target),
	)

	return nil
}

// CreateCustomer creates a new customer
// 納入先を新規作成
func (m *Manager) CreateCustomer(ctx context.Context, customer *Customer) error {
	if customer == nil {
		return NewValidationError("customer", "顧客が指定されていません", "nil")
	}
	if customer.ID == "" {
		customer.ID = NewID()
	}
	customer.CreatedAt = time.Now()

	if err := ValidateCustomer(customer); err != nil {
		return err
	}

	if err := m.storage.CreateCustomer(ctx, customer); err != nil {
		return NewStorageError("create_customer", "顧客作成に失敗しました", err)
	}

	m.logger.Info("顧客作成完了",
		zap.String("customer_id", customer.ID),
		zap.String("name", customer.Name),
	)

	return nil
}

// GetCustomer gets a customer by ID
// 納入先をIDで取得
func (m *Manager) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	if err := ValidateCustomerID(customerID); err != nil {
		return nil, err
	}
	return m.storage.GetCustomer(ctx, customerID)
}

// ListCustomers lists all customers
// 納入先一覧を取得
func (m *Manager) ListCustomers(ctx context.Context) ([]Customer, error) {
	return m.storage.ListCustomers(ctx)
}

// ヘルパーメソッド

// orderTransitions holds the allowed order status transitions
// 許可された受注ステータス遷移
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {},
	OrderStatusCancelled: {},
}

// canTransitionOrder reports whether an order may move to the given status
// 受注ステータス遷移の可否を判定
func canTransitionOrder(from, to OrderStatus) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// shipmentStatusRank orders shipment statuses for forward-only checks
// 出荷ステータスの前進順序
func shipmentStatusRank(status ShipmentStatus) int {
	switch status {
	case ShipmentStatusPending:
		return 0
	case ShipmentStatusPreparing:
		return 1
	case ShipmentStatusShipped:
		return 2
	default:
		return -1
	}
}

// transitionOrder moves an order to a new status
// 受注を新しいステータスへ遷移
func (m *Manager) transitionOrder(ctx context.Context, orderID string, to OrderStatus) error {
	_, err := m.transitionOrderReturning(ctx, orderID, to)
	return err
}

func (m *Manager) transitionOrderReturning(ctx context.Context, orderID string, to OrderStatus) (*Order, error) {
	if orderID == "" {
		return nil, NewValidationError("order_id", "受注IDが指定されていません", "")
	}

	order, err := m.storage.GetOrder(ctx, orderID)
	if err != nil {
		if err == ErrOrderNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, NewStorageError("get_order", "受注取得に失敗しました", err)
	}

	if !canTransitionOrder(order.Status, to) {
		return nil, NewBusinessRuleError("order_transition", "許可されていない受注ステータス遷移です",
			fmt.Sprintf("%s -> %s", order.Status, to))
	}

	oldStatus := order.Status
	order.Status = to
	order.Version++
	order.UpdatedAt = time.Now()

	if err := m.storage.UpdateOrder(ctx, order); err != nil {
		return nil, NewStorageError("update_order", "受注更新に失敗しました", err)
	}

	if m.publisher != nil {
		event := OrderStatusChangedEvent{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			OldStatus:  oldStatus,
			NewStatus:  to,
			Timestamp:  time.Now(),
		}
		if err := m.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
			m.logger.Error("受注イベント発行に失敗しました", zap.Error(err))
		}
	}

	m.logger.Info("受注ステータス更新完了",
		zap.String("order_id", order.ID),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(to)),
	)

	return order, nil
}

// seedingAmountFor recomputes a product's instruction amount for events
// イベント用に品目の仕込み量を再計算
func (m *Manager) seedingAmountFor(ctx context.Context, product *Product, date time.Time) int64 {
	predicted, err := m.storage.GetForecast(ctx, product.ID, date)
	if err != nil {
		predicted = 0
	}
	target, err := m.storage.GetTargetInventory(ctx, product.ID)
	if err != nil {
		target = 0
	}
	buckets, err := m.storage.GetInventoryBuckets(ctx, product.ID, date)
	if err != nil {
		return 0
	}
	var current int64
	for _, b := range buckets {
		current += b.Quantity
	}
	instruction, err := ComputeSeedingAmount(product, predicted, target, current)
	if err != nil {
		return 0
	}
	return instruction.SeedingAmount
}

// triggerExpiryAlert creates an expiry alert and publishes the event
// 廃棄アラートを作成しイベントを発行
func (m *Manager) triggerExpiryAlert(ctx context.Context, product *Product, quantity, lossAmount int64) {
	alert := &StockAlert{
		ID:        NewID(),
		Type:      AlertTypeExpired,
		ProductID: product.ID,
		Quantity:  quantity,
		Threshold: int64(m.config.ExpiryThresholdDays),
		Message:   fmt.Sprintf("品目 %s の在庫 %dパックが有効期限を超過し廃棄されました (損失額: %d円)", product.Name, quantity, lossAmount),
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if err := m.storage.CreateAlert(ctx, alert); err != nil {
		m.logger.Error("アラート作成に失敗しました", zap.Error(err))
		return
	}

	if m.publisher != nil {
		event := ExpiryAlertEvent{
			ProductID:     product.ID,
			Quantity:      quantity,
			EstimatedLoss: lossAmount,
			Timestamp:     time.Now(),
		}
		if err := m.publisher.PublishExpiryAlert(ctx, event); err != nil {
			m.logger.Error("廃棄アラートイベント発行に失敗しました", zap.Error(err))
		}
	}
}

// triggerLowStockAlert creates a low stock alert
// 低在庫アラートを作成
func (m *Manager) triggerLowStockAlert(ctx context.Context, productID string, currentQty int64) {
	alert := &StockAlert{
		ID:        NewID(),
		Type:      AlertTypeLowStock,
		ProductID: productID,
		Quantity:  currentQty,
		Threshold: m.config.LowStockThreshold,
		Message:   fmt.Sprintf("品目 %s の在庫が低下しています (現在: %d, 閾値: %d)", productID, currentQty, m.config.LowStockThreshold),
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if err := m.storage.CreateAlert(ctx, alert); err != nil {
		m.logger.Error("アラート作成に失敗しました", zap.Error(err))
	}
}
