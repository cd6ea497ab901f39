package farm

import (
	"context"
	"time"
)

// FarmManager defines the core interface for sprout farm operations
// スプラウト農場運営のコアインターフェースを定義
type FarmManager interface {
	// 在庫熟成レポート - Aging inventory reporting
	GetInventoryReport(ctx context.Context, date time.Time) (*InventoryReport, error)
	GetInventoryLedger(ctx context.Context, productID string, date time.Time) ([]InventoryBucket, error)

	// 在庫操作 - Stock operations
	ReceiveStock(ctx context.Context, productID string, quantity int64, date time.Time) error
	RolloverDay(ctx context.Context, date time.Time) ([]WasteRecord, error)

	// 仕込み計画 - Seeding planning
	GetSeedingPlan(ctx context.Context, date time.Time) (*SeedingPlan, error)
	RecordSeedingCompleted(ctx context.Context, productID string, date time.Time) error
	RecordForecast(ctx context.Context, variance *ForecastVariance) error

	// 受注管理 - Order management
	CreateOrder(ctx context.Context, order *Order) error
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	ListOrders(ctx context.Context, date time.Time, status OrderStatus) ([]Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]Order, error)
	ConfirmOrder(ctx context.Context, orderID string) error
	CancelOrder(ctx context.Context, orderID string) error
	MarkOrderShipped(ctx context.Context, orderID string) error

	// 出荷ボード - Shipment board
	GetShipmentBoard(ctx context.Context, date time.Time) (*DailyShipmentSummary, error)
	UpdateShipmentStatus(ctx context.Context, shipmentID string, status ShipmentStatus) error

	// アラート管理 - Alert management
	GetAlerts(ctx context.Context) ([]StockAlert, error)
	ResolveAlert(ctx context.Context, alertID string) error
}

// ProductManager defines interface for product catalog management
// 品目マスタ管理のインターフェースを定義
type ProductManager interface {
	CreateProduct(ctx context.Context, product *Product) error
	GetProduct(ctx context.Context, productID string) (*Product, error)
	UpdateProduct(ctx context.Context, product *Product) error
	ListProducts(ctx context.Context) ([]Product, error)
	SetTargetInventory(ctx context.Context, productID string, target int64) error
}

// CustomerManager defines interface for customer management
// 納入先マスタ管理のインターフェースを定義
type CustomerManager interface {
	CreateCustomer(ctx context.Context, customer *Customer) error
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
}

// ProductionPlanner defines interface for the production calendar
// 生産計画カレンダーのインターフェースを定義
type ProductionPlanner interface {
	PlanFromInstruction(ctx context.Context, instruction *SeedingInstruction, date time.Time) (*PlanEntry, error)
	ScheduleSeeding(ctx context.Context, entry *PlanEntry) error
	AdvancePlanStatus(ctx context.Context, entryID string, status PlanStatus) error
	GetSchedule(ctx context.Context, from time.Time, days int) (*WeeklySchedule, error)
}

// ReportEngine defines interface for sales and waste reporting
// 売上・廃棄レポートエンジンのインターフェースを定義
type ReportEngine interface {
	GetDailyShipmentSummary(ctx context.Context, date time.Time) (*DailyShipmentSummary, error)
	GetSalesReport(ctx context.Context, date time.Time) (*SalesReport, error)
	GetWasteReport(ctx context.Context, year int, month time.Month) (*WasteReport, error)
	ExportInventoryCSV(ctx context.Context, date time.Time) ([]byte, error)
}

// Storage defines the interface for data persistence layer
// データ永続化層のインターフェースを定義
type Storage interface {
	// Product catalog
	CreateProduct(ctx context.Context, product *Product) error
	GetProduct(ctx context.Context, productID string) (*Product, error)
	UpdateProduct(ctx context.Context, product *Product) error
	ListProducts(ctx context.Context) ([]Product, error)

	// Customer catalog
	CreateCustomer(ctx context.Context, customer *Customer) error
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
	ListCustomers(ctx context.Context) ([]Customer, error)

	// Aging inventory ledger
	GetInventoryBuckets(ctx context.Context, productID string, date time.Time) ([]InventoryBucket, error)
	GetAllInventoryBuckets(ctx context.Context, date time.Time) (map[string][]InventoryBucket, error)
	UpsertInventoryBucket(ctx context.Context, bucket *InventoryBucket) error
	ShiftInventoryAges(ctx context.Context, productID string, date time.Time) (int64, error)

	// Forecasts and targets
	GetForecast(ctx context.Context, productID string, date time.Time) (int64, error)
	GetAllForecasts(ctx context.Context, date time.Time) (map[string]int64, error)
	SaveForecast(ctx context.Context, variance *ForecastVariance) error
	GetTargetInventory(ctx context.Context, productID string) (int64, error)
	GetAllTargets(ctx context.Context) (map[string]int64, error)
	SetTargetInventory(ctx context.Context, productID string, target int64) error

	// Seeding records
	SaveSeedingRecord(ctx context.Context, productID string, date, recordedAt time.Time) error
	GetSeedingRecords(ctx context.Context, date time.Time) (map[string]time.Time, error)

	// Order management
	CreateOrder(ctx context.Context, order *Order) error
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	UpdateOrder(ctx context.Context, order *Order) error
	ListOrders(ctx context.Context, date time.Time, status OrderStatus) ([]Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]Order, error)

	// Shipment board
	CreateShipment(ctx context.Context, shipment *ShipmentRecord) error
	GetShipment(ctx context.Context, shipmentID string) (*ShipmentRecord, error)
	UpdateShipment(ctx context.Context, shipment *ShipmentRecord) error
	ListShipments(ctx context.Context, date time.Time) ([]ShipmentRecord, error)
	ListShipmentsByRange(ctx context.Context, from, to time.Time) ([]ShipmentRecord, error)

	// Production plan
	CreatePlanEntry(ctx context.Context, entry *PlanEntry) error
	GetPlanEntry(ctx context.Context, entryID string) (*PlanEntry, error)
	UpdatePlanEntry(ctx context.Context, entry *PlanEntry) error
	ListPlanEntries(ctx context.Context, from, to time.Time) ([]PlanEntry, error)

	// Waste records
	CreateWasteRecord(ctx context.Context, record *WasteRecord) error
	ListWasteRecords(ctx context.Context, from, to time.Time) ([]WasteRecord, error)

	// Alert management
	CreateAlert(ctx context.Context, alert *StockAlert) error
	GetActiveAlerts(ctx context.Context) ([]StockAlert, error)
	ResolveAlert(ctx context.Context, alertID string) error

	// Health check
	Ping(ctx context.Context) error
	Close() error
}

// EventPublisher defines interface for publishing farm events
// 農場イベント発行のインターフェースを定義
type EventPublisher interface {
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
	PublishExpiryAlert(ctx context.Context, event ExpiryAlertEvent) error
	PublishSeedingRecorded(ctx context.Context, event SeedingRecordedEvent) error
}

// Events for farm operations
// 農場運営のイベント定義

// OrderStatusChangedEvent represents an order status transition
// 受注ステータス遷移イベントを表現
type OrderStatusChangedEvent struct {
	OrderID    string      `json:"order_id"`
	CustomerID string      `json:"customer_id"`
	OldStatus  OrderStatus `json:"old_status"`
	NewStatus  OrderStatus `json:"new_status"`
	Timestamp  time.Time   `json:"timestamp"`
}

// ExpiryAlertEvent represents stock reaching the expiry threshold
// 在庫の有効期限到達イベントを表現
type ExpiryAlertEvent struct {
	ProductID     string    `json:"product_id"`
	Quantity      int64     `json:"quantity"`
	EstimatedLoss int64     `json:"estimated_loss"`
	Timestamp     time.Time `json:"timestamp"`
}

// SeedingRecordedEvent represents a completed seeding instruction
// 仕込み完了記録イベントを表現
type SeedingRecordedEvent struct {
	ProductID     string    `json:"product_id"`
	SeedingAmount int64     `json:"seeding_amount"`
	Date          time.Time `json:"date"`
	Timestamp     time.Time `json:"timestamp"`
}
