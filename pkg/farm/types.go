// Package farm provides core operations management for a sprout farm
package farm

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a cultivated product in the catalog
// 栽培品目マスタを表現
type Product struct {
	ID           string    `json:"id" db:"id"`                         // 品目ID
	Code         string    `json:"code" db:"code"`                     // 品目コード
	Name         string    `json:"name" db:"name"`                     // 品目名
	Description  string    `json:"description" db:"description"`       // 品目説明
	Unit         string    `json:"unit" db:"unit"`                     // 販売単位（パック）
	UnitPrice    int64     `json:"unit_price" db:"unit_price"`         // 単価（円）
	GrowthDays   int       `json:"growth_days" db:"growth_days"`       // 栽培日数（種付けから収穫まで）
	PacksPerTray int64     `json:"packs_per_tray" db:"packs_per_tray"` // 1トレイあたりのパック数
	CreatedAt    time.Time `json:"created_at" db:"created_at"`         // 作成日時
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`         // 更新日時
}

// Customer represents a delivery destination
// 納入先マスタを表現
type Customer struct {
	ID          string    `json:"id" db:"id"`                     // 納入先ID
	Code        string    `json:"code" db:"code"`                 // 納入先コード
	Name        string    `json:"name" db:"name"`                 // 納入先名
	ContactName string    `json:"contact_name" db:"contact_name"` // 担当者名
	Phone       string    `json:"phone" db:"phone"`               // 電話番号
	Email       string    `json:"email" db:"email"`               // メールアドレス
	Address     string    `json:"address" db:"address"`           // 住所
	CreatedAt   time.Time `json:"created_at" db:"created_at"`     // 作成日時
}

// BucketStatus classifies a stock bucket by shelf-life age
// 経過日数による在庫ステータスを定義
type BucketStatus string

const (
	BucketStatusFresh    BucketStatus = "fresh"    // 新鮮
	BucketStatusWarning  BucketStatus = "warning"  // 廃棄前日
	BucketStatusExpiring BucketStatus = "expiring" // 本日廃棄
)

// InventoryBucket represents one day's stock intake for a product
// 品目の日次入庫在庫を表現
type InventoryBucket struct {
	ProductID string       `json:"product_id" db:"product_id"` // 品目ID
	Date      time.Time    `json:"date" db:"date"`             // 入庫日
	DaysOld   int          `json:"days_old" db:"days_old"`     // 経過日数（0 = 本日入庫）
	Quantity  int64        `json:"quantity" db:"quantity"`     // 数量（パック）
	Status    BucketStatus `json:"status"`                     // 鮮度ステータス（導出値）
}

// InventorySummary aggregates a product's aging buckets
// 品目ごとの在庫熟成サマリーを表現
type InventorySummary struct {
	ProductID       string            `json:"product_id"`       // 品目ID
	ProductName     string            `json:"product_name"`     // 品目名
	UnitPrice       int64             `json:"unit_price"`       // 単価（円）
	TargetInventory int64             `json:"target_inventory"` // 目標在庫
	Buckets         []InventoryBucket `json:"inventory"`        // 経過日数順の在庫
	TotalStock      int64             `json:"total_stock"`      // 総在庫数
	ExpiringToday   int64             `json:"expiring_today"`   // 本日廃棄対象数
	EstimatedLoss   int64             `json:"estimated_loss"`   // 廃棄予定額（円）
}

// ProductError records a per-product failure inside a batch computation
// バッチ計算における品目単位の失敗を記録
type ProductError struct {
	ProductID string `json:"product_id"` // 品目ID
	Error     string `json:"error"`      // エラーメッセージ
}

// InventoryReport is the catalog-wide aging report
// 全品目の在庫熟成レポートを表現
type InventoryReport struct {
	Date               time.Time          `json:"date"`                 // 基準日
	Summaries          []InventorySummary `json:"summary"`              // 品目別サマリー（カタログ順）
	TotalExpiringToday int64              `json:"total_expiring_today"` // 全品目の本日廃棄対象数
	TotalEstimatedLoss int64              `json:"total_estimated_loss"` // 全品目の廃棄予定額（円）
	Errors             []ProductError     `json:"errors,omitempty"`     // 集計できなかった品目
}

// ForecastVariance holds yesterday's predicted vs actual shipment
// 昨日の予測出荷と実績出荷の予実データを表現
type ForecastVariance struct {
	ProductID string    `json:"product_id" db:"product_id"` // 品目ID
	Date      time.Time `json:"date" db:"date"`             // 対象日
	Predicted int64     `json:"predicted" db:"predicted"`   // 予測出荷数（パック）
	Actual    int64     `json:"actual" db:"actual"`         // 実績出荷数（パック）
	Variance  int64     `json:"variance" db:"variance"`     // 差異（実績 - 予測）
}

// SeedingInstruction is today's replenishment instruction for a product
// 品目ごとの本日仕込み指示を表現
type SeedingInstruction struct {
	ProductID       string     `json:"product_id"`            // 品目ID
	ProductName     string     `json:"product_name"`          // 品目名
	SeedingAmount   int64      `json:"seeding_amount"`        // 仕込み量（パック、常に0以上）
	TargetStock     int64      `json:"target_stock"`          // 目標在庫
	CurrentStock    int64      `json:"current_stock"`         // 現在在庫
	StockDifference int64      `json:"stock_difference"`      // 在庫差（目標 - 現在、負は過剰在庫）
	Breakdown       string     `json:"breakdown"`             // 計算内訳（監査用）
	RecordedAt      *time.Time `json:"recorded_at,omitempty"` // 仕込み完了記録日時
}

// SeedingPlan bundles the day's instructions with per-product failures
// 本日分の仕込み指示一式を表現
type SeedingPlan struct {
	Date         time.Time            `json:"date"`             // 対象日
	Instructions []SeedingInstruction `json:"instructions"`     // 品目別指示（カタログ順）
	Errors       []ProductError       `json:"errors,omitempty"` // 計算できなかった品目
}

// OrderStatus defines the lifecycle of an order
// 受注のライフサイクルを定義
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // 未確認
	OrderStatusConfirmed OrderStatus = "confirmed" // 確定
	OrderStatusShipped   OrderStatus = "shipped"   // 出荷済
	OrderStatusCancelled OrderStatus = "cancelled" // キャンセル
)

// OrderItem is a single line of an order
// 受注明細行を表現
type OrderItem struct {
	ProductID   string `json:"product_id" db:"product_id"`     // 品目ID
	ProductName string `json:"product_name" db:"product_name"` // 品目名
	Quantity    int64  `json:"quantity" db:"quantity"`         // 数量（パック）
	UnitPrice   int64  `json:"unit_price" db:"unit_price"`     // 受注時単価（円）
}

// Order represents a customer order
// 受注を表現
type Order struct {
	ID           string      `json:"id" db:"id"`                       // 受注ID
	CustomerID   string      `json:"customer_id" db:"customer_id"`     // 納入先ID
	CustomerName string      `json:"customer_name" db:"customer_name"` // 納入先名
	OrderDate    time.Time   `json:"order_date" db:"order_date"`       // 受注日
	DeliveryDate time.Time   `json:"delivery_date" db:"delivery_date"` // 納品日
	Status       OrderStatus `json:"status" db:"status"`               // ステータス
	Items        []OrderItem `json:"items"`                            // 明細
	TotalAmount  int64       `json:"total_amount" db:"total_amount"`   // 合計金額（円）
	Version      int64       `json:"version" db:"version"`             // 楽観的ロック用バージョン
	CreatedBy    string      `json:"created_by" db:"created_by"`       // 作成者
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`       // 作成日時
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`       // 更新日時
}

// TotalPacks returns the total pack count of an order
// 受注の合計パック数を返す
func (o *Order) TotalPacks() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// CalculateTotal recomputes TotalAmount from the order items
// 明細から合計金額を再計算
func (o *Order) CalculateTotal() {
	var total int64
	for _, item := range o.Items {
		total += item.Quantity * item.UnitPrice
	}
	o.TotalAmount = total
}

// ShipmentStatus defines the delivery progress of a shipment
// 出荷の進行状況を定義
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"   // 未着手
	ShipmentStatusPreparing ShipmentStatus = "preparing" // 準備中
	ShipmentStatusShipped   ShipmentStatus = "shipped"   // 出荷済
)

// ShipmentRecord represents one customer's shipment for a day
// 納入先ごとの日次出荷記録を表現
type ShipmentRecord struct {
	ID            string         `json:"id" db:"id"`                         // 出荷ID
	CustomerID    string         `json:"customer_id" db:"customer_id"`       // 納入先ID
	CustomerName  string         `json:"customer_name" db:"customer_name"`   // 納入先名
	Date          time.Time      `json:"date" db:"date"`                     // 出荷日
	Status        ShipmentStatus `json:"status" db:"status"`                 // 進行状況
	Boxes         int64          `json:"boxes" db:"boxes"`                   // 箱数
	Packs         int64          `json:"packs" db:"packs"`                   // パック数
	Amount        int64          `json:"amount" db:"amount"`                 // 金額（円）
	ScheduledTime string         `json:"scheduled_time" db:"scheduled_time"` // 出荷予定時刻（HH:MM）
	ShippedAt     *time.Time     `json:"shipped_at" db:"shipped_at"`         // 実出荷日時
}

// WasteRecord represents stock written off past the expiry threshold
// 有効期限超過で廃棄した在庫を表現
type WasteRecord struct {
	ID         string    `json:"id" db:"id"`                   // 廃棄ID
	ProductID  string    `json:"product_id" db:"product_id"`   // 品目ID
	Date       time.Time `json:"date" db:"date"`               // 廃棄日
	Quantity   int64     `json:"quantity" db:"quantity"`       // 廃棄数量（パック）
	LossAmount int64     `json:"loss_amount" db:"loss_amount"` // 廃棄額（数量 × 単価）
	CreatedAt  time.Time `json:"created_at" db:"created_at"`   // 作成日時
}

// PlanStatus defines the status of a production plan entry
// 生産計画エントリのステータスを定義
type PlanStatus string

const (
	PlanStatusPlanned   PlanStatus = "planned"   // 計画
	PlanStatusSeeded    PlanStatus = "seeded"    // 種付済
	PlanStatusGrowing   PlanStatus = "growing"   // 育成中
	PlanStatusHarvested PlanStatus = "harvested" // 収穫済
)

// PlanEntry represents one product's production slot on a calendar day
// 生産計画カレンダーの1枠を表現
type PlanEntry struct {
	ID          string     `json:"id" db:"id"`                     // 計画ID
	ProductID   string     `json:"product_id" db:"product_id"`     // 品目ID
	Date        time.Time  `json:"date" db:"date"`                 // 種付け日
	HarvestDate time.Time  `json:"harvest_date" db:"harvest_date"` // 収穫予定日
	Trays       int64      `json:"trays" db:"trays"`               // トレイ数
	Status      PlanStatus `json:"status" db:"status"`             // ステータス
	Notes       string     `json:"notes" db:"notes"`               // 備考
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`     // 作成日時
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`     // 更新日時
}

// AlertType defines types of operational alerts
// 運用アラートのタイプを定義
type AlertType string

const (
	AlertTypeLowStock AlertType = "low_stock" // 低在庫
	AlertTypeExpiring AlertType = "expiring"  // 廃棄予定在庫あり
	AlertTypeExpired  AlertType = "expired"   // 廃棄実施
)

// StockAlert represents an operational alert raised by the engine
// エンジンが発行した運用アラートを表現
type StockAlert struct {
	ID         string     `json:"id" db:"id"`                   // アラートID
	Type       AlertType  `json:"type" db:"type"`               // アラートタイプ
	ProductID  string     `json:"product_id" db:"product_id"`   // 品目ID
	Quantity   int64      `json:"quantity" db:"quantity"`       // 対象数量
	Threshold  int64      `json:"threshold" db:"threshold"`     // 閾値
	Message    string     `json:"message" db:"message"`         // メッセージ
	IsActive   bool       `json:"is_active" db:"is_active"`     // アクティブ状態
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`   // 作成日時
	ResolvedAt *time.Time `json:"resolved_at" db:"resolved_at"` // 解決日時
}

// NewID generates an identifier for orders, shipments, alerts and waste records
// 受注・出荷・アラート・廃棄記録用のIDを生成
func NewID() string {
	return uuid.New().String()
}
