package farm

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ValidateProductID 品目IDの形式をバリデーション
func ValidateProductID(productID string) error {
	if productID == "" {
		return NewValidationError("product_id", "品目IDが空です", productID)
	}
	if len(productID) > 255 {
		return NewValidationError("product_id", "品目IDが長すぎます", productID)
	}
	// 英数字、ハイフン、アンダースコアのみ許可
	validPattern := regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	if !validPattern.MatchString(productID) {
		return NewValidationError("product_id", "品目IDに無効な文字が含まれています", productID)
	}
	return nil
}

// ValidateProductCode 品目コードの形式をバリデーション
func ValidateProductCode(code string) error {
	if code == "" {
		return NewValidationError("code", "品目コードが空です", code)
	}
	if len(code) > 32 {
		return NewValidationError("code", "品目コードが長すぎます", code)
	}
	// 英大文字と数字のみ許可 (例: TM001)
	validPattern := regexp.MustCompile(`^[A-Z0-9]+$`)
	if !validPattern.MatchString(code) {
		return NewValidationError("code", "品目コードに無効な文字が含まれています", code)
	}
	return nil
}

// ValidateProductName 品目名をバリデーション
func ValidateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("name", "品目名が空です", name)
	}
	if len(name) > 500 {
		return NewValidationError("name", "品目名が長すぎます", name)
	}
	return nil
}

// ValidateCustomerID 顧客IDの形式をバリデーション
func ValidateCustomerID(customerID string) error {
	if customerID == "" {
		return NewValidationError("customer_id", "顧客IDが空です", customerID)
	}
	if len(customerID) > 255 {
		return NewValidationError("customer_id", "顧客IDが長すぎます", customerID)
	}
	validPattern := regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	if !validPattern.MatchString(customerID) {
		return NewValidationError("customer_id", "顧客IDに無効な文字が含まれています", customerID)
	}
	return nil
}

// ValidateCustomerName 顧客名をバリデーション
func ValidateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("name", "顧客名が空です", name)
	}
	if len(name) > 500 {
		return NewValidationError("name", "顧客名が長すぎます", name)
	}
	return nil
}

// ValidateQuantity 数量をバリデーション
func ValidateQuantity(quantity int64, allowNegative bool) error {
	if !allowNegative && quantity < 0 {
		return NewValidationError("quantity", "負の数量は許可されていません", fmt.Sprintf("%d", quantity))
	}
	if quantity < -999999999 || quantity > 999999999 {
		return NewValidationError("quantity", "数量が有効範囲を超えています", fmt.Sprintf("%d", quantity))
	}
	return nil
}

// ValidateUnitPrice 単価をバリデーション
func ValidateUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return NewValidationError("unit_price", "単価は0以上である必要があります", fmt.Sprintf("%d", unitPrice))
	}
	if unitPrice > 999999 {
		return NewValidationError("unit_price", "単価が有効範囲を超えています", fmt.Sprintf("%d", unitPrice))
	}
	return nil
}

// ValidateGrowthDays 生育日数をバリデーション
func ValidateGrowthDays(growthDays int) error {
	if growthDays < 1 {
		return NewValidationError("growth_days", "生育日数は1以上である必要があります", fmt.Sprintf("%d", growthDays))
	}
	if growthDays > 365 {
		return NewValidationError("growth_days", "生育日数が有効範囲を超えています", fmt.Sprintf("%d", growthDays))
	}
	return nil
}

// ValidatePacksPerTray トレイあたりパック数をバリデーション
func ValidatePacksPerTray(packsPerTray int64) error {
	if packsPerTray < 1 {
		return NewValidationError("packs_per_tray", "トレイあたりパック数は1以上である必要があります", fmt.Sprintf("%d", packsPerTray))
	}
	if packsPerTray > 99999 {
		return NewValidationError("packs_per_tray", "トレイあたりパック数が有効範囲を超えています", fmt.Sprintf("%d", packsPerTray))
	}
	return nil
}

// ValidateDaysOld 経過日数をバリデーション
func ValidateDaysOld(daysOld int) error {
	if daysOld < 0 {
		return NewValidationError("days_old", "経過日数は0以上である必要があります", fmt.Sprintf("%d", daysOld))
	}
	if daysOld > 365 {
		return NewValidationError("days_old", "経過日数が有効範囲を超えています", fmt.Sprintf("%d", daysOld))
	}
	return nil
}

// ValidateVersion バージョンをバリデーション
func ValidateVersion(version int64) error {
	if version < 1 {
		return NewValidationError("version", "バージョンは1以上である必要があります", fmt.Sprintf("%d", version))
	}
	return nil
}

// ValidateScheduledTime 出荷予定時刻 (HH:MM) の形式をバリデーション
func ValidateScheduledTime(scheduledTime string) error {
	if scheduledTime == "" {
		return nil // 予定時刻は任意
	}
	validPattern := regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	if !validPattern.MatchString(scheduledTime) {
		return NewValidationError("scheduled_time", "出荷予定時刻はHH:MM形式である必要があります", scheduledTime)
	}
	return nil
}

// ValidateOrderStatus 受注ステータスをバリデーション
func ValidateOrderStatus(status OrderStatus) error {
	validStatuses := map[OrderStatus]bool{
		OrderStatusPending:   true,
		OrderStatusConfirmed: true,
		OrderStatusShipped:   true,
		OrderStatusCancelled: true,
	}

	if !validStatuses[status] {
		return NewValidationError("status", "無効な受注ステータスです", string(status))
	}
	return nil
}

// ValidateShipmentStatus 出荷ステータスをバリデーション
func ValidateShipmentStatus(status ShipmentStatus) error {
	validStatuses := map[ShipmentStatus]bool{
		ShipmentStatusPending:   true,
		ShipmentStatusPreparing: true,
		ShipmentStatusShipped:   true,
	}

	if !validStatuses[status] {
		return NewValidationError("status", "無効な出荷ステータスです", string(status))
	}
	return nil
}

// ValidatePlanStatus 生産計画ステータスをバリデーション
func ValidatePlanStatus(status PlanStatus) error {
	validStatuses := map[PlanStatus]bool{
		PlanStatusPlanned:   true,
		PlanStatusSeeded:    true,
		PlanStatusGrowing:   true,
		PlanStatusHarvested: true,
	}

	if !validStatuses[status] {
		return NewValidationError("status", "無効な生産計画ステータスです", string(status))
	}
	return nil
}

// ValidateAlertType アラート種別をバリデーション
func ValidateAlertType(alertType AlertType) error {
	validTypes := map[AlertType]bool{
		AlertTypeLowStock: true,
		AlertTypeExpiring: true,
		AlertTypeExpired:  true,
	}

	if !validTypes[alertType] {
		return NewValidationError("alert_type", "無効なアラート種別です", string(alertType))
	}
	return nil
}

// ValidateProduct 品目全体をバリデーション
func ValidateProduct(product *Product) error {
	if product == nil {
		return NewValidationError("product", "品目が指定されていません", "nil")
	}

	if err := ValidateProductID(product.ID); err != nil {
		return err
	}
	if err := ValidateProductCode(product.Code); err != nil {
		return err
	}
	if err := ValidateProductName(product.Name); err != nil {
		return err
	}
	if err := ValidateUnitPrice(product.UnitPrice); err != nil {
		return err
	}
	if err := ValidateGrowthDays(product.GrowthDays); err != nil {
		return err
	}
	if err := ValidatePacksPerTray(product.PacksPerTray); err != nil {
		return err
	}

	return nil
}

// ValidateCustomer 顧客全体をバリデーション
func ValidateCustomer(customer *Customer) error {
	if customer == nil {
		return NewValidationError("customer", "顧客が指定されていません", "nil")
	}

	if err := ValidateCustomerID(customer.ID); err != nil {
		return err
	}
	if err := ValidateCustomerName(customer.Name); err != nil {
		return err
	}

	return nil
}

// ValidateOrderItem 受注明細をバリデーション
func ValidateOrderItem(item *OrderItem) error {
	if item == nil {
		return NewValidationError("order_item", "受注明細が指定されていません", "nil")
	}

	if err := ValidateProductID(item.ProductID); err != nil {
		return err
	}
	if item.Quantity < 1 {
		return NewValidationError("quantity", "受注数量は1以上である必要があります", fmt.Sprintf("%d", item.Quantity))
	}
	if err := ValidateQuantity(item.Quantity, false); err != nil {
		return err
	}
	if err := ValidateUnitPrice(item.UnitPrice); err != nil {
		return err
	}

	return nil
}

// ValidateOrder 受注全体をバリデーション
func ValidateOrder(order *Order) error {
	if order == nil {
		return NewValidationError("order", "受注が指定されていません", "nil")
	}

	if err := ValidateCustomerID(order.CustomerID); err != nil {
		return err
	}
	if err := ValidateOrderStatus(order.Status); err != nil {
		return err
	}
	if len(order.Items) == 0 {
		return ErrEmptyOrder
	}
	for i := range order.Items {
		if err := ValidateOrderItem(&order.Items[i]); err != nil {
			return err
		}
	}
	if order.DeliveryDate.IsZero() {
		return NewValidationError("delivery_date", "納品日が指定されていません", "")
	}

	return nil
}

// ValidateShipment 出荷レコード全体をバリデーション
func ValidateShipment(shipment *ShipmentRecord) error {
	if shipment == nil {
		return NewValidationError("shipment", "出荷レコードが指定されていません", "nil")
	}

	if err := ValidateCustomerID(shipment.CustomerID); err != nil {
		return err
	}
	if shipment.Boxes < 0 {
		return NewValidationError("boxes", "箱数は0以上である必要があります", fmt.Sprintf("%d", shipment.Boxes))
	}
	if shipment.Packs < 0 {
		return NewValidationError("packs", "パック数は0以上である必要があります", fmt.Sprintf("%d", shipment.Packs))
	}
	if shipment.Amount < 0 {
		return NewValidationError("amount", "金額は0以上である必要があります", fmt.Sprintf("%d", shipment.Amount))
	}
	if err := ValidateShipmentStatus(shipment.Status); err != nil {
		return err
	}
	if err := ValidateScheduledTime(shipment.ScheduledTime); err != nil {
		return err
	}

	return nil
}

// ValidatePlanEntry 生産計画エントリ全体をバリデーション
func ValidatePlanEntry(entry *PlanEntry) error {
	if entry == nil {
		return NewValidationError("plan_entry", "生産計画が指定されていません", "nil")
	}

	if err := ValidateProductID(entry.ProductID); err != nil {
		return err
	}
	if entry.Trays < 1 {
		return NewValidationError("trays", "トレイ数は1以上である必要があります", fmt.Sprintf("%d", entry.Trays))
	}
	if err := ValidatePlanStatus(entry.Status); err != nil {
		return err
	}
	if entry.Date.IsZero() {
		return NewValidationError("date", "播種日が指定されていません", "")
	}
	if !entry.HarvestDate.After(entry.Date) {
		return NewValidationError("harvest_date", "収穫日は播種日より後である必要があります", entry.HarvestDate.Format(time.DateOnly))
	}

	return nil
}

// ValidateStockAlert アラート全体をバリデーション
func ValidateStockAlert(alert *StockAlert) error {
	if alert == nil {
		return NewValidationError("alert", "アラートが指定されていません", "nil")
	}

	if err := ValidateAlertType(alert.Type); err != nil {
		return err
	}
	if err := ValidateProductID(alert.ProductID); err != nil {
		return err
	}
	if strings.TrimSpace(alert.Message) == "" {
		return NewValidationError("message", "アラートメッセージが空です", alert.Message)
	}

	return nil
}
