package farm

import (
	"errors"
	"fmt"
)

// Common farm engine errors
// 共通のエンジンエラー定義

var (
	// ErrProductNotFound is returned when a product doesn't exist
	// 品目が存在しない場合のエラー
	ErrProductNotFound = errors.New("品目が見つかりません")

	// ErrCustomerNotFound is returned when a customer doesn't exist
	// 納入先が存在しない場合のエラー
	ErrCustomerNotFound = errors.New("納入先が見つかりません")

	// ErrOrderNotFound is returned when an order doesn't exist
	// 受注が存在しない場合のエラー
	ErrOrderNotFound = errors.New("受注が見つかりません")

	// ErrShipmentNotFound is returned when a shipment record doesn't exist
	// 出荷記録が存在しない場合のエラー
	ErrShipmentNotFound = errors.New("出荷記録が見つかりません")

	// ErrPlanEntryNotFound is returned when a production plan entry doesn't exist
	// 生産計画エントリが存在しない場合のエラー
	ErrPlanEntryNotFound = errors.New("生産計画エントリが見つかりません")

	// ErrInvalidLedgerState is returned when a product's buckets don't cover
	// every age exactly once
	// 在庫台帳の経過日数が過不足なく揃っていない場合のエラー
	ErrInvalidLedgerState = errors.New("在庫台帳の状態が不正です")

	// ErrMissingInventoryData is returned when a catalog product has no ledger
	// 品目に対応する在庫台帳が存在しない場合のエラー
	ErrMissingInventoryData = errors.New("在庫データが見つかりません")

	// ErrInvalidStatusTransition is returned for a disallowed status change
	// 許可されていないステータス遷移のエラー
	ErrInvalidStatusTransition = errors.New("許可されていないステータス遷移です")

	// ErrVersionMismatch is returned when optimistic locking fails
	// 楽観的ロック失敗時のエラー
	ErrVersionMismatch = errors.New("バージョンが一致しません。他のユーザーによって更新されています")

	// ErrDuplicateProduct is returned when creating a product that already exists
	// 既に存在する品目を作成しようとした場合のエラー
	ErrDuplicateProduct = errors.New("品目は既に存在します")

	// ErrDuplicateCustomer is returned when creating a customer that already exists
	// 既に存在する納入先を作成しようとした場合のエラー
	ErrDuplicateCustomer = errors.New("納入先は既に存在します")

	// ErrEmptyOrder is returned when an order has no items
	// 明細のない受注のエラー
	ErrEmptyOrder = errors.New("受注に明細がありません")
)

// ValidationError represents a validation error with details
// 詳細付きバリデーションエラーを表現
type ValidationError struct {
	Field   string `json:"field"`   // エラーフィールド
	Message string `json:"message"` // エラーメッセージ
	Value   string `json:"value"`   // 無効な値
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("バリデーションエラー [%s]: %s (値: %s)", e.Field, e.Message, e.Value)
}

// LedgerStateError describes which product's ledger failed validation and why
// どの品目の台帳がなぜ不正かを表現
type LedgerStateError struct {
	ProductID string `json:"product_id"` // 品目ID
	Message   string `json:"message"`    // エラーメッセージ
}

func (e LedgerStateError) Error() string {
	return fmt.Sprintf("在庫台帳エラー [%s]: %s", e.ProductID, e.Message)
}

// Unwrap links the error to ErrInvalidLedgerState for errors.Is checks
func (e LedgerStateError) Unwrap() error {
	return ErrInvalidLedgerState
}

// BusinessRuleError represents a business rule violation
// ビジネスルール違反を表現
type BusinessRuleError struct {
	Rule    string `json:"rule"`    // ルール名
	Message string `json:"message"` // エラーメッセージ
	Context string `json:"context"` // コンテキスト情報
}

func (e BusinessRuleError) Error() string {
	return fmt.Sprintf("ビジネスルール違反 [%s]: %s (コンテキスト: %s)", e.Rule, e.Message, e.Context)
}

// StorageError represents a storage layer error
// ストレージ層のエラーを表現
type StorageError struct {
	Operation string `json:"operation"` // 操作名
	Message   string `json:"message"`   // エラーメッセージ
	Cause     error  `json:"cause"`     // 原因エラー
}

func (e StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ストレージエラー [%s]: %s (原因: %v)", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("ストレージエラー [%s]: %s", e.Operation, e.Message)
}

func (e StorageError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
// 新しいバリデーションエラーを作成
func NewValidationError(field, message, value string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// NewLedgerStateError creates a new ledger state error
// 新しい在庫台帳エラーを作成
func NewLedgerStateError(productID, message string) *LedgerStateError {
	return &LedgerStateError{
		ProductID: productID,
		Message:   message,
	}
}

// NewBusinessRuleError creates a new business rule error
// 新しいビジネスルールエラーを作成
func NewBusinessRuleError(rule, message, context string) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// NewStorageError creates a new storage error
// 新しいストレージエラーを作成
func NewStorageError(operation, message string, cause error) *StorageError {
	return &StorageError{
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}
