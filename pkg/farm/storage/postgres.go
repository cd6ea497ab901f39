package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/nemonet1337/sproutGoFarm/pkg/farm"
)

// PostgreSQLStorage implements the Storage interface using PostgreSQL
// PostgreSQLを使用したStorageインターフェースの実装
type PostgreSQLStorage struct {
	db        *sql.DB
	logger    *zap.Logger
	expiryAge int // 有効期限（日数）。ロールオーバー時の廃棄判定に使用
}

// NewPostgreSQLStorage creates a new PostgreSQL storage instance
// 新しいPostgreSQLストレージインスタンスを作成
func NewPostgreSQLStorage(dsn string, expiryThresholdDays int, logger *zap.Logger) (*PostgreSQLStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗しました: %w", err)
	}

	// 接続テスト
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("データベースpingに失敗しました: %w", err)
	}

	// 接続プール設定
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if expiryThresholdDays < 1 {
		expiryThresholdDays = farm.DefaultExpiryThresholdDays
	}

	storage := &PostgreSQLStorage{
		db:        db,
		logger:    logger,
		expiryAge: expiryThresholdDays,
	}

	return storage, nil
}

// CreateProduct creates a new catalog product
// 新しい品目を作成
func (s *PostgreSQLStorage) CreateProduct(ctx context.Context, product *farm.Product) error {
	query := `
		INSERT INTO products (id, code, name, description, unit, unit_price, growth_days, packs_per_tray, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.ExecContext(ctx, query,
		product.ID,
		product.Code,
		product.Name,
		product.Description,
		product.Unit,
		product.UnitPrice,
		product.GrowthDays,
		product.PacksPerTray,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return farm.ErrDuplicateProduct
		}
		return fmt.Errorf("品目作成に失敗しました: %w", err)
	}

	return nil
}

// GetProduct retrieves a product by ID
// IDで品目を取得
func (s *PostgreSQLStorage) GetProduct(ctx context.Context, productID string) (*farm.Product, error) {
	query := `
		SELECT id, code, name, description, unit, unit_price, growth_days, packs_per_tray, created_at, updated_at
		FROM products
		WHERE id = $1`

	product := &farm.Product{}
	err := s.db.QueryRowContext(ctx, query, productID).Scan(
		&product.ID,
		&product.Code,
		&product.Name,
		&product.Description,
		&product.Unit,
		&product.UnitPrice,
		&product.GrowthDays,
		&product.PacksPerTray,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, farm.ErrProductNotFound
		}
		return nil, fmt.Errorf("品目取得に失敗しました: %w", err)
	}

	return product, nil
}

// UpdateProduct updates an existing product
// 既存の品目を更新
func (s *PostgreSQLStorage) UpdateProduct(ctx context.Context, product *farm.Product) error {
	query := `
		UPDATE products
		SET code = $2, name = $3, description = $4, unit = $5, unit_price = $6, growth_days = $7, packs_per_tray = $8, updated_at = $9
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		product.ID,
		product.Code,
		product.Name,
		product.Description,
		product.Unit,
		product.UnitPrice,
		product.GrowthDays,
		product.PacksPerTray,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("品目更新に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新行数の取得に失敗しました: %w", err)
	}

	if rowsAffected == 0 {
		return farm.ErrProductNotFound
	}

	return nil
}

// ListProducts retrieves the whole catalog in catalog order
// 品目マスタをカタログ順（品目コード順）で取得
func (s *PostgreSQLStorage) ListProducts(ctx context.Context) ([]farm.Product, error) {
	query := `
		SELECT id, code, name, description, unit, unit_price, growth_days, packs_per_tray, created_at, updated_at
		FROM products
		ORDER BY code`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("品目一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var products []farm.Product
	for rows.Next() {
		var product farm.Product
		err := rows.Scan(
			&product.ID,
			&product.Code,
			&product.Name,
			&product.Description,
			&product.Unit,
			&product.UnitPrice,
			&product.GrowthDays,
			&product.PacksPerTray,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("品目スキャンに失敗しました: %w", err)
		}
		products = append(products, product)
	}

	return products, nil
}

// CreateCustomer creates a new customer
// 新しい納入先を作成
func (s *PostgreSQLStorage) CreateCustomer(ctx context.Context, customer *farm.Customer) error {
	query := `
		INSERT INTO customers (id, code, name, contact_name, phone, email, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		customer.ID,
		customer.Code,
		customer.Name,
		customer.ContactName,
		customer.Phone,
		customer.Email,
		customer.Address,
		customer.CreatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return farm.ErrDuplicateCustomer
		}
		return fmt.Errorf("納入先作成に失敗しました: %w", err)
	}

	return nil
}

// GetCustomer retrieves a customer by ID
// IDで納入先を取得
func (s *PostgreSQLStorage) GetCustomer(ctx context.Context, customerID string) (*farm.Customer, error) {
	query := `
		SELECT id, code, name, contact_name, phone, email, address, created_at
		FROM customers
		WHERE id = $1`

	customer := &farm.Customer{}
	err := s.db.QueryRowContext(ctx, query, customerID).Scan(
		&customer.ID,
		&customer.Code,
		&customer.Name,
		&customer.ContactName,
		&customer.Phone,
		&customer.Email,
		&customer.Address,
		&customer.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, farm.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("納入先取得に失敗しました: %w", err)
	}

	return customer, nil
}

// ListCustomers retrieves all customers
// 納入先一覧を取得
func (s *PostgreSQLStorage) ListCustomers(ctx context.Context) ([]farm.Customer, error) {
	query := `
		SELECT id, code, name, contact_name, phone, email, address, created_at
		FROM customers
		ORDER BY code`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("納入先一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var customers []farm.Customer
	for rows.Next() {
		var customer farm.Customer
		err := rows.Scan(
			&customer.ID,
			&customer.Code,
			&customer.Name,
			&customer.ContactName,
			&customer.Phone,
			&customer.Email,
			&customer.Address,
			&customer.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("納入先スキャンに失敗しました: %w", err)
		}
		customers = append(customers, customer)
	}

	return customers, nil
}

// GetInventoryBuckets retrieves one product's ledger for a date
// 品目の指定日の在庫台帳を取得
func (s *PostgreSQLStorage) GetInventoryBuckets(ctx context.Context, productID string, date time.Time) ([]farm.InventoryBucket, error) {
	query := `
		SELECT product_id, date, days_old, quantity
		FROM inventory_buckets
		WHERE product_id = $1 AND date = $2
		ORDER BY days_old`

	rows, err := s.db.QueryContext(ctx, query, productID, date)
	if err != nil {
		return nil, fmt.Errorf("在庫台帳取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var buckets []farm.InventoryBucket
	for rows.Next() {
		var bucket farm.InventoryBucket
		err := rows.Scan(
			&bucket.ProductID,
			&bucket.Date,
			&bucket.DaysOld,
			&bucket.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("在庫スキャンに失敗しました: %w", err)
		}
		buckets = append(buckets, bucket)
	}

	return buckets, nil
}

// GetAllInventoryBuckets retrieves every product's ledger for a date
// 全品目の指定日の在庫台帳を取得
func (s *PostgreSQLStorage) GetAllInventoryBuckets(ctx context.Context, date time.Time) (map[string][]farm.InventoryBucket, error) {
	query := `
		SELECT product_id, date, days_old, quantity
		FROM inventory_buckets
		WHERE date = $1
		ORDER BY product_id, days_old`

	rows, err := s.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("在庫台帳取得に失敗しました: %w", err)
	}
	defer rows.Close()

	ledger := make(map[string][]farm.InventoryBucket)
	for rows.Next() {
		var bucket farm.InventoryBucket
		err := rows.Scan(
			&bucket.ProductID,
			&bucket.Date,
			&bucket.DaysOld,
			&bucket.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("在庫スキャンに失敗しました: %w", err)
		}
		ledger[bucket.ProductID] = append(ledger[bucket.ProductID], bucket)
	}

	return ledger, nil
}

// UpsertInventoryBucket adds quantity into one age bucket, creating it if absent
// 在庫バケットに数量を加算、なければ作成
func (s *PostgreSQLStorage) UpsertInventoryBucket(ctx context.Context, bucket *farm.InventoryBucket) error {
	query := `
		INSERT INTO inventory_buckets (product_id, date, days_old, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, date, days_old)
		DO UPDATE SET quantity = inventory_buckets.quantity + EXCLUDED.quantity`

	_, err := s.db.ExecContext(ctx, query,
		bucket.ProductID,
		bucket.Date,
		bucket.DaysOld,
		bucket.Quantity,
	)

	if err != nil {
		return fmt.Errorf("在庫記録に失敗しました: %w", err)
	}

	return nil
}

// ShiftInventoryAges rolls a product's ledger from the previous day onto the
// given date, aging every bucket by one day. Stock that would exceed the
// expiry age is dropped and its quantity returned for waste accounting.
// 前日の台帳を指定日に繰り越し、経過日数を1日進める。有効期限を超える在庫は
// 繰り越さず、廃棄計上用にその数量を返す。
func (s *PostgreSQLStorage) ShiftInventoryAges(ctx context.Context, productID string, date time.Time) (int64, error) {
	prevDate := date.AddDate(0, 0, -1)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("トランザクション開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	// 期限超過分を集計
	var expired int64
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(quantity), 0)
		FROM inventory_buckets
		WHERE product_id = $1 AND date = $2 AND days_old >= $3`,
		productID, prevDate, s.expiryAge,
	).Scan(&expired)
	if err != nil {
		return 0, fmt.Errorf("期限超過在庫の集計に失敗しました: %w", err)
	}

	// 期限内在庫を経過日数+1で繰り越し
	_, err = tx.ExecContext(ctx, `
		INSERT INTO inventory_buckets (product_id, date, days_old, quantity)
		SELECT product_id, $2, days_old + 1, quantity
		FROM inventory_buckets
		WHERE product_id = $1 AND date = $3 AND days_old < $4
		ON CONFLICT (product_id, date, days_old)
		DO UPDATE SET quantity = EXCLUDED.quantity`,
		productID, date, prevDate, s.expiryAge,
	)
	if err != nil {
		return 0, fmt.Errorf("在庫繰り越しに失敗しました: %w", err)
	}

	// 本日入庫用の経過日数0バケットを確保
	_, err = tx.ExecContext(ctx, `
		INSERT INTO inventory_buckets (product_id, date, days_old, quantity)
		VALUES ($1, $2, 0, 0)
		ON CONFLICT (product_id, date, days_old) DO NOTHING`,
		productID, date,
	)
	if err != nil {
		return 0, fmt.Errorf("新規バケット作成に失敗しました: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("トランザクションコミットに失敗しました: %w", err)
	}

	if expired > 0 {
		s.logger.Warn("期限超過在庫を廃棄しました",
			zap.String("product_id", productID),
			zap.Int64("expired_quantity", expired))
	}

	return expired, nil
}

// GetForecast retrieves the predicted shipment for a product and date.
// A missing forecast is zero, not an error.
// 品目・日付の予測出荷数を取得。予測がない場合は0を返す。
func (s *PostgreSQLStorage) GetForecast(ctx context.Context, productID string, date time.Time) (int64, error) {
	query := `SELECT predicted FROM forecasts WHERE product_id = $1 AND date = $2`

	var predicted int64
	err := s.db.QueryRowContext(ctx, query, productID, date).Scan(&predicted)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("出荷予測取得に失敗しました: %w", err)
	}

	return predicted, nil
}

// GetAllForecasts retrieves every product's forecast for a date
// 全品目の指定日の予測出荷数を取得
func (s *PostgreSQLStorage) GetAllForecasts(ctx context.Context, date time.Time) (map[string]int64, error) {
	query := `SELECT product_id, predicted FROM forecasts WHERE date = $1`

	rows, err := s.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("出荷予測取得に失敗しました: %w", err)
	}
	defer rows.Close()

	forecasts := make(map[string]int64)
	for rows.Next() {
		var productID string
		var predicted int64
		if err := rows.Scan(&productID, &predicted); err != nil {
			return nil, fmt.Errorf("出荷予測スキャンに失敗しました: %w", err)
		}
		forecasts[productID] = predicted
	}

	return forecasts, nil
}

// SaveForecast upserts a forecast with its actual shipment for variance
// 予測出荷と実績出荷を保存
func (s *PostgreSQLStorage) SaveForecast(ctx context.Context, variance *farm.ForecastVariance) error {
	query := `
		INSERT INTO forecasts (product_id, date, predicted, actual)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, date)
		DO UPDATE SET predicted = EXCLUDED.predicted, actual = EXCLUDED.actual`

	_, err := s.db.ExecContext(ctx, query,
		variance.ProductID,
		variance.Date,
		variance.Predicted,
		variance.Actual,
	)

	if err != nil {
		return fmt.Errorf("出荷予測保存に失敗しました: %w", err)
	}

	return nil
}

// GetTargetInventory retrieves a product's target level; missing is zero
// 品目の目標在庫を取得。未設定は0を返す。
func (s *PostgreSQLStorage) GetTargetInventory(ctx context.Context, productID string) (int64, error) {
	query := `SELECT target FROM target_inventory WHERE product_id = $1`

	var target int64
	err := s.db.QueryRowContext(ctx, query, productID).Scan(&target)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("目標在庫取得に失敗しました: %w", err)
	}

	return target, nil
}

// GetAllTargets retrieves every product's target level
// 全品目の目標在庫を取得
func (s *PostgreSQLStorage) GetAllTargets(ctx context.Context) (map[string]int64, error) {
	query := `SELECT product_id, target FROM target_inventory`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("目標在庫取得に失敗しました: %w", err)
	}
	defer rows.Close()

	targets := make(map[string]int64)
	for rows.Next() {
		var productID string
		var target int64
		if err := rows.Scan(&productID, &target); err != nil {
			return nil, fmt.Errorf("目標在庫スキャンに失敗しました: %w", err)
		}
		targets[productID] = target
	}

	return targets, nil
}

// SetTargetInventory upserts a product's target level
// 品目の目標在庫を設定
func (s *PostgreSQLStorage) SetTargetInventory(ctx context.Context, productID string, target int64) error {
	query := `
		INSERT INTO target_inventory (product_id, target)
		VALUES ($1, $2)
		ON CONFLICT (product_id)
		DO UPDATE SET target = EXCLUDED.target`

	_, err := s.db.ExecContext(ctx, query, productID, target)
	if err != nil {
		return fmt.Errorf("目標在庫設定に失敗しました: %w", err)
	}

	return nil
}

// SaveSeedingRecord records that a product's seeding was completed
// 仕込み完了を記録
func (s *PostgreSQLStorage) SaveSeedingRecord(ctx context.Context, productID string, date, recordedAt time.Time) error {
	query := `
		INSERT INTO seeding_records (product_id, date, recorded_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id, date)
		DO UPDATE SET recorded_at = EXCLUDED.recorded_at`

	_, err := s.db.ExecContext(ctx, query, productID, date, recordedAt)
	if err != nil {
		return fmt.Errorf("仕込み記録に失敗しました: %w", err)
	}

	return nil
}

// GetSeedingRecords retrieves the day's completed seeding records
// 指定日の仕込み完了記録を取得
func (s *PostgreSQLStorage) GetSeedingRecords(ctx context.Context, date time.Time) (map[string]time.Time, error) {
	query := `SELECT product_id, recorded_at FROM seeding_records WHERE date = $1`

	rows, err := s.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("仕込み記録取得に失敗しました: %w", err)
	}
	defer rows.Close()

	records := make(map[string]time.Time)
	for rows.Next() {
		var productID string
		var recordedAt time.Time
		if err := rows.Scan(&productID, &recordedAt); err != nil {
			return nil, fmt.Errorf("仕込み記録スキャンに失敗しました: %w", err)
		}
		records[productID] = recordedAt
	}

	return records, nil
}

// CreateOrder creates an order with its items in one transaction
// 受注と明細を1トランザクションで作成
func (s *PostgreSQLStorage) CreateOrder(ctx context.Context, order *farm.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, customer_name, order_date, delivery_date, status, total_amount, version, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		order.ID,
		order.CustomerID,
		order.CustomerName,
		order.OrderDate,
		order.DeliveryDate,
		order.Status,
		order.TotalAmount,
		order.Version,
		order.CreatedBy,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("受注は既に存在します: %s", order.ID)
		}
		return fmt.Errorf("受注作成に失敗しました: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			order.ID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("受注明細作成に失敗しました: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションコミットに失敗しました: %w", err)
	}

	return nil
}

// GetOrder retrieves an order with its items
// 受注を明細付きで取得
func (s *PostgreSQLStorage) GetOrder(ctx context.Context, orderID string) (*farm.Order, error) {
	query := `
		SELECT id, customer_id, customer_name, order_date, delivery_date, status, total_amount, version, created_by, created_at, updated_at
		FROM orders
		WHERE id = $1`

	order := &farm.Order{}
	err := s.db.QueryRowContext(ctx, query, orderID).Scan(
		&order.ID,
		&order.CustomerID,
		&order.CustomerName,
		&order.OrderDate,
		&order.DeliveryDate,
		&order.Status,
		&order.TotalAmount,
		&order.Version,
		&order.CreatedBy,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, farm.ErrOrderNotFound
		}
		return nil, fmt.Errorf("受注取得に失敗しました: %w", err)
	}

	items, err := s.listOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// UpdateOrder updates an order using optimistic locking
// 楽観的ロックで受注を更新
func (s *PostgreSQLStorage) UpdateOrder(ctx context.Context, order *farm.Order) error {
	query := `
		UPDATE orders
		SET status = $2, total_amount = $3, version = $4, updated_at = $5
		WHERE id = $1 AND version = $6`

	result, err := s.db.ExecContext(ctx, query,
		order.ID,
		order.Status,
		order.TotalAmount,
		order.Version,
		order.UpdatedAt,
		order.Version-1, // 楽観的ロックのための前バージョン
	)

	if err != nil {
		return fmt.Errorf("受注更新に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新行数の取得に失敗しました: %w", err)
	}

	if rowsAffected == 0 {
		return farm.ErrVersionMismatch
	}

	return nil
}

// ListOrders retrieves orders for a delivery date, optionally by status
// 納品日の受注一覧を取得（ステータス絞り込みは任意）
func (s *PostgreSQLStorage) ListOrders(ctx context.Context, date time.Time, status farm.OrderStatus) ([]farm.Order, error) {
	query := `
		SELECT id, customer_id, customer_name, order_date, delivery_date, status, total_amount, version, created_by, created_at, updated_at
		FROM orders
		WHERE delivery_date = $1`
	args := []interface{}{date}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("受注一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var orders []farm.Order
	for rows.Next() {
		var order farm.Order
		err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.CustomerName,
			&order.OrderDate,
			&order.DeliveryDate,
			&order.Status,
			&order.TotalAmount,
			&order.Version,
			&order.CreatedBy,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("受注スキャンに失敗しました: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("受注一覧取得に失敗しました: %w", err)
	}

	for i := range orders {
		items, err := s.listOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// ListOrdersByCustomer retrieves a customer's orders, newest first
// 納入先の受注一覧を新しい順で取得
func (s *PostgreSQLStorage) ListOrdersByCustomer(ctx context.Context, customerID string) ([]farm.Order, error) {
	query := `
		SELECT id, customer_id, customer_name, order_date, delivery_date, status, total_amount, version, created_by, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY delivery_date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("受注一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var orders []farm.Order
	for rows.Next() {
		var order farm.Order
		err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.CustomerName,
			&order.OrderDate,
			&order.DeliveryDate,
			&order.Status,
			&order.TotalAmount,
			&order.Version,
			&order.CreatedBy,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("受注スキャンに失敗しました: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("受注一覧取得に失敗しました: %w", err)
	}

	for i := range orders {
		items, err := s.listOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// listOrderItems retrieves the items of one order
// 受注の明細を取得
func (s *PostgreSQLStorage) listOrderItems(ctx context.Context, orderID string) ([]farm.OrderItem, error) {
	query := `
		SELECT product_id, product_name, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_id`

	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("受注明細取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var items []farm.OrderItem
	for rows.Next() {
		var item farm.OrderItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("受注明細スキャンに失敗しました: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// CreateShipment creates a shipment board record
// 出荷ボードレコードを作成
func (s *PostgreSQLStorage) CreateShipment(ctx context.Context, shipment *farm.ShipmentRecord) error {
	query := `
		INSERT INTO shipments (id, customer_id, customer_name, date, status, boxes, packs, amount, scheduled_time, shipped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.ExecContext(ctx, query,
		shipment.ID,
		shipment.CustomerID,
		shipment.CustomerName,
		shipment.Date,
		shipment.Status,
		shipment.Boxes,
		shipment.Packs,
		shipment.Amount,
		shipment.ScheduledTime,
		shipment.ShippedAt,
	)

	if err != nil {
		return fmt.Errorf("出荷レコード作成に失敗しました: %w", err)
	}

	return nil
}

// GetShipment retrieves a shipment by ID
// IDで出荷レコードを取得
func (s *PostgreSQLStorage) GetShipment(ctx context.Context, shipmentID string) (*farm.ShipmentRecord, error) {
	query := `
		SELECT id, customer_id, customer_name, date, status, boxes, packs, amount, scheduled_time, shipped_at
		FROM shipments
		WHERE id = $1`

	shipment := &farm.ShipmentRecord{}
	err := s.db.QueryRowContext(ctx, query, shipmentID).Scan(
		&shipment.ID,
		&shipment.CustomerID,
		&shipment.CustomerName,
		&shipment.Date,
		&shipment.Status,
		&shipment.Boxes,
		&shipment.Packs,
		&shipment.Amount,
		&shipment.ScheduledTime,
		&shipment.ShippedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, farm.ErrShipmentNotFound
		}
		return nil, fmt.Errorf("出荷レコード取得に失敗しました: %w", err)
	}

	return shipment, nil
}

// UpdateShipment updates a shipment record
// 出荷レコードを更新
func (s *PostgreSQLStorage) UpdateShipment(ctx context.Context, shipment *farm.ShipmentRecord) error {
	query := `
		UPDATE shipments
		SET status = $2, boxes = $3, packs = $4, amount = $5, scheduled_time = $6, shipped_at = $7
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		shipment.ID,
		shipment.Status,
		shipment.Boxes,
		shipment.Packs,
		shipment.Amount,
		shipment.ScheduledTime,
		shipment.ShippedAt,
	)

	if err != nil {
		return fmt.Errorf("出荷レコード更新に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新行数の取得に失敗しました: %w", err)
	}

	if rowsAffected == 0 {
		return farm.ErrShipmentNotFound
	}

	return nil
}

// ListShipments retrieves the day's shipment records in scheduled order
// 指定日の出荷レコードを予定時刻順で取得
func (s *PostgreSQLStorage) ListShipments(ctx context.Context, date time.Time) ([]farm.ShipmentRecord, error) {
	query := `
		SELECT id, customer_id, customer_name, date, status, boxes, packs, amount, scheduled_time, shipped_at
		FROM shipments
		WHERE date = $1
		ORDER BY scheduled_time, customer_id`

	rows, err := s.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("出荷一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanShipments(rows)
}

// ListShipmentsByRange retrieves shipment records in [from, to)
// 期間内の出荷レコードを取得
func (s *PostgreSQLStorage) ListShipmentsByRange(ctx context.Context, from, to time.Time) ([]farm.ShipmentRecord, error) {
	query := `
		SELECT id, customer_id, customer_name, date, status, boxes, packs, amount, scheduled_time, shipped_at
		FROM shipments
		WHERE date >= $1 AND date < $2
		ORDER BY date, scheduled_time`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("出荷一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanShipments(rows)
}

// scanShipments scans shipment rows into records
// 出荷レコードをスキャン
func scanShipments(rows *sql.Rows) ([]farm.ShipmentRecord, error) {
	var shipments []farm.ShipmentRecord
	for rows.Next() {
		var shipment farm.ShipmentRecord
		err := rows.Scan(
			&shipment.ID,
			&shipment.CustomerID,
			&shipment.CustomerName,
			&shipment.Date,
			&shipment.Status,
			&shipment.Boxes,
			&shipment.Packs,
			&shipment.Amount,
			&shipment.ScheduledTime,
			&shipment.ShippedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("出荷スキャンに失敗しました: %w", err)
		}
		shipments = append(shipments, shipment)
	}

	return shipments, nil
}

// CreatePlanEntry creates a production plan entry
// 生産計画エントリを作成
func (s *PostgreSQLStorage) CreatePlanEntry(ctx context.Context, entry *farm.PlanEntry) error {
	query := `
		INSERT INTO plan_entries (id, product_id, date, harvest_date, trays, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.ProductID,
		entry.Date,
		entry.HarvestDate,
		entry.Trays,
		entry.Status,
		entry.Notes,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("生産計画作成に失敗しました: %w", err)
	}

	return nil
}

// GetPlanEntry retrieves a plan entry by ID
// IDで生産計画を取得
func (s *PostgreSQLStorage) GetPlanEntry(ctx context.Context, entryID string) (*farm.PlanEntry, error) {
	query := `
		SELECT id, product_id, date, harvest_date, trays, status, notes, created_at, updated_at
		FROM plan_entries
		WHERE id = $1`

	entry := &farm.PlanEntry{}
	err := s.db.QueryRowContext(ctx, query, entryID).Scan(
		&entry.ID,
		&entry.ProductID,
		&entry.Date,
		&entry.HarvestDate,
		&entry.Trays,
		&entry.Status,
		&entry.Notes,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, farm.ErrPlanEntryNotFound
		}
		return nil, fmt.Errorf("生産計画取得に失敗しました: %w", err)
	}

	return entry, nil
}

// UpdatePlanEntry updates a plan entry
// 生産計画を更新
func (s *PostgreSQLStorage) UpdatePlanEntry(ctx context.Context, entry *farm.PlanEntry) error {
	query := `
		UPDATE plan_entries
		SET harvest_date = $2, trays = $3, status = $4, notes = $5, updated_at = $6
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.HarvestDate,
		entry.Trays,
		entry.Status,
		entry.Notes,
		entry.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("生産計画更新に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新行数の取得に失敗しました: %w", err)
	}

	if rowsAffected == 0 {
		return farm.ErrPlanEntryNotFound
	}

	return nil
}

// ListPlanEntries retrieves plan entries with seeding dates in [from, to)
// 播種日が期間内の生産計画を取得
func (s *PostgreSQLStorage) ListPlanEntries(ctx context.Context, from, to time.Time) ([]farm.PlanEntry, error) {
	query := `
		SELECT id, product_id, date, harvest_date, trays, status, notes, created_at, updated_at
		FROM plan_entries
		WHERE date >= $1 AND date < $2
		ORDER BY date, product_id`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("生産計画一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var entries []farm.PlanEntry
	for rows.Next() {
		var entry farm.PlanEntry
		err := rows.Scan(
			&entry.ID,
			&entry.ProductID,
			&entry.Date,
			&entry.HarvestDate,
			&entry.Trays,
			&entry.Status,
			&entry.Notes,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("生産計画スキャンに失敗しました: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// CreateWasteRecord creates a waste write-off record
// 廃棄記録を作成
func (s *PostgreSQLStorage) CreateWasteRecord(ctx context.Context, record *farm.WasteRecord) error {
	query := `
		INSERT INTO waste_records (id, product_id, date, quantity, loss_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.ProductID,
		record.Date,
		record.Quantity,
		record.LossAmount,
		record.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("廃棄記録作成に失敗しました: %w", err)
	}

	return nil
}

// ListWasteRecords retrieves waste records in [from, to)
// 期間内の廃棄記録を取得
func (s *PostgreSQLStorage) ListWasteRecords(ctx context.Context, from, to time.Time) ([]farm.WasteRecord, error) {
	query := `
		SELECT id, product_id, date, quantity, loss_amount, created_at
		FROM waste_records
		WHERE date >= $1 AND date < $2
		ORDER BY date, product_id`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("廃棄記録取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var records []farm.WasteRecord
	for rows.Next() {
		var record farm.WasteRecord
		err := rows.Scan(
			&record.ID,
			&record.ProductID,
			&record.Date,
			&record.Quantity,
			&record.LossAmount,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("廃棄記録スキャンに失敗しました: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

// CreateAlert creates a new stock alert
// 新しい在庫アラートを作成
func (s *PostgreSQLStorage) CreateAlert(ctx context.Context, alert *farm.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (id, type, product_id, quantity, threshold, message, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		alert.ID,
		alert.Type,
		alert.ProductID,
		alert.Quantity,
		alert.Threshold,
		alert.Message,
		alert.IsActive,
		alert.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("アラート作成に失敗しました: %w", err)
	}

	return nil
}

// GetActiveAlerts retrieves active alerts
// アクティブアラートを取得
func (s *PostgreSQLStorage) GetActiveAlerts(ctx context.Context) ([]farm.StockAlert, error) {
	query := `
		SELECT id, type, product_id, quantity, threshold, message, is_active, created_at, resolved_at
		FROM stock_alerts
		WHERE is_active = true
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("アラート取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var alerts []farm.StockAlert
	for rows.Next() {
		var alert farm.StockAlert
		err := rows.Scan(
			&alert.ID,
			&alert.Type,
			&alert.ProductID,
			&alert.Quantity,
			&alert.Threshold,
			&alert.Message,
			&alert.IsActive,
			&alert.CreatedAt,
			&alert.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("アラートスキャンに失敗しました: %w", err)
		}
		alerts = append(alerts, alert)
	}

	return alerts, nil
}

// ResolveAlert resolves an alert by setting it inactive
// アラートを非アクティブにして解決
func (s *PostgreSQLStorage) ResolveAlert(ctx context.Context, alertID string) error {
	now := time.Now()
	query := `
		UPDATE stock_alerts
		SET is_active = false, resolved_at = $2
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, alertID, now)
	if err != nil {
		return fmt.Errorf("アラート解決に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新行数の取得に失敗しました: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("アラートが見つかりません: %s", alertID)
	}

	return nil
}

// Ping checks database connectivity
// データベース接続をチェック
func (s *PostgreSQLStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
// データベース接続を閉じる
func (s *PostgreSQLStorage) Close() error {
	return s.db.Close()
}

// インターフェース実装の確認
var _ farm.Storage = (*PostgreSQLStorage)(nil)
