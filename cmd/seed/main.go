package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nemonet1337/sproutGoFarm/internal/config"
	"github.com/nemonet1337/sproutGoFarm/pkg/farm"
	"github.com/nemonet1337/sproutGoFarm/pkg/farm/storage"
)

func main() {
	log.Println("sproutGoFarm 初期データ投入ツール")

	// .envファイル読み込み（存在しない場合は無視）
	_ = godotenv.Load()

	// 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("設定読み込みに失敗しました:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("ログ初期化に失敗しました:", err)
	}
	defer logger.Sync()

	// データベース接続
	store, err := storage.NewPostgreSQLStorage(cfg.DSN(), cfg.Farm.ExpiryThresholdDays, logger)
	if err != nil {
		log.Fatal("データベース接続に失敗しました:", err)
	}
	defer store.Close()

	ctx := context.Background()

	if err := seedProducts(ctx, store); err != nil {
		log.Fatal("品目投入に失敗しました:", err)
	}
	if err := seedCustomers(ctx, store); err != nil {
		log.Fatal("納入先投入に失敗しました:", err)
	}
	if err := seedTargets(ctx, store); err != nil {
		log.Fatal("目標在庫投入に失敗しました:", err)
	}

	log.Println("初期データ投入が完了しました")
}

// seedProducts 品目マスタを投入
func seedProducts(ctx context.Context, store farm.Storage) error {
	now := time.Now()
	products := []farm.Product{
		{ID: "TM001", Code: "TM001", Name: "豆苗", Unit: "パック", UnitPrice: 98, GrowthDays: 7, PacksPerTray: 50},
		{ID: "KS001", Code: "KS001", Name: "カイワレS", Unit: "パック", UnitPrice: 48, GrowthDays: 5, PacksPerTray: 60},
		{ID: "KW001", Code: "KW001", Name: "カイワレW", Unit: "パック", UnitPrice: 68, GrowthDays: 5, PacksPerTray: 60},
		{ID: "BR001", Code: "BR001", Name: "ブロッコリースプラウト", Unit: "パック", UnitPrice: 128, GrowthDays: 6, PacksPerTray: 40},
	}

	for i := range products {
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
		err := store.CreateProduct(ctx, &products[i])
		if errors.Is(err, farm.ErrDuplicateProduct) {
			log.Printf("スキップ (登録済み): 品目 %s", products[i].Code)
			continue
		}
		if err != nil {
			return err
		}
		log.Printf("登録: 品目 %s %s", products[i].Code, products[i].Name)
	}

	return nil
}

// seedCustomers 納入先マスタを投入
func seedCustomers(ctx context.Context, store farm.Storage) error {
	now := time.Now()
	customers := []farm.Customer{
		{ID: "C001", Code: "C001", Name: "新潟中央青果"},
		{ID: "C002", Code: "C002", Name: "R&Cなかの青果"},
		{ID: "C003", Code: "C003", Name: "ウオロク"},
		{ID: "C004", Code: "C004", Name: "原信ナルス"},
		{ID: "C005", Code: "C005", Name: "キューピット"},
		{ID: "C006", Code: "C006", Name: "清水フードセンター"},
		{ID: "C007", Code: "C007", Name: "ピアレマート"},
		{ID: "C008", Code: "C008", Name: "マルイ"},
		{ID: "C009", Code: "C009", Name: "コメリ"},
		{ID: "C010", Code: "C010", Name: "ドジャース"},
	}

	for i := range customers {
		customers[i].CreatedAt = now
		err := store.CreateCustomer(ctx, &customers[i])
		if errors.Is(err, farm.ErrDuplicateCustomer) {
			log.Printf("スキップ (登録済み): 納入先 %s", customers[i].Code)
			continue
		}
		if err != nil {
			return err
		}
		log.Printf("登録: 納入先 %s %s", customers[i].Code, customers[i].Name)
	}

	return nil
}

// seedTargets 目標在庫を投入
func seedTargets(ctx context.Context, store farm.Storage) error {
	targets := map[string]int64{
		"TM001": 150,
		"KS001": 200,
		"KW001": 120,
		"BR001": 100,
	}

	for productID, target := range targets {
		if err := store.SetTargetInventory(ctx, productID, target); err != nil {
			return err
		}
		log.Printf("設定: 目標在庫 %s = %d", productID, target)
	}

	return nil
}
