package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nemonet1337/sproutGoFarm/internal/cache"
	"github.com/nemonet1337/sproutGoFarm/internal/config"
	"github.com/nemonet1337/sproutGoFarm/pkg/farm"
	"github.com/nemonet1337/sproutGoFarm/pkg/farm/storage"
)

func main() {
	// .envファイル読み込み（存在しない場合は無視）
	_ = godotenv.Load()

	// 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("設定読み込みに失敗しました:", err)
	}

	// ログ設定
	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		log.Fatal("ログ初期化に失敗しました:", err)
	}
	defer logger.Sync()

	// データベース接続
	store, err := storage.NewPostgreSQLStorage(cfg.DSN(), cfg.Farm.ExpiryThresholdDays, logger)
	if err != nil {
		logger.Fatal("データベース接続に失敗しました", zap.Error(err))
	}
	defer store.Close()

	// レポートキャッシュ初期化
	reportCache, err := cache.NewReportCache(cfg.Redis)
	if err != nil {
		logger.Fatal("キャッシュ初期化に失敗しました", zap.Error(err))
	}
	defer reportCache.Close()

	// 農場マネージャー初期化
	farmConfig := cfg.FarmManagerConfig()
	manager := farm.NewManager(store, nil, logger, farmConfig)
	planner := farm.NewPlanner(store, logger, farmConfig)
	reports := farm.NewReportEngine(store, logger, farmConfig)

	// HTTPハンドラー設定
	handlers := NewHandlers(manager, planner, reports, reportCache, logger)
	router := setupRouter(handlers, cfg, logger)

	// HTTPサーバー設定
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.API.Port),
		Handler:      router,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
		IdleTimeout:  cfg.API.IdleTimeout,
	}

	// グレースフルシャットダウン設定
	go func() {
		logger.Info("農場運営APIサーバーを開始します", zap.Int("port", cfg.API.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー開始に失敗しました", zap.Error(err))
		}
	}()

	// シャットダウンシグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	// グレースフルシャットダウン
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("サーバーシャットダウンに失敗しました", zap.Error(err))
	}

	logger.Info("サーバーが正常に停止しました")
}

// buildLogger builds a zap logger from the logging configuration
// ログ設定からzapロガーを構築
func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("無効なログレベルです: %w", err)
	}
	zapCfg.Level = level

	return zapCfg.Build()
}

// setupRouter sets up HTTP routes
// HTTPルートを設定
func setupRouter(handlers *Handlers, cfg *config.Config, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()

	// ヘルスチェック
	router.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	if cfg.API.EnableMetrics {
		router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	// API v1ルート
	api := router.PathPrefix("/api/v1").Subrouter()

	// 在庫熟成レポート
	api.HandleFunc("/inventory/report", handlers.GetInventoryReport).Methods("GET")
	api.HandleFunc("/inventory/report/csv", handlers.ExportInventoryCSV).Methods("GET")
	api.HandleFunc("/inventory/{productId}/ledger", handlers.GetInventoryLedger).Methods("GET")

	// 在庫操作
	api.HandleFunc("/inventory/receive", handlers.ReceiveStock).Methods("POST")
	api.HandleFunc("/inventory/rollover", handlers.RolloverDay).Methods("POST")

	// 仕込み計画
	api.HandleFunc("/seeding/plan", handlers.GetSeedingPlan).Methods("GET")
	api.HandleFunc("/seeding/{productId}/complete", handlers.RecordSeedingCompleted).Methods("POST")

	// 予実記録
	api.HandleFunc("/forecasts", handlers.RecordForecast).Methods("POST")

	// 受注管理
	api.HandleFunc("/orders", handlers.CreateOrder).Methods("POST")
	api.HandleFunc("/orders", handlers.ListOrders).Methods("GET")
	api.HandleFunc("/orders/{orderId}", handlers.GetOrder).Methods("GET")
	api.HandleFunc("/orders/{orderId}/confirm", handlers.ConfirmOrder).Methods("POST")
	api.HandleFunc("/orders/{orderId}/cancel", handlers.CancelOrder).Methods("POST")
	api.HandleFunc("/orders/{orderId}/ship", handlers.MarkOrderShipped).Methods("POST")

	// 出荷ボード
	api.HandleFunc("/shipments/board", handlers.GetShipmentBoard).Methods("GET")
	api.HandleFunc("/shipments/{shipmentId}/status", handlers.UpdateShipmentStatus).Methods("POST")

	// アラート
	api.HandleFunc("/alerts", handlers.GetAlerts).Methods("GET")
	api.HandleFunc("/alerts/{alertId}/resolve", handlers.ResolveAlert).Methods("POST")

	// 品目マスタ
	api.HandleFunc("/products", handlers.CreateProduct).Methods("POST")
	api.HandleFunc("/products", handlers.ListProducts).Methods("GET")
	api.HandleFunc("/products/{productId}", handlers.GetProduct).Methods("GET")
	api.HandleFunc("/products/{productId}", handlers.UpdateProduct).Methods("PUT")
	api.HandleFunc("/products/{productId}/target", handlers.SetTargetInventory).Methods("PUT")

	// 納入先マスタ
	api.HandleFunc("/customers", handlers.CreateCustomer).Methods("POST")
	api.HandleFunc("/customers", handlers.ListCustomers).Methods("GET")
	api.HandleFunc("/customers/{customerId}", handlers.GetCustomer).Methods("GET")
	api.HandleFunc("/customers/{customerId}/orders", handlers.ListOrdersByCustomer).Methods("GET")

	// 生産計画
	api.HandleFunc("/plans", handlers.ScheduleSeeding).Methods("POST")
	api.HandleFunc("/plans/schedule", handlers.GetSchedule).Methods("GET")
	api.HandleFunc("/plans/{entryId}/status", handlers.AdvancePlanStatus).Methods("POST")

	// レポートエンジン
	api.HandleFunc("/reports/shipments/daily", handlers.GetDailyShipmentSummary).Methods("GET")
	api.HandleFunc("/reports/sales", handlers.GetSalesReport).Methods("GET")
	api.HandleFunc("/reports/waste", handlers.GetWasteReport).Methods("GET")

	// 納入先向け発注ポータル（設定で有効化）
	if cfg.Farm.PortalEnabled {
		api.HandleFunc("/portal/orders", handlers.CreateOrder).Methods("POST")
		api.HandleFunc("/portal/orders/{customerId}", handlers.ListOrdersByCustomer).Methods("GET")
		logger.Info("発注ポータルを有効化しました")
	}

	// CORS設定（開発用）
	if cfg.API.EnableCORS {
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

				if r.Method == "OPTIONS" {
					w.WriteHeader(http.StatusOK)
					return
				}

				next.ServeHTTP(w, r)
			})
		})
	}

	// メトリクス収集
	if cfg.API.EnableMetrics {
		api.Use(metricsMiddleware)
	}

	// ログ機能
	router.Use(loggingMiddleware(logger))

	return router
}

// loggingMiddleware logs HTTP requests
// HTTPリクエストをログ出力するミドルウェア
func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// リクエスト処理
			next.ServeHTTP(w, r)

			// ログ出力
			logger.Info("HTTPリクエスト",
				zap.String("method", r.Method),
				zap.String("url", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
