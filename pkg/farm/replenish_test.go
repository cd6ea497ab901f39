package farm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestComputeSeedingAmount は仕込み量計算のテスト
func TestComputeSeedingAmount(t *testing.T) {
	product := &Product{ID: "TM001", Name: "豆苗", UnitPrice: 98}

	// 目標150、在庫160で10パック過剰、予測1200
	instruction, err := ComputeSeedingAmount(product, 1200, 150, 160)

	assert.NoError(t, err)
	assert.Equal(t, int64(1190), instruction.SeedingAmount)
	assert.Equal(t, int64(-10), instruction.StockDifference)
	assert.Equal(t, int64(150), instruction.TargetStock)
	assert.Equal(t, int64(160), instruction.CurrentStock)
	assert.Equal(t, "予測1200 + (目標150 - 現在160) = 1190", instruction.Breakdown)
}

// TestComputeSeedingAmount_Clamp は負の仕込み量が0にクランプされることのテスト
func TestComputeSeedingAmount_Clamp(t *testing.T) {
	product := &Product{ID: "KS001", Name: "カイワレS", UnitPrice: 48}

	// 予測0、目標200に対して在庫400の大幅過剰
	instruction, err := ComputeSeedingAmount(product, 0, 200, 400)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), instruction.SeedingAmount)
	assert.Equal(t, int64(-200), instruction.StockDifference)
	// 内訳にはクランプ前の計算値が残ること
	assert.Equal(t, "予測0 + (目標200 - 現在400) = -200", instruction.Breakdown)
}

// TestComputeSeedingAmount_Validation は入力バリデーションのテスト
func TestComputeSeedingAmount_Validation(t *testing.T) {
	product := &Product{ID: "TM001", Name: "豆苗", UnitPrice: 98}

	_, err := ComputeSeedingAmount(nil, 100, 150, 50)
	assert.Error(t, err)

	_, err = ComputeSeedingAmount(product, -1, 150, 50)
	assert.Error(t, err)

	_, err = ComputeSeedingAmount(product, 100, -1, 50)
	assert.Error(t, err)

	_, err = ComputeSeedingAmount(product, 100, 150, -1)
	assert.Error(t, err)
}

// TestComputeSeedingAmount_Monotonic は予測増加で仕込み量が減らないことのテスト
func TestComputeSeedingAmount_Monotonic(t *testing.T) {
	product := &Product{ID: "TM001", Name: "豆苗", UnitPrice: 98}

	var prev int64
	for predicted := int64(0); predicted <= 500; predicted += 50 {
		instruction, err := ComputeSeedingAmount(product, predicted, 150, 300)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, instruction.SeedingAmount, prev)
		assert.GreaterOrEqual(t, instruction.SeedingAmount, int64(0))
		prev = instruction.SeedingAmount
	}
}

// TestComputeSeedingAmount_Idempotent は同一入力で同一結果になることのテスト
func TestComputeSeedingAmount_Idempotent(t *testing.T) {
	product := &Product{ID: "BR001", Name: "ブロッコリー", UnitPrice: 128}

	first, err := ComputeSeedingAmount(product, 80, 100, 45)
	assert.NoError(t, err)
	second, err := ComputeSeedingAmount(product, 80, 100, 45)
	assert.NoError(t, err)

	assert.Equal(t, first.SeedingAmount, second.SeedingAmount)
	assert.Equal(t, first.Breakdown, second.Breakdown)
}

// TestComputeAllSeedingAmounts は全品目計画と欠損データの扱いのテスト
func TestComputeAllSeedingAmounts(t *testing.T) {
	products := []Product{
		{ID: "TM001", Name: "豆苗", UnitPrice: 98},
		{ID: "KS001", Name: "カイワレS", UnitPrice: 48},
		{ID: "BR001", Name: "ブロッコリー", UnitPrice: 128},
	}
	forecasts := map[string]int64{
		"TM001": 120,
		// KS001 は予測が欠損 → 0として扱う
		"BR001": 80,
	}
	targets := map[string]int64{
		"TM001": 150,
		"KS001": 200,
		// BR001 は目標が欠損 → 0として扱う
	}
	currentStocks := map[string]int64{
		"TM001": 100,
		"KS001": 150,
		// BR001 は在庫サマリーが欠損 → 品目単位のエラー
	}

	plan := ComputeAllSeedingAmounts(products, forecasts, targets, currentStocks, time.Now())

	assert.Len(t, plan.Instructions, 2)
	assert.Len(t, plan.Errors, 1)

	// 予測欠損は0扱いでエラーにならない
	assert.Equal(t, "KS001", plan.Instructions[1].ProductID)
	assert.Equal(t, int64(50), plan.Instructions[1].SeedingAmount)

	// 在庫欠損のみエラーになる
	assert.Equal(t, "BR001", plan.Errors[0].ProductID)
	assert.Equal(t, ErrMissingInventoryData.Error(), plan.Errors[0].Error)

	// カタログ順が保持されること
	assert.Equal(t, "TM001", plan.Instructions[0].ProductID)
	assert.Equal(t, int64(170), plan.Instructions[0].SeedingAmount)
}

// BenchmarkComputeSeedingAmount は仕込み量計算のベンチマーク
func BenchmarkComputeSeedingAmount(b *testing.B) {
	product := &Product{ID: "TM001", Name: "豆苗", UnitPrice: 98}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ComputeSeedingAmount(product, 1200, 150, 160)
	}
}
