package farm

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestClassifyBucket は鮮度ステータス分類のテスト
func TestClassifyBucket(t *testing.T) {
	tests := []struct {
		name      string
		daysOld   int
		threshold int
		want      BucketStatus
	}{
		{"本日入庫は新鮮", 0, 3, BucketStatusFresh},
		{"1日経過は新鮮", 1, 3, BucketStatusFresh},
		{"閾値前日は警告", 2, 3, BucketStatusWarning},
		{"閾値到達は廃棄対象", 3, 3, BucketStatusExpiring},
		{"閾値超過も廃棄対象", 5, 3, BucketStatusExpiring},
		{"閾値5日の警告は4日目", 4, 5, BucketStatusWarning},
		{"閾値1日は入庫翌日に廃棄対象", 1, 1, BucketStatusExpiring},
		{"閾値1日の本日入庫は警告", 0, 1, BucketStatusWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyBucket(tt.daysOld, tt.threshold))
		})
	}
}

// TestSummarizeInventory は在庫サマリー集計のテスト
func TestSummarizeInventory(t *testing.T) {
	product := &Product{
		ID:        "TM001",
		Name:      "豆苗",
		UnitPrice: 98,
	}
	buckets := []InventoryBucket{
		{ProductID: "TM001", DaysOld: 0, Quantity: 50},
		{ProductID: "TM001", DaysOld: 1, Quantity: 65},
		{ProductID: "TM001", DaysOld: 2, Quantity: 35},
		{ProductID: "TM001", DaysOld: 3, Quantity: 10},
	}

	summary, err := SummarizeInventory(product, buckets, 150, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(160), summary.TotalStock)
	assert.Equal(t, int64(10), summary.ExpiringToday)
	assert.Equal(t, int64(980), summary.EstimatedLoss)
	assert.Equal(t, int64(150), summary.TargetInventory)

	// 経過日数順に並び、ステータスが導出されていること
	assert.Equal(t, BucketStatusFresh, summary.Buckets[0].Status)
	assert.Equal(t, BucketStatusFresh, summary.Buckets[1].Status)
	assert.Equal(t, BucketStatusWarning, summary.Buckets[2].Status)
	assert.Equal(t, BucketStatusExpiring, summary.Buckets[3].Status)
}

// TestSummarizeInventory_ZeroQuantity は数量0の台帳でも集計できることのテスト
func TestSummarizeInventory_ZeroQuantity(t *testing.T) {
	product := &Product{ID: "KS001", Name: "カイワレS", UnitPrice: 48}
	buckets := []InventoryBucket{
		{ProductID: "KS001", DaysOld: 0, Quantity: 0},
		{ProductID: "KS001", DaysOld: 1, Quantity: 0},
		{ProductID: "KS001", DaysOld: 2, Quantity: 0},
		{ProductID: "KS001", DaysOld: 3, Quantity: 0},
	}

	summary, err := SummarizeInventory(product, buckets, 200, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalStock)
	assert.Equal(t, int64(0), summary.ExpiringToday)
	assert.Equal(t, int64(0), summary.EstimatedLoss)
}

// TestSummarizeInventory_InvalidLedger は台帳不正の検出テスト
func TestSummarizeInventory_InvalidLedger(t *testing.T) {
	product := &Product{ID: "TM001", Name: "豆苗", UnitPrice: 98}

	tests := []struct {
		name    string
		buckets []InventoryBucket
	}{
		{
			"経過日数の欠損",
			[]InventoryBucket{
				{DaysOld: 0, Quantity: 50},
				{DaysOld: 1, Quantity: 65},
				{DaysOld: 2, Quantity: 35},
			},
		},
		{
			"経過日数の重複",
			[]InventoryBucket{
				{DaysOld: 0, Quantity: 50},
				{DaysOld: 1, Quantity: 65},
				{DaysOld: 1, Quantity: 35},
				{DaysOld: 3, Quantity: 10},
			},
		},
		{
			"負の経過日数",
			[]InventoryBucket{
				{DaysOld: -1, Quantity: 50},
				{DaysOld: 1, Quantity: 65},
				{DaysOld: 2, Quantity: 35},
				{DaysOld: 3, Quantity: 10},
			},
		},
		{
			"閾値を超える経過日数",
			[]InventoryBucket{
				{DaysOld: 0, Quantity: 50},
				{DaysOld: 1, Quantity: 65},
				{DaysOld: 2, Quantity: 35},
				{DaysOld: 4, Quantity: 10},
			},
		},
		{
			"負の数量",
			[]InventoryBucket{
				{DaysOld: 0, Quantity: 50},
				{DaysOld: 1, Quantity: -5},
				{DaysOld: 2, Quantity: 35},
				{DaysOld: 3, Quantity: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := SummarizeInventory(product, tt.buckets, 150, 3)
			assert.Nil(t, summary)
			assert.True(t, errors.Is(err, ErrInvalidLedgerState))
		})
	}
}

// TestSummarizeAll は全品目集計と品目単位エラー収集のテスト
func TestSummarizeAll(t *testing.T) {
	products := []Product{
		{ID: "TM001", Name: "豆苗", UnitPrice: 98},
		{ID: "KS001", Name: "カイワレS", UnitPrice: 48},
		{ID: "KW001", Name: "カイワレW", UnitPrice: 68},
	}
	ledger := map[string][]InventoryBucket{
		"TM001": {
			{DaysOld: 0, Quantity: 50},
			{DaysOld: 1, Quantity: 65},
			{DaysOld: 2, Quantity: 35},
			{DaysOld: 3, Quantity: 10},
		},
		// KS001 は経過日数3が欠損している不正な台帳
		"KS001": {
			{DaysOld: 0, Quantity: 100},
			{DaysOld: 1, Quantity: 80},
			{DaysOld: 2, Quantity: 20},
		},
		"KW001": {
			{DaysOld: 0, Quantity: 40},
			{DaysOld: 1, Quantity: 30},
			{DaysOld: 2, Quantity: 20},
			{DaysOld: 3, Quantity: 5},
		},
	}
	targets := map[string]int64{"TM001": 150, "KS001": 200, "KW001": 120}

	report := SummarizeAll(products, ledger, targets, 3, time.Now())

	// 不正な台帳の品目はエラーに収集され、他品目は通常どおり集計される
	assert.Len(t, report.Summaries, 2)
	assert.Len(t, report.Errors, 1)
	assert.Equal(t, "KS001", report.Errors[0].ProductID)

	// カタログ順が保持されること
	assert.Equal(t, "TM001", report.Summaries[0].ProductID)
	assert.Equal(t, "KW001", report.Summaries[1].ProductID)

	// 合計は集計できた品目のみ
	assert.Equal(t, int64(15), report.TotalExpiringToday)
	assert.Equal(t, int64(980+340), report.TotalEstimatedLoss)
}

// TestSummarizeAll_MissingLedger は台帳欠損品目のエラー収集テスト
func TestSummarizeAll_MissingLedger(t *testing.T) {
	products := []Product{
		{ID: "TM001", Name: "豆苗", UnitPrice: 98},
		{ID: "BR001", Name: "ブロッコリー", UnitPrice: 128},
	}
	ledger := map[string][]InventoryBucket{
		"TM001": {
			{DaysOld: 0, Quantity: 50},
			{DaysOld: 1, Quantity: 65},
			{DaysOld: 2, Quantity: 35},
			{DaysOld: 3, Quantity: 10},
		},
	}

	report := SummarizeAll(products, ledger, map[string]int64{}, 3, time.Now())

	assert.Len(t, report.Summaries, 1)
	assert.Len(t, report.Errors, 1)
	assert.Equal(t, "BR001", report.Errors[0].ProductID)
	assert.Equal(t, ErrMissingInventoryData.Error(), report.Errors[0].Error)
}
