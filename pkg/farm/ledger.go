package farm

import (
	"fmt"
	"sort"
	"time"
)

// DefaultExpiryThresholdDays is the shelf life after which stock is written off
// 入庫からこの日数を超えた在庫は廃棄対象
const DefaultExpiryThresholdDays = 3

// ClassifyBucket classifies a bucket's freshness from its age
// 経過日数から在庫の鮮度ステータスを分類
func ClassifyBucket(daysOld, expiryThreshold int) BucketStatus {
	switch {
	case daysOld >= expiryThreshold:
		return BucketStatusExpiring
	case daysOld == expiryThreshold-1:
		return BucketStatusWarning
	default:
		return BucketStatusFresh
	}
}

// SummarizeInventory aggregates one product's aging buckets into a summary.
// The buckets must cover every age 0..expiryThreshold exactly once; anything
// else is a ledger-state violation and the product must not be rendered from
// a guess.
// 品目の在庫台帳をサマリーに集計。経過日数0〜閾値が過不足なく揃っていない
// 台帳は不正として拒否する。
func SummarizeInventory(product *Product, buckets []InventoryBucket, target int64, expiryThreshold int) (*InventorySummary, error) {
	if product == nil {
		return nil, NewValidationError("product", "品目が指定されていません", "nil")
	}
	if expiryThreshold < 1 {
		return nil, NewValidationError("expiry_threshold", "有効期限は1日以上である必要があります", fmt.Sprintf("%d", expiryThreshold))
	}

	wantAges := expiryThreshold + 1
	if len(buckets) != wantAges {
		return nil, NewLedgerStateError(product.ID, fmt.Sprintf("在庫台帳は%d件である必要があります (実際: %d件)", wantAges, len(buckets)))
	}

	seen := make(map[int]bool, wantAges)
	for _, b := range buckets {
		if b.DaysOld < 0 {
			return nil, NewLedgerStateError(product.ID, fmt.Sprintf("経過日数が負です: %d", b.DaysOld))
		}
		if b.DaysOld > expiryThreshold {
			return nil, NewLedgerStateError(product.ID, fmt.Sprintf("経過日数が有効期限を超えています: %d", b.DaysOld))
		}
		if b.Quantity < 0 {
			return nil, NewLedgerStateError(product.ID, fmt.Sprintf("在庫数量が負です: %d", b.Quantity))
		}
		if seen[b.DaysOld] {
			return nil, NewLedgerStateError(product.ID, fmt.Sprintf("経過日数%dの在庫が重複しています", b.DaysOld))
		}
		seen[b.DaysOld] = true
	}
	for age := 0; age <= expiryThreshold; age++ {
		if !seen[age] {
			return nil, NewLedgerStateError(product.ID, fmt.Sprintf("経過日数%dの在庫がありません", age))
		}
	}

	// 経過日数の昇順に正規化し、ステータスを導出
	classified := make([]InventoryBucket, len(buckets))
	copy(classified, buckets)
	sort.Slice(classified, func(i, j int) bool {
		return classified[i].DaysOld < classified[j].DaysOld
	})

	summary := &InventorySummary{
		ProductID:       product.ID,
		ProductName:     product.Name,
		UnitPrice:       product.UnitPrice,
		TargetInventory: target,
		Buckets:         classified,
	}

	for i := range classified {
		classified[i].Status = ClassifyBucket(classified[i].DaysOld, expiryThreshold)
		summary.TotalStock += classified[i].Quantity
		if classified[i].Status == BucketStatusExpiring {
			summary.ExpiringToday += classified[i].Quantity
		}
	}
	summary.EstimatedLoss = summary.ExpiringToday * product.UnitPrice

	return summary, nil
}

// SummarizeAll aggregates every catalog product's ledger into a report.
// Products whose ledger fails validation are collected as per-product errors
// so one bad ledger never hides the rest of the catalog.
// 全品目の台帳をレポートに集計。不正な台帳は品目単位のエラーとして収集し、
// 他品目の結果は通常どおり返す。
func SummarizeAll(products []Product, ledgerByProduct map[string][]InventoryBucket, targets map[string]int64, expiryThreshold int, date time.Time) *InventoryReport {
	report := &InventoryReport{
		Date:      date,
		Summaries: make([]InventorySummary, 0, len(products)),
	}

	for i := range products {
		p := &products[i]
		buckets, ok := ledgerByProduct[p.ID]
		if !ok {
			report.Errors = append(report.Errors, ProductError{
				ProductID: p.ID,
				Error:     ErrMissingInventoryData.Error(),
			})
			continue
		}

		summary, err := SummarizeInventory(p, buckets, targets[p.ID], expiryThreshold)
		if err != nil {
			report.Errors = append(report.Errors, ProductError{
				ProductID: p.ID,
				Error:     err.Error(),
			})
			continue
		}

		report.Summaries = append(report.Summaries, *summary)
		report.TotalExpiringToday += summary.ExpiringToday
		report.TotalEstimatedLoss += summary.EstimatedLoss
	}

	return report
}
