package farm

import (
	"fmt"
	"time"
)

// ComputeSeedingAmount derives today's seeding instruction for one product.
// The raw amount is predicted demand plus the gap to the target level; a
// negative raw amount clamps to zero because seeding cannot be undone, while
// StockDifference keeps its sign so overstock stays visible.
// 予測出荷数と目標在庫との差分から本日の種まき数を算出。種まきはマイナスに
// できないため0でクランプするが、在庫差分は符号付きのまま保持する。
func ComputeSeedingAmount(product *Product, predicted, target, currentStock int64) (*SeedingInstruction, error) {
	if product == nil {
		return nil, NewValidationError("product", "品目が指定されていません", "nil")
	}
	if currentStock < 0 {
		return nil, NewValidationError("current_stock", "現在在庫は0以上である必要があります", fmt.Sprintf("%d", currentStock))
	}
	if predicted < 0 {
		return nil, NewValidationError("predicted", "予測出荷数は0以上である必要があります", fmt.Sprintf("%d", predicted))
	}
	if target < 0 {
		return nil, NewValidationError("target", "目標在庫は0以上である必要があります", fmt.Sprintf("%d", target))
	}

	raw := predicted + (target - currentStock)
	amount := raw
	if amount < 0 {
		amount = 0
	}

	return &SeedingInstruction{
		ProductID:       product.ID,
		ProductName:     product.Name,
		SeedingAmount:   amount,
		TargetStock:     target,
		CurrentStock:    currentStock,
		StockDifference: target - currentStock,
		Breakdown:       fmt.Sprintf("予測%d + (目標%d - 現在%d) = %d", predicted, target, currentStock, raw),
	}, nil
}

// ComputeAllSeedingAmounts builds the day's seeding plan for the whole
// catalog. A missing forecast or target defaults to zero; a missing stock
// summary is a per-product error. Instructions keep catalog order.
// 全品目の種まき計画を作成。予測・目標の欠損は0として扱い、在庫サマリーの
// 欠損のみ品目単位のエラーとする。
func ComputeAllSeedingAmounts(products []Product, forecasts map[string]int64, targets map[string]int64, currentStocks map[string]int64, date time.Time) *SeedingPlan {
	plan := &SeedingPlan{
		Date:         date,
		Instructions: make([]SeedingInstruction, 0, len(products)),
	}

	for i := range products {
		p := &products[i]
		stock, ok := currentStocks[p.ID]
		if !ok {
			plan.Errors = append(plan.Errors, ProductError{
				ProductID: p.ID,
				Error:     ErrMissingInventoryData.Error(),
			})
			continue
		}

		instruction, err := ComputeSeedingAmount(p, forecasts[p.ID], targets[p.ID], stock)
		if err != nil {
			plan.Errors = append(plan.Errors, ProductError{
				ProductID: p.ID,
				Error:     err.Error(),
			})
			continue
		}

		plan.Instructions = append(plan.Instructions, *instruction)
	}

	return plan
}
