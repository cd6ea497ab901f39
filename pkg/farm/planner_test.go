package farm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// TestPlanner_PlanFromInstruction は仕込み指示の計画化テスト
func TestPlanner_PlanFromInstruction(t *testing.T) {
	mockStorage := new(MockStorage)
	logger := zap.NewNop()
	planner := NewPlanner(mockStorage, logger, testConfig())
	ctx := context.Background()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)

	product := &Product{
		ID:           "TM001",
		Name:         "豆苗",
		UnitPrice:    98,
		GrowthDays:   7,
		PacksPerTray: 50,
	}
	instruction := &SeedingInstruction{
		ProductID:     "TM001",
		ProductName:   "豆苗",
		SeedingAmount: 1190,
		Breakdown:     "予測1200 + (目標150 - 現在160) = 1190",
	}

	mockStorage.On("GetProduct", ctx, "TM001").Return(product, nil)

	entry, err := planner.PlanFromInstruction(ctx, instruction, date)

	assert.NoError(t, err)
	// 1190パックは50パック/トレイで切り上げ24トレイ
	assert.Equal(t, int64(24), entry.Trays)
	assert.Equal(t, PlanStatusPlanned, entry.Status)
	// 収穫予定日は播種日 + 栽培日数
	assert.Equal(t, date.AddDate(0, 0, 7), entry.HarvestDate)
	assert.Equal(t, instruction.Breakdown, entry.Notes)
	mockStorage.AssertExpectations(t)
}

// TestPlanner_PlanFromInstruction_Empty は仕込み量0の指示の拒否テスト
func TestPlanner_PlanFromInstruction_Empty(t *testing.T) {
	mockStorage := new(MockStorage)
	logger := zap.NewNop()
	planner := NewPlanner(mockStorage, logger, testConfig())
	ctx := context.Background()

	instruction := &SeedingInstruction{
		ProductID:     "KS001",
		SeedingAmount: 0,
	}

	entry, err := planner.PlanFromInstruction(ctx, instruction, time.Now())

	assert.Nil(t, entry)
	var ruleErr *BusinessRuleError
	assert.ErrorAs(t, err, &ruleErr)
	mockStorage.AssertExpectations(t)
}

// TestPlanner_ScheduleSeeding は計画登録のテスト
func TestPlanner_ScheduleSeeding(t *testing.T) {
	mockStorage := new(MockStorage)
	logger := zap.NewNop()
	planner := NewPlanner(mockStorage, logger, testConfig())
	ctx := context.Background()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)

	entry := &PlanEntry{
		ID:          NewID(),
		ProductID:   "TM001",
		Date:        date,
		HarvestDate: date.AddDate(0, 0, 7),
		Trays:       24,
		Status:      PlanStatusPlanned,
	}

	mockStorage.On("CreatePlanEntry", ctx, entry).Return(nil)

	err := planner.ScheduleSeeding(ctx, entry)

	assert.NoError(t, err)
	mockStorage.AssertExpectations(t)
}

// TestPlanner_AdvancePlanStatus は計画ステータス前進のテスト
func TestPlanner_AdvancePlanStatus(t *testing.T) {
	mockStorage := new(MockStorage)
	logger := zap.NewNop()
	planner := NewPlanner(mockStorage, logger, testConfig())
	ctx := context.Background()

	entry := &PlanEntry{
		ID:        "PLAN-1",
		ProductID: "TM001",
		Status:    PlanStatusSeeded,
	}

	mockStorage.On("GetPlanEntry", ctx, "PLAN-1").Return(entry, nil)
	mockStorage.On("UpdatePlanEntry", ctx, mock.AnythingOfType("*farm.PlanEntry")).Return(nil)

	err := planner.AdvancePlanStatus(ctx, "PLAN-1", PlanStatusGrowing)

	assert.NoError(t, err)
	assert.Equal(t, PlanStatusGrowing, entry.Status)

	// 後退遷移は拒否される
	err = planner.AdvancePlanStatus(ctx, "PLAN-1", PlanStatusSeeded)
	assert.Error(t, err)
	mockStorage.AssertExpectations(t)
}

// TestPlanner_GetSchedule はカレンダーウィンドウ作成のテスト
func TestPlanner_GetSchedule(t *testing.T) {
	mockStorage := new(MockStorage)
	logger := zap.NewNop()
	planner := NewPlanner(mockStorage, logger, testConfig())
	ctx := context.Background()
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)

	entries := []PlanEntry{
		{ID: "PLAN-1", ProductID: "TM001", Date: from, Trays: 3, Status: PlanStatusSeeded},
		{ID: "PLAN-2", ProductID: "KS001", Date: from.AddDate(0, 0, 3), Trays: 2, Status: PlanStatusPlanned},
	}

	mockStorage.On("ListPlanEntries", ctx, from, from.AddDate(0, 0, 14)).Return(entries, nil)

	schedule, err := planner.GetSchedule(ctx, from, 0)

	assert.NoError(t, err)
	// 日数未指定は設定値の14日ウィンドウ
	assert.Len(t, schedule.Days, 14)
	assert.Len(t, schedule.Days[0].Entries, 1)
	assert.Len(t, schedule.Days[3].Entries, 1)
	assert.Empty(t, schedule.Days[1].Entries)
	assert.Equal(t, "PLAN-2", schedule.Days[3].Entries[0].ID)
	assert.Equal(t, int64(3), schedule.Days[0].TotalTrays)
	assert.Equal(t, int64(2), schedule.Days[3].TotalTrays)
	assert.Zero(t, schedule.Days[1].TotalTrays)
	mockStorage.AssertExpectations(t)
}
