package farm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Planner handles the production calendar and seeding schedule
// 生産計画カレンダーと播種スケジュールを処理
type Planner struct {
	storage Storage
	logger  *zap.Logger
	config  *Config
}

var _ ProductionPlanner = (*Planner)(nil)

// NewPlanner creates a new production planner
// 新しい生産プランナーを作成
func NewPlanner(storage Storage, logger *zap.Logger, config *Config) *Planner {
	if config == nil {
		config = &Config{
			ExpiryThresholdDays: DefaultExpiryThresholdDays,
			DefaultPacksPerTray: 50,
			ScheduleDays:        14,
		}
	}
	return &Planner{
		storage: storage,
		logger:  logger,
		config:  config,
	}
}

// ScheduleDay is one calendar day of production plan entries
// 生産計画カレンダーの1日分を表現
type ScheduleDay struct {
	Date       time.Time   `json:"date"`        // 対象日
	Entries    []PlanEntry `json:"entries"`     // 当日の計画
	TotalTrays int64       `json:"total_trays"` // 当日の合計トレイ数
}

// WeeklySchedule is a rolling window of the production calendar
// 生産計画カレンダーの表示ウィンドウを表現
type WeeklySchedule struct {
	From time.Time     `json:"from"` // 開始日
	Days []ScheduleDay `json:"days"` // 日別計画
}

// PlanFromInstruction converts a seeding instruction into a plan entry.
// Packs convert to trays rounding up so the planned harvest never falls
// short of the instruction.
// 仕込み指示を生産計画エントリに変換。パック数は切り上げでトレイ数に換算し、
// 計画収穫量が指示を下回らないようにする。
func (p *Planner) PlanFromInstruction(ctx context.Context, instruction *SeedingInstruction, date time.Time) (*PlanEntry, error) {
	if instruction == nil {
		return nil, NewValidationError("instruction", "仕込み指示が指定されていません", "nil")
	}
	if instruction.SeedingAmount <= 0 {
		return nil, NewBusinessRuleError("empty_instruction", "仕込み量が0の指示は計画化できません", instruction.ProductID)
	}

	product, err := p.storage.GetProduct(ctx, instruction.ProductID)
	if err != nil {
		if err == ErrProductNotFound {
			return nil, ErrProductNotFound
		}
		return nil, NewStorageError("get_product", "品目取得に失敗しました", err)
	}

	packsPerTray := product.PacksPerTray
	if packsPerTray <= 0 {
		packsPerTray = p.config.DefaultPacksPerTray
	}

	// 切り上げ換算
	trays := (instruction.SeedingAmount + packsPerTray - 1) / packsPerTray

	now := time.Now()
	entry := &PlanEntry{
		ID:          NewID(),
		ProductID:   product.ID,
		Date:        date,
		HarvestDate: date.AddDate(0, 0, product.GrowthDays),
		Trays:       trays,
		Status:      PlanStatusPlanned,
		Notes:       instruction.Breakdown,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return entry, nil
}

// ScheduleSeeding persists a plan entry onto the calendar
// 生産計画エントリをカレンダーに登録
func (p *Planner) ScheduleSeeding(ctx context.Context, entry *PlanEntry) error {
	if err := ValidatePlanEntry(entry); err != nil {
		return err
	}

	if err := p.storage.CreatePlanEntry(ctx, entry); err != nil {
		return NewStorageError("create_plan_entry", "生産計画登録に失敗しました", err)
	}

	p.logger.Info("生産計画登録完了",
		zap.String("entry_id", entry.ID),
		zap.String("product_id", entry.ProductID),
		zap.String("date", entry.Date.Format("2006-01-02")),
		zap.String("harvest_date", entry.HarvestDate.Format("2006-01-02")),
		zap.Int64("trays", entry.Trays),
	)

	return nil
}

// AdvancePlanStatus moves a plan entry forward through its lifecycle.
// Transitions move forward only: planned, seeded, growing, harvested.
// 生産計画のステータスを進める。遷移は前進のみ。
func (p *Planner) AdvancePlanStatus(ctx context.Context, entryID string, status PlanStatus) error {
	if err := ValidatePlanStatus(status); err != nil {
		return err
	}

	entry, err := p.storage.GetPlanEntry(ctx, entryID)
	if err != nil {
		if err == ErrPlanEntryNotFound {
			return ErrPlanEntryNotFound
		}
		return NewStorageError("get_plan_entry", "生産計画取得に失敗しました", err)
	}

	if planStatusRank(status) <= planStatusRank(entry.Status) {
		return NewBusinessRuleError("plan_transition", "生産計画ステータスは前進のみ可能です",
			fmt.Sprintf("%s -> %s", entry.Status, status))
	}

	entry.Status = status
	entry.UpdatedAt = time.Now()

	if err := p.storage.UpdatePlanEntry(ctx, entry); err != nil {
		return NewStorageError("update_plan_entry", "生産計画更新に失敗しました", err)
	}

	p.logger.Info("生産計画ステータス更新完了",
		zap.String("entry_id", entryID),
		zap.String("status", string(status)),
	)

	return nil
}

// GetSchedule builds the production calendar window starting at from
// 開始日からの生産計画カレンダーを作成
func (p *Planner) GetSchedule(ctx context.Context, from time.Time, days int) (*WeeklySchedule, error) {
	if days <= 0 {
		days = p.config.ScheduleDays
	}

	to := from.AddDate(0, 0, days)
	entries, err := p.storage.ListPlanEntries(ctx, from, to)
	if err != nil {
		return nil, NewStorageError("list_plan_entries", "生産計画一覧取得に失敗しました", err)
	}

	schedule := &WeeklySchedule{
		From: from,
		Days: make([]ScheduleDay, days),
	}

	byDay := make(map[string][]PlanEntry)
	for _, entry := range entries {
		key := entry.Date.Format("2006-01-02")
		byDay[key] = append(byDay[key], entry)
	}

	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		entries := byDay[day.Format("2006-01-02")]
		var total int64
		for _, entry := range entries {
			total += entry.Trays
		}
		schedule.Days[i] = ScheduleDay{
			Date:       day,
			Entries:    entries,
			TotalTrays: total,
		}
	}

	return schedule, nil
}

// planStatusRank orders plan statuses for forward-only checks
// 生産計画ステータスの前進順序
func planStatusRank(status PlanStatus) int {
	switch status {
	case PlanStatusPlanned:
		return 0
	case PlanStatusSeeded:
		return 1
	case PlanStatusGrowing:
		return 2
	case PlanStatusHarvested:
		return 3
	default:
		return -1
	}
}
