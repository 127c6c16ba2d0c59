package search

import (
	"context"
	"math/rand"
	"time"

	"canteen-finder/internal/core/catalog"
	"canteen-finder/internal/core/geo"
	"canteen-finder/internal/core/preference"
	"canteen-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// Config 搜尋服務設定
type Config struct {
	HistoryLimit  int
	RandomTrigger string
}

// Service 串接目錄、偏好與搜尋引擎
type Service struct {
	source    catalog.Source
	store     preference.Store
	presets   preference.Presets
	engine    *Engine
	histories *HistoryBook
	now       func() time.Time
	intn      func(n int) int
}

// NewService 創建搜尋服務
func NewService(source catalog.Source, store preference.Store, presets preference.Presets, cfg Config) *Service {
	if presets == nil {
		presets = preference.DefaultPresets()
	}
	return &Service{
		source:    source,
		store:     store,
		presets:   presets,
		engine:    NewEngine(cfg.RandomTrigger),
		histories: NewHistoryBook(cfg.HistoryLimit),
		now:       time.Now,
		intn:      rand.Intn,
	}
}

// SetClock 替換時鐘
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SetRandom 替換隨機來源
func (s *Service) SetRandom(intn func(n int) int) {
	s.intn = intn
}

// Profile 取得使用者的偏好設定
func (s *Service) Profile(owner string) *preference.Profile {
	return preference.NewProfile(s.store, s.presets, owner)
}

// Presets 目前的飲食預設
func (s *Service) Presets() preference.Presets {
	return s.presets
}

func (s *Service) visibility(ctx context.Context, owner string) (preference.CategorySet, VisibilityFilter, error) {
	ignored, err := s.Profile(owner).IgnoredCategories(ctx)
	if err != nil {
		return nil, VisibilityFilter{}, err
	}
	return ignored, NewVisibilityFilter(ignored), nil
}

func (s *Service) snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	snap, err := s.source.Load(ctx)
	if err != nil {
		return nil, common.ErrCatalogUnavailable.Wrap(err)
	}
	return snap, nil
}

// Search 執行搜尋；目錄讀取失敗時回傳空結果，偏好讀取失敗則回傳錯誤
func (s *Service) Search(ctx context.Context, owner string, criteria Criteria, now time.Time) (*Result, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	if now.IsZero() {
		now = s.now()
	}

	ignored, _, err := s.visibility(ctx, owner)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		common.LogError("目錄讀取失敗，回傳空結果",
			zap.String("owner", owner),
			zap.Error(err),
		)
		return EmptyResult(), nil
	}

	start := time.Now()
	result := s.engine.Evaluate(snap, criteria, ignored, now)
	common.LogEvaluation(owner, len(result.VisibleTenants), len(result.HiddenTenantNames), len(result.HiddenFoodNames), time.Since(start))
	return result, nil
}

// RecordSearch 記錄送出的搜尋字，隨機推薦觸發字不記錄
func (s *Service) RecordSearch(owner, term string) bool {
	if s.engine.IsRandomTrigger(term) {
		return false
	}
	s.histories.For(owner).Record(term)
	return true
}

// RecentSearches 最近搜尋
func (s *Service) RecentSearches(owner string) []string {
	return s.histories.For(owner).Entries()
}

// ClearRecentSearches 清除最近搜尋
func (s *Service) ClearRecentSearches(owner string) {
	s.histories.For(owner).Clear()
}

// Options 篩選選項
func (s *Service) Options(ctx context.Context, owner string) (Options, error) {
	ignored, _, err := s.visibility(ctx, owner)
	if err != nil {
		return Options{}, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return Options{}, err
	}
	opts := FilterOptions(snap, ignored)
	opts.Presets = s.presets.Names()
	return opts, nil
}

// Canteens 餐廳摘要
func (s *Service) Canteens(ctx context.Context, owner string, loc *geo.Point) ([]CanteenSummary, error) {
	_, filter, err := s.visibility(ctx, owner)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return CanteenSummaries(snap, filter, loc), nil
}

// TenantsOfCanteen 餐廳中可見的攤位
func (s *Service) TenantsOfCanteen(ctx context.Context, owner, canteenID string) ([]catalog.Tenant, error) {
	_, filter, err := s.visibility(ctx, owner)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	tenants, ok := VisibleTenantsOfCanteen(snap, canteenID, filter)
	if !ok {
		return nil, common.ErrCanteenNotFound
	}
	return tenants, nil
}

// FoodsOfTenant 攤位中可見的菜色
func (s *Service) FoodsOfTenant(ctx context.Context, owner, tenantID string) ([]catalog.Food, error) {
	_, filter, err := s.visibility(ctx, owner)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	foods, ok := VisibleFoodsOfTenant(snap, tenantID, filter)
	if !ok {
		return nil, common.ErrTenantNotFound
	}
	return foods, nil
}

// RandomFood 隨機推薦一道符合偏好的菜色
func (s *Service) RandomFood(ctx context.Context, owner string) (Pick, error) {
	_, filter, err := s.visibility(ctx, owner)
	if err != nil {
		return Pick{}, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return Pick{}, err
	}
	pick, ok := RandomPick(snap, filter, s.intn)
	if !ok {
		return Pick{}, common.ErrNoPermissibleFood
	}
	common.LogInfo("隨機推薦",
		zap.String("owner", owner),
		zap.String("food", pick.Food.Name),
		zap.String("tenant", pick.Tenant.Name),
	)
	return pick, nil
}

// RefreshCatalog 使快取失效並重新載入目錄
func (s *Service) RefreshCatalog(ctx context.Context) (*catalog.Snapshot, error) {
	if inv, ok := s.source.(interface{ Invalidate() }); ok {
		inv.Invalidate()
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	common.LogInfo("目錄已重新載入",
		zap.Int("canteens", len(snap.Canteens)),
		zap.Int("tenants", len(snap.Tenants)),
		zap.Int("foods", len(snap.Foods)),
	)
	return snap, nil
}

// CatalogStats 目錄快取統計，來源沒有快取時回傳 nil
func (s *Service) CatalogStats() map[string]interface{} {
	if st, ok := s.source.(interface{ GetStats() map[string]interface{} }); ok {
		return st.GetStats()
	}
	return nil
}

// CheckCatalog 確認目錄可讀取
func (s *Service) CheckCatalog(ctx context.Context) error {
	_, err := s.snapshot(ctx)
	return err
}

// CheckPreferences 確認偏好儲存可用
func (s *Service) CheckPreferences(ctx context.Context) error {
	if p, ok := s.store.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(ctx); err != nil {
			return common.ErrPreferenceStore.Wrap(err)
		}
	}
	return nil
}
