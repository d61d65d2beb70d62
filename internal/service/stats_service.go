// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"time"

	"artfolio-server/internal/repository"
)

// StatsService 活动统计服务
// 汇总 KPI、分布图表、时间模式、热力图和连续打卡天数。
// 所有统计都是读时现算的，没有任何缓存：新用户或空年份
// 得到的是零值和空数组，而不是错误
type StatsService struct {
	statsRepo *repository.StatsRepository
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(statsRepo *repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// KPI 关键指标
type KPI struct {
	ArtworkCount    int64  `json:"artwork_count"`    // 作品数
	CollectionCount int64  `json:"collection_count"` // 合集数
	TotalSeconds    int64  `json:"total_seconds"`    // 累计创作秒数
	TotalTimeText   string `json:"total_time_text"`  // 累计创作时长（人类可读）
}

// YearlyKPI 年度关键指标，在 KPI 基础上附加连续打卡
type YearlyKPI struct {
	KPI
	CurrentStreak int `json:"current_streak"` // 当前连续天数
	LongestStreak int `json:"longest_streak"` // 历史最长连续天数
}

// Charts 分布与时间模式图表数据
type Charts struct {
	ByStatus         []repository.NameCount `json:"by_status"`          // 按作品状态
	ByCollectionType []repository.NameCount `json:"by_collection_type"` // 按合集类型
	ByGenre          []repository.NameCount `json:"by_genre"`           // 按体裁
	ByStyle          []repository.NameCount `json:"by_style"`           // 按风格
	ByMaterial       []repository.NameCount `json:"by_material"`        // 按材料
	ByTag            []repository.NameCount `json:"by_tag"`             // 按标签

	ByWeekday [7]int64  `json:"by_weekday"` // 按星期汇总秒数，周一开头
	ByHour    [24]int64 `json:"by_hour"`    // 按小时统计会话次数
	ByMonth   [12]int64 `json:"by_month"`   // 按月份汇总秒数

	// ByYear 按年份汇总秒数
	// 本身就按年切分，永远是全局口径，只出现在全局图表里
	ByYear []repository.YearSeconds `json:"by_year,omitempty"`
}

// HeatmapCell 热力图单元格：某一天的创作分钟数
// 深浅分档是前端的展示逻辑，服务端只给数值
type HeatmapCell struct {
	Day     string `json:"day"`     // YYYY-MM-DD
	Minutes int64  `json:"minutes"` // 四舍五入到整分钟
}

// GlobalStats 全量口径的统计
type GlobalStats struct {
	KPI    KPI    `json:"kpi"`
	Charts Charts `json:"charts"`
}

// YearlyStats 年度口径的统计
type YearlyStats struct {
	Year    int           `json:"year"`
	KPI     YearlyKPI     `json:"kpi"`
	Heatmap []HeatmapCell `json:"heatmap"`
	Charts  Charts        `json:"charts"`
}

// StatsResponse 统计接口的完整响应
type StatsResponse struct {
	AvailableYears []int       `json:"available_years"`
	Global         GlobalStats `json:"global"`
	Yearly         YearlyStats `json:"yearly"`
}

// GetStats 汇总用户的全量统计与指定年份的年度统计
// 参数:
//   - year: 年度口径的年份，0 表示当前年
func (s *StatsService) GetStats(ctx context.Context, userID int64, year int) (*StatsResponse, error) {
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}

	availableYears, err := s.availableYears(ctx, userID, now.Year())
	if err != nil {
		return nil, err
	}

	global, err := s.buildGlobal(ctx, userID)
	if err != nil {
		return nil, err
	}

	yearly, err := s.buildYearly(ctx, userID, year, now)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		AvailableYears: availableYears,
		Global:         *global,
		Yearly:         *yearly,
	}, nil
}

// availableYears 计算年份选择器的范围
// 从用户最早的创作年份到当前年；没有任何作品时只给当前年
func (s *StatsService) availableYears(ctx context.Context, userID int64, currentYear int) ([]int, error) {
	minYear, err := s.statsRepo.MinStartYear(ctx, userID)
	if err != nil {
		return nil, err
	}

	from := currentYear
	if minYear != nil && *minYear < currentYear {
		from = *minYear
	}

	years := make([]int, 0, currentYear-from+1)
	for y := from; y <= currentYear; y++ {
		years = append(years, y)
	}
	return years, nil
}

// buildGlobal 汇总全量口径的 KPI 和图表
func (s *StatsService) buildGlobal(ctx context.Context, userID int64) (*GlobalStats, error) {
	kpi, err := s.buildKPI(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	charts, err := s.buildCharts(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	// 按年份的分布只在全局口径下有意义
	byYear, err := s.statsRepo.YearDurations(ctx, userID)
	if err != nil {
		return nil, err
	}
	charts.ByYear = byYear

	return &GlobalStats{KPI: *kpi, Charts: *charts}, nil
}

// buildYearly 汇总年度口径的 KPI、热力图和图表
func (s *StatsService) buildYearly(ctx context.Context, userID int64, year int, now time.Time) (*YearlyStats, error) {
	kpi, err := s.buildKPI(ctx, userID, &year)
	if err != nil {
		return nil, err
	}

	charts, err := s.buildCharts(ctx, userID, &year)
	if err != nil {
		return nil, err
	}

	// 连续打卡基于全部活动日期，不受年份过滤影响
	dates, err := s.statsRepo.ActivityDates(ctx, userID)
	if err != nil {
		return nil, err
	}
	currentStreak, longestStreak := CalcStreaks(dates, now)

	heatmap, err := s.buildHeatmap(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	return &YearlyStats{
		Year: year,
		KPI: YearlyKPI{
			KPI:           *kpi,
			CurrentStreak: currentStreak,
			LongestStreak: longestStreak,
		},
		Heatmap: heatmap,
		Charts:  *charts,
	}, nil
}

// buildKPI 汇总关键指标，year 为 nil 表示全量口径
func (s *StatsService) buildKPI(ctx context.Context, userID int64, year *int) (*KPI, error) {
	artworkCount, err := s.statsRepo.CountArtworks(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	totalSeconds, err := s.statsRepo.SumSessionSeconds(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	collectionCount, err := s.statsRepo.CountCollections(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	return &KPI{
		ArtworkCount:    artworkCount,
		CollectionCount: collectionCount,
		TotalSeconds:    totalSeconds,
		TotalTimeText:   FormatDuration(totalSeconds),
	}, nil
}

// buildCharts 汇总六个分布和三个时间模式，year 为 nil 表示全量口径
func (s *StatsService) buildCharts(ctx context.Context, userID int64, year *int) (*Charts, error) {
	charts := &Charts{}
	var err error

	if charts.ByStatus, err = s.statsRepo.CountByStatus(ctx, userID, year); err != nil {
		return nil, err
	}
	if charts.ByCollectionType, err = s.statsRepo.CountByCollectionType(ctx, userID, year); err != nil {
		return nil, err
	}
	if charts.ByGenre, err = s.statsRepo.CountByGenre(ctx, userID, year); err != nil {
		return nil, err
	}
	if charts.ByStyle, err = s.statsRepo.CountByStyle(ctx, userID, year); err != nil {
		return nil, err
	}
	if charts.ByMaterial, err = s.statsRepo.CountByMaterial(ctx, userID, year); err != nil {
		return nil, err
	}
	if charts.ByTag, err = s.statsRepo.CountByTag(ctx, userID, year); err != nil {
		return nil, err
	}

	weekdays, err := s.statsRepo.WeekdayDurations(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	charts.ByWeekday = rotateMondayFirst(weekdays)

	if charts.ByHour, err = s.statsRepo.HourCounts(ctx, userID, year); err != nil {
		return nil, err
	}
	if charts.ByMonth, err = s.statsRepo.MonthDurations(ctx, userID, year); err != nil {
		return nil, err
	}

	return charts, nil
}

// rotateMondayFirst 把 0=周日..6=周六 的数组旋转成周一开头
// 这是展示约定而不是数据修正：查询口径保持 SQLite 原生的周日开头，
// 前端图表按周一开头排列
func rotateMondayFirst(sundayFirst [7]int64) [7]int64 {
	var mondayFirst [7]int64
	for i := 0; i < 7; i++ {
		mondayFirst[i] = sundayFirst[(i+1)%7]
	}
	return mondayFirst
}

// buildHeatmap 构建指定年份的热力图数据
// 秒数换算成分钟并四舍五入
func (s *StatsService) buildHeatmap(ctx context.Context, userID int64, year int) ([]HeatmapCell, error) {
	daily, err := s.statsRepo.DailyDurations(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	heatmap := make([]HeatmapCell, len(daily))
	for i, day := range daily {
		heatmap[i] = HeatmapCell{
			Day:     day.Day,
			Minutes: (day.Seconds + 30) / 60,
		}
	}
	return heatmap, nil
}
