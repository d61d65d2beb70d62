package service

import (
	"context"
	"testing"
	"time"

	"artfolio-server/internal/model"
	"artfolio-server/internal/repository"
)

func TestStatsZeroDefaultsForNewUser(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	svc := NewStatsService(repository.NewStatsRepository(db))

	stats, err := svc.GetStats(context.Background(), user.ID, 0)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	currentYear := time.Now().Year()
	if len(stats.AvailableYears) != 1 || stats.AvailableYears[0] != currentYear {
		t.Errorf("AvailableYears = %v, want [%d]", stats.AvailableYears, currentYear)
	}

	if stats.Global.KPI.ArtworkCount != 0 || stats.Global.KPI.TotalSeconds != 0 {
		t.Errorf("global KPI = %+v, want zeros", stats.Global.KPI)
	}
	if stats.Global.KPI.TotalTimeText != "0с" {
		t.Errorf("TotalTimeText = %q, want \"0с\"", stats.Global.KPI.TotalTimeText)
	}

	if stats.Yearly.Year != currentYear {
		t.Errorf("Yearly.Year = %d, want %d", stats.Yearly.Year, currentYear)
	}
	if stats.Yearly.KPI.CurrentStreak != 0 || stats.Yearly.KPI.LongestStreak != 0 {
		t.Errorf("streaks = %d/%d, want 0/0", stats.Yearly.KPI.CurrentStreak, stats.Yearly.KPI.LongestStreak)
	}
	if len(stats.Yearly.Heatmap) != 0 {
		t.Errorf("heatmap = %v, want empty", stats.Yearly.Heatmap)
	}

	// 分布是空切片而不是 nil，序列化成 [] 而不是 null
	if stats.Global.Charts.ByStatus == nil {
		t.Error("ByStatus is nil, want empty slice")
	}
	for i, v := range stats.Global.Charts.ByWeekday {
		if v != 0 {
			t.Errorf("ByWeekday[%d] = %d, want 0", i, v)
		}
	}
}

func TestStatsAvailableYearsFromEarliestArtwork(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	svc := NewStatsService(repository.NewStatsRepository(db))

	currentYear := time.Now().Year()
	startedYear := currentYear - 2
	artwork := &model.Artwork{
		UserID:      user.ID,
		Title:       "давня робота",
		Status:      model.ArtworkStatusCompleted,
		StartedYear: &startedYear,
	}
	if err := db.Create(artwork).Error; err != nil {
		t.Fatalf("create artwork: %v", err)
	}

	stats, err := svc.GetStats(context.Background(), user.ID, 0)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	want := []int{currentYear - 2, currentYear - 1, currentYear}
	if len(stats.AvailableYears) != len(want) {
		t.Fatalf("AvailableYears = %v, want %v", stats.AvailableYears, want)
	}
	for i, y := range want {
		if stats.AvailableYears[i] != y {
			t.Errorf("AvailableYears[%d] = %d, want %d", i, stats.AvailableYears[i], y)
		}
	}
}

func TestStatsTotalsAndHeatmap(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	artwork := createTestArtwork(t, db, user.ID, "етюд")
	svc := NewStatsService(repository.NewStatsRepository(db))

	// 一条已结束的会话：90 秒，热力图里应取整为 2 分钟
	now := time.Now()
	start := now.Add(-time.Hour)
	session := &model.Session{
		UserID:          user.ID,
		ArtworkID:       artwork.ID,
		StartTime:       &start,
		EndTime:         &now,
		DurationSeconds: 90,
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}

	stats, err := svc.GetStats(context.Background(), user.ID, now.Year())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if stats.Global.KPI.TotalSeconds != 90 {
		t.Errorf("TotalSeconds = %d, want 90", stats.Global.KPI.TotalSeconds)
	}
	if stats.Global.KPI.TotalTimeText != "1х 30с" {
		t.Errorf("TotalTimeText = %q, want \"1х 30с\"", stats.Global.KPI.TotalTimeText)
	}

	if len(stats.Yearly.Heatmap) != 1 {
		t.Fatalf("heatmap length = %d, want 1", len(stats.Yearly.Heatmap))
	}
	if stats.Yearly.Heatmap[0].Minutes != 2 {
		t.Errorf("heatmap minutes = %d, want 2 (rounded)", stats.Yearly.Heatmap[0].Minutes)
	}

	// 今天有活动，连续打卡从 1 起算
	if stats.Yearly.KPI.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", stats.Yearly.KPI.CurrentStreak)
	}

	// 全局图表带按年分布，年度图表不带
	if len(stats.Global.Charts.ByYear) != 1 {
		t.Errorf("global ByYear = %v, want one entry", stats.Global.Charts.ByYear)
	}
	if stats.Yearly.Charts.ByYear != nil {
		t.Errorf("yearly ByYear = %v, want nil", stats.Yearly.Charts.ByYear)
	}
}

func TestStatsActiveSessionExcludedEverywhere(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	artwork := createTestArtwork(t, db, user.ID, "етюд")
	svc := NewStatsService(repository.NewStatsRepository(db))

	now := time.Now()
	finishedStart := now.Add(-2 * time.Hour)
	finished := &model.Session{
		UserID:          user.ID,
		ArtworkID:       artwork.ID,
		StartTime:       &finishedStart,
		EndTime:         &now,
		DurationSeconds: 600,
	}
	if err := db.Create(finished).Error; err != nil {
		t.Fatalf("create finished session: %v", err)
	}

	// 活跃会话已累计 300 秒（例如暂停又恢复过）
	activeStart := now.Add(-time.Minute)
	active := &model.Session{
		UserID:          user.ID,
		ArtworkID:       artwork.ID,
		StartTime:       &activeStart,
		DurationSeconds: 300,
	}
	if err := db.Create(active).Error; err != nil {
		t.Fatalf("create active session: %v", err)
	}

	stats, err := svc.GetStats(context.Background(), user.ID, now.Year())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	// KPI 总量与所有时间模式图表必须同口径：活跃会话一律不计入
	if stats.Global.KPI.TotalSeconds != 600 {
		t.Errorf("TotalSeconds = %d, want 600", stats.Global.KPI.TotalSeconds)
	}

	var weekdaySum int64
	for _, v := range stats.Yearly.Charts.ByWeekday {
		weekdaySum += v
	}
	if weekdaySum != 600 {
		t.Errorf("weekday sum = %d, want 600", weekdaySum)
	}

	var monthSum int64
	for _, v := range stats.Yearly.Charts.ByMonth {
		monthSum += v
	}
	if monthSum != 600 {
		t.Errorf("month sum = %d, want 600", monthSum)
	}

	var hourCount int64
	for _, v := range stats.Yearly.Charts.ByHour {
		hourCount += v
	}
	if hourCount != 1 {
		t.Errorf("hour count = %d, want 1", hourCount)
	}

	var yearSum int64
	for _, row := range stats.Global.Charts.ByYear {
		yearSum += row.Seconds
	}
	if yearSum != 600 {
		t.Errorf("year sum = %d, want 600", yearSum)
	}

	var heatmapSum int64
	for _, cell := range stats.Yearly.Heatmap {
		heatmapSum += cell.Minutes
	}
	if heatmapSum != 10 {
		t.Errorf("heatmap minutes = %d, want 10", heatmapSum)
	}
}

func TestRotateMondayFirst(t *testing.T) {
	// 输入下标 0=周日 .. 6=周六
	sundayFirst := [7]int64{70, 10, 20, 30, 40, 50, 60}
	// 期望下标 0=周一 .. 6=周日
	want := [7]int64{10, 20, 30, 40, 50, 60, 70}

	got := rotateMondayFirst(sundayFirst)
	if got != want {
		t.Errorf("rotateMondayFirst = %v, want %v", got, want)
	}
}

func TestStatsUnspecifiedGenreBucket(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "olena")
	svc := NewStatsService(repository.NewStatsRepository(db))

	genre := &model.Genre{Name: "пейзаж"}
	if err := db.Create(genre).Error; err != nil {
		t.Fatalf("create genre: %v", err)
	}

	withGenre := &model.Artwork{UserID: user.ID, Title: "з жанром", Status: model.ArtworkStatusInProgress, GenreID: &genre.ID}
	withoutGenre := &model.Artwork{UserID: user.ID, Title: "без жанру", Status: model.ArtworkStatusInProgress}
	if err := db.Create(withGenre).Error; err != nil {
		t.Fatalf("create artwork: %v", err)
	}
	if err := db.Create(withoutGenre).Error; err != nil {
		t.Fatalf("create artwork: %v", err)
	}

	stats, err := svc.GetStats(context.Background(), user.ID, 0)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	counts := map[string]int64{}
	for _, row := range stats.Global.Charts.ByGenre {
		counts[row.Name] = row.Count
	}
	if counts["пейзаж"] != 1 {
		t.Errorf("genre count = %d, want 1", counts["пейзаж"])
	}
	if counts[repository.UnspecifiedLabel] != 1 {
		t.Errorf("unspecified count = %d, want 1", counts[repository.UnspecifiedLabel])
	}
}
