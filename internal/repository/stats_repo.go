// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"database/sql"
	"strconv"

	"gorm.io/gorm"

	"artfolio-server/internal/model"
)

// StatsRepository 统计数据访问层
// 所有方法都是只读的分组聚合查询，空结果一律返回 0 或空切片，
// 年份过滤值永远作为查询参数绑定，不拼接进 SQL 文本
type StatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository 创建 StatsRepository 实例
func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// NameCount 分组计数结果的一行
type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// YearSeconds 按年份汇总的会话秒数
type YearSeconds struct {
	Year    int   `json:"year"`
	Seconds int64 `json:"seconds"`
}

// DaySeconds 按日期汇总的会话秒数（热力图的原始数据）
type DaySeconds struct {
	Day     string `json:"day"` // YYYY-MM-DD
	Seconds int64  `json:"seconds"`
}

// yearArg 把年份转成 strftime 比较用的字符串参数
func yearArg(year int) string {
	return strconv.Itoa(year)
}

// ==================== 总量 ====================

// CountArtworks 统计用户的作品数量
// 参数:
//   - year: 按开始年份过滤，nil 表示不过滤
func (r *StatsRepository) CountArtworks(ctx context.Context, userID int64, year *int) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Artwork{}).Where("user_id = ?", userID)
	if year != nil {
		query = query.Where("started_year = ?", *year)
	}
	err := query.Count(&count).Error
	return count, err
}

// SumSessionSeconds 统计用户已结束会话的总秒数
// 空结果返回 0 而不是 NULL（COALESCE 兜底）
// 参数:
//   - year: 按会话开始年份（created_at）过滤，nil 表示不过滤
func (r *StatsRepository) SumSessionSeconds(ctx context.Context, userID int64, year *int) (int64, error) {
	var total sql.NullInt64
	query := r.db.WithContext(ctx).Model(&model.Session{}).
		Select("COALESCE(SUM(duration_seconds), 0)").
		Where("user_id = ? AND end_time IS NOT NULL", userID)
	if year != nil {
		query = query.Where("strftime('%Y', created_at) = ?", yearArg(*year))
	}
	if err := query.Scan(&total).Error; err != nil {
		return 0, err
	}
	return total.Int64, nil
}

// CountCollections 统计用户的合集数量
// 参数:
//   - year: 按创建年份过滤，nil 表示不过滤
func (r *StatsRepository) CountCollections(ctx context.Context, userID int64, year *int) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Collection{}).Where("user_id = ?", userID)
	if year != nil {
		query = query.Where("strftime('%Y', created_at) = ?", yearArg(*year))
	}
	err := query.Count(&count).Error
	return count, err
}

// ==================== 分布 ====================

// UnspecifiedLabel 体裁/风格未填写时的分组标签
// 这些作品必须出现在分布里，不能被丢弃
const UnspecifiedLabel = "unspecified"

// CountByStatus 按作品状态分组计数
func (r *StatsRepository) CountByStatus(ctx context.Context, userID int64, year *int) ([]NameCount, error) {
	rows := []NameCount{}
	query := r.db.WithContext(ctx).Model(&model.Artwork{}).
		Select("status AS name, COUNT(*) AS count").
		Where("user_id = ?", userID)
	if year != nil {
		query = query.Where("started_year = ?", *year)
	}
	err := query.Group("status").Order("count DESC").Scan(&rows).Error
	return rows, err
}

// CountByCollectionType 按合集类型分组计数
func (r *StatsRepository) CountByCollectionType(ctx context.Context, userID int64, year *int) ([]NameCount, error) {
	rows := []NameCount{}
	query := r.db.WithContext(ctx).Model(&model.Collection{}).
		Select("type AS name, COUNT(*) AS count").
		Where("user_id = ?", userID)
	if year != nil {
		query = query.Where("strftime('%Y', created_at) = ?", yearArg(*year))
	}
	err := query.Group("type").Order("count DESC").Scan(&rows).Error
	return rows, err
}

// CountByGenre 按体裁分组计数
// 未填写体裁的作品归入 UnspecifiedLabel 分组
func (r *StatsRepository) CountByGenre(ctx context.Context, userID int64, year *int) ([]NameCount, error) {
	rows := []NameCount{}
	sqlText := `
		SELECT COALESCE(g.name, ?) AS name, COUNT(*) AS count
		FROM artworks a
		LEFT JOIN genres g ON g.id = a.genre_id
		WHERE a.user_id = ?`
	args := []interface{}{UnspecifiedLabel, userID}
	if year != nil {
		sqlText += " AND a.started_year = ?"
		args = append(args, *year)
	}
	sqlText += " GROUP BY COALESCE(g.name, ?) ORDER BY count DESC"
	args = append(args, UnspecifiedLabel)

	err := r.db.WithContext(ctx).Raw(sqlText, args...).Scan(&rows).Error
	return rows, err
}

// CountByStyle 按风格分组计数
// 未填写风格的作品归入 UnspecifiedLabel 分组
func (r *StatsRepository) CountByStyle(ctx context.Context, userID int64, year *int) ([]NameCount, error) {
	rows := []NameCount{}
	sqlText := `
		SELECT COALESCE(s.name, ?) AS name, COUNT(*) AS count
		FROM artworks a
		LEFT JOIN styles s ON s.id = a.style_id
		WHERE a.user_id = ?`
	args := []interface{}{UnspecifiedLabel, userID}
	if year != nil {
		sqlText += " AND a.started_year = ?"
		args = append(args, *year)
	}
	sqlText += " GROUP BY COALESCE(s.name, ?) ORDER BY count DESC"
	args = append(args, UnspecifiedLabel)

	err := r.db.WithContext(ctx).Raw(sqlText, args...).Scan(&rows).Error
	return rows, err
}

// CountByMaterial 按材料分组计数（经由 artwork_materials 连接表）
func (r *StatsRepository) CountByMaterial(ctx context.Context, userID int64, year *int) ([]NameCount, error) {
	rows := []NameCount{}
	sqlText := `
		SELECT m.name AS name, COUNT(*) AS count
		FROM artworks a
		JOIN artwork_materials am ON am.artwork_id = a.id
		JOIN materials m ON m.id = am.material_id
		WHERE a.user_id = ?`
	args := []interface{}{userID}
	if year != nil {
		sqlText += " AND a.started_year = ?"
		args = append(args, *year)
	}
	sqlText += " GROUP BY m.name ORDER BY count DESC"

	err := r.db.WithContext(ctx).Raw(sqlText, args...).Scan(&rows).Error
	return rows, err
}

// CountByTag 按标签分组计数（经由 artwork_tags 连接表）
func (r *StatsRepository) CountByTag(ctx context.Context, userID int64, year *int) ([]NameCount, error) {
	rows := []NameCount{}
	sqlText := `
		SELECT t.name AS name, COUNT(*) AS count
		FROM artworks a
		JOIN artwork_tags at ON at.artwork_id = a.id
		JOIN tags t ON t.id = at.tag_id
		WHERE a.user_id = ?`
	args := []interface{}{userID}
	if year != nil {
		sqlText += " AND a.started_year = ?"
		args = append(args, *year)
	}
	sqlText += " GROUP BY t.name ORDER BY count DESC"

	err := r.db.WithContext(ctx).Raw(sqlText, args...).Scan(&rows).Error
	return rows, err
}

// ==================== 时间模式 ====================
// 这组查询都基于会话的 start_time（最近一次开始/恢复计时的时间点）
// start_time 为 NULL 的会话（暂停中停止的）不参与时间模式统计。
// 与 SumSessionSeconds 同口径，只统计已结束的会话：活跃会话的
// duration_seconds 还在变化，计入会让图表与 KPI 总量互相矛盾

// bucketRow 分桶聚合的一行，bucket 为 strftime 的数字输出
type bucketRow struct {
	Bucket int
	Value  int64
}

// WeekdayDurations 按星期几汇总会话秒数
// 返回 7 个元素的数组，下标 0=周日 .. 6=周六（SQLite strftime('%w') 口径）
// 展示层的"周一开头"旋转由服务层完成
func (r *StatsRepository) WeekdayDurations(ctx context.Context, userID int64, year *int) ([7]int64, error) {
	var result [7]int64
	rows := []bucketRow{}
	sqlText := `
		SELECT CAST(strftime('%w', start_time) AS INTEGER) AS bucket,
		       COALESCE(SUM(duration_seconds), 0) AS value
		FROM sessions
		WHERE user_id = ? AND start_time IS NOT NULL AND end_time IS NOT NULL`
	args := []interface{}{userID}
	if year != nil {
		sqlText += " AND strftime('%Y', start_time) = ?"
		args = append(args, yearArg(*year))
	}
	sqlText += " GROUP BY bucket"

	if err := r.db.WithContext(ctx).Raw(sqlText, args...).Scan(&rows).Error; err != nil {
		return result, err
	}
	for _, row := range rows {
		if row.Bucket >= 0 && row.Bucket < 7 {
			result[row.Bucket] = row.Value
		}
	}
	return result, nil
}

// HourCounts 按一天中的小时统计会话次数（0-23）
// 注意这里是次数而非时长
func (r *StatsRepository) HourCounts(ctx context.Context, userID int64, year *int) ([24]int64, error) {
	var result [24]int64
	rows := []bucketRow{}
	sqlText := `
		SELECT CAST(strftime('%H', start_time) AS INTEGER) AS bucket,
		       COUNT(*) AS value
		FROM sessions
		WHERE user_id = ? AND start_time IS NOT NULL AND end_time IS NOT NULL`
	args := []interface{}{userID}
	if year != nil {
		sqlText += " AND strftime('%Y', start_time) = ?"
		args = append(args, yearArg(*year))
	}
	sqlText += " GROUP BY bucket"

	if err := r.db.WithContext(ctx).Raw(sqlText, args...).Scan(&rows).Error; err != nil {
		return result, err
	}
	for _, row := range rows {
		if row.Bucket >= 0 && row.Bucket < 24 {
			result[row.Bucket] = row.Value
		}
	}
	return result, nil
}

// MonthDurations 按月份汇总会话秒数
// 返回 12 个元素的数组，下标 0=一月 .. 11=十二月
func (r *StatsRepository) MonthDurations(ctx context.Context, userID int64, year *int) ([12]int64, error) {
	var result [12]int64
	rows := []bucketRow{}
	sqlText := `
		SELECT CAST(strftime('%m', start_time) AS INTEGER) AS bucket,
		       COALESCE(SUM(duration_seconds), 0) AS value
		FROM sessions
		WHERE user_id = ? AND start_time IS NOT NULL AND end_time IS NOT NULL`
	args := []interface{}{userID}
	if year != nil {
		sqlText += " AND strftime('%Y', start_time) = ?"
		args = append(args, yearArg(*year))
	}
	sqlText += " GROUP BY bucket"

	if err := r.db.WithContext(ctx).Raw(sqlText, args...).Scan(&rows).Error; err != nil {
		return result, err
	}
	for _, row := range rows {
		if row.Bucket >= 1 && row.Bucket <= 12 {
			result[row.Bucket-1] = row.Value
		}
	}
	return result, nil
}

// YearDurations 按年份汇总会话秒数
// 这个分布本身就是按年切分的，所以永远是全局的，不接受年份过滤
func (r *StatsRepository) YearDurations(ctx context.Context, userID int64) ([]YearSeconds, error) {
	rows := []YearSeconds{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT CAST(strftime('%Y', start_time) AS INTEGER) AS year,
		       COALESCE(SUM(duration_seconds), 0) AS seconds
		FROM sessions
		WHERE user_id = ? AND start_time IS NOT NULL
		GROUP BY year
		ORDER BY year ASC`, userID).Scan(&rows).Error
	return rows, err
}

// DailyDurations 指定年份内按日期汇总会话秒数
// 热力图的原始数据，分钟换算在服务层完成
func (r *StatsRepository) DailyDurations(ctx context.Context, userID int64, year int) ([]DaySeconds, error) {
	rows := []DaySeconds{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT date(start_time) AS day,
		       COALESCE(SUM(duration_seconds), 0) AS seconds
		FROM sessions
		WHERE user_id = ? AND start_time IS NOT NULL AND end_time IS NOT NULL AND strftime('%Y', start_time) = ?
		GROUP BY day
		ORDER BY day ASC`, userID, yearArg(year)).Scan(&rows).Error
	return rows, err
}

// ==================== 连续打卡 / 年份范围 ====================

// ActivityDates 用户有过计时活动的去重日期集合
// 按日期倒序返回（最近的在前），是连续打卡计算的输入。
// 与时间模式图表不同，这里保留活跃会话：今天开始计时就算打卡，
// 不必等会话停止
func (r *StatsRepository) ActivityDates(ctx context.Context, userID int64) ([]string, error) {
	dates := []string{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT date(start_time) AS day
		FROM sessions
		WHERE user_id = ? AND start_time IS NOT NULL
		ORDER BY day DESC`, userID).Scan(&dates).Error
	return dates, err
}

// MinStartYear 推断用户最早的创作年份
// 取每件作品的 started_year（缺省时退回 created_at 的年份）中的最小值
// 返回:
//   - *int: 最早年份，用户没有任何作品时返回 nil
func (r *StatsRepository) MinStartYear(ctx context.Context, userID int64) (*int, error) {
	var minYear sql.NullInt64
	err := r.db.WithContext(ctx).Raw(`
		SELECT MIN(COALESCE(started_year, CAST(strftime('%Y', created_at) AS INTEGER)))
		FROM artworks
		WHERE user_id = ?`, userID).Scan(&minYear).Error
	if err != nil {
		return nil, err
	}
	if !minYear.Valid {
		return nil, nil
	}
	year := int(minYear.Int64)
	return &year, nil
}
