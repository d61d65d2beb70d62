// Package service 提供业务逻辑层的实现
package service

import (
	"time"
)

// activityDateLayout 活动日期的格式，与 SQLite date() 的输出一致
const activityDateLayout = "2006-01-02"

// CalcStreaks 计算连续打卡天数
// 纯函数，不做任何 I/O，方便脱离数据库单测
//
// 参数:
//   - dates: 去重后的活动日期（YYYY-MM-DD），按日期倒序（最近的在前）
//   - today: 以哪一天作为"今天"（本地日历日）
//
// 返回:
//   - current: 当前连续天数。最近一次活动在今天或昨天才算连续中，
//     否则视为已中断，返回 0
//   - longest: 历史最长连续天数
func CalcStreaks(dates []string, today time.Time) (current, longest int) {
	days := parseDays(dates)
	if len(days) == 0 {
		return 0, 0
	}

	// 当前连续：从最近一天往回数，相邻两天正好差一天则继续
	todayDay := truncateDay(today)
	yesterday := todayDay.AddDate(0, 0, -1)
	if days[0].Equal(todayDay) || days[0].Equal(yesterday) {
		current = 1
		for i := 1; i < len(days); i++ {
			if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
				current++
			} else {
				break
			}
		}
	}

	// 历史最长：单次扫描，断档时重置计数器
	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	// 收尾：最后一段连续也要参与比较
	if run > longest {
		longest = run
	}

	return current, longest
}

// parseDays 解析日期字符串列表，非法条目直接跳过
func parseDays(dates []string) []time.Time {
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day, err := time.ParseInLocation(activityDateLayout, d, time.Local)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	return days
}

// truncateDay 截断到本地日历日的零点
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
