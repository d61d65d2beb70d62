// Package service 提供业务逻辑层的实现
package service

import (
	"strconv"
	"strings"
)

// 时长单位换算
// 月按 30 天、年按 365 天近似，展示用途足够
const (
	secondsPerMinute int64 = 60
	secondsPerHour   int64 = 60 * secondsPerMinute
	secondsPerDay    int64 = 24 * secondsPerHour
	secondsPerMonth  int64 = 30 * secondsPerDay
	secondsPerYear   int64 = 365 * secondsPerDay
)

// durationUnit 一个时长单位及其缩写
// 缩写沿用产品的乌克兰语界面：р=рік г=година х=хвилина с=секунда
type durationUnit struct {
	seconds int64
	label   string
}

var durationUnits = []durationUnit{
	{secondsPerYear, "р"},
	{secondsPerMonth, "м"},
	{secondsPerDay, "д"},
	{secondsPerHour, "г"},
	{secondsPerMinute, "х"},
}

// FormatDuration 把秒数格式化成人类可读的时长
// 只输出非零的高位单位；秒数位在其他单位全为零或总数为零时必须出现:
//
//	FormatDuration(0)    == "0с"
//	FormatDuration(90)   == "1х 30с"
//	FormatDuration(3661) == "1г 1х 1с"
func FormatDuration(totalSeconds int64) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}

	parts := []string{}
	remaining := totalSeconds
	for _, unit := range durationUnits {
		if value := remaining / unit.seconds; value > 0 {
			parts = append(parts, strconv.FormatInt(value, 10)+unit.label)
			remaining -= value * unit.seconds
		}
	}

	// 秒：非零时输出；全部为零（即总数为零）时也要输出 "0с"
	if remaining > 0 || len(parts) == 0 {
		parts = append(parts, strconv.FormatInt(remaining, 10)+"с")
	}

	return strings.Join(parts, " ")
}
