package service

import (
	"testing"
	"time"
)

// day 构造测试用的本地日期
func day(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

// TestCalcStreaks 验证连续打卡的计算
func TestCalcStreaks(t *testing.T) {
	cases := []struct {
		name        string
		dates       []string
		today       string
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "没有任何活动",
			dates:       []string{},
			today:       "2024-03-05",
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "今天有活动且连续三天",
			dates:       []string{"2024-03-05", "2024-03-04", "2024-03-03", "2024-03-01"},
			today:       "2024-03-05",
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "最近活动在昨天也算连续中",
			dates:       []string{"2024-03-04", "2024-03-03"},
			today:       "2024-03-05",
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "最近活动在前天则当前连续归零",
			dates:       []string{"2024-01-10"},
			today:       "2024-03-05",
			wantCurrent: 0,
			wantLongest: 1,
		},
		{
			name:        "历史最长在中间一段",
			dates:       []string{"2024-03-05", "2024-02-20", "2024-02-19", "2024-02-18", "2024-02-17", "2024-02-10"},
			today:       "2024-03-05",
			wantCurrent: 1,
			wantLongest: 4,
		},
		{
			name:        "最长的一段在列表末尾也能被统计到",
			dates:       []string{"2024-03-05", "2024-02-03", "2024-02-02", "2024-02-01"},
			today:       "2024-03-05",
			wantCurrent: 1,
			wantLongest: 3,
		},
		{
			name:        "非法日期条目被跳过",
			dates:       []string{"2024-03-05", "not-a-date", "2024-03-04"},
			today:       "2024-03-05",
			wantCurrent: 2,
			wantLongest: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			current, longest := CalcStreaks(tc.dates, day(tc.today))
			if current != tc.wantCurrent {
				t.Errorf("current = %d, want %d", current, tc.wantCurrent)
			}
			if longest != tc.wantLongest {
				t.Errorf("longest = %d, want %d", longest, tc.wantLongest)
			}
		})
	}
}
