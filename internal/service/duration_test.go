package service

import (
	"testing"
)

// TestFormatDuration 验证时长格式化的输出
func TestFormatDuration(t *testing.T) {
	cases := []struct {
		name    string
		seconds int64
		want    string
	}{
		{"零", 0, "0с"},
		{"负数按零处理", -5, "0с"},
		{"只有秒", 45, "45с"},
		{"分和秒", 90, "1х 30с"},
		{"整分钟不带秒", 120, "2х"},
		{"时分秒", 3661, "1г 1х 1с"},
		{"整小时", 7200, "2г"},
		{"跨天", 90000, "1д 1г"},
		{"跨月", 2592000 + 3600, "1м 1г"},
		{"跨年", 31536000 + 86400, "1р 1д"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatDuration(tc.seconds)
			if got != tc.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tc.seconds, got, tc.want)
			}
		})
	}
}
