// Package model 数据结构测试
package model

import (
	"errors"
	"math"
	"testing"
)

// TestMarketParams_Validate 测试市场参数验证
func TestMarketParams_Validate(t *testing.T) {
	valid := MarketParams{Spot: 100, Rate: 0.05, DividendYield: 0.03, Vol: 0.1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("合法参数不应报错: %v", err)
	}

	cases := []struct {
		name string
		m    MarketParams
	}{
		{"现价为零", MarketParams{Spot: 0, Vol: 0.1}},
		{"现价为负", MarketParams{Spot: -100, Vol: 0.1}},
		{"波动率为零", MarketParams{Spot: 100, Vol: 0}},
		{"波动率为负", MarketParams{Spot: 100, Vol: -0.2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.m.Validate()
			if !errors.Is(err, ErrInvalidMarketParams) {
				t.Fatalf("期望 ErrInvalidMarketParams，实际 %v", err)
			}
		})
	}
}

// TestMarketParams_NetRate 测试净利率计算
func TestMarketParams_NetRate(t *testing.T) {
	m := MarketParams{Spot: 100, Rate: 0.05, DividendYield: 0.03, Vol: 0.1}
	if got := m.NetRate(); math.Abs(got-0.02) > 1e-12 {
		t.Fatalf("净利率期望 0.02，实际 %f", got)
	}
}

// TestSchedule_Validate 测试观察日程验证
func TestSchedule_Validate(t *testing.T) {
	if err := (Schedule{0.25, 0.5, 0.75, 1.0}).Validate(); err != nil {
		t.Fatalf("合法日程不应报错: %v", err)
	}
	// 单观察点退化为一步香草情形
	if err := (Schedule{1.0}).Validate(); err != nil {
		t.Fatalf("单观察点日程不应报错: %v", err)
	}

	cases := []struct {
		name string
		s    Schedule
	}{
		{"空日程", Schedule{}},
		{"首观察时间为零", Schedule{0, 0.5, 1.0}},
		{"非递增", Schedule{0.5, 0.5, 1.0}},
		{"递减", Schedule{0.5, 0.25, 1.0}},
		{"负时间", Schedule{-0.5, 1.0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if !errors.Is(err, ErrInvalidSchedule) {
				t.Fatalf("期望 ErrInvalidSchedule，实际 %v", err)
			}
		})
	}
}

// TestSchedule_Steps 测试步长计算（含隐含 t_0 = 0）
func TestSchedule_Steps(t *testing.T) {
	s := Schedule{0.25, 0.5, 1.0}
	steps := s.Steps()
	want := []float64{0.25, 0.25, 0.5}
	if len(steps) != len(want) {
		t.Fatalf("步长数期望 %d，实际 %d", len(want), len(steps))
	}
	for i := range want {
		if math.Abs(steps[i]-want[i]) > 1e-12 {
			t.Fatalf("steps[%d] 期望 %f，实际 %f", i, want[i], steps[i])
		}
	}
	if math.Abs(s.Maturity()-1.0) > 1e-12 {
		t.Fatalf("到期时间期望 1.0，实际 %f", s.Maturity())
	}
}

// TestEquallySpaced 测试等间隔日程构造
func TestEquallySpaced(t *testing.T) {
	s, err := EquallySpaced(12, 1.0)
	if err != nil {
		t.Fatalf("构造失败: %v", err)
	}
	if len(s) != 12 {
		t.Fatalf("观察次数期望 12，实际 %d", len(s))
	}
	if math.Abs(s[0]-1.0/12) > 1e-12 || math.Abs(s[11]-1.0) > 1e-12 {
		t.Fatalf("端点不符: 首 %f 末 %f", s[0], s[11])
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("等间隔日程应通过验证: %v", err)
	}

	if _, err := EquallySpaced(0, 1.0); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("零观察次数期望 ErrInvalidSchedule，实际 %v", err)
	}
	if _, err := EquallySpaced(4, 0); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("零到期时间期望 ErrInvalidSchedule，实际 %v", err)
	}
}

// TestPayoffSpec_Validate 测试收益结构验证
func TestPayoffSpec_Validate(t *testing.T) {
	valid := []PayoffSpec{
		{Kind: KindVanilla, Right: RightCall, Strike: 100},
		{Kind: KindAsian, Right: RightPut, Strike: 103},
		{Kind: KindBarrier, Right: RightCall, Strike: 103, Barrier: 80, Direction: BarrierDown, Knock: KnockOut},
		{Kind: KindBarrier, Right: RightPut, Strike: 103, Barrier: 120, Direction: BarrierUp, Knock: KnockIn},
	}
	for _, p := range valid {
		if err := p.Validate(); err != nil {
			t.Fatalf("合法收益结构不应报错 (%+v): %v", p, err)
		}
	}

	invalid := []struct {
		name string
		p    PayoffSpec
	}{
		{"未知类型", PayoffSpec{Kind: "american", Right: RightCall, Strike: 100}},
		{"未知权利", PayoffSpec{Kind: KindVanilla, Right: "straddle", Strike: 100}},
		{"行权价为零", PayoffSpec{Kind: KindVanilla, Right: RightCall, Strike: 0}},
		{"行权价为负", PayoffSpec{Kind: KindAsian, Right: RightCall, Strike: -103}},
		{"障碍价为零", PayoffSpec{Kind: KindBarrier, Right: RightCall, Strike: 100, Barrier: 0, Direction: BarrierDown, Knock: KnockOut}},
		{"未知障碍方向", PayoffSpec{Kind: KindBarrier, Right: RightCall, Strike: 100, Barrier: 80, Direction: "sideways", Knock: KnockOut}},
		{"未知敲击类型", PayoffSpec{Kind: KindBarrier, Right: RightCall, Strike: 100, Barrier: 80, Direction: BarrierDown, Knock: "maybe"}},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if !errors.Is(err, ErrInvalidPayoffSpec) {
				t.Fatalf("期望 ErrInvalidPayoffSpec，实际 %v", err)
			}
		})
	}
}
