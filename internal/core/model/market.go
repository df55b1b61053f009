// Package model 定义定价核心中使用的数据结构。
package model

import "fmt"

// MarketParams 市场参数
// 单次定价运行内不可变，所有试验共享同一组参数。
type MarketParams struct {
	// Spot 标的现价 S0，必须为正
	Spot float64
	// Rate 无风险利率 r（连续复利，年化）
	Rate float64
	// DividendYield 股息率 d（连续复利，年化）
	DividendYield float64
	// Vol 波动率 σ（年化），必须为正
	Vol float64
}

// NetRate 风险中性漂移使用的净利率 r - d
func (m MarketParams) NetRate() float64 {
	return m.Rate - m.DividendYield
}

// Validate 验证市场参数合法性
func (m MarketParams) Validate() error {
	if m.Spot <= 0 {
		return fmt.Errorf("%w: 现价必须为正，当前值 %f", ErrInvalidMarketParams, m.Spot)
	}
	if m.Vol <= 0 {
		return fmt.Errorf("%w: 波动率必须为正，当前值 %f", ErrInvalidMarketParams, m.Vol)
	}
	return nil
}

// Schedule 观察日程
// 严格递增的观察时间 {t_1, ..., t_n}（单位：年），隐含 t_0 = 0。
// 不变量: n >= 1，所有 Δt_i = t_i - t_{i-1} > 0。
type Schedule []float64

// Validate 验证观察日程合法性
func (s Schedule) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: 日程不能为空", ErrInvalidSchedule)
	}
	prev := 0.0
	for i, t := range s {
		if t-prev <= 0 {
			return fmt.Errorf("%w: t[%d]=%f 相对前一观察时间 %f 的 Δt 必须为正", ErrInvalidSchedule, i, t, prev)
		}
		prev = t
	}
	return nil
}

// Steps 计算步长序列 {Δt_1, ..., Δt_n}，含隐含 t_0 = 0
func (s Schedule) Steps() []float64 {
	steps := make([]float64, len(s))
	prev := 0.0
	for i, t := range s {
		steps[i] = t - prev
		prev = t
	}
	return steps
}

// Maturity 最后一个观察时间 t_n
func (s Schedule) Maturity() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// EquallySpaced 构造 n 个等间隔观察日程 {T/n, 2T/n, ..., T}
// 参数 n: 观察次数
// 参数 maturity: 到期时间 T（年）
func EquallySpaced(n int, maturity float64) (Schedule, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: 观察次数必须 >= 1，当前值 %d", ErrInvalidSchedule, n)
	}
	if maturity <= 0 {
		return nil, fmt.Errorf("%w: 到期时间必须为正，当前值 %f", ErrInvalidSchedule, maturity)
	}
	s := make(Schedule, n)
	for i := range s {
		s[i] = float64(i+1) * maturity / float64(n)
	}
	return s, nil
}
