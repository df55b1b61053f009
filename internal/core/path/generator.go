// Package path 实现几何布朗运动的路径生成。
// 每步使用精确的对数正态更新，无论步长多大都不引入离散化偏差:
//
//	S(t_i) = S(t_{i-1}) · exp[(r - d - σ²/2)·Δt_i + σ·√Δt_i·z_i]
package path

import (
	"fmt"
	"math"

	"exotic-option-pricer/internal/core/model"
)

// NormalSource 标准正态抽样来源
// 由 random.Stream 实现；测试可注入固定序列。
type NormalSource interface {
	// NextNormal 返回一个 N(0, 1) 抽样
	NextNormal() float64
	// NextAntitheticPair 返回一对对偶抽样 (z, -z)
	NextAntitheticPair() (float64, float64)
}

// Generator 路径生成器
// 按观察日程推进标的价格。构造时完成全部验证与每步系数预计算，
// 热路径内不再做任何分支检查或内存分配。
type Generator struct {
	spot float64
	// drift 每步漂移因子 exp[(r - d - σ²/2)·Δt_i]
	drift []float64
	// volSqrtDt 每步波动系数 σ·√Δt_i
	volSqrtDt []float64
}

// NewGenerator 创建路径生成器
// 参数 market: 市场参数
// 参数 schedule: 观察日程 {t_1, ..., t_n}
// 返回: 若市场参数或日程非法则返回错误（fail fast）
func NewGenerator(market model.MarketParams, schedule model.Schedule) (*Generator, error) {
	if err := market.Validate(); err != nil {
		return nil, err
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	steps := schedule.Steps()
	g := &Generator{
		spot:      market.Spot,
		drift:     make([]float64, len(steps)),
		volSqrtDt: make([]float64, len(steps)),
	}
	halfVar := 0.5 * market.Vol * market.Vol
	for i, dt := range steps {
		g.drift[i] = math.Exp((market.NetRate() - halfVar) * dt)
		g.volSqrtDt[i] = market.Vol * math.Sqrt(dt)
	}
	return g, nil
}

// Steps 观察次数 n
func (g *Generator) Steps() int {
	return len(g.drift)
}

// Generate 生成一条随机路径 {S(t_1), ..., S(t_n)}
// dst 长度必须等于观察次数，由调用方复用以避免每次试验分配。
func (g *Generator) Generate(src NormalSource, dst []float64) ([]float64, error) {
	if len(dst) != len(g.drift) {
		return nil, fmt.Errorf("路径缓冲区长度 %d 与观察次数 %d 不符", len(dst), len(g.drift))
	}
	s := g.spot
	for i := range g.drift {
		z := src.NextNormal()
		s *= g.drift[i] * math.Exp(g.volSqrtDt[i]*z)
		dst[i] = s
	}
	return dst, nil
}

// GenerateAntithetic 从同一组抽样 {z_i} 及其取反 {-z_i} 生成一对相关路径
// 两条路径的收益随后分别记录，用于对偶变量方差缩减。
// dst 与 adst 长度必须等于观察次数。
func (g *Generator) GenerateAntithetic(src NormalSource, dst, adst []float64) ([]float64, []float64, error) {
	if len(dst) != len(g.drift) || len(adst) != len(g.drift) {
		return nil, nil, fmt.Errorf("路径缓冲区长度 (%d, %d) 与观察次数 %d 不符", len(dst), len(adst), len(g.drift))
	}
	s, as := g.spot, g.spot
	for i := range g.drift {
		z, az := src.NextAntitheticPair()
		s *= g.drift[i] * math.Exp(g.volSqrtDt[i]*z)
		as *= g.drift[i] * math.Exp(g.volSqrtDt[i]*az)
		dst[i] = s
		adst[i] = as
	}
	return dst, adst, nil
}
