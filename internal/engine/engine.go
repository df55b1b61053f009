// Package engine 实现蒙特卡洛定价引擎。
// 驱动 路径生成 -> 收益求值 -> 统计累加 的试验循环，
// 返回给定试验预算下的 (均值, 标准误差)。
package engine

import (
	"fmt"
	"math"
	"sync"

	"exotic-option-pricer/internal/core/model"
	"exotic-option-pricer/internal/core/path"
	"exotic-option-pricer/internal/core/payoff"
	"exotic-option-pricer/internal/core/random"
	"exotic-option-pricer/internal/stats/welford"
)

// 并行分区的 worker 种子推导增量（黄金比例伽马，保证各 worker 种子分散）
const seedGamma = 0x9E3779B97F4A7C15

// Engine 蒙特卡洛定价引擎
// 所有输入在构造时完成验证（fail fast），试验循环内无失败模式。
// 贴现因子 e^{-r·t_n} 在收益求值后统一施加。
type Engine struct {
	gen      *path.Generator
	eval     *payoff.Evaluator
	discount float64
}

// New 创建定价引擎
// 返回: 若市场参数、观察日程或收益结构非法则返回错误
func New(market model.MarketParams, schedule model.Schedule, spec model.PayoffSpec) (*Engine, error) {
	gen, err := path.NewGenerator(market, schedule)
	if err != nil {
		return nil, err
	}
	eval, err := payoff.NewEvaluator(spec)
	if err != nil {
		return nil, err
	}
	return &Engine{
		gen:      gen,
		eval:     eval,
		discount: math.Exp(-market.Rate * schedule.Maturity()),
	}, nil
}

// Price 运行 trials 次试验并返回定价统计
// 参数 src: 引擎显式持有的随机数流（绝不使用全局状态）
// 参数 trials: 记录的贴现收益样本总数，必须 >= 2
// 参数 antithetic: 启用对偶变量方差缩减
//
// 对偶模式运行 trials/2 对相关路径，两条路径的贴现收益分别作为
// 独立样本记录；trials 为奇数时额外运行一次独立试验补足，
// 保证恰好记录 trials 个样本。
func (e *Engine) Price(src path.NormalSource, trials int64, antithetic bool) (model.PricingResult, error) {
	if trials < 2 {
		return model.PricingResult{}, fmt.Errorf("%w: 至少需要 2 次试验，当前值 %d", model.ErrInsufficientTrials, trials)
	}

	var acc welford.Accumulator
	if err := e.simulate(src, trials, antithetic, &acc); err != nil {
		return model.PricingResult{}, err
	}
	return result(&acc), nil
}

// PriceParallel 并行运行试验并合并统计
// 参数 seed: 基准种子，各 worker 的私有流种子由此推导
// 参数 workers: worker 数，<= 1 时退化为串行 Price
//
// 试验预算按 worker 均分（余数分配给前几个 worker），每个 worker
// 持有私有随机数流与私有累加器，最后用并行方差合并公式归并。
// 结果与单线程执行在分布意义上一致（抽样到试验的指派不同，非逐位相同）。
func (e *Engine) PriceParallel(seed uint64, workers int, trials int64, antithetic bool) (model.PricingResult, error) {
	if trials < 2 {
		return model.PricingResult{}, fmt.Errorf("%w: 至少需要 2 次试验，当前值 %d", model.ErrInsufficientTrials, trials)
	}
	if workers <= 1 || int64(workers) > trials {
		return e.Price(random.NewStream(seed), trials, antithetic)
	}

	base := trials / int64(workers)
	rem := trials % int64(workers)

	accs := make([]welford.Accumulator, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		n := base
		if int64(i) < rem {
			n++
		}
		wg.Add(1)
		go func(i int, n int64) {
			defer wg.Done()
			src := random.NewStream(seed + uint64(i)*seedGamma)
			errs[i] = e.simulate(src, n, antithetic, &accs[i])
		}(i, n)
	}
	wg.Wait()

	var total welford.Accumulator
	for i := range accs {
		if errs[i] != nil {
			return model.PricingResult{}, errs[i]
		}
		total.Merge(accs[i])
	}
	return result(&total), nil
}

// simulate 执行 trials 次试验并写入累加器
// 路径缓冲区在此复用，热循环内不分配。
func (e *Engine) simulate(src path.NormalSource, trials int64, antithetic bool, acc *welford.Accumulator) error {
	n := e.gen.Steps()
	buf := make([]float64, n)

	if !antithetic {
		for i := int64(0); i < trials; i++ {
			p, err := e.gen.Generate(src, buf)
			if err != nil {
				return err
			}
			acc.Record(e.discount * e.eval.Value(p))
		}
		return nil
	}

	abuf := make([]float64, n)
	for i := int64(0); i < trials/2; i++ {
		p, ap, err := e.gen.GenerateAntithetic(src, buf, abuf)
		if err != nil {
			return err
		}
		acc.Record(e.discount * e.eval.Value(p))
		acc.Record(e.discount * e.eval.Value(ap))
	}
	// 奇数预算: 补一次独立试验
	if trials%2 == 1 {
		p, err := e.gen.Generate(src, buf)
		if err != nil {
			return err
		}
		acc.Record(e.discount * e.eval.Value(p))
	}
	return nil
}

func result(acc *welford.Accumulator) model.PricingResult {
	mean, stderr := acc.Finalize()
	return model.PricingResult{
		Trials: acc.Count(),
		Price:  mean,
		StdErr: stderr,
	}
}
