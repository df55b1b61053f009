// Package payoff 实现路径依赖收益的求值。
// 收益族是封闭的标签变体 {vanilla, asian, barrier}，在此处穷尽匹配。
package payoff

import (
	"fmt"

	"exotic-option-pricer/internal/core/model"
)

// Evaluator 收益求值器
// 纯函数式: 路径 -> 未贴现收益。贴现由引擎统一完成。
type Evaluator struct {
	spec model.PayoffSpec
}

// NewEvaluator 创建收益求值器
// 返回: 若收益结构非法则返回错误（fail fast）
func NewEvaluator(spec model.PayoffSpec) (*Evaluator, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{spec: spec}, nil
}

// Spec 收益结构定义
func (e *Evaluator) Spec() model.PayoffSpec {
	return e.spec
}

// Value 计算一条路径的未贴现收益
// 路径为观察价格 {S(t_1), ..., S(t_n)}，不得为空。
func (e *Evaluator) Value(prices []float64) float64 {
	switch e.spec.Kind {
	case model.KindVanilla:
		return e.intrinsic(prices[len(prices)-1])
	case model.KindAsian:
		sum := 0.0
		for _, s := range prices {
			sum += s
		}
		return e.intrinsic(sum / float64(len(prices)))
	case model.KindBarrier:
		return e.barrier(prices)
	}
	// Validate 保证 Kind 已知
	panic(fmt.Sprintf("未知收益类型: %s", e.spec.Kind))
}

// barrier 离散障碍收益
// 仅在观察日扫描障碍（区别于连续障碍，敲击概率显著更低）。
// 终端收益以 S(t_n) 结算。
func (e *Evaluator) barrier(prices []float64) float64 {
	knocked := false
	if e.spec.Direction == model.BarrierUp {
		for _, s := range prices {
			if s >= e.spec.Barrier {
				knocked = true
				break
			}
		}
	} else {
		for _, s := range prices {
			if s <= e.spec.Barrier {
				knocked = true
				break
			}
		}
	}

	active := knocked
	if e.spec.Knock == model.KnockOut {
		active = !knocked
	}
	if !active {
		return 0
	}
	return e.intrinsic(prices[len(prices)-1])
}

// intrinsic 给定结算价的内在价值
func (e *Evaluator) intrinsic(s float64) float64 {
	if e.spec.Right == model.RightCall {
		if s > e.spec.Strike {
			return s - e.spec.Strike
		}
		return 0
	}
	if s < e.spec.Strike {
		return e.spec.Strike - s
	}
	return 0
}
