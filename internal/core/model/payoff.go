// Package model 定义定价核心中使用的数据结构。
package model

import "fmt"

// PayoffKind 收益结构类型
type PayoffKind string

const (
	// KindVanilla 欧式香草期权，收益取决于终端价格 S(t_n)
	KindVanilla PayoffKind = "vanilla"
	// KindAsian 算术平均亚式期权，收益取决于观察价格的算术平均
	KindAsian PayoffKind = "asian"
	// KindBarrier 离散障碍期权，仅在观察日检查障碍是否触及
	KindBarrier PayoffKind = "barrier"
)

// OptionRight 期权权利类型
type OptionRight string

const (
	// RightCall 看涨
	RightCall OptionRight = "call"
	// RightPut 看跌
	RightPut OptionRight = "put"
)

// BarrierDirection 障碍方向
type BarrierDirection string

const (
	// BarrierUp 上行障碍: 任一 S(t_i) >= B 即触及
	BarrierUp BarrierDirection = "up"
	// BarrierDown 下行障碍: 任一 S(t_i) <= B 即触及
	BarrierDown BarrierDirection = "down"
)

// BarrierKnock 障碍敲击类型
type BarrierKnock string

const (
	// KnockIn 敲入: 至少触及一次才支付终端收益
	KnockIn BarrierKnock = "in"
	// KnockOut 敲出: 从未触及才支付终端收益
	KnockOut BarrierKnock = "out"
)

// PayoffSpec 收益结构定义（封闭标签变体）
// 单次定价运行内不可变。Barrier/Direction/Knock 仅在 Kind 为 barrier 时有意义。
type PayoffSpec struct {
	// Kind 收益结构类型: vanilla, asian, barrier
	Kind PayoffKind
	// Right 期权权利: call, put
	Right OptionRight
	// Strike 行权价 K，必须为正
	Strike float64
	// Barrier 障碍价 B（仅 barrier）
	Barrier float64
	// Direction 障碍方向: up, down（仅 barrier）
	Direction BarrierDirection
	// Knock 敲击类型: in, out（仅 barrier）
	Knock BarrierKnock
}

// Validate 验证收益结构合法性
func (p PayoffSpec) Validate() error {
	switch p.Kind {
	case KindVanilla, KindAsian, KindBarrier:
	default:
		return fmt.Errorf("%w: 未知类型 '%s'", ErrInvalidPayoffSpec, p.Kind)
	}
	switch p.Right {
	case RightCall, RightPut:
	default:
		return fmt.Errorf("%w: 未知权利类型 '%s'", ErrInvalidPayoffSpec, p.Right)
	}
	if p.Strike <= 0 {
		return fmt.Errorf("%w: 行权价必须为正，当前值 %f", ErrInvalidPayoffSpec, p.Strike)
	}
	if p.Kind == KindBarrier {
		if p.Barrier <= 0 {
			return fmt.Errorf("%w: 障碍价必须为正，当前值 %f", ErrInvalidPayoffSpec, p.Barrier)
		}
		switch p.Direction {
		case BarrierUp, BarrierDown:
		default:
			return fmt.Errorf("%w: 未知障碍方向 '%s'", ErrInvalidPayoffSpec, p.Direction)
		}
		switch p.Knock {
		case KnockIn, KnockOut:
		default:
			return fmt.Errorf("%w: 未知敲击类型 '%s'", ErrInvalidPayoffSpec, p.Knock)
		}
	}
	return nil
}
