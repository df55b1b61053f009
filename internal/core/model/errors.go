// Package model 定义定价核心中使用的数据结构。
package model

import "errors"

// 定价请求的验证错误分类。
// 全部在模拟开始前检测（fail fast），调用方用 errors.Is 区分。
var (
	// ErrInvalidMarketParams 市场参数非法（现价/波动率非正等）
	ErrInvalidMarketParams = errors.New("市场参数非法")
	// ErrInvalidSchedule 观察日程非法（为空、非严格递增或 Δt 非正）
	ErrInvalidSchedule = errors.New("观察日程非法")
	// ErrInvalidPayoffSpec 收益结构非法（行权价非正、障碍组合无法识别等）
	ErrInvalidPayoffSpec = errors.New("收益结构非法")
	// ErrInsufficientTrials 试验次数不足（标准误差至少需要 2 个样本）
	ErrInsufficientTrials = errors.New("试验次数不足")
)
