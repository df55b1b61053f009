// Package model 定义定价核心中使用的数据结构。
package model

// PricingResult 单个试验预算下的定价结果
type PricingResult struct {
	// Trials 实际记录的贴现收益样本数
	Trials int64 `json:"trials"`
	// Price 贴现收益的样本均值
	Price float64 `json:"price"`
	// StdErr 标准误差 = 样本标准差 / sqrt(Trials)
	// Trials <= 1 时报告为 0
	StdErr float64 `json:"stderr"`
}
