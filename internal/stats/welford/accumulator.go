// Package welford 实现数值稳定的增量统计累加。
// O(1) 时间与空间维护样本数、均值与离差平方和，不保留原始样本，
// 大试验数下避免朴素 sum/sum² 形式的灾难性相消。
package welford

import "math"

// Accumulator 增量统计累加器
// 零值即可用。非并发安全：并行运行时每个 worker 持有私有累加器，
// 最后通过 Merge 合并。
type Accumulator struct {
	count int64
	mean  float64
	// m2 离差平方和 Σ(x_i - mean)²
	m2 float64
}

// Record 记录一个样本（Welford 更新）
func (a *Accumulator) Record(v float64) {
	a.count++
	delta := v - a.mean
	a.mean += delta / float64(a.count)
	a.m2 += delta * (v - a.mean)
}

// Merge 合并另一个累加器的部分统计（并行方差合并公式）
// 合并结果与单线程逐个 Record 在分布意义上一致。
func (a *Accumulator) Merge(b Accumulator) {
	if b.count == 0 {
		return
	}
	if a.count == 0 {
		*a = b
		return
	}
	n := float64(a.count + b.count)
	delta := b.mean - a.mean
	a.m2 += b.m2 + delta*delta*float64(a.count)*float64(b.count)/n
	a.mean += delta * float64(b.count) / n
	a.count += b.count
}

// Count 样本数
func (a *Accumulator) Count() int64 {
	return a.count
}

// Mean 样本均值
func (a *Accumulator) Mean() float64 {
	return a.mean
}

// Variance 无偏样本方差（n-1 分母）
// 样本数 <= 1 时返回 0
func (a *Accumulator) Variance() float64 {
	if a.count <= 1 {
		return 0
	}
	return a.m2 / float64(a.count-1)
}

// StdErr 标准误差 = 样本标准差 / √n
// 样本数 <= 1 时标准误差无定义，显式报告为 0（而非 NaN，
// NaN 会破坏下游 JSON 输出）。
func (a *Accumulator) StdErr() float64 {
	if a.count <= 1 {
		return 0
	}
	return math.Sqrt(a.Variance() / float64(a.count))
}

// Finalize 读出最终统计 (均值, 标准误差)
func (a *Accumulator) Finalize() (mean, stderr float64) {
	return a.Mean(), a.StdErr()
}
