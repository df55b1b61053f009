// Package random 提供标准正态随机数流。
// 流状态显式持有，单调推进，禁止任何全局可变状态，
// 以保证重复运行与并行分区的可复现性。
package random

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Stream 标准正态随机数流
// 包装一个显式种子的均匀源，经 gonum 的正态分布变换输出 N(0, 1) 抽样。
// 非并发安全：并行运行时每个 worker 必须持有私有 Stream。
type Stream struct {
	normal distuv.Normal
}

// NewStream 以给定种子创建随机数流
func NewStream(seed uint64) *Stream {
	return &Stream{
		normal: distuv.Normal{
			Mu:    0,
			Sigma: 1,
			Src:   rand.NewSource(seed),
		},
	}
}

// NextNormal 返回一个 N(0, 1) 抽样
func (s *Stream) NextNormal() float64 {
	return s.normal.Rand()
}

// NextAntitheticPair 返回一对对偶抽样 (z, -z)
// 仅消耗一次底层均匀抽样，两者之和恒为零。
func (s *Stream) NextAntitheticPair() (float64, float64) {
	z := s.normal.Rand()
	return z, -z
}
