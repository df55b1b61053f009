// Package welford 统计累加器属性测试
package welford

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"gonum.org/v1/gonum/stat"
)

func approx(a, b, tol float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol*scale
}

// TestAccumulator_OracleProperty 增量统计与两遍扫描基准一致
func TestAccumulator_OracleProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 80
	properties := gopter.NewProperties(parameters)

	properties.Property("与 gonum 两遍扫描统计一致", prop.ForAll(
		func(vals []float64) bool {
			if len(vals) < 2 {
				return true
			}
			var a Accumulator
			for _, v := range vals {
				a.Record(v)
			}

			wantMean := stat.Mean(vals, nil)
			wantVar := stat.Variance(vals, nil)
			wantSE := math.Sqrt(wantVar / float64(len(vals)))

			return approx(a.Mean(), wantMean, 1e-9) &&
				approx(a.Variance(), wantVar, 1e-9) &&
				approx(a.StdErr(), wantSE, 1e-9)
		},
		gen.SliceOf(gen.Float64Range(-1e6, 1e6)),
	))

	properties.TestingRun(t)
}

// TestMerge_SplitProperty 任意切分点合并等价于整体累加
// 并行方差合并公式的正确性保证了分区执行与单线程在分布意义上一致
func TestMerge_SplitProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 80
	properties := gopter.NewProperties(parameters)

	properties.Property("任意切分合并与整体一致", prop.ForAll(
		func(vals []float64, splitSeed int) bool {
			if len(vals) < 2 {
				return true
			}
			split := splitSeed % len(vals)
			if split < 0 {
				split += len(vals)
			}

			var left, right, whole Accumulator
			for i, v := range vals {
				if i < split {
					left.Record(v)
				} else {
					right.Record(v)
				}
				whole.Record(v)
			}

			left.Merge(right)
			return left.Count() == whole.Count() &&
				approx(left.Mean(), whole.Mean(), 1e-9) &&
				approx(left.Variance(), whole.Variance(), 1e-9)
		},
		gen.SliceOf(gen.Float64Range(-1e4, 1e4)),
		gen.Int(),
	))

	properties.TestingRun(t)
}
