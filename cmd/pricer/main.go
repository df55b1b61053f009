// Package main 是奇异期权蒙特卡洛定价器的入口点。
// 在对数正态（几何布朗运动）模型下对算术亚式与离散障碍期权做
// 蒙特卡洛定价，并在递增的试验次数检查点上输出 (均值, 标准误差)
// 以展示收敛性。香草期权作为对照基准一并支持。
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"exotic-option-pricer/internal/config"
	"exotic-option-pricer/internal/core/model"
	"exotic-option-pricer/internal/core/random"
	"exotic-option-pricer/internal/engine"
	"exotic-option-pricer/internal/output/jsonl"
)

// resultRecord 结果文件中的一条 JSONL 记录
type resultRecord struct {
	// TsUnixNs 记录时间（纳秒）
	TsUnixNs int64 `json:"ts_unix_ns"`
	// Label 场景标签
	Label string `json:"label"`
	// Antithetic 是否启用对偶变量
	Antithetic bool `json:"antithetic"`
	// Workers 并行 worker 数
	Workers int `json:"workers"`
	// Result 定价结果
	Result model.PricingResult `json:"result"`
	// ElapsedMs 本检查点耗时（毫秒）
	ElapsedMs float64 `json:"elapsed_ms"`
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.App.LogLevel)
	defer logger.Sync()

	var resultsWriter *jsonl.Writer
	if cfg.Output.ResultsEnabled {
		resultsWriter, err = jsonl.NewWriter(fmt.Sprintf("%s/results.jsonl", cfg.Output.Dir), cfg.Output.BufferSize)
		if err != nil {
			logger.Error("创建 results writer 失败", zap.Error(err))
			os.Exit(1)
		}
		defer resultsWriter.Close()
	}

	antithetic := cfg.Pricing.UseAntithetic()
	logger.Info("开始定价",
		zap.String("app", cfg.App.Name),
		zap.Int("scenarios", len(cfg.Scenarios)),
		zap.Int64s("checkpoints", cfg.Pricing.TrialCheckpoints),
		zap.Bool("antithetic", antithetic),
		zap.Int("workers", cfg.Pricing.Workers),
	)

	for _, sc := range cfg.Scenarios {
		schedule, err := sc.Schedule.Build()
		if err != nil {
			logger.Error("构建观察日程失败", zap.String("label", sc.Label), zap.Error(err))
			os.Exit(1)
		}

		eng, err := engine.New(cfg.MarketFor(sc), schedule, sc.Payoff.ToModel())
		if err != nil {
			logger.Error("创建定价引擎失败", zap.String("label", sc.Label), zap.Error(err))
			os.Exit(1)
		}

		// 每个检查点用 基准种子+检查点序号 独立重播（独立抽样，非嵌套超集）
		for ci, trials := range cfg.Pricing.TrialCheckpoints {
			seed := cfg.Pricing.Seed + uint64(ci)

			start := time.Now()
			var res model.PricingResult
			if cfg.Pricing.Workers > 1 {
				res, err = eng.PriceParallel(seed, cfg.Pricing.Workers, trials, antithetic)
			} else {
				res, err = eng.Price(random.NewStream(seed), trials, antithetic)
			}
			if err != nil {
				logger.Error("定价失败", zap.String("label", sc.Label), zap.Int64("trials", trials), zap.Error(err))
				os.Exit(1)
			}
			elapsed := time.Since(start)

			fmt.Printf("%s = %.4f +- %.4f with %d trials\n", sc.Label, res.Price, res.StdErr, res.Trials)
			logger.Info("检查点完成",
				zap.String("label", sc.Label),
				zap.Int64("trials", res.Trials),
				zap.Float64("price", res.Price),
				zap.Float64("stderr", res.StdErr),
				zap.Duration("elapsed", elapsed),
			)

			if resultsWriter != nil {
				rec := resultRecord{
					TsUnixNs:   time.Now().UnixNano(),
					Label:      sc.Label,
					Antithetic: antithetic,
					Workers:    cfg.Pricing.Workers,
					Result:     res,
					ElapsedMs:  float64(elapsed.Microseconds()) / 1000,
				}
				if err := resultsWriter.Write(rec); err != nil {
					logger.Warn("写入结果失败", zap.Error(err))
				}
				_ = resultsWriter.Flush()
			}
		}
	}

	logger.Info("定价完成")
}

func newLogger(level string) *zap.Logger {
	lvl := zapcore.InfoLevel
	if err := lvl.Set(level); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
