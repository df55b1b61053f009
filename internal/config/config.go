// Package config 负责加载和验证 YAML 配置文件。
// 提供定价运行所需的所有配置项，包括市场参数、定价场景、试验预算等。
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"exotic-option-pricer/internal/core/model"
)

// Config 应用配置根结构
// 包含所有子模块的配置项
type Config struct {
	// App 应用基础配置
	App AppConfig `yaml:"app"`
	// Pricing 蒙特卡洛定价配置
	Pricing PricingConfig `yaml:"pricing"`
	// Market 默认市场参数（场景可单独覆盖）
	Market MarketConfig `yaml:"market"`
	// Scenarios 定价场景列表
	Scenarios []ScenarioConfig `yaml:"scenarios"`
	// Output 输出配置
	Output OutputConfig `yaml:"output"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	// Name 应用名称，用于日志标识
	Name string `yaml:"name"`
	// LogLevel 日志级别: debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

// PricingConfig 蒙特卡洛定价配置
type PricingConfig struct {
	// Seed 基准种子；每个检查点使用 seed + 检查点序号 独立重播
	Seed uint64 `yaml:"seed"`
	// Antithetic 是否启用对偶变量方差缩减（缺省启用）
	Antithetic *bool `yaml:"antithetic"`
	// Workers 并行 worker 数，<= 1 为串行
	Workers int `yaml:"workers"`
	// TrialCheckpoints 试验次数检查点，如 [10000, 100000, 1000000]
	TrialCheckpoints []int64 `yaml:"trial_checkpoints"`
}

// UseAntithetic 是否启用对偶变量
func (p PricingConfig) UseAntithetic() bool {
	return p.Antithetic == nil || *p.Antithetic
}

// MarketConfig 市场参数配置
type MarketConfig struct {
	// Spot 标的现价 S0
	Spot float64 `yaml:"spot"`
	// Rate 无风险利率 r（连续复利，年化）
	Rate float64 `yaml:"rate"`
	// DividendYield 股息率 d（连续复利，年化）
	DividendYield float64 `yaml:"dividend_yield"`
	// Vol 波动率 σ（年化）
	Vol float64 `yaml:"vol"`
}

// ToModel 转换为领域模型
func (m MarketConfig) ToModel() model.MarketParams {
	return model.MarketParams{
		Spot:          m.Spot,
		Rate:          m.Rate,
		DividendYield: m.DividendYield,
		Vol:           m.Vol,
	}
}

// ScenarioConfig 单个定价场景
type ScenarioConfig struct {
	// Label 场景标签，用于结果输出，如 "(i) asian monthly"
	Label string `yaml:"label"`
	// Market 市场参数覆盖（为空时使用顶层默认）
	Market *MarketConfig `yaml:"market"`
	// Schedule 观察日程
	Schedule ScheduleConfig `yaml:"schedule"`
	// Payoff 收益结构
	Payoff PayoffConfig `yaml:"payoff"`
}

// ScheduleConfig 观察日程配置
// 二选一: 显式给出 times，或给出 observations + maturity 等间隔展开。
type ScheduleConfig struct {
	// Times 显式观察时间列表（年），严格递增且全部为正
	Times []float64 `yaml:"times"`
	// Observations 等间隔观察次数
	Observations int `yaml:"observations"`
	// Maturity 到期时间 T（年），与 observations 配合使用
	Maturity float64 `yaml:"maturity"`
}

// Build 构造领域模型的观察日程
func (s ScheduleConfig) Build() (model.Schedule, error) {
	if len(s.Times) > 0 {
		sched := model.Schedule(s.Times)
		if err := sched.Validate(); err != nil {
			return nil, err
		}
		return sched, nil
	}
	return model.EquallySpaced(s.Observations, s.Maturity)
}

// PayoffConfig 收益结构配置
type PayoffConfig struct {
	// Kind 收益类型: vanilla, asian, barrier
	Kind string `yaml:"kind"`
	// Right 期权权利: call, put
	Right string `yaml:"right"`
	// Strike 行权价 K
	Strike float64 `yaml:"strike"`
	// Barrier 障碍价 B（仅 barrier）
	Barrier float64 `yaml:"barrier"`
	// Direction 障碍方向: up, down（仅 barrier）
	Direction string `yaml:"direction"`
	// Knock 敲击类型: in, out（仅 barrier）
	Knock string `yaml:"knock"`
}

// ToModel 转换为领域模型
func (p PayoffConfig) ToModel() model.PayoffSpec {
	return model.PayoffSpec{
		Kind:      model.PayoffKind(p.Kind),
		Right:     model.OptionRight(p.Right),
		Strike:    p.Strike,
		Barrier:   p.Barrier,
		Direction: model.BarrierDirection(p.Direction),
		Knock:     model.BarrierKnock(p.Knock),
	}
}

// OutputConfig 输出配置
type OutputConfig struct {
	// Dir 输出目录
	Dir string `yaml:"dir"`
	// ResultsEnabled 是否输出结果 JSONL 文件
	ResultsEnabled bool `yaml:"results_enabled"`
	// BufferSize 写入缓冲区大小（字节）
	BufferSize int `yaml:"buffer_size"`
}

// Load 从文件加载配置并验证
// 参数 path: 配置文件路径
// 返回: 解析后的配置对象，若失败则返回错误
func Load(path string) (*Config, error) {
	// 读取配置文件
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析 YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 设置默认值
	cfg.setDefaults()

	// 验证配置
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return &cfg, nil
}

// setDefaults 设置配置默认值
func (c *Config) setDefaults() {
	// 应用默认值
	if c.App.Name == "" {
		c.App.Name = "exotic-option-pricer"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}

	// 定价默认值
	if c.Pricing.Seed == 0 {
		c.Pricing.Seed = 42
	}
	if c.Pricing.Workers == 0 {
		c.Pricing.Workers = 1
	}
	if len(c.Pricing.TrialCheckpoints) == 0 {
		c.Pricing.TrialCheckpoints = []int64{10_000, 100_000, 1_000_000}
	}

	// 输出默认值
	if c.Output.Dir == "" {
		c.Output.Dir = "./output"
	}
	if c.Output.BufferSize == 0 {
		c.Output.BufferSize = 1 << 16
	}
}

// Validate 验证配置合法性
// 检查所有必填项和数值范围，收集全部违规后统一返回
func (c *Config) Validate() error {
	var errs []string

	// 验证定价配置
	for i, n := range c.Pricing.TrialCheckpoints {
		if n < 2 {
			errs = append(errs, fmt.Sprintf("pricing.trial_checkpoints[%d]: 试验次数必须 >= 2，当前值 %d", i, n))
		}
	}
	if c.Pricing.Workers < 0 {
		errs = append(errs, "pricing.workers: worker 数不能为负数")
	}

	// 验证默认市场参数
	if err := c.Market.ToModel().Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("market: %v", err))
	}

	// 验证场景配置
	if len(c.Scenarios) == 0 {
		errs = append(errs, "scenarios: 至少需要配置一个定价场景")
	}
	for i, sc := range c.Scenarios {
		if sc.Label == "" {
			errs = append(errs, fmt.Sprintf("scenarios[%d].label: 场景标签不能为空", i))
		}
		if sc.Market != nil {
			if err := sc.Market.ToModel().Validate(); err != nil {
				errs = append(errs, fmt.Sprintf("scenarios[%d].market: %v", i, err))
			}
		}
		if len(sc.Schedule.Times) > 0 && sc.Schedule.Observations > 0 {
			errs = append(errs, fmt.Sprintf("scenarios[%d].schedule: times 与 observations 只能二选一", i))
		}
		if _, err := sc.Schedule.Build(); err != nil {
			errs = append(errs, fmt.Sprintf("scenarios[%d].schedule: %v", i, err))
		}
		if err := sc.Payoff.ToModel().Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("scenarios[%d].payoff: %v", i, err))
		}
	}

	// 验证日志级别
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.App.LogLevel)] {
		errs = append(errs, fmt.Sprintf("app.log_level: 无效的日志级别 '%s'，有效值: debug, info, warn, error", c.App.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("配置验证错误:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// MarketFor 获取场景生效的市场参数（场景覆盖优先于顶层默认）
func (c *Config) MarketFor(sc ScenarioConfig) model.MarketParams {
	if sc.Market != nil {
		return sc.Market.ToModel()
	}
	return c.Market.ToModel()
}
