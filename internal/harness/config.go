package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// MaxElements 是单个场景最多使用的元素个数，同时是未指定容量时的默认容量
const MaxElements = 20

type Config struct {
	Name      string           `mapstructure:"name"`
	Workers   int              `mapstructure:"workers"`
	DataDir   string           `mapstructure:"data_dir"` // 场景 data_file 的相对路径以此为根，本身相对于配置文件所在目录
	Report    ReportConfig     `mapstructure:"report"`
	Scenarios []ScenarioConfig `mapstructure:"scenarios"`
}

type ReportConfig struct {
	Format string `mapstructure:"format"` // json | msgpack | yaml
	Output string `mapstructure:"output"` // 为空时写到标准输出
}

type ScenarioConfig struct {
	Name     string `mapstructure:"name"`
	Group    string `mapstructure:"group"`
	Check    string `mapstructure:"check"`
	Kind     string `mapstructure:"kind"`
	Against  string `mapstructure:"against"`  // equal/concat 中另一侧的栈类型，默认 dynamic
	Capacity int    `mapstructure:"capacity"` // 0 表示 MaxElements
	Side     int    `mapstructure:"side"`     // 仅 dual 使用
	Elements []int  `mapstructure:"elements"`
	Extra    []int  `mapstructure:"extra"` // concat 的源元素
	DataFile string `mapstructure:"data_file"`
}

var flagKeys = map[string]string{
	"format":  "report.format",
	"output":  "report.output",
	"workers": "workers",
}

// Load 读取配置文件。path 为空时按环境变量 env 在当前目录查找 stackcheck.<env>.yaml，
// flags 中被显式设置的 format/output/workers 覆盖配置文件。
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("name", "stackcheck")
	v.SetDefault("workers", 4)
	v.SetDefault("report.format", FormatJSON)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		name := "stackcheck"
		if env := os.Getenv("env"); env != "" {
			name = fmt.Sprintf("stackcheck.%s", env)
		}
		v.SetConfigName(name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, errors.Wrap(err, "配置文件未找到")
		}
		return nil, errors.Wrap(err, "读取配置文件出错")
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "无法解析配置文件")
	}
	// 相对的 data_dir 以配置文件所在目录为根，而不是当前工作目录
	if !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(filepath.Dir(v.ConfigFileUsed()), cfg.DataDir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().Any("config", cfg).Msg("配置加载完成")
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}
	if _, err := MarshalerFor(c.Report.Format); err != nil {
		return err
	}
	if len(c.Scenarios) == 0 {
		return errors.New("no scenarios configured")
	}
	seen := make(map[string]bool, len(c.Scenarios))
	for i := range c.Scenarios {
		sc := &c.Scenarios[i]
		if err := sc.normalize(); err != nil {
			return errors.Wrapf(err, "scenario %d (%s)", i, sc.Name)
		}
		if seen[sc.Name] {
			return errors.Errorf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = true
	}
	return nil
}

func (sc *ScenarioConfig) normalize() error {
	if sc.Name == "" {
		return errors.New("name is required")
	}
	if _, ok := checks[sc.Check]; !ok {
		return errors.Errorf("unknown check %q", sc.Check)
	}
	if !slices.Contains(kinds, sc.Kind) {
		return errors.Errorf("unknown kind %q", sc.Kind)
	}
	if allowed, ok := checkKinds[sc.Check]; ok && !slices.Contains(allowed, sc.Kind) {
		return errors.Errorf("check %q does not apply to kind %q", sc.Check, sc.Kind)
	}
	if sc.Against == "" {
		sc.Against = KindDynamic
	}
	if !slices.Contains(kinds, sc.Against) {
		return errors.Errorf("unknown against kind %q", sc.Against)
	}
	if sc.Capacity < 0 {
		return errors.Errorf("capacity %d is negative", sc.Capacity)
	}
	if sc.Capacity == 0 {
		sc.Capacity = MaxElements
	}
	if sc.Side != 0 && sc.Side != 1 {
		return errors.Errorf("side %d is neither 0 nor 1", sc.Side)
	}
	if len(sc.Elements) > 0 && sc.DataFile != "" {
		return errors.New("elements and data_file are mutually exclusive")
	}
	if len(sc.Elements) > MaxElements || len(sc.Extra) > MaxElements {
		return errors.Errorf("at most %d elements per scenario", MaxElements)
	}
	return nil
}
