package jsonfmt

import (
	"github.com/lk2023060901/rentit-go/pkg/util/merr"
)

const (
	// DefaultMaxDepth 为默认允许的最大记录嵌套层数（顶层记录计为第 1 层）。
	DefaultMaxDepth = 64
	// MaxDepthLimit 为 MaxDepth 可配置的上限。
	MaxDepthLimit = 1024
)

// Config 是 Serializer 的配置，对应配置文件中的 jsonfmt 段。
type Config struct {
	// MaxDepth 限制嵌套记录的层数，超过时返回 merr.ErrRecursionTooDeep。
	MaxDepth int `mapstructure:"maxDepth" json:"maxDepth"`
	// CheckNested 为 true 时嵌套记录同样需要在注册表中登记。
	CheckNested bool `mapstructure:"checkNested" json:"checkNested"`
	// EscapeHTML 为 true 时字符串中的 <、>、& 以及 U+2028/U+2029 会被转义，
	// 非法 UTF-8 会被替换为 U+FFFD。
	EscapeHTML bool `mapstructure:"escapeHTML" json:"escapeHTML"`
	// VerifyOutput 为 true 时每次输出前用 JSON 解析器校验一遍。
	VerifyOutput bool `mapstructure:"verifyOutput" json:"verifyOutput"`
}

// DefaultConfig 返回默认配置。
func DefaultConfig() Config {
	return Config{
		MaxDepth:     DefaultMaxDepth,
		CheckNested:  true,
		EscapeHTML:   true,
		VerifyOutput: false,
	}
}

// Validate 校验配置是否合法。
func (c Config) Validate() error {
	if c.MaxDepth < 1 || c.MaxDepth > MaxDepthLimit {
		return merr.WrapErrParameterInvalidRange(1, MaxDepthLimit, c.MaxDepth, "jsonfmt.maxDepth")
	}
	return nil
}

// Option 用于定制 Serializer。
type Option func(*Config)

// WithConfig 整体替换配置。
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

func WithMaxDepth(depth int) Option {
	return func(c *Config) {
		c.MaxDepth = depth
	}
}

func WithNestedCheck(enabled bool) Option {
	return func(c *Config) {
		c.CheckNested = enabled
	}
}

func WithEscapeHTML(enabled bool) Option {
	return func(c *Config) {
		c.EscapeHTML = enabled
	}
}

func WithVerifyOutput(enabled bool) Option {
	return func(c *Config) {
		c.VerifyOutput = enabled
	}
}
