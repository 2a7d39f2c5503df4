package gen

import "maps"

// Option configures resolution and code generation.
type Option func(*Config) error

// WithTarget sets the output directory for generated files.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the generated package name.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithWorkers sets the number of parallel generation workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "worker count must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithPruneTo restricts resolution to the given class names. Types
// outside the allow-list that are neither primitives nor already
// resolved are filtered from field expressions and replaced by the
// open Any alternative.
func WithPruneTo(names ...string) Option {
	return func(c *Config) error {
		c.PruneTo = append(c.PruneTo, names...)
		return nil
	}
}

// WithGreedy follows every referenced type regardless of the requested
// root set, disabling pruning.
func WithGreedy() Option {
	return func(c *Config) error {
		c.Greedy = true
		return nil
	}
}

// WithSkipFormat skips the goimports pass over generated files.
func WithSkipFormat() Option {
	return func(c *Config) error {
		c.SkipFormat = true
		return nil
	}
}

// WithTypeMap overrides entries of the default primitive mapping.
func WithTypeMap(m map[string]string) Option {
	return func(c *Config) error {
		if c.TypeMap == nil {
			c.TypeMap = make(map[string]string, len(m))
		}
		maps.Copy(c.TypeMap, m)
		return nil
	}
}

// WithSpecificity overrides entries of the default specificity ranking.
func WithSpecificity(m map[string]int) Option {
	return func(c *Config) error {
		if c.Specificity == nil {
			c.Specificity = make(map[string]int, len(m))
		}
		maps.Copy(c.Specificity, m)
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}
