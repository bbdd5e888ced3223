package box

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"

	"github.com/signadot/tony-format/box/ident"
	"github.com/signadot/tony-format/box/recast"
)

// ConfigSlot is the reserved attribute name under which a box exposes
// its configuration.
const ConfigSlot = "_box_config"

// RecastFunc coerces a value assigned to a key listed in the recast
// table.
type RecastFunc = recast.Func

// Config holds the policy of a box. It is fixed at construction and
// shared with the children the box creates.
type Config struct {
	// DefaultBox makes missing keys produce Default instead of failing.
	DefaultBox bool
	Default    Default
	// NoneTransform treats stored nil values as missing when DefaultBox
	// is set: they are dropped at construction and read as the default.
	NoneTransform bool
	// Conversion allows attribute access through normalized key names.
	Conversion   bool
	SafePrefix   string
	Frozen       bool
	CamelKiller  bool
	ModifyTuples bool
	Duplicates   ident.Policy
	// Dots enables dotted path keys such as "a.b[0].c".
	Dots   bool
	Recast map[any]RecastFunc
	// IntactTypes lists raw types never wrapped into boxes or lists.
	IntactTypes []reflect.Type
	// NoPropagate gives children a default configuration instead of
	// this one.
	NoPropagate bool
	Logger      *slog.Logger
	OnWarning   func(error)
	OnChange    func(Change) error
}

// DefaultConfig returns the configuration used when no options are
// given.
func DefaultConfig() Config {
	return Config{
		Default:       SelfKind(),
		NoneTransform: true,
		Conversion:    true,
		SafePrefix:    ident.DefaultPrefix,
	}
}

func (c *Config) validate() error {
	if !ident.ValidPrefix(c.SafePrefix) {
		return fmt.Errorf("%w: safe prefix %q is not an identifier prefix", ErrConstruction, c.SafePrefix)
	}
	if c.Duplicates != ident.Ignore && !c.Conversion {
		return fmt.Errorf("%w: duplicate checks need conversion", ErrConstruction)
	}
	return nil
}

func (c *Config) namer() ident.Namer {
	return ident.Namer{CamelKiller: c.CamelKiller, Prefix: c.SafePrefix}
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Config) intact(v any) bool {
	if len(c.IntactTypes) == 0 || v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	for _, it := range c.IntactTypes {
		if t == it {
			return true
		}
	}
	return false
}

// child returns the configuration handed to boxes and lists created
// under a node with configuration c.
func (c *Config) child() *Config {
	if !c.NoPropagate {
		return c
	}
	d := DefaultConfig()
	d.Logger = c.Logger
	d.OnWarning = c.OnWarning
	return &d
}

func (c Config) clone() Config {
	c.Recast = maps.Clone(c.Recast)
	c.IntactTypes = append([]reflect.Type(nil), c.IntactTypes...)
	return c
}

// Option sets a configuration field.
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option {
	return func(cfg *Config) { *cfg = c.clone() }
}

func DefaultBox() Option {
	return func(c *Config) { c.DefaultBox = true }
}

// DefaultValue sets what missing keys produce in default mode. It
// implies DefaultBox.
func DefaultValue(d Default) Option {
	return func(c *Config) {
		c.DefaultBox = true
		c.Default = d
	}
}

func NoneTransform(v bool) Option {
	return func(c *Config) { c.NoneTransform = v }
}

func Conversion(v bool) Option {
	return func(c *Config) { c.Conversion = v }
}

func SafePrefix(p string) Option {
	return func(c *Config) { c.SafePrefix = p }
}

func Frozen() Option {
	return func(c *Config) { c.Frozen = true }
}

func CamelKiller() Option {
	return func(c *Config) { c.CamelKiller = true }
}

// ModifyTuples rebuilds tuples and arrays so that mappings inside them
// become boxes.
func ModifyTuples() Option {
	return func(c *Config) { c.ModifyTuples = true }
}

func Duplicates(p ident.Policy) Option {
	return func(c *Config) { c.Duplicates = p }
}

func Dots() Option {
	return func(c *Config) { c.Dots = true }
}

// Recast registers fn as the coercion for values assigned to key.
func Recast(key any, fn RecastFunc) Option {
	return func(c *Config) {
		c.Recast = maps.Clone(c.Recast)
		if c.Recast == nil {
			c.Recast = map[any]RecastFunc{}
		}
		c.Recast[key] = fn
	}
}

func IntactTypes(ts ...reflect.Type) Option {
	return func(c *Config) { c.IntactTypes = append(c.IntactTypes, ts...) }
}

func NoPropagate() Option {
	return func(c *Config) { c.NoPropagate = true }
}

func Logger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// OnWarning receives duplicate key warnings in addition to the logger.
func OnWarning(f func(error)) Option {
	return func(c *Config) { c.OnWarning = f }
}

// OnChange receives a Change for every mutation of the box or of any
// box or list below it. Errors are logged and otherwise ignored.
func OnChange(f func(Change) error) Option {
	return func(c *Config) { c.OnChange = f }
}

func makeConfig(opts []Option) (*Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
