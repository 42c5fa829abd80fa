// Package importer describes the parameters an importer accepts, for the
// forms rendering them. Parameters are declared with options when the
// importer is defined, nothing is discovered at run time.
package importer

import (
	"math"
	"strings"
)

const (
	// LowestPrecedence orders a parameter or a group after every other one
	LowestPrecedence = math.MaxInt32

	DefaultGroupName            = "Miscellaneous"
	DefaultDescriptionDelimiter = "\n"
)

// GroupConfig places a parameter in a named section of the form.
// Smaller Order means higher on the page.
type GroupConfig struct {
	Name  string `json:"name" yaml:"name"`
	Order int    `json:"order" yaml:"order"`
}

func DefaultGroup() GroupConfig {
	return GroupConfig{Name: DefaultGroupName, Order: LowestPrecedence}
}

// ParameterConfig is the form metadata of one import parameter.
type ParameterConfig struct {
	Description              []string    `json:"description" yaml:"description"`
	DescriptionJoinDelimiter string      `json:"descriptionJoinDelimiter" yaml:"description_join_delimiter"`
	DisplayName              string      `json:"displayName" yaml:"display_name"`
	Group                    GroupConfig `json:"group" yaml:"group"`
	Optional                 bool        `json:"optional" yaml:"optional"`
	// Smaller number = higher in order in page
	Order int `json:"order" yaml:"order"`
	// Password marks the value as sensitive, forms mask it
	Password bool `json:"password" yaml:"password"`
	// Hidden parameters are left out of the described parameters
	Hidden bool `json:"hidden" yaml:"hidden"`
}

// JoinedDescription returns the description lines joined with the configured delimiter
func (c ParameterConfig) JoinedDescription() string {
	return strings.Join(c.Description, c.DescriptionJoinDelimiter)
}

// Parameter is a named import parameter with its form configuration
type Parameter struct {
	Name   string
	Config ParameterConfig
}

// Option customizes a Parameter declared with NewParameter
type Option func(*ParameterConfig)

// NewParameter declares a parameter, unset options keep their defaults:
// display name = name, default group, lowest precedence, "\n" delimiter.
func NewParameter(name string, opts ...Option) Parameter {
	cfg := ParameterConfig{
		DescriptionJoinDelimiter: DefaultDescriptionDelimiter,
		Group:                    DefaultGroup(),
		Order:                    LowestPrecedence,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DisplayName == "" {
		cfg.DisplayName = name
	}
	return Parameter{Name: name, Config: cfg}
}

// WithDescription sets the description, one element per line
func WithDescription(lines ...string) Option {
	return func(c *ParameterConfig) {
		c.Description = append([]string(nil), lines...)
	}
}

func WithDescriptionJoinDelimiter(delimiter string) Option {
	return func(c *ParameterConfig) {
		c.DescriptionJoinDelimiter = delimiter
	}
}

func WithDisplayName(name string) Option {
	return func(c *ParameterConfig) {
		c.DisplayName = name
	}
}

// WithGroup sets the group, an empty name keeps the default group name
func WithGroup(name string, order int) Option {
	return func(c *ParameterConfig) {
		if name == "" {
			name = DefaultGroupName
		}
		c.Group = GroupConfig{Name: name, Order: order}
	}
}

func WithOrder(order int) Option {
	return func(c *ParameterConfig) {
		c.Order = order
	}
}

func Optional() Option {
	return func(c *ParameterConfig) {
		c.Optional = true
	}
}

func Password() Option {
	return func(c *ParameterConfig) {
		c.Password = true
	}
}

func Hidden() Option {
	return func(c *ParameterConfig) {
		c.Hidden = true
	}
}
