package model

import (
	"strings"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/property"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
)

// Definition is the immutable description of a model type: its kind,
// properties, rules, extension hooks and persistence settings. Every
// instance of the type shares it.
type Definition struct {
	name       string
	kind       Kind
	props      *property.List
	rules      *rules.Manager
	ext        Extensions
	item       *Definition
	daoName    string
	dataSource string
}

type definitionConfig struct {
	props      []*property.Definition
	rules      []rules.Any
	noAccess   rules.NoAccessBehavior
	ext        Extensions
	item       *Definition
	daoName    string
	dataSource string
}

// DefinitionOption configures NewDefinition.
type DefinitionOption func(*definitionConfig)

// WithProperties declares the properties of an object model.
func WithProperties(defs ...*property.Definition) DefinitionOption {
	return func(c *definitionConfig) { c.props = append(c.props, defs...) }
}

// WithRules adds validation and authorization rules.
func WithRules(rs ...rules.Any) DefinitionOption {
	return func(c *definitionConfig) { c.rules = append(c.rules, rs...) }
}

// WithNoAccessBehavior sets the policy for actions no authorization rule
// mentions. The default allows them.
func WithNoAccessBehavior(b rules.NoAccessBehavior) DefinitionOption {
	return func(c *definitionConfig) { c.noAccess = b }
}

// WithExtensions installs custom transfer and data access hooks.
func WithExtensions(ext Extensions) DefinitionOption {
	return func(c *definitionConfig) { c.ext = ext }
}

// WithItem sets the item model of a collection.
func WithItem(item *Definition) DefinitionOption {
	return func(c *definitionConfig) { c.item = item }
}

// WithDAO names the DAO used by the type. It defaults to the model name.
func WithDAO(name string) DefinitionOption {
	return func(c *definitionConfig) { c.daoName = name }
}

// WithDataSource pins the data source. Without it the environment's
// default data source is used.
func WithDataSource(name string) DefinitionOption {
	return func(c *definitionConfig) { c.dataSource = name }
}

// NewDefinition builds a model type. It checks that collections have an
// item model of the matching kind and that every child property nests a
// kind the whitelist allows under kind.
func NewDefinition(name string, kind Kind, opts ...DefinitionOption) (*Definition, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &domain.ConstructorError{Type: "model.Definition", Argument: "name", Message: "must not be empty"}
	}
	if !kind.IsValid() {
		return nil, &domain.ConstructorError{Type: "model.Definition", Argument: "kind", Message: name + ": unknown kind"}
	}

	var cfg definitionConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if kind.IsCollection() {
		if cfg.item == nil {
			return nil, &domain.ConstructorError{Type: "model.Definition", Argument: "item", Message: name + ": collections need an item model"}
		}
		if cfg.item.kind != kind.itemKind() {
			return nil, &domain.ModelError{Model: name, Message: kind.String() + " items must be " + kind.itemKind().String() + ", got " + cfg.item.kind.String()}
		}
		if len(cfg.props) > 0 {
			return nil, &domain.ConstructorError{Type: "model.Definition", Argument: "props", Message: name + ": collections have no properties"}
		}
	}

	props, err := property.NewList(cfg.props...)
	if err != nil {
		return nil, err
	}
	for _, p := range props.Children() {
		child, ok := p.Child().(*Definition)
		if !ok {
			return nil, &domain.ConstructorError{Type: "model.Definition", Argument: "props", Message: name + "." + p.Name() + ": child type is not a model definition"}
		}
		if !child.kind.CanBeChildOf(kind) {
			return nil, &domain.ModelError{Model: name, Message: "property " + p.Name() + ": " + child.kind.String() + " cannot be a child of " + kind.String()}
		}
	}

	mgr, err := rules.NewManager(cfg.noAccess, cfg.rules...)
	if err != nil {
		return nil, err
	}

	d := &Definition{
		name:       name,
		kind:       kind,
		props:      props,
		rules:      mgr,
		ext:        cfg.ext,
		item:       cfg.item,
		daoName:    cfg.daoName,
		dataSource: cfg.dataSource,
	}
	if d.daoName == "" {
		d.daoName = name
	}
	return d, nil
}

// MustDefine is NewDefinition for package-level model types. It panics on error.
func MustDefine(name string, kind Kind, opts ...DefinitionOption) *Definition {
	d, err := NewDefinition(name, kind, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the model name.
func (d *Definition) Name() string { return d.name }

func (d *Definition) Kind() Kind                 { return d.kind }
func (d *Definition) Properties() *property.List { return d.props }
func (d *Definition) Rules() *rules.Manager      { return d.rules }

// Item returns the item model of a collection, or nil.
func (d *Definition) Item() *Definition { return d.item }

// DAOName returns the name the DAO is resolved by.
func (d *Definition) DAOName() string { return d.daoName }

func (d *Definition) hasCreateHook() bool { return d.ext.DataCreate != nil }
