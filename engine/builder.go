package engine

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/binding"
	"github.com/lixenwraith/inputflow/condition"
	"github.com/lixenwraith/inputflow/modifier"
)

// ErrFinalized is returned when the registration surface is used after
// Build. Registration is a setup-time activity; the tick path assumes the
// schedule and type sets never change.
var ErrFinalized = errors.New("engine: registration closed after build")

// ConditionFactory creates a fresh condition instance from profile
// parameters. Conditions hold per-attachment state, so every attachment
// gets its own instance.
type ConditionFactory func(p Params) (condition.Condition, error)

// ModifierFactory creates a fresh modifier instance from profile
// parameters.
type ModifierFactory func(p Params) (modifier.Modifier, error)

// ContextType declares a named input mode and the schedule it evaluates
// under. Instances spawn with the declared priority unless overridden.
type ContextType struct {
	Name     string
	Schedule string
	Priority int
}

// InputSource supplies raw per-binding values for the current tick.
// device.State is the stock implementation; tests substitute their own.
type InputSource interface {
	Read(b binding.Binding, pad binding.GamepadDevice) action.Value
}

// Builder is the registration surface. Declare schedules, context types
// and custom condition/modifier factories, then Build to get a sealed
// Engine. All registration methods fail with ErrFinalized after Build.
type Builder struct {
	schedules  map[string]bool
	types      map[string]ContextType
	conditions map[string]ConditionFactory
	modifiers  map[string]ModifierFactory
	finalized  bool
}

func NewBuilder() *Builder {
	b := &Builder{
		schedules:  make(map[string]bool),
		types:      make(map[string]ContextType),
		conditions: make(map[string]ConditionFactory),
		modifiers:  make(map[string]ModifierFactory),
	}
	registerStock(b)
	return b
}

// RegisterSchedule declares a tick schedule by name.
func (b *Builder) RegisterSchedule(name string) error {
	if b.finalized {
		return ErrFinalized
	}
	if name == "" {
		return errors.New("engine: empty schedule name")
	}
	b.schedules[name] = true
	return nil
}

// RegisterContextType declares a context type. Its schedule must already
// be registered.
func (b *Builder) RegisterContextType(ct ContextType) error {
	if b.finalized {
		return ErrFinalized
	}
	if ct.Name == "" {
		return errors.New("engine: empty context type name")
	}
	if !b.schedules[ct.Schedule] {
		return fmt.Errorf("engine: context type %q references unknown schedule %q", ct.Name, ct.Schedule)
	}
	if _, dup := b.types[ct.Name]; dup {
		return fmt.Errorf("engine: context type %q already registered", ct.Name)
	}
	b.types[ct.Name] = ct
	return nil
}

// RegisterCondition adds a named condition factory for profile loading.
// Stock conditions are pre-registered; registering an existing name
// replaces it.
func (b *Builder) RegisterCondition(name string, f ConditionFactory) error {
	if b.finalized {
		return ErrFinalized
	}
	if f == nil {
		return fmt.Errorf("engine: nil factory for condition %q", name)
	}
	b.conditions[name] = f
	return nil
}

// RegisterModifier adds a named modifier factory for profile loading.
func (b *Builder) RegisterModifier(name string, f ModifierFactory) error {
	if b.finalized {
		return ErrFinalized
	}
	if f == nil {
		return fmt.Errorf("engine: nil factory for modifier %q", name)
	}
	b.modifiers[name] = f
	return nil
}

// MustRegister panics on a registration error. For static setup code
// where a failure is a programming bug.
func MustRegister(err error) {
	if err != nil {
		panic(err)
	}
}

// Build seals the builder and creates the engine. Further registration
// on the builder fails with ErrFinalized.
func (b *Builder) Build(source InputSource) (*Engine, error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	if source == nil {
		return nil, errors.New("engine: nil input source")
	}
	b.finalized = true
	return newEngine(b, source), nil
}
