package engine

import (
	"fmt"

	"github.com/lixenwraith/inputflow/condition"
	"github.com/lixenwraith/inputflow/modifier"
)

// registerStock pre-registers the built-in conditions and modifiers under
// the names profiles refer to them by. Sibling-referencing conditions
// (chord, block_by, combo) resolve action names at profile load time and
// are wired there, not here.
func registerStock(b *Builder) {
	b.conditions["down"] = func(p Params) (condition.Condition, error) {
		c := condition.NewDown()
		c.Actuation = p.Float("actuation", c.Actuation)
		return c, nil
	}
	b.conditions["press"] = func(p Params) (condition.Condition, error) {
		c := condition.NewPress()
		c.Actuation = p.Float("actuation", c.Actuation)
		return c, nil
	}
	b.conditions["release"] = func(p Params) (condition.Condition, error) {
		c := condition.NewRelease()
		c.Actuation = p.Float("actuation", c.Actuation)
		return c, nil
	}
	b.conditions["toggle"] = func(p Params) (condition.Condition, error) {
		c := condition.NewToggle()
		c.Actuation = p.Float("actuation", c.Actuation)
		return c, nil
	}
	b.conditions["hold"] = func(p Params) (condition.Condition, error) {
		d, err := p.RequireFloat("hold_time")
		if err != nil {
			return nil, err
		}
		c := condition.NewHold(d)
		c.Actuation = p.Float("actuation", c.Actuation)
		c.OneShot = p.Bool("one_shot", false)
		return c, nil
	}
	b.conditions["hold_and_release"] = func(p Params) (condition.Condition, error) {
		d, err := p.RequireFloat("hold_time")
		if err != nil {
			return nil, err
		}
		c := condition.NewHoldAndRelease(d)
		c.Actuation = p.Float("actuation", c.Actuation)
		return c, nil
	}
	b.conditions["tap"] = func(p Params) (condition.Condition, error) {
		d, err := p.RequireFloat("release_time")
		if err != nil {
			return nil, err
		}
		c := condition.NewTap(d)
		c.Actuation = p.Float("actuation", c.Actuation)
		return c, nil
	}
	b.conditions["pulse"] = func(p Params) (condition.Condition, error) {
		d, err := p.RequireFloat("interval")
		if err != nil {
			return nil, err
		}
		c := condition.NewPulse(d)
		c.Actuation = p.Float("actuation", c.Actuation)
		c.InitialDelay = p.Float("initial_delay", 0)
		c.TriggerLimit = p.Int("trigger_limit", 0)
		c.TriggerOnStart = p.Bool("trigger_on_start", true)
		return c, nil
	}
	b.conditions["cooldown"] = func(p Params) (condition.Condition, error) {
		d, err := p.RequireFloat("cooldown_time")
		if err != nil {
			return nil, err
		}
		c := condition.NewCooldown(d)
		c.Actuation = p.Float("actuation", c.Actuation)
		return c, nil
	}

	b.modifiers["dead_zone"] = func(p Params) (modifier.Modifier, error) {
		m := modifier.NewDeadZone()
		m.Lower = p.Float("lower", m.Lower)
		m.Upper = p.Float("upper", m.Upper)
		if p.String("kind", "radial") == "axial" {
			m.Kind = modifier.DeadZoneAxial
		}
		return m, nil
	}
	b.modifiers["scale"] = func(p Params) (modifier.Modifier, error) {
		factor := p.Float("factor", 1)
		m := modifier.NewScale(factor)
		m.X = p.Float("x", m.X)
		m.Y = p.Float("y", m.Y)
		m.Z = p.Float("z", m.Z)
		return m, nil
	}
	b.modifiers["negate"] = func(p Params) (modifier.Modifier, error) {
		m := modifier.NewNegate()
		m.X = p.Bool("x", true)
		m.Y = p.Bool("y", true)
		m.Z = p.Bool("z", true)
		return m, nil
	}
	b.modifiers["clamp"] = func(p Params) (modifier.Modifier, error) {
		return modifier.NewClamp(p.Float("min", -1), p.Float("max", 1)), nil
	}
	b.modifiers["swizzle"] = func(p Params) (modifier.Modifier, error) {
		order, ok := swizzleOrders[p.String("order", "yxz")]
		if !ok {
			return nil, fmt.Errorf("engine: unknown swizzle order %q", p.String("order", ""))
		}
		return modifier.NewSwizzleAxis(order), nil
	}
	b.modifiers["smooth_nudge"] = func(p Params) (modifier.Modifier, error) {
		m := modifier.NewSmoothNudge()
		m.DecaySpeed = p.Float("decay_speed", m.DecaySpeed)
		return m, nil
	}
	b.modifiers["delta_scale"] = func(p Params) (modifier.Modifier, error) {
		return modifier.NewDeltaScale(), nil
	}
	b.modifiers["exponential_curve"] = func(p Params) (modifier.Modifier, error) {
		return modifier.NewExponentialCurve(p.Float("exponent", 2)), nil
	}
	b.modifiers["linear_step"] = func(p Params) (modifier.Modifier, error) {
		return modifier.NewLinearStep(p.Float("step", 0.25)), nil
	}
}

var swizzleOrders = map[string]modifier.Swizzle{
	"yxz": modifier.SwizzleYXZ,
	"zyx": modifier.SwizzleZYX,
	"xzy": modifier.SwizzleXZY,
	"yzx": modifier.SwizzleYZX,
	"zxy": modifier.SwizzleZXY,
}
