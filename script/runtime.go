package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/walkrouter/logger"
	"github.com/milk9111/walkrouter/mega"
	"github.com/milk9111/walkrouter/router"
	"github.com/milk9111/walkrouter/walkdata"
	"github.com/sirupsen/logrus"
)

const dispatchScript = `
update(__engine, __state)
`

// Runtime runs an object script that drives one mega. The script defines
// update(engine, state), which Tick calls once; state persists between
// ticks.
type Runtime struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	engine   *tengo.ImmutableMap

	walker  *mega.Walker
	router  *router.Router
	mega    *mega.Mega
	profile *walkdata.Profile
	log     *logrus.Entry
}

// New compiles src for m.
func New(name string, src []byte, r *router.Router, w *mega.Walker, m *mega.Mega, p *walkdata.Profile) (*Runtime, error) {
	s := tengo.NewScript(append(append([]byte{}, src...), dispatchScript...))
	for _, v := range []string{"__engine", "__state"} {
		if err := s.Add(v, map[string]any{}); err != nil {
			return nil, fmt.Errorf("script: %s: add %s: %w", name, v, err)
		}
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	rt := &Runtime{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		walker:   w,
		router:   r,
		mega:     m,
		profile:  p,
		log:      logger.For("script").WithField("script", name),
	}
	rt.engine = rt.buildEngine()
	return rt, nil
}

// Load compiles the named script from the script resources.
func Load(name string, r *router.Router, w *mega.Walker, m *mega.Mega, p *walkdata.Profile) (*Runtime, error) {
	src, err := LoadSource(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return New(name, src, r, w, m, p)
}

// Tick runs the script's update once.
func (rt *Runtime) Tick() error {
	if err := rt.compiled.Set("__engine", rt.engine); err != nil {
		return fmt.Errorf("script: %s: set engine: %w", rt.name, err)
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return fmt.Errorf("script: %s: set state: %w", rt.name, err)
	}
	if err := rt.compiled.Run(); err != nil {
		return fmt.Errorf("script: %s: %w", rt.name, err)
	}
	return nil
}

// State returns the value the script stored under key, converted to Go.
func (rt *Runtime) State(key string) any {
	obj, ok := rt.state.Value[key]
	if !ok {
		return nil
	}
	return tengo.ToInterface(obj)
}

func (rt *Runtime) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["walk"] = &tengo.UserFunction{Name: "walk", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ints, ok := intArgs(args, 3)
		if !ok {
			return nil, tengo.ErrWrongNumArguments
		}
		return rt.status(rt.walker.Walk(rt.mega, rt.profile, ints[0], ints[1], ints[2]))
	}}

	values["turn"] = &tengo.UserFunction{Name: "turn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ints, ok := intArgs(args, 1)
		if !ok {
			return nil, tengo.ErrWrongNumArguments
		}
		return rt.status(rt.walker.Turn(rt.mega, rt.profile, ints[0]))
	}}

	values["stand_at"] = &tengo.UserFunction{Name: "stand_at", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ints, ok := intArgs(args, 3)
		if !ok {
			return nil, tengo.ErrWrongNumArguments
		}
		if err := rt.walker.StandAt(rt.mega, rt.profile, ints[0], ints[1], ints[2]); err != nil {
			return rt.fail("stand_at", err), nil
		}
		return tengo.TrueValue, nil
	}}

	values["add_walk_grid"] = &tengo.UserFunction{Name: "add_walk_grid", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ints, ok := intArgs(args, 1)
		if !ok {
			return nil, tengo.ErrWrongNumArguments
		}
		if err := rt.router.AddWalkGrid(ints[0]); err != nil {
			return rt.fail("add_walk_grid", err), nil
		}
		return tengo.TrueValue, nil
	}}

	values["remove_walk_grid"] = &tengo.UserFunction{Name: "remove_walk_grid", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ints, ok := intArgs(args, 1)
		if !ok {
			return nil, tengo.ErrWrongNumArguments
		}
		rt.router.RemoveWalkGrid(ints[0])
		return tengo.TrueValue, nil
	}}

	values["clear_walk_grids"] = &tengo.UserFunction{Name: "clear_walk_grids", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rt.router.ClearWalkGrids()
		return tengo.TrueValue, nil
	}}

	values["is_walking"] = &tengo.UserFunction{Name: "is_walking", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.walker.IsWalking(rt.mega.ID) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Int{Value: int64(rt.mega.FeetX)},
			&tengo.Int{Value: int64(rt.mega.FeetY)},
			&tengo.Int{Value: int64(rt.mega.Dir)},
		}}, nil
	}}

	values["interrupt"] = &tengo.UserFunction{Name: "interrupt", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.walker.Interrupt(rt.mega.ID) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (rt *Runtime) status(st mega.Status, err error) (tengo.Object, error) {
	if err != nil {
		return rt.fail("walk", err), nil
	}
	return &tengo.String{Value: st.String()}, nil
}

// fail logs err and hands it to the script as an error value.
func (rt *Runtime) fail(call string, err error) tengo.Object {
	rt.log.WithError(err).WithField("call", call).Warn("engine call failed")
	return &tengo.Error{Value: &tengo.String{Value: err.Error()}}
}

func intArgs(args []tengo.Object, n int) ([]int, bool) {
	if len(args) != n {
		return nil, false
	}
	out := make([]int, n)
	for i, a := range args {
		v, ok := tengo.ToInt(a)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
