package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/stressmeter/ecs"
	"github.com/milk9111/stressmeter/ecs/component"
	"github.com/milk9111/stressmeter/prefabs"
	"github.com/milk9111/stressmeter/stress"
)

// rulesDispatchScript is appended to every rules script. Scripts must define
// on_event(engine, name).
const rulesDispatchScript = `
if __event != "" {
	on_event(__engine, __event)
}
`

// StressRulesSystem drains the world event queue and lets each meter's tengo
// rules script turn the events into stress requests.
type StressRulesSystem struct {
	load     func(path string) ([]byte, error)
	compiled map[string]*tengo.Compiled
}

func NewStressRulesSystem() *StressRulesSystem {
	return &StressRulesSystem{load: prefabs.LoadScript}
}

// Reset drops compiled scripts so edited files are picked up.
func (s *StressRulesSystem) Reset() {
	s.compiled = nil
}

func (s *StressRulesSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	events := w.Events().Drain()
	if len(events) == 0 {
		return
	}

	ecs.ForEach(w, component.StressRulesComponent.Kind(), func(e ecs.Entity, rules *component.StressRules) {
		sm, ok := ecs.Get(w, e, component.StressMeterComponent.Kind())
		if !ok || sm.Meter == nil || strings.TrimSpace(rules.ScriptPath) == "" {
			return
		}

		compiled, err := s.script(rules.ScriptPath)
		if err != nil {
			log.Printf("stress rules: entity=%s load %s: %v", e, rules.ScriptPath, err)
			return
		}

		engine := buildRulesEngine(w, e, sm)
		for _, evt := range events {
			if err := runRules(compiled, engine, evt.Type); err != nil {
				log.Printf("stress rules: entity=%s event=%s: %v", e, evt.Type, err)
			}
		}
	})
}

func (s *StressRulesSystem) script(path string) (*tengo.Compiled, error) {
	if compiled, ok := s.compiled[path]; ok {
		return compiled, nil
	}

	load := s.load
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(append(append([]byte(nil), src...), rulesDispatchScript...))
	_ = script.Add("__event", "")
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	if s.compiled == nil {
		s.compiled = map[string]*tengo.Compiled{}
	}
	s.compiled[path] = compiled
	return compiled, nil
}

func runRules(compiled *tengo.Compiled, engine *tengo.ImmutableMap, event string) error {
	if err := compiled.Set("__event", event); err != nil {
		return err
	}
	if err := compiled.Set("__engine", engine); err != nil {
		return err
	}
	return compiled.Run()
}

func buildRulesEngine(w *ecs.World, e ecs.Entity, sm *component.StressMeter) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["change"] = &tengo.UserFunction{Name: "change", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		delta, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, fmt.Errorf("change: expected a number, got %s", args[0].TypeName())
		}
		RequestStressChange(w, e, delta)
		return tengo.TrueValue, nil
	}}

	values["start"] = &tengo.UserFunction{Name: "start", Value: func(args ...tengo.Object) (tengo.Object, error) {
		RequestStressStart(w, e)
		return tengo.TrueValue, nil
	}}

	values["value"] = &tengo.UserFunction{Name: "value", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: sm.Meter.Value()}, nil
	}}

	values["max"] = &tengo.UserFunction{Name: "max", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: sm.Meter.Max()}, nil
	}}

	values["running"] = &tengo.UserFunction{Name: "running", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if sm.Meter.State() == stress.Running {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
