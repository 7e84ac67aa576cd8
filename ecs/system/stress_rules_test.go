package system

import (
	"testing"

	"github.com/milk9111/stressmeter/ecs"
	"github.com/milk9111/stressmeter/ecs/component"
	"github.com/milk9111/stressmeter/prefabs"
	"github.com/milk9111/stressmeter/stress"
)

func rulesWorld(t *testing.T, src string) (*ecs.World, ecs.Entity, *stress.Meter, *StressRulesSystem) {
	t.Helper()
	w := ecs.NewWorld()
	e, m := newMeterEntity(t, w, stress.Base)
	_ = ecs.Add(w, e, component.StressRulesComponent.Kind(), &component.StressRules{ScriptPath: "rules.tengo"})

	sys := NewStressRulesSystem()
	if src != "" {
		sys.load = func(string) ([]byte, error) { return []byte(src), nil }
	}
	return w, e, m, sys
}

func TestStressRulesQueuesRequests(t *testing.T) {
	src := `
on_event := func(engine, name) {
	if name == "start" {
		engine.start()
	} else if name == "hit" {
		engine.change(20)
	} else if name == "heal" {
		engine.change(-5.5)
	}
}
`
	w, e, m, rules := rulesWorld(t, src)
	w.Events().Push(ecs.Event{Type: "start"})
	w.Events().Push(ecs.Event{Type: "hit"})
	w.Events().Push(ecs.Event{Type: "hit"})
	w.Events().Push(ecs.Event{Type: "heal"})
	w.Events().Push(ecs.Event{Type: "unknown"})

	rules.Update(w)
	if w.Events().Len() != 0 {
		t.Fatalf("expected events drained")
	}
	req, ok := ecs.Get(w, e, component.StressChangeRequestComponent.Kind())
	if !ok || req.Amount != 34.5 {
		t.Fatalf("expected queued change 34.5, got %+v", req)
	}
	if !ecs.Has(w, e, component.StressStartRequestComponent.Kind()) {
		t.Fatalf("expected queued start")
	}

	NewStressMeterSystem(frame).Update(w)
	if m.Value() != 34.5 || m.State() != stress.Running {
		t.Fatalf("expected meter at 34.5 running, got %v %v", m.Value(), m.State())
	}
}

func TestStressRulesReadsMeter(t *testing.T) {
	src := `
on_event := func(engine, name) {
	if engine.value() < engine.max() / 2 && !engine.running() {
		engine.change(1)
	}
}
`
	w, e, m, rules := rulesWorld(t, src)
	m.ChangeStress(10)
	w.Events().Push(ecs.Event{Type: "tick"})
	rules.Update(w)

	req, ok := ecs.Get(w, e, component.StressChangeRequestComponent.Kind())
	if !ok || req.Amount != 1 {
		t.Fatalf("expected change of 1, got %+v", req)
	}
}

func TestStressRulesBadScriptIsLogged(t *testing.T) {
	w, e, _, rules := rulesWorld(t, "this is not tengo {")
	w.Events().Push(ecs.Event{Type: "hit"})
	rules.Update(w)
	if ecs.Has(w, e, component.StressChangeRequestComponent.Kind()) {
		t.Fatalf("expected no request from a broken script")
	}
}

func TestStressRulesEmbeddedScript(t *testing.T) {
	prev := prefabs.DiskDir
	prefabs.DiskDir = t.TempDir()
	t.Cleanup(func() { prefabs.DiskDir = prev })

	w, e, m, rules := rulesWorld(t, "")
	rules.Update(w)
	if ecs.Has(w, e, component.StressChangeRequestComponent.Kind()) {
		t.Fatalf("no events should mean no requests")
	}

	_ = ecs.Add(w, e, component.StressRulesComponent.Kind(), &component.StressRules{ScriptPath: "scripts/stress_rules.tengo"})
	w.Events().Push(ecs.Event{Type: "hazard"})
	w.Events().Push(ecs.Event{Type: "start"})
	rules.Update(w)
	NewStressMeterSystem(frame).Update(w)
	if m.Value() != 15 || m.State() != stress.Running {
		t.Fatalf("expected hazard +15 and running, got %v %v", m.Value(), m.State())
	}

	m.ChangeStress(80)
	w.Events().Push(ecs.Event{Type: "rest"})
	rules.Reset()
	rules.Update(w)
	NewStressMeterSystem(frame).Update(w)
	// rest is halved above 90% stress
	if m.Value() != 90 {
		t.Fatalf("expected 95-5=90, got %v", m.Value())
	}
}
