package harness

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func loadTestConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load("testdata/stackcheck.yaml", nil)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func newTestRunner(t *testing.T, cfg *Config, opts ...RunnerOption) *Runner {
	t.Helper()
	r, err := NewRunner(cfg, opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(r.Release)
	return r
}

func TestRunAll(t *testing.T) {
	r := newTestRunner(t, loadTestConfig(t))
	if len(r.RunID()) != 32 {
		t.Errorf("expected a 32 char run id, got %q", r.RunID())
	}

	rep, err := r.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if rep.RunID != r.RunID() || rep.Name != "harness-test" {
		t.Errorf("unexpected report header %+v", rep)
	}
	if rep.Passed != 5 || rep.Failed != 0 {
		for _, res := range rep.Results {
			t.Log(res.Name, res.Message)
		}
		t.Fatalf("expected 5 passed scenarios, got %d passed %d failed", rep.Passed, rep.Failed)
	}
	for i, name := range []string{"bounded-lifo", "dual-lifo", "dynamic-equal", "list-navigate", "array-index"} {
		if rep.Results[i].Name != name {
			t.Errorf("result %d is %s, want %s", i, rep.Results[i].Name, name)
		}
	}
}

func TestRunSelectors(t *testing.T) {
	r := newTestRunner(t, loadTestConfig(t), WithRunID("fixed"))

	rep, err := r.Run(context.Background(), []string{"lifo"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Results) != 2 || rep.RunID != "fixed" {
		t.Errorf("group selector picked %+v", rep.Results)
	}

	rep, err = r.Run(context.Background(), []string{"dynamic-equal", "bounded-lifo"})
	if err != nil {
		t.Fatal(err)
	}
	// 结果顺序以配置为准
	if len(rep.Results) != 2 || rep.Results[0].Name != "bounded-lifo" {
		t.Errorf("name selector picked %+v", rep.Results)
	}

	if _, err = r.Run(context.Background(), []string{"nothing"}); err == nil {
		t.Error("expected error when no scenario matches")
	}
}

func TestRunReportsFailures(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
scenarios:
  - {name: too-small, check: lifo, kind: bounded, capacity: 2, elements: [1, 2, 3]}
  - {name: no-file, check: lifo, kind: dynamic, data_file: missing.txt}
  - {name: fine, check: empty, kind: dual, elements: [4, 5]}
`), nil)
	if err != nil {
		t.Fatal(err)
	}
	rep, err := newTestRunner(t, cfg).Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Passed != 1 || rep.Failed != 2 {
		t.Fatalf("expected 1 passed 2 failed, got %d/%d", rep.Passed, rep.Failed)
	}
	if res := rep.Results[0]; res.Passed || !strings.Contains(res.Message, "full") {
		t.Errorf("unexpected result %+v", res)
	}
	if res := rep.Results[1]; res.Passed || !strings.Contains(res.Message, "open data file") {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestRunRecoversPanic(t *testing.T) {
	checks["boom"] = func(*ScenarioConfig, []int) error { panic("invariant violated") }
	defer delete(checks, "boom")

	cfg, err := Load(writeConfig(t, "scenarios:\n  - {name: p, check: boom, kind: dynamic}\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	rep, err := newTestRunner(t, cfg).Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Failed != 1 || !strings.Contains(rep.Results[0].Message, "invariant violated") {
		t.Errorf("unexpected report %+v", rep.Results)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := newTestRunner(t, loadTestConfig(t)).Run(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if len(rep.Results) != 0 {
		t.Errorf("cancelled run executed %d scenarios", len(rep.Results))
	}
}

type rejectingPool struct {
	released bool
}

func (p *rejectingPool) Submit(func()) error {
	return errors.New("pool overloaded")
}

func (p *rejectingPool) Release() {
	p.released = true
}

func TestRunSubmitFailure(t *testing.T) {
	pool := &rejectingPool{}
	r := newTestRunner(t, loadTestConfig(t), WithPool(pool))

	rep, err := r.Run(context.Background(), []string{"bounded-lifo"})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Failed != 1 || !strings.Contains(rep.Results[0].Message, "pool overloaded") {
		t.Errorf("unexpected report %+v", rep.Results)
	}
	r.Release()
	if !pool.released {
		t.Error("external pool not released")
	}
}
