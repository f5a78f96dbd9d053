package harness

import (
	"dstructs/pkg/collection"
	"slices"
	"strings"
	"testing"
)

// applies 报告 kind 能否作为 check 的被测对象
func applies(check, kind string) bool {
	allowed, ok := checkKinds[check]
	return !ok || slices.Contains(allowed, kind)
}

func TestChecksPass(t *testing.T) {
	elems := []int{5, 3, 8, 1, 9, 2}
	for _, kind := range kinds {
		for name, fn := range checks {
			if !applies(name, kind) {
				continue
			}
			for side := range 2 {
				if side == 1 && kind != KindDual {
					continue
				}
				sc := &ScenarioConfig{
					Name:     name,
					Check:    name,
					Kind:     kind,
					Against:  KindBounded,
					Capacity: 8,
					Side:     side,
					Extra:    []int{4, 6},
				}
				if err := fn(sc, elems); err != nil {
					t.Errorf("%s/%s side %d: %v", kind, name, side, err)
				}
			}
		}
	}
}

func TestCheckFullOverflow(t *testing.T) {
	elems := []int{1, 2, 3, 4, 5, 6}
	for _, kind := range stackKinds {
		sc := &ScenarioConfig{Check: "full", Kind: kind, Capacity: 4}
		if err := checkFull(sc, elems); err != nil {
			t.Errorf("%s: %v", kind, err)
		}
	}
}

func TestCheckConcatRejectsOverflow(t *testing.T) {
	for _, kind := range []string{KindBounded, KindDual} {
		sc := &ScenarioConfig{
			Check:    "concat",
			Kind:     kind,
			Against:  KindDynamic,
			Capacity: 4,
			Extra:    []int{7, 8, 9},
		}
		if err := checkConcat(sc, []int{1, 2}); err != nil {
			t.Errorf("%s: %v", kind, err)
		}
	}
}

func TestChecksEmptyElements(t *testing.T) {
	for _, kind := range kinds {
		for name, fn := range checks {
			if !applies(name, kind) {
				continue
			}
			sc := &ScenarioConfig{Check: name, Kind: kind, Against: KindDual, Capacity: MaxElements}
			if err := fn(sc, nil); err != nil {
				t.Errorf("%s/%s: %v", kind, name, err)
			}
		}
	}
}

func TestCheckFailsOnSetupError(t *testing.T) {
	// 元素比容量多时 lifo 无法完成压栈
	sc := &ScenarioConfig{Check: "lifo", Kind: KindBounded, Capacity: 2}
	err := checkLIFO(sc, []int{1, 2, 3})
	if err == nil {
		t.Fatal("expected lifo to fail on a too small stack")
	}
	if !strings.Contains(err.Error(), "push 3") {
		t.Errorf("expected failing push in error, got %v", err)
	}

	if _, err = newStack("queue", 1, 0); err == nil {
		t.Error("expected unknown kind error")
	}
	if _, err = newStack(KindDual, 1, 3); err == nil {
		t.Error("expected invalid side error")
	}
}

func TestCheckEqualAcrossAllKinds(t *testing.T) {
	elems := []int{2, 4, 6, 8}
	for _, kind := range kinds {
		for _, against := range kinds {
			sc := &ScenarioConfig{Check: "equal", Kind: kind, Against: against, Capacity: 6}
			if err := checkEqual(sc, elems); err != nil {
				t.Errorf("%s vs %s: %v", kind, against, err)
			}
		}
	}
}

func TestCheckConcatOntoList(t *testing.T) {
	for _, against := range kinds {
		sc := &ScenarioConfig{Check: "concat", Kind: KindList, Against: against, Capacity: 4, Extra: []int{7, 8, 9}}
		if err := checkConcat(sc, []int{1, 2}); err != nil {
			t.Errorf("list <- %s: %v", against, err)
		}
	}
}

func TestCheckNavigate(t *testing.T) {
	for _, elems := range [][]int{nil, {1}, {1, 2}, {4, 8, 15, 16, 23, 42}} {
		sc := &ScenarioConfig{Check: "navigate", Kind: KindList}
		if err := checkNavigate(sc, elems); err != nil {
			t.Errorf("%v: %v", elems, err)
		}
	}
}

func TestCheckIndex(t *testing.T) {
	for _, elems := range [][]int{nil, {1}, {3, 1, 4, 1, 5}} {
		sc := &ScenarioConfig{Check: "index", Kind: KindArray}
		if err := checkIndex(sc, elems); err != nil {
			t.Errorf("%v: %v", elems, err)
		}
	}
}

func TestFilledMatchesStackOrder(t *testing.T) {
	elems := []int{1, 2, 3}
	for _, kind := range kinds {
		got, err := filled(kind, 3, 0, elems)
		if err != nil {
			t.Fatal(err)
		}
		if s := collection.Sprint(got); s != "[3 2 1]" {
			t.Errorf("%s holds %s", kind, s)
		}
	}
}
