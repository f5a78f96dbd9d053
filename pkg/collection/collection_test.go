package collection

import (
	"errors"
	"fmt"
	"testing"
)

var errCopy = errors.New("copy refused")

// failingCopy 允许前 n 次复制成功，之后每次都失败
func failingCopy(n int) CopyFunc[int] {
	calls := 0
	return func(v int) (int, error) {
		calls++
		if calls > n {
			return 0, errCopy
		}
		return v, nil
	}
}

// stackKinds 返回三种栈的构造函数，双栈使用 1 号栈以覆盖反向生长的一侧
// newCopy 为每个子测试生成独立的复制函数，nil 表示默认复制
func stackKinds(capacity int, newCopy func() CopyFunc[int]) map[string]func(t *testing.T) Stack[int] {
	options := func() []Option[int] {
		if newCopy == nil {
			return nil
		}
		return []Option[int]{WithCopy(newCopy())}
	}
	return map[string]func(t *testing.T) Stack[int]{
		"bounded": func(t *testing.T) Stack[int] {
			s, err := NewBounded(capacity, options()...)
			if err != nil {
				t.Fatal(err)
			}
			return s
		},
		"dynamic": func(t *testing.T) Stack[int] {
			return NewDynamic(options()...)
		},
		"dual0": func(t *testing.T) Stack[int] {
			s, err := NewDual(capacity, options()...)
			if err != nil {
				t.Fatal(err)
			}
			return s
		},
		"dual1": func(t *testing.T) Stack[int] {
			s, err := NewDual(capacity, options()...)
			if err != nil {
				t.Fatal(err)
			}
			if err = s.Select(1); err != nil {
				t.Fatal(err)
			}
			return s
		},
	}
}

func expectSeq(t *testing.T, got Iterable[int], want ...int) {
	t.Helper()
	seq := ToSlice(got)
	if got.Size() != len(want) || len(seq) != len(want) {
		t.Fatalf("size %d, sequence %v, want %v", got.Size(), seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("sequence %v, want %v", seq, want)
		}
	}
}

func TestLIFO(t *testing.T) {
	vals := []int{5, 8, 13, 21, 34, 55}
	for name, newStack := range stackKinds(len(vals), nil) {
		t.Run(name, func(t *testing.T) {
			s := newStack(t)
			for _, v := range vals {
				if err := s.Push(v); err != nil {
					t.Fatal(err)
				}
			}
			expectSeq(t, s, 55, 34, 21, 13, 8, 5)
			for i := len(vals) - 1; i >= 0; i-- {
				top, err := s.Peek()
				if err != nil {
					t.Fatal(err)
				}
				v, err := s.Pop()
				if err != nil {
					t.Fatal(err)
				}
				if v != vals[i] || top != v {
					t.Errorf("pop %d (peek %d), want %d", v, top, vals[i])
				}
			}
			if !s.IsEmpty() {
				t.Errorf("size %d after draining", s.Size())
			}
		})
	}
}

func TestEmptyGuard(t *testing.T) {
	for name, newStack := range stackKinds(3, nil) {
		t.Run(name, func(t *testing.T) {
			s := newStack(t)
			if err := s.Push(1); err != nil {
				t.Fatal(err)
			}
			if _, err := s.Pop(); err != nil {
				t.Fatal(err)
			}
			for range 2 {
				if _, err := s.Pop(); !errors.Is(err, ErrEmpty) {
					t.Errorf("pop on empty: %v", err)
				}
				if _, err := s.Peek(); !errors.Is(err, ErrEmpty) {
					t.Errorf("peek on empty: %v", err)
				}
				if s.Size() != 0 {
					t.Errorf("size %d", s.Size())
				}
			}
		})
	}
}

func TestPushCopyFailureLeavesStackUnchanged(t *testing.T) {
	for name, newStack := range stackKinds(4, func() CopyFunc[int] { return failingCopy(2) }) {
		t.Run(name, func(t *testing.T) {
			s := newStack(t)
			if err := s.Push(1); err != nil {
				t.Fatal(err)
			}
			if err := s.Push(2); err != nil {
				t.Fatal(err)
			}
			err := s.Push(3)
			if !errors.Is(err, ErrOperationFailed) || !errors.Is(err, errCopy) {
				t.Fatalf("push: %v", err)
			}
			expectSeq(t, s, 2, 1)
			if _, err = s.Peek(); !errors.Is(err, ErrOperationFailed) {
				t.Errorf("peek with failing copy: %v", err)
			}
			if v, err := s.Pop(); err != nil || v != 2 {
				t.Errorf("pop %d, %v", v, err)
			}
		})
	}
}

func TestPeekCopyFailureReturnsZero(t *testing.T) {
	// 复制函数失败时仍返回一个非零值，Peek 不能把它交给调用方
	partial := func() CopyFunc[int] {
		calls := 0
		return func(v int) (int, error) {
			calls++
			if calls > 1 {
				return -v, errCopy
			}
			return v, nil
		}
	}
	for name, newStack := range stackKinds(3, partial) {
		t.Run(name, func(t *testing.T) {
			s := newStack(t)
			if err := s.Push(7); err != nil {
				t.Fatal(err)
			}
			v, err := s.Peek()
			if !errors.Is(err, ErrOperationFailed) {
				t.Fatalf("peek: %v", err)
			}
			if v != 0 {
				t.Errorf("peek returned %d alongside the error", v)
			}
			expectSeq(t, s, 7)
		})
	}
}

func TestPushAllIsAtomic(t *testing.T) {
	for name, newStack := range stackKinds(5, func() CopyFunc[int] { return failingCopy(4) }) {
		t.Run(name, func(t *testing.T) {
			s := newStack(t)
			if err := s.PushAll(1, 2); err != nil {
				t.Fatal(err)
			}
			if err := s.PushAll(3, 4, 5); !errors.Is(err, ErrOperationFailed) {
				t.Fatalf("push all: %v", err)
			}
			expectSeq(t, s, 2, 1)
		})
	}
}

func TestConcatenateOrder(t *testing.T) {
	for name, newStack := range stackKinds(6, nil) {
		t.Run(name, func(t *testing.T) {
			s := newStack(t)
			if err := s.PushAll(1, 2); err != nil {
				t.Fatal(err)
			}
			// 追加到遍历顺序末尾，即原栈底之下
			if err := s.Concatenate(FromSlice([]int{7, 8, 9})); err != nil {
				t.Fatal(err)
			}
			expectSeq(t, s, 2, 1, 7, 8, 9)
			v, err := s.Pop()
			if err != nil || v != 2 {
				t.Errorf("pop %d, %v", v, err)
			}
		})
	}
}

func TestConcatenateSelf(t *testing.T) {
	for name, newStack := range stackKinds(6, nil) {
		t.Run(name, func(t *testing.T) {
			s := newStack(t)
			if err := s.PushAll(1, 2, 3); err != nil {
				t.Fatal(err)
			}
			if err := s.Concatenate(s); err != nil {
				t.Fatal(err)
			}
			expectSeq(t, s, 3, 2, 1, 3, 2, 1)
		})
	}
}

func TestConcatenateRollback(t *testing.T) {
	for name, newStack := range stackKinds(10, func() CopyFunc[int] { return failingCopy(4) }) {
		t.Run(name, func(t *testing.T) {
			s := newStack(t)
			if err := s.PushAll(1, 2); err != nil {
				t.Fatal(err)
			}
			before := ToSlice[int](s)
			// 第 3 个元素复制失败
			err := s.Concatenate(FromSlice([]int{7, 8, 9, 10}))
			if !errors.Is(err, ErrOperationFailed) {
				t.Fatalf("concatenate: %v", err)
			}
			expectSeq(t, s, before...)
			err = s.AssignFrom(FromSlice([]int{7}))
			if !errors.Is(err, ErrOperationFailed) {
				t.Fatalf("assign: %v", err)
			}
			expectSeq(t, s, before...)
		})
	}
}

func TestAssignFrom(t *testing.T) {
	for name, newStack := range stackKinds(4, nil) {
		t.Run(name, func(t *testing.T) {
			s := newStack(t)
			if err := s.PushAll(1, 2, 3); err != nil {
				t.Fatal(err)
			}
			src := NewDynamic[int]()
			if err := src.PushAll(10, 20); err != nil {
				t.Fatal(err)
			}
			if err := Assign[int](s, src); err != nil {
				t.Fatal(err)
			}
			expectSeq(t, s, 20, 10)
			if !Equal[int](s, src) {
				t.Errorf("%s != %s after assignment", Sprint[int](s), Sprint[int](src))
			}
			if err := s.AssignFrom(s); err != nil {
				t.Fatal(err)
			}
			expectSeq(t, s, 20, 10)
		})
	}
}

func TestClear(t *testing.T) {
	for name, newStack := range stackKinds(3, nil) {
		t.Run(name, func(t *testing.T) {
			s := newStack(t)
			if err := s.PushAll(1, 2, 3); err != nil {
				t.Fatal(err)
			}
			s.Clear()
			expectSeq(t, s)
			if err := s.Push(4); err != nil {
				t.Fatal(err)
			}
			expectSeq(t, s, 4)
		})
	}
}

func ExampleBounded() {
	s, _ := NewBoundedOf(4, []int{1, 2, 3})
	v, _ := s.Pop()
	fmt.Println(v, Sprint[int](s), s.Remaining())
	// Output: 3 [2 1] 2
}
