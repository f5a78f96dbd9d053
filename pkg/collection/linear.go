package collection

import (
	"fmt"
	"iter"
	"strings"
)

// Linear 是可以整体追加、整体赋值的集合，三种栈都实现了它。
type Linear[T any] interface {
	Iterable[T]
	Concatenate(source Iterable[T]) error
	AssignFrom(source Iterable[T]) error
}

// Concat 把 source 的所有元素按其遍历顺序追加到 dst 遍历顺序的末尾。
// dst 与 source 可以是任意两种实现，失败时 dst 保持不变。
func Concat[T any](dst Linear[T], source Iterable[T]) error {
	return dst.Concatenate(source)
}

// Assign 等价于清空 dst 后执行 Concat，失败时 dst 保持不变
func Assign[T any](dst Linear[T], source Iterable[T]) error {
	return dst.AssignFrom(source)
}

// Equal 判断两个集合是否相等：元素个数相同，且同时遍历时每一对元素都相等。
func Equal[T comparable](a, b Iterable[T]) bool {
	eq, err := EqualFunc(a, b, func(x, y T) (bool, error) {
		return x == y, nil
	})
	return err == nil && eq
}

// EqualFunc 与 Equal 相同，但用 eq 比较元素。eq 返回的错误以 ErrOperationFailed 报告。
// 遇到第一对不相等的元素即返回。
func EqualFunc[T any](a, b Iterable[T], eq func(x, y T) (bool, error)) (bool, error) {
	if a.Size() != b.Size() {
		return false, nil
	}

	ca, cb := a.Cursor(), b.Cursor()
	for ca.HasMore() {
		if !cb.HasMore() {
			return false, failedErr("equal", "right-hand side exhausted before its reported size", nil)
		}
		x, err := ca.Current()
		if err != nil {
			return false, err
		}
		y, err := cb.Current()
		if err != nil {
			return false, err
		}
		same, err := eq(x, y)
		if err != nil {
			return false, failedErr("equal", "compare elements", err)
		}
		if !same {
			return false, nil
		}
		if err = ca.Advance(); err != nil {
			return false, err
		}
		if err = cb.Advance(); err != nil {
			return false, err
		}
	}
	if cb.HasMore() {
		return false, failedErr("equal", "left-hand side exhausted before its reported size", nil)
	}
	return true, nil
}

// ForAll 按遍历顺序对每个元素调用 fn
func ForAll[T any](source Iterable[T], fn func(T)) {
	for v := range Values(source) {
		fn(v)
	}
}

// Values 返回按遍历顺序产出元素的迭代器
func Values[T any](source Iterable[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		cur := source.Cursor()
		for cur.HasMore() {
			v, err := cur.Current()
			if err != nil || !yield(v) {
				return
			}
			if cur.Advance() != nil {
				return
			}
		}
	}
}

// O(n)
func ToSlice[T any](source Iterable[T]) []T {
	out := make([]T, 0, source.Size())
	for v := range Values(source) {
		out = append(out, v)
	}
	return out
}

// stage 按 source 的遍历顺序复制全部元素。
// 任何一个元素复制失败都会丢弃已复制的部分，调用方此时尚未修改自身状态。
func stage[T any](op string, source Iterable[T], copyFn CopyFunc[T]) ([]T, error) {
	n := source.Size()
	out := make([]T, 0, n)
	cur := source.Cursor()
	for cur.HasMore() {
		v, err := cur.Current()
		if err != nil {
			return nil, failedErr(op, "read source element", err)
		}
		c, err := copyFn(v)
		if err != nil {
			return nil, failedErr(op, fmt.Sprintf("copy element %d", len(out)), err)
		}
		out = append(out, c)
		if err = cur.Advance(); err != nil {
			return nil, failedErr(op, "advance source", err)
		}
	}
	if len(out) != n {
		return nil, failedErr(op, fmt.Sprintf("source reported %d elements but yielded %d", n, len(out)), nil)
	}
	return out, nil
}

// stageValues 复制一组按压栈顺序给出的值
func stageValues[T any](op string, vals []T, copyFn CopyFunc[T]) ([]T, error) {
	out := make([]T, len(vals))
	for i, v := range vals {
		c, err := copyFn(v)
		if err != nil {
			return nil, failedErr(op, fmt.Sprintf("copy element %d", i), err)
		}
		out[i] = c
	}
	return out, nil
}

// Sprint 按遍历顺序格式化元素，例如 "[3 2 1]"
func Sprint[T any](source Iterable[T]) string {
	var b strings.Builder
	b.WriteByte('[')
	i := 0
	for v := range Values(source) {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v", v)
		i++
	}
	b.WriteByte(']')
	return b.String()
}
