package collection

import "fmt"

// Array 是长度固定的数组，所有下标始终有效，Size 就是长度。
// 未被赋值的位置保存零值，遍历顺序为下标从小到大。
type Array[T any] struct {
	slots []T
	opts  options[T]
}

func NewArray[T any](size int, opts ...Option[T]) (*Array[T], error) {
	if size < 0 {
		return nil, invalidErr("new array", fmt.Sprintf("size %d is negative", size))
	}
	return &Array[T]{slots: make([]T, size), opts: newOptions(opts)}, nil
}

// NewArrayFrom 创建长度为 size 的数组，并把 source 的元素复制到低位
func NewArrayFrom[T any](size int, source Iterable[T], opts ...Option[T]) (*Array[T], error) {
	if n := source.Size(); size < n {
		return nil, invalidErr("new array", fmt.Sprintf("size %d is less than the %d source elements", size, n))
	}
	a, err := NewArray(size, opts...)
	if err != nil {
		return nil, err
	}
	if err = a.AssignFrom(source); err != nil {
		return nil, err
	}
	return a, nil
}

// NewArrayOf 创建长度为 size 的数组，elems[i] 放在下标 i
func NewArrayOf[T any](size int, elems []T, opts ...Option[T]) (*Array[T], error) {
	return NewArrayFrom(size, FromSlice(elems), opts...)
}

// O(1) 返回下标 i 处元素的副本
func (a *Array[T]) At(i int) (T, error) {
	var zero T
	if err := a.checkIndex("at", i); err != nil {
		return zero, err
	}
	val, err := a.opts.copy(a.slots[i])
	if err != nil {
		return zero, failedErr("at", "copy element", err)
	}
	return val, nil
}

// O(1) 把 val 的副本写到下标 i，复制失败时原值不变
func (a *Array[T]) Set(i int, val T) error {
	if err := a.checkIndex("set", i); err != nil {
		return err
	}
	c, err := a.opts.copy(val)
	if err != nil {
		return failedErr("set", "copy element", err)
	}
	a.slots[i] = c
	return nil
}

func (a *Array[T]) checkIndex(op string, i int) error {
	if i < 0 || i >= len(a.slots) {
		return invalidErr(op, fmt.Sprintf("index %d is out of range [0, %d)", i, len(a.slots)))
	}
	return nil
}

// AssignFrom 把 source 的元素依次写到下标 0, 1, ...，其余位置保持不变。
// source 比数组长时返回 ErrFull，全部成功或全部不生效。
func (a *Array[T]) AssignFrom(source Iterable[T]) error {
	if n := source.Size(); n > len(a.slots) {
		return fullErr("assign", n, len(a.slots))
	}
	staged, err := stage("assign", source, a.opts.copy)
	if err != nil {
		return err
	}
	copy(a.slots, staged)
	return nil
}

// Cursor 按下标从小到大遍历
func (a *Array[T]) Cursor() Cursor[T] {
	return newSlotCursor(a.slots, func() (int, int, int) {
		return 0, len(a.slots), 1
	}, nil)
}

// O(1)
func (a *Array[T]) Size() int {
	return len(a.slots)
}

// O(1)
func (a *Array[T]) IsEmpty() bool {
	return len(a.slots) == 0
}
