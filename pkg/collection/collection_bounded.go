package collection

import "fmt"

// Bounded 是容量固定、以数组存储的栈。
//
// slots[0] 是栈底，slots[count-1] 是栈顶，count 同时是下一次压栈写入的位置：
//
//	+-----+-----+-----+-----+-----+-----+
//	| 1st | 2nd | 3rd | 4th |  -  |  -  |
//	+-----+-----+-----+-----+-----+-----+
//	                     ^     ^
//	               top --+     +-- count
//
// 所有修改操作都先完成元素复制再提交 count，复制失败时栈保持不变。
type Bounded[T any] struct {
	slots []T
	count int
	opts  options[T]
}

// NewBounded 创建一个可容纳 capacity 个元素的空栈，capacity 为 0 时栈既空又满
func NewBounded[T any](capacity int, opts ...Option[T]) (*Bounded[T], error) {
	if capacity < 0 {
		return nil, invalidErr("new bounded", fmt.Sprintf("capacity %d is negative", capacity))
	}
	s := &Bounded[T]{
		slots: make([]T, capacity),
		opts:  newOptions(opts),
	}
	s.checkInvariants()
	return s, nil
}

// NewBoundedFrom 创建栈并深拷贝 source 的全部元素，遍历顺序与 source 相同
func NewBoundedFrom[T any](capacity int, source Iterable[T], opts ...Option[T]) (*Bounded[T], error) {
	s, err := NewBounded(capacity, opts...)
	if err != nil {
		return nil, err
	}
	if err = s.Concatenate(source); err != nil {
		return nil, err
	}
	return s, nil
}

// NewBoundedOf 按顺序压入 elems，elems[0] 最后一个出栈
func NewBoundedOf[T any](capacity int, elems []T, opts ...Option[T]) (*Bounded[T], error) {
	if len(elems) > capacity {
		return nil, invalidErr("new bounded", fmt.Sprintf("%d elements can't fit in capacity %d", len(elems), capacity))
	}
	s, err := NewBounded(capacity, opts...)
	if err != nil {
		return nil, err
	}
	if err = s.PushAll(elems...); err != nil {
		return nil, err
	}
	return s, nil
}

// O(1)
func (s *Bounded[T]) Push(val T) error {
	s.checkInvariants()
	if s.count == len(s.slots) {
		return fullErr("push", 1, 0)
	}
	c, err := s.opts.copy(val)
	if err != nil {
		return failedErr("push", "copy element", err)
	}
	s.slots[s.count] = c
	s.count++
	s.checkInvariants()
	return nil
}

// O(n)，全部成功或全部不生效
func (s *Bounded[T]) PushAll(vals ...T) error {
	s.checkInvariants()
	if len(vals) > s.Remaining() {
		return fullErr("push all", len(vals), s.Remaining())
	}
	staged, err := stageValues("push all", vals, s.opts.copy)
	if err != nil {
		return err
	}
	copy(s.slots[s.count:], staged)
	s.count += len(staged)
	s.checkInvariants()
	return nil
}

// O(1)
func (s *Bounded[T]) Pop() (T, error) {
	s.checkInvariants()
	var zero T
	if s.count == 0 {
		return zero, emptyErr("pop")
	}
	s.count--
	val := s.slots[s.count]
	s.slots[s.count] = zero
	s.checkInvariants()
	return val, nil
}

// O(1)
func (s *Bounded[T]) Peek() (T, error) {
	s.checkInvariants()
	if s.count == 0 {
		var zero T
		return zero, emptyErr("peek")
	}
	val, err := s.opts.copy(s.slots[s.count-1])
	if err != nil {
		var zero T
		return zero, failedErr("peek", "copy element", err)
	}
	return val, nil
}

// O(n)
func (s *Bounded[T]) Concatenate(source Iterable[T]) error {
	s.checkInvariants()
	if n := source.Size(); n > s.Remaining() {
		return fullErr("concatenate", n, s.Remaining())
	}
	staged, err := stage("concatenate", source, s.opts.copy)
	if err != nil {
		return err
	}
	s.appendBottom(staged)
	s.checkInvariants()
	return nil
}

// O(n)
func (s *Bounded[T]) AssignFrom(source Iterable[T]) error {
	s.checkInvariants()
	if n := source.Size(); n > len(s.slots) {
		return fullErr("assign", n, len(s.slots))
	}
	staged, err := stage("assign", source, s.opts.copy)
	if err != nil {
		return err
	}
	s.Clear()
	s.appendBottom(staged)
	s.checkInvariants()
	return nil
}

// Plus 返回一个新栈：先是本栈的元素，然后是 source 的元素，容量恰好容纳两者
func (s *Bounded[T]) Plus(source Iterable[T]) (*Bounded[T], error) {
	out, err := NewBounded(len(s.slots)+source.Size(), WithCopy(s.opts.copy))
	if err != nil {
		return nil, err
	}
	if err = out.AssignFrom(s); err != nil {
		return nil, err
	}
	if err = out.Concatenate(source); err != nil {
		return nil, err
	}
	return out, nil
}

// appendBottom 把 staged 接到遍历顺序末尾（栈底之下）：已有元素整体上移，
// staged[0] 紧挨原来的栈底。调用方已检查容量。
func (s *Bounded[T]) appendBottom(staged []T) {
	n := len(staged)
	if n == 0 {
		return
	}
	copy(s.slots[n:s.count+n], s.slots[:s.count])
	for i, v := range staged {
		s.slots[n-1-i] = v
	}
	s.count += n
}

// O(n)
func (s *Bounded[T]) Clear() {
	s.checkInvariants()
	clear(s.slots[:s.count])
	s.count = 0
}

// Cursor 从栈顶遍历到栈底
func (s *Bounded[T]) Cursor() Cursor[T] {
	return newSlotCursor(s.slots, func() (int, int, int) {
		return s.count - 1, s.count, -1
	}, func(i int) bool {
		return i < s.count
	})
}

// O(1)
func (s *Bounded[T]) Size() int {
	return s.count
}

// O(1)
func (s *Bounded[T]) Capacity() int {
	return len(s.slots)
}

// O(1)
func (s *Bounded[T]) Remaining() int {
	return len(s.slots) - s.count
}

// O(1)
func (s *Bounded[T]) IsEmpty() bool {
	return s.count == 0
}

// O(1)
func (s *Bounded[T]) IsFull() bool {
	return s.count == len(s.slots)
}

func (s *Bounded[T]) checkInvariants() {
	if s.count < 0 || s.count > len(s.slots) {
		panic(fmt.Sprintf("collection: bounded stack count %d outside [0, %d]", s.count, len(s.slots)))
	}
}
