package collection

import "fmt"

// Dynamic 是无容量上限、以单向链表存储的栈。
//
// top 是栈顶节点，沿 next 指向栈底；bottom 指向最后一个节点，用于在遍历顺序末尾追加。
// 每个节点只被前一个节点（或 top）持有，节点数始终等于 size。
type Dynamic[T any] struct {
	top    *chainNode[T]
	bottom *chainNode[T]
	size   int
	opts   options[T]
}

func NewDynamic[T any](opts ...Option[T]) *Dynamic[T] {
	return &Dynamic[T]{opts: newOptions(opts)}
}

// NewDynamicFrom 创建栈并深拷贝 source 的全部元素，遍历顺序与 source 相同
func NewDynamicFrom[T any](source Iterable[T], opts ...Option[T]) (*Dynamic[T], error) {
	s := NewDynamic(opts...)
	if err := s.Concatenate(source); err != nil {
		return nil, err
	}
	return s, nil
}

// NewDynamicOf 按顺序压入 elems，elems[0] 最后一个出栈
func NewDynamicOf[T any](elems []T, opts ...Option[T]) (*Dynamic[T], error) {
	s := NewDynamic(opts...)
	if err := s.PushAll(elems...); err != nil {
		return nil, err
	}
	return s, nil
}

// O(1)
func (s *Dynamic[T]) Push(val T) error {
	s.checkInvariants()
	c, err := s.opts.copy(val)
	if err != nil {
		return failedErr("push", "copy element", err)
	}
	s.link(c)
	s.checkInvariants()
	return nil
}

// O(n)，全部成功或全部不生效
func (s *Dynamic[T]) PushAll(vals ...T) error {
	if len(vals) == 0 {
		return nil
	}
	s.checkInvariants()
	staged, err := stageValues("push all", vals, s.opts.copy)
	if err != nil {
		return err
	}
	for _, v := range staged {
		s.link(v)
	}
	s.checkInvariants()
	return nil
}

func (s *Dynamic[T]) link(val T) {
	s.top = &chainNode[T]{value: val, next: s.top}
	if s.bottom == nil {
		s.bottom = s.top
	}
	s.size++
}

// O(1)
func (s *Dynamic[T]) Pop() (T, error) {
	s.checkInvariants()
	if s.top == nil {
		var zero T
		return zero, emptyErr("pop")
	}
	out := s.top
	s.top = out.next
	if s.top == nil {
		s.bottom = nil
	}
	s.size--
	val := out.value
	releaseChain(out, 1)
	s.checkInvariants()
	return val, nil
}

// O(1)
func (s *Dynamic[T]) Peek() (T, error) {
	s.checkInvariants()
	if s.top == nil {
		var zero T
		return zero, emptyErr("peek")
	}
	val, err := s.opts.copy(s.top.value)
	if err != nil {
		var zero T
		return zero, failedErr("peek", "copy element", err)
	}
	return val, nil
}

// O(n)
func (s *Dynamic[T]) Concatenate(source Iterable[T]) error {
	s.checkInvariants()
	first, last, n, err := copyChain("concatenate", source, s.opts.copy)
	if err != nil {
		return err
	}
	s.attach(first, last, n)
	s.checkInvariants()
	return nil
}

// O(n)
func (s *Dynamic[T]) AssignFrom(source Iterable[T]) error {
	s.checkInvariants()
	first, last, n, err := copyChain("assign", source, s.opts.copy)
	if err != nil {
		return err
	}
	s.Clear()
	s.attach(first, last, n)
	s.checkInvariants()
	return nil
}

// Plus 返回一个新栈：先是本栈的元素，然后是 source 的元素
func (s *Dynamic[T]) Plus(source Iterable[T]) (*Dynamic[T], error) {
	out, err := NewDynamicFrom[T](s, WithCopy(s.opts.copy))
	if err != nil {
		return nil, err
	}
	if err = out.Concatenate(source); err != nil {
		return nil, err
	}
	return out, nil
}

// O(n)
func (s *Dynamic[T]) Clear() {
	s.checkInvariants()
	releaseChain(s.top, s.size)
	s.top = nil
	s.bottom = nil
	s.size = 0
}

// Cursor 从栈顶遍历到栈底
func (s *Dynamic[T]) Cursor() Cursor[T] {
	return newChainCursor(func() *chainNode[T] { return s.top })
}

// O(1)
func (s *Dynamic[T]) Size() int {
	return s.size
}

// O(1)
func (s *Dynamic[T]) Remaining() int {
	return -1
}

// O(1)
func (s *Dynamic[T]) IsEmpty() bool {
	return s.size == 0
}

// 链式栈永远不会满
func (s *Dynamic[T]) IsFull() bool {
	return false
}

func (s *Dynamic[T]) checkInvariants() {
	if s.size < 0 || (s.top == nil) != (s.size == 0) || (s.bottom == nil) != (s.top == nil) ||
		(s.bottom != nil && s.bottom.next != nil) {
		panic(fmt.Sprintf("collection: dynamic stack inconsistent (size %d, top nil %t, bottom nil %t)",
			s.size, s.top == nil, s.bottom == nil))
	}
}
