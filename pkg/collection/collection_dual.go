package collection

import "fmt"

// Dual 是共享同一块定长缓冲区的两个栈，分别从两端向中间生长：
//
//	  0     1     2                cap-3 cap-2 cap-1
//	+-----+-----+-----+-- ... --+-----+-----+-----+
//	| s0  | s0  |  -  |         |  -  | s1  | s1  |
//	+-----+-----+-----+-- ... --+-----+-----+-----+
//	             ^                       ^
//	      top0 --+                       +-- top1
//
// 0 号栈占用 [0, top0)，1 号栈占用 [top1, cap)。top0 == top1 时两个栈共同用尽缓冲区，
// 没有保留分隔单元，两个栈合计可用容量等于 cap。
//
// Push/Pop/Peek/Size/Cursor 等操作都作用于 Select 选中的那一侧，IsFull 对两侧相同。
// 遍历过程中切换所选侧不会影响已创建的游标，但另一侧边界移动后原游标即失效。
type Dual[T any] struct {
	slots    []T
	top0     int
	top1     int
	selected int
	opts     options[T]
}

func NewDual[T any](capacity int, opts ...Option[T]) (*Dual[T], error) {
	if capacity < 0 {
		return nil, invalidErr("new dual", fmt.Sprintf("capacity %d is negative", capacity))
	}
	s := &Dual[T]{
		slots: make([]T, capacity),
		top1:  capacity,
		opts:  newOptions(opts),
	}
	s.checkInvariants()
	return s, nil
}

// NewDualFrom 创建双栈，0 号栈复制 source0，1 号栈复制 source1，选中 0 号栈
func NewDualFrom[T any](capacity int, source0, source1 Iterable[T], opts ...Option[T]) (*Dual[T], error) {
	s, err := NewDual(capacity, opts...)
	if err != nil {
		return nil, err
	}
	if need := source0.Size() + source1.Size(); need > capacity {
		return nil, fullErr("new dual", need, capacity)
	}
	s.selected = 1
	if err = s.AssignFrom(source1); err != nil {
		return nil, err
	}
	s.selected = 0
	if err = s.AssignFrom(source0); err != nil {
		return nil, err
	}
	return s, nil
}

// NewDualOf 依次把 elems0 压入 0 号栈、elems1 压入 1 号栈
func NewDualOf[T any](capacity int, elems0, elems1 []T, opts ...Option[T]) (*Dual[T], error) {
	if need := len(elems0) + len(elems1); need > capacity {
		return nil, invalidErr("new dual", fmt.Sprintf("%d elements can't fit in capacity %d", need, capacity))
	}
	s, err := NewDual(capacity, opts...)
	if err != nil {
		return nil, err
	}
	s.selected = 1
	if err = s.PushAll(elems1...); err != nil {
		return nil, err
	}
	s.selected = 0
	if err = s.PushAll(elems0...); err != nil {
		return nil, err
	}
	return s, nil
}

// Select 选择后续操作作用的栈，只接受 0 或 1
func (s *Dual[T]) Select(side int) error {
	s.checkInvariants()
	if side != 0 && side != 1 {
		return invalidErr("select", fmt.Sprintf("side %d is neither 0 nor 1", side))
	}
	s.selected = side
	return nil
}

func (s *Dual[T]) Selected() int {
	return s.selected
}

// O(1)
func (s *Dual[T]) Push(val T) error {
	s.checkInvariants()
	if s.top0 == s.top1 {
		return fullErr("push", 1, 0)
	}
	c, err := s.opts.copy(val)
	if err != nil {
		return failedErr("push", "copy element", err)
	}
	if s.selected == 0 {
		s.slots[s.top0] = c
		s.top0++
	} else {
		s.top1--
		s.slots[s.top1] = c
	}
	s.checkInvariants()
	return nil
}

// O(n)，全部成功或全部不生效
func (s *Dual[T]) PushAll(vals ...T) error {
	s.checkInvariants()
	if len(vals) > s.Remaining() {
		return fullErr("push all", len(vals), s.Remaining())
	}
	staged, err := stageValues("push all", vals, s.opts.copy)
	if err != nil {
		return err
	}
	if s.selected == 0 {
		copy(s.slots[s.top0:], staged)
		s.top0 += len(staged)
	} else {
		for _, v := range staged {
			s.top1--
			s.slots[s.top1] = v
		}
	}
	s.checkInvariants()
	return nil
}

// O(1)
func (s *Dual[T]) Pop() (T, error) {
	s.checkInvariants()
	var zero T
	if s.Size() == 0 {
		return zero, emptyErr("pop")
	}
	var val T
	if s.selected == 0 {
		s.top0--
		val = s.slots[s.top0]
		s.slots[s.top0] = zero
	} else {
		val = s.slots[s.top1]
		s.slots[s.top1] = zero
		s.top1++
	}
	s.checkInvariants()
	return val, nil
}

// O(1)
func (s *Dual[T]) Peek() (T, error) {
	s.checkInvariants()
	if s.Size() == 0 {
		var zero T
		return zero, emptyErr("peek")
	}
	top := s.top1
	if s.selected == 0 {
		top = s.top0 - 1
	}
	val, err := s.opts.copy(s.slots[top])
	if err != nil {
		var zero T
		return zero, failedErr("peek", "copy element", err)
	}
	return val, nil
}

// O(n)
func (s *Dual[T]) Concatenate(source Iterable[T]) error {
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

// AssignFrom 替换所选栈的内容，另一侧不受影响
func (s *Dual[T]) AssignFrom(source Iterable[T]) error {
	s.checkInvariants()
	if n, room := source.Size(), s.Size()+s.Remaining(); n > room {
		return fullErr("assign", n, room)
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

// AssignPair 用 source 的两个栈分别替换本对象的两个栈，保持当前的选择
func (s *Dual[T]) AssignPair(source *Dual[T]) error {
	s.checkInvariants()
	side0, side1 := source.sideView(0), source.sideView(1)
	if need := side0.Size() + side1.Size(); need > len(s.slots) {
		return fullErr("assign pair", need, len(s.slots))
	}
	staged0, err := stage("assign pair", side0, s.opts.copy)
	if err != nil {
		return err
	}
	staged1, err := stage("assign pair", side1, s.opts.copy)
	if err != nil {
		return err
	}
	// 两侧都先清空，否则一侧的旧内容可能挡住另一侧的新内容
	selected := s.selected
	clear(s.slots)
	s.top0, s.top1 = 0, len(s.slots)
	s.selected = 1
	s.appendBottom(staged1)
	s.selected = 0
	s.appendBottom(staged0)
	s.selected = selected
	s.checkInvariants()
	return nil
}

// appendBottom 把 staged 接到所选栈遍历顺序的末尾，调用方已检查容量
func (s *Dual[T]) appendBottom(staged []T) {
	n := len(staged)
	if n == 0 {
		return
	}
	if s.selected == 0 {
		copy(s.slots[n:s.top0+n], s.slots[:s.top0])
		for i, v := range staged {
			s.slots[n-1-i] = v
		}
		s.top0 += n
		return
	}
	end := len(s.slots)
	copy(s.slots[s.top1-n:end-n], s.slots[s.top1:end])
	copy(s.slots[end-n:], staged)
	s.top1 -= n
}

// Clear 只清空所选的栈
func (s *Dual[T]) Clear() {
	s.checkInvariants()
	if s.selected == 0 {
		clear(s.slots[:s.top0])
		s.top0 = 0
	} else {
		clear(s.slots[s.top1:])
		s.top1 = len(s.slots)
	}
}

// Cursor 从所选栈的栈顶遍历到栈底
func (s *Dual[T]) Cursor() Cursor[T] {
	return s.sideView(s.selected).Cursor()
}

// Side 返回指定一侧的只读视图，不改变当前选择
func (s *Dual[T]) Side(side int) (Iterable[T], error) {
	if side != 0 && side != 1 {
		return nil, invalidErr("side", fmt.Sprintf("side %d is neither 0 nor 1", side))
	}
	return s.sideView(side), nil
}

func (s *Dual[T]) sideView(side int) dualSide[T] {
	return dualSide[T]{dual: s, side: side}
}

// O(1)
func (s *Dual[T]) Size() int {
	return s.sideSize(s.selected)
}

func (s *Dual[T]) sideSize(side int) int {
	if side == 0 {
		return s.top0
	}
	return len(s.slots) - s.top1
}

// Remaining 返回两个栈之间尚未使用的单元数
func (s *Dual[T]) Remaining() int {
	return s.top1 - s.top0
}

func (s *Dual[T]) Capacity() int {
	return len(s.slots)
}

// Bounds 返回两个生长边界 top0 与 top1
func (s *Dual[T]) Bounds() (int, int) {
	return s.top0, s.top1
}

// O(1)
func (s *Dual[T]) IsEmpty() bool {
	return s.Size() == 0
}

// IsFull 在两个栈共同用尽缓冲区时为 true，与所选栈无关
func (s *Dual[T]) IsFull() bool {
	return s.top0 == s.top1
}

func (s *Dual[T]) checkInvariants() {
	if s.top0 < 0 || s.top0 > s.top1 || s.top1 > len(s.slots) {
		panic(fmt.Sprintf("collection: dual stack bounds violate 0 <= %d <= %d <= %d", s.top0, s.top1, len(s.slots)))
	}
	if s.selected != 0 && s.selected != 1 {
		panic(fmt.Sprintf("collection: dual stack selected side %d", s.selected))
	}
}

type dualSide[T any] struct {
	dual *Dual[T]
	side int
}

func (v dualSide[T]) Size() int {
	return v.dual.sideSize(v.side)
}

func (v dualSide[T]) Cursor() Cursor[T] {
	d := v.dual
	if v.side == 0 {
		return newSlotCursor(d.slots, func() (int, int, int) {
			return d.top0 - 1, d.top0, -1
		}, func(i int) bool {
			return i < d.top0
		})
	}
	return newSlotCursor(d.slots, func() (int, int, int) {
		return d.top1, len(d.slots) - d.top1, 1
	}, func(i int) bool {
		return i >= d.top1
	})
}
