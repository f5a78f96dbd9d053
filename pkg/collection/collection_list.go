package collection

import "fmt"

// List 是带当前位置的单向链表，遍历顺序从 first 到 last。
//
// 当前位置由 (prev, current) 表示：prev 为 nil 时 current 就是 first，否则 prev.next == current。
// current 为 nil 表示位置已经越过最后一个元素，此时 prev 是 last。
// Insert 在当前位置之前插入，Remove 删除当前元素，Append 总是接到末尾；三者都会移动当前位置。
type List[T any] struct {
	first   *chainNode[T]
	last    *chainNode[T]
	prev    *chainNode[T]
	current *chainNode[T]
	size    int
	opts    options[T]
}

func NewList[T any](opts ...Option[T]) *List[T] {
	return &List[T]{opts: newOptions(opts)}
}

// NewListFrom 创建链表并深拷贝 source 的全部元素，遍历顺序与 source 相同
func NewListFrom[T any](source Iterable[T], opts ...Option[T]) (*List[T], error) {
	l := NewList(opts...)
	if err := l.Concatenate(source); err != nil {
		return nil, err
	}
	return l, nil
}

// NewListOf 按 elems 的顺序依次追加
func NewListOf[T any](elems []T, opts ...Option[T]) (*List[T], error) {
	l := NewList(opts...)
	if err := l.AppendAll(elems...); err != nil {
		return nil, err
	}
	return l, nil
}

// First 把当前位置移到第一个元素
func (l *List[T]) First() error {
	l.checkInvariants()
	if l.first == nil {
		return emptyErr("first")
	}
	l.prev, l.current = nil, l.first
	return nil
}

// Next 把当前位置后移一个元素，越过末尾后再调用返回 ErrOperationFailed
func (l *List[T]) Next() error {
	l.checkInvariants()
	if l.first == nil {
		return emptyErr("next")
	}
	if l.current == nil {
		return failedErr("next", "there is no next element", nil)
	}
	l.prev, l.current = l.current, l.current.next
	return nil
}

// Retrieve 返回当前元素的副本
func (l *List[T]) Retrieve() (T, error) {
	l.checkInvariants()
	var zero T
	if l.first == nil {
		return zero, emptyErr("retrieve")
	}
	if l.current == nil {
		return zero, failedErr("retrieve", "position is past the last element", nil)
	}
	val, err := l.opts.copy(l.current.value)
	if err != nil {
		return zero, failedErr("retrieve", "copy element", err)
	}
	return val, nil
}

// IsLast 报告当前位置是否在最后一个元素上
func (l *List[T]) IsLast() (bool, error) {
	if l.first == nil {
		return false, emptyErr("is last")
	}
	return l.current == l.last, nil
}

// O(1) 在当前位置之前插入，新元素成为当前元素。位置越过末尾时等同于 Append。
func (l *List[T]) Insert(val T) error {
	l.checkInvariants()
	c, err := l.opts.copy(val)
	if err != nil {
		return failedErr("insert", "copy element", err)
	}
	node := &chainNode[T]{value: c, next: l.current}
	if l.prev == nil {
		l.first = node
	} else {
		l.prev.next = node
	}
	if l.current == nil {
		l.last = node
	}
	l.current = node
	l.size++
	l.checkInvariants()
	return nil
}

// O(1) 追加到末尾，新元素成为当前元素
func (l *List[T]) Append(val T) error {
	l.checkInvariants()
	c, err := l.opts.copy(val)
	if err != nil {
		return failedErr("append", "copy element", err)
	}
	node := &chainNode[T]{value: c}
	if l.last == nil {
		l.first = node
	} else {
		l.last.next = node
	}
	l.prev, l.current = l.last, node
	l.last = node
	l.size++
	l.checkInvariants()
	return nil
}

// O(n)，全部成功或全部不生效。不移动当前位置，除非位置已越过末尾，
// 此时它落在第一个新元素上。
func (l *List[T]) AppendAll(vals ...T) error {
	if len(vals) == 0 {
		return nil
	}
	l.checkInvariants()
	first, last, err := copyValues("append all", vals, l.opts.copy)
	if err != nil {
		return err
	}
	l.attach(first, last, len(vals))
	l.checkInvariants()
	return nil
}

// O(1) 删除当前元素，它的后继成为当前元素
func (l *List[T]) Remove() error {
	l.checkInvariants()
	if l.first == nil {
		return emptyErr("remove")
	}
	if l.current == nil {
		return failedErr("remove", "there is no current element", nil)
	}
	out := l.current
	next := out.next
	if l.prev == nil {
		l.first = next
	} else {
		l.prev.next = next
	}
	if l.last == out {
		l.last = l.prev
	}
	l.current = next
	l.size--
	releaseChain(out, 1)
	l.checkInvariants()
	return nil
}

// O(n) 与 AppendAll 的位置规则相同
func (l *List[T]) Concatenate(source Iterable[T]) error {
	l.checkInvariants()
	first, last, n, err := copyChain("concatenate", source, l.opts.copy)
	if err != nil {
		return err
	}
	l.attach(first, last, n)
	l.checkInvariants()
	return nil
}

// AssignFrom 替换全部元素，当前位置回到第一个元素
func (l *List[T]) AssignFrom(source Iterable[T]) error {
	l.checkInvariants()
	first, last, n, err := copyChain("assign", source, l.opts.copy)
	if err != nil {
		return err
	}
	l.Clear()
	l.attach(first, last, n)
	l.checkInvariants()
	return nil
}

// Plus 返回一个新链表：先是本链表的元素，然后是 source 的元素
func (l *List[T]) Plus(source Iterable[T]) (*List[T], error) {
	out, err := NewListFrom[T](l, WithCopy(l.opts.copy))
	if err != nil {
		return nil, err
	}
	if err = out.Concatenate(source); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *List[T]) attach(first, last *chainNode[T], n int) {
	if first == nil {
		return
	}
	if l.last == nil {
		l.first = first
	} else {
		l.last.next = first
	}
	if l.current == nil {
		l.current = first
	}
	l.last = last
	l.size += n
}

// O(n)
func (l *List[T]) Clear() {
	l.checkInvariants()
	releaseChain(l.first, l.size)
	l.first, l.last = nil, nil
	l.prev, l.current = nil, nil
	l.size = 0
}

// Cursor 从第一个元素遍历到最后一个，与当前位置无关
func (l *List[T]) Cursor() Cursor[T] {
	return newChainCursor(func() *chainNode[T] { return l.first })
}

// O(1)
func (l *List[T]) Size() int {
	return l.size
}

// O(1)
func (l *List[T]) IsEmpty() bool {
	return l.size == 0
}

func (l *List[T]) checkInvariants() {
	ok := l.size >= 0 &&
		(l.first == nil) == (l.size == 0) &&
		(l.last == nil) == (l.first == nil) &&
		(l.last == nil || l.last.next == nil) &&
		(l.prev != nil || l.current == l.first) &&
		(l.prev == nil || l.prev.next == l.current)
	if !ok {
		panic(fmt.Sprintf("collection: list inconsistent (size %d, first nil %t, current nil %t, prev nil %t)",
			l.size, l.first == nil, l.current == nil, l.prev == nil))
	}
}
