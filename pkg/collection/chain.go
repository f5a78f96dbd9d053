package collection

import "fmt"

// chainNode 是 Dynamic 与 List 共用的单向链表节点
type chainNode[T any] struct {
	value T
	next  *chainNode[T]
}

// copyChain 把 source 的元素按遍历顺序复制成一条尚未挂到任何集合上的链。
// 中途失败时释放已分配的节点，调用方此时尚未修改自身状态。
func copyChain[T any](op string, source Iterable[T], copyFn CopyFunc[T]) (first, last *chainNode[T], n int, err error) {
	cur := source.Cursor()
	for cur.HasMore() {
		var v T
		if v, err = cur.Current(); err != nil {
			releaseChain(first, n)
			return nil, nil, 0, failedErr(op, "read source element", err)
		}
		if v, err = copyFn(v); err != nil {
			releaseChain(first, n)
			return nil, nil, 0, failedErr(op, fmt.Sprintf("copy element %d", n), err)
		}
		node := &chainNode[T]{value: v}
		if first == nil {
			first = node
		} else {
			last.next = node
		}
		last = node
		n++
		if err = cur.Advance(); err != nil {
			releaseChain(first, n)
			return nil, nil, 0, failedErr(op, "advance source", err)
		}
	}
	if n != source.Size() {
		releaseChain(first, n)
		return nil, nil, 0, failedErr(op, fmt.Sprintf("source reported %d elements but yielded %d", source.Size(), n), nil)
	}
	return first, last, n, nil
}

// copyValues 与 copyChain 相同，但源是一组按顺序给出的值
func copyValues[T any](op string, vals []T, copyFn CopyFunc[T]) (first, last *chainNode[T], err error) {
	for i, v := range vals {
		c, err := copyFn(v)
		if err != nil {
			releaseChain(first, i)
			return nil, nil, failedErr(op, fmt.Sprintf("copy element %d", i), err)
		}
		node := &chainNode[T]{value: c}
		if first == nil {
			first = node
		} else {
			last.next = node
		}
		last = node
	}
	return first, last, nil
}

// releaseChain 断开从 node 开始的 n 个节点，避免被移除的节点继续引用元素
func releaseChain[T any](node *chainNode[T], n int) {
	var zero T
	for ; node != nil && n > 0; n-- {
		next := node.next
		node.value = zero
		node.next = nil
		node = next
	}
}

// chainCursor 从 head() 开始沿 next 遍历，每次 Reset 重新读取 head
type chainCursor[T any] struct {
	head  func() *chainNode[T]
	node  *chainNode[T]
	state cursorState
}

func newChainCursor[T any](head func() *chainNode[T]) *chainCursor[T] {
	c := &chainCursor[T]{head: head}
	c.Reset()
	return c
}

func (c *chainCursor[T]) Reset() {
	c.node = c.head()
	if c.node != nil {
		c.state = cursorPositioned
	} else {
		c.state = cursorExhausted
	}
}

func (c *chainCursor[T]) HasMore() bool {
	return c.state == cursorPositioned && c.node != nil
}

func (c *chainCursor[T]) Advance() error {
	if !c.HasMore() {
		return failedErr("advance", errCursorUndefined, nil)
	}
	c.node = c.node.next
	if c.node == nil {
		c.state = cursorExhausted
	}
	return nil
}

func (c *chainCursor[T]) Current() (T, error) {
	if !c.HasMore() {
		var zero T
		return zero, failedErr("current", errCursorUndefined, nil)
	}
	return c.node.value, nil
}
