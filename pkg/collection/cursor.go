package collection

type cursorState uint8

const (
	cursorIdle cursorState = iota
	cursorPositioned
	cursorExhausted
)

// slotCursor 遍历一段连续槽位：从 first 开始，每次移动 step，共 n 个元素。
// window 在每次 Reset 时重新读取，live 用于检测游标创建后集合是否被截短。
type slotCursor[T any] struct {
	slots  []T
	window func() (first, n, step int)
	live   func(i int) bool

	pos   int
	step  int
	left  int
	state cursorState
}

func newSlotCursor[T any](slots []T, window func() (int, int, int), live func(int) bool) *slotCursor[T] {
	c := &slotCursor[T]{slots: slots, window: window, live: live}
	c.Reset()
	return c
}

func (c *slotCursor[T]) Reset() {
	first, n, step := c.window()
	c.pos, c.left, c.step = first, n, step
	if n > 0 {
		c.state = cursorPositioned
	} else {
		c.state = cursorExhausted
	}
}

func (c *slotCursor[T]) HasMore() bool {
	return c.state == cursorPositioned && c.left > 0
}

func (c *slotCursor[T]) Advance() error {
	if !c.HasMore() {
		return failedErr("advance", errCursorUndefined, nil)
	}
	c.left--
	c.pos += c.step
	if c.left == 0 {
		c.state = cursorExhausted
	}
	return nil
}

func (c *slotCursor[T]) Current() (T, error) {
	var zero T
	if !c.HasMore() {
		return zero, failedErr("current", errCursorUndefined, nil)
	}
	if c.pos < 0 || c.pos >= len(c.slots) || (c.live != nil && !c.live(c.pos)) {
		return zero, failedErr("current", "cursor invalidated by a structural change", nil)
	}
	return c.slots[c.pos], nil
}

type sliceIterable[T any] struct {
	items []T
}

// FromSlice 把一个切片包装为 Iterable，遍历顺序与切片顺序相同，不复制底层数组
func FromSlice[T any](items []T) Iterable[T] {
	return sliceIterable[T]{items: items}
}

func (s sliceIterable[T]) Size() int {
	return len(s.items)
}

func (s sliceIterable[T]) Cursor() Cursor[T] {
	return newSlotCursor(s.items, func() (int, int, int) {
		return 0, len(s.items), 1
	}, nil)
}
