package collection

// Cursor 遍历一个集合的元素，顺序由具体实现决定（所有栈都是从栈顶到栈底）。
//
// 同一集合同一时间只应有一个活动的 Cursor；集合结构被修改后继续使用旧的 Cursor 属于调用方错误，
// 实现只做越界检查，不保证结果。
type Cursor[T any] interface {
	// Reset 定位到第一个元素；集合为空时直接进入 exhausted 状态
	Reset()
	// HasMore 报告 Current 当前是否有效
	HasMore() bool
	// Advance 移动到下一个元素，HasMore 为 false 时返回 ErrOperationFailed
	Advance() error
	// Current 返回当前位置的元素，未定位时返回 ErrOperationFailed
	Current() (T, error)
}

// Iterable 是参与通用操作（相等、连接、赋值）所需的最小能力。
type Iterable[T any] interface {
	Size() int
	// Cursor 返回一个已经 Reset 过的独立游标
	Cursor() Cursor[T]
}

type Collection[T any] interface {
	Iterable[T]
	IsEmpty() bool
	Clear()
}

// Stack 是三种栈实现共有的操作集合。
type Stack[T any] interface {
	Collection[T]
	Push(val T) error
	PushAll(vals ...T) error
	Pop() (T, error)
	Peek() (T, error)
	IsFull() bool
	// Remaining 返回剩余可用容量，无上限时返回 -1
	Remaining() int
	Concatenate(source Iterable[T]) error
	AssignFrom(source Iterable[T]) error
}

// CopyFunc 复制一个元素。返回错误时，调用它的操作会以 ErrOperationFailed 失败并保持集合不变。
type CopyFunc[T any] func(T) (T, error)

type options[T any] struct {
	copy CopyFunc[T]
}

type Option[T any] func(*options[T])

// WithCopy 指定元素复制函数，用于深拷贝引用类型的元素
func WithCopy[T any](fn CopyFunc[T]) Option[T] {
	return func(o *options[T]) {
		o.copy = fn
	}
}

func newOptions[T any](opts []Option[T]) options[T] {
	o := options[T]{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.copy == nil {
		o.copy = assignCopy[T]
	}
	return o
}

func assignCopy[T any](v T) (T, error) {
	return v, nil
}

// 编译期检查
var (
	_ Stack[int] = (*Bounded[int])(nil)
	_ Stack[int] = (*Dynamic[int])(nil)
	_ Stack[int] = (*Dual[int])(nil)

	_ Collection[int] = (*List[int])(nil)
	_ Linear[int]     = (*List[int])(nil)
	_ Iterable[int]   = (*Array[int])(nil)
)
