package collection

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty           = errors.New("collection is empty")
	ErrFull            = errors.New("collection is full")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOperationFailed = errors.New("operation failed")
)

type Kind uint8

const (
	KindEmpty Kind = iota + 1
	KindFull
	KindInvalidArgument
	KindOperationFailed
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindFull:
		return "full"
	case KindInvalidArgument:
		return "invalid argument"
	case KindOperationFailed:
		return "operation failed"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) sentinel() error {
	switch k {
	case KindEmpty:
		return ErrEmpty
	case KindFull:
		return ErrFull
	case KindInvalidArgument:
		return ErrInvalidArgument
	case KindOperationFailed:
		return ErrOperationFailed
	}
	return nil
}

// Error 携带错误类型、出错的操作以及底层原因。
//
// errors.Is(err, ErrFull) 之类的判断对所有返回的 *Error 都成立，
// errors.As / errors.Unwrap 可取得元素复制或比较失败的原始错误。
type Error struct {
	Kind   Kind
	Op     string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// KindOf 返回 err 链上第一个 *Error 的类型，没有则返回 0
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func emptyErr(op string) error {
	return &Error{Kind: KindEmpty, Op: op}
}

func fullErr(op string, need, room int) error {
	return &Error{Kind: KindFull, Op: op, Detail: fmt.Sprintf("need %d, room for %d", need, room)}
}

func invalidErr(op, detail string) error {
	return &Error{Kind: KindInvalidArgument, Op: op, Detail: detail}
}

func failedErr(op, detail string, cause error) error {
	return &Error{Kind: KindOperationFailed, Op: op, Detail: detail, Err: cause}
}

const errCursorUndefined = "current iteration element is undefined"
