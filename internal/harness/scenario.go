package harness

import (
	"dstructs/pkg/collection"
	"slices"

	"github.com/pkg/errors"
)

const (
	KindBounded = "bounded"
	KindDynamic = "dynamic"
	KindDual    = "dual"
	KindList    = "list"
	KindArray   = "array"
)

var (
	kinds       = []string{KindBounded, KindDynamic, KindDual, KindList, KindArray}
	stackKinds  = []string{KindBounded, KindDynamic, KindDual}
	linearKinds = []string{KindBounded, KindDynamic, KindDual, KindList}
)

// check 返回 nil 表示场景通过，返回的错误描述第一个不符合预期的地方
type check func(sc *ScenarioConfig, elems []int) error

var checks = map[string]check{
	"lifo":     checkLIFO,
	"empty":    checkEmpty,
	"full":     checkFull,
	"equal":    checkEqual,
	"concat":   checkConcat,
	"navigate": checkNavigate,
	"index":    checkIndex,
}

// checkKinds 是每种检查允许作为被测对象的类型，未列出的检查接受全部类型
var checkKinds = map[string][]string{
	"lifo":     stackKinds,
	"empty":    stackKinds,
	"full":     stackKinds,
	"concat":   linearKinds,
	"navigate": {KindList},
	"index":    {KindArray},
}

func newStack(kind string, capacity, side int) (collection.Stack[int], error) {
	switch kind {
	case KindBounded:
		s, err := collection.NewBounded[int](capacity)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindDynamic:
		return collection.NewDynamic[int](), nil
	case KindDual:
		s, err := collection.NewDual[int](capacity)
		if err != nil {
			return nil, err
		}
		if err = s.Select(side); err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.Errorf("unknown kind %q", kind)
}

func filledStack(kind string, capacity, side int, elems []int) (collection.Stack[int], error) {
	s, err := newStack(kind, capacity, side)
	if err != nil {
		return nil, err
	}
	if err = s.PushAll(elems...); err != nil {
		return nil, errors.Wrapf(err, "fill %s stack", kind)
	}
	return s, nil
}

// checkLIFO 依次压入所有元素，再全部弹出，弹出顺序必须与压入顺序相反
func checkLIFO(sc *ScenarioConfig, elems []int) error {
	s, err := newStack(sc.Kind, sc.Capacity, sc.Side)
	if err != nil {
		return err
	}
	for _, v := range elems {
		if err = s.Push(v); err != nil {
			return errors.Wrapf(err, "push %d", v)
		}
	}
	for i := len(elems) - 1; i >= 0; i-- {
		got, err := s.Pop()
		if err != nil {
			return errors.Wrap(err, "pop")
		}
		if got != elems[i] {
			return errors.Errorf("expected %d from stack but got %d instead", elems[i], got)
		}
	}
	if _, err = s.Pop(); !errors.Is(err, collection.ErrEmpty) {
		return errors.Errorf("pop on drained stack returned %v", err)
	}
	return nil
}

// checkEmpty 清空后的栈反复 pop/peek 都必须报告 Empty 且没有副作用
func checkEmpty(sc *ScenarioConfig, elems []int) error {
	s, err := filledStack(sc.Kind, sc.Capacity, sc.Side, elems)
	if err != nil {
		return err
	}
	for range elems {
		if _, err = s.Pop(); err != nil {
			return errors.Wrap(err, "drain")
		}
	}
	for attempt := range 2 {
		if _, err = s.Pop(); !errors.Is(err, collection.ErrEmpty) {
			return errors.Errorf("pop attempt %d returned %v", attempt+1, err)
		}
		if _, err = s.Peek(); !errors.Is(err, collection.ErrEmpty) {
			return errors.Errorf("peek attempt %d returned %v", attempt+1, err)
		}
		if s.Size() != 0 {
			return errors.Errorf("size %d after failed pop", s.Size())
		}
	}
	return nil
}

// checkFull 超出容量的压栈必须报告 Full 且不改变元素个数；链式栈永远不满
func checkFull(sc *ScenarioConfig, elems []int) error {
	s, err := newStack(sc.Kind, sc.Capacity, sc.Side)
	if err != nil {
		return err
	}
	accepted := 0
	for _, v := range elems {
		err = s.Push(v)
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, collection.ErrFull):
			if s.Size() != accepted {
				return errors.Errorf("size %d after rejected push, want %d", s.Size(), accepted)
			}
			if !s.IsFull() {
				return errors.New("push rejected as full but IsFull is false")
			}
		default:
			return errors.Wrapf(err, "push %d", v)
		}
	}

	want := min(len(elems), sc.Capacity)
	if sc.Kind == KindDynamic {
		want = len(elems)
		if s.IsFull() {
			return errors.New("dynamic stack reported full")
		}
	}
	if accepted != want {
		return errors.Errorf("accepted %d pushes, want %d", accepted, want)
	}
	if !collection.Equal(collection.Iterable[int](s), reversed(elems[:want])) {
		return errors.Errorf("stack holds %s, want %v pushed in order", collection.Sprint[int](s), elems[:want])
	}
	return nil
}

// filled 构造一个遍历顺序与“依次压入 elems 的栈”相同的集合。
// 链表和数组按 elems 的逆序追加/写入；数组的长度等于元素个数。
func filled(kind string, capacity, side int, elems []int) (collection.Iterable[int], error) {
	switch kind {
	case KindList:
		l, err := collection.NewListOf(reversedSlice(elems))
		if err != nil {
			return nil, err
		}
		return l, nil
	case KindArray:
		a, err := collection.NewArrayOf(len(elems), reversedSlice(elems))
		if err != nil {
			return nil, err
		}
		return a, nil
	}
	return filledStack(kind, capacity, side, elems)
}

// filledLinear 与 filled 相同，但只接受可以整体追加的类型
func filledLinear(kind string, capacity, side int, elems []int) (collection.Linear[int], error) {
	if kind == KindList {
		l, err := collection.NewListOf(reversedSlice(elems))
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	return filledStack(kind, capacity, side, elems)
}

// checkEqual 用同一组元素构造两种不同的集合，它们必须相等，且都不等于少一个元素的栈
func checkEqual(sc *ScenarioConfig, elems []int) error {
	a, err := filled(sc.Kind, sc.Capacity, sc.Side, elems)
	if err != nil {
		return err
	}
	b, err := filled(sc.Against, sc.Capacity, 1-sc.Side, elems)
	if err != nil {
		return err
	}
	if !collection.Equal(a, b) {
		return errors.Errorf("%s %s != %s %s", sc.Kind, collection.Sprint(a), sc.Against, collection.Sprint(b))
	}
	if len(elems) == 0 {
		return nil
	}
	shorter, err := filledStack(KindDynamic, 0, 0, elems[:len(elems)-1])
	if err != nil {
		return err
	}
	if collection.Equal[int](a, shorter) || collection.Equal[int](b, shorter) {
		return errors.Errorf("%s compares equal to shorter %s", collection.Sprint(a), collection.Sprint[int](shorter))
	}
	return nil
}

// checkConcat 把 Extra 构成的源集合接到 Elements 构成的集合后面。
// 容量不足时必须报告 Full 且接收方保持不变。
func checkConcat(sc *ScenarioConfig, elems []int) error {
	dst, err := filledLinear(sc.Kind, sc.Capacity, sc.Side, elems)
	if err != nil {
		return err
	}
	src, err := filled(sc.Against, sc.Capacity, 1-sc.Side, sc.Extra)
	if err != nil {
		return err
	}
	before := collection.ToSlice[int](dst)
	room := -1
	if s, ok := dst.(collection.Stack[int]); ok {
		room = s.Remaining()
	}

	err = collection.Concat(dst, src)
	if room >= 0 && src.Size() > room {
		if !errors.Is(err, collection.ErrFull) {
			return errors.Errorf("concatenating %d onto %d free slots returned %v", src.Size(), room, err)
		}
		if !collection.Equal(collection.Iterable[int](dst), collection.FromSlice(before)) {
			return errors.Errorf("receiver changed to %s after rejected concatenation", collection.Sprint[int](dst))
		}
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "concatenate")
	}
	want := append(before, collection.ToSlice(src)...)
	if !collection.Equal(collection.Iterable[int](dst), collection.FromSlice(want)) {
		return errors.Errorf("concatenation gave %s, want %v", collection.Sprint[int](dst), want)
	}
	return nil
}

// checkNavigate 依次追加元素后沿当前位置逐个读取，再删除位于偶数位置的元素并在表头插入一个元素，
// 最后比较遍历结果
func checkNavigate(sc *ScenarioConfig, elems []int) error {
	l := collection.NewList[int]()
	for _, v := range elems {
		if err := l.Append(v); err != nil {
			return errors.Wrapf(err, "append %d", v)
		}
	}
	if len(elems) == 0 {
		if err := l.First(); !errors.Is(err, collection.ErrEmpty) {
			return errors.Errorf("first on empty list returned %v", err)
		}
		return nil
	}

	if err := l.First(); err != nil {
		return errors.Wrap(err, "first")
	}
	for i, want := range elems {
		got, err := l.Retrieve()
		if err != nil {
			return errors.Wrapf(err, "retrieve %d", i)
		}
		if got != want {
			return errors.Errorf("expected %d at position %d but got %d instead", want, i, got)
		}
		last, err := l.IsLast()
		if err != nil {
			return errors.Wrap(err, "is last")
		}
		if last != (i == len(elems)-1) {
			return errors.Errorf("is last %t at position %d of %d", last, i, len(elems))
		}
		if err = l.Next(); err != nil {
			return errors.Wrapf(err, "next %d", i)
		}
	}
	if _, err := l.Retrieve(); !errors.Is(err, collection.ErrOperationFailed) {
		return errors.Errorf("retrieve past the end returned %v", err)
	}

	if err := l.First(); err != nil {
		return errors.Wrap(err, "first")
	}
	var want []int
	for i, v := range elems {
		if i%2 == 0 {
			if err := l.Remove(); err != nil {
				return errors.Wrapf(err, "remove %d", v)
			}
			continue
		}
		want = append(want, v)
		if err := l.Next(); err != nil {
			return errors.Wrapf(err, "next %d", i)
		}
	}
	// 元素全部删除后 First 报告 Empty，Insert 同样落在表头
	head := -1
	if err := l.First(); err != nil && !errors.Is(err, collection.ErrEmpty) {
		return errors.Wrap(err, "first")
	}
	if err := l.Insert(head); err != nil {
		return errors.Wrap(err, "insert")
	}
	want = append([]int{head}, want...)
	if !collection.Equal(collection.Iterable[int](l), collection.FromSlice(want)) {
		return errors.Errorf("list holds %s, want %v", collection.Sprint[int](l), want)
	}
	return nil
}

// checkIndex 把元素写到数组的各个下标再读回，越界访问必须报告 InvalidArgument，
// 放不下的赋值必须报告 Full 且数组保持不变
func checkIndex(sc *ScenarioConfig, elems []int) error {
	a, err := collection.NewArray[int](len(elems))
	if err != nil {
		return err
	}
	for i, v := range elems {
		if err = a.Set(i, v); err != nil {
			return errors.Wrapf(err, "set %d", i)
		}
	}
	for i, want := range elems {
		got, err := a.At(i)
		if err != nil {
			return errors.Wrapf(err, "at %d", i)
		}
		if got != want {
			return errors.Errorf("expected %d at index %d but got %d instead", want, i, got)
		}
	}
	for _, i := range []int{-1, len(elems)} {
		if _, err = a.At(i); !errors.Is(err, collection.ErrInvalidArgument) {
			return errors.Errorf("at %d returned %v", i, err)
		}
	}
	err = a.AssignFrom(collection.FromSlice(append(slices.Clone(elems), 0)))
	if !errors.Is(err, collection.ErrFull) {
		return errors.Errorf("assigning %d elements to length %d returned %v", len(elems)+1, len(elems), err)
	}
	if !collection.Equal(collection.Iterable[int](a), collection.FromSlice(elems)) {
		return errors.Errorf("array changed to %s after rejected assignment", collection.Sprint[int](a))
	}
	return nil
}

// reversed 返回按压栈顺序给出的元素对应的遍历顺序
func reversed(elems []int) collection.Iterable[int] {
	return collection.FromSlice(reversedSlice(elems))
}

func reversedSlice(elems []int) []int {
	out := slices.Clone(elems)
	slices.Reverse(out)
	return out
}
