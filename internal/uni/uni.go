package uni

import (
	"github.com/clipperhouse/uax29/v2/words"
)

// Iterator iterates over Unicode words (UAX #29 word boundaries). Whitespace and punctuation between words are themselves tokens, so concatenating every Value()
// reconstructs the input exactly.
type Iterator[T string | []byte] struct {
	iter *words.Iterator[T]
}

// NewWordIterator returns a new word iterator for str (string or []byte).
func NewWordIterator[T string | []byte](str T) *Iterator[T] {
	return &Iterator[T]{iter: newWordIterator(str)}
}

func (iter *Iterator[T]) Next() bool {
	return iter.iter.Next()
}

func (iter *Iterator[T]) Value() T {
	return iter.iter.Value()
}

// Start returns the byte position of the current token in the original data.
func (iter *Iterator[T]) Start() int {
	return iter.iter.Start()
}

// End returns the byte position after the current token in the original data. Allows looping over bytes [Start(), End()).
func (iter *Iterator[T]) End() int {
	return iter.iter.End()
}

// Words returns all word tokens of str in order. Concatenating the result reconstructs str.
func Words(str string) []string {
	var out []string
	iter := NewWordIterator(str)
	for iter.Next() {
		out = append(out, iter.Value())
	}
	return out
}

func newWordIterator[T string | []byte](text T) *words.Iterator[T] {
	switch v := any(text).(type) {
	case string:
		iter := words.FromString(v)
		return any(&iter).(*words.Iterator[T])
	case []byte:
		iter := words.FromBytes(v)
		return any(&iter).(*words.Iterator[T])
	default:
		panic("unsupported type")
	}
}
