package writers

// Functions for writing savefiles.  The mirror image of readers.Reader.

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"ftledit/types"
)

// Writer writes little-endian int32s and things built from them.
//
// Writes don't return errors: the first failure from the underlying writer is kept,
// everything after it is dropped, and Err reports it at the end.  The codec checks
// the object graph before writing, so a short write is the only thing that can go wrong here.
type Writer struct {
	w    io.Writer
	pos  int64
	err  error
	path []string
	buf  [4]byte
}

func NewWriter(w io.Writer, root string) *Writer {
	return &Writer{w: w, path: []string{root}}
}

func (w *Writer) Offset() int64 {
	return w.pos
}

// Err is the first error the underlying writer returned, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) Enter(format string, args ...any) {
	w.path = append(w.path, fmt.Sprintf(format, args...))
}

func (w *Writer) Leave() {
	w.path = w.path[:len(w.path)-1]
}

func (w *Writer) Path() string {
	return strings.Join(w.path, ".")
}

// Mismatch is for object graphs that can't be written in the shape they claim
// (e.g. five rooms on a four-room layout).
func (w *Writer) Mismatch(format string, args ...any) error {
	return &types.StructuralMismatchError{Path: w.Path(), Offset: w.pos, Detail: fmt.Sprintf(format, args...)}
}

func (w *Writer) write(b []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(b)
	w.pos += int64(n)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.err = &types.IOFailureError{Op: fmt.Sprintf("write at offset %d", w.pos), Err: err}
	}
}

func (w *Writer) WriteInt(n int32) {
	binary.LittleEndian.PutUint32(w.buf[:], uint32(n))
	w.write(w.buf[:])
}

func (w *Writer) WriteBool(b bool) {
	if b {
		w.WriteInt(1)
	} else {
		w.WriteInt(0)
	}
}

func (w *Writer) WriteString(s string) {
	w.WriteInt(int32(len(s)))
	w.write([]byte(s))
}

// WriteCount writes a list length.
func (w *Writer) WriteCount(n int) {
	w.WriteInt(int32(n))
}

// WriteMystery puts captured bytes back exactly as they were found.
func (w *Writer) WriteMystery(m types.MysteryBytes) {
	w.write(m.Data)
}

// WriteRepeated encodes every element under the path segment name[i], stopping at
// the first error.  No count is written.
func WriteRepeated[T any](w *Writer, name string, items []T, encode func(w *Writer, v T) error) error {
	for i := range items {
		w.Enter("%s[%d]", name, i)
		if err := encode(w, items[i]); err != nil {
			return err
		}
		w.Leave()
	}
	return nil
}

// WriteList is WriteCount followed by WriteRepeated.
func WriteList[T any](w *Writer, name string, items []T, encode func(w *Writer, v T) error) error {
	w.WriteCount(len(items))
	return WriteRepeated(w, name, items, encode)
}

func WriteStrings(w *Writer, items []string) {
	w.WriteCount(len(items))
	for _, s := range items {
		w.WriteString(s)
	}
}

func WriteBools(w *Writer, items []bool) {
	w.WriteCount(len(items))
	for _, b := range items {
		w.WriteBool(b)
	}
}

func WriteInts(w *Writer, items []int32) {
	w.WriteCount(len(items))
	for _, n := range items {
		w.WriteInt(n)
	}
}

// WriteIntFields writes ints back to back, with no count.
func (w *Writer) WriteIntFields(items ...int32) {
	for _, n := range items {
		w.WriteInt(n)
	}
}
