package readers

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"ftledit/types"
)

// Reader is a cursor over a savefile.
//
// Everything in these files is a little-endian int32 or built from them: booleans
// are whole ints, strings are an int length followed by that many bytes.
// The reader knows how big the stream is, so running off the end is reported as
// truncation with the numbers, rather than a bare EOF.
//
// It also keeps the path of the entity being decoded ("savedgame.ship[0].room[3]")
// so errors can say where things went wrong.
type Reader struct {
	r    io.ReadSeeker
	pos  int64
	size int64
	path []string
	buf  [4]byte
}

// NewReader rewinds r to the start and measures it.
func NewReader(r io.ReadSeeker, root string) (*Reader, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, &types.IOFailureError{Op: "measure stream", Err: err}
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, &types.IOFailureError{Op: "rewind stream", Err: err}
	}
	return &Reader{r: r, size: size, path: []string{root}}, nil
}

// Offset is the absolute position of the next byte to be read.
func (r *Reader) Offset() int64 {
	return r.pos
}

func (r *Reader) Size() int64 {
	return r.size
}

func (r *Reader) Remaining() int64 {
	return r.size - r.pos
}

// Enter pushes an entity path segment.  Pair with Leave.
func (r *Reader) Enter(format string, args ...any) {
	r.path = append(r.path, fmt.Sprintf(format, args...))
}

func (r *Reader) Leave() {
	r.path = r.path[:len(r.path)-1]
}

func (r *Reader) Path() string {
	return strings.Join(r.path, ".")
}

// Mismatch builds a structural error located at the current path and offset.
func (r *Reader) Mismatch(format string, args ...any) error {
	return &types.StructuralMismatchError{Path: r.Path(), Offset: r.pos, Detail: fmt.Sprintf(format, args...)}
}

func (r *Reader) truncated(needed int64) error {
	return &types.TruncatedInputError{Path: r.Path(), Offset: r.pos, Needed: needed, Available: r.Remaining()}
}

func (r *Reader) readFull(into []byte) error {
	if int64(len(into)) > r.Remaining() {
		return r.truncated(int64(len(into)))
	}
	n, err := io.ReadFull(r.r, into)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			// The stream shrank under us
			return r.truncated(int64(len(into)))
		}
		return &types.IOFailureError{Op: fmt.Sprintf("read at offset %d", r.pos), Err: err}
	}
	r.pos += int64(n)
	return nil
}

// ReadInt reads a little-endian int32.
func (r *Reader) ReadInt() (int32, error) {
	if err := r.readFull(r.buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(r.buf[:])), nil
}

// ReadBool reads an int that must be 0 or 1.
// Anything else would be changed by writing it back, so it is an error rather than "true".
func (r *Reader) ReadBool() (bool, error) {
	start := r.pos
	n, err := r.ReadInt()
	if err != nil {
		return false, err
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, &types.StructuralMismatchError{Path: r.Path(), Offset: start, Detail: fmt.Sprintf("boolean field holds %d", n)}
}

// ReadString reads a length-prefixed string.  There is no terminator, and the
// bytes are taken as they are.
func (r *Reader) ReadString() (string, error) {
	start := r.pos
	n, err := r.ReadInt()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", &types.StructuralMismatchError{Path: r.Path(), Offset: start, Detail: fmt.Sprintf("negative string length %d", n)}
	}
	into := make([]byte, n)
	if err := r.readFull(into); err != nil {
		return "", err
	}
	return string(into), nil
}

// minElementSize is the smallest thing a count can count: one int.
const minElementSize = 4

// ReadCount reads a list length and checks it could possibly fit in what's left,
// so a garbage count fails here instead of after allocating a few gigabytes.
func (r *Reader) ReadCount() (int, error) {
	start := r.pos
	n, err := r.ReadInt()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &types.StructuralMismatchError{Path: r.Path(), Offset: start, Detail: fmt.Sprintf("negative count %d", n)}
	}
	if int64(n)*minElementSize > r.Remaining() {
		return 0, &types.StructuralMismatchError{Path: r.Path(), Offset: start,
			Detail: fmt.Sprintf("count %d needs at least %d bytes, only %d left", n, int64(n)*minElementSize, r.Remaining())}
	}
	return int(n), nil
}

// ReadRepeated decodes exactly n elements, each under the path segment name[i].
func ReadRepeated[T any](r *Reader, name string, n int, decode func(r *Reader) (T, error)) ([]T, error) {
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		r.Enter("%s[%d]", name, i)
		v, err := decode(r)
		if err != nil {
			return nil, err
		}
		r.Leave()
		out = append(out, v)
	}
	return out, nil
}

// ReadList is ReadCount followed by ReadRepeated.
func ReadList[T any](r *Reader, name string, decode func(r *Reader) (T, error)) ([]T, error) {
	n, err := r.ReadCount()
	if err != nil {
		return nil, err
	}
	return ReadRepeated(r, name, n, decode)
}

// ReadStrings and ReadBools are the common lists.
func ReadStrings(r *Reader, name string) ([]string, error) {
	return ReadList(r, name, (*Reader).ReadString)
}

func ReadBools(r *Reader, name string) ([]bool, error) {
	return ReadList(r, name, (*Reader).ReadBool)
}

func ReadInts(r *Reader, name string) ([]int32, error) {
	return ReadList(r, name, (*Reader).ReadInt)
}

// CaptureTrailing grabs everything from here to boundary as mystery bytes.
// Only the caller knows where the next thing we understand starts (often "the end
// of the file"), so it has to say.  A zero-length span is not an error, and comes
// back with ok == false.
func (r *Reader) CaptureTrailing(boundary int64) (types.MysteryBytes, bool, error) {
	if boundary < r.pos || boundary > r.size {
		return types.MysteryBytes{}, false, r.Mismatch("mystery boundary %d outside [%d, %d]", boundary, r.pos, r.size)
	}
	if boundary == r.pos {
		return types.MysteryBytes{}, false, nil
	}
	m := types.MysteryBytes{Context: r.Path(), Offset: r.pos, Data: make([]byte, boundary-r.pos)}
	if err := r.readFull(m.Data); err != nil {
		return types.MysteryBytes{}, false, err
	}
	return m, true, nil
}

// ReadIntsInto reads consecutive ints into the given fields, in order.
func (r *Reader) ReadIntsInto(dst ...*int32) error {
	for _, d := range dst {
		n, err := r.ReadInt()
		if err != nil {
			return err
		}
		*d = n
	}
	return nil
}

// ReadBoolsInto is ReadIntsInto for booleans.
func (r *Reader) ReadBoolsInto(dst ...*bool) error {
	for _, d := range dst {
		b, err := r.ReadBool()
		if err != nil {
			return err
		}
		*d = b
	}
	return nil
}
