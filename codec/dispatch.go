package codec

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"

	"ftledit/readers"
	"ftledit/types"
	"ftledit/writers"
)

// Stage is how far a decode got.
type Stage int

const (
	StageUnstarted Stage = iota
	StageHeaderRead
	StageBodyDecoded
	StageValidated
)

func (s Stage) String() string {
	switch s {
	case StageUnstarted:
		return "unstarted"
	case StageHeaderRead:
		return "header read"
	case StageBodyDecoded:
		return "body decoded"
	case StageValidated:
		return "validated"
	}
	return fmt.Sprintf("stage %d", int(s))
}

// DecodeError is what a failed decode returns.  Stage is the last stage that
// completed; Err is one of the types package errors (or a catalog error).
type DecodeError struct {
	Document string
	Stage    Stage
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s failed (%s): %v", e.Document, e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type EncodeError struct {
	Document string
	Err      error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding %s failed: %v", e.Document, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Dispatcher maps format versions to feature sets for one kind of document.
// The body codecs look at the features, never at the version number.
type Dispatcher[F any] struct {
	document string
	formats  map[int32]F
}

func NewDispatcher[F any](document string) *Dispatcher[F] {
	return &Dispatcher[F]{document: document, formats: map[int32]F{}}
}

// Register adds a version.  Registering the same version twice is an error.
func (d *Dispatcher[F]) Register(version int32, features F) error {
	if _, ok := d.formats[version]; ok {
		return fmt.Errorf("%s format version %d registered twice", d.document, version)
	}
	d.formats[version] = features
	return nil
}

func (d *Dispatcher[F]) mustRegister(version int32, features F) {
	if err := d.Register(version, features); err != nil {
		panic(err)
	}
}

// Supported lists the registered versions in ascending order.
func (d *Dispatcher[F]) Supported() []int32 {
	return slices.Sorted(maps.Keys(d.formats))
}

func (d *Dispatcher[F]) Lookup(version int32) (F, error) {
	f, ok := d.formats[version]
	if !ok {
		return f, &types.UnsupportedFormatVersionError{Document: d.document, Got: version, Supported: d.Supported()}
	}
	return f, nil
}

// bodyDecoder reads everything after the version tag, up to (not including) the
// mystery bytes.
type bodyDecoder[F, D any] func(r *readers.Reader, version int32, f F) (D, error)

type bodyEncoder[F, D any] func(w *writers.Writer, f F, doc D) error

// decode runs the common pipeline: version tag, body, then trailing capture, which
// accounts for whatever the body left.
func decode[F, D any](d *Dispatcher[F], rs io.ReadSeeker, body bodyDecoder[F, D]) (D, []types.MysteryBytes, error) {
	var zero D
	stage := StageUnstarted
	fail := func(err error) (D, []types.MysteryBytes, error) {
		return zero, nil, &DecodeError{Document: d.document, Stage: stage, Err: err}
	}

	r, err := readers.NewReader(rs, d.document)
	if err != nil {
		return fail(err)
	}
	version, err := r.ReadInt()
	if err != nil {
		return fail(err)
	}
	features, err := d.Lookup(version)
	if err != nil {
		return fail(err)
	}
	stage = StageHeaderRead

	doc, err := body(r, version, features)
	if err != nil {
		return fail(err)
	}
	stage = StageBodyDecoded

	var mystery []types.MysteryBytes
	m, ok, err := r.CaptureTrailing(r.Size())
	if err != nil {
		return fail(err)
	}
	if ok {
		mystery = append(mystery, m)
	}
	stage = StageValidated
	return doc, mystery, nil
}

// encode is the reverse of decode.  Output is built in memory first so a graph that
// fails a structural check never produces a partial file.
func encode[F, D any](d *Dispatcher[F], version int32, doc D, mystery []types.MysteryBytes, body bodyEncoder[F, D]) ([]byte, error) {
	features, err := d.Lookup(version)
	if err != nil {
		return nil, &EncodeError{Document: d.document, Err: err}
	}
	var buf bytes.Buffer
	w := writers.NewWriter(&buf, d.document)
	w.WriteInt(version)
	if err := body(w, features, doc); err != nil {
		return nil, &EncodeError{Document: d.document, Err: err}
	}
	for _, m := range mystery {
		w.WriteMystery(m)
	}
	if err := w.Err(); err != nil {
		return nil, &EncodeError{Document: d.document, Err: err}
	}
	return buf.Bytes(), nil
}
