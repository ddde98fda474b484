package trace

import (
	"encoding/gob"
	"io"
)

// BinaryWriter serializes LogTuples with encoding/gob, the compact
// self-delimiting form logconvert emits for fast repeated validation
// runs.
type BinaryWriter struct {
	enc *gob.Encoder
}

func NewBinaryWriter(w io.Writer) *BinaryWriter {
	return &BinaryWriter{enc: gob.NewEncoder(w)}
}

func (w *BinaryWriter) Write(lt LogTuple) error {
	return w.enc.Encode(lt)
}

// BinaryReader deserializes a stream of gob-encoded LogTuples.
type BinaryReader struct {
	dec *gob.Decoder
}

func NewBinaryReader(r io.Reader) *BinaryReader {
	return &BinaryReader{dec: gob.NewDecoder(r)}
}

// Next returns the next LogTuple, or ok=false at end of stream.
func (r *BinaryReader) Next() (LogTuple, bool) {
	var lt LogTuple
	if err := r.dec.Decode(&lt); err != nil {
		return LogTuple{}, false
	}
	return lt, true
}

// WriteTransaction and ReadTransaction serialize a single assembled
// Transaction, the unit cmd/rvvalidate reads from stdin.
func WriteTransaction(w io.Writer, t Transaction) error {
	return gob.NewEncoder(w).Encode(t)
}

func ReadTransaction(r io.Reader) (Transaction, error) {
	var t Transaction
	err := gob.NewDecoder(r).Decode(&t)
	return t, err
}
