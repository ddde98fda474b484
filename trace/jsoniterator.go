package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// rawLine is the minimal shape every JSON log line shares: a "kind"
// discriminant tag naming which record type the rest of the object is.
type rawLine struct {
	Kind string `json:"kind"`
}

const (
	lineKindMark  = "mark"
	lineKindInsn  = "insn"
	lineKindState = "state"
	lineKindLoad  = "load"
	lineKindStore = "store"
	lineKindMem   = "mem"
)

// JSONLogTupleIterator reads newline-delimited JSON log lines and
// groups them into LogTuple records, one per batch between "mark"
// lines. Anything before the first mark is a partial batch and is
// discarded.
type JSONLogTupleIterator struct {
	scanner *bufio.Scanner
	line    int
	started bool
}

// NewJSONLogTupleIterator wraps r, which must yield one JSON object per
// line.
func NewJSONLogTupleIterator(r io.Reader) *JSONLogTupleIterator {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &JSONLogTupleIterator{scanner: s}
}

func (it *JSONLogTupleIterator) nextLine() (rawLine, []byte, bool) {
	if !it.scanner.Scan() {
		return rawLine{}, nil, false
	}
	it.line++
	data := it.scanner.Bytes()
	cp := make([]byte, len(data))
	copy(cp, data)
	var rl rawLine
	if err := json.Unmarshal(cp, &rl); err != nil {
		panic(fmt.Sprintf("rv64sim: malformed log line %d: %v", it.line, err))
	}
	return rl, cp, true
}

func (it *JSONLogTupleIterator) skipToFirstMark() {
	for {
		rl, _, ok := it.nextLine()
		if !ok {
			return
		}
		if rl.Kind == lineKindMark {
			return
		}
	}
}

// Next returns the next LogTuple, or ok=false at end of stream.
func (it *JSONLogTupleIterator) Next() (LogTuple, bool) {
	if !it.started {
		it.started = true
		it.skipToFirstMark()
	}

	var insn *jsonInsn
	var state *jsonState
	var store *jsonMemory
	var mems []jsonMemory
	sawAny := false

readLoop:
	for {
		rl, data, ok := it.nextLine()
		if !ok {
			if !sawAny {
				return LogTuple{}, false
			}
			break
		}
		sawAny = true

		switch rl.Kind {
		case lineKindMark:
			if state != nil {
				break readLoop
			}
			continue
		case lineKindInsn:
			var ji jsonInsn
			if err := json.Unmarshal(data, &ji); err != nil {
				panic(fmt.Sprintf("rv64sim: malformed insn line %d: %v", it.line, err))
			}
			insn = &ji
		case lineKindState:
			var js jsonState
			if err := json.Unmarshal(data, &js); err != nil {
				panic(fmt.Sprintf("rv64sim: malformed state line %d: %v", it.line, err))
			}
			state = &js
		case lineKindMem, lineKindLoad:
			var jm jsonMemory
			if err := json.Unmarshal(data, &jm); err != nil {
				panic(fmt.Sprintf("rv64sim: malformed mem line %d: %v", it.line, err))
			}
			mems = append(mems, jm)
		case lineKindStore:
			var jm jsonMemory
			if err := json.Unmarshal(data, &jm); err != nil {
				panic(fmt.Sprintf("rv64sim: malformed store line %d: %v", it.line, err))
			}
			store = &jm
		}
	}

	if state == nil {
		panic(fmt.Sprintf("rv64sim: log tuple ending at line %d has no state", it.line))
	}

	lt := LogTuple{Line: it.line, State: state.toState()}
	if insn != nil {
		v := insn.toInsn()
		lt.Insn = &v
	}
	if store != nil {
		v := store.toMemoryTrace()
		lt.Store = &v
	}
	for _, m := range mems {
		lt.Mems = append(lt.Mems, m.toMemoryTrace())
	}
	return lt, true
}
