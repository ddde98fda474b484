package trace

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// HexU64 is a uint64 that marshals to/from the JSON log variant's
// numeric encoding: a hex string with a 0x prefix.
type HexU64 uint64

func (h HexU64) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("0x%x", uint64(h)))
}

func (h *HexU64) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := parseHex64(s)
	if err != nil {
		return err
	}
	*h = HexU64(v)
	return nil
}

// HexU32 is the 32-bit counterpart, used for the raw instruction word.
type HexU32 uint32

func (h HexU32) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("0x%x", uint32(h)))
}

func (h *HexU32) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := parseHex64(s)
	if err != nil {
		return err
	}
	*h = HexU32(uint32(v))
	return nil
}

func parseHex64(s string) (uint64, error) {
	if len(s) < 2 || s[0:2] != "0x" {
		return 0, fmt.Errorf("rv64sim: hex field %q missing 0x prefix", s)
	}
	return strconv.ParseUint(s[2:], 16, 64)
}
