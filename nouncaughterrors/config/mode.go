package config

import (
	"encoding"
	"fmt"
)

// UnsafeCallsMode selects how calls with unresolvable error contracts are
// reported. The zero value is UnsafeCallsWarn, the documented default.
type UnsafeCallsMode int

const (
	UnsafeCallsWarn UnsafeCallsMode = iota
	UnsafeCallsError
	UnsafeCallsOff
)

var (
	_ encoding.TextMarshaler   = UnsafeCallsMode(0)
	_ encoding.TextUnmarshaler = (*UnsafeCallsMode)(nil)
)

func (m UnsafeCallsMode) String() string {
	v, err := m.MarshalText()
	if err != nil {
		return fmt.Sprintf("unsafe-calls-invalid(%d)", int(m))
	}
	return string(v)
}

func (m UnsafeCallsMode) MarshalText() ([]byte, error) {
	switch m {
	case UnsafeCallsWarn:
		return []byte("warn"), nil
	case UnsafeCallsError:
		return []byte("error"), nil
	case UnsafeCallsOff:
		return []byte("off"), nil
	default:
		return nil, fmt.Errorf("cannot marshal invalid UnsafeCallsMode(%d)", int(m))
	}
}

func (m *UnsafeCallsMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "warn":
		*m = UnsafeCallsWarn
		return nil
	case "error":
		*m = UnsafeCallsError
		return nil
	case "off":
		*m = UnsafeCallsOff
		return nil
	default:
		return fmt.Errorf("unknown unsafe-calls mode %q", b)
	}
}
