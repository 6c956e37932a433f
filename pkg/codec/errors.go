package codec

import "fmt"

// Error is the codec's error kind (spec §7 CodecError): EXI/v2gtp
// malformed input or an unrepresentable schema violation. It is always
// session-fatal; callers close the connection without responding.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("codec: %s: %v", e.Op, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
