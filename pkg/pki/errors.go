package pki

import "fmt"

// Error is pki's contribution to spec §7's SecurityError kind: chain,
// signature, or certificate validation failure. It is always
// session-fatal and maps to one of the FAILED_Cert* response codes at
// the caller (pkg/secc, pkg/evcc).
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("pki: %s: %v", e.Op, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
