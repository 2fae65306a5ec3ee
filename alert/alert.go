// Package alert is the typed error taxonomy for the session core (spec §7).
// Error mirrors the teacher's SageError shape (Code/Message/Cause, Error(),
// Unwrap()) but carries a TLS alert level/description instead of a free-form
// string code, since every fatal condition in this core maps to a specific
// wire alert.
package alert

import "fmt"

// Kind classifies the cause of an Error.
type Kind string

const (
	ProtocolMismatch  Kind = "protocol_mismatch"
	UnexpectedMessage Kind = "unexpected_message"
	DecryptError      Kind = "decrypt_error"
	DecodeError       Kind = "decode_error"
	Closed            Kind = "closed"
	CryptoFailure     Kind = "crypto_failure"
)

// TLS AlertLevel values (RFC 5246 §7.2).
const (
	LevelNone    uint8 = 0
	LevelWarning uint8 = 1
	LevelFatal   uint8 = 2
)

// TLS AlertDescription values relevant to this core (RFC 5246 §7.2).
const (
	DescCloseNotify      uint8 = 0
	DescUnexpectedMsg    uint8 = 10
	DescBadRecordMAC     uint8 = 20
	DescDecryptionFailed uint8 = 21
	DescDecodeError      uint8 = 50
	DescDecryptError     uint8 = 51
	DescProtocolVersion  uint8 = 70
	DescHandshakeFailure uint8 = 40
	DescInternalError    uint8 = 80
)

// Error is the concrete error type for every fatal or warning condition
// this core raises. Kind classifies the failure for programmatic
// handling; AlertLevel/AlertDesc carry the corresponding wire alert when
// one applies (AlertLevel == LevelNone means no alert is sent, e.g. a
// CryptoFailure that never reaches the wire).
type Error struct {
	Kind       Kind
	AlertLevel uint8
	AlertDesc  uint8
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes Cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// New constructs an Error with no wrapped cause.
func New(kind Kind, level, desc uint8, message string) *Error {
	return &Error{Kind: kind, AlertLevel: level, AlertDesc: desc, Message: message}
}

// Wrap constructs an Error wrapping an underlying cause.
func Wrap(kind Kind, level, desc uint8, message string, cause error) *Error {
	return &Error{Kind: kind, AlertLevel: level, AlertDesc: desc, Message: message, Cause: cause}
}

// ProtocolMismatchf builds a fatal protocol_version alert error.
func ProtocolMismatchf(format string, args ...interface{}) *Error {
	return New(ProtocolMismatch, LevelFatal, DescProtocolVersion, fmt.Sprintf(format, args...))
}

// UnexpectedMessagef builds a fatal unexpected_message alert error.
func UnexpectedMessagef(format string, args ...interface{}) *Error {
	return New(UnexpectedMessage, LevelFatal, DescUnexpectedMsg, fmt.Sprintf(format, args...))
}

// DecryptErrorf builds a fatal bad_record_mac alert error (AEAD open failure).
func DecryptErrorf(format string, args ...interface{}) *Error {
	return New(DecryptError, LevelFatal, DescBadRecordMAC, fmt.Sprintf(format, args...))
}

// FinishedMismatchf builds a fatal decrypt_error alert error for a Finished
// message whose verify_data does not match (spec §7): the same Kind as an
// AEAD open failure, but a distinct wire alert description — this is a MAC
// mismatch over the handshake transcript, not a record-layer AEAD tag
// mismatch (DescBadRecordMAC, used by DecryptErrorf for the latter).
func FinishedMismatchf(format string, args ...interface{}) *Error {
	return New(DecryptError, LevelFatal, DescDecryptError, fmt.Sprintf(format, args...))
}

// DecodeErrorf builds a fatal decode_error alert error (malformed wire data).
func DecodeErrorf(format string, args ...interface{}) *Error {
	return New(DecodeError, LevelFatal, DescDecodeError, fmt.Sprintf(format, args...))
}

// Closedf builds an error reporting use of a session past close_notify/Close().
func Closedf(format string, args ...interface{}) *Error {
	return New(Closed, LevelNone, DescNone, fmt.Sprintf(format, args...))
}

// CryptoFailuref builds an error for a local cryptographic operation failure
// (key generation, signing) that never reaches the wire as an alert.
func CryptoFailuref(format string, args ...interface{}) *Error {
	return New(CryptoFailure, LevelNone, DescNone, fmt.Sprintf(format, args...))
}

// DescNone is used where AlertLevel is LevelNone and AlertDesc is not
// meaningful.
const DescNone uint8 = 0
