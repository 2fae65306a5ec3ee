// Package handshake provides the wire vocabulary and phase discipline for
// the client-side TLS 1.2 handshake (spec C6/C7): handshake message
// framing/parsing for every message this dialect's client sends or
// receives, and a tagged phase enum with explicit legality checks in
// place of the original's large switch-inside-the-receive-path style
// (spec §9 re-architecture guidance). The stateful driving of these
// phases — holding the transcript, pending/active ciphers, and
// coalescing buffers — lives in the session package, which owns all of
// that state the way tls_session.c's single struct does; this package
// only supplies the phase type and message codecs that session calls
// into.
package handshake

import "github.com/nuclearforg/synaTudorMiS/alert"

// Phase is one of the five handshake states (spec §4.7).
type Phase uint8

const (
	HandshakeBegin Phase = iota
	ClientHelloSent
	SuiteHandshake
	ServerDone
	Finished
)

func (p Phase) String() string {
	switch p {
	case HandshakeBegin:
		return "HandshakeBegin"
	case ClientHelloSent:
		return "ClientHelloSent"
	case SuiteHandshake:
		return "SuiteHandshake"
	case ServerDone:
		return "ServerDone"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Require returns a fatal unexpected_message error unless current == want.
// Every phase assertion in the original source is a hard g_assert; here
// each becomes a typed, recoverable-by-the-caller error instead of a
// process abort.
func Require(current, want Phase) error {
	if current != want {
		return alert.UnexpectedMessagef("handshake: phase %s, expected %s", current, want)
	}
	return nil
}
