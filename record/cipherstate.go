package record

// CipherSuite identifies the negotiated bulk cipher for one direction.
type CipherSuite uint16

const (
	// CipherNullNull is the initial, pre-handshake state: records pass
	// through verbatim.
	CipherNullNull CipherSuite = 0x0000
	// CipherECDHECDSAAES256GCMSHA384 is the single suite this dialect
	// negotiates (0xC02E).
	CipherECDHECDSAAES256GCMSHA384 CipherSuite = 0xC02E
)

// CipherKeys is the immutable key material for one direction once
// CipherECDHECDSAAES256GCMSHA384 is active (spec §9 re-architecture
// guidance: an immutable value per direction instead of mutable key/IV
// buffers, so activation is a single atomic replacement).
type CipherKeys struct {
	Key     [32]byte
	FixedIV [4]byte
}

// DirectionState pairs a cipher suite with its keys (absent/zero when
// CipherNullNull) and a monotonic sequence number, held in one slot per
// direction (read or write) on the Session.
type DirectionState struct {
	Suite  CipherSuite
	Keys   CipherKeys
	SeqNum uint64
}

// Activate replaces the direction's suite and keys and resets its
// sequence number to zero (invariant I2: seq_num is zero when a
// direction's cipher becomes active).
func (d *DirectionState) Activate(suite CipherSuite, keys CipherKeys) {
	d.Suite = suite
	d.Keys = keys
	d.SeqNum = 0
}
