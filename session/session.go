// Package session implements the C8 facade: the single stateful object a
// caller drives with byte-in/byte-out calls to carry a client-side TLS 1.2
// handshake to completion and then exchange application data. It owns
// every other component — codec, crypto, PRF, record layer, transcript,
// and the handshake phase/message vocabulary — the way the original's one
// tls_session_t struct does, adapted here into one Go struct plus the
// collaborator packages it calls into (spec §3 DATA MODEL, §4.8).
package session

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nuclearforg/synaTudorMiS/alert"
	"github.com/nuclearforg/synaTudorMiS/codec"
	"github.com/nuclearforg/synaTudorMiS/crypto/keys"
	"github.com/nuclearforg/synaTudorMiS/handshake"
	"github.com/nuclearforg/synaTudorMiS/internal/logger"
	"github.com/nuclearforg/synaTudorMiS/internal/metrics"
	"github.com/nuclearforg/synaTudorMiS/pairing"
	"github.com/nuclearforg/synaTudorMiS/prf"
	"github.com/nuclearforg/synaTudorMiS/record"
	"github.com/nuclearforg/synaTudorMiS/transcript"
)

// Session is the client-side TLS 1.2 handshake and record core. The zero
// value is not usable; construct with New.
type Session struct {
	id     string
	log    logger.Logger
	start  time.Time

	version uint16

	clientRandom [32]byte
	serverRandom [32]byte

	pairing *pairing.Data

	phase           handshake.Phase
	certRequestType uint8

	protector record.Protector
	readDir   record.DirectionState
	writeDir  record.DirectionState

	pendingSuite         record.CipherSuite
	pendingReadKey       record.CipherKeys
	writeKeyFromKeyBlock record.CipherKeys

	masterSecret []byte
	ephemeral    *keys.ECDHP256KeyPair

	transcript *transcript.Transcript

	contentBuffer     *codec.Writer
	contentBufferType record.ContentType

	sendBuffer *codec.Writer
	appData    *codec.Writer

	sendClosed      bool
	recvClosed      bool
	outcomeRecorded bool
}

// New allocates a Session in HandshakeBegin with no pairing data attached
// yet; callers must call Init before Establish (spec §4.8 "new()/init()").
func New() *Session {
	id := uuid.NewString()
	metrics.SessionsActive.Inc()
	return &Session{
		id:            id,
		log:           logger.Default().WithFields(logger.String("session_id", id)),
		version:       record.ProtocolVersion,
		phase:         handshake.HandshakeBegin,
		transcript:    transcript.New(),
		contentBuffer: codec.NewWriter(0),
		sendBuffer:    codec.NewWriter(0),
		appData:       codec.NewWriter(0),
	}
}

// SetLogger replaces the session's logger (spec §6 Logger collaborator).
func (s *Session) SetLogger(l logger.Logger) { s.log = l }

// ID returns the session's identifier, used only for logging/metrics
// correlation — it has no protocol meaning.
func (s *Session) ID() string { return s.id }

// Phase returns the session's current handshake phase.
func (s *Session) Phase() handshake.Phase { return s.phase }

// Init attaches the long-term credentials this handshake will use and
// draws client_random (spec §4.8 "init(pairing)"). pairing must outlive
// the Session.
func (s *Session) Init(p *pairing.Data) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := rand.Read(s.clientRandom[:]); err != nil {
		return alert.CryptoFailuref("session: failed to draw client_random: %v", err)
	}
	s.pairing = p
	return nil
}

// Establish emits the ClientHello and advances the session out of
// HandshakeBegin (spec §4.8 "establish()").
func (s *Session) Establish() error {
	if err := handshake.Require(s.phase, handshake.HandshakeBegin); err != nil {
		return err
	}
	s.start = time.Now()

	body := handshake.BuildClientHello(s.version, s.clientRandom, uint16(record.CipherECDHECDSAAES256GCMSHA384))
	if err := s.sendHandshakeMessage(handshake.MsgClientHello, body); err != nil {
		return err
	}

	s.setPhase(handshake.ClientHelloSent)
	s.log.Debug("sent ClientHello")
	return nil
}

// HasData reports whether there are bytes ready to drain via
// FlushSendBuffer (spec §4.8 "has_data()").
func (s *Session) HasData() bool {
	return s.sendBuffer.Len() > 0 || s.contentBufferType != 0
}

// FlushSendBuffer flushes any coalesced content through AEAD protection
// and returns the accumulated outbound bytes, handing ownership to the
// caller (spec §4.8 "flush_send_buffer()").
func (s *Session) FlushSendBuffer() ([]byte, error) {
	if err := s.flushContentBuffer(); err != nil {
		return nil, err
	}
	return s.sendBuffer.Detach(), nil
}

// Wrap appends plaintext as an application_data record and flushes,
// returning the ciphertext bytes ready for the transport (spec §4.8
// "wrap()").
func (s *Session) Wrap(plaintext []byte) ([]byte, error) {
	if s.sendClosed {
		return nil, alert.Closedf("session: Wrap called after Close")
	}
	if err := s.appendContent(record.ContentApplicationData, plaintext); err != nil {
		return nil, err
	}
	return s.FlushSendBuffer()
}

// Unwrap detaches and returns the decrypted application data accumulated
// so far (spec §4.8 "unwrap()").
func (s *Session) Unwrap() []byte {
	return s.appData.Detach()
}

// Close emits a warning close_notify alert and marks the session closed
// for further sends (invariant I6). Idempotent.
func (s *Session) Close() error {
	if s.sendClosed {
		return nil
	}
	if err := s.appendContent(record.ContentAlert, []byte{alert.LevelWarning, alert.DescCloseNotify}); err != nil {
		return err
	}
	s.sendClosed = true
	metrics.SessionsClosed.Inc()
	metrics.SessionsActive.Dec()
	s.log.Info("session closed", logger.Bool("recv_closed", s.recvClosed))
	return nil
}

// ReceiveCiphertext parses data as a sequence of TLS records, decrypting
// each through the active read cipher and dispatching by content type
// (spec §4.8 "receive_ciphertext()"). data may contain more than one
// record; the transport is assumed to deliver only whole records (spec
// §6 Transport contract).
func (s *Session) ReceiveCiphertext(data []byte) error {
	if s.recvClosed {
		return alert.Closedf("session: ReceiveCiphertext called after peer close_notify")
	}

	r := codec.NewReader(data)
	for r.Remaining() > 0 {
		rec, err := record.Decode(r, s.version)
		if err != nil {
			return s.recordFailure(err)
		}
		plaintext, err := s.protector.Open(&s.readDir, rec.Type, rec.Version, rec.Fragment)
		if err != nil {
			s.recvClosed = true
			return s.recordFailure(err)
		}
		if err := s.handleRecord(rec.Type, plaintext); err != nil {
			return s.recordFailure(err)
		}
	}
	return nil
}

// recordFailure counts a handshake that ended in a fatal error before
// reaching Finished, exactly once per session, and passes err through
// unchanged.
func (s *Session) recordFailure(err error) error {
	if s.phase != handshake.Finished && !s.outcomeRecorded {
		s.outcomeRecorded = true
		metrics.SessionsEstablished.WithLabelValues("failed").Inc()
	}
	return err
}

// handleRecord dispatches one decrypted record fragment by content type.
func (s *Session) handleRecord(typ record.ContentType, plaintext []byte) error {
	switch typ {
	case record.ContentChangeCipherSpec:
		return s.handleChangeCipherSpec(plaintext)
	case record.ContentAlert:
		return s.handleAlert(plaintext)
	case record.ContentHandshake:
		return s.handleHandshakeFragment(plaintext)
	case record.ContentApplicationData:
		s.appData.PutBytes(plaintext)
		return nil
	default:
		return alert.DecodeErrorf("session: unknown record content type %d", typ)
	}
}

func (s *Session) handleChangeCipherSpec(body []byte) error {
	if err := handshake.ParseChangeCipherSpecBody(body); err != nil {
		return err
	}
	if err := handshake.Require(s.phase, handshake.ServerDone); err != nil {
		return err
	}
	s.readDir.Activate(s.pendingSuite, s.pendingReadKey)
	s.log.Debug("activated read cipher")
	return nil
}

func (s *Session) handleAlert(body []byte) error {
	level, desc, err := handshake.ParseAlert(body)
	if err != nil {
		return err
	}
	if level == alert.LevelWarning && desc == alert.DescCloseNotify {
		s.recvClosed = true
		s.log.Info("received close_notify")
		return nil
	}
	s.recvClosed = true
	return alert.New(alert.UnexpectedMessage, level, desc, fmt.Sprintf("session: received alert level=%d desc=%d", level, desc))
}

// handleHandshakeFragment loops DecodeMessage over one Handshake-typed
// record fragment, since a single record may coalesce more than one
// handshake message (spec §4.9), and dispatches each by type.
func (s *Session) handleHandshakeFragment(fragment []byte) error {
	r := codec.NewReader(fragment)
	for r.Remaining() > 0 {
		msgType, body, err := handshake.DecodeMessage(r)
		if err != nil {
			return err
		}
		if err := s.dispatchHandshakeMessage(msgType, body); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) dispatchHandshakeMessage(msgType handshake.MsgType, body []byte) error {
	if msgType != handshake.MsgFinished {
		w := codec.NewWriter(4 + len(body))
		handshake.EncodeMessageHeader(w, msgType, body)
		s.transcript.Append(w.Bytes())
	}

	switch msgType {
	case handshake.MsgServerHello:
		return s.handleServerHello(body)
	case handshake.MsgCertificateRequest:
		return s.handleCertificateRequest(body)
	case handshake.MsgServerHelloDone:
		return s.handleServerHelloDone()
	case handshake.MsgFinished:
		return s.handleFinished(body)
	default:
		return alert.UnexpectedMessagef("session: unexpected handshake message type %d in phase %s", msgType, s.phase)
	}
}

func (s *Session) handleServerHello(body []byte) error {
	if err := handshake.Require(s.phase, handshake.ClientHelloSent); err != nil {
		return err
	}
	sh, err := handshake.ParseServerHello(body)
	if err != nil {
		return err
	}
	if sh.CipherSuite != uint16(record.CipherECDHECDSAAES256GCMSHA384) {
		return alert.ProtocolMismatchf("session: ServerHello cipher_suite 0x%04x, want 0x%04x", sh.CipherSuite, record.CipherECDHECDSAAES256GCMSHA384)
	}
	s.serverRandom = sh.Random
	s.pendingSuite = record.CipherECDHECDSAAES256GCMSHA384

	s.setPhase(handshake.SuiteHandshake)
	s.log.Debug("received ServerHello")
	return nil
}

func (s *Session) handleCertificateRequest(body []byte) error {
	if err := handshake.Require(s.phase, handshake.SuiteHandshake); err != nil {
		return err
	}
	certType, err := handshake.ParseCertificateRequest(body)
	if err != nil {
		return err
	}
	if certType != handshake.CertTypeECDSASign {
		return alert.ProtocolMismatchf("session: CertificateRequest certificate_type %d, want %d", certType, handshake.CertTypeECDSASign)
	}
	s.certRequestType = certType
	s.log.Debug("received CertificateRequest")
	return nil
}

// handleServerHelloDone drives the client's entire response burst: it
// sends Certificate, ClientKeyExchange, and CertificateVerify as one
// coalesced Handshake flight, derives the master secret and key block,
// sends ChangeCipherSpec (flushed under the still-inactive write cipher,
// then activates it), and finally sends Finished under the new cipher
// (spec §4.7 "Client response burst").
func (s *Session) handleServerHelloDone() error {
	if err := handshake.Require(s.phase, handshake.SuiteHandshake); err != nil {
		return err
	}

	if err := s.sendHandshakeMessage(handshake.MsgCertificate, handshake.BuildCertificate(s.pairing.ClientCertRaw)); err != nil {
		return err
	}

	ephemeral, err := keys.GenerateECDHP256KeyPair()
	if err != nil {
		return alert.CryptoFailuref("session: failed to generate ephemeral key: %v", err)
	}
	s.ephemeral = ephemeral
	if err := s.sendHandshakeMessage(handshake.MsgClientKeyExchange, handshake.BuildClientKeyExchange(ephemeral.PublicKeyBytes())); err != nil {
		return err
	}

	// Sign raw transcript bytes, not transcript.Sum(): Sign hashes its
	// input itself (SHA-256) before the ECDSA operation, so passing an
	// already-hashed digest here would sign SHA-256(SHA-256(transcript))
	// instead of the single SHA-256 the peer expects.
	signature, err := s.pairing.ClientPrivateKey.Sign(s.transcript.Bytes())
	if err != nil {
		return alert.CryptoFailuref("session: failed to sign CertificateVerify: %v", err)
	}
	if err := s.sendHandshakeMessage(handshake.MsgCertificateVerify, handshake.BuildCertificateVerify(signature)); err != nil {
		return err
	}

	if err := s.deriveKeys(); err != nil {
		return err
	}

	if err := s.appendContent(record.ContentChangeCipherSpec, handshake.ChangeCipherSpecBody()); err != nil {
		return err
	}
	if err := s.flushContentBuffer(); err != nil {
		return err
	}
	s.writeDir.Activate(s.pendingSuite, s.writeKeyFromKeyBlock)
	s.log.Debug("activated write cipher")

	finishedDigest := s.transcript.Sum()
	verifyData := prf.VerifyData(s.masterSecret, "client finished", finishedDigest)
	if err := s.sendHandshakeMessage(handshake.MsgFinished, handshake.BuildFinishedBody(verifyData)); err != nil {
		return err
	}

	s.ephemeral.Zero()
	s.ephemeral = nil

	s.setPhase(handshake.ServerDone)
	s.log.Debug("sent client response burst")
	return nil
}

// deriveKeys computes the premaster secret, master_secret, and key_block
// (spec §4.3), splitting key_block into the four key/IV values and
// stashing the client write keys in writeKeyFromKeyBlock and the server
// write keys in pendingReadKey for activation by handleServerHelloDone
// and handleChangeCipherSpec respectively.
func (s *Session) deriveKeys() error {
	peerECDH, err := s.pairing.RemotePublicKey.ECDH()
	if err != nil {
		return alert.CryptoFailuref("session: peer public key is not a valid ECDH point: %v", err)
	}
	premaster, err := s.ephemeral.DeriveSharedSecret(peerECDH.Bytes())
	if err != nil {
		return alert.CryptoFailuref("session: ECDH failed: %v", err)
	}

	s.masterSecret = prf.MasterSecret(premaster, s.clientRandom[:], s.serverRandom[:])
	keyBlock := prf.KeyBlock(s.masterSecret, s.clientRandom[:], s.serverRandom[:], 72)

	var clientWriteKey, serverWriteKey [32]byte
	var clientWriteIV, serverWriteIV [4]byte
	copy(clientWriteKey[:], keyBlock[0:32])
	copy(serverWriteKey[:], keyBlock[32:64])
	copy(clientWriteIV[:], keyBlock[64:68])
	copy(serverWriteIV[:], keyBlock[68:72])

	s.writeKeyFromKeyBlock = record.CipherKeys{Key: clientWriteKey, FixedIV: clientWriteIV}
	s.pendingReadKey = record.CipherKeys{Key: serverWriteKey, FixedIV: serverWriteIV}
	return nil
}

func (s *Session) handleFinished(body []byte) error {
	if err := handshake.Require(s.phase, handshake.ServerDone); err != nil {
		return err
	}
	if s.readDir.Suite != s.pendingSuite {
		return alert.UnexpectedMessagef("session: Finished received before peer ChangeCipherSpec")
	}
	verifyData, err := handshake.ParseFinishedBody(body)
	if err != nil {
		return err
	}

	expected := prf.VerifyData(s.masterSecret, "server finished", s.transcript.Sum())
	if !record.ConstantTimeEqual(expected, verifyData) {
		return alert.FinishedMismatchf("session: server Finished verify_data mismatch")
	}

	s.setPhase(handshake.Finished)
	s.outcomeRecorded = true
	metrics.SessionsEstablished.WithLabelValues("ok").Inc()
	metrics.HandshakeDuration.Observe(time.Since(s.start).Seconds())
	s.log.Info("handshake complete")
	return nil
}

// sendHandshakeMessage encodes one handshake message and appends it to
// the content buffer, adding it to the transcript unless it is Finished
// (invariant I3).
func (s *Session) sendHandshakeMessage(msgType handshake.MsgType, body []byte) error {
	w := codec.NewWriter(4 + len(body))
	handshake.EncodeMessageHeader(w, msgType, body)
	fragment := w.Bytes()

	if msgType != handshake.MsgFinished {
		s.transcript.Append(fragment)
	}
	return s.appendContent(record.ContentHandshake, append([]byte{}, fragment...))
}

// appendContent flushes any pending content of a different type, then
// appends payload under ct (spec §4.9 per-type coalescing, invariant I4).
func (s *Session) appendContent(ct record.ContentType, payload []byte) error {
	if s.contentBufferType != 0 && s.contentBufferType != ct {
		if err := s.flushContentBuffer(); err != nil {
			return err
		}
	}
	s.contentBuffer.PutBytes(payload)
	s.contentBufferType = ct
	return nil
}

// flushContentBuffer seals the accumulated content buffer (if any)
// through the write direction's AEAD state into one TLS record, appended
// to send_buffer.
func (s *Session) flushContentBuffer() error {
	if s.contentBufferType == 0 {
		return nil
	}
	ct := s.contentBufferType
	plaintext := s.contentBuffer.Detach()
	s.contentBufferType = 0

	ciphertext, err := s.protector.Seal(&s.writeDir, ct, s.version, plaintext)
	if err != nil {
		return err
	}

	rec := record.Record{Type: ct, Version: s.version, Fragment: ciphertext}
	rec.Encode(s.sendBuffer)
	return nil
}

func (s *Session) setPhase(p handshake.Phase) {
	s.phase = p
	metrics.HandshakePhaseTransitions.WithLabelValues(p.String()).Inc()
}
