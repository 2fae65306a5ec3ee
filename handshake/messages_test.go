package handshake

import (
	"testing"

	"github.com/nuclearforg/synaTudorMiS/codec"
	"github.com/stretchr/testify/require"
)

func TestBuildClientHelloWireExact(t *testing.T) {
	var clientRandom [32]byte
	for i := range clientRandom {
		clientRandom[i] = byte(i)
	}
	body := BuildClientHello(0x0303, clientRandom, 0xC02E)

	r := codec.NewReader(body)
	version, err := r.GetUint16BE()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0303), version)

	random, err := r.GetBytes(32)
	require.NoError(t, err)
	require.Equal(t, clientRandom[:], random)

	sessionIDLen, err := r.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(SessionIDSize), sessionIDLen)

	sessionID, err := r.GetBytes(SessionIDSize)
	require.NoError(t, err)
	require.Equal(t, make([]byte, SessionIDSize), sessionID)

	suitesLen, err := r.GetUint16BE()
	require.NoError(t, err)
	require.Equal(t, uint16(2), suitesLen)

	suite, err := r.GetUint16BE()
	require.NoError(t, err)
	require.Equal(t, uint16(0xC02E), suite)

	compression, err := r.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(0), compression) // quirk Q1: collapsed length+list

	// supported_groups extension
	extType, err := r.GetUint16BE()
	require.NoError(t, err)
	require.Equal(t, extSupportedGroups, extType)
	extLen, err := r.GetUint16BE()
	require.NoError(t, err)
	require.Equal(t, uint16(4), extLen)
	curveListLen, err := r.GetUint16BE()
	require.NoError(t, err)
	require.Equal(t, uint16(2), curveListLen)
	curve, err := r.GetUint16BE()
	require.NoError(t, err)
	require.Equal(t, curveSecp256r1, curve)

	// ec_point_formats extension
	extType2, err := r.GetUint16BE()
	require.NoError(t, err)
	require.Equal(t, extECPointFormats, extType2)
	extLen2, err := r.GetUint16BE()
	require.NoError(t, err)
	require.Equal(t, uint16(2), extLen2)
	formatListLen, err := r.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(1), formatListLen)
	format, err := r.GetUint8()
	require.NoError(t, err)
	require.Equal(t, ecPointUncompressed, format)

	require.Equal(t, 0, r.Remaining()) // no overall extensions-length wrapper (quirk Q1)
}

func TestParseServerHelloRoundTrip(t *testing.T) {
	var random [32]byte
	for i := range random {
		random[i] = byte(0xA0 + i%16)
	}

	w := codec.NewWriter(0)
	w.PutUint16BE(0x0303)
	w.PutBytes(random[:])
	w.PutUint8(0) // session_id_len
	w.PutUint16BE(0xC02E)
	w.PutUint8(0x00)

	sh, err := ParseServerHello(w.Bytes())
	require.NoError(t, err)
	require.Equal(t, uint16(0x0303), sh.Version)
	require.Equal(t, random, sh.Random)
	require.Equal(t, uint16(0xC02E), sh.CipherSuite)
	require.Equal(t, uint8(0), sh.CompressionMethod)
}

func TestParseCertificateRequestSkipsTrailingGarbage(t *testing.T) {
	w := codec.NewWriter(0)
	w.PutUint8(1)                 // certs_num
	w.PutUint8(CertTypeECDSASign) // certificate_type
	w.PutUint8(0xDE)               // garbage
	w.PutUint8(0xAD)               // garbage

	certType, err := ParseCertificateRequest(w.Bytes())
	require.NoError(t, err)
	require.Equal(t, CertTypeECDSASign, certType)
}

func TestParseCertificateRequestRejectsMultipleCerts(t *testing.T) {
	w := codec.NewWriter(0)
	w.PutUint8(2)
	w.PutUint8(CertTypeECDSASign)
	w.PutUint8(0)
	w.PutUint8(0)

	_, err := ParseCertificateRequest(w.Bytes())
	require.Error(t, err)
}

func TestBuildCertificateWireLayout(t *testing.T) {
	cert := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	body := BuildCertificate(cert)

	r := codec.NewReader(body)
	outer, err := r.GetUint24BE()
	require.NoError(t, err)
	require.Equal(t, uint32(len(cert)), outer)

	inner, err := r.GetUint24BE()
	require.NoError(t, err)
	require.Equal(t, uint32(len(cert)), inner)

	garbage, err := r.GetBytes(2)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0}, garbage)

	certBytes, err := r.GetBytes(len(cert))
	require.NoError(t, err)
	require.Equal(t, cert, certBytes)
	require.Equal(t, 0, r.Remaining())
}

func TestMessageHeaderRoundTrip(t *testing.T) {
	w := codec.NewWriter(0)
	EncodeMessageHeader(w, MsgServerHelloDone, nil)
	EncodeMessageHeader(w, MsgFinished, []byte{1, 2, 3})

	r := codec.NewReader(w.Bytes())
	typ1, body1, err := DecodeMessage(r)
	require.NoError(t, err)
	require.Equal(t, MsgServerHelloDone, typ1)
	require.Empty(t, body1)

	typ2, body2, err := DecodeMessage(r)
	require.NoError(t, err)
	require.Equal(t, MsgFinished, typ2)
	require.Equal(t, []byte{1, 2, 3}, body2)

	require.Equal(t, 0, r.Remaining())
}

func TestFinishedBodyRoundTrip(t *testing.T) {
	vd := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	body := BuildFinishedBody(vd)
	got, err := ParseFinishedBody(body)
	require.NoError(t, err)
	require.Equal(t, vd, got)
}

func TestParseFinishedBodyRejectsWrongLength(t *testing.T) {
	_, err := ParseFinishedBody([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestChangeCipherSpecBodyRoundTrip(t *testing.T) {
	require.NoError(t, ParseChangeCipherSpecBody(ChangeCipherSpecBody()))
	require.Error(t, ParseChangeCipherSpecBody([]byte{0x00}))
	require.Error(t, ParseChangeCipherSpecBody([]byte{0x01, 0x01}))
}

func TestParseAlert(t *testing.T) {
	level, desc, err := ParseAlert([]byte{0x01, 0x00})
	require.NoError(t, err)
	require.Equal(t, uint8(1), level)
	require.Equal(t, uint8(0), desc)

	_, _, err = ParseAlert([]byte{0x01})
	require.Error(t, err)
}
