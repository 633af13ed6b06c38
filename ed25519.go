package conditions

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"filippo.io/edwards25519"

	"crypto-conditions/internal/oer"
	"crypto-conditions/internal/util/memzero"
)

func init() {
	registerType(TypeEd25519, typeInfo{
		name:         "ed25519-sha-256",
		parsePayload: parseEd25519Payload,
	})
}

// Ed25519Fulfillment proves a valid signature from PublicKey over the
// message. Unlike every other type, its condition hash is the raw public
// key rather than a SHA-256 digest of some payload: the 32 bytes already
// are the commitment.
type Ed25519Fulfillment struct {
	PublicKey ed25519.PublicKey
	Signature []byte
}

// NewEd25519Fulfillment builds a fulfillment from a signature already
// produced over message by the private key matching pub.
func NewEd25519Fulfillment(pub ed25519.PublicKey, signature []byte) *Ed25519Fulfillment {
	return &Ed25519Fulfillment{PublicKey: pub, Signature: signature}
}

// SignEd25519 signs message with priv and wraps the result as a fulfillment.
// priv is wiped once the signature is computed.
func SignEd25519(priv ed25519.PrivateKey, message []byte) (*Ed25519Fulfillment, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: ed25519 private key must be %d bytes", ErrInvalidArgument, ed25519.PrivateKeySize)
	}
	sig := ed25519.Sign(priv, message)
	pub := append(ed25519.PublicKey(nil), priv.Public().(ed25519.PublicKey)...)
	memzero.Zero(priv)
	return &Ed25519Fulfillment{PublicKey: pub, Signature: sig}, nil
}

// GenerateEd25519 returns a fresh Ed25519 key pair for use with SignEd25519.
func GenerateEd25519() (ed25519.PrivateKey, ed25519.PublicKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	return priv, pub, err
}

func (f *Ed25519Fulfillment) TypeID() TypeID { return TypeEd25519 }

// Condition returns the fulfillment's condition directly from the public
// key: there is no SHA-256 indirection for this type, so it cannot go
// through the shared deriveCondition/generateHash path.
func (f *Ed25519Fulfillment) Condition() Condition {
	var hash [32]byte
	copy(hash[:], f.PublicKey)
	return Condition{
		TypeID:               TypeEd25519,
		FeatureBitmask:       f.featureBitmask(),
		Hash:                 hash,
		MaxFulfillmentLength: f.maxFulfillmentLength(),
	}
}

// Validate verifies Signature over message with PublicKey. Before
// delegating to the standard library it rejects non-canonical public keys
// and signature R components by requiring both to decode as valid points
// on the curve, closing the cofactor/malleability gap that a bare
// crypto/ed25519.Verify call leaves open.
func (f *Ed25519Fulfillment) Validate(message []byte) error {
	if len(f.PublicKey) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: ed25519 public key must be %d bytes", ErrInvalidArgument, ed25519.PublicKeySize)
	}
	if len(f.Signature) != ed25519.SignatureSize {
		return fmt.Errorf("%w: ed25519 signature must be %d bytes", ErrInvalidArgument, ed25519.SignatureSize)
	}
	if p, err := new(edwards25519.Point).SetBytes(f.PublicKey); err != nil || !bytes.Equal(p.Bytes(), f.PublicKey) {
		return fmt.Errorf("%w: ed25519 public key is not a canonical curve point", ErrInvalidArgument)
	}
	if p, err := new(edwards25519.Point).SetBytes(f.Signature[:32]); err != nil || !bytes.Equal(p.Bytes(), f.Signature[:32]) {
		return fmt.Errorf("%w: ed25519 signature R is not a canonical curve point", ErrInvalidArgument)
	}
	if !ed25519.Verify(f.PublicKey, message, f.Signature) {
		return fmt.Errorf("%w: ed25519 verification failed", ErrInvalidSignature)
	}
	return nil
}

func (f *Ed25519Fulfillment) writeHashPayload(w hashWriter) {
	w.WriteOctetString(f.PublicKey)
}

func (f *Ed25519Fulfillment) writePayload(w payloadWriter, depth int) error {
	w.WriteOctetString(f.PublicKey)
	w.WriteOctetString(f.Signature)
	return nil
}

func (f *Ed25519Fulfillment) maxFulfillmentLength() uint64 {
	return uint64(ed25519.PublicKeySize + ed25519.SignatureSize)
}

// featureBitmask omits FeatureSHA256: this type's hash is the raw public
// key, not a SHA-256 digest, so it makes no SHA-256 claim.
func (f *Ed25519Fulfillment) featureBitmask() uint32 {
	return FeatureEd25519
}

func parseEd25519Payload(r *oer.Reader, depth int) (Fulfillment, error) {
	pub, err := r.ReadOctetString(ed25519.PublicKeySize)
	if err != nil {
		return nil, err
	}
	sig, err := r.ReadOctetString(ed25519.SignatureSize)
	if err != nil {
		return nil, err
	}
	return &Ed25519Fulfillment{PublicKey: pub, Signature: sig}, nil
}
