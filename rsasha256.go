package conditions

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"math/big"

	"crypto-conditions/internal/oer"
)

func init() {
	registerType(TypeRSA, typeInfo{
		name:         "rsa-sha-256",
		parsePayload: parseRSAPayload,
	})
}

// minModulusSize and maxModulusSize bound the RSA modulus sizes this
// implementation accepts: 1024 to 4096 bits.
const (
	minModulusSize = 128
	maxModulusSize = 512
	rsaPSSSaltLen  = 32
	rsaPublicExp   = 65537
)

// RSAFulfillment proves an RSA-PSS SHA-256 signature over the message,
// verifiable against Modulus with the fixed public exponent 65537.
type RSAFulfillment struct {
	Modulus   []byte
	Signature []byte
}

// NewRSAFulfillment builds a fulfillment from a modulus and a signature
// already produced over a message.
func NewRSAFulfillment(modulus, signature []byte) *RSAFulfillment {
	return &RSAFulfillment{Modulus: modulus, Signature: signature}
}

// ParseRSAPrivateKeyPEM extracts an RSA private key from a PEM block,
// accepting both PKCS#1 and PKCS#8 encodings.
func ParseRSAPrivateKeyPEM(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrParse)
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: PEM key is not RSA", ErrInvalidArgument)
	}
	return rsaKey, nil
}

// SignRSA signs message with priv using RSA-PSS/SHA-256, salt length 32,
// and wraps the result as a fulfillment. priv must use the public exponent
// 65537.
func SignRSA(priv *rsa.PrivateKey, message []byte) (*RSAFulfillment, error) {
	if priv.PublicKey.E != rsaPublicExp {
		return nil, fmt.Errorf("%w: rsa public exponent must be %d", ErrInvalidArgument, rsaPublicExp)
	}
	digest := sha256.Sum256(message)
	sig, err := rsa.SignPSS(rand.Reader, priv, crypto.SHA256, digest[:], &rsa.PSSOptions{
		SaltLength: rsaPSSSaltLen,
		Hash:       crypto.SHA256,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return &RSAFulfillment{Modulus: priv.PublicKey.N.Bytes(), Signature: sig}, nil
}

func (f *RSAFulfillment) TypeID() TypeID { return TypeRSA }

func (f *RSAFulfillment) Condition() Condition { return deriveCondition(f) }

// Validate verifies Signature as an RSA-PSS/SHA-256 signature over message
// under the public key (Modulus, 65537).
func (f *RSAFulfillment) Validate(message []byte) error {
	if err := f.validateModulus(); err != nil {
		return err
	}
	pub := &rsa.PublicKey{N: new(big.Int).SetBytes(f.Modulus), E: rsaPublicExp}
	digest := sha256.Sum256(message)
	if err := rsa.VerifyPSS(pub, crypto.SHA256, digest[:], f.Signature, &rsa.PSSOptions{
		SaltLength: rsaPSSSaltLen,
		Hash:       crypto.SHA256,
	}); err != nil {
		return fmt.Errorf("%w: rsa-pss verification failed: %v", ErrInvalidSignature, err)
	}
	return nil
}

func (f *RSAFulfillment) validateModulus() error {
	if len(f.Modulus) < minModulusSize || len(f.Modulus) > maxModulusSize {
		return fmt.Errorf("%w: rsa modulus length %d out of range", ErrInvalidArgument, len(f.Modulus))
	}
	if len(f.Modulus) > 0 && f.Modulus[0] == 0 {
		return fmt.Errorf("%w: rsa modulus has a leading zero byte", ErrInvalidArgument)
	}
	if len(f.Signature) != len(f.Modulus) {
		return fmt.Errorf("%w: rsa signature length must match modulus length", ErrInvalidArgument)
	}
	return nil
}

func (f *RSAFulfillment) writeHashPayload(w hashWriter) {
	w.WriteOctetString(f.Modulus)
}

// writePayload frames both Modulus and Signature: VarOctetString(modulus) |
// VarOctetString(signature).
func (f *RSAFulfillment) writePayload(w payloadWriter, depth int) error {
	w.WriteVarOctetString(f.Modulus)
	w.WriteVarOctetString(f.Signature)
	return nil
}

func (f *RSAFulfillment) maxFulfillmentLength() uint64 {
	p := oer.NewPredictor()
	p.WriteVarOctetString(f.Modulus)
	// A valid signature is always exactly as long as the modulus.
	p.AddVarOctetStringLen(len(f.Modulus))
	return uint64(p.Len())
}

func (f *RSAFulfillment) featureBitmask() uint32 {
	return FeatureSHA256 | FeatureRSAPSS
}

func parseRSAPayload(r *oer.Reader, depth int) (Fulfillment, error) {
	modulus, err := r.ReadVarOctetString()
	if err != nil {
		return nil, err
	}
	signature, err := r.ReadVarOctetString()
	if err != nil {
		return nil, err
	}
	return &RSAFulfillment{Modulus: modulus, Signature: signature}, nil
}
