package lwe

// Session binds an Engine to a key pair, so that messages can be encrypted and
// decrypted without passing the keys around. The keys are set explicitly at
// construction and never change; distinct Sessions sharing one Engine are
// independent.
type Session struct {
	engine *Engine
	pk     *PublicKey
	sk     *SecretKey
}

// NewSession returns a Session bound to engine and to the key pair (pk, sk).
func NewSession(engine *Engine, pk *PublicKey, sk *SecretKey) *Session {
	return &Session{
		engine: engine,
		pk:     pk,
		sk:     sk,
	}
}

// PublicKey returns the public key of the session.
func (s *Session) PublicKey() *PublicKey {
	return s.pk
}

// SecretKey returns the secret key of the session.
func (s *Session) SecretKey() *SecretKey {
	return s.sk
}

// EncryptMessage encrypts text under the public key of the session.
func (s *Session) EncryptMessage(text string) (CiphertextBatch, error) {
	return s.engine.EncryptMessage(text, s.pk)
}

// DecryptMessage decrypts cts with the secret key of the session.
func (s *Session) DecryptMessage(cts CiphertextBatch) (string, error) {
	return s.engine.DecryptMessage(cts, s.sk)
}
