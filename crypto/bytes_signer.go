package crypto

// BytesSigner signs arbitrary payloads with an account key.
type BytesSigner interface {
	Address() string
	PublicKey() []byte
	SignBytes(bytesToSign []byte) ([]byte, error)
}
