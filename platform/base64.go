package platform

// Encoder encodes bytes as standard, unwrapped, padded Base64.
type Encoder interface {
	EncodeToString(src []byte) string
}

// Base64 returns the encoder selected for this build target.
func Base64() Encoder {
	return base64Encoder
}
