package game

import (
	"crypto/rand"
	"math/big"
)

// Source draws uniform integers in [0, n). The engine never holds a global
// generator; callers that need reproducible codes pass their own Source.
type Source interface {
	Intn(n int) int
}

// CryptoSource draws from crypto/rand. It is the default, unseeded source.
type CryptoSource struct{}

// Intn returns a uniform value in [0, n). n must be positive.
func (CryptoSource) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic("game: crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}

// DrawColors returns length independent uniform draws from [0, colorCount).
// Values may repeat.
func DrawColors(src Source, length, colorCount int) []Color {
	out := make([]Color, length)
	for i := range out {
		out[i] = Color(src.Intn(colorCount))
	}
	return out
}

// GenerateSecretCode draws a fresh code of CodeLength colors from the palette.
func GenerateSecretCode(src Source) SecretCode {
	var code SecretCode
	copy(code[:], DrawColors(src, CodeLength, ColorCount))
	return code
}
