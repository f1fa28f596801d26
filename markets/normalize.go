package markets

import (
	"encoding/hex"
	"encoding/json"
	"math/big"
	"regexp"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// The bundled market dumps are not strict JSON. Two malformations are known:
// enum-like values appear as a single-key object with an empty body
// ({"active": {}}), and most literals are quoted strings that actually hold
// hex-encoded integers or base58 account addresses. normalizeMarketJSON
// rewrites a dump into strict JSON matching the typed market schema. It is
// not a general JSON5/JSONC parser; it handles exactly these shapes.

var (
	emptyObjectRe = regexp.MustCompile(`\{\s*(".+?")\s*:\s*\{\s*\}\s*\}`)
	quotedRe      = regexp.MustCompile(`".+?"`)
)

var (
	int128Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	int128Min = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

func normalizeMarketJSON(raw string) string {
	collapsed := emptyObjectRe.ReplaceAllString(raw, "$1")
	return quotedRe.ReplaceAllStringFunc(collapsed, rewriteLiteral)
}

// rewriteLiteral reinterprets one quoted token, quotes included. Priority:
// signed hex integer, then base58 32-byte address, then plain text with the
// casing fixes the schema expects. The integer probe runs first even though
// some legitimate text is coincidentally valid hex; the bundle was produced
// under that precedence and decoding depends on it (see normalize tests).
func rewriteLiteral(token string) string {
	stripped := strings.TrimPrefix(strings.TrimSuffix(token, `"`), `"`)

	if strings.HasPrefix(stripped, "-") || isHexBytes(stripped) {
		if v, ok := new(big.Int).SetString(stripped, 16); ok && fitsInt128(v) {
			return v.String()
		}
	}

	if key, err := solana.PublicKeyFromBase58(stripped); err == nil {
		// arrays of byte marshal as JSON arrays of numbers
		encoded, err := json.Marshal([32]byte(key))
		if err == nil {
			return string(encoded)
		}
	}

	token = strings.ReplaceAll(token, "5Min", "5min")
	return strings.ReplaceAll(token, "24H", "24h")
}

// isHexBytes reports whether s is an even-length string of hex digits, the
// same acceptance as a raw hex byte decode. Odd-length positive literals
// stay text; negative ones are handled by the sign check above.
func isHexBytes(s string) bool {
	_, err := hex.DecodeString(s)
	return err == nil
}

func fitsInt128(v *big.Int) bool {
	return v.Cmp(int128Min) >= 0 && v.Cmp(int128Max) <= 0
}
