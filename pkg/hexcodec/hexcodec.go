// Package hexcodec converts between SVF hex strings and register bytes.
package hexcodec

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/OpenTraceLab/svf2csvf/pkg/buffer"
)

// ErrMalformedHex reports an odd-length string or a non-hex character.
var ErrMalformedHex = errors.New("hexcodec: malformed hex")

// Decode reads text as hex digit pairs into dst, one byte per pair, in the
// order the pairs appear. dst is reset before decoding; on error its contents
// are unspecified but its capacity is kept.
func Decode(dst *buffer.Buffer, text string) error {
	if len(text)%2 != 0 {
		return fmt.Errorf("%w: odd length %d in %q", ErrMalformedHex, len(text), text)
	}
	if err := dst.ZeroResize(len(text) / 2); err != nil {
		return err
	}
	if _, err := hex.Decode(dst.Bytes(), []byte(text)); err != nil {
		var invalid hex.InvalidByteError
		if errors.As(err, &invalid) {
			return fmt.Errorf("%w: invalid character %q in %q", ErrMalformedHex, rune(invalid), text)
		}
		return fmt.Errorf("%w: %v", ErrMalformedHex, err)
	}
	return nil
}

// Render returns two uppercase hex digits per byte with no separators.
func Render(data []byte) string {
	return strings.ToUpper(hex.EncodeToString(data))
}
