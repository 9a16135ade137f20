package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// kittyChunkSize is the maximum number of base64 bytes per kitty
// protocol chunk.
const kittyChunkSize = 4096

// KittyEscape encodes an image as a kitty graphics escape sequence
// that the terminal scales into a cols x rows cell area at the cursor
// position. The data travels inline (t=d), so it works regardless of
// where the terminal process runs.
func KittyEscape(img image.Image, cols, rows int) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("render: encode image: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())

	var b strings.Builder

	if len(encoded) <= kittyChunkSize {
		// Single chunk: m=0 marks it as the last.
		fmt.Fprintf(&b, "\033_Gf=100,a=T,t=d,c=%d,r=%d,m=0;%s\033\\", cols, rows, encoded)
		return b.String(), nil
	}

	for i := 0; i < len(encoded); i += kittyChunkSize {
		end := i + kittyChunkSize
		if end > len(encoded) {
			end = len(encoded)
		}
		chunk := encoded[i:end]

		switch {
		case i == 0:
			// First chunk carries all the metadata.
			fmt.Fprintf(&b, "\033_Gf=100,a=T,t=d,c=%d,r=%d,m=1;%s\033\\", cols, rows, chunk)
		case end >= len(encoded):
			fmt.Fprintf(&b, "\033_Gm=0;%s\033\\", chunk)
		default:
			fmt.Fprintf(&b, "\033_Gm=1;%s\033\\", chunk)
		}
	}

	return b.String(), nil
}
