// Package fonts locates and encodes the fonts used for chart text.
//
// SVG output names a CSS font stack and lets the viewer resolve it. PDF and
// PNG output need real glyph outlines, so those sinks either take a font
// file loaded with [Load] or search the system for one of
// [SystemFamilies].
package fonts

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"sync"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// FallbackFontFamily is the CSS font stack written into SVG text.
const FallbackFontFamily = `'DejaVu Sans', 'Helvetica Neue', Arial, Helvetica, sans-serif`

// EmbeddedFontFamily is the CSS family name given to a font embedded with
// [FontFace].
const EmbeddedFontFamily = "stackchart"

// SystemFamilies are the installed families tried, in order, when no font
// file is given.
var SystemFamilies = []string{
	"DejaVu Sans",
	"Arial",
	"Helvetica",
	"Liberation Sans",
	"Noto Sans",
}

// Load reads a TTF, OTF, WOFF or WOFF2 file.
func Load(path string) ([]byte, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "font file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read font file")
	}
	if Format(data) == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "not a font file: %s", path)
	}
	return data, nil
}

// Format reports the CSS font format of data: "truetype", "opentype",
// "woff" or "woff2". It returns "" for unrecognized data.
func Format(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("wOFF")):
		return "woff"
	case bytes.HasPrefix(data, []byte("wOF2")):
		return "woff2"
	case bytes.HasPrefix(data, []byte("OTTO")):
		return "opentype"
	case bytes.HasPrefix(data, []byte{0, 1, 0, 0}), bytes.HasPrefix(data, []byte("true")):
		return "truetype"
	}
	return ""
}

var (
	b64Mu    sync.Mutex
	b64Cache = map[string]string{}
)

// Base64 returns data as standard base64. Results are cached by content,
// so repeated renders with the same font encode it once.
func Base64(data []byte) string {
	key := string(data)
	b64Mu.Lock()
	defer b64Mu.Unlock()
	if s, ok := b64Cache[key]; ok {
		return s
	}
	s := base64.StdEncoding.EncodeToString(data)
	b64Cache[key] = s
	return s
}

// FontFace returns a CSS @font-face rule that embeds data under
// [EmbeddedFontFamily].
func FontFace(data []byte) string {
	return fmt.Sprintf(`@font-face { font-family: '%s'; src: url(data:font/%s;base64,%s) format('%s'); }`,
		EmbeddedFontFamily, Format(data), Base64(data), Format(data))
}
