package launcher

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"

	"github.com/rupor-github/junction/util"
)

// MaxClipboardSize is the maximum allowed clipboard payload size (1 MiB).
const MaxClipboardSize = 1 << 20

var clipboardWrite = clipboard.WriteAll

// Copy puts canonical form of location on clipboard and returns it.
func (l *Launcher) Copy(ref string) (string, error) {
	if inner, ok := util.Unwrap(ref); ok {
		ref = inner
	}
	text := util.ParseWith(l.host, ref).String()
	log.Debug().Str("text", text).Msg("copy request")
	if len(text) > MaxClipboardSize {
		return "", fmt.Errorf("clipboard payload size %d exceeds maximum %d", len(text), MaxClipboardSize)
	}
	if err := clipboardWrite(text); err != nil {
		return "", fmt.Errorf("unable to write clipboard: %w", err)
	}
	return text, nil
}
