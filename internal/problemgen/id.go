package problemgen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const maxSlugLen = 32

var langCodes = map[Language]string{
	Python: "py",
	C:      "c",
	Java:   "java",
}

// newProblemID builds a unique id for a generated problem:
// ai-<lang>-l<level>-<slug>-<8 hex>. The model's own id is only a hint.
func newProblemID(lang Language, level int, hint string) string {
	code, ok := langCodes[lang]
	if !ok {
		code = slug.Make(string(lang))
	}

	s := slug.Make(strings.ReplaceAll(hint, "_", " "))
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	if s == "" {
		s = "problem"
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("ai-%s-l%d-%s-%s", code, level, s, suffix)
}
