package problemgen

import (
	"fmt"
	"strings"
)

// EditorTemplate returns the starter code shown in the editor for a
// problem's function stub.
func EditorTemplate(lang Language, stub string) string {
	clean := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(stub, "def ", ""), ":", ""))
	if clean == "" {
		clean = "solution()"
	}

	switch lang {
	case Python:
		return fmt.Sprintf("def %s:\n    answer = 0\n    return answer", clean)
	case C:
		return fmt.Sprintf("%s {\n    int answer = 0;\n    return answer;\n}", clean)
	case Java:
		return fmt.Sprintf("class Solution {\n    %s {\n        int answer = 0;\n        return answer;\n    }\n}\n", clean)
	}
	return ""
}
