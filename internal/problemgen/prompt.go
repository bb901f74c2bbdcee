package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/codemaster/internal/placement"
)

const systemPrompt = `You are a programming instructor creating practice problems for learners.

Rules:
- Create a new, unique problem that is solvable within a single function.
- Write the title and description in Korean.
- The description must state the inputs, the expected return value and any constraints.
- The example output must be exactly what the function returns for the example input.
- Rate relative_difficulty against the requested level, not against programming in general.`

// stubInstructions holds the per-language rules for function_stub.
var stubInstructions = map[Language]string{
	Python: `For Python, give only the function name and parameters, with no "def", no type hints and no colon (e.g. "solution(n)").`,
	C:      "CRITICAL INSTRUCTION FOR C: For the function_stub, you MUST provide the full function signature including return type and parameters (e.g. `int solution(int n)`, `char* solution(char* s)`).",
	Java:   "CRITICAL INSTRUCTION FOR JAVA: For the function_stub, you MUST provide the full method signature including `public`, return type and parameters (e.g. `public int solution(int n)`, `public String[] solution(String[] words)`). You MUST use primitive array types (e.g. `int[] arr`) instead of Collection types like `List<String>`.",
}

// buildUserMessage constructs the user message for one generation request.
func buildUserMessage(input GenerateInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Language: %s\n", input.Language)
	fmt.Fprintf(&b, "Level: %d of %d (%s)\n", input.Level, placement.MaxLevel, placement.LevelName(input.Level))
	fmt.Fprintf(&b, "Topic: %s\n", placement.LevelTopic(input.Level))

	if instr, ok := stubInstructions[input.Language]; ok {
		b.WriteString("\n")
		b.WriteString(instr)
	}

	return b.String()
}
