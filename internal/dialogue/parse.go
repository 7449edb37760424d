package dialogue

import "strings"

// stripCodeFence unwraps a markdown code fence around model output. Models
// in JSON mode still occasionally wrap their answer in ```json fences.
func stripCodeFence(s string) string {
	if strings.Contains(s, "```json") {
		after := strings.SplitN(s, "```json", 2)[1]
		return strings.TrimSpace(strings.SplitN(after, "```", 2)[0])
	}
	if strings.Contains(s, "```") {
		parts := strings.Split(s, "```")
		if len(parts) >= 2 {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(s)
}
