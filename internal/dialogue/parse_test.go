package dialogue

import "testing"

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"intent": "leave_request"}`, `{"intent": "leave_request"}`},
		{"json fence", "```json\n{\"intent\": \"leave_request\"}\n```", `{"intent": "leave_request"}`},
		{"bare fence", "```\n{\"intent\": \"leave_request\"}\n```", `{"intent": "leave_request"}`},
		{"fence with prose", "Here you go:\n```json\n{\"a\": 1}\n```\nHope that helps!", `{"a": 1}`},
		{"whitespace", "  sick  \n", "sick"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
