package utils

import "testing"

func TestExtractJSONBlock(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "tagged_fence",
			in:   "```json\n{\"topics\": []}\n```",
			want: `{"topics": []}`,
		},
		{
			name: "untagged_fence",
			in:   "```\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "leading_and_trailing_whitespace",
			in:   "  \n```json\n  {\"a\": 1}  \n```\n  ",
			want: `{"a": 1}`,
		},
		{
			name: "prose_around_fence",
			in:   "Here you go:\n```json\n{\"ok\":true}\n```\nHope that helps.",
			want: `{"ok":true}`,
		},
		{
			name: "no_fence_passthrough",
			in:   `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "plain_text_passthrough",
			in:   "not json at all",
			want: "not json at all",
		},
		{
			name: "unterminated_fence_passthrough",
			in:   "```json\n{\"a\":1}",
			want: "```json\n{\"a\":1}",
		},
		{
			name: "non_json_tag_passthrough",
			in:   "```python\nprint(1)\n```",
			want: "```python\nprint(1)\n```",
		},
		{
			name: "uppercase_tag",
			in:   "```JSON\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "empty_input",
			in:   "",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractJSONBlock(tc.in)
			if got != tc.want {
				t.Fatalf("ExtractJSONBlock(%q)=%q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
