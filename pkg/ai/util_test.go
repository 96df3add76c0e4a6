package ai

import (
	"testing"
)

func TestUnmarshalFlexible(t *testing.T) {
	type rewrite struct {
		Keywords   string `json:"keywords"`
		TypeFilter string `json:"type_filter,omitempty"`
	}

	tests := []struct {
		name  string
		input string
		want  rewrite
	}{
		{
			name:  "valid json object",
			input: `{"keywords":"python machine learning"}`,
			want:  rewrite{Keywords: "python machine learning"},
		},
		{
			name:  "unquoted key and single quotes",
			input: `{keywords: 'python'}`,
			want:  rewrite{Keywords: "python"},
		},
		{
			name:  "trailing comma",
			input: `{"keywords":"python",}`,
			want:  rewrite{Keywords: "python"},
		},
		{
			name:  "missing end bracket",
			input: `{"keywords":"python`,
			want:  rewrite{Keywords: "python"},
		},
		{
			name:  "stringified invalid json object",
			input: `"{keywords: 'python'}"`,
			want:  rewrite{Keywords: "python"},
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n  \"keywords\": \"python\"\n}\n",
			want:  rewrite{Keywords: "python"},
		},
		{
			name:  "extra field",
			input: `{"keywords":"tensorflow","type_filter":"Framework"}`,
			want:  rewrite{Keywords: "tensorflow", TypeFilter: "Framework"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got rewrite
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("UnmarshalFlexible() got = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	type rewrite struct {
		Keywords string `json:"keywords"`
	}

	schema := GenerateSchema(&rewrite{})
	if schema == nil {
		t.Fatal("GenerateSchema() returned nil")
	}
}
