package security

import "testing"

func TestCommentSanitizer_StripsScriptTags(t *testing.T) {
	s := NewCommentSanitizer()

	got := s.Sanitize(`jogo bom <script>alert("xss")</script>`)
	if got != "jogo bom " {
		t.Errorf("Sanitize = %q, want %q", got, "jogo bom ")
	}
}

func TestCommentSanitizer_StripsAllHTMLTags(t *testing.T) {
	s := NewCommentSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"アンカータグ", `<a href="https://evil.example.com">clique aqui</a>`, "clique aqui"},
		{"画像タグ", `antes <img src=x onerror=alert(1)> depois`, "antes  depois"},
		{"強調タグ", "<b>ótimo</b> jogo", "ótimo jogo"},
		{"プレーンテキスト", "comentário normal sem tags", "comentário normal sem tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCommentSanitizer_EmptyString(t *testing.T) {
	s := NewCommentSanitizer()

	if got := s.Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want 空文字列", got)
	}
}

func TestCommentSanitizer_Idempotent(t *testing.T) {
	s := NewCommentSanitizer()

	input := `texto <i>com</i> tags`
	once := s.Sanitize(input)
	twice := s.Sanitize(once)
	if once != twice {
		t.Errorf("サニタイズは冪等であるべき: once=%q twice=%q", once, twice)
	}
}
