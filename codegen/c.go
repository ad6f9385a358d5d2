package codegen

import (
	"fmt"
	"strings"

	"github.com/tjcardinal/tiny-basic/ast"
)

func cVar(v ast.Var) (string, error) {
	if !v.Valid() {
		return "", fmt.Errorf("variable %q: %w", byte(v), ErrUnsupported)
	}
	return fmt.Sprintf("vars[%d]", v.Index()), nil
}

func cRelop(op ast.Relop) (string, error) {
	switch op {
	case ast.Equal:
		return "==", nil
	case ast.NotEqual:
		return "!=", nil
	case ast.Greater:
		return ">", nil
	case ast.GreaterEqual:
		return ">=", nil
	case ast.Less:
		return "<", nil
	case ast.LessEqual:
		return "<=", nil
	default:
		return "", fmt.Errorf("relational operator %d: %w", op, ErrUnsupported)
	}
}

// cString quotes s as a C string literal. Bytes outside printable ASCII
// become fixed-width octal escapes.
func cString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '?':
			b.WriteString(`\?`) // trigraphs
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&b, "\\%03o", c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func cComment(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}
