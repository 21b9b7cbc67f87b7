package rule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"
)

const (
	// ValidationErrorCode is used when a failing script defines no errorCode.
	ValidationErrorCode = "VALIDATION_ERROR"
	// ScriptErrorCode reports a script that could not be executed.
	ScriptErrorCode = "SCRIPT_ERROR"
)

// ErrorKind categorizes script failures.
type ErrorKind string

const (
	KindSyntax      ErrorKind = "syntax_error"
	KindRuntime     ErrorKind = "runtime_error"
	KindInterrupted ErrorKind = "interrupted"
	KindType        ErrorKind = "type_error"
)

// ScriptError is a structured script failure.
type ScriptError struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
}

func (e *ScriptError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("rule: [%s] %s", e.Kind, e.Message))
	if e.Line > 0 {
		b.WriteString(fmt.Sprintf(" at line %d", e.Line))
		if e.Column > 0 {
			b.WriteString(fmt.Sprintf(", column %d", e.Column))
		}
	}
	return b.String()
}

func newScriptError(err error) *ScriptError {
	var syntaxErr *goja.CompilerSyntaxError
	if errors.As(err, &syntaxErr) {
		ret := &ScriptError{Kind: KindSyntax, Message: syntaxErr.Message}
		if syntaxErr.File != nil {
			position := syntaxErr.File.Position(syntaxErr.Offset)
			ret.Line, ret.Column = position.Line, position.Column
		}
		return ret
	}
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return &ScriptError{Kind: KindInterrupted, Message: fmt.Sprintf("%v", interrupted.Value())}
	}
	var exception *goja.Exception
	if errors.As(err, &exception) {
		ret := &ScriptError{Kind: KindRuntime, Message: exception.Error()}
		if value := exception.Value(); value != nil {
			ret.Message = value.String()
			if strings.HasPrefix(ret.Message, "SyntaxError") {
				ret.Kind = KindSyntax
			}
		}
		if frames := exception.Stack(); len(frames) > 0 {
			position := frames[0].Position()
			ret.Line, ret.Column = position.Line, position.Column
		}
		return ret
	}
	return &ScriptError{Kind: KindRuntime, Message: err.Error()}
}
