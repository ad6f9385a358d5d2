package mobile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tinybasic "github.com/tjcardinal/tiny-basic"
	"github.com/tjcardinal/tiny-basic/codegen"
	bruntime "github.com/tjcardinal/tiny-basic/runtime"
)

// maxSteps keeps a looping program from hanging the host app.
const maxSteps = 1_000_000

type runResult struct {
	Outputs []bruntime.Output `json:"outputs"`
	Error   string            `json:"error,omitempty"`
}

type compileResult struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// Compile translates BASIC source to C and returns JSON {"code": ...} or
// {"error": ...}.
func Compile(src string) string {
	var result compileResult
	code, err := tinybasic.Compile(src, codegen.Options{})
	if err != nil {
		result.Error = fmt.Sprintf("compile: %v", err)
	} else {
		result.Code = code
	}
	b, _ := json.Marshal(result)
	return string(b)
}

// Run executes BASIC source and returns JSON result.
// inputsJSON format: ["1","42", ...], one entry per INPUT value.
func Run(src, inputsJSON string) string {
	result := runResult{Outputs: nil}

	var queued []string
	if strings.TrimSpace(inputsJSON) != "" {
		if err := json.Unmarshal([]byte(inputsJSON), &queued); err != nil {
			result.Error = fmt.Sprintf("invalid inputs json: %v", err)
			b, _ := json.Marshal(result)
			return string(b)
		}
	}

	vm, err := tinybasic.Load(src, bruntime.WithMaxSteps(maxSteps))
	if err != nil {
		result.Error = fmt.Sprintf("compile: %v", err)
		b, _ := json.Marshal(result)
		return string(b)
	}
	if len(queued) > 0 {
		vm.EnqueueInput(queued...)
	}

	out, err := vm.Run(context.Background())
	if err != nil {
		result.Error = fmt.Sprintf("runtime: %v", err)
	} else {
		result.Outputs = out
	}

	b, _ := json.Marshal(result)
	return string(b)
}
