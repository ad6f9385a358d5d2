//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"syscall/js"

	tinybasic "github.com/tjcardinal/tiny-basic"
	"github.com/tjcardinal/tiny-basic/codegen"
	bruntime "github.com/tjcardinal/tiny-basic/runtime"
)

const maxSteps = 1_000_000

type runResult struct {
	Outputs []bruntime.Output `json:"outputs"`
	Error   string            `json:"error,omitempty"`
}

type compileResult struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

type inputRequestPayload struct {
	Line uint32 `json:"line"`
	Var  string `json:"var"`
}

const abortSentinel = "__TINYBASIC_ABORT__"

// inputPrompt asks the page through tinybasicInputNext when the queued
// inputs run out.
func inputPrompt(req bruntime.InputRequest) (string, error) {
	fn := js.Global().Get("tinybasicInputNext")
	if fn.Type() != js.TypeFunction {
		return "", bruntime.ErrInputExhausted
	}
	b, _ := json.Marshal(inputRequestPayload{Line: req.Line, Var: req.Var.String()})
	v := fn.Invoke(string(b))
	if v.IsUndefined() || v.IsNull() {
		return "", bruntime.ErrInputExhausted
	}
	out := strings.TrimSpace(v.String())
	if out == abortSentinel {
		return "", fmt.Errorf("input queue is empty for %s (add input and run again)", req.Var)
	}
	return out, nil
}

func compileSource(this js.Value, args []js.Value) any {
	var result compileResult
	if len(args) < 1 {
		result.Error = "tinybasicCompile requires source text"
		b, _ := json.Marshal(result)
		return string(b)
	}
	code, err := tinybasic.Compile(args[0].String(), codegen.Options{})
	if err != nil {
		result.Error = fmt.Sprintf("compile: %v", err)
	} else {
		result.Code = code
	}
	b, _ := json.Marshal(result)
	return string(b)
}

func runSource(this js.Value, args []js.Value) any {
	result := runResult{Outputs: nil}
	if len(args) < 1 {
		result.Error = "tinybasicRun requires source text"
		b, _ := json.Marshal(result)
		return string(b)
	}

	var queued []string
	if len(args) > 1 {
		if strings.TrimSpace(args[1].String()) != "" {
			_ = json.Unmarshal([]byte(args[1].String()), &queued)
		}
	}

	vm, err := tinybasic.Load(args[0].String(),
		bruntime.WithMaxSteps(maxSteps),
		bruntime.WithInputProvider(inputPrompt),
	)
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

func main() {
	js.Global().Set("tinybasicCompile", js.FuncOf(compileSource))
	js.Global().Set("tinybasicRun", js.FuncOf(runSource))
	select {}
}
