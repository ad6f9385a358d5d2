package main

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	tinybasic "github.com/tjcardinal/tiny-basic"
	bruntime "github.com/tjcardinal/tiny-basic/runtime"
)

var errAborted = errors.New("input aborted")

// runVM executes the program on its own goroutine and reports progress to
// the TUI through events. ctx is cancelled when the user quits.
func runVM(ctx context.Context, cfg appConfig, src string, events chan<- tea.Msg) {
	defer close(events)
	opts := append(cfg.vmOptions(),
		bruntime.WithOutputHook(func(out bruntime.Output) {
			events <- vmOutputMsg{out: out}
		}),
		bruntime.WithInputProvider(func(req bruntime.InputRequest) (string, error) {
			resp := make(chan vmInputResp, 1)
			events <- vmPromptMsg{req: req, resp: resp}
			select {
			case r := <-resp:
				if r.abort {
					return "", errAborted
				}
				return r.value, nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}),
	)
	vm, err := tinybasic.Load(src, opts...)
	if err != nil {
		events <- vmDoneMsg{err: err}
		return
	}
	_, err = vm.Run(ctx)
	events <- vmDoneMsg{err: err}
}
