package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	tinybasic "github.com/tjcardinal/tiny-basic"
	bruntime "github.com/tjcardinal/tiny-basic/runtime"
)

func runPlain(ctx context.Context, cfg appConfig, src string, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	opts := append(cfg.vmOptions(),
		bruntime.WithOutputHook(func(o bruntime.Output) {
			if o.NewLine {
				fmt.Fprintln(out, o.Text)
			} else {
				fmt.Fprint(out, o.Text)
			}
		}),
		bruntime.WithInputProvider(func(req bruntime.InputRequest) (string, error) {
			fmt.Fprint(out, bruntime.Prompt)
			line, err := reader.ReadString('\n')
			if err == io.EOF && line == "" {
				return "", bruntime.ErrInputExhausted
			}
			if err != nil && err != io.EOF {
				return "", err
			}
			return strings.TrimRight(line, "\r\n"), nil
		}),
	)
	vm, err := tinybasic.Load(src, opts...)
	if err != nil {
		return err
	}
	_, err = vm.Run(ctx)
	return err
}
