package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	bruntime "github.com/tjcardinal/tiny-basic/runtime"
)

type appConfig struct {
	outDir     string
	stackSize  int
	checkedDiv bool
	workers    int
	tui        bool
	maxSteps   int
	verbose    bool
}

func defaultConfig() appConfig {
	return appConfig{
		outDir:    ".",
		stackSize: bruntime.DefaultStackSize,
		workers:   1,
	}
}

func (c appConfig) vmOptions() []bruntime.Option {
	return []bruntime.Option{
		bruntime.WithStackSize(c.stackSize),
		bruntime.WithMaxSteps(c.maxSteps),
	}
}

type vmStartedMsg struct {
	events <-chan tea.Msg
	cancel context.CancelFunc
}

type vmOutputMsg struct {
	out bruntime.Output
}

type vmDoneMsg struct {
	err error
}

type vmInputResp struct {
	value string
	abort bool
}

type vmPromptMsg struct {
	req  bruntime.InputRequest
	resp chan vmInputResp
}

type vmPollMsg struct{}

type pendingInput struct {
	req  bruntime.InputRequest
	resp chan vmInputResp
}
