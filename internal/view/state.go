// Package view holds the profile card's state machine and presentation rules.
//
// State changes go through Reduce, which is pure and returns the effects the
// caller has to run. Controller runs those effects for one browser session.
package view

import (
	"time"

	"github.com/khoahotran/devfinder/internal/domain/account"
)

const (
	DefaultUsername   = "octocat"
	DefaultClearDelay = 10 * time.Second
	NoResultsMessage  = "No results"
)

type State struct {
	DarkMode   bool            `json:"dark_mode"`
	SearchText string          `json:"search_text"`
	Account    account.Account `json:"account"`
	Loading    bool            `json:"loading"`
	ErrorMsg   string          `json:"error_msg"`
	Trigger    bool            `json:"trigger"`
	Seq        uint64          `json:"seq"`
	ErrorToken uint64          `json:"error_token"`
}

func NewState(username string) State {
	if username == "" {
		username = DefaultUsername
	}
	return State{SearchText: username}
}

// Restored returns the state as it should look after being loaded back from
// a snapshot: nothing is in flight and no timer is armed any more.
func (s State) Restored() State {
	s.Loading = false
	s.Trigger = false
	s.ErrorMsg = ""
	s.ErrorToken = 0
	return s
}

type Event interface {
	isEvent()
}

type Mounted struct{}

type SearchTextEdited struct {
	Text string
}

type SearchRequested struct{}

type ThemeToggled struct{}

type FetchSucceeded struct {
	Seq     uint64
	Account account.Account
}

type FetchFailed struct {
	Seq uint64
	Err error
}

type ErrorTimerFired struct {
	Token uint64
}

func (Mounted) isEvent()          {}
func (SearchTextEdited) isEvent() {}
func (SearchRequested) isEvent()  {}
func (ThemeToggled) isEvent()     {}
func (FetchSucceeded) isEvent()   {}
func (FetchFailed) isEvent()      {}
func (ErrorTimerFired) isEvent()  {}

type Effect interface {
	isEffect()
}

type StartFetch struct {
	Seq      uint64
	Username string
}

type ScheduleErrorClear struct {
	Token uint64
	After time.Duration
}

type CancelErrorClear struct {
	Token uint64
}

func (StartFetch) isEffect()         {}
func (ScheduleErrorClear) isEffect() {}
func (CancelErrorClear) isEffect()   {}
