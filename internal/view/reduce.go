package view

import "time"

// Reducer applies events with a fixed error-clear delay.
type Reducer struct {
	ClearDelay time.Duration
}

// Reduce uses DefaultClearDelay.
func Reduce(s State, e Event) (State, []Effect) {
	return Reducer{ClearDelay: DefaultClearDelay}.Reduce(s, e)
}

func (r Reducer) Reduce(s State, e Event) (State, []Effect) {
	var effects []Effect

	switch ev := e.(type) {
	case Mounted, SearchRequested:
		s.Trigger = true

	case SearchTextEdited:
		s.SearchText = ev.Text

	case ThemeToggled:
		s.DarkMode = !s.DarkMode

	case FetchSucceeded:
		if ev.Seq == 0 || ev.Seq != s.Seq {
			return s, nil
		}
		s.Account = ev.Account
		s.Loading = false
		s.ErrorMsg = ""
		if s.ErrorToken != 0 {
			effects = append(effects, CancelErrorClear{Token: s.ErrorToken})
			s.ErrorToken = 0
		}

	case FetchFailed:
		if ev.Seq == 0 || ev.Seq != s.Seq {
			return s, nil
		}
		s.Loading = false
		s.ErrorMsg = NoResultsMessage
		if s.ErrorToken != 0 {
			effects = append(effects, CancelErrorClear{Token: s.ErrorToken})
		}
		// Tokens come from the request counter, so every failed request
		// arms a timer nobody else can clear.
		s.ErrorToken = ev.Seq
		effects = append(effects, ScheduleErrorClear{Token: s.ErrorToken, After: r.delay()})

	case ErrorTimerFired:
		if ev.Token == 0 || ev.Token != s.ErrorToken {
			return s, nil
		}
		s.ErrorMsg = ""
		s.ErrorToken = 0
	}

	if s.Trigger {
		s.Trigger = false
		s.Loading = true
		s.Seq++
		effects = append(effects, StartFetch{Seq: s.Seq, Username: s.SearchText})
	}

	return s, effects
}

func (r Reducer) delay() time.Duration {
	if r.ClearDelay <= 0 {
		return DefaultClearDelay
	}
	return r.ClearDelay
}
