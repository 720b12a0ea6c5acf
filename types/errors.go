package types

import "errors"

var (
	ErrUnknownPolicy      = errors.New("unknown policy")
	ErrUnknownEnvironment = errors.New("unknown environment")
	ErrActionShape        = errors.New("action shape does not match observation")
	ErrNoSteps            = errors.New("no steps recorded")
	ErrEmptyUtilization   = errors.New("empty utilization")
	ErrEpisodeDone        = errors.New("episode already done")
)
