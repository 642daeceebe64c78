//go:build !dev

package main

import (
	"context"

	"github.com/mazrean/jsonagent/log"
)

// DevFlag carries the profiling flags of dev builds.
type DevFlag struct{}

func (*DevFlag) StartProfiling(context.Context, log.Logger) error { return nil }

func (*DevFlag) StopProfiling(log.Logger) {}
