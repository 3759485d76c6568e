package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/stephenc/dnstemplate/config"
)

// watchState is the only state carried across ticks: the output of the
// last successful write. It is updated at the end of a successful tick
// only, so after a failed tick the next comparison still runs against the
// last known-good write.
type watchState struct {
	previous    string
	hasPrevious bool
}

// runner executes resolve/render/write/notify cycles.
type runner struct {
	bindings []config.Binding
	consts   map[string]string

	binder   *binder
	renderer Renderer
	writer   *outputWriter
	notifier Notifier

	command       []string
	notifyOnFirst bool

	clock    clockwork.Clock
	interval time.Duration
	reload   <-chan struct{}

	metrics *watchMetrics

	// one-shot only: print to standard out instead of writing a file
	stdout bool
}

// tick runs one resolve/render/write/notify cycle against state.
func (r *runner) tick(ctx context.Context, state *watchState) error {
	r.metrics.tickStarted()

	vars, err := r.binder.bind(ctx, r.bindings)
	if err != nil {
		r.metrics.tickFailed(stageResolve)
		return err
	}

	tplVars := make(map[string]interface{}, len(vars)+len(r.consts))
	for name, value := range r.consts {
		tplVars[name] = value
	}
	for name, addrs := range vars {
		tplVars[name] = addrs
	}

	out, err := r.renderer.Render(tplVars)
	if err != nil {
		r.metrics.tickFailed(stageRender)
		return err
	}

	if r.stdout {
		fmt.Print(out)
		return nil
	}

	var prev *string
	if state.hasPrevious {
		prev = &state.previous
	}
	changed, err := r.writer.write(out, prev)
	if err != nil {
		r.metrics.tickFailed(stageWrite)
		return err
	}

	first := !state.hasPrevious
	state.previous = out
	state.hasPrevious = true
	r.metrics.tickSucceeded(r.clock.Now(), vars)

	if !changed {
		log.Debugf("%s unchanged", r.writer.path)
		return nil
	}
	r.metrics.wrote()
	log.Infof("%s updated", r.writer.path)

	if len(r.command) == 0 || (first && !r.notifyOnFirst) {
		return nil
	}
	err = r.notifier.Notify(r.command)
	r.metrics.notified(err)
	if err != nil {
		// the write is already durable, a failed reload never undoes it
		log.Errorf("on-change command failed: %v", err)
	}

	return nil
}

// Once executes a single cycle. Any failure is returned to the caller.
func (r *runner) Once(ctx context.Context) error {
	return r.tick(ctx, &watchState{})
}

// Watch executes cycles until ctx is cancelled. Per-tick failures are
// logged and retried at the next interval, they never stop the loop.
func (r *runner) Watch(ctx context.Context) {
	state := &watchState{}
	for {
		if err := r.tick(ctx, state); err != nil {
			log.Errorln(err)
		}

		select {
		case <-ctx.Done():
			return
		case <-r.clock.After(r.interval):
		case <-r.reload:
			log.Info("template changed, rendering immediately")
		}
	}
}
