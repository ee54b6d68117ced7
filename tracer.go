package jqcore

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Tracer observes Evaluator.Run as it descends through a filter tree.
// The default Evaluator uses a no-op implementation; wiring a ZapTracer
// (or any other Tracer) costs nothing beyond the two extra calls per
// node, since Enter/Leave take no variadic interface{} unless the
// implementation chooses to format something.
type Tracer interface {
	Enter(node string, v Val)
	Leave(node string, n int)
}

type noopTracer struct{}

func (noopTracer) Enter(string, Val) {}
func (noopTracer) Leave(string, int) {}

// ZapTracer logs structured Enter and Leave events through a zap.Logger,
// tagging every event with a correlation id chosen when the tracer is
// created, so traces from different tracers can be told apart in
// aggregated log output.
type ZapTracer struct {
	log *zap.Logger
	run string
}

// NewZapTracer starts a new correlation id for this tracer's lifetime.
func NewZapTracer(log *zap.Logger) *ZapTracer {
	return &ZapTracer{log: log, run: uuid.NewString()}
}

func (t *ZapTracer) Enter(node string, v Val) {
	t.log.Debug("eval.enter",
		zap.String("run", t.run),
		zap.String("node", node),
		zap.String("val", v.String()),
	)
}

func (t *ZapTracer) Leave(node string, n int) {
	t.log.Debug("eval.leave",
		zap.String("run", t.run),
		zap.String("node", node),
		zap.Int("outputs", n),
	)
}
