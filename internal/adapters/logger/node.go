package logger

import (
	"context"
	"os"
	"strconv"

	"github.com/grindlemire/graft"
	"go.trai.ch/faasbench/internal/core/ports"
)

// NodeID identifies the logger node.
const NodeID graft.ID = "adapter.logger"

// jsonEnv switches the logger to JSON before any flag is parsed, so that
// failures during graph construction are machine readable too.
const jsonEnv = "FAASBENCH_LOG_JSON"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			l := New()
			if enable, err := strconv.ParseBool(os.Getenv(jsonEnv)); err == nil {
				l.SetJSON(enable)
			}
			return l, nil
		},
	})
}
