package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestProcessesCreated_ByOutcome(t *testing.T) {
	before := testutil.ToFloat64(ProcessesCreated.WithLabelValues("duplicate"))
	ProcessesCreated.WithLabelValues("duplicate").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ProcessesCreated.WithLabelValues("duplicate")))
}

func TestWorkflowsCreated(t *testing.T) {
	before := testutil.ToFloat64(WorkflowsCreated)
	WorkflowsCreated.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(WorkflowsCreated))
}
