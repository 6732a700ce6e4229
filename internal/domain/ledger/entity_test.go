package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCostFor(t *testing.T) {
	assert.Equal(t, 1, CostFor(KindQuestion))
	assert.Equal(t, 2, CostFor(KindExam))
	assert.Equal(t, 2, CostFor(KindCombined))
	assert.Equal(t, 1, CostFor(KindImage))
	assert.Equal(t, 1, CostFor("something-else"))
}

func TestIsValidCause(t *testing.T) {
	assert.True(t, IsValidCause(CauseUsage))
	assert.True(t, IsValidCause(CauseManualGrant))
	assert.True(t, IsValidCause(CauseBulkGrant))
	assert.True(t, IsValidCause(CauseMpesaApproved))
	assert.False(t, IsValidCause(Cause("refund")))
	assert.False(t, IsValidCause(Cause("")))
}
