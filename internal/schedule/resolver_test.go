package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"
)

func TestEvaluate_EmptyScheduleAllClean(t *testing.T) {
	proposal := Proposal{
		domain.Monday:    {DropOff: true, PickUp: true},
		domain.Wednesday: {PickUp: true},
	}

	eval := Evaluate("张伟", proposal, NewWeekSchedule())

	assert.Empty(t, eval.Conflicts)
	assert.False(t, eval.HasConflicts())
	require.Len(t, eval.Clean, 3)
	assert.Equal(t, CleanSlot{Day: domain.Monday, Slot: SlotDropOff}, eval.Clean[0])
	assert.Equal(t, CleanSlot{Day: domain.Monday, Slot: SlotPickUp}, eval.Clean[1])
	assert.Equal(t, CleanSlot{Day: domain.Wednesday, Slot: SlotPickUp}, eval.Clean[2])
}

func TestEvaluate_AllTargetsOwnedByOthers(t *testing.T) {
	ws := NewWeekSchedule()
	ws[domain.Monday].DropOff = "李娜"
	ws[domain.Monday].PickUp = "王芳"
	ws[domain.Tuesday].DropOff = "李娜"

	proposal := Proposal{
		domain.Monday:  {DropOff: true, PickUp: true},
		domain.Tuesday: {DropOff: true},
	}

	eval := Evaluate("张伟", proposal, ws)

	assert.Empty(t, eval.Clean)
	require.Len(t, eval.Conflicts, 3)
	assert.Equal(t, Conflict{Day: domain.Monday, Slot: SlotDropOff, Owner: "李娜"}, eval.Conflicts[0])
	assert.Equal(t, Conflict{Day: domain.Monday, Slot: SlotPickUp, Owner: "王芳"}, eval.Conflicts[1])
	assert.Equal(t, Conflict{Day: domain.Tuesday, Slot: SlotDropOff, Owner: "李娜"}, eval.Conflicts[2])
}

// 重新认领自己已有的时段不算冲突
func TestEvaluate_OwnSlotIsClean(t *testing.T) {
	ws := NewWeekSchedule()
	ws[domain.Monday].DropOff = "张伟"

	proposal := Proposal{
		domain.Monday: {DropOff: true},
	}

	eval := Evaluate("张伟", proposal, ws)

	assert.Empty(t, eval.Conflicts)
	require.Len(t, eval.Clean, 1)
	assert.Equal(t, CleanSlot{Day: domain.Monday, Slot: SlotDropOff}, eval.Clean[0])
}

// 同一天的两个时段互相独立：一个冲突一个干净时分别体现在两边
func TestEvaluate_SameDaySlotsAreIndependent(t *testing.T) {
	ws := NewWeekSchedule()
	ws[domain.Monday].DropOff = "张伟"

	proposal := Proposal{
		domain.Monday: {DropOff: true, PickUp: true},
	}

	eval := Evaluate("李娜", proposal, ws)

	require.Len(t, eval.Conflicts, 1)
	assert.Equal(t, Conflict{Day: domain.Monday, Slot: SlotDropOff, Owner: "张伟"}, eval.Conflicts[0])
	require.Len(t, eval.Clean, 1)
	assert.Equal(t, CleanSlot{Day: domain.Monday, Slot: SlotPickUp}, eval.Clean[0])
}

func TestEvaluate_UnselectedSlotsNotEvaluated(t *testing.T) {
	ws := NewWeekSchedule()
	ws[domain.Monday].PickUp = "王芳"

	proposal := Proposal{
		domain.Monday: {DropOff: true},
		// 两个时段都没勾选的 day 会被整体跳过
		domain.Tuesday: {},
	}

	eval := Evaluate("张伟", proposal, ws)

	assert.Empty(t, eval.Conflicts)
	require.Len(t, eval.Clean, 1)
	assert.Equal(t, CleanSlot{Day: domain.Monday, Slot: SlotDropOff}, eval.Clean[0])
}
