package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/schedule"
)

func TestCommit_CleanProposal(t *testing.T) {
	store := newFakeStore()
	eng := NewEngine(store)

	proposal := schedule.Proposal{
		domain.Monday:   {DropOff: true},
		domain.Thursday: {DropOff: true, PickUp: true},
	}

	result, err := eng.Commit("张伟", proposal, false)
	require.NoError(t, err)
	require.Len(t, result.Created, 2)
	assert.Empty(t, result.Superseded)
	for _, claim := range result.Created {
		assert.NotZero(t, claim.ID, "插入后应该回填存储分配的 id")
		assert.False(t, claim.CreatedAt.IsZero())
	}

	snapshot, err := eng.ReadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, "张伟", snapshot.Schedule[domain.Monday].DropOff)
	assert.Empty(t, snapshot.Schedule[domain.Monday].PickUp)
	assert.Equal(t, "张伟", snapshot.Schedule[domain.Thursday].DropOff)
	assert.Equal(t, "张伟", snapshot.Schedule[domain.Thursday].PickUp)
}

func TestCommit_ConflictWithoutOverride(t *testing.T) {
	store := newFakeStore()
	eng := NewEngine(store)

	_, err := eng.Commit("张伟", schedule.Proposal{
		domain.Monday: {DropOff: true},
	}, false)
	require.NoError(t, err)

	before, err := store.ListClaims()
	require.NoError(t, err)

	_, err = eng.Commit("李娜", schedule.Proposal{
		domain.Monday: {DropOff: true, PickUp: true},
	}, false)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, schedule.Conflict{
		Day:   domain.Monday,
		Slot:  schedule.SlotDropOff,
		Owner: "张伟",
	}, conflictErr.Conflicts[0])

	// 没有确认顶替时任何记录都不能变
	after, err := store.ListClaims()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

// 张伟认领了周一的送；李娜带着顶替确认提交周一送 + 接：
// 张伟的整条记录被删除，周一两个时段都归李娜
func TestCommit_OverrideTransfersOwnership(t *testing.T) {
	store := newFakeStore()
	eng := NewEngine(store)

	first, err := eng.Commit("张伟", schedule.Proposal{
		domain.Monday: {DropOff: true},
	}, false)
	require.NoError(t, err)

	result, err := eng.Commit("李娜", schedule.Proposal{
		domain.Monday: {DropOff: true, PickUp: true},
	}, true)
	require.NoError(t, err)

	require.Len(t, result.Superseded, 1)
	assert.Equal(t, first.Created[0].ID, result.Superseded[0].ID)
	assert.Equal(t, "张伟", result.Superseded[0].Participant)

	snapshot, err := eng.ReadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, "李娜", snapshot.Schedule[domain.Monday].DropOff)
	assert.Equal(t, "李娜", snapshot.Schedule[domain.Monday].PickUp)

	// 被顶替的记录已经不在存储里了
	for _, claim := range snapshot.Claims {
		assert.NotEqual(t, first.Created[0].ID, claim.ID)
	}
}

// 同一个人重复提交同一份提案不算冲突，有效归属也不会变化
func TestCommit_IdempotentForSameParticipant(t *testing.T) {
	store := newFakeStore()
	eng := NewEngine(store)

	proposal := schedule.Proposal{
		domain.Tuesday: {PickUp: true},
	}

	first, err := eng.Commit("王芳", proposal, false)
	require.NoError(t, err)
	assert.Empty(t, first.Evaluation.Conflicts)

	second, err := eng.Commit("王芳", proposal, false)
	require.NoError(t, err)
	assert.Empty(t, second.Evaluation.Conflicts)

	snapshot, err := eng.ReadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, "王芳", snapshot.Schedule[domain.Tuesday].PickUp)
	assert.Empty(t, snapshot.Schedule[domain.Tuesday].DropOff)
}

func TestCommit_InvalidProposals(t *testing.T) {
	store := newFakeStore()
	eng := NewEngine(store)

	_, err := eng.Commit("张伟", schedule.Proposal{}, false)
	assert.ErrorIs(t, err, ErrInvalidProposal)

	_, err = eng.Commit("张伟", schedule.Proposal{
		domain.Monday: {},
	}, false)
	assert.ErrorIs(t, err, ErrInvalidProposal)

	assert.Zero(t, store.batchCalls, "非法提案不应该触发任何写入")
}

func TestCommit_HolidayDayRejected(t *testing.T) {
	store := newFakeStore()
	eng := NewEngine(store)

	_, err := eng.ToggleHoliday(domain.Monday)
	require.NoError(t, err)

	_, err = eng.Commit("张伟", schedule.Proposal{
		domain.Monday: {DropOff: true},
	}, false)
	assert.ErrorIs(t, err, ErrInvalidProposal)
}

func TestCommit_BatchFailureLeavesStateUnchanged(t *testing.T) {
	store := newFakeStore()
	eng := NewEngine(store)

	_, err := eng.Commit("张伟", schedule.Proposal{
		domain.Monday: {DropOff: true},
	}, false)
	require.NoError(t, err)

	before, err := store.ListClaims()
	require.NoError(t, err)

	store.batchErr = errors.New("connection refused")
	_, err = eng.Commit("李娜", schedule.Proposal{
		domain.Monday: {DropOff: true},
	}, true)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)

	store.batchErr = nil
	after, err := store.ListClaims()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCommit_ReadFailureSurfaced(t *testing.T) {
	store := newFakeStore()
	store.listClaimsErr = errors.New("connection refused")
	eng := NewEngine(store)

	_, err := eng.Commit("张伟", schedule.Proposal{
		domain.Monday: {DropOff: true},
	}, false)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, store.listClaimsErr, storeErr.Err)
}

func TestRemoveOne_MissingID(t *testing.T) {
	store := newFakeStore()
	eng := NewEngine(store)

	_, err := eng.Commit("张伟", schedule.Proposal{
		domain.Monday: {DropOff: true},
	}, false)
	require.NoError(t, err)

	err = eng.RemoveOne(999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	claims, err := store.ListClaims()
	require.NoError(t, err)
	assert.Len(t, claims, 1, "删除不存在的记录不能影响已有记录")
}

func TestRemoveAll_IsAtomic(t *testing.T) {
	store := newFakeStore()
	eng := NewEngine(store)

	result, err := eng.Commit("张伟", schedule.Proposal{
		domain.Monday:  {DropOff: true},
		domain.Tuesday: {PickUp: true},
	}, false)
	require.NoError(t, err)

	// 批次里混进一个不存在的 id，整批都不能生效
	err = eng.RemoveAll([]int64{result.Created[0].ID, 999})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	claims, err := store.ListClaims()
	require.NoError(t, err)
	assert.Len(t, claims, 2)

	err = eng.RemoveAll([]int64{result.Created[0].ID, result.Created[1].ID})
	require.NoError(t, err)

	claims, err = store.ListClaims()
	require.NoError(t, err)
	assert.Empty(t, claims)
}

func TestRemoveAll_EmptyIsNoOp(t *testing.T) {
	store := newFakeStore()
	eng := NewEngine(store)

	require.NoError(t, eng.RemoveAll(nil))
	assert.Zero(t, store.batchCalls)
}

// 标记假日再取消，这一天回到原状，原有的认领不受影响
func TestToggleHoliday_RoundTrip(t *testing.T) {
	store := newFakeStore()
	eng := NewEngine(store)

	_, err := eng.Commit("张伟", schedule.Proposal{
		domain.Wednesday: {DropOff: true},
	}, false)
	require.NoError(t, err)

	result, err := eng.ToggleHoliday(domain.Friday)
	require.NoError(t, err)
	assert.True(t, result.Marked)
	require.NotNil(t, result.Mark)
	assert.NotZero(t, result.Mark.ID)

	snapshot, err := eng.ReadSnapshot()
	require.NoError(t, err)
	assert.True(t, snapshot.Schedule[domain.Friday].IsHoliday)

	result, err = eng.ToggleHoliday(domain.Friday)
	require.NoError(t, err)
	assert.False(t, result.Marked)
	assert.Nil(t, result.Mark)

	snapshot, err = eng.ReadSnapshot()
	require.NoError(t, err)
	assert.False(t, snapshot.Schedule[domain.Friday].IsHoliday)
	assert.Equal(t, "张伟", snapshot.Schedule[domain.Wednesday].DropOff)
}

func TestToggleHoliday_InvalidDay(t *testing.T) {
	eng := NewEngine(newFakeStore())

	_, err := eng.ToggleHoliday(6)
	assert.ErrorIs(t, err, ErrInvalidProposal)
}

func TestOwnClaims_FiltersByParticipant(t *testing.T) {
	store := newFakeStore()
	eng := NewEngine(store)

	_, err := eng.Commit("张伟", schedule.Proposal{
		domain.Monday: {DropOff: true},
	}, false)
	require.NoError(t, err)
	_, err = eng.Commit("李娜", schedule.Proposal{
		domain.Tuesday: {PickUp: true},
	}, false)
	require.NoError(t, err)

	own, err := eng.OwnClaims("张伟")
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "张伟", own[0].Participant)
	assert.Equal(t, domain.Monday, own[0].Day)

	none, err := eng.OwnClaims("王芳")
	require.NoError(t, err)
	assert.Empty(t, none)
}
