package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/engine"
)

// 只覆盖 handler 层的错误映射，存储用内存实现代替
type claimsStore struct {
	claims   []*domain.SlotClaim
	batchErr error
}

func (s *claimsStore) ListClaims() ([]*domain.SlotClaim, error)     { return s.claims, nil }
func (s *claimsStore) ListHolidays() ([]*domain.HolidayMark, error) { return nil, nil }
func (s *claimsStore) BatchApply(muts []engine.Mutation) error      { return s.batchErr }
func (s *claimsStore) DeleteClaim(id int64) error                   { return nil }

func newClaimsRequest(p *domain.Participant) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/participants/"+p.Name+"/claims", nil)
	return req.WithContext(context.WithValue(req.Context(), ParticipantCtx, p))
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

// 批量删除进行到一半时别人恰好删掉了其中一条，
// 应该提示重试而不是返回服务器内部错误
func TestClearOwnClaims_ConcurrentDeleteAsksForRetry(t *testing.T) {
	store := &claimsStore{
		claims: []*domain.SlotClaim{
			{ID: 1, Participant: "张伟", Day: domain.Monday, DropOff: true},
		},
		batchErr: domain.ErrNotFound,
	}
	h := &Handler{engine: engine.NewEngine(store)}

	rr := httptest.NewRecorder()
	h.ClearOwnClaims(rr, newClaimsRequest(&domain.Participant{Name: "张伟"}))

	resp := decodeResponse(t, rr)
	assert.False(t, resp.Success)
	assert.Equal(t, "认领记录已发生变化，请重试", resp.Message)
}

func TestClearOwnClaims_NothingToClear(t *testing.T) {
	h := &Handler{engine: engine.NewEngine(&claimsStore{})}

	rr := httptest.NewRecorder()
	h.ClearOwnClaims(rr, newClaimsRequest(&domain.Participant{Name: "张伟"}))

	resp := decodeResponse(t, rr)
	assert.True(t, resp.Success)
	assert.Equal(t, "没有需要清空的认领记录", resp.Message)
}
