package engine

import (
	"time"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"
)

// fakeStore 是测试用的内存存储，支持注入故障。
// BatchApply 和真实实现一样是全有或全无的
type fakeStore struct {
	claims   []*domain.SlotClaim
	holidays []*domain.HolidayMark
	nextID   int64

	listClaimsErr   error
	listHolidaysErr error
	batchErr        error

	batchCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1}
}

func (s *fakeStore) ListClaims() ([]*domain.SlotClaim, error) {
	if s.listClaimsErr != nil {
		return nil, s.listClaimsErr
	}
	claims := make([]*domain.SlotClaim, len(s.claims))
	copy(claims, s.claims)
	return claims, nil
}

func (s *fakeStore) ListHolidays() ([]*domain.HolidayMark, error) {
	if s.listHolidaysErr != nil {
		return nil, s.listHolidaysErr
	}
	holidays := make([]*domain.HolidayMark, len(s.holidays))
	copy(holidays, s.holidays)
	return holidays, nil
}

func (s *fakeStore) BatchApply(muts []Mutation) error {
	s.batchCalls++
	if s.batchErr != nil {
		return s.batchErr
	}

	// 先在副本上执行整批操作，全部成功才替换原状态
	claims := make([]*domain.SlotClaim, len(s.claims))
	copy(claims, s.claims)
	holidays := make([]*domain.HolidayMark, len(s.holidays))
	copy(holidays, s.holidays)

	for _, mut := range muts {
		switch mut.Op {
		case OpInsertClaim:
			mut.Claim.ID = s.nextID
			mut.Claim.CreatedAt = time.Now()
			s.nextID++
			claims = append(claims, mut.Claim)
		case OpDeleteClaim:
			idx := -1
			for i, claim := range claims {
				if claim.ID == mut.ID {
					idx = i
					break
				}
			}
			if idx < 0 {
				return domain.ErrNotFound
			}
			claims = append(claims[:idx], claims[idx+1:]...)
		case OpInsertHoliday:
			mut.Holiday.ID = s.nextID
			mut.Holiday.CreatedAt = time.Now()
			s.nextID++
			holidays = append(holidays, mut.Holiday)
		case OpDeleteHoliday:
			idx := -1
			for i, holiday := range holidays {
				if holiday.ID == mut.ID {
					idx = i
					break
				}
			}
			if idx < 0 {
				return domain.ErrNotFound
			}
			holidays = append(holidays[:idx], holidays[idx+1:]...)
		}
	}

	s.claims = claims
	s.holidays = holidays
	return nil
}

func (s *fakeStore) DeleteClaim(id int64) error {
	for i, claim := range s.claims {
		if claim.ID == id {
			s.claims = append(s.claims[:i], s.claims[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
