package utils

import (
	"errors"
	"fmt"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/schedule"
)

// ValidateProposal 检查提案本身的格式是否合法：
// 不能为空，每一天都必须是工作日，且至少勾选一个时段
func ValidateProposal(proposal schedule.Proposal) error {
	if len(proposal) == 0 {
		return errors.New("提案不能为空")
	}

	selected := 0
	for day, selection := range proposal {
		if !domain.IsWeekday(day) {
			return fmt.Errorf("%d 不是有效的工作日", day)
		}
		if !selection.DropOff && !selection.PickUp {
			// 一个时段都没勾选的认领没有意义，不允许入库
			return fmt.Errorf("%s没有勾选任何时段", domain.WeekdayName(day))
		}
		selected++
	}

	if selected == 0 {
		return errors.New("提案不能为空")
	}

	return nil
}

// ValidateProposalAgainstHolidays 检查提案是否涉及假日。
// 假日当天不可认领，涉及假日的提案必须在进入冲突解析之前就被拒绝
func ValidateProposalAgainstHolidays(proposal schedule.Proposal, holidays []*domain.HolidayMark) error {
	for _, holiday := range holidays {
		if _, exists := proposal[holiday.Day]; exists {
			return fmt.Errorf("%s是假日，不能认领", domain.WeekdayName(holiday.Day))
		}
	}
	return nil
}

// SlotsLabel 把一条认领记录中勾选的时段拼成展示用的文案
func SlotsLabel(claim *domain.SlotClaim) string {
	switch {
	case claim.DropOff && claim.PickUp:
		return "送 + 接"
	case claim.DropOff:
		return "送"
	case claim.PickUp:
		return "接"
	default:
		return ""
	}
}
