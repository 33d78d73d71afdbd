package schedule

import "sort"

// Evaluate 检查某位家长的认领提案和当前周视图之间的冲突。
// 逐个 (day, slot) 判断：没人认领或者认领人就是提案人本人算干净，
// 认领人是别人算冲突。同一天的两个时段互相独立，一个干净一个冲突
// 时两边都会分别体现在结果里。
//
// 假日不在这里处理：调用方必须保证提案里不包含假日，
// 提案里出现假日属于非法提案，应该在进入这里之前就被拒绝。
// 纯函数，不会失败，也不修改任何存储记录。
func Evaluate(proposer string, proposal Proposal, ws WeekSchedule) *Evaluation {
	eval := &Evaluation{
		Clean:     []CleanSlot{},
		Conflicts: []Conflict{},
	}

	// map 的遍历顺序不固定，先把 day 排好序让结果稳定
	days := make([]int32, 0, len(proposal))
	for day := range proposal {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	for _, day := range days {
		selection := proposal[day]
		if !selection.DropOff && !selection.PickUp {
			continue
		}

		slots := []struct {
			slot      SlotType
			requested bool
		}{
			{SlotDropOff, selection.DropOff},
			{SlotPickUp, selection.PickUp},
		}

		for _, s := range slots {
			if !s.requested {
				continue
			}

			owner := ws.Owner(day, s.slot)
			if owner != "" && owner != proposer {
				eval.Conflicts = append(eval.Conflicts, Conflict{
					Day:   day,
					Slot:  s.slot,
					Owner: owner,
				})
			} else {
				// 重新认领自己已有的时段也算干净，重复提交是安全的
				eval.Clean = append(eval.Clean, CleanSlot{
					Day:  day,
					Slot: s.slot,
				})
			}
		}
	}

	return eval
}
