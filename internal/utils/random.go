package utils

import (
	"math/rand"
	"strings"

	"github.com/mozillazg/go-pinyin"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/schedule"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

// 展示用的配色，前端用来区分不同家长
var displayColors = []string{
	"#4f46e5", "#059669", "#d97706", "#dc2626", "#7c3aed",
	"#0891b2", "#be185d", "#65a30d",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

// GenerateTagFromName 根据中文姓名生成拼音短标签，
// 比如 "张伟" -> "zhangwei"
func GenerateTagFromName(name string) string {
	pinyinArray := pinyin.LazyConvert(name, nil)
	return strings.Join(pinyinArray, "")
}

func GenerateRandomColor() string {
	return displayColors[rand.Intn(len(displayColors))]
}

// GenerateRandomParticipant 生成一个随机家长，邮箱根据拼音标签拼出来。
// 随机生成的姓名很容易重复，邮箱加一段随机后缀避开唯一约束
func GenerateRandomParticipant(emailDomainName string) *domain.Participant {
	name := GenerateRandomChineseName()
	tag := GenerateTagFromName(name)

	return &domain.Participant{
		Name:  name,
		Tag:   tag,
		Color: GenerateRandomColor(),
		Email: tag + GenerateRandomID(0, 4) + "@" + emailDomainName,
	}
}

// GenerateRandomProposal 随机挑若干个工作日生成一份认领提案，
// 保证每天至少勾选一个时段
func GenerateRandomProposal() schedule.Proposal {
	// Fisher-Yates 洗牌后取前 n 天
	days := make([]int32, len(domain.Weekdays))
	copy(days, domain.Weekdays)
	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}
	n := rand.Intn(len(days)) + 1

	proposal := make(schedule.Proposal, n)
	for _, day := range days[:n] {
		selection := schedule.DaySelection{
			DropOff: rand.Intn(2) == 0,
			PickUp:  rand.Intn(2) == 0,
		}
		if !selection.DropOff && !selection.PickUp {
			selection.DropOff = true
		}
		proposal[day] = selection
	}

	return proposal
}

var digits = "0123456789"
var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// GenerateRandomID 生成随机的字母数字串，种子数据的名字后缀用
func GenerateRandomID(letterLength int, digitLength int) string {
	randomID := make([]rune, letterLength+digitLength)
	for i := range randomID {
		if i < letterLength {
			randomID[i] = letters[rand.Intn(len(letters))]
		} else {
			randomID[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(randomID)
}

// GenerateRandomHolidayDay 随机挑一个工作日作为假日
func GenerateRandomHolidayDay() int32 {
	return domain.Weekdays[rand.Intn(len(domain.Weekdays))]
}
