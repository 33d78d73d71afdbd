package seed

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/repository"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/utils"
)

// 固定的参与者名单：名单在部署时就定下来，系统里没有注册功能
var DefaultRoster = []struct {
	Name  string
	Color string
}{
	{"张伟", "#4f46e5"},
	{"李娜", "#059669"},
	{"王芳", "#d97706"},
	{"刘洋", "#dc2626"},
	{"陈静", "#7c3aed"},
}

// SeedRoster 把固定名单写入数据库，已经存在的名字直接跳过
func SeedRoster(r *repository.Repository, emailDomainName string) {
	cnt := 0
	for _, entry := range DefaultRoster {
		tag := utils.GenerateTagFromName(entry.Name)
		p := &domain.Participant{
			Name:  entry.Name,
			Tag:   tag,
			Color: entry.Color,
			Email: tag + "@" + emailDomainName,
		}

		if err := r.CreateParticipant(p); err != nil {
			var pgErr *pgconn.PgError
			switch {
			case errors.As(err, &pgErr) && pgErr.ConstraintName == "participants_name_key":
				// 名单里已经有这个名字了，不处理
			default:
				slog.Error("无法插入参与者", "name", entry.Name, "error", err)
			}
			continue
		}

		cnt++
	}

	slog.Info("插入参与者名单成功", "count", cnt)
}
