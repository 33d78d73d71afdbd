package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/config"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/engine"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/repository"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/seed"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int

	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入参与者名单, 2: 为每位参与者随机认领时段, 3: 随机标记一个假日, 4: 清空本周数据, 5: 插入随机参与者)")
	flag.IntVar(&n, "n", 3, "操作 5 要插入的参与者数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository 和调度引擎
	repo := repository.NewRepository(cfg, dbpool)
	eng := engine.NewEngine(repo)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		seed.SeedRoster(repo, cfg.Email.UserDomain)
	case 2:
		participants, err := repo.GetAllParticipants()
		if err != nil {
			slog.Error("无法获取参与者名单", slog.String("error", err.Error()))
			return
		}
		if len(participants) == 0 {
			slog.Error("参与者名单为空，请先执行 -op 1")
			return
		}

		cnt := 0
		for _, p := range participants {
			proposal := utils.GenerateRandomProposal()
			// 随机提案之间难免互相撞车，种子数据直接允许顶替
			if _, err := eng.Commit(p.Name, proposal, true); err != nil {
				if errors.Is(err, engine.ErrInvalidProposal) {
					// 提案撞上了已有的假日，跳过这个参与者
					continue
				}
				slog.Error("无法插入认领记录", "participant", p.Name, "error", err)
				continue
			}
			cnt++
		}

		slog.Info("插入随机认领成功", slog.Int("count", cnt))
	case 3:
		day := utils.GenerateRandomHolidayDay()
		result, err := eng.ToggleHoliday(day)
		if err != nil {
			slog.Error("无法切换假日标记", "day", day, "error", err)
			return
		}
		slog.Info("切换假日标记成功", "day", result.Day, "marked", result.Marked)
	case 4:
		snapshot, err := eng.ReadSnapshot()
		if err != nil {
			slog.Error("无法读取当前状态", slog.String("error", err.Error()))
			return
		}

		ids := make([]int64, len(snapshot.Claims))
		for i, claim := range snapshot.Claims {
			ids[i] = claim.ID
		}
		if err := eng.RemoveAll(ids); err != nil {
			slog.Error("无法清空认领记录", slog.String("error", err.Error()))
			return
		}

		for _, holiday := range snapshot.Holidays {
			if _, err := eng.ToggleHoliday(holiday.Day); err != nil {
				slog.Error("无法取消假日标记", "day", holiday.Day, "error", err)
			}
		}

		slog.Info("清空本周数据成功", slog.Int("claims", len(ids)), slog.Int("holidays", len(snapshot.Holidays)))
	case 5:
		cnt := 0
		for i := 0; i < n; i++ {
			p := utils.GenerateRandomParticipant(cfg.Email.UserDomain)
			if err := repo.CreateParticipant(p); err != nil {
				// 随机姓名撞了唯一约束就跳过，不值得重试
				slog.Error("无法插入随机参与者", "name", p.Name, "error", err)
				continue
			}
			cnt++
		}
		slog.Info("插入随机参与者成功", slog.Int("count", cnt))
	default:
		slog.Error("指定的操作非法")
	}
}
