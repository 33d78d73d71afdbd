package live

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/config"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/engine"
)

// ChangeChannel 是各个 api 实例之间同步变更通知的 redis 频道
const ChangeChannel = "carpool:changed"

// Broadcaster 负责多人实时同步：写入方在每次成功变更后调用 Notify，
// 所有实例通过 redis 订阅收到通知，重新读取完整状态并投影，
// 再把快照推送给本实例上的所有订阅者（SSE 连接）。
// 推送的始终是完整快照而不是增量，订阅者不需要自己做合并
type Broadcaster struct {
	cfg    *config.Config
	engine *engine.Engine
	rdb    *redis.Client

	mu     sync.Mutex
	nextID int64
	subs   map[int64]chan *engine.Snapshot
}

func NewBroadcaster(cfg *config.Config, eng *engine.Engine, rdb *redis.Client) *Broadcaster {
	return &Broadcaster{
		cfg:    cfg,
		engine: eng,
		rdb:    rdb,
		subs:   make(map[int64]chan *engine.Snapshot),
	}
}

// Notify 向所有实例广播一次变更。变更本身已经落库，
// 通知失败只会让订阅者晚一步看到新状态，由调用方决定是否记日志
func (b *Broadcaster) Notify(reason string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(b.cfg.Redis.OperationTimeout)*time.Second)
	defer cancel()

	return b.rdb.Publish(ctx, ChangeChannel, reason).Err()
}

// Run 订阅变更频道并持续向订阅者推送最新快照，直到 ctx 被取消。
// 应该在独立的 goroutine 里运行
func (b *Broadcaster) Run(ctx context.Context) error {
	pubsub := b.rdb.Subscribe(ctx, ChangeChannel)
	defer pubsub.Close()

	// 启动时先推一次当前状态，避免订阅者一直等到第一次变更
	if err := b.refresh(); err != nil {
		slog.Warn("无法读取初始快照", "error", err)
	}

	msgs := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := b.refresh(); err != nil {
				slog.Warn("收到变更通知但无法刷新快照", "reason", msg.Payload, "error", err)
			}
		}
	}
}

// Subscribe 注册一个新的订阅者，立刻收到一份当前快照。
// 返回的取消函数必须在订阅者退出时调用
func (b *Broadcaster) Subscribe() (<-chan *engine.Snapshot, func()) {
	ch := make(chan *engine.Snapshot, 1)

	// 必须先把初始快照放进缓冲再注册：注册之后 fanout 随时可能
	// 占掉这个缓冲，那时再做阻塞发送会永久挂起
	if snapshot, err := b.engine.ReadSnapshot(); err == nil {
		ch <- snapshot
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}

	return ch, cancel
}

func (b *Broadcaster) refresh() error {
	snapshot, err := b.engine.ReadSnapshot()
	if err != nil {
		return err
	}

	b.fanout(snapshot)
	return nil
}

func (b *Broadcaster) fanout(snapshot *engine.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- snapshot:
		default:
			// 订阅者处理得慢就丢掉它还没取走的旧快照，只保留最新的
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}
