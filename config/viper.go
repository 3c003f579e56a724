package config

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ceyewan/flakeid/xerrors"
)

// loader 实现 Loader 接口
type loader struct {
	v       *viper.Viper
	cfg     *Config
	mu      sync.RWMutex
	watches map[string][]chan Event
	old     map[string]any
}

// newLoader 创建一个新的配置加载器（内部使用）
func newLoader(cfg *Config) *loader {
	return &loader{
		v:       viper.New(),
		cfg:     cfg,
		watches: make(map[string][]chan Event),
		old:     make(map[string]any),
	}
}

// Load 初始化并从所有来源加载配置
func (l *loader) Load(ctx context.Context) error {
	l.v.SetConfigName(l.cfg.Name)
	l.v.SetConfigType(l.cfg.FileType)
	for _, path := range l.cfg.Paths {
		l.v.AddConfigPath(path)
	}

	// 环境变量（最高优先级）
	l.v.SetEnvPrefix(l.cfg.EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	// .env 文件（次高优先级），缺失不是错误
	l.loadDotEnv()

	// 配置文件（最低优先级），缺失不是错误
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return xerrors.Wrapf(err, "failed to read config file %s", l.cfg.Name)
		}
	}

	// 保存当前值作为变更基线
	l.captureCurrentValues()

	// 启动文件监听
	l.v.OnConfigChange(func(e fsnotify.Event) {
		l.loadDotEnv()
		l.notifyWatches()
	})
	l.v.WatchConfig()

	return nil
}

// loadDotEnv 尝试从搜索路径加载 .env 文件（内部使用）
func (l *loader) loadDotEnv() {
	_ = godotenv.Load()
	for _, path := range l.cfg.Paths {
		_ = godotenv.Load(filepath.Join(path, ".env"))
	}
}

// Get 获取原始配置值
func (l *loader) Get(key string) any {
	return l.v.Get(key)
}

// Unmarshal 将整个配置反序列化到结构体
func (l *loader) Unmarshal(v any) error {
	if err := l.v.Unmarshal(v); err != nil {
		return xerrors.Wrap(err, "failed to unmarshal config")
	}
	return nil
}

// UnmarshalKey 将指定 Key 的配置反序列化到结构体
func (l *loader) UnmarshalKey(key string, v any) error {
	if err := l.v.UnmarshalKey(key, v); err != nil {
		return xerrors.Wrapf(err, "failed to unmarshal key %s", key)
	}
	return nil
}

// Watch 监听配置变化，通过 context 取消监听
func (l *loader) Watch(ctx context.Context, key string) (<-chan Event, error) {
	ch := make(chan Event, 1)

	l.mu.Lock()
	l.watches[key] = append(l.watches[key], ch)
	l.mu.Unlock()

	go func() {
		<-ctx.Done()
		l.mu.Lock()
		defer l.mu.Unlock()
		chans := l.watches[key]
		for i, c := range chans {
			if c == ch {
				l.watches[key] = append(chans[:i], chans[i+1:]...)
				close(ch)
				break
			}
		}
	}()

	return ch, nil
}

// captureCurrentValues 记录被监听 key 的当前值（内部使用）
func (l *loader) captureCurrentValues() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, key := range l.v.AllKeys() {
		l.old[key] = l.v.Get(key)
	}
}

// notifyWatches 在配置文件变更后向受影响的监听者发送事件（内部使用）
func (l *loader) notifyWatches() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, chans := range l.watches {
		newVal := l.v.Get(key)
		oldVal := l.old[key]
		if reflect.DeepEqual(newVal, oldVal) {
			continue
		}
		l.old[key] = newVal
		ev := Event{Key: key, Value: newVal, OldValue: oldVal, Timestamp: now}
		for _, ch := range chans {
			select {
			case ch <- ev:
			default: // 监听者未及时消费，丢弃本次事件
			}
		}
	}

	// 刷新未被监听 key 的基线
	for _, key := range l.v.AllKeys() {
		if _, watched := l.watches[key]; !watched {
			l.old[key] = l.v.Get(key)
		}
	}
}
