package client

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Panel 固定的面板集合
type Panel string

const (
	PanelCurriculum Panel = "curriculum"
	PanelResources  Panel = "resources"
	PanelPortfolio  Panel = "portfolio"
	PanelAnalytics  Panel = "analytics"
	PanelMyWork     Panel = "mywork"
)

// PanelState 面板生命周期：unloaded → loading → ready | error
// error 状态可通过 Retry 重新进入 loading
type PanelState int

const (
	StateUnloaded PanelState = iota
	StateLoading
	StateReady
	StateError
)

func (s PanelState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unloaded"
	}
}

// 控制器错误
var (
	ErrSwitchInFlight = errors.New("panel switch already in flight")
	ErrUnknownPanel   = errors.New("unknown panel")
)

const (
	// 单个面板加载的请求超时，超过视为失败
	defaultLoadTimeout = 8 * time.Second
	// 加载永不落定时强制释放切换守卫的兜底上限
	defaultGuardTimeout = 10 * time.Second
)

// LoadFunc 异步面板的数据加载函数
type LoadFunc func(ctx context.Context) error

// PanelController 面板切换状态机
// 同一时刻至多一个加载在途：在途期间的切换请求被拒绝而不是排队。
// 每个面板带一代计数器，被后续加载取代的旧结果落定时直接丢弃
type PanelController struct {
	mu      sync.Mutex
	loaders map[Panel]LoadFunc // 无加载函数的面板为同步面板
	states  map[Panel]PanelState
	loaded  map[Panel]bool
	gen     map[Panel]uint64
	active  Panel

	inFlight     bool
	loadTimeout  time.Duration
	guardTimeout time.Duration

	// 测试钩子：每次加载落定（含被丢弃的旧结果）后调用
	onSettle func(Panel)
}

// NewPanelController loaders 只需包含异步面板；curriculum 与 resources
// 的数据随大纲常驻，同步切换
func NewPanelController(loaders map[Panel]LoadFunc) *PanelController {
	c := &PanelController{
		loaders:      make(map[Panel]LoadFunc, len(loaders)),
		states:       make(map[Panel]PanelState),
		loaded:       make(map[Panel]bool),
		gen:          make(map[Panel]uint64),
		active:       PanelCurriculum,
		loadTimeout:  defaultLoadTimeout,
		guardTimeout: defaultGuardTimeout,
	}
	for panel, fn := range loaders {
		c.loaders[panel] = fn
	}
	for _, panel := range []Panel{PanelCurriculum, PanelResources, PanelPortfolio, PanelAnalytics, PanelMyWork} {
		c.states[panel] = StateUnloaded
	}
	c.states[PanelCurriculum] = StateReady
	c.states[PanelResources] = StateReady
	return c
}

// Active 当前面板
func (c *PanelController) Active() Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// State 指定面板的状态
func (c *PanelController) State(panel Panel) PanelState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states[panel]
}

// Switch 切换到指定面板
// 已有加载在途时返回 ErrSwitchInFlight，调用方等待其落定后重试。
// 异步面板首次切换（或出错后重试）触发一次后台加载；加载成功后缓存
// loaded 标记，再次切换不重新拉取
func (c *PanelController) Switch(panel Panel) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, known := c.states[panel]; !known {
		return ErrUnknownPanel
	}
	if c.inFlight {
		return ErrSwitchInFlight
	}

	loader, async := c.loaders[panel]
	if !async || c.loaded[panel] {
		c.active = panel
		if c.states[panel] != StateReady {
			c.states[panel] = StateReady
		}
		return nil
	}

	c.inFlight = true
	c.active = panel
	c.states[panel] = StateLoading
	c.gen[panel]++
	myGen := c.gen[panel]

	// 守卫兜底：加载永不落定时到点强制释放，避免永久锁死切换
	// 同时推进代计数，被放弃的加载之后落定时按代不匹配丢弃
	guard := time.AfterFunc(c.guardTimeout, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen[panel] == myGen {
			c.gen[panel]++
			c.inFlight = false
			c.states[panel] = StateError
		}
	})

	go c.runLoad(panel, myGen, loader, guard)
	return nil
}

// runLoad 后台执行加载并落定结果，无论成败都释放切换守卫
func (c *PanelController) runLoad(panel Panel, myGen uint64, loader LoadFunc, guard *time.Timer) {
	ctx, cancel := context.WithTimeout(context.Background(), c.loadTimeout)
	defer cancel()
	err := loader(ctx)

	c.mu.Lock()
	guard.Stop()
	// 守卫已超时释放或已被新一代加载取代：结果作废
	if c.gen[panel] != myGen {
		c.mu.Unlock()
		c.settle(panel)
		return
	}
	c.inFlight = false
	if err != nil {
		c.states[panel] = StateError
	} else {
		c.states[panel] = StateReady
		c.loaded[panel] = true
	}
	c.mu.Unlock()
	c.settle(panel)
}

func (c *PanelController) settle(panel Panel) {
	if c.onSettle != nil {
		c.onSettle(panel)
	}
}

// Retry 从 error 状态重新发起同一面板的切换
func (c *PanelController) Retry(panel Panel) error {
	return c.Switch(panel)
}

// Invalidate 清除 loaded 缓存，下次切换重新拉取
func (c *PanelController) Invalidate(panel Panel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded[panel] = false
	if c.states[panel] == StateReady {
		c.states[panel] = StateUnloaded
	}
}
