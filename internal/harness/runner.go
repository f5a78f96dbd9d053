package harness

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CoroutinePool 是执行场景的协程池，*ants.Pool 满足该接口
type CoroutinePool interface {
	Submit(task func()) error
	Release()
}

type Runner struct {
	cfg    *Config
	pool   CoroutinePool
	runID  string
	logger zerolog.Logger
}

type RunnerOption func(*Runner)

// WithPool 使用外部提供的协程池，Release 时同样会释放它
func WithPool(pool CoroutinePool) RunnerOption {
	return func(r *Runner) {
		r.pool = pool
	}
}

func WithRunID(id string) RunnerOption {
	return func(r *Runner) {
		r.runID = id
	}
}

func NewRunner(cfg *Config, opts ...RunnerOption) (*Runner, error) {
	r := &Runner{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	if r.runID == "" {
		r.runID = newRunID()
	}
	if r.pool == nil {
		pool, err := ants.NewPool(cfg.Workers, ants.WithExpiryDuration(time.Minute))
		if err != nil {
			return nil, errors.Wrap(err, "create pool")
		}
		r.pool = pool
	}
	r.logger = log.With().Str("run_id", r.runID).Str("suite", cfg.Name).Logger()
	return r, nil
}

// 生成没有短横线的 uuidv7
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return strings.ReplaceAll(id.String(), "-", "")
}

func (r *Runner) RunID() string {
	return r.runID
}

func (r *Runner) Release() {
	r.pool.Release()
}

// Run 并发执行被 selectors 选中的场景（按名称或分组匹配，为空时执行全部），
// 结果按配置中的顺序排列。ctx 取消后不再提交新的场景，已提交的场景会执行完毕。
func (r *Runner) Run(ctx context.Context, selectors []string) (*Report, error) {
	selected := r.selectScenarios(selectors)
	if len(selected) == 0 {
		return nil, errors.Errorf("no scenario matches %v", selectors)
	}

	rep := &Report{RunID: r.runID, Name: r.cfg.Name, StartedAt: time.Now()}
	r.logger.Info().Int("scenarios", len(selected)).Msg("开始执行场景")

	results := make([]*Result, len(selected))
	wg := sync.WaitGroup{}
	var runErr error
	for i, sc := range selected {
		if err := ctx.Err(); err != nil {
			runErr = errors.Wrap(err, "run interrupted")
			break
		}
		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			res := r.runScenario(sc)
			results[i] = &res
		})
		if err != nil {
			wg.Done()
			res := r.result(sc, time.Now(), errors.Wrap(err, "submit scenario"))
			results[i] = &res
		}
	}
	wg.Wait()

	for _, res := range results {
		if res != nil {
			rep.add(*res)
		}
	}
	r.logger.Info().Int("passed", rep.Passed).Int("failed", rep.Failed).Msg("场景执行完毕")
	return rep, runErr
}

func (r *Runner) selectScenarios(selectors []string) []*ScenarioConfig {
	var out []*ScenarioConfig
	for i := range r.cfg.Scenarios {
		sc := &r.cfg.Scenarios[i]
		if len(selectors) == 0 {
			out = append(out, sc)
			continue
		}
		for _, s := range selectors {
			if s == sc.Name || (sc.Group != "" && s == sc.Group) {
				out = append(out, sc)
				break
			}
		}
	}
	return out
}

func (r *Runner) runScenario(sc *ScenarioConfig) (res Result) {
	start := time.Now()
	defer func() {
		// 集合内部不变式被破坏时会 panic，记为失败而不是终止整个运行
		if p := recover(); p != nil {
			res = r.result(sc, start, errors.Errorf("panic: %v", p))
		}
	}()

	elems, err := loadElements(r.cfg.DataDir, sc)
	if err == nil {
		err = checks[sc.Check](sc, elems)
	}
	return r.result(sc, start, err)
}

func (r *Runner) result(sc *ScenarioConfig, start time.Time, err error) Result {
	res := Result{
		Name:      sc.Name,
		Group:     sc.Group,
		Kind:      sc.Kind,
		Check:     sc.Check,
		Passed:    err == nil,
		ElapsedUs: time.Since(start).Microseconds(),
	}
	var ev *zerolog.Event
	if err != nil {
		res.Message = err.Error()
		ev = r.logger.Warn().Stack().Err(err)
	} else {
		ev = r.logger.Info()
	}
	ev.Str("scenario", sc.Name).
		Str("group", sc.Group).
		Str("kind", sc.Kind).
		Str("check", sc.Check).
		Int64("elapsed_us", res.ElapsedUs).
		Msg(verdict(res.Passed))
	return res
}

func verdict(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}
