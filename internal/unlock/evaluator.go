// internal/unlock/evaluator.go
package unlock

import (
	"fmt"

	"go_flight_academy/internal/content"
	"go_flight_academy/internal/model"

	"github.com/google/uuid"
)

const DefaultScrollThreshold = 95

// IndeterminatePolicy は前提記事が解決できない場合の扱いです。
type IndeterminatePolicy string

const (
	// FailOpen は判定不能な記事を解放扱いにします (デフォルト)
	FailOpen IndeterminatePolicy = "open"
	// FailClosed は判定不能な記事をロック扱いにします
	FailClosed IndeterminatePolicy = "closed"
)

// ロック理由 (固定文言)
const (
	ReasonLoginRequired      = "Please log in to unlock this lesson. Only the first lesson of a series is available without an account."
	ReasonMissingPrevious    = "This lesson is locked because its prerequisite could not be found."
	ReasonPreviousIncomplete = "Complete the previous lesson in this series to unlock this lesson."
	reasonCompleteTitledFmt  = "Complete %q to unlock this lesson."
)

type Cause string

const (
	CauseNone               Cause = ""
	CauseAnonymous          Cause = "anonymous"
	CauseUnresolved         Cause = "unresolved"
	CausePreviousIncomplete Cause = "previous_incomplete"
)

type Options struct {
	// ScrollThreshold 以上スクロールした記事は完了扱い。0 以下なら completed フラグのみで判定
	ScrollThreshold     int
	IndeterminatePolicy IndeterminatePolicy
}

func DefaultOptions() Options {
	return Options{
		ScrollThreshold:     DefaultScrollThreshold,
		IndeterminatePolicy: FailOpen,
	}
}

// Catalog は評価に必要なインデックスの読み取り操作です。*content.Index が満たします。
type Catalog interface {
	FindBySlug(slug string) (*content.Item, bool)
	SeriesItems(name string) []*content.Item
}

// Viewer は評価対象のユーザーです。UserID が uuid.Nil なら未ログイン。
type Viewer struct {
	UserID   uuid.UUID
	Progress model.ProgressSnapshot
}

func (v Viewer) Anonymous() bool { return v.UserID == uuid.Nil }

// Decision は1記事分の判定結果です。保存されず、評価のたびに計算し直されます。
type Decision struct {
	State    model.UnlockState
	Cause    Cause
	Reason   string
	Previous *content.Item
}

// Evaluator はシリーズ記事の順次解放を判定します。
// 入力 (インデックスと進捗スナップショット) を読むだけの純粋な計算で、I/O も状態の更新も行いません。
// ロックは UX 上の誘導であり、アクセス制御ではありません。
type Evaluator struct {
	catalog Catalog
	viewer  Viewer
	opts    Options
}

func NewEvaluator(catalog Catalog, viewer Viewer, opts Options) *Evaluator {
	if opts.IndeterminatePolicy == "" {
		opts.IndeterminatePolicy = FailOpen
	}
	if viewer.Progress == nil {
		viewer.Progress = model.ProgressSnapshot{}
	}
	return &Evaluator{catalog: catalog, viewer: viewer, opts: opts}
}

// Evaluate は記事の解放状態を三値で返します。
func (e *Evaluator) Evaluate(slug string) Decision {
	item, ok := e.catalog.FindBySlug(slug)
	if !ok {
		return indeterminate()
	}
	if item.Series() == "" {
		return unlocked(nil)
	}

	members := e.catalog.SeriesItems(item.Series())
	pos := positionOf(members, slug)
	switch {
	case pos < 0:
		return indeterminate()
	case pos == 0:
		return unlocked(nil)
	}

	if e.viewer.Anonymous() {
		return Decision{State: model.UnlockStateLocked, Cause: CauseAnonymous, Reason: ReasonLoginRequired}
	}

	prev, ok := e.catalog.FindBySlug(members[pos-1].ID())
	if !ok {
		return indeterminate()
	}
	if e.isCompleted(prev.ID()) {
		return unlocked(prev)
	}

	reason := ReasonPreviousIncomplete
	if title := prev.Title(); title != "" {
		reason = fmt.Sprintf(reasonCompleteTitledFmt, title)
	}
	return Decision{State: model.UnlockStateLocked, Cause: CausePreviousIncomplete, Reason: reason, Previous: prev}
}

// IsUnlocked は判定不能な場合に IndeterminatePolicy を適用した結果を返します。
func (e *Evaluator) IsUnlocked(slug string) bool {
	return e.resolve(e.Evaluate(slug))
}

// LockedReason はロックされていればその理由と true を返します。
func (e *Evaluator) LockedReason(slug string) (string, bool) {
	d := e.Evaluate(slug)
	if e.resolve(d) {
		return "", false
	}
	return d.Reason, true
}

// FirstItemInSeries はシリーズ先頭の記事の slug を返します。
func (e *Evaluator) FirstItemInSeries(name string) (string, bool) {
	members := e.catalog.SeriesItems(name)
	if len(members) == 0 {
		return "", false
	}
	return members[0].ID(), true
}

// PreviousItemInSeries は直前の記事の slug を返します。先頭やシリーズ外の記事なら false。
func (e *Evaluator) PreviousItemInSeries(slug string) (string, bool) {
	item, ok := e.catalog.FindBySlug(slug)
	if !ok || item.Series() == "" {
		return "", false
	}
	members := e.catalog.SeriesItems(item.Series())
	pos := positionOf(members, slug)
	if pos <= 0 {
		return "", false
	}
	return members[pos-1].ID(), true
}

// SeriesEntry はシリーズ内の1記事分の状態
type SeriesEntry struct {
	Item      *content.Item
	Decision  Decision
	Unlocked  bool
	Completed bool
}

// SeriesProgress はシリーズ全体の解放状態を order 順に返します。
func (e *Evaluator) SeriesProgress(name string) []SeriesEntry {
	members := e.catalog.SeriesItems(name)
	out := make([]SeriesEntry, 0, len(members))
	for _, it := range members {
		d := e.Evaluate(it.ID())
		out = append(out, SeriesEntry{
			Item:      it,
			Decision:  d,
			Unlocked:  e.resolve(d),
			Completed: e.isCompleted(it.ID()),
		})
	}
	return out
}

// Response は Decision を API レスポンス用に変換します。
func (e *Evaluator) Response(slug string) model.UnlockResponse {
	d := e.Evaluate(slug)
	resp := model.UnlockResponse{
		Unlocked: e.resolve(d),
		State:    d.State,
	}
	if !resp.Unlocked && d.Reason != "" {
		reason := d.Reason
		resp.Reason = &reason
	}
	if prev, ok := e.PreviousItemInSeries(slug); ok {
		resp.PreviousSlug = &prev
	}
	return resp
}

func (e *Evaluator) isCompleted(slug string) bool {
	rec, ok := e.viewer.Progress[slug]
	if !ok {
		return false
	}
	if rec.Completed {
		return true
	}
	return e.opts.ScrollThreshold > 0 && rec.ScrollProgress >= e.opts.ScrollThreshold
}

func (e *Evaluator) resolve(d Decision) bool {
	switch d.State {
	case model.UnlockStateUnlocked:
		return true
	case model.UnlockStateIndeterminate:
		return e.opts.IndeterminatePolicy != FailClosed
	default:
		return false
	}
}

func unlocked(prev *content.Item) Decision {
	return Decision{State: model.UnlockStateUnlocked, Previous: prev}
}

func indeterminate() Decision {
	return Decision{State: model.UnlockStateIndeterminate, Cause: CauseUnresolved, Reason: ReasonMissingPrevious}
}

func positionOf(members []*content.Item, slug string) int {
	for i, it := range members {
		if it.ID() == slug {
			return i
		}
	}
	return -1
}
