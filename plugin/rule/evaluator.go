package rule

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dop251/goja"
	"github.com/viant/bpmflow/model"
	"github.com/viant/bpmflow/model/item"
	"github.com/viant/toolbox"
	"go.uber.org/zap"
)

const (
	eventBinding    = "event"
	activityBinding = "activity"
	workItemBinding = "workitem"

	isValidVar      = "isValid"
	errorCodeVar    = "errorCode"
	errorMessageVar = "errorMessage"
	followUpVar     = "followUp"
	nextTaskVar     = "nextTask"

	scriptName = "businessrule"
)

var errTimeout = errors.New("script timeout")

// Result is the outcome of a rule evaluation. ErrorParams is nil when the
// script defined no errorMessage.
type Result struct {
	Valid       bool
	ErrorCode   string
	ErrorParams []string
	FollowUp    *int
	NextTask    *int
}

// Evaluator runs event business rules.
type Evaluator struct {
	timeout time.Duration
	logger  *zap.Logger
}

// Evaluate runs the business rule of event against workItem. An event without
// a rule evaluates as valid with no overrides.
func (e *Evaluator) Evaluate(ctx context.Context, workItem *model.WorkItem, event *model.Event) (*Result, error) {
	script := event.BusinessRule()
	if strings.TrimSpace(script) == "" {
		return &Result{Valid: true}, nil
	}
	vm, err := e.run(ctx, script, workItem, event)
	if err != nil {
		return nil, err
	}
	ret := &Result{Valid: true}
	if value := vm.Get(isValidVar); defined(value) {
		ret.Valid = value.ToBoolean()
	}
	if !ret.Valid {
		ret.ErrorCode = ValidationErrorCode
		if value := vm.Get(errorCodeVar); defined(value) {
			ret.ErrorCode = value.String()
		}
		ret.ErrorParams = errorParams(vm.Get(errorMessageVar))
	}
	if ret.FollowUp, err = castInt(followUpVar, vm.Get(followUpVar)); err != nil {
		return nil, err
	}
	if ret.NextTask, err = castInt(nextTaskVar, vm.Get(nextTaskVar)); err != nil {
		return nil, err
	}
	e.logger.Debug("rule evaluated",
		zap.Int("taskID", event.TaskID()),
		zap.Int("eventID", event.ID()),
		zap.Bool("valid", ret.Valid))
	return ret, nil
}

// Variables runs script and exports the named variables; undefined variables
// are omitted.
func (e *Evaluator) Variables(ctx context.Context, script string, workItem *model.WorkItem, event *model.Event, names ...string) (map[string]interface{}, error) {
	ret := make(map[string]interface{}, len(names))
	if strings.TrimSpace(script) == "" {
		return ret, nil
	}
	vm, err := e.run(ctx, script, workItem, event)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if value := vm.Get(name); defined(value) {
			ret[name] = value.Export()
		}
	}
	return ret, nil
}

func (e *Evaluator) run(ctx context.Context, script string, workItem *model.WorkItem, event *model.Event) (*goja.Runtime, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	program, err := goja.Compile(scriptName, script, false)
	if err != nil {
		return nil, newScriptError(err)
	}
	vm := goja.New()
	if err = bind(vm, workItem, event); err != nil {
		return nil, err
	}
	if e.timeout > 0 {
		timer := time.AfterFunc(e.timeout, func() { vm.Interrupt(errTimeout) })
		defer timer.Stop()
	}
	stop := context.AfterFunc(ctx, func() { vm.Interrupt(ctx.Err()) })
	defer stop()
	if _, err = vm.RunProgram(program); err != nil {
		return nil, newScriptError(err)
	}
	return vm, nil
}

func bind(vm *goja.Runtime, workItem *model.WorkItem, event *model.Event) error {
	var sources []*item.Collection
	if workItem != nil {
		sources = append(sources, workItem.Collection)
	}
	sources = append(sources, event.Collection)
	for _, source := range sources {
		for _, name := range source.Names() {
			if !isIdentifier(name) {
				continue
			}
			if err := vm.Set(name, source.Get(name)); err != nil {
				return err
			}
		}
	}
	eventObject := (&liveView{collection: event.Collection}).object(vm)
	if err := vm.Set(eventBinding, eventObject); err != nil {
		return err
	}
	if err := vm.Set(activityBinding, eventObject); err != nil {
		return err
	}
	snapshot := item.New()
	if workItem != nil {
		snapshot = workItem.Collection
	}
	return vm.Set(workItemBinding, newSnapshotView(snapshot).object(vm))
}

func errorParams(value goja.Value) []string {
	if !defined(value) {
		return nil
	}
	switch actual := value.Export().(type) {
	case []interface{}:
		ret := make([]string, 0, len(actual))
		for _, param := range actual {
			if param == nil {
				continue
			}
			ret = append(ret, toolbox.AsString(param))
		}
		return ret
	case []string:
		return append([]string{}, actual...)
	}
	return []string{value.String()}
}

func defined(value goja.Value) bool {
	return value != nil && !goja.IsUndefined(value) && !goja.IsNull(value)
}

// New creates an evaluator.
func New(options ...Option) *Evaluator {
	ret := &Evaluator{logger: zap.NewNop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
