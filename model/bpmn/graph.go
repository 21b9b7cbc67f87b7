package bpmn

import (
	"strconv"
	"strings"

	"github.com/viant/bpmflow/model"
)

type nodeKind int

const (
	kindOther nodeKind = iota
	kindTask
	kindEvent
	kindLinkThrow
	kindLinkCatch
	kindGateway
)

type node struct {
	element *element
	kind    nodeKind
	index   int
	group   string
	id      int // task or event id
	link    string
}

// graph resolves diagram nodes and sequence flows into model tasks and events.
type graph struct {
	root     *element
	nodes    map[string]*node
	order    []string
	outgoing map[string][]string
	catches  map[string]string
	groups   []string
	attached map[model.Key]string
	direct   map[model.Key]bool
	taskByID map[int]string
}

func (g *graph) build() (*model.Model, error) {
	profile, version, err := profileOf(g.root)
	if err != nil {
		return nil, err
	}
	if err = g.index(); err != nil {
		return nil, err
	}
	builder := model.NewBuilder(version, profile)
	for _, group := range g.groups {
		builder.AddGroup(group)
	}
	for _, id := range g.order {
		n := g.nodes[id]
		if n.kind != kindTask {
			continue
		}
		task := model.NewTask(n.id, version)
		n.element.items(task.Collection)
		task.Set(model.NameAttr, n.element.attr("name"))
		task.Set(model.WorkflowGroupAttr, n.group)
		if doc := n.element.child("documentation"); doc != nil {
			task.Set(model.DescriptionAttr, strings.TrimSpace(doc.Text))
		}
		if err = builder.AddTask(task); err != nil {
			return nil, err
		}
	}
	for _, id := range g.order {
		n := g.nodes[id]
		if n.kind != kindTask {
			continue
		}
		for _, targetID := range g.outgoing[id] {
			target, err := g.resolve(targetID, map[string]bool{})
			if err != nil {
				return nil, err
			}
			if target == nil || target.kind != kindEvent {
				continue
			}
			if err = g.attach(builder, n, target, true); err != nil {
				return nil, err
			}
		}
		builder.Reorder(n.id, func(a, b int) bool {
			return g.eventIndex(n.id, a) < g.eventIndex(n.id, b)
		})
	}
	ret := builder.Build()
	for key, direct := range g.direct {
		if !direct {
			ret.Event(key.TaskID, key.EventID, version).Set(model.VisibleAttr, "0")
		}
	}
	return ret, nil
}

func (g *graph) eventIndex(taskID, eventID int) int {
	return g.nodes[g.attached[model.Key{TaskID: taskID, EventID: eventID}]].index
}

// attach instantiates event on task, following chained events.
func (g *graph) attach(builder *model.Builder, task, event *node, direct bool) error {
	key := model.Key{TaskID: task.id, EventID: event.id}
	if elementID, ok := g.attached[key]; ok {
		if elementID != event.element.attr("id") {
			return model.NewInvalidModelError("duplicate event %v.%v", task.id, event.id)
		}
		g.direct[key] = g.direct[key] || direct
		return nil
	}
	g.attached[key] = event.element.attr("id")
	g.direct[key] = direct

	target, err := g.eventTarget(event)
	if err != nil {
		return err
	}
	anEvent := model.NewEvent(task.id, event.id, "")
	event.element.items(anEvent.Collection)
	anEvent.Set(model.NameAttr, event.element.attr("name"))
	if doc := event.element.child("documentation"); doc != nil {
		anEvent.Set(model.DescriptionAttr, strings.TrimSpace(doc.Text))
	}
	switch {
	case target == nil:
		anEvent.SetNextTaskID(task.id)
	case target.kind == kindTask:
		anEvent.SetNextTaskID(target.id)
	case target.kind == kindEvent:
		anEvent.SetFollowUp(target.id)
	}
	if err = builder.AddEvent(anEvent); err != nil {
		return err
	}
	if target != nil && target.kind == kindEvent {
		if err = g.attach(builder, task, target, false); err != nil {
			return err
		}
	}
	return nil
}

// eventTarget returns the single node an event transitions to, or nil.
func (g *graph) eventTarget(event *node) (*node, error) {
	var ret *node
	for _, targetID := range g.outgoing[event.element.attr("id")] {
		target, err := g.resolve(targetID, map[string]bool{})
		if err != nil {
			return nil, err
		}
		if target == nil {
			continue
		}
		if ret != nil && ret != target {
			return nil, model.NewInvalidModelError("event %v has more than one outgoing transition", event.id)
		}
		ret = target
	}
	return ret, nil
}

// resolve follows link throw/catch pairs to the next task or event.
func (g *graph) resolve(id string, seen map[string]bool) (*node, error) {
	if seen[id] {
		return nil, model.NewInvalidModelError("link cycle at %v", id)
	}
	seen[id] = true
	n, ok := g.nodes[id]
	if !ok {
		return nil, model.NewInvalidModelError("unresolved flow reference %q", id)
	}
	switch n.kind {
	case kindTask, kindEvent:
		return n, nil
	case kindGateway:
		return nil, model.NewInvalidModelError("unsupported gateway %v", id)
	case kindLinkThrow:
		catchID, ok := g.catches[n.link]
		if !ok {
			return nil, model.NewInvalidModelError("unresolved link %q", n.link)
		}
		return g.resolve(catchID, seen)
	case kindLinkCatch:
		var ret *node
		for _, targetID := range g.outgoing[id] {
			target, err := g.resolve(targetID, seen)
			if err != nil {
				return nil, err
			}
			if target == nil {
				continue
			}
			if ret != nil && ret != target {
				return nil, model.NewInvalidModelError("link %q has more than one outgoing transition", n.link)
			}
			ret = target
		}
		return ret, nil
	}
	return nil, nil
}

// index registers nodes, flows, lanes and groups of every process.
func (g *graph) index() error {
	participants := map[string]string{}
	for _, collaboration := range g.root.children("collaboration") {
		for _, participant := range collaboration.children("participant") {
			if ref := participant.attr("processRef"); ref != "" {
				participants[ref] = participant.attr("name")
			}
		}
	}
	processes := map[string]bool{}
	for _, process := range g.root.children("process") {
		processes[process.attr("id")] = true
	}
	for ref := range participants {
		if !processes[ref] {
			return model.NewInvalidModelError("participant references unknown process %q", ref)
		}
	}
	var flows []*element
	for _, process := range g.root.children("process") {
		group := participants[process.attr("id")]
		if group == "" {
			group = process.attr("name")
		}
		for _, child := range process.Children {
			if child.XMLName.Local == "sequenceFlow" {
				flows = append(flows, child)
				continue
			}
			if err := g.add(child, group); err != nil {
				return err
			}
		}
		if err := g.lanes(process); err != nil {
			return err
		}
	}
	for _, flow := range flows {
		source, target := flow.attr("sourceRef"), flow.attr("targetRef")
		if _, ok := g.nodes[source]; !ok {
			return model.NewInvalidModelError("flow %v: unresolved source %q", flow.attr("id"), source)
		}
		if _, ok := g.nodes[target]; !ok {
			return model.NewInvalidModelError("flow %v: unresolved target %q", flow.attr("id"), target)
		}
		g.outgoing[source] = append(g.outgoing[source], target)
	}
	for _, id := range g.order {
		if n := g.nodes[id]; n.kind == kindTask {
			g.addGroup(n.group)
		}
	}
	return nil
}

func (g *graph) add(child *element, group string) error {
	id := child.attr("id")
	if id == "" {
		return nil
	}
	if _, ok := g.nodes[id]; ok {
		return model.NewInvalidModelError("duplicate element id %q", id)
	}
	n := &node{element: child, index: len(g.order), group: group}
	local := child.XMLName.Local
	switch {
	case taskKinds[local]:
		n.kind = kindTask
		taskID, err := numericAttr(child, "processid")
		if err != nil {
			return err
		}
		if other, ok := g.taskByID[taskID]; ok {
			return model.NewInvalidModelError("duplicate task %v (%v, %v)", taskID, other, id)
		}
		g.taskByID[taskID] = id
		n.id = taskID
	case eventKinds[local]:
		if link := child.child("linkEventDefinition"); link != nil {
			n.link = link.attr("name")
			if n.link == "" {
				n.link = child.attr("name")
			}
			if local == "intermediateThrowEvent" {
				n.kind = kindLinkThrow
				break
			}
			n.kind = kindLinkCatch
			if _, ok := g.catches[n.link]; ok {
				return model.NewInvalidModelError("duplicate link catch %q", n.link)
			}
			g.catches[n.link] = id
			break
		}
		n.kind = kindEvent
		eventID, err := numericAttr(child, "activityid")
		if err != nil {
			return err
		}
		n.id = eventID
	case gatewayKinds[local]:
		n.kind = kindGateway
	}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return nil
}

func (g *graph) lanes(process *element) error {
	for _, laneSet := range process.children("laneSet") {
		for _, lane := range laneSet.children("lane") {
			name := lane.attr("name")
			for _, ref := range lane.children("flowNodeRef") {
				id := strings.TrimSpace(ref.Text)
				n, ok := g.nodes[id]
				if !ok {
					return model.NewInvalidModelError("lane %q references unknown element %q", name, id)
				}
				if name != "" {
					n.group = name
				}
			}
		}
	}
	return nil
}

func (g *graph) addGroup(name string) {
	if name == "" {
		return
	}
	for _, candidate := range g.groups {
		if candidate == name {
			return
		}
	}
	g.groups = append(g.groups, name)
}

func numericAttr(e *element, name string) (int, error) {
	value := strings.TrimSpace(e.attr(name))
	if value == "" {
		return 0, model.NewInvalidModelError("%v %q: missing %v", e.XMLName.Local, e.attr("id"), name)
	}
	ret, err := strconv.Atoi(value)
	if err != nil {
		return 0, model.NewInvalidModelError("%v %q: invalid %v %q", e.XMLName.Local, e.attr("id"), name, value)
	}
	return ret, nil
}

func newGraph(root *element) *graph {
	return &graph{
		root:     root,
		nodes:    map[string]*node{},
		outgoing: map[string][]string{},
		catches:  map[string]string{},
		attached: map[model.Key]string{},
		direct:   map[model.Key]bool{},
		taskByID: map[int]string{},
	}
}
