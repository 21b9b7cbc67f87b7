package bpmn

import (
	"context"
	"embed"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
	"github.com/viant/bpmflow/model"
)

//go:embed testdata/*
var testFS embed.FS

const version = "1.0.0"

func loadModel(t *testing.T, name string) *model.Model {
	fs := afs.New()
	data, err := fs.DownloadWithURL(context.Background(), "embed:///testdata/"+name, &testFS)
	require.NoError(t, err)
	aModel, err := ParseBytes(data, "UTF-8")
	require.NoError(t, err)
	require.NotNil(t, aModel)
	return aModel
}

func TestParse_Ticket(t *testing.T) {
	aModel := loadModel(t, "ticket.bpmn")

	profile := aModel.Profile()
	assert.Equal(t, "environment.profile", profile.String("txtname"))
	assert.Equal(t, "WorkflowEnvironmentEntity", profile.String("type"))
	assert.Equal(t, version, profile.String("$ModelVersion"))
	assert.Equal(t, version, aModel.Version())
	assert.Equal(t, []string{
		"org.imixs.workflow.plugins.AccessPlugin",
		"org.imixs.workflow.plugins.OwnerPlugin",
		"org.imixs.workflow.plugins.HistoryPlugin",
		"org.imixs.workflow.plugins.ResultPlugin",
	}, aModel.Plugins(version))
	assert.Equal(t, []string{"Ticket"}, aModel.Groups())

	tasks := aModel.Tasks(version)
	require.Len(t, tasks, 4)
	var ids []int
	for _, task := range tasks {
		ids = append(ids, task.ID())
	}
	assert.Equal(t, []int{1000, 1100, 1200, 1900}, ids)

	task := aModel.Task(1000, version)
	require.NotNil(t, task)
	assert.Equal(t, version, task.Version())
	assert.Equal(t, "Ticket", task.Group())
	assert.Equal(t, "New", task.Name())
	assert.Equal(t, "<b>Create</b> a new ticket", task.String(model.DescriptionAttr))
	assert.Equal(t, "ticket_new", task.String("txtEditorID"))

	testCases := []struct {
		taskID int
		count  int
		names  []string
	}{
		{taskID: 1000, count: 1, names: []string{"submit"}},
		{taskID: 1100, count: 3, names: []string{"update", "accept", "archive"}},
		{taskID: 1200, count: 4, names: []string{"update", "solve", "reopen", "message"}},
		{taskID: 1900, count: 0, names: nil},
	}
	for _, tc := range testCases {
		events := aModel.Events(tc.taskID, version)
		require.NotNil(t, events, tc.taskID)
		assert.Len(t, events, tc.count, tc.taskID)
		var names []string
		for _, event := range events {
			names = append(names, event.Name())
		}
		assert.Equal(t, tc.names, names, tc.taskID)
	}

	submit := aModel.Event(1000, 10, version)
	require.NotNil(t, submit)
	assert.Equal(t, 1100, submit.NextTaskID())
	assert.Equal(t, 1000, submit.TaskID())
	assert.Equal(t, "<b>Submit</b> new ticket", submit.String(model.DescriptionAttr))
	assert.True(t, submit.Bool("keyupdateacl"))
	assert.Equal(t, []string{"namTeam", "namManager"}, submit.Strings("namOwnershipNames"))
	assert.False(t, submit.FollowUp())

	update := aModel.Event(1100, 10, version)
	require.NotNil(t, update)
	assert.Equal(t, 1100, update.NextTaskID(), "event without outgoing flow stays on its task")

	reopen := aModel.Event(1200, 35, version)
	require.NotNil(t, reopen)
	assert.Equal(t, version, reopen.Version())
	assert.True(t, reopen.FollowUp())
	assert.Equal(t, "1", reopen.String(model.FollowUpAttr))
	assert.Equal(t, 40, reopen.NextEventID())
	assert.False(t, reopen.Has(model.NextTaskIDAttr))

	message := aModel.Event(1200, 40, version)
	require.NotNil(t, message)
	assert.Equal(t, 1000, message.NextTaskID())
	assert.Equal(t, "0", message.String(model.VisibleAttr))
	assert.Equal(t, `<item name="comment">reopened</item>`, message.Result())

	assert.Nil(t, aModel.Event(1000, 10, "2.0.0"))
	assert.Nil(t, aModel.Task(1000, "2.0.0"))
	assert.Nil(t, aModel.Events(4711, version))
}

func TestParse_Collaboration(t *testing.T) {
	aModel := loadModel(t, "collaboration.bpmn")
	groups := aModel.Groups()
	assert.NotContains(t, groups, "Collaboration")
	assert.Equal(t, []string{"WorkflowGroup1", "WorkflowGroup2"}, groups)
	assert.Len(t, aModel.Tasks(version), 2)

	task := aModel.Task(1000, version)
	require.NotNil(t, task)
	assert.Equal(t, "WorkflowGroup1", task.Group())
	assert.Len(t, aModel.Events(1000, version), 1)

	submit := aModel.Event(1000, 10, version)
	require.NotNil(t, submit)
	assert.Equal(t, "submit", submit.Name())
	assert.Equal(t, 1100, submit.NextTaskID())

	task = aModel.Task(1100, version)
	require.NotNil(t, task)
	assert.Equal(t, "WorkflowGroup2", task.Group())
}

func TestParse_LinkEvent(t *testing.T) {
	aModel := loadModel(t, "link-event.bpmn")
	assert.Contains(t, aModel.Groups(), "Simple")
	assert.Len(t, aModel.Tasks(version), 2)
	assert.Len(t, aModel.Events(1000, version), 3)
	assert.Len(t, aModel.Events(1100, version), 1)

	testCases := []struct {
		taskID, eventID int
		name            string
		next            int
	}{
		{taskID: 1000, eventID: 10, name: "confirm1", next: 1100},
		{taskID: 1000, eventID: 20, name: "save", next: 1100},
		{taskID: 1000, eventID: 30, name: "confirm2", next: 1100},
		{taskID: 1100, eventID: 10, name: "update1", next: 1000},
	}
	for _, tc := range testCases {
		event := aModel.Event(tc.taskID, tc.eventID, version)
		require.NotNil(t, event, tc.name)
		assert.Equal(t, tc.name, event.Name())
		assert.Equal(t, tc.next, event.NextTaskID(), tc.name)
	}
	assert.Nil(t, aModel.Task(0, version), "link nodes are never tasks")
}

func TestParse_LinkEventFollowUp(t *testing.T) {
	aModel := loadModel(t, "link-event_followup.bpmn")
	assert.Len(t, aModel.Tasks(version), 2)
	assert.Len(t, aModel.Events(1000, version), 3)

	confirm := aModel.Event(1000, 20, version)
	require.NotNil(t, confirm)
	assert.Equal(t, "confirm2", confirm.Name())
	assert.True(t, confirm.FollowUp())
	assert.Equal(t, 99, confirm.NextEventID())

	followUp := aModel.Event(1000, 99, version)
	require.NotNil(t, followUp)
	assert.Equal(t, "followup1", followUp.Name())
	assert.Equal(t, 1100, followUp.NextTaskID())
	assert.Equal(t, 1000, followUp.TaskID())

	assert.Nil(t, aModel.Event(1100, 99, version))
}

func TestParse_SharedEvent(t *testing.T) {
	aModel := loadModel(t, "shared_event1.bpmn")
	assert.Len(t, aModel.Events(1000, version), 2)
	assert.Len(t, aModel.Events(1100, version), 1)

	submit := aModel.Event(1000, 10, version)
	require.NotNil(t, submit)
	assert.Equal(t, 1100, submit.NextTaskID())

	first := aModel.Event(1000, 20, version)
	second := aModel.Event(1100, 20, version)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.Equal(t, 1200, first.NextTaskID())
	assert.Equal(t, 1200, second.NextTaskID())
	assert.Equal(t, "archive", first.Name())
	assert.Equal(t, first.String("txtsummary"), second.String("txtsummary"))
	assert.Equal(t, 1000, first.TaskID())
	assert.Equal(t, 1100, second.TaskID())
}

func TestParse_SharedEventFollowUp(t *testing.T) {
	aModel := loadModel(t, "shared_event3.bpmn")
	assert.Equal(t, []string{"Team", "Archive"}, aModel.Groups())
	assert.Equal(t, "Archive", aModel.Task(3200, version).Group())
	assert.Len(t, aModel.Events(3000, version), 3)
	assert.Len(t, aModel.Events(3100, version), 2)
	events := aModel.Events(3200, version)
	assert.NotNil(t, events)
	assert.Len(t, events, 0)

	for _, taskID := range []int{3000, 3100} {
		archive := aModel.Event(taskID, 20, version)
		require.NotNil(t, archive)
		assert.True(t, archive.FollowUp())
		assert.Equal(t, 30, archive.NextEventID())
		assert.Equal(t, "archive", archive.Name())

		followUp := aModel.Event(taskID, 30, version)
		require.NotNil(t, followUp)
		assert.False(t, followUp.FollowUp())
		assert.Equal(t, 3200, followUp.NextTaskID())
		assert.Equal(t, "followup", followUp.Name())
		assert.Equal(t, taskID, followUp.TaskID())
	}
}

func TestParse_Encoding(t *testing.T) {
	aModel := loadModel(t, "latin1.bpmn")
	task := aModel.Task(1000, version)
	require.NotNil(t, task)
	assert.Equal(t, "Geprüft", task.Name())
	assert.Equal(t, "Büro", task.Group())

	_, err := Parse(strings.NewReader("<definitions/>"), "no-such-encoding")
	assert.True(t, errors.Is(err, model.ErrInvalidModel))
}

func TestParse_Invalid(t *testing.T) {
	const profile = `<bpmn2:extensionElements><imixs:item name="txtworkflowmodelversion"><imixs:value>1.0.0</imixs:value></imixs:item></bpmn2:extensionElements>`
	wrap := func(body string) string {
		return `<bpmn2:definitions xmlns:bpmn2="http://www.omg.org/spec/BPMN/20100524/MODEL" xmlns:imixs="http://www.imixs.org/bpmn2">` +
			profile + `<bpmn2:process id="P1" name="G">` + body + `</bpmn2:process></bpmn2:definitions>`
	}
	testCases := []struct {
		description string
		input       string
	}{
		{description: "empty document", input: ""},
		{description: "malformed xml", input: wrap(`<bpmn2:task id="T1" imixs:processid="1000">`)},
		{description: "unexpected root", input: `<process/>`},
		{description: "missing version", input: `<bpmn2:definitions xmlns:bpmn2="x"><bpmn2:process id="P1"/></bpmn2:definitions>`},
		{description: "missing task id", input: wrap(`<bpmn2:task id="T1"/>`)},
		{description: "duplicate task id", input: wrap(`<bpmn2:task id="T1" imixs:processid="1000"/><bpmn2:task id="T2" imixs:processid="1000"/>`)},
		{description: "missing event id", input: wrap(`<bpmn2:intermediateCatchEvent id="E1"/>`)},
		{description: "dangling flow", input: wrap(`<bpmn2:task id="T1" imixs:processid="1000"/><bpmn2:sequenceFlow id="F1" sourceRef="T1" targetRef="X"/>`)},
		{description: "unresolved link", input: wrap(`<bpmn2:task id="T1" imixs:processid="1000"/>` +
			`<bpmn2:intermediateCatchEvent id="E1" imixs:activityid="10"/>` +
			`<bpmn2:intermediateThrowEvent id="L1"><bpmn2:linkEventDefinition name="nowhere"/></bpmn2:intermediateThrowEvent>` +
			`<bpmn2:sequenceFlow id="F1" sourceRef="T1" targetRef="E1"/><bpmn2:sequenceFlow id="F2" sourceRef="E1" targetRef="L1"/>`)},
		{description: "unknown lane reference", input: wrap(`<bpmn2:laneSet><bpmn2:lane name="A"><bpmn2:flowNodeRef>X</bpmn2:flowNodeRef></bpmn2:lane></bpmn2:laneSet>`)},
		{description: "gateway", input: wrap(`<bpmn2:task id="T1" imixs:processid="1000"/><bpmn2:exclusiveGateway id="G1"/>` +
			`<bpmn2:intermediateCatchEvent id="E1" imixs:activityid="10"/>` +
			`<bpmn2:sequenceFlow id="F1" sourceRef="T1" targetRef="E1"/><bpmn2:sequenceFlow id="F2" sourceRef="E1" targetRef="G1"/>`)},
		{description: "ambiguous event", input: wrap(`<bpmn2:task id="T1" imixs:processid="1000"/><bpmn2:task id="T2" imixs:processid="1100"/>` +
			`<bpmn2:intermediateCatchEvent id="E1" imixs:activityid="10"/>` +
			`<bpmn2:sequenceFlow id="F1" sourceRef="T1" targetRef="E1"/><bpmn2:sequenceFlow id="F2" sourceRef="E1" targetRef="T1"/>` +
			`<bpmn2:sequenceFlow id="F3" sourceRef="E1" targetRef="T2"/>`)},
		{description: "duplicate event on task", input: wrap(`<bpmn2:task id="T1" imixs:processid="1000"/>` +
			`<bpmn2:intermediateCatchEvent id="E1" imixs:activityid="10"/><bpmn2:intermediateCatchEvent id="E2" imixs:activityid="10"/>` +
			`<bpmn2:sequenceFlow id="F1" sourceRef="T1" targetRef="E1"/><bpmn2:sequenceFlow id="F2" sourceRef="T1" targetRef="E2"/>`)},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			aModel, err := Parse(strings.NewReader(tc.input), "UTF-8")
			assert.Nil(t, aModel)
			require.Error(t, err)
			var modelErr *model.Error
			assert.True(t, errors.As(err, &modelErr))
			assert.True(t, errors.Is(err, model.ErrInvalidModel))
		})
	}
}
