package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/bpmflow/model"
	"github.com/viant/bpmflow/plugin"
)

func testModel(t *testing.T) *model.Model {
	builder := model.NewBuilder("1.0.0", nil)
	open := model.NewTask(1000, "")
	open.Set(model.NameAttr, "Open")
	open.Set(model.WorkflowGroupAttr, "Ticket")
	approved := model.NewTask(1100, "")
	approved.Set(model.NameAttr, "Approved")
	approved.Set(model.WorkflowGroupAttr, "Ticket")
	approved.Set(model.EditorAttr, "form#approved")
	approved.Set(model.AbstractAttr, "Approved by <itemvalue>namcurrenteditor</itemvalue>")
	require.NoError(t, builder.AddTask(open))
	require.NoError(t, builder.AddTask(approved))
	return builder.Build()
}

func TestPlugin_Run(t *testing.T) {
	testCases := []struct {
		description string
		event       func() *model.Event
		expect      map[string]string
	}{
		{
			description: "next task",
			event: func() *model.Event {
				ret := model.NewEvent(1000, 10, "1.0.0")
				ret.SetNextTaskID(1100)
				return ret
			},
			expect: map[string]string{
				model.WorkflowStatusAttr:   "Approved",
				model.WorkItemGroupAttr:    "Ticket",
				model.WorkflowEditorAttr:   "form#approved",
				model.WorkflowAbstractAttr: "Approved by Anna",
				model.WorkflowImageAttr:    "",
			},
		},
		{
			description: "follow up skipped",
			event: func() *model.Event {
				ret := model.NewEvent(1000, 10, "1.0.0")
				ret.SetFollowUp(20)
				return ret
			},
			expect: map[string]string{model.WorkflowStatusAttr: ""},
		},
		{
			description: "missing next task",
			event: func() *model.Event {
				ret := model.NewEvent(1000, 10, "1.0.0")
				ret.SetNextTaskID(4242)
				return ret
			},
			expect: map[string]string{model.WorkflowStatusAttr: ""},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			srv := New()
			require.NoError(t, srv.Init(context.Background(), &plugin.Environment{Models: testModel(t)}))
			workItem := model.NewWorkItem(1000, "1.0.0")
			workItem.Set("namCurrentEditor", "Anna")
			require.NoError(t, srv.Run(context.Background(), workItem, tc.event()))
			for name, expect := range tc.expect {
				assert.Equal(t, expect, workItem.String(name), name)
			}
			require.NoError(t, srv.Close(context.Background(), plugin.StatusSuccess))
		})
	}
}
