package result

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/bpmflow/markup"
	"github.com/viant/bpmflow/model"
	"github.com/viant/bpmflow/plugin"
)

func TestPlugin_Run(t *testing.T) {
	testCases := []struct {
		description string
		result      string
		expect      map[string][]interface{}
		hasError    bool
	}{
		{
			description: "no result",
			expect:      map[string][]interface{}{"txtname": {"Anna"}},
		},
		{
			description: "replace and add",
			result:      `<item name="txtName">Sam</item><item name="approved" type="boolean">true</item>`,
			expect:      map[string][]interface{}{"txtname": {"Sam"}, "approved": {true}},
		},
		{
			description: "ignored and derived items",
			result:      `<item name="comment" ignore="true">x</item><item name="team" role="owner">a</item>`,
			expect:      map[string][]interface{}{"txtname": {"Anna"}, "team": {"a"}},
		},
		{
			description: "item value expansion",
			result:      `<item name="owner"><itemvalue>txtname</itemvalue></item>`,
			expect:      map[string][]interface{}{"txtname": {"Anna"}, "owner": {"Anna"}},
		},
		{
			description: "malformed markup",
			result:      `<item name="a">1</item><item noname="b">2</item>`,
			expect:      map[string][]interface{}{"txtname": {"Anna"}},
			hasError:    true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			workItem := model.AsWorkItem(nil)
			workItem.Set("txtName", "Anna")
			event := model.NewEvent(1000, 10, "1.0.0")
			event.Set(model.ResultAttr, tc.result)
			srv := New()
			require.NoError(t, srv.Init(context.Background(), &plugin.Environment{}))
			err := srv.Run(context.Background(), workItem, event)
			if tc.hasError {
				var pluginErr *plugin.Error
				require.True(t, errors.As(err, &pluginErr))
				assert.Equal(t, InvalidResultCode, pluginErr.Code)
				var markupErr *markup.Error
				assert.True(t, errors.As(err, &markupErr))
			} else {
				require.NoError(t, err)
			}
			assert.EqualValues(t, tc.expect, workItem.Map())
		})
	}
}
