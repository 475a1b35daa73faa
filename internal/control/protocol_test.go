package control

import (
	"testing"

	"github.com/jmelosegui/mosaico/internal/model"
)

func TestToCommand(t *testing.T) {
	cases := []struct {
		req     wireRequest
		wantErr bool
		kind    model.CommandKind
	}{
		{wireRequest{Command: "stop"}, false, model.CmdStop},
		{wireRequest{Command: "status"}, false, model.CmdStatus},
		{wireRequest{Command: "action", Action: "retile"}, false, model.CmdAction},
		{wireRequest{Command: "action"}, true, 0},
		{wireRequest{Command: "bogus"}, true, 0},
	}
	for _, c := range cases {
		cmd, err := toCommand(c.req)
		if c.wantErr {
			if err == nil {
				t.Errorf("expected error for %+v", c.req)
			}
			continue
		}
		if err != nil {
			t.Errorf("unexpected error for %+v: %v", c.req, err)
			continue
		}
		if cmd.Kind != c.kind {
			t.Errorf("expected kind %v, got %v", c.kind, cmd.Kind)
		}
	}
}
