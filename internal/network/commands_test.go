package network

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abstogo/SpaceTycoon/internal/engine"
)

func cmd(t string, payload any) Command {
	raw, _ := json.Marshal(payload)
	return Command{Type: t, Payload: raw}
}

func TestDispatch_TriggerAndResolve(t *testing.T) {
	r := newTestRunner(t, nil)

	res := Dispatch(r, cmd("trigger", map[string]string{"event_type": "trade_opportunity"}))
	require.True(t, res.OK, res.Message)
	assert.Equal(t, "Trade Opportunity", res.Message)

	prompts := r.Status().Prompts
	require.Len(t, prompts, 1)

	res = Dispatch(r, cmd(CmdResolve, map[string]any{"prompt_id": prompts[0].ID, "choice": 0}))
	require.True(t, res.OK, res.Message)
	assert.Equal(t, "You negotiate a good deal and earn 500 credits.", res.Message)
	assert.Equal(t, 10500, r.Status().Credits)
	assert.Empty(t, r.Status().Prompts)
}

func TestDispatch_ShipCommands(t *testing.T) {
	r := newTestRunner(t, nil)

	res := Dispatch(r, Command{Type: CmdMaintain})
	require.True(t, res.OK, res.Message)
	assert.Equal(t, 9800, r.Status().Credits)

	res = Dispatch(r, cmd(CmdMaintain, map[string]string{"kind": "FULL"}))
	require.True(t, res.OK, res.Message)
	assert.Equal(t, 9300, r.Status().Credits)

	res = Dispatch(r, Command{Type: CmdRefuel})
	assert.False(t, res.OK, "a full tank cannot be refueled")

	res = Dispatch(r, Command{Type: CmdTravel})
	require.True(t, res.OK, res.Message)
	assert.Equal(t, engine.LocationInTransit, r.Status().Location)

	res = Dispatch(r, Command{Type: CmdRefuel})
	assert.False(t, res.OK, "refueling needs a port")
}

func TestDispatch_CrewAndTrade(t *testing.T) {
	r := newTestRunner(t, nil)

	res := Dispatch(r, cmd(CmdHire, map[string]int{"index": 0}))
	require.True(t, res.OK, res.Message)
	assert.Len(t, r.Status().Crew.Members, 4)

	res = Dispatch(r, Command{Type: CmdRest})
	assert.True(t, res.OK)

	res = Dispatch(r, cmd(CmdBuy, map[string]any{"goods": "water", "quantity": 5}))
	require.True(t, res.OK, res.Message)
	assert.Equal(t, 9900, r.Status().Credits)

	res = Dispatch(r, cmd(CmdSell, map[string]any{"goods": "water", "quantity": 5}))
	require.True(t, res.OK, res.Message)
	assert.Equal(t, 10000, r.Status().Credits)
}

func TestDispatch_Rejects(t *testing.T) {
	r := newTestRunner(t, nil)

	res := Dispatch(r, Command{Type: "FLY"})
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "Unknown command")

	res = Dispatch(r, Command{Type: CmdResolve, Payload: json.RawMessage(`{"choice":"x"}`)})
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "Invalid RESOLVE payload")

	res = Dispatch(r, cmd(CmdResolve, map[string]any{"prompt_id": "nope", "choice": 0}))
	assert.False(t, res.OK)
	assert.Equal(t, "Event not found.", res.Message)
}
