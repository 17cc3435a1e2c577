package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub006/internal/game/resolve"
)

func TestFrameRoundTripsChoiceRequest(t *testing.T) {
	req := resolve.ChoiceRequest{
		ID:             "req-1",
		Seat:           2,
		Kind:           resolve.ChoiceSelectCards,
		Prompt:         "Play a Dodge to cancel the Slash?",
		AllowedCardIDs: []string{"c1", "c2"},
		MaxCards:       1,
	}
	data, err := json.Marshal(frame{Type: frameChoiceRequest, Request: &req})
	require.NoError(t, err)

	var decoded frame
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, frameChoiceRequest, decoded.Type)
	require.NotNil(t, decoded.Request)
	assert.Equal(t, req, *decoded.Request)
	assert.Nil(t, decoded.Result)
	assert.Nil(t, decoded.Winner)
}

func TestFrameRoundTripsChoiceResult(t *testing.T) {
	res := resolve.ChoiceResult{
		RequestID:   "req-1",
		Seat:        2,
		Kind:        resolve.ChoiceSelectCards,
		CardIDs:     []string{"c1"},
		TargetSeats: []int{1},
	}
	data, err := json.Marshal(frame{Type: frameChoiceResult, Result: &res})
	require.NoError(t, err)

	var decoded frame
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.Result)
	assert.Equal(t, res, *decoded.Result)
}

func TestSeatRouterDeclinesUnknownSeat(t *testing.T) {
	router := &seatRouter{sessions: map[int]*Session{}}
	req := resolve.ChoiceRequest{ID: "req-9", Seat: 3, Kind: resolve.ChoiceConfirm}

	res := router.Ask(req)
	assert.Equal(t, "req-9", res.RequestID)
	assert.Equal(t, 3, res.Seat)
	assert.Equal(t, resolve.ChoiceConfirm, res.Kind)
	assert.Empty(t, res.CardIDs)
	assert.False(t, res.Confirmed)
}
