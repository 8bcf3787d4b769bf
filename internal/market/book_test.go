package market

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtual-energy-trader/internal/model"
)

func testBid(id, participant string, hour int, status model.BidStatus) *model.Bid {
	return &model.Bid{
		ID:            id,
		ParticipantID: participant,
		Hour:          hour,
		Side:          model.SideBuy,
		LimitPrice:    decimal.NewFromInt(50),
		Quantity:      decimal.NewFromInt(1),
		Status:        status,
	}
}

func TestBookAppendAndGet(t *testing.T) {
	b := NewBook()
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.Get("missing"))

	bid := testBid("b1", "alice", 10, model.StatusPending)
	b.Append(bid)
	assert.Equal(t, 1, b.Len())
	assert.Same(t, bid, b.Get("b1"))
}

func TestBookPendingFiltersTerminal(t *testing.T) {
	b := NewBook()
	b.Append(testBid("b1", "alice", 1, model.StatusPending))
	b.Append(testBid("b2", "alice", 2, model.StatusExecuted))
	b.Append(testBid("b3", "bob", 3, model.StatusRejected))
	b.Append(testBid("b4", "bob", 4, model.StatusPending))

	pending := b.Pending()
	require.Len(t, pending, 2)
	// Submission order is preserved.
	assert.Equal(t, "b1", pending[0].ID)
	assert.Equal(t, "b4", pending[1].ID)

	assert.Equal(t, 1, b.CountExecuted())
}

func TestBookByParticipantReturnsCopies(t *testing.T) {
	b := NewBook()
	b.Append(testBid("b1", "alice", 1, model.StatusPending))
	b.Append(testBid("b2", "bob", 2, model.StatusPending))

	views := b.ByParticipant("alice")
	require.Len(t, views, 1)
	views[0].Status = model.StatusRejected
	assert.Equal(t, model.StatusPending, b.Get("b1").Status)

	assert.Empty(t, b.ByParticipant("carol"))
}

func TestBookClear(t *testing.T) {
	b := NewBook()
	b.Append(testBid("b1", "alice", 1, model.StatusPending))
	b.Append(testBid("b2", "alice", 2, model.StatusExecuted))

	assert.Equal(t, 2, b.Clear())
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.Get("b1"))
	assert.Equal(t, 0, b.Clear())
}
