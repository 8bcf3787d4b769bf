package market

import "virtual-energy-trader/internal/model"

// Book is the mutable collection of submitted bids. It is not safe for
// concurrent use on its own; the Simulation serializes access.
type Book struct {
	bids []*model.Bid
	byID map[string]*model.Bid
}

func NewBook() *Book {
	return &Book{byID: make(map[string]*model.Bid)}
}

// Append adds a bid to the book. The caller has already validated it.
func (b *Book) Append(bid *model.Bid) {
	b.bids = append(b.bids, bid)
	b.byID[bid.ID] = bid
}

// Pending returns the bids still awaiting clearing, in submission order.
func (b *Book) Pending() []*model.Bid {
	out := make([]*model.Bid, 0, len(b.bids))
	for _, bid := range b.bids {
		if bid.Status == model.StatusPending {
			out = append(out, bid)
		}
	}
	return out
}

// ByParticipant returns copies of all bids for one participant, in
// submission order.
func (b *Book) ByParticipant(participantID string) []model.Bid {
	out := make([]model.Bid, 0)
	for _, bid := range b.bids {
		if bid.ParticipantID == participantID {
			out = append(out, *bid)
		}
	}
	return out
}

// Get returns the bid with the given id, or nil.
func (b *Book) Get(id string) *model.Bid {
	return b.byID[id]
}

// Len returns the total number of bids in the book.
func (b *Book) Len() int { return len(b.bids) }

// CountExecuted returns the number of bids in EXECUTED status.
func (b *Book) CountExecuted() int {
	n := 0
	for _, bid := range b.bids {
		if bid.Status == model.StatusExecuted {
			n++
		}
	}
	return n
}

// Clear empties the book and returns how many bids were dropped.
func (b *Book) Clear() int {
	n := len(b.bids)
	b.bids = nil
	b.byID = make(map[string]*model.Bid)
	return n
}
