package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmarket/pkg/errors"
)

type fakePoster struct {
	posted *PostedMessage
	err    error

	gotOrderID  string
	gotSenderID string
	gotContent  string
}

func (p *fakePoster) PostMessage(ctx context.Context, orderID, senderID, content string) (*PostedMessage, error) {
	p.gotOrderID = orderID
	p.gotSenderID = senderID
	p.gotContent = content
	if p.err != nil {
		return nil, p.err
	}
	return p.posted, nil
}

func recvEvent(t *testing.T, client *Client) Event {
	t.Helper()

	select {
	case raw := <-client.Send:
		var event Event
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("expected an event, got none")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, client *Client) {
	t.Helper()

	select {
	case raw := <-client.Send:
		t.Fatalf("unexpected event: %s", raw)
	default:
	}
}

func TestHandleJoinRoomEvent(t *testing.T) {
	m := startManager(t)
	client := registerClient(t, m, "buyer")

	m.HandleClientEvent(client, []byte(`{"type":"join_room","data":{"order_id":"order-1"}}`))

	assert.Equal(t, 1, m.OrderRoomSize("order-1"))
	assertNoEvent(t, client)
}

func TestHandleJoinRoomMissingOrderID(t *testing.T) {
	m := startManager(t)
	client := registerClient(t, m, "buyer")

	m.HandleClientEvent(client, []byte(`{"type":"join_room","data":{}}`))

	event := recvEvent(t, client)
	assert.Equal(t, EventError, event.Type)
}

func TestHandleJoinUserRoomRejectsForeignUser(t *testing.T) {
	m := startManager(t)
	client := registerClient(t, m, "buyer")

	m.HandleClientEvent(client, []byte(`{"type":"join_user_room","data":{"user_id":"someone-else"}}`))

	event := recvEvent(t, client)
	assert.Equal(t, EventError, event.Type)
	assert.Equal(t, 0, m.UserRoomSize("someone-else"))
	assert.Equal(t, 0, m.UserRoomSize("buyer"))
}

func TestHandleSendMessage(t *testing.T) {
	m := startManager(t)
	poster := &fakePoster{posted: &PostedMessage{
		ID:         "msg-1",
		OrderID:    "order-1",
		SenderID:   "buyer",
		SenderName: "Asha",
		Content:    "Is this available?",
		BuyerID:    "buyer",
		SellerID:   "seller",
	}}
	m.SetMessagePoster(poster)

	buyer := registerClient(t, m, "buyer")
	seller := registerClient(t, m, "seller")
	m.JoinOrderRoom(buyer, "order-1")
	m.JoinOrderRoom(seller, "order-1")
	m.JoinUserRoom(seller)

	m.HandleClientEvent(buyer, []byte(`{"type":"send_message","data":{"order_id":"order-1","content":"Is this available?"}}`))

	assert.Equal(t, "order-1", poster.gotOrderID)
	assert.Equal(t, "buyer", poster.gotSenderID)

	// Both room members see the message, sender included.
	for _, client := range []*Client{buyer, seller} {
		event := recvEvent(t, client)
		assert.Equal(t, EventReceiveMessage, event.Type)

		var posted PostedMessage
		require.NoError(t, json.Unmarshal(event.Data, &posted))
		assert.Equal(t, "msg-1", posted.ID)
		assert.Equal(t, "Asha", posted.SenderName)
	}

	// The counterpart also gets a personal-room push.
	event := recvEvent(t, seller)
	assert.Equal(t, EventNewMessageNotification, event.Type)

	var notif struct {
		OrderID    string `json:"order_id"`
		SenderName string `json:"sender_name"`
	}
	require.NoError(t, json.Unmarshal(event.Data, &notif))
	assert.Equal(t, "order-1", notif.OrderID)
	assert.Equal(t, "Asha", notif.SenderName)

	// The sender gets no notification about their own message.
	assertNoEvent(t, buyer)
}

func TestHandleSendMessageGateFailure(t *testing.T) {
	m := startManager(t)
	poster := &fakePoster{err: errors.InvalidState("Chat is only available for confirmed orders", nil)}
	m.SetMessagePoster(poster)

	buyer := registerClient(t, m, "buyer")
	seller := registerClient(t, m, "seller")
	m.JoinOrderRoom(buyer, "order-1")
	m.JoinOrderRoom(seller, "order-1")

	m.HandleClientEvent(buyer, []byte(`{"type":"send_message","data":{"order_id":"order-1","content":"hello"}}`))

	// The error goes back to the origin only.
	event := recvEvent(t, buyer)
	assert.Equal(t, EventError, event.Type)
	assertNoEvent(t, seller)
}

func TestHandleMalformedEvent(t *testing.T) {
	m := startManager(t)
	client := registerClient(t, m, "buyer")

	m.HandleClientEvent(client, []byte(`not json`))

	event := recvEvent(t, client)
	assert.Equal(t, EventError, event.Type)
}

func TestHandleUnknownEventType(t *testing.T) {
	m := startManager(t)
	client := registerClient(t, m, "buyer")

	m.HandleClientEvent(client, []byte(`{"type":"presence_ping"}`))

	event := recvEvent(t, client)
	assert.Equal(t, EventError, event.Type)
}
