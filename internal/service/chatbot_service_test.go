package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatbotService_Reply(t *testing.T) {
	svc := NewChatbotService()

	t.Run("booking question", func(t *testing.T) {
		reply := svc.Reply("How do I BOOK a spot?")
		assert.Contains(t, reply, "available parking slot")
	})

	t.Run("wallet question", func(t *testing.T) {
		reply := svc.Reply("where does my money go")
		assert.Contains(t, reply, "Wallet")
	})

	t.Run("cancellation question", func(t *testing.T) {
		reply := svc.Reply("can I cancel?")
		assert.Contains(t, reply, "refunded")
	})

	t.Run("greeting", func(t *testing.T) {
		reply := svc.Reply("hello there")
		assert.Contains(t, reply, "Hello")
	})

	t.Run("fallback", func(t *testing.T) {
		reply := svc.Reply("what is the meaning of life")
		assert.Contains(t, reply, "not sure")
	})
}
