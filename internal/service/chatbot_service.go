package service

import "strings"

// ChatbotService — справочный ответчик по ключевым словам.
// Никакого состояния и внешних вызовов: чистое сопоставление.
type ChatbotService struct {
	rules []chatRule
}

type chatRule struct {
	keywords []string
	reply    string
}

func NewChatbotService() *ChatbotService {
	return &ChatbotService{
		rules: []chatRule{
			{
				keywords: []string{"book", "booking"},
				reply:    "To book a spot, pick any available parking slot, select your vehicle and duration, and confirm!",
			},
			{
				keywords: []string{"wallet", "money", "pay"},
				reply:    "You can top up your wallet in the Wallet tab. Your balance is charged automatically when a booking is confirmed.",
			},
			{
				keywords: []string{"cancel"},
				reply:    "To cancel a booking, go to 'My Bookings', select the active booking and tap 'Cancel'. The full amount is refunded to your wallet.",
			},
			{
				keywords: []string{"hello", "hi"},
				reply:    "Hello! I can help you with bookings, wallet top-ups and cancellations. What do you need?",
			},
		},
	}
}

// Reply подбирает канонический ответ по первому совпавшему правилу.
func (s *ChatbotService) Reply(input string) string {
	lower := strings.ToLower(input)
	for _, rule := range s.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reply
			}
		}
	}
	return "I'm not sure about that. Try asking about bookings, your wallet or cancellations."
}
