package notify

import (
	"sync"
)

// SenderStub records messages and fails for the numbers in FailFor
type SenderStub struct {
	FailFor map[string]error

	mu   sync.Mutex
	Sent map[string]string
}

func (s *SenderStub) SendMessage(to, body string) error {
	if err := s.FailFor[to]; err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Sent == nil {
		s.Sent = map[string]string{}
	}
	s.Sent[to] = body

	return nil
}

func (s *SenderStub) SentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Sent)
}
