package smssvc

import (
	"log"
	"sync"

	"github.com/kingsolomonjunior/admissions/core"
)

var (
	SentMessages = make([]core.SMSMessage, 0)
	mu           sync.Mutex
)

// consoleService writes messages to the process log instead of sending
// them. It is the DEV/TEST stand-in for SNS.
type consoleService struct {
	disableOutput bool
}

var _ core.SMSService = (*consoleService)(nil)

func NewConsoleService() core.SMSService {
	return &consoleService{}
}

func (svc consoleService) SendMessages(messages ...*core.SMSMessage) {
	for _, msg := range messages {
		if msg.To == "" || msg.Body == "" {
			continue
		}
		if !svc.disableOutput {
			log.Printf("SMS to %s: %s", msg.To, msg.Body)
		}
		mu.Lock()
		SentMessages = append(SentMessages, *msg)
		mu.Unlock()
	}
}

// NewConsoleServiceMock sends with output disabled; tests inspect SentMessages.
func NewConsoleServiceMock() core.SMSService {
	return &consoleService{disableOutput: true}
}

// ClearSentMessages resets the captured messages between tests.
func ClearSentMessages() {
	mu.Lock()
	SentMessages = SentMessages[:0]
	mu.Unlock()
}
