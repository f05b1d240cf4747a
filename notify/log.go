package notify

import "log"

// LogNotifier writes confirmations to the application log. Used as a stand-in
// when no external channel is configured.
type LogNotifier struct{}

func (LogNotifier) Send(recipient string, payload Confirmation) error {
	log.Printf("📧 Order %s confirmed for %s (total %s)", payload.OrderRef, recipient, payload.Total)
	return nil
}
