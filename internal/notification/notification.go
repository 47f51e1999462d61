// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/nexara/nexara/internal/logger"
)

// AppName is the title used for every notification.
const AppName = "Nexara"

// Sender delivers a notification.
type Sender interface {
	Send(title, message string) error
}

// Desktop sends notifications through the OS notification center.
type Desktop struct{}

// Send sends a desktop notification with the given title and message.
func (Desktop) Send(title, message string) error {
	logger.Debug("Notification: title=%q, message=%q", title, message)
	// Empty icon: beeep picks the platform default.
	err := beeep.Notify(title, message, "")
	if err != nil {
		logger.Warn("Notification: failed to send: %v", err)
	}
	return err
}

// UploadIndexed notifies that a document finished indexing.
func UploadIndexed(s Sender, fileName string) error {
	return s.Send(AppName, fileName+" is ready for questions")
}

// UploadFailed notifies that a document could not be indexed.
func UploadFailed(s Sender, fileName, reason string) error {
	return s.Send(AppName, "Could not process "+fileName+": "+reason)
}
