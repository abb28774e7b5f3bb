// Package notify sends desktop notifications for due reminders.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Notifier sends system notifications. On macOS it shells out to osascript,
// on Linux to notify-send. Everywhere else Send is a no-op.
type Notifier struct {
	Enabled bool
}

// Supported reports whether the current platform has a delivery mechanism.
func (n *Notifier) Supported() bool {
	switch runtime.GOOS {
	case "darwin":
		return true
	case "linux":
		_, err := exec.LookPath("notify-send")
		return err == nil
	default:
		return false
	}
}

// Send delivers a notification with the given title and message.
func (n *Notifier) Send(title, message string) error {
	if !n.Enabled {
		return nil
	}

	switch runtime.GOOS {
	case "darwin":
		return sendMacOS(title, message)
	case "linux":
		return sendLinux(title, message)
	default:
		return nil
	}
}

func sendMacOS(title, message string) error {
	title = strings.ReplaceAll(title, `"`, `\"`)
	message = strings.ReplaceAll(message, `"`, `\"`)

	script := fmt.Sprintf(`display notification "%s" with title "%s"`, message, title)
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

func sendLinux(title, message string) error {
	if err := exec.Command("notify-send", title, message).Run(); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

// FormatReminder builds the daily reminder notification.
func FormatReminder() (title, message string) {
	return "Расчет плана", "Время рассчитать выполнение плана за сегодня"
}
