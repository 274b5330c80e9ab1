// Package notifier delivers desktop notifications through the companion
// notifier app's local webhook, discovered via its lockfile. Delivery is
// best effort; callers log failures and move on.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"balanceday/internal/constants"
	"balanceday/internal/models"
	"balanceday/internal/timeutil"
)

// Stubbed in tests.
var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

type Notifier struct{}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// lockInfo is the parsed "port|pid|secret" lockfile the notifier app writes
// while it is running.
type lockInfo struct {
	port   string
	pid    int
	secret string
}

func New() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Notify(text string) error {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return fmt.Errorf("failed to get user config dir: %w", err)
	}
	lockfilePath := filepath.Join(configDir, constants.NotifierAppIdentifier, constants.NotifyLockfileName)

	port, secret, err := findAndValidateNotifierProcess(lockfilePath)
	if err != nil {
		return err
	}

	return sendNotification(port, secret, WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	})
}

// ScheduleSummary renders a short notification line for a fresh schedule.
func ScheduleSummary(schedule models.Schedule) string {
	if len(schedule) == 0 {
		return "Your day is clear."
	}
	work := len(schedule.WorkItems())
	recovery := len(schedule.WellnessItems())
	return fmt.Sprintf("Plan ready: %d task(s) and %d break(s), %s to %s",
		work, recovery, schedule[0].StartTime, schedule[len(schedule)-1].EndTime)
}

// ReminderText renders the up-next line for an item.
func ReminderText(item models.ScheduleItem) string {
	d := timeutil.Minutes(item.EndTime) - timeutil.Minutes(item.StartTime)
	switch item.Type {
	case models.ItemWellness:
		return fmt.Sprintf("Wellness time: %s (%d min)", item.Title, d)
	case models.ItemBreak:
		return fmt.Sprintf("Break time: %s (%d min)", item.Title, d)
	default:
		return fmt.Sprintf("Up next: %s at %s (%d min)", item.Title, item.StartTime, d)
	}
}

func parseLockfile(content string) (lockInfo, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return lockInfo{}, errors.New("lockfile is malformed")
	}

	info := lockInfo{port: strings.TrimSpace(parts[0]), secret: parts[2]}
	if info.port == "" {
		return lockInfo{}, errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(info.port)
	if err != nil {
		return lockInfo{}, errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return lockInfo{}, fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	if info.pid, err = strconv.Atoi(parts[1]); err != nil {
		return lockInfo{}, errors.New("invalid process ID in lockfile")
	}
	if strings.TrimSpace(info.secret) == "" {
		return lockInfo{}, errors.New("secret in lockfile is empty")
	}
	return info, nil
}

func findAndValidateNotifierProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("notifier app is not running")
	}

	info, err := parseLockfile(string(content))
	if err != nil {
		return "", "", err
	}

	process, err := findProcessFunc(info.pid)
	if err != nil || process == nil {
		return "", "", errors.New("notifier process not running")
	}
	if !strings.HasPrefix(process.Executable(), constants.NotifierAppIdentifier) {
		return "", "", fmt.Errorf("process with PID %d is not the notifier (is %s)", info.pid, process.Executable())
	}

	return info.port, info.secret, nil
}

func sendNotification(port, secret string, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, "http://127.0.0.1:"+port, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Balanceday-Secret", secret)

	client := &http.Client{Timeout: 3 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(msg))
	}
	return nil
}
