package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/planeval/internal/config"
	"github.com/pr-poehali-dev/planeval/internal/history"
	"github.com/pr-poehali-dev/planeval/internal/notify"
	"github.com/pr-poehali-dev/planeval/internal/remind"
)

var (
	flagRemindDetach  bool
	flagRemindPIDFile string
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Manage the daily calculation reminder",
}

var remindSetCmd = &cobra.Command{
	Use:   "set <HH:MM>",
	Short: "Set the daily reminder time",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemindSet,
}

var remindStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the reminder time and daemon state",
	RunE:  runRemindStatus,
}

var remindRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reminder daemon",
	RunE:  runRemindRun,
}

var remindStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the reminder daemon",
	RunE:  runRemindStop,
}

var remindOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Disable the reminder",
	RunE:  runRemindOff,
}

func init() {
	defaultPID := filepath.Join(history.DataDir(), "remind.pid")

	remindCmd.PersistentFlags().StringVar(&flagRemindPIDFile, "pid-file", defaultPID, "PID file path")
	remindRunCmd.Flags().BoolVar(&flagRemindDetach, "detach", false, "Run the daemon as a background process")

	remindCmd.AddCommand(remindSetCmd)
	remindCmd.AddCommand(remindStatusCmd)
	remindCmd.AddCommand(remindRunCmd)
	remindCmd.AddCommand(remindStopCmd)
	remindCmd.AddCommand(remindOffCmd)
	rootCmd.AddCommand(remindCmd)
}

func runRemindSet(_ *cobra.Command, args []string) error {
	value := args[0]
	if err := remind.ParseTime(value); err != nil {
		return err
	}

	kv, err := openKV()
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	if err := kv.SetKV(history.ReminderTimeKey, value); err != nil {
		return fmt.Errorf("save reminder time: %w", err)
	}

	cfg, _ := config.Load()
	cfg.Reminder.Enabled = true
	cfg.Reminder.Time = value
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	next, err := remind.NextFire(time.Now(), value)
	if err != nil {
		return err
	}
	fmt.Printf("  Напоминание установлено на %s (следующее: %s)\n",
		value, next.Format("02.01.2006 15:04"))
	fmt.Println("  Запустите демон: planeval remind run --detach")
	return nil
}

func runRemindStatus(_ *cobra.Command, _ []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	value, err := kv.GetKV(history.ReminderTimeKey)
	if err != nil {
		return fmt.Errorf("load reminder time: %w", err)
	}
	if value == "" {
		fmt.Println("  Напоминание не установлено.")
		return nil
	}

	fmt.Printf("  Время напоминания: %s\n", value)
	if next, err := remind.NextFire(time.Now(), value); err == nil {
		fmt.Printf("  Следующее: %s\n", next.Format("02.01.2006 15:04"))
	}

	pid, err := readPID(flagRemindPIDFile)
	switch {
	case err != nil:
		fmt.Println("  Демон: не запущен")
	case processAlive(pid):
		fmt.Printf("  Демон: работает (pid %d)\n", pid)
	default:
		fmt.Printf("  Демон: устаревший pid-файл (процесс %d не найден)\n", pid)
	}
	return nil
}

func runRemindRun(_ *cobra.Command, _ []string) error {
	if flagRemindDetach {
		return startRemindDetached()
	}
	return runRemindForeground()
}

func startRemindDetached() error {
	if err := ensureRemindNotRunning(flagRemindPIDFile); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	args := filterDetachArg(os.Args[1:])

	if err := os.MkdirAll(filepath.Dir(flagRemindPIDFile), 0o750); err != nil {
		return fmt.Errorf("create daemon directory: %w", err)
	}

	logPath := filepath.Join(history.DataDir(), "remind.log")
	logf, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open daemon log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	cmd := exec.Command(exe, args...)
	cmd.Stdout = logf
	cmd.Stderr = logf
	cmd.Stdin = nil
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start detached daemon: %w", err)
	}

	fmt.Printf("  Демон запущен (pid %d)\n", cmd.Process.Pid)
	fmt.Printf("  PID-файл: %s\n", flagRemindPIDFile)
	fmt.Printf("  Лог: %s\n", logPath)
	return nil
}

func runRemindForeground() error {
	if err := ensureRemindNotRunning(flagRemindPIDFile); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(flagRemindPIDFile), 0o750); err != nil {
		return fmt.Errorf("create daemon directory: %w", err)
	}
	if err := writePID(flagRemindPIDFile, os.Getpid()); err != nil {
		return err
	}
	defer func() { _ = os.Remove(flagRemindPIDFile) }()

	kv, err := openKV()
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	notifier := &notify.Notifier{Enabled: true}
	if !notifier.Supported() {
		warnf("desktop notifications are not supported on this platform")
	}

	scheduler := remind.NewScheduler(kv, notifier)
	armed, err := scheduler.Resume()
	if err != nil {
		return err
	}
	if !armed {
		return errors.New("напоминание не установлено, сначала: planeval remind set HH:MM")
	}
	defer scheduler.Stop()

	value, _ := scheduler.StoredTime()
	log.Printf("reminder daemon started, firing daily at %s (pid %d)", value, os.Getpid())
	log.Printf("stop with: planeval remind stop --pid-file %s", flagRemindPIDFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-ctx.Done()
	log.Printf("reminder daemon stopping")
	return nil
}

func runRemindStop(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagRemindPIDFile)
	if err != nil {
		return errors.New("демон не запущен")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find daemon process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal daemon process: %w", err)
	}

	deadline := time.Now().Add(8 * time.Second)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			_ = os.Remove(flagRemindPIDFile)
			fmt.Printf("  Демон остановлен (pid %d)\n", pid)
			return nil
		}
		time.Sleep(150 * time.Millisecond)
	}

	return fmt.Errorf("daemon (pid %d) did not exit in time", pid)
}

func runRemindOff(_ *cobra.Command, _ []string) error {
	kv, err := openKV()
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	if err := kv.SetKV(history.ReminderTimeKey, ""); err != nil {
		return fmt.Errorf("clear reminder time: %w", err)
	}

	cfg, _ := config.Load()
	cfg.Reminder.Enabled = false
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	if pid, err := readPID(flagRemindPIDFile); err == nil && processAlive(pid) {
		warnf("демон все еще работает, остановите его: planeval remind stop")
	}

	fmt.Println("  Напоминание отключено.")
	return nil
}

func filterDetachArg(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}

func ensureRemindNotRunning(pidFile string) error {
	pid, err := readPID(pidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if processAlive(pid) {
		return fmt.Errorf("daemon already running (pid %d)", pid)
	}
	_ = os.Remove(pidFile)
	return nil
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600)
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", path)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
