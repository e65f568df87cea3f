package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/lokichain/loki-node/app"
	"github.com/lokichain/loki-node/common/logger"
	"github.com/spf13/cobra"
)

// Version info (Injected from Makefile)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const daemonChildEnv = "LOKI_DAEMON_CHILD"

// PID 파일은 홈 디렉토리 아래에 둔다
func getPidFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./loki-node.pid"
	}
	return filepath.Join(homeDir, ".loki-node", "loki-node.pid")
}

var (
	pidFile    = getPidFilePath()
	configFile string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Println("Failed to execute command:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "loki-node",
		Short:   "lokichain node",
		Long:    `lokichain node: admits signed transactions into the pending pool and serves them over REST and WebSocket.`,
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Run: func(cmd *cobra.Command, args []string) {
			runNode()
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file")

	cmd.AddCommand(nodeCmd())
	cmd.AddCommand(walletCmd())
	cmd.AddCommand(txCmd())
	return cmd
}

func nodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Node management commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start the node as daemon",
		Run: func(cmd *cobra.Command, args []string) {
			runNodeDaemon(pidFile)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop the node",
		Run: func(cmd *cobra.Command, args []string) {
			stopDaemon(pidFile)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show node status",
		Run: func(cmd *cobra.Command, args []string) {
			showStatus(pidFile)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "restart",
		Short: "Restart the node",
		Run: func(cmd *cobra.Command, args []string) {
			restartDaemon(pidFile)
		},
	})

	return cmd
}

func runNode() {
	application, err := app.New(configFile)
	if err != nil {
		fmt.Println("Failed to initialize application:", err)
		os.Exit(1)
	}

	application.SigHandler()
	logger.Info("Node start. version: ", Version)

	if err := application.StartAll(); err != nil {
		application.Terminate()
		logger.Crit("Failed to start services: ", err)
	}

	application.Wait()
	if os.Getenv(daemonChildEnv) == "1" {
		removePidFile(pidFile)
	}
	logger.Info("Node terminated.")
}

// 데몬으로 시작. 자식 프로세스는 환경 변수로 구분한다.
func runNodeDaemon(pidFilePath string) {
	if os.Getenv(daemonChildEnv) == "1" {
		runNode()
		return
	}

	if isRunning(pidFilePath) {
		fmt.Println("Node is already running")
		return
	}

	executable, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}

	args := []string{"node", "start"}
	if configFile != "" {
		args = append(args, "--config", configFile)
	}
	cmd := exec.Command(executable, args...)
	cmd.Env = append(os.Environ(), daemonChildEnv+"=1")
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}

	if err := cmd.Start(); err != nil {
		fmt.Printf("Failed to start daemon: %v\n", err)
		os.Exit(1)
	}

	if err := writePidFile(pidFilePath, cmd.Process.Pid); err != nil {
		fmt.Printf("Failed to write PID file: %v\n", err)
		cmd.Process.Kill()
		os.Exit(1)
	}

	fmt.Printf("Node started as daemon with PID %d\n", cmd.Process.Pid)
	os.Exit(0)
}

func stopDaemon(pidFilePath string) {
	pid, err := readPidFile(pidFilePath)
	if err != nil {
		fmt.Println("Node is not running or PID file not found")
		return
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		fmt.Println("Process not found")
		removePidFile(pidFilePath)
		return
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		fmt.Printf("Failed to stop process: %v\n", err)
		return
	}

	fmt.Printf("Stopping node (PID: %d)...\n", pid)
	removePidFile(pidFilePath)
}

func restartDaemon(pidFilePath string) {
	fmt.Println("Restarting node...")
	stopDaemon(pidFilePath)

	// 이전 프로세스가 종료될 때까지 최대 5초 대기
	deadline := time.Now().Add(5 * time.Second)
	for isRunning(pidFilePath) && time.Now().Before(deadline) {
		time.Sleep(200 * time.Millisecond)
	}
	runNodeDaemon(pidFilePath)
}

func showStatus(pidFilePath string) {
	fmt.Printf("PID file path: %s\n", pidFilePath)

	if isRunning(pidFilePath) {
		pid, _ := readPidFile(pidFilePath)
		fmt.Printf("Node is running (PID: %d)\n", pid)
		return
	}

	fmt.Println("Node is not running")
	if _, err := os.Stat(pidFilePath); err == nil {
		fmt.Println("PID file exists but process is not running - cleaning up")
		removePidFile(pidFilePath)
	}
}

func isRunning(pidFilePath string) bool {
	pid, err := readPidFile(pidFilePath)
	if err != nil {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// signal 0: 프로세스 생존 여부만 확인 (Unix)
	return process.Signal(syscall.Signal(0)) == nil
}

func readPidFile(pidFilePath string) (int, error) {
	data, err := os.ReadFile(pidFilePath)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func writePidFile(pidFilePath string, pid int) error {
	if err := os.MkdirAll(filepath.Dir(pidFilePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(pidFilePath, []byte(strconv.Itoa(pid)), 0644)
}

func removePidFile(pidFilePath string) {
	os.Remove(pidFilePath)
}
