package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lokichain/loki-node/internal/dashboard"
	"github.com/spf13/cobra"
)

var (
	Version   = "1.0.0"
	BuildTime = "unknown"

	host    string
	ports   string
	logs    string
	refresh int
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "loki-dashboard",
		Short: "Loki 노드 멤풀 모니터링 대시보드",
		Long: `Loki Dashboard - 멀티 노드 멤풀 실시간 모니터링 TUI

노드별 네트워크, 멤풀 크기, 대기 트랜잭션, 로그를 한 화면에서 확인합니다.

사용 예시:
  loki-dashboard                                        # localhost:8000-8009 스캔
  loki-dashboard --ports 8000,8001                      # 특정 포트만
  loki-dashboard --logs ~/.loki-node/logs/loki-node     # 로그 경로 prefix`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard()
		},
	}

	rootCmd.Flags().StringVar(&host, "host", "localhost", "노드 호스트 주소")
	rootCmd.Flags().StringVar(&ports, "ports", "", "모니터링할 포트 (쉼표 구분, 예: 8000,8001)")
	rootCmd.Flags().StringVar(&logs, "logs", "", "노드별 로그 경로 prefix (쉼표 구분, 포트 순서)")
	rootCmd.Flags().IntVar(&refresh, "refresh", 1, "새로고침 간격 (초)")

	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "버전 정보 출력",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Loki Dashboard v%s (built: %s)\n", Version, BuildTime)
		},
	}
}

func runDashboard() error {
	var portList []int
	if ports == "" {
		for i := 8000; i <= 8009; i++ {
			portList = append(portList, i)
		}
	} else {
		for _, p := range strings.Split(ports, ",") {
			port, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return fmt.Errorf("invalid port %q", p)
			}
			portList = append(portList, port)
		}
	}

	if len(portList) == 0 {
		return fmt.Errorf("유효한 포트가 없습니다")
	}

	var prefixes []string
	for _, p := range strings.Split(logs, ",") {
		if p = strings.TrimSpace(p); p != "" {
			prefixes = append(prefixes, p)
		}
	}

	return dashboard.Run(dashboard.Config{
		Host:        host,
		Ports:       portList,
		LogPrefixes: prefixes,
		RefreshSec:  refresh,
	})
}
