package components

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lokichain/loki-node/internal/dashboard/styles"
)

// 로거 헬퍼가 실제 메시지를 담는 필드 키
var messageKeys = []string{"Info", "Debug", "Warn", "Err", "Crit"}

// zap ISO8601 인코더 형식 우선
var timeLayouts = []string{"2006-01-02T15:04:05.000Z0700", time.RFC3339}

// LogViewer는 노드 로그 파일 뷰어
type LogViewer struct {
	prefixes    []string
	nodeIndex   int
	lines       []LogLine
	maxLines    int
	lastModTime time.Time
	now         func() time.Time
}

// LogLine은 파싱된 로그 라인
type LogLine struct {
	Time    string
	Level   string
	Message string
	Raw     string
}

// NewLogViewer는 노드별 로그 경로 prefix로 뷰어 생성
func NewLogViewer(prefixes []string, maxLines int) *LogViewer {
	return &LogViewer{
		prefixes: prefixes,
		maxLines: maxLines,
		now:      time.Now,
	}
}

// SetNode는 보여줄 노드 설정
func (lv *LogViewer) SetNode(nodeIndex int) {
	if lv.nodeIndex == nodeIndex {
		return
	}
	lv.nodeIndex = nodeIndex
	lv.lines = nil
	lv.lastModTime = time.Time{}
}

// GetLogPath는 현재 노드의 오늘자 로그 파일 경로. prefix가 없으면 빈 문자열
func (lv *LogViewer) GetLogPath() string {
	if len(lv.prefixes) == 0 {
		return ""
	}
	prefix := lv.prefixes[len(lv.prefixes)-1]
	if lv.nodeIndex < len(lv.prefixes) {
		prefix = lv.prefixes[lv.nodeIndex]
	}
	return fmt.Sprintf("%s_%s.log", prefix, lv.now().Format("2006-01-02"))
}

// Refresh는 로그 파일이 바뀌었으면 다시 읽음
func (lv *LogViewer) Refresh() error {
	logPath := lv.GetLogPath()
	if logPath == "" {
		lv.lines = nil
		return nil
	}

	info, err := os.Stat(logPath)
	if err != nil {
		lv.lines = []LogLine{{
			Level:   "INFO",
			Message: fmt.Sprintf("로그 파일 없음: %s", logPath),
		}}
		lv.lastModTime = time.Time{}
		return nil
	}

	if info.ModTime().Equal(lv.lastModTime) {
		return nil
	}
	lv.lastModTime = info.ModTime()

	file, err := os.Open(logPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var allLines []LogLine
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		allLines = append(allLines, ParseLine(scanner.Text()))
		if len(allLines) > lv.maxLines*2 {
			allLines = allLines[len(allLines)-lv.maxLines:]
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if len(allLines) > lv.maxLines {
		allLines = allLines[len(allLines)-lv.maxLines:]
	}

	lv.lines = allLines
	return nil
}

// ParseLine은 zap JSON 로그 한 줄을 파싱
// {"level":"INFO","date":"2025-01-03T12:00:00.000+0900","msg":"info","Info":"message"}
func ParseLine(line string) LogLine {
	result := LogLine{Raw: line, Level: "INFO"}

	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		result.Message = truncate(line, 80)
		return result
	}

	if level, ok := entry["level"].(string); ok {
		result.Level = strings.ToUpper(level)
	}

	if date, ok := entry["date"].(string); ok {
		result.Time = date
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, date); err == nil {
				result.Time = t.Format("15:04:05")
				break
			}
		}
	}

	for _, key := range messageKeys {
		if msg, ok := entry[key].(string); ok {
			result.Message = msg
			return result
		}
	}

	// 헬퍼를 안 거친 구조화 로그 (요청 로그 등)
	msg, _ := entry["msg"].(string)
	if method, ok := entry["method"].(string); ok {
		path, _ := entry["path"].(string)
		msg = fmt.Sprintf("%s %s %s", msg, method, path)
		if status, ok := entry["status"].(float64); ok {
			msg = fmt.Sprintf("%s -> %d", msg, int(status))
		}
	}
	if msg == "" {
		msg = truncate(line, 80)
	}
	result.Message = msg
	return result
}

// GetLines는 현재 로그 라인들 반환
func (lv *LogViewer) GetLines() []LogLine {
	return lv.lines
}

// Render는 로그 뷰어를 문자열로 렌더링
func (lv *LogViewer) Render(width int) string {
	var b strings.Builder

	b.WriteString(styles.HeaderStyle.Render(fmt.Sprintf("LOGS [Node %d]", lv.nodeIndex+1)))
	b.WriteString("\n")

	if len(lv.lines) == 0 {
		b.WriteString(styles.MutedStyle.Render("  로그가 없습니다"))
		return b.String()
	}

	maxMsgLen := width - 20
	if maxMsgLen < 20 {
		maxMsgLen = 20
	}

	for _, line := range lv.lines {
		timeStr := line.Time
		if timeStr == "" {
			timeStr = "        "
		}

		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			styles.MutedStyle.Render(timeStr),
			styles.LogLevelStyle(line.Level).Render(fmt.Sprintf("%-5s", line.Level)),
			truncate(line.Message, maxMsgLen)))
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
